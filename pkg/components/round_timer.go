package components

import "math"

// RoundTimer 回合倒计时（以帧为单位）
//
// 计时只由 Advance 驱动，不读取系统时钟，保证固定步长下结果可复现。
type RoundTimer struct {
	durationFrames  int
	remainingFrames int
	fps             int
	running         bool

	lastWholeSecond int
	secondChanged   bool
}

// NewRoundTimer 创建并启动计时器
//
// 参数:
//   - seconds: 回合时长（秒）
//   - fps: 每秒帧数
func NewRoundTimer(seconds float64, fps int) *RoundTimer {
	if fps <= 0 {
		fps = 1
	}
	t := &RoundTimer{
		durationFrames: int(math.Round(seconds * float64(fps))),
		fps:            fps,
	}
	t.Reset()
	return t
}

// Advance 推进一帧：运行中且剩余帧数 > 0 时减一，归零后停止运行
func (t *RoundTimer) Advance() {
	t.secondChanged = false
	if !t.running {
		return
	}
	if t.remainingFrames > 0 {
		t.remainingFrames--
	}
	if t.remainingFrames <= 0 {
		t.running = false
	}

	if sec := t.SecondsLeft(); sec != t.lastWholeSecond {
		t.lastWholeSecond = sec
		t.secondChanged = true
	}
}

// IsExpired 剩余帧数为 0
func (t *RoundTimer) IsExpired() bool {
	return t.remainingFrames <= 0
}

// Reset 恢复满时长并重新开始运行
func (t *RoundTimer) Reset() {
	t.remainingFrames = t.durationFrames
	t.running = t.durationFrames > 0
	t.lastWholeSecond = t.SecondsLeft()
	t.secondChanged = false
}

// Running 计时器是否在运行
func (t *RoundTimer) Running() bool { return t.running }

// RemainingFrames 剩余帧数
func (t *RoundTimer) RemainingFrames() int { return t.remainingFrames }

// DurationFrames 总帧数
func (t *RoundTimer) DurationFrames() int { return t.durationFrames }

// RemainingSeconds 剩余秒数（带小数）
func (t *RoundTimer) RemainingSeconds() float64 {
	return float64(t.remainingFrames) / float64(t.fps)
}

// SecondsLeft 显示用的整秒数（向下取整）
func (t *RoundTimer) SecondsLeft() int {
	return t.remainingFrames / t.fps
}

// Progress 剩余时间占比 [0, 1]，1 表示刚开始
func (t *RoundTimer) Progress() float64 {
	if t.durationFrames <= 0 {
		return 0
	}
	return float64(t.remainingFrames) / float64(t.durationFrames)
}

// SecondChanged 本帧显示的整秒数是否发生变化（秒数闪烁效果的触发器）
func (t *RoundTimer) SecondChanged() bool { return t.secondChanged }

// IsCritical 剩余整秒数不超过阈值（倒计时进入警告阶段）
func (t *RoundTimer) IsCritical(thresholdSeconds int) bool {
	return t.SecondsLeft() <= thresholdSeconds
}
