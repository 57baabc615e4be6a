// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// DoubleTapDetector 按帧计数识别双击
// 移动端没有键盘，双击用于切换调试叠加层
type DoubleTapDetector struct {
	// Window 两次点击之间允许的最大帧数
	Window int

	lastTap int
	hasTap  bool
}

// NewDoubleTapDetector 创建双击检测器
func NewDoubleTapDetector(window int) *DoubleTapDetector {
	return &DoubleTapDetector{Window: window}
}

// Tap 记录第 frame 帧的一次点击
// 与上一次点击间隔不超过 Window 时返回 true，并清除记录（第三次点击重新计数）
func (d *DoubleTapDetector) Tap(frame int) bool {
	if d.hasTap && frame >= d.lastTap && frame-d.lastTap <= d.Window {
		d.hasTap = false
		return true
	}
	d.lastTap = frame
	d.hasTap = true
	return false
}

// Reset 清除点击记录
func (d *DoubleTapDetector) Reset() {
	d.hasTap = false
}
