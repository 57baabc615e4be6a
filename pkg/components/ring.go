package components

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/utils"
)

// RingState 圆环生命周期状态
type RingState int

const (
	// RingPending 活跃但尚未进入显示窗口
	RingPending RingState = iota
	// RingDisplayedActive 活跃且正在显示，参与碰撞
	RingDisplayedActive
	// RingFadingOut 已被穿过，正在淡出
	RingFadingOut
	// RingRetired 淡出完成，应从列表中移除
	RingRetired
)

// String 返回状态名称（日志与调试覆盖层用）
func (s RingState) String() string {
	switch s {
	case RingPending:
		return "pending"
	case RingDisplayedActive:
		return "displayed"
	case RingFadingOut:
		return "fading"
	case RingRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// RingParams 圆环的几何与动画参数（角度均为弧度）
type RingParams struct {
	CenterX, CenterY   float64
	FirstRadius        float64
	Spacing            float64
	Width              float64
	ShrinkSpeed        float64
	RotationSpeed      float64
	RotationIndexScale float64
	HoleSize           float64
	HoleShift          float64
	FadeInFrames       int
	FadeOutFrames      int
}

// RingParamsFromConfig 从模拟配置提取圆环参数，角度由度转为弧度
func RingParamsFromConfig(cfg *config.SimulationConfig) RingParams {
	cx, cy := cfg.Center()
	return RingParams{
		CenterX:            cx,
		CenterY:            cy,
		FirstRadius:        cfg.FirstRingRadius,
		Spacing:            cfg.RingSpacing,
		Width:              cfg.RingWidth,
		ShrinkSpeed:        cfg.ShrinkSpeed,
		RotationSpeed:      cfg.RotationSpeed,
		RotationIndexScale: cfg.RotationIndexScale,
		HoleSize:           utils.DegToRad(cfg.HoleSizeDegrees),
		HoleShift:          utils.DegToRad(cfg.HoleShiftDegrees),
		FadeInFrames:       cfg.FadeInFrames,
		FadeOutFrames:      cfg.FadeOutFrames,
	}
}

// TargetRadius 返回序号为 index 的圆环应收缩到的半径
// 公式：FirstRadius + index × (Spacing + Width)
func (p RingParams) TargetRadius(index int) float64 {
	return p.FirstRadius + float64(index)*(p.Spacing+p.Width)
}

// RotationFor 返回序号为 index 的圆环每帧旋转量
func (p RingParams) RotationFor(index int) float64 {
	return p.RotationSpeed * (1 + float64(index)*p.RotationIndexScale)
}

// Ring 带缺口的旋转圆环
//
// 圆环在活跃期间阻挡小球；被穿过后停用并开始淡出，淡出完成后退役。
// 缺口 = [angle + holeOffset, angle + holeOffset + holeSize]，两者每帧同步旋转。
type Ring struct {
	ID int // 构造序号，重开回合前保持不变

	radius     float64
	angle      float64
	holeOffset float64
	holeSize   float64

	active    bool
	displayed bool

	fadeInCounter  int
	fadeOutCounter int

	segments [DissolveSegmentCount]DissolveSegment
	params   RingParams
}

// NewRing 创建第 id 个圆环
//
// 初始半径即该序号的目标半径；初始缺口偏移为 id × HoleShift，
// 使相邻圆环的缺口错开。淡出计数器预置为 FadeOutFrames。
func NewRing(id int, params RingParams, rng *rand.Rand) *Ring {
	return &Ring{
		ID:             id,
		radius:         params.TargetRadius(id),
		holeOffset:     utils.NormalizeAngle(float64(id) * params.HoleShift),
		holeSize:       params.HoleSize,
		active:         true,
		fadeOutCounter: params.FadeOutFrames,
		segments:       newDissolveSegments(params.HoleSize, params.FadeOutFrames, rng),
		params:         params,
	}
}

// Advance 推进一帧
//
// 参数:
//   - index: 圆环当前在存活列表中的序号（决定目标半径与旋转速度）
//
// 活跃或仍在淡出的圆环向目标半径收缩（不会低于目标）并旋转；
// 已停用且已显示的圆环淡出计数器减一；已显示的活跃圆环淡入计数器加一（封顶）。
func (r *Ring) Advance(index int) {
	if r.IsRetired() {
		return
	}

	target := r.params.TargetRadius(index)
	if r.radius > target {
		r.radius = math.Max(target, r.radius-r.params.ShrinkSpeed)
	}

	speed := r.params.RotationFor(index)
	r.angle = utils.NormalizeAngle(r.angle + speed)
	r.holeOffset = utils.NormalizeAngle(r.holeOffset + speed)

	if !r.active && r.displayed && r.fadeOutCounter > 0 {
		r.fadeOutCounter--
		r.dissolveSegments()
	}

	if r.active && r.displayed && r.fadeInCounter < r.params.FadeInFrames {
		r.fadeInCounter++
	}

	utils.AssertFinite("ring geometry", r.radius, r.angle, r.holeOffset)
}

func (r *Ring) dissolveSegments() {
	for i := range r.segments {
		if r.segments[i].Active && r.fadeOutCounter < r.segments[i].DissolveThreshold {
			r.segments[i].Active = false
		}
	}
}

// Deactivate 停用圆环（小球穿过缺口时调用）
// 返回 true 表示本次调用完成了 活跃→停用 的转换；重复调用返回 false，无副作用
func (r *Ring) Deactivate() bool {
	if !r.active {
		return false
	}
	r.active = false
	return true
}

// PromoteToDisplayed 将圆环加入显示窗口，淡入从 0 开始
func (r *Ring) PromoteToDisplayed() {
	if r.displayed {
		return
	}
	r.displayed = true
	r.fadeInCounter = 0
}

// HoleBounds 返回缺口起止角度，均已归一化到 [0, 2π)
// 缺口跨越 0 弧度时 start > end
func (r *Ring) HoleBounds() (start, end float64) {
	start = utils.NormalizeAngle(r.angle + r.holeOffset)
	end = utils.NormalizeAngle(start + r.holeSize)
	return start, end
}

// State 返回圆环当前的生命周期状态
func (r *Ring) State() RingState {
	switch {
	case !r.active && r.fadeOutCounter <= 0:
		return RingRetired
	case !r.active:
		return RingFadingOut
	case r.displayed:
		return RingDisplayedActive
	default:
		return RingPending
	}
}

// IsRetired 淡出完成的圆环应从存活列表移除
func (r *Ring) IsRetired() bool {
	return !r.active && r.fadeOutCounter <= 0
}

// Active 圆环是否仍阻挡小球
func (r *Ring) Active() bool { return r.active }

// Displayed 圆环是否在显示窗口内
func (r *Ring) Displayed() bool { return r.displayed }

// Radius 当前半径
func (r *Ring) Radius() float64 { return r.radius }

// Angle 当前旋转角
func (r *Ring) Angle() float64 { return r.angle }

// HoleOffset 缺口相对旋转角的偏移
func (r *Ring) HoleOffset() float64 { return r.holeOffset }

// HoleSize 缺口大小（弧度）
func (r *Ring) HoleSize() float64 { return r.holeSize }

// Center 圆心
func (r *Ring) Center() (float64, float64) { return r.params.CenterX, r.params.CenterY }

// Width 绘制线宽
func (r *Ring) Width() float64 { return r.params.Width }

// TargetRadius 返回该圆环在序号 index 时的目标半径
func (r *Ring) TargetRadius(index int) float64 {
	return r.params.TargetRadius(index)
}

// FadeOutCounter 剩余淡出帧数
func (r *Ring) FadeOutCounter() int { return r.fadeOutCounter }

// FadeInCounter 已淡入帧数
func (r *Ring) FadeInCounter() int { return r.fadeInCounter }

// FadeInProgress 淡入进度 [0, 1]，1 表示完全可见
func (r *Ring) FadeInProgress() float64 {
	if r.params.FadeInFrames <= 0 {
		return 1
	}
	return utils.Clamp01(float64(r.fadeInCounter) / float64(r.params.FadeInFrames))
}

// FadeOutProgress 淡出进度 [0, 1]，0 表示尚未开始，1 表示已完全消失
func (r *Ring) FadeOutProgress() float64 {
	if r.params.FadeOutFrames <= 0 {
		return 1
	}
	return utils.Clamp01(1 - float64(r.fadeOutCounter)/float64(r.params.FadeOutFrames))
}

// Segments 返回消融段数组的副本，角度为绝对角度（已归一化）
func (r *Ring) Segments() [DissolveSegmentCount]DissolveSegment {
	_, holeEnd := r.HoleBounds()
	segs := r.segments
	for i := range segs {
		segs[i].StartAngle = utils.NormalizeAngle(holeEnd + segs[i].StartAngle)
		segs[i].EndAngle = utils.NormalizeAngle(holeEnd + segs[i].EndAngle)
	}
	return segs
}
