package components

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/utils"
)

// Point 二维坐标点
type Point struct {
	X, Y float64
}

// BallParams 小球的物理参数（每回合固定）
type BallParams struct {
	Radius       float64
	Gravity      float64
	Width        float64 // 场地宽度，越界判定用
	Height       float64 // 场地高度，越界判定用
	SpawnMin     float64 // 开局水平速度绝对值下限
	SpawnMax     float64 // 开局水平速度绝对值上限
	RespawnSpeed float64 // 出界重生时的水平速度绝对值
	TrailLength  int
}

// BallParamsFromConfig 从模拟配置提取小球参数
func BallParamsFromConfig(cfg *config.SimulationConfig) BallParams {
	return BallParams{
		Radius:       cfg.BallRadius,
		Gravity:      cfg.Gravity,
		Width:        cfg.Width,
		Height:       cfg.Height,
		SpawnMin:     cfg.SpawnSpeedMin,
		SpawnMax:     cfg.SpawnSpeedMax,
		RespawnSpeed: cfg.RespawnSpeed,
		TrailLength:  cfg.TrailLength,
	}
}

// Ball 受重力影响的运动小球
//
// 位置与速度字段导出，供碰撞系统读取和修改；分数只能通过 AddScore 递增。
// 小球只了解自己，不持有其他小球或圆环的引用。
type Ball struct {
	ID    int    // 稳定序号，同一帧内按 ID 升序结算（先结算者得分）
	Label string // 显示用标签，对物理核心不透明

	X, Y   float64 // 位置（世界坐标）
	DX, DY float64 // 速度（像素/帧）

	Radius  float64
	Gravity float64

	score  int
	trail  []Point
	params BallParams
}

// NewBall 在世界中心创建小球
//
// 水平速度为 sign × uniform(SpawnMin, SpawnMax)，保证 |dx| >= SpawnMin，
// 不会出现近乎静止的小球；垂直速度为 0。
func NewBall(id int, label string, params BallParams, rng *rand.Rand) *Ball {
	b := &Ball{
		ID:      id,
		Label:   label,
		Radius:  params.Radius,
		Gravity: params.Gravity,
		params:  params,
	}
	if params.TrailLength > 0 {
		b.trail = make([]Point, 0, params.TrailLength)
	}

	b.X, b.Y = params.Width/2, params.Height/2
	magnitude := params.SpawnMin + rng.Float64()*(params.SpawnMax-params.SpawnMin)
	b.DX = randomSign(rng) * magnitude
	b.DY = 0
	return b
}

// Advance 推进一帧：施加重力、积分位置、记录拖尾、越界重生
//
// 返回 true 表示本帧小球越界并已重生（越界是预期的瞬态，不是错误）。
func (b *Ball) Advance(rng *rand.Rand) bool {
	b.DY += b.Gravity
	b.X += b.DX
	b.Y += b.DY

	if b.params.TrailLength > 0 {
		if len(b.trail) >= b.params.TrailLength {
			copy(b.trail, b.trail[1:])
			b.trail = b.trail[:len(b.trail)-1]
		}
		b.trail = append(b.trail, Point{X: b.X, Y: b.Y})
	}

	if b.OutOfBounds() {
		b.Respawn(rng)
		return true
	}

	utils.AssertFinite("ball position", b.X, b.Y, b.DX, b.DY)
	return false
}

// OutOfBounds 判断小球中心是否离开场地矩形
func (b *Ball) OutOfBounds() bool {
	return b.X < 0 || b.X > b.params.Width || b.Y < 0 || b.Y > b.params.Height
}

// Respawn 回到世界中心，水平速度随机取 ±RespawnSpeed，垂直速度清零，清空拖尾
func (b *Ball) Respawn(rng *rand.Rand) {
	b.X, b.Y = b.params.Width/2, b.params.Height/2
	b.DX = randomSign(rng) * b.params.RespawnSpeed
	b.DY = 0
	b.trail = b.trail[:0]
}

// NextPosition 返回按当前速度前进一步后的位置（碰撞预测用）
func (b *Ball) NextPosition() (float64, float64) {
	return b.X + b.DX, b.Y + b.DY
}

// Speed 返回速度大小
func (b *Ball) Speed() float64 {
	return math.Hypot(b.DX, b.DY)
}

// SetVelocity 直接设置速度
func (b *Ball) SetVelocity(dx, dy float64) {
	b.DX, b.DY = dx, dy
}

// Bounce 关于法线 (nx, ny) 反射速度并衰减
//
// v' = (v - 2(v·n)n) * damping；衰减后若速度低于 minVelocity，
// 保持方向放大到恰好 minVelocity。(nx, ny) 必须是单位向量。
func (b *Ball) Bounce(nx, ny, damping, minVelocity float64) {
	dot := b.DX*nx + b.DY*ny
	b.DX = (b.DX - 2*dot*nx) * damping
	b.DY = (b.DY - 2*dot*ny) * damping

	speed := b.Speed()
	if speed < minVelocity {
		if speed == 0 {
			// 没有方向可保持，朝圆心方向弹回
			b.DX, b.DY = -nx*minVelocity, -ny*minVelocity
		} else {
			scale := minVelocity / speed
			b.DX *= scale
			b.DY *= scale
		}
		b.nudgeToMinSpeed(minVelocity)
	}

	utils.AssertFinite("ball velocity", b.DX, b.DY)
}

// nudgeToMinSpeed 缩放后的舍入误差可能让速度比 minVelocity 小一个 ulp，
// 逐 ulp 放大分量直到速度不小于 minVelocity
func (b *Ball) nudgeToMinSpeed(minVelocity float64) {
	for i := 0; i < 8 && b.Speed() < minVelocity; i++ {
		b.DX = math.Nextafter(b.DX, math.Copysign(math.Inf(1), b.DX))
		b.DY = math.Nextafter(b.DY, math.Copysign(math.Inf(1), b.DY))
	}
}

// Score 返回当前得分
func (b *Ball) Score() int {
	return b.score
}

// AddScore 分数加一
func (b *Ball) AddScore() {
	b.score++
}

// Trail 返回拖尾历史的副本（最旧在前）
func (b *Ball) Trail() []Point {
	out := make([]Point, len(b.trail))
	copy(out, b.trail)
	return out
}

func randomSign(rng *rand.Rand) float64 {
	if rng.IntN(2) == 0 {
		return -1
	}
	return 1
}
