package systems

import (
	"math"

	"github.com/decker502/tokvibes/pkg/components"
	"github.com/decker502/tokvibes/pkg/utils"
)

// CollisionResult 一次 小球-圆环 结算的结果
type CollisionResult int

const (
	// CollisionNone 无接触（或圆环已停用、距离为零）
	CollisionNone CollisionResult = iota
	// CollisionBounced 撞到实体弧，小球被反弹
	CollisionBounced
	// CollisionScored 穿过缺口，圆环停用、小球得分
	CollisionScored
)

// String 返回结果名称
func (r CollisionResult) String() string {
	switch r {
	case CollisionBounced:
		return "bounced"
	case CollisionScored:
		return "scored"
	default:
		return "none"
	}
}

// EventType 碰撞事件类型
type EventType int

const (
	// EventBounced 小球撞到圆环实体弧（音效/特效钩子）
	EventBounced EventType = iota + 1
	// EventScored 小球穿过缺口得分
	EventScored
)

// String 返回事件类型名称
func (t EventType) String() string {
	switch t {
	case EventBounced:
		return "bounced"
	case EventScored:
		return "scored"
	default:
		return "unknown"
	}
}

// CollisionEvent 记录一次碰撞，供音效与特效层消费
type CollisionEvent struct {
	Type   EventType
	BallID int
	RingID int
	Speed  float64 // 碰撞时的小球速度（反弹前），可用于音量
}

// CollisionSystem 小球与圆环的碰撞结算
//
// 每对 (圆环, 小球) 独立结算；结算产生的事件累积在 Events 中，
// 由调用方在每帧开始时调用 ResetEvents 清空。
type CollisionSystem struct {
	damping     float64
	minVelocity float64

	Events []CollisionEvent
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - damping: 反弹后的速度衰减系数 (0, 1]
//   - minVelocity: 反弹后的最小速度
func NewCollisionSystem(damping, minVelocity float64) *CollisionSystem {
	return &CollisionSystem{
		damping:     damping,
		minVelocity: minVelocity,
		Events:      make([]CollisionEvent, 0),
	}
}

// ResetEvents 清空累积的事件（保留底层数组）
func (cs *CollisionSystem) ResetEvents() {
	cs.Events = cs.Events[:0]
}

// Resolve 结算小球与圆环之间的一次碰撞
//
// 同时检查当前位置与下一步位置，防止快速小球穿透圆环线宽：
// |distance - R| < r 或 |nextDistance - R| < r 即视为接触。
// 接触时若小球角度落在缺口内则得分（不改变速度），否则以当前位置的法线反弹。
//
// 返回:
//   - CollisionResult: 结算结果；圆环已停用时返回 CollisionNone，
//     保证同一帧中第二个小球无法重复得分
func (cs *CollisionSystem) Resolve(ball *components.Ball, ring *components.Ring) CollisionResult {
	if !ring.Active() {
		return CollisionNone
	}

	cx, cy := ring.Center()
	dx := ball.X - cx
	dy := ball.Y - cy
	distance := math.Hypot(dx, dy)
	if distance == 0 {
		// 小球恰好位于圆心，法线无定义
		return CollisionNone
	}

	nextX, nextY := ball.NextPosition()
	nextDistance := utils.Distance(cx, cy, nextX, nextY)

	radius := ring.Radius()
	touching := math.Abs(distance-radius) < ball.Radius ||
		math.Abs(nextDistance-radius) < ball.Radius
	if !touching {
		return CollisionNone
	}

	speed := ball.Speed()
	ballAngle := utils.ScreenAngle(cx, cy, ball.X, ball.Y)
	holeStart, holeEnd := ring.HoleBounds()

	if utils.AngleInArc(ballAngle, holeStart, holeEnd) {
		if !ring.Deactivate() {
			return CollisionNone
		}
		ball.AddScore()
		cs.Events = append(cs.Events, CollisionEvent{
			Type:   EventScored,
			BallID: ball.ID,
			RingID: ring.ID,
			Speed:  speed,
		})
		return CollisionScored
	}

	ball.Bounce(dx/distance, dy/distance, cs.damping, cs.minVelocity)
	cs.Events = append(cs.Events, CollisionEvent{
		Type:   EventBounced,
		BallID: ball.ID,
		RingID: ring.ID,
		Speed:  speed,
	})
	return CollisionBounced
}
