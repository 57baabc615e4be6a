package game

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/decker502/tokvibes/pkg/components"
	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/systems"
)

// EndReason 回合结束原因
type EndReason int

const (
	// EndNone 回合进行中
	EndNone EndReason = iota
	// EndTimeUp 倒计时结束
	EndTimeUp
	// EndRingsCleared 所有圆环都已被穿过并淡出
	EndRingsCleared
)

// String 返回结束原因名称
func (e EndReason) String() string {
	switch e {
	case EndTimeUp:
		return "time up"
	case EndRingsCleared:
		return "rings cleared"
	default:
		return "running"
	}
}

// EventHandler 碰撞事件回调（音效、特效等订阅者）
type EventHandler func(ev systems.CollisionEvent)

// WinnerResult 回合胜负
//
// 唯一最高分的小球获胜；多个小球并列最高分时 Tie 为 true，BallID 为 -1。
type WinnerResult struct {
	Tie    bool
	BallID int
	Label  string
	Score  int
}

// RoundSnapshot 一帧结束后的只读状态（渲染层使用）
type RoundSnapshot struct {
	Frame     int
	GameOver  bool
	EndReason EndReason
	Winner    WinnerResult
	Timer     components.TimerSnapshot
	Balls     []components.BallSnapshot
	Rings     []components.RingSnapshot
}

// Round 回合控制器
//
// 持有全部小球、圆环与计时器，按固定步长推进：
// 计时器 → 小球 → 圆环（退役移除）→ 显示窗口补位 → 碰撞结算 → 结束判定。
// 单线程使用，Step 不阻塞。
type Round struct {
	cfg *config.SimulationConfig
	rng *rand.Rand

	balls      []*components.Ball
	rings      []*components.Ring
	timer      *components.RoundTimer
	collisions *systems.CollisionSystem

	ballParams components.BallParams
	ringParams components.RingParams

	frame     int
	gameOver  bool
	endReason EndReason

	frameEvents []systems.CollisionEvent
	handlers    []EventHandler
}

// Option 回合构造选项
type Option func(*Round)

// WithRand 注入随机源（测试与工具使用）
func WithRand(rng *rand.Rand) Option {
	return func(r *Round) {
		r.rng = rng
	}
}

// WithSeed 使用固定种子，覆盖配置中的 seed
func WithSeed(seed int64) Option {
	return func(r *Round) {
		r.rng = newSeededRand(seed)
	}
}

func newSeededRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// NewRound 根据配置创建回合
//
// 配置会被复制并重新校验；无效配置返回包装了 config.ErrInvalidConfig 的错误。
// 未注入随机源时：配置 seed 非 0 则按 seed 播种，否则按当前时间播种。
func NewRound(cfg *config.SimulationConfig, opts ...Option) (*Round, error) {
	if cfg == nil {
		return nil, fmt.Errorf("new round: %w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new round: %w", err)
	}

	r := &Round{
		cfg:        cfg.Clone(),
		ballParams: components.BallParamsFromConfig(cfg),
		ringParams: components.RingParamsFromConfig(cfg),
		collisions: systems.NewCollisionSystem(cfg.BounceDamping, cfg.MinVelocity),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		r.rng = newSeededRand(seed)
	}

	r.build()
	log.Printf("[Round] 新回合: %d 个小球, %d 个圆环 (显示 %d), 时长 %.0fs",
		len(r.balls), len(r.rings), r.cfg.RingsDisplayed, r.cfg.RoundSeconds)
	return r, nil
}

// build 按配置构造小球、圆环与计时器
func (r *Round) build() {
	r.balls = make([]*components.Ball, 0, len(r.cfg.Balls))
	for i, spec := range r.cfg.Balls {
		r.balls = append(r.balls, components.NewBall(i, spec.Label, r.ballParams, r.rng))
	}

	r.rings = make([]*components.Ring, 0, r.cfg.RingCount)
	for i := 0; i < r.cfg.RingCount; i++ {
		// 每个圆环使用独立的随机源生成消融段
		ringRand := rand.New(rand.NewPCG(r.rng.Uint64(), r.rng.Uint64()))
		r.rings = append(r.rings, components.NewRing(i, r.ringParams, ringRand))
	}

	r.timer = components.NewRoundTimer(r.cfg.RoundSeconds, r.cfg.FPS)
	r.frame = 0
	r.gameOver = false
	r.endReason = EndNone
	r.frameEvents = r.frameEvents[:0]
	r.collisions.ResetEvents()

	r.PromoteDisplayedRings()
}

// Restart 丢弃当前状态，按原配置重新构造回合（等价于新建回合）
// 事件订阅者保留
func (r *Round) Restart() {
	r.build()
	log.Printf("[Round] 回合重新开始")
}

// Step 推进一帧
//
// 回合已结束时为空操作。计时器到期后当帧结束回合，不再推进物理。
// 同一圆环上按小球 ID 升序结算，先穿过缺口的小球得分。
func (r *Round) Step() {
	if r.gameOver {
		return
	}

	r.frame++
	r.frameEvents = r.frameEvents[:0]
	r.collisions.ResetEvents()

	r.timer.Advance()
	if r.timer.IsExpired() {
		r.finish(EndTimeUp)
		return
	}

	for _, b := range r.balls {
		b.Advance(r.rng)
	}

	live := r.rings[:0]
	for i, ring := range r.rings {
		ring.Advance(i)
		if ring.IsRetired() {
			log.Printf("[Round] 圆环 %d 淡出完成，移除", ring.ID)
			continue
		}
		live = append(live, ring)
	}
	for i := len(live); i < len(r.rings); i++ {
		r.rings[i] = nil
	}
	r.rings = live

	r.PromoteDisplayedRings()

	for _, ring := range r.rings {
		if !ring.Active() {
			continue
		}
		for _, b := range r.balls {
			if res := r.collisions.Resolve(b, ring); res == systems.CollisionScored {
				log.Printf("[Round] 小球 %q 穿过圆环 %d，得分 %d", b.Label, ring.ID, b.Score())
			}
		}
	}

	r.frameEvents = append(r.frameEvents, r.collisions.Events...)
	r.dispatch()

	if r.allRingsCleared() {
		r.finish(EndRingsCleared)
	}
}

// allRingsCleared 剩余圆环全部停用且淡出完成（退役圆环已被移除，即列表为空）
func (r *Round) allRingsCleared() bool {
	for _, ring := range r.rings {
		if ring.Active() || ring.FadeOutCounter() > 0 {
			return false
		}
	}
	return true
}

func (r *Round) finish(reason EndReason) {
	r.gameOver = true
	r.endReason = reason
	w := r.Winner()
	if w.Tie {
		log.Printf("[Round] 回合结束 (%s): 平局, 最高分 %d", reason, w.Score)
	} else {
		log.Printf("[Round] 回合结束 (%s): %s 获胜, 得分 %d", reason, w.Label, w.Score)
	}
}

func (r *Round) dispatch() {
	if len(r.handlers) == 0 {
		return
	}
	for _, ev := range r.frameEvents {
		for _, h := range r.handlers {
			h(ev)
		}
	}
}

// PromoteDisplayedRings 维持显示窗口
//
// 按存活顺序将尚未显示的圆环标记为显示，直到显示数量达到配置值
// 或没有更多圆环。已显示的圆环（包括正在淡出的）计入窗口。
func (r *Round) PromoteDisplayedRings() {
	displayed := 0
	for _, ring := range r.rings {
		if ring.Displayed() {
			displayed++
		}
	}

	for _, ring := range r.rings {
		if displayed >= r.cfg.RingsDisplayed {
			return
		}
		if !ring.Displayed() {
			ring.PromoteToDisplayed()
			displayed++
		}
	}
}

// Winner 返回当前比分下的胜负
//
// 唯一最高分的小球获胜；所有小球分数相同时为平局。
// 只有一个小球时没有对手，分数总是"全部相同"，按平局处理。
func (r *Round) Winner() WinnerResult {
	best := WinnerResult{BallID: -1, Score: -1}
	for _, b := range r.balls {
		switch {
		case b.Score() > best.Score:
			best = WinnerResult{BallID: b.ID, Label: b.Label, Score: b.Score()}
		case b.Score() == best.Score:
			best.Tie = true
			best.BallID = -1
			best.Label = ""
		}
	}
	if best.Score < 0 {
		return WinnerResult{BallID: -1}
	}
	if len(r.balls) < 2 {
		return WinnerResult{Tie: true, BallID: -1, Score: best.Score}
	}
	return best
}

// Subscribe 注册碰撞事件订阅者，每帧 Step 结束前按发生顺序回调
func (r *Round) Subscribe(h EventHandler) {
	if h == nil {
		return
	}
	r.handlers = append(r.handlers, h)
}

// FrameEvents 返回最近一帧产生的碰撞事件副本
func (r *Round) FrameEvents() []systems.CollisionEvent {
	out := make([]systems.CollisionEvent, len(r.frameEvents))
	copy(out, r.frameEvents)
	return out
}

// GameOver 回合是否已结束（结束后只有 Restart 能恢复）
func (r *Round) GameOver() bool { return r.gameOver }

// EndReason 回合结束原因
func (r *Round) EndReason() EndReason { return r.endReason }

// Frame 已推进的帧数
func (r *Round) Frame() int { return r.frame }

// Config 返回回合配置的副本
func (r *Round) Config() *config.SimulationConfig { return r.cfg.Clone() }

// Timer 返回计时器快照
func (r *Round) Timer() components.TimerSnapshot { return r.timer.Snapshot() }

// Balls 返回小球快照
func (r *Round) Balls() []components.BallSnapshot {
	out := make([]components.BallSnapshot, 0, len(r.balls))
	for _, b := range r.balls {
		out = append(out, b.Snapshot())
	}
	return out
}

// Rings 返回存活圆环快照（按存活顺序，由内向外）
func (r *Round) Rings() []components.RingSnapshot {
	out := make([]components.RingSnapshot, 0, len(r.rings))
	for _, ring := range r.rings {
		out = append(out, ring.Snapshot())
	}
	return out
}

// Snapshot 返回完整的一帧只读状态
func (r *Round) Snapshot() RoundSnapshot {
	return RoundSnapshot{
		Frame:     r.frame,
		GameOver:  r.gameOver,
		EndReason: r.endReason,
		Winner:    r.Winner(),
		Timer:     r.timer.Snapshot(),
		Balls:     r.Balls(),
		Rings:     r.Rings(),
	}
}
