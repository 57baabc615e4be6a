package game

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/decker502/tokvibes/pkg/components"
	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/systems"
	"github.com/decker502/tokvibes/pkg/utils"
)

func newTestRound(t *testing.T, mutate func(cfg *config.SimulationConfig)) *Round {
	t.Helper()
	cfg := config.DefaultSimulationConfig()
	if mutate != nil {
		mutate(cfg)
	}
	r, err := NewRound(cfg, WithSeed(42))
	if err != nil {
		t.Fatalf("NewRound failed: %v", err)
	}
	return r
}

// pinBalls 将所有小球固定在圆心且静止（重力需为 0），圆心处不产生碰撞
func pinBalls(r *Round) {
	cx, cy := r.cfg.Center()
	for _, b := range r.balls {
		b.X, b.Y = cx, cy
		b.SetVelocity(0, 0)
	}
}

// scoreThroughHole 让指定小球穿过圆环缺口中央
func scoreThroughHole(t *testing.T, r *Round, ball *components.Ball, ring *components.Ring) {
	t.Helper()
	cx, cy := ring.Center()
	start, _ := ring.HoleBounds()
	ball.X, ball.Y = utils.PointOnCircle(cx, cy, ring.Radius(), start+ring.HoleSize()/2)
	ball.SetVelocity(0, 0)
	if got := r.collisions.Resolve(ball, ring); got != systems.CollisionScored {
		t.Fatalf("expected ring %d to be scored, got %v", ring.ID, got)
	}
}

func displayedIDs(r *Round) []int {
	var ids []int
	for _, ring := range r.rings {
		if ring.Displayed() {
			ids = append(ids, ring.ID)
		}
	}
	return ids
}

func TestNewRound_InitialState(t *testing.T) {
	r := newTestRound(t, nil)

	if len(r.balls) != 2 || len(r.rings) != 10 {
		t.Fatalf("balls=%d rings=%d, want 2/10", len(r.balls), len(r.rings))
	}
	if got := displayedIDs(r); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("displayed rings = %v, want first five", got)
	}
	if r.GameOver() || r.EndReason() != EndNone || r.Frame() != 0 {
		t.Errorf("fresh round: over=%v reason=%v frame=%d", r.GameOver(), r.EndReason(), r.Frame())
	}
	if r.balls[0].Label != "Yes" || r.balls[1].Label != "No" {
		t.Errorf("labels = %q/%q", r.balls[0].Label, r.balls[1].Label)
	}
}

func TestNewRound_RejectsInvalidConfig(t *testing.T) {
	if _, err := NewRound(nil); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("nil config: err = %v, want ErrInvalidConfig", err)
	}

	cfg := config.DefaultSimulationConfig()
	cfg.RingsDisplayed = cfg.RingCount + 1
	if _, err := NewRound(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("displayed > total: err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewRound_CopiesConfig(t *testing.T) {
	cfg := config.DefaultSimulationConfig()
	r, err := NewRound(cfg, WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	cfg.RingCount = 99

	r.Restart()
	if len(r.rings) != 10 {
		t.Errorf("restart used mutated caller config: %d rings", len(r.rings))
	}
}

// TestRound_TimerExpiryEndsRound 24 秒 @ 60 FPS：计时器推进 1440 次后，下一次 Step 结束回合
func TestRound_TimerExpiryEndsRound(t *testing.T) {
	r := newTestRound(t, func(cfg *config.SimulationConfig) {
		cfg.RoundSeconds = 24
		cfg.Gravity = 0
	})
	pinBalls(r)

	for i := 0; i < 1440; i++ {
		r.timer.Advance()
	}
	if !r.timer.IsExpired() {
		t.Fatal("timer should be expired after 1440 frames")
	}
	if r.GameOver() {
		t.Fatal("round must not end until the controller steps")
	}

	r.Step()
	if !r.GameOver() || r.EndReason() != EndTimeUp {
		t.Errorf("after step: over=%v reason=%v, want time up", r.GameOver(), r.EndReason())
	}
}

func TestRound_TimerExpiryThroughSteps(t *testing.T) {
	r := newTestRound(t, func(cfg *config.SimulationConfig) {
		cfg.RoundSeconds = 24
		cfg.Gravity = 0
	})
	pinBalls(r)

	for i := 0; i < 1439; i++ {
		r.Step()
	}
	if r.GameOver() {
		t.Fatalf("round ended early at frame %d", r.Frame())
	}
	r.Step()
	if !r.GameOver() || r.EndReason() != EndTimeUp {
		t.Errorf("over=%v reason=%v at frame %d, want time up", r.GameOver(), r.EndReason(), r.Frame())
	}
}

// TestRound_SlidingWindow 30 个圆环显示 10 个：穿过 3 个并淡出后，恰好补位 3 个
func TestRound_SlidingWindow(t *testing.T) {
	r := newTestRound(t, func(cfg *config.SimulationConfig) {
		cfg.RingCount = 30
		cfg.RingsDisplayed = 10
		cfg.Gravity = 0
		cfg.FadeOutFrames = 5
	})

	if got := len(displayedIDs(r)); got != 10 {
		t.Fatalf("displayed = %d, want 10", got)
	}

	for i := 0; i < 3; i++ {
		scoreThroughHole(t, r, r.balls[0], r.rings[i])
	}
	pinBalls(r)

	for i := 0; i < 5; i++ {
		r.Step()
		if got := len(displayedIDs(r)); got != 10 {
			t.Fatalf("frame %d: displayed = %d, want 10", r.Frame(), got)
		}
	}

	if len(r.rings) != 27 {
		t.Fatalf("live rings = %d, want 27", len(r.rings))
	}
	want := []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if got := displayedIDs(r); !reflect.DeepEqual(got, want) {
		t.Errorf("displayed = %v, want %v", got, want)
	}
	if r.balls[0].Score() != 3 {
		t.Errorf("score = %d, want 3", r.balls[0].Score())
	}
}

func TestRound_WindowShrinksWhenFewRingsRemain(t *testing.T) {
	r := newTestRound(t, func(cfg *config.SimulationConfig) {
		cfg.RingCount = 4
		cfg.RingsDisplayed = 3
		cfg.Gravity = 0
		cfg.FadeOutFrames = 2
	})

	scoreThroughHole(t, r, r.balls[0], r.rings[0])
	scoreThroughHole(t, r, r.balls[0], r.rings[1])
	pinBalls(r)
	for i := 0; i < 2; i++ {
		r.Step()
	}

	if got := displayedIDs(r); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("displayed = %v, want [2 3]", got)
	}
}

// TestRound_ClearingAllRingsEndsRound 穿过全部圆环并淡出后回合结束
func TestRound_ClearingAllRingsEndsRound(t *testing.T) {
	r := newTestRound(t, func(cfg *config.SimulationConfig) {
		cfg.RingCount = 2
		cfg.RingsDisplayed = 2
		cfg.Gravity = 0
		cfg.FadeOutFrames = 3
	})

	scoreThroughHole(t, r, r.balls[1], r.rings[0])
	scoreThroughHole(t, r, r.balls[1], r.rings[1])
	pinBalls(r)

	for i := 0; i < 2; i++ {
		r.Step()
		if r.GameOver() {
			t.Fatalf("round ended before fade-out finished (frame %d)", r.Frame())
		}
	}
	r.Step()

	if !r.GameOver() || r.EndReason() != EndRingsCleared {
		t.Fatalf("over=%v reason=%v, want rings cleared", r.GameOver(), r.EndReason())
	}
	w := r.Winner()
	if w.Tie || w.BallID != 1 || w.Label != "No" || w.Score != 2 {
		t.Errorf("winner = %+v, want ball 1 (No) with 2", w)
	}

	frame := r.Frame()
	r.Step()
	if r.Frame() != frame {
		t.Error("Step after game over must be a no-op")
	}
}

func TestRound_Winner(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   WinnerResult
	}{
		{"unique max", []int{1, 3}, WinnerResult{BallID: 1, Label: "No", Score: 3}},
		{"first ball leads", []int{2, 0}, WinnerResult{BallID: 0, Label: "Yes", Score: 2}},
		{"tie", []int{2, 2}, WinnerResult{Tie: true, BallID: -1, Score: 2}},
		{"scoreless tie", []int{0, 0}, WinnerResult{Tie: true, BallID: -1, Score: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRound(t, nil)
			for i, s := range tt.scores {
				for j := 0; j < s; j++ {
					r.balls[i].AddScore()
				}
			}
			if got := r.Winner(); got != tt.want {
				t.Errorf("Winner() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// 单个小球的分数总是与"其余小球"相同，结果为平局
func TestRound_SingleBallIsTie(t *testing.T) {
	r := newTestRound(t, func(cfg *config.SimulationConfig) {
		cfg.Balls = []config.BallSpec{{Label: "Solo", Color: "#ffffff"}}
	})

	tests := []struct {
		name  string
		score int
	}{
		{"no points", 0},
		{"after scoring", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for r.balls[0].Score() < tt.score {
				r.balls[0].AddScore()
			}
			w := r.Winner()
			if !w.Tie || w.BallID != -1 || w.Label != "" || w.Score != tt.score {
				t.Errorf("winner = %+v, want tie at %d", w, tt.score)
			}
		})
	}
}

func TestRound_Restart(t *testing.T) {
	r := newTestRound(t, func(cfg *config.SimulationConfig) {
		cfg.RoundSeconds = 0.1
	})

	r.Subscribe(func(systems.CollisionEvent) {})
	r.balls[0].AddScore()
	for !r.GameOver() {
		r.Step()
	}

	r.Restart()
	if r.GameOver() || r.EndReason() != EndNone || r.Frame() != 0 {
		t.Errorf("after restart: over=%v reason=%v frame=%d", r.GameOver(), r.EndReason(), r.Frame())
	}
	if len(r.rings) != 10 || len(displayedIDs(r)) != 5 {
		t.Errorf("after restart: rings=%d displayed=%d", len(r.rings), len(displayedIDs(r)))
	}
	for _, b := range r.balls {
		if b.Score() != 0 {
			t.Errorf("ball %d score = %d after restart", b.ID, b.Score())
		}
	}
	if len(r.handlers) != 1 {
		t.Errorf("subscribers = %d after restart, want 1", len(r.handlers))
	}
	if r.Timer().RemainingFrames != 6 {
		t.Errorf("timer remaining = %d, want 6", r.Timer().RemainingFrames)
	}
}

func TestRound_BounceEventDispatched(t *testing.T) {
	r := newTestRound(t, func(cfg *config.SimulationConfig) {
		cfg.Gravity = 0
	})
	pinBalls(r)

	// 小球 0 位于 270°（圆心正下方），向下运动，下一帧撞上最内层圆环的实体弧
	cx, cy := r.cfg.Center()
	ball := r.balls[0]
	ball.X, ball.Y = utils.PointOnCircle(cx, cy, 115, utils.DegToRad(270))
	ball.SetVelocity(0, 3)

	var got []systems.CollisionEvent
	r.Subscribe(func(ev systems.CollisionEvent) { got = append(got, ev) })
	r.Step()

	if len(got) != 1 {
		t.Fatalf("dispatched %d events, want 1: %+v", len(got), got)
	}
	if got[0].Type != systems.EventBounced || got[0].BallID != 0 || got[0].RingID != 0 {
		t.Errorf("event = %+v, want bounce of ball 0 on ring 0", got[0])
	}
	if !reflect.DeepEqual(r.FrameEvents(), got) {
		t.Errorf("FrameEvents = %+v, want %+v", r.FrameEvents(), got)
	}
	if ball.DY >= 0 {
		t.Errorf("dy = %f, ball should move back up after the bounce", ball.DY)
	}

	pinBalls(r)
	r.Step()
	if len(r.FrameEvents()) != 0 {
		t.Errorf("events leaked into the next frame: %+v", r.FrameEvents())
	}
}

func TestRound_SameSeedIsReproducible(t *testing.T) {
	cfg := config.DefaultSimulationConfig()
	a, err := NewRound(cfg, WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRound(cfg, WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 600; i++ {
		a.Step()
		b.Step()
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("rounds with the same seed diverged")
	}
}

// TestRound_Invariants 长时间运行，检查各项不变量
func TestRound_Invariants(t *testing.T) {
	r := newTestRound(t, func(cfg *config.SimulationConfig) {
		cfg.RingCount = 8
		cfg.RingsDisplayed = 4
		cfg.RoundSeconds = 30
	})

	prevScores := make([]int, len(r.balls))
	prevRadius := make(map[int]float64)
	for !r.GameOver() {
		r.Step()
		snap := r.Snapshot()

		for _, ev := range r.FrameEvents() {
			if ev.Type != systems.EventBounced {
				continue
			}
			b := snap.Balls[ev.BallID]
			if speed := math.Hypot(b.DX, b.DY); speed < r.cfg.MinVelocity {
				t.Fatalf("frame %d: ball %d speed %v after bounce, want >= %v", snap.Frame, b.ID, speed, r.cfg.MinVelocity)
			}
		}

		displayed := 0
		for i, ring := range snap.Rings {
			if prev, ok := prevRadius[ring.ID]; ok && ring.Radius > prev {
				t.Fatalf("frame %d: ring %d radius grew from %f to %f", snap.Frame, ring.ID, prev, ring.Radius)
			}
			prevRadius[ring.ID] = ring.Radius
			if ring.Displayed {
				displayed++
			}
			if ring.Radius < r.ringParams.TargetRadius(i) {
				t.Fatalf("frame %d: ring %d radius %f below target", snap.Frame, ring.ID, ring.Radius)
			}
			if ring.HoleStart < 0 || ring.HoleStart >= utils.TwoPi {
				t.Fatalf("frame %d: hole start %f not normalized", snap.Frame, ring.HoleStart)
			}
		}
		if want := min(len(snap.Rings), 4); displayed != want {
			t.Fatalf("frame %d: displayed = %d, want %d", snap.Frame, displayed, want)
		}
		for i, b := range snap.Balls {
			if b.Score < prevScores[i] {
				t.Fatalf("frame %d: score decreased", snap.Frame)
			}
			prevScores[i] = b.Score
			if !utils.IsFinite(b.X, b.Y, b.DX, b.DY) {
				t.Fatalf("frame %d: non-finite ball state %+v", snap.Frame, b)
			}
		}
	}
}
