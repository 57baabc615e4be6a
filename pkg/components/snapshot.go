package components

// 快照是核心状态的值拷贝，渲染层只读快照，无法修改物理状态。

// BallSnapshot 小球快照
type BallSnapshot struct {
	ID     int
	Label  string
	X, Y   float64
	DX, DY float64
	Radius float64
	Score  int
	Trail  []Point
}

// RingSnapshot 圆环快照
type RingSnapshot struct {
	ID              int
	State           RingState
	CenterX         float64
	CenterY         float64
	Radius          float64
	Width           float64
	Angle           float64
	HoleStart       float64
	HoleEnd         float64
	Active          bool
	Displayed       bool
	FadeInProgress  float64
	FadeOutProgress float64
	Segments        [DissolveSegmentCount]DissolveSegment
}

// TimerSnapshot 计时器快照
type TimerSnapshot struct {
	RemainingFrames  int
	RemainingSeconds float64
	SecondsLeft      int
	Progress         float64
	Running          bool
	SecondChanged    bool
}

// Snapshot 返回小球快照
func (b *Ball) Snapshot() BallSnapshot {
	return BallSnapshot{
		ID:     b.ID,
		Label:  b.Label,
		X:      b.X,
		Y:      b.Y,
		DX:     b.DX,
		DY:     b.DY,
		Radius: b.Radius,
		Score:  b.score,
		Trail:  b.Trail(),
	}
}

// Snapshot 返回圆环快照
func (r *Ring) Snapshot() RingSnapshot {
	start, end := r.HoleBounds()
	return RingSnapshot{
		ID:              r.ID,
		State:           r.State(),
		CenterX:         r.params.CenterX,
		CenterY:         r.params.CenterY,
		Radius:          r.radius,
		Width:           r.params.Width,
		Angle:           r.angle,
		HoleStart:       start,
		HoleEnd:         end,
		Active:          r.active,
		Displayed:       r.displayed,
		FadeInProgress:  r.FadeInProgress(),
		FadeOutProgress: r.FadeOutProgress(),
		Segments:        r.Segments(),
	}
}

// Snapshot 返回计时器快照
func (t *RoundTimer) Snapshot() TimerSnapshot {
	return TimerSnapshot{
		RemainingFrames:  t.remainingFrames,
		RemainingSeconds: t.RemainingSeconds(),
		SecondsLeft:      t.SecondsLeft(),
		Progress:         t.Progress(),
		Running:          t.running,
		SecondChanged:    t.secondChanged,
	}
}
