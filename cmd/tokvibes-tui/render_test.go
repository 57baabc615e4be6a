package main

import (
	"math"
	"testing"

	"github.com/decker502/tokvibes/pkg/components"
)

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
	}{
		{"wide terminal", 200, 50},
		{"tall terminal", 80, 120},
		{"square", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := newViewport(600, 800, tt.cols, tt.rows)
			for _, p := range [][2]float64{{0, 0}, {599.9, 0}, {0, 799.9}, {599.9, 799.9}} {
				x, y := vp.toCell(p[0], p[1])
				if x < 0 || x >= tt.cols || y < hudRows || y >= tt.rows {
					t.Errorf("corner %v maps to (%d, %d), outside %dx%d", p, x, y, tt.cols, tt.rows)
				}
			}
			if math.Abs(vp.scaleX-vp.scaleY*cellAspect) > 1e-9 {
				t.Errorf("scaleX = %f, scaleY = %f: aspect not preserved", vp.scaleX, vp.scaleY)
			}
		})
	}
}

func TestNewViewportDegenerate(t *testing.T) {
	vp := newViewport(600, 800, 0, 0)
	if vp.scaleX != 0 || vp.scaleY != 0 {
		t.Errorf("empty terminal should give a zero viewport, got %+v", vp)
	}
	if n := vp.ringSamples(100); n != 16 {
		t.Errorf("ringSamples on a zero viewport = %d, want minimum 16", n)
	}
}

func TestRingSolidAt(t *testing.T) {
	active := components.RingSnapshot{
		State:     components.RingDisplayedActive,
		HoleStart: 0,
		HoleEnd:   math.Pi / 4,
	}
	if ringSolidAt(active, math.Pi/8) {
		t.Error("angle inside the hole should be open")
	}
	if !ringSolidAt(active, math.Pi) {
		t.Error("angle outside the hole should be solid")
	}

	fading := components.RingSnapshot{State: components.RingFadingOut}
	fading.Segments[0] = components.DissolveSegment{StartAngle: 1, EndAngle: 1.5, Active: true}
	fading.Segments[1] = components.DissolveSegment{StartAngle: 2, EndAngle: 2.5, Active: false}
	if !ringSolidAt(fading, 1.2) {
		t.Error("active segment should be drawn")
	}
	if ringSolidAt(fading, 2.2) {
		t.Error("dissolved segment should be open")
	}

	if ringSolidAt(components.RingSnapshot{State: components.RingPending}, 1) {
		t.Error("pending rings are not drawn")
	}
}

func TestRingRune(t *testing.T) {
	tests := []struct {
		name string
		ring components.RingSnapshot
		want rune
	}{
		{"fading out", components.RingSnapshot{State: components.RingFadingOut}, '·'},
		{"fading in", components.RingSnapshot{State: components.RingDisplayedActive, FadeInProgress: 0.2}, '∙'},
		{"visible", components.RingSnapshot{State: components.RingDisplayedActive, FadeInProgress: 1}, '•'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ringRune(tt.ring); got != tt.want {
				t.Errorf("ringRune() = %q, want %q", got, tt.want)
			}
		})
	}
}
