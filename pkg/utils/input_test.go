package utils

import "testing"

func TestDoubleTapDetector(t *testing.T) {
	tests := []struct {
		name   string
		frames []int
		want   []bool
	}{
		{"single tap", []int{10}, []bool{false}},
		{"double tap", []int{10, 20}, []bool{false, true}},
		{"too slow", []int{10, 40}, []bool{false, false}},
		{"slow then fast", []int{10, 40, 45}, []bool{false, false, true}},
		{"third tap starts over", []int{10, 12, 14}, []bool{false, true, false}},
		{"frame counter reset", []int{100, 5}, []bool{false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDoubleTapDetector(20)
			for i, f := range tt.frames {
				if got := d.Tap(f); got != tt.want[i] {
					t.Errorf("tap %d at frame %d = %v, want %v", i, f, got, tt.want[i])
				}
			}
		})
	}
}

func TestDoubleTapDetectorReset(t *testing.T) {
	d := NewDoubleTapDetector(20)
	d.Tap(1)
	d.Reset()
	if d.Tap(2) {
		t.Error("Reset should forget the previous tap")
	}
}
