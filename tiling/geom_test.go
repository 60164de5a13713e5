package tiling

import "testing"

func TestNewTileIDNeverZero(t *testing.T) {
	for range 1000 {
		if NewTileID().IsZero() {
			t.Fatal("generated the reserved zero id")
		}
	}
}

func TestRectSplits(t *testing.T) {
	rect := NewRect(0, 0, 100, 60)

	left, right := rect.SplitLeftRightAtFraction(0.25)
	if !almostEqual(left.Width(), 25) || !almostEqual(right.Width(), 75) {
		t.Errorf("left/right widths = %v, %v", left.Width(), right.Width())
	}
	if !almostEqual(left.Max.X, right.Min.X) {
		t.Error("split halves are not adjacent")
	}

	top, bottom := rect.SplitTopBottomAtY(10)
	if !almostEqual(top.Height(), 10) || !almostEqual(bottom.Height(), 50) {
		t.Errorf("top/bottom heights = %v, %v", top.Height(), bottom.Height())
	}
}

func TestRectContains(t *testing.T) {
	rect := NewRect(10, 10, 20, 20)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(10, 10), true},
		{Pt(29.9, 29.9), true},
		{Pt(30, 30), false},
		{Pt(9.9, 15), false},
	}
	for _, tt := range tests {
		if got := rect.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
