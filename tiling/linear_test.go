package tiling

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestLinearShareProportionality(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	p3 := tiles.InsertPane(testPane{Name: "c"})

	l := NewLinear(Horizontal, []TileID{p1, p2, p3})
	l.SetShare(p1, 1)
	l.SetShare(p2, 2)
	l.SetShare(p3, 3)
	root := tiles.InsertContainer(l)

	b := newTestBehavior()
	const width = 600.0
	tiles.LayoutTile(b, NewRect(0, 0, width, 100), root)

	wantWidths := []float64{width / 6, 2 * width / 6, 3 * width / 6}
	for i, id := range []TileID{p1, p2, p3} {
		rect, ok := tiles.TryRect(id)
		if !ok {
			t.Fatalf("child %d has no rect", i)
		}
		if !almostEqual(rect.Width(), wantWidths[i]) {
			t.Errorf("child %d width = %v, want %v", i, rect.Width(), wantWidths[i])
		}
		if !almostEqual(rect.Height(), 100) {
			t.Errorf("child %d height = %v, want 100", i, rect.Height())
		}
	}

	// Children are contiguous with no gap configured.
	r1, _ := tiles.TryRect(p1)
	r2, _ := tiles.TryRect(p2)
	if !almostEqual(r1.Max.X, r2.Min.X) {
		t.Errorf("children not contiguous: %v then %v", r1, r2)
	}
}

func TestLinearLayoutSkipsInvisible(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	root := tiles.InsertVerticalTile([]TileID{p1, p2})
	tiles.SetVisible(p2, false)

	tiles.LayoutTile(newTestBehavior(), NewRect(0, 0, 100, 400), root)

	rect, ok := tiles.TryRect(p1)
	if !ok {
		t.Fatal("visible child has no rect")
	}
	if !almostEqual(rect.Height(), 400) {
		t.Errorf("visible child gets full height, got %v", rect.Height())
	}
	if _, ok := tiles.TryRect(p2); ok {
		t.Error("invisible child should have no rect")
	}
}

func TestSharesSplitUniformFallback(t *testing.T) {
	children := []TileID{1, 2, 3, 4}
	s := Shares{1: 0, 2: 0, 3: 0, 4: 0}
	sizes := s.Split(children, 400)
	for i, size := range sizes {
		if !almostEqual(size, 100) {
			t.Errorf("size[%d] = %v, want uniform 100", i, size)
		}
	}
}

func TestNewBinaryLinear(t *testing.T) {
	l := NewBinaryLinear(Horizontal, 1, 2, 0.25)
	sizes := l.Shares.Split([]TileID{1, 2}, 400)
	if !almostEqual(sizes[0], 100) || !almostEqual(sizes[1], 300) {
		t.Errorf("binary split sizes = %v, want [100 300]", sizes)
	}
}

func TestShrinkSharesRespectsMinSize(t *testing.T) {
	style := DefaultStyle()
	style.MinSize = 50

	shares := Shares{1: 1, 2: 1}
	sizeOf := func(TileID) float64 { return 100 }

	// 200 units total, min 50 each: at most 50+50 can be freed.
	lost := shrinkShares(style, shares, []TileID{1, 2}, 1000, sizeOf)
	if !almostEqual(lost, 1.0) { // 100 units == 1.0 share at 2 shares / 200 units
		t.Errorf("lost = %v, want 1.0", lost)
	}
	if !almostEqual(shares[1], 0.5) || !almostEqual(shares[2], 0.5) {
		t.Errorf("shares after shrink = %v, want both 0.5", shares)
	}
}

func TestLinearRemoveChildKeepsOrder(t *testing.T) {
	l := NewLinear(Horizontal, []TileID{1, 2, 3})
	index, ok := l.RemoveChild(2)
	if !ok || index != 1 {
		t.Fatalf("RemoveChild = (%d, %v), want (1, true)", index, ok)
	}
	got := l.Children()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("children after remove = %v, want [1 3]", got)
	}
}
