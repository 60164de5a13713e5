package tiling

import "testing"

func TestMoveTileReorderWithinLinear(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	p3 := tiles.InsertPane(testPane{Name: "c"})
	root := tiles.InsertHorizontalTile([]TileID{p1, p2, p3})
	rootTile, _ := tiles.Get(root)
	rootTile.Container.(*Linear).SetShare(p1, 5)
	tree := NewTree(root, tiles)

	// Move the first child to the slot after the last one. The destination
	// index counts the child's old position, so it gets adjusted down.
	tree.MoveTile(p1, InsertionPoint{root, ContainerInsertion{KindHorizontal, 3}})

	got := rootTile.Container.Children()
	want := []TileID{p2, p3, p1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
	// In-place reorder keeps the share bookkeeping.
	if share := rootTile.Container.(*Linear).Share(p1); !almostEqual(share, 5) {
		t.Errorf("share after reorder = %v, want 5", share)
	}
}

func TestMoveTileWithinGridSwapsOccupants(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	p3 := tiles.InsertPane(testPane{Name: "c"})
	root := tiles.InsertGridTile([]TileID{p1, p2, p3})
	rootTile, _ := tiles.Get(root)
	tree := NewTree(root, tiles)

	tree.MoveTile(p1, InsertionPoint{root, ContainerInsertion{KindGrid, 2}})

	g := rootTile.Container.(*Grid)
	want := []TileID{p3, p2, p1}
	for i := range want {
		if g.Slots[i] != want[i] {
			t.Fatalf("slots = %v, want %v", g.Slots, want)
		}
	}
}

func TestMoveTileIntoGridHoleLeavesHoleBehind(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	root := tiles.InsertContainer(NewGrid([]TileID{p1, 0, p2}))
	rootTile, _ := tiles.Get(root)
	tree := NewTree(root, tiles)

	tree.MoveTile(p1, InsertionPoint{root, ContainerInsertion{KindGrid, 1}})

	g := rootTile.Container.(*Grid)
	if g.Slots[0] != 0 || g.Slots[1] != p1 || g.Slots[2] != p2 {
		t.Errorf("slots = %v, want [hole %v %v]", g.Slots, p1, p2)
	}
}

func TestMoveTileAcrossContainers(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	p3 := tiles.InsertPane(testPane{Name: "c"})
	left := tiles.InsertTabTile([]TileID{p1, p2})
	root := tiles.InsertHorizontalTile([]TileID{left, p3})
	tree := NewTree(root, tiles)

	// Move p3 into the tabs container as the first tab.
	tree.MoveTile(p3, InsertionPoint{left, ContainerInsertion{KindTabs, 0}})

	leftTile, _ := tree.Tiles.Get(left)
	tabs := leftTile.Container.(*Tabs)
	children := tabs.Children()
	if len(children) != 3 || children[0] != p3 {
		t.Fatalf("tab children = %v, want %v first", children, p3)
	}
	if tabs.Active != p3 {
		t.Errorf("active = %v, want the dropped tile", tabs.Active)
	}
	rootTile, _ := tree.Tiles.Get(root)
	if rootTile.Container.HasChild(p3) {
		t.Error("moved tile still referenced by old parent")
	}
}

func TestUIDragCommit(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	root := tiles.InsertTabTile([]TileID{p1, p2})
	tree := NewTree(root, tiles)

	b := newTestBehavior()
	area := NewRect(0, 0, 400, 300)

	// Frame 1: a drag of p2 is in flight, pointer on the left half.
	tree.draggedID = p2
	pointer := Pt(40, 150)
	tree.UI(b, &Frame{HasPointer: true, Pointer: pointer, PrimaryDown: true, DT: 0.016}, area)
	if tree.draggedID != p2 {
		t.Fatal("drag ended prematurely")
	}

	// Frame 2: release commits the closest insertion, a left split.
	tree.UI(b, &Frame{HasPointer: true, Pointer: pointer, Released: true, DT: 0.016}, area)
	if tree.draggedID != 0 {
		t.Fatal("drag still in flight after release")
	}

	// Frame 3 lets the simplify pass settle the new shape.
	tree.UI(b, &Frame{DT: 0.016}, area)

	rootTile, ok := tree.Tiles.Get(tree.Root)
	if !ok {
		t.Fatal("root vanished")
	}
	l, ok := rootTile.Container.(*Linear)
	if !ok || l.Dir != Horizontal {
		t.Fatalf("root is %T, want horizontal split", rootTile.Container)
	}
	children := l.Children()
	if len(children) != 2 || children[0] != p2 || children[1] != p1 {
		t.Fatalf("children = %v, want [%v %v]", children, p2, p1)
	}

	dropped := false
	for _, action := range b.edits {
		if action == EditTileDropped {
			dropped = true
		}
	}
	if !dropped {
		t.Error("no drop edit event reported")
	}
}

func TestUIDragEscapeAborts(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	root := tiles.InsertTabTile([]TileID{p1, p2})
	tree := NewTree(root, tiles)

	b := newTestBehavior()
	area := NewRect(0, 0, 400, 300)

	tree.draggedID = p2
	tree.UI(b, &Frame{HasPointer: true, Pointer: Pt(40, 150), Escape: true, DT: 0.016}, area)

	if tree.draggedID != 0 {
		t.Error("escape did not abort the drag")
	}
	rootTile, _ := tree.Tiles.Get(tree.Root)
	if rootTile.Container.Kind() != KindTabs {
		t.Error("aborted drag mutated the tree")
	}
}

func TestEmptyTreeUIIsNoop(t *testing.T) {
	tree := NewEmptyTree[testPane]()
	tree.UI(newTestBehavior(), &Frame{DT: 0.016}, NewRect(0, 0, 100, 100))
	if !tree.IsEmpty() {
		t.Error("empty tree grew tiles")
	}
}

func TestSmoothPreviewRectSnaps(t *testing.T) {
	tree := NewEmptyTree[testPane]()
	target := NewRect(0, 0, 100, 100)

	first := tree.smoothPreviewRect(target, 0.016)
	if first != target {
		t.Errorf("first preview = %v, want the target itself", first)
	}

	// A nearby target converges and snaps within a few frames.
	near := NewRect(0.2, 0, 100.2, 100)
	for range 10 {
		tree.smoothPreviewRect(near, 0.016)
	}
	if got := *tree.smoothedPreviewRect; got != near {
		t.Errorf("preview = %v, want snapped to %v", got, near)
	}
}
