package tiling

import (
	"encoding/json"
	"testing"
)

func treeSnapshot(t *testing.T, tree *Tree[testPane]) string {
	t.Helper()
	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal tree: %v", err)
	}
	return string(data)
}

func TestSimplifyIdempotence(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	p3 := tiles.InsertPane(testPane{Name: "c"})

	// Nested same-direction linears, a single-child tabs and an empty grid.
	inner := tiles.InsertHorizontalTile([]TileID{p1, p2})
	lonelyTabs := tiles.InsertTabTile([]TileID{p3})
	emptyGrid := tiles.InsertGridTile(nil)
	outer := tiles.InsertHorizontalTile([]TileID{inner, lonelyTabs, emptyGrid})
	tree := NewTree(outer, tiles)

	options := DefaultSimplificationOptions()
	tree.Simplify(options)
	first := treeSnapshot(t, tree)

	tree.Simplify(options)
	second := treeSnapshot(t, tree)

	if first != second {
		t.Errorf("second simplify changed the tree:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestSimplifySingleChildCollapse(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})

	inner := tiles.InsertVerticalTile([]TileID{p1})
	root := tiles.InsertHorizontalTile([]TileID{inner, p2})
	rootTile, _ := tiles.Get(root)
	rootTile.Container.(*Linear).SetShare(inner, 3)
	tree := NewTree(root, tiles)

	tree.Simplify(DefaultSimplificationOptions())

	rootTile, ok := tree.Tiles.Get(tree.Root)
	if !ok {
		t.Fatal("root vanished")
	}
	children := rootTile.Container.Children()
	if len(children) != 2 || children[0] != p1 || children[1] != p2 {
		t.Fatalf("root children = %v, want [%v %v]", children, p1, p2)
	}
	// The collapsed child inherits the position and the share of the
	// container it replaced.
	if share := rootTile.Container.(*Linear).Share(p1); !almostEqual(share, 3) {
		t.Errorf("share of promoted child = %v, want 3", share)
	}
	if _, ok := tree.Tiles.Get(inner); ok {
		t.Error("collapsed container still in arena")
	}
}

func TestSimplifyJoinNestedLinearRescalesShares(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	p3 := tiles.InsertPane(testPane{Name: "c"})

	inner := NewLinear(Horizontal, []TileID{p1, p2})
	inner.SetShare(p1, 1)
	inner.SetShare(p2, 3)
	innerID := tiles.InsertContainer(inner)

	outer := NewLinear(Horizontal, []TileID{innerID, p3})
	outer.SetShare(innerID, 2)
	outer.SetShare(p3, 2)
	rootID := tiles.InsertContainer(outer)
	tree := NewTree(rootID, tiles)

	tree.Simplify(DefaultSimplificationOptions())

	rootTile, _ := tree.Tiles.Get(tree.Root)
	l := rootTile.Container.(*Linear)
	children := l.Children()
	if len(children) != 3 || children[0] != p1 || children[1] != p2 || children[2] != p3 {
		t.Fatalf("children after join = %v, want [%v %v %v]", children, p1, p2, p3)
	}

	// The absorbed pair keeps the footprint the inner container had: half
	// the space, split 1:3 between them.
	sizes := l.Shares.Split(children, 400)
	if !almostEqual(sizes[0], 50) || !almostEqual(sizes[1], 150) || !almostEqual(sizes[2], 200) {
		t.Errorf("sizes after join = %v, want [50 150 200]", sizes)
	}
	if _, ok := tree.Tiles.Get(innerID); ok {
		t.Error("absorbed container still in arena")
	}
}

func TestSimplifyKeepsDifferentDirections(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	p3 := tiles.InsertPane(testPane{Name: "c"})

	inner := tiles.InsertVerticalTile([]TileID{p1, p2})
	root := tiles.InsertHorizontalTile([]TileID{inner, p3})
	tree := NewTree(root, tiles)

	tree.Simplify(DefaultSimplificationOptions())

	rootTile, _ := tree.Tiles.Get(tree.Root)
	children := rootTile.Container.Children()
	if len(children) != 2 || children[0] != inner {
		t.Errorf("cross-direction nesting must survive, children = %v", children)
	}
}

func TestSimplifyRootNeverRemoved(t *testing.T) {
	tiles := NewTiles[testPane]()
	root := tiles.InsertTabTile(nil)
	tree := NewTree(root, tiles)

	tree.Simplify(DefaultSimplificationOptions())

	if tree.Root != root {
		t.Errorf("root changed to %v", tree.Root)
	}
	if _, ok := tree.Tiles.Get(root); !ok {
		t.Error("empty root was removed")
	}
}

func TestSimplifyRootReplacedByOnlyChild(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	root := tiles.InsertHorizontalTile([]TileID{p1})
	tree := NewTree(root, tiles)

	tree.Simplify(DefaultSimplificationOptions())

	if tree.Root != p1 {
		t.Errorf("root = %v, want promoted child %v", tree.Root, p1)
	}
}

func TestMakeAllPanesChildrenOfTabs(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "a"})
	p2 := tiles.InsertPane(testPane{Name: "b"})
	root := tiles.InsertHorizontalTile([]TileID{p1, p2})
	tree := NewTree(root, tiles)

	tree.Tiles.MakeAllPanesChildrenOfTabs(false, tree.Root)

	rootTile, _ := tree.Tiles.Get(tree.Root)
	for _, child := range rootTile.Container.Children() {
		childTile, ok := tree.Tiles.Get(child)
		if !ok {
			t.Fatalf("child %v missing", child)
		}
		tabs, ok := childTile.Container.(*Tabs)
		if !ok {
			t.Fatalf("child %v is not a tabs container", child)
		}
		if n := tabs.NumChildren(); n != 1 {
			t.Errorf("wrapper has %d children, want 1", n)
		}
		grandchild, _ := tree.Tiles.Get(tabs.Children()[0])
		if !grandchild.IsPane() {
			t.Error("wrapped tile is not a pane")
		}
	}
}

func TestEndToEndRemoveAndCollapse(t *testing.T) {
	tiles := NewTiles[testPane]()
	p1 := tiles.InsertPane(testPane{Name: "p1"})
	p2 := tiles.InsertPane(testPane{Name: "p2"})
	p3 := tiles.InsertPane(testPane{Name: "p3"})

	split := tiles.InsertHorizontalTile([]TileID{p1, p2})
	root := tiles.InsertTabTile([]TileID{split, p3})
	tree := NewTree(root, tiles)

	tree.RemoveRecursively(p2)
	tree.Simplify(DefaultSimplificationOptions())

	rootTile, ok := tree.Tiles.Get(tree.Root)
	if !ok {
		t.Fatal("root vanished")
	}
	children := rootTile.Container.Children()
	if len(children) != 2 || children[0] != p1 || children[1] != p3 {
		t.Fatalf("root children = %v, want [%v %v]", children, p1, p3)
	}
	if _, ok := tree.Tiles.Get(split); ok {
		t.Error("degenerate split container still in arena")
	}
	if _, ok := tree.Tiles.Get(p2); ok {
		t.Error("removed pane still in arena")
	}
}
