package tiling

import (
	"encoding/json"
	"strings"
	"testing"
)

// buildMixedTree covers every container kind, nested two levels deep.
func buildMixedTree() *Tree[testPane] {
	tiles := NewTiles[testPane]()
	pane := func(name string) TileID { return tiles.InsertPane(testPane{Name: name}) }

	tabs := tiles.InsertTabTile([]TileID{pane("t1"), pane("t2")})
	row := NewLinear(Horizontal, []TileID{pane("r1"), pane("r2"), pane("r3")})
	row.SetShare(row.ChildIDs[0], 2)
	rowID := tiles.InsertContainer(row)
	column := tiles.InsertVerticalTile([]TileID{tabs, pane("c1")})
	grid := tiles.InsertGridTile([]TileID{pane("g1"), pane("g2"), pane("g3"), pane("g4")})

	root := tiles.InsertHorizontalTile([]TileID{column, rowID, grid})
	tiles.SetVisible(rowID, false)
	return NewTree(root, tiles)
}

func TestTreeRoundTrip(t *testing.T) {
	original := buildMixedTree()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := &Tree[testPane]{}
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.Root != original.Root {
		t.Errorf("root = %v, want %v", restored.Root, original.Root)
	}
	if restored.Tiles.Len() != original.Tiles.Len() {
		t.Fatalf("tile count = %d, want %d", restored.Tiles.Len(), original.Tiles.Len())
	}

	for _, id := range original.Tiles.TileIDs() {
		want, _ := original.Tiles.Get(id)
		got, ok := restored.Tiles.Get(id)
		if !ok {
			t.Fatalf("tile %v missing after round trip", id)
		}
		if want.IsPane() {
			if !got.IsPane() || got.Pane.Name != want.Pane.Name {
				t.Errorf("pane %v mismatch after round trip", id)
			}
			continue
		}
		if !got.IsContainer() || got.Container.Kind() != want.Container.Kind() {
			t.Errorf("container %v kind mismatch after round trip", id)
			continue
		}
		wantChildren := want.Container.Children()
		gotChildren := got.Container.Children()
		if len(wantChildren) != len(gotChildren) {
			t.Errorf("container %v child count mismatch", id)
			continue
		}
		for i := range wantChildren {
			if wantChildren[i] != gotChildren[i] {
				t.Errorf("container %v child %d = %v, want %v", id, i, gotChildren[i], wantChildren[i])
			}
		}
		if restored.Tiles.IsVisible(id) != original.Tiles.IsVisible(id) {
			t.Errorf("tile %v visibility lost in round trip", id)
		}
	}

	// Marshaling the restored tree reproduces the exact bytes.
	again, err := json.Marshal(restored)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(again) != string(data) {
		t.Error("second marshal differs from the first")
	}
}

func TestRoundTripPreservesShares(t *testing.T) {
	original := buildMixedTree()
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	restored := &Tree[testPane]{}
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, id := range original.Tiles.TileIDs() {
		want, _ := original.Tiles.Get(id)
		l, ok := want.Container.(*Linear)
		if want.IsPane() || !ok {
			continue
		}
		got, _ := restored.Tiles.Get(id)
		gl := got.Container.(*Linear)
		for _, child := range l.ChildIDs {
			if !almostEqual(gl.Share(child), l.Share(child)) {
				t.Errorf("share of %v in %v = %v, want %v", child, id, gl.Share(child), l.Share(child))
			}
		}
		if gl.Dir != l.Dir {
			t.Errorf("direction of %v = %v, want %v", id, gl.Dir, l.Dir)
		}
	}
}

func TestSerializedShapeExcludesRects(t *testing.T) {
	tree := buildMixedTree()
	tree.Tiles.LayoutTile(newTestBehavior(), NewRect(0, 0, 800, 600), tree.Root)

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "rect") {
		t.Error("serialized tree leaks layout rects")
	}

	restored := &Tree[testPane]{}
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, id := range restored.Tiles.TileIDs() {
		if _, ok := restored.Tiles.TryRect(id); ok && restored.Tiles.IsVisible(id) {
			t.Fatalf("tile %v has a rect after restore", id)
		}
	}
}

func TestUnmarshalRejectsUnknownTileType(t *testing.T) {
	var tile Tile[testPane]
	if err := json.Unmarshal([]byte(`{"type":"mystery"}`), &tile); err == nil {
		t.Error("unknown tile type accepted")
	}
}
