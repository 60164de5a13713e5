package app

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/Gaurav-Gosain/mosaic/tiling"
	"github.com/adrg/xdg"
)

func newTestApp(tree *tiling.Tree[Pane]) *App {
	cfg := config.DefaultConfig()
	return &App{
		Cfg:      cfg,
		Registry: config.NewKeybindRegistry(cfg),
		behavior: newPaneBehavior(cfg),
		tree:     tree,
		width:    80,
		height:   24,
	}
}

func TestNewPaneUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		p := NewPane(PaneNotes)
		if p.ID == "" {
			t.Fatal("pane with empty id")
		}
		if seen[p.ID] {
			t.Fatalf("duplicate pane id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestAddPaneToContainerRoot(t *testing.T) {
	a := newTestApp(tiling.NewTreeFromPanes(tiling.KindHorizontal, []Pane{NewPane(PaneNotes)}))

	a.addPane(PaneClock)

	rootTile, ok := a.tree.Tiles.Get(a.tree.Root)
	if !ok || !rootTile.IsContainer() {
		t.Fatal("root is not a container")
	}
	if n := rootTile.Container.NumChildren(); n != 2 {
		t.Fatalf("root has %d children, want 2", n)
	}
	if a.behavior.focused == 0 {
		t.Error("new pane not focused")
	}
}

func TestAddPaneWrapsPaneRoot(t *testing.T) {
	tiles := tiling.NewTiles[Pane]()
	paneID := tiles.InsertPane(NewPane(PaneNotes))
	a := newTestApp(tiling.NewTree(paneID, tiles))

	a.addPane(PaneSysInfo)

	rootTile, ok := a.tree.Tiles.Get(a.tree.Root)
	if !ok {
		t.Fatal("no root after insert")
	}
	tabs, isTabs := rootTile.Container.(*tiling.Tabs)
	if !isTabs {
		t.Fatalf("root is %T, want tabs wrapping the old pane root", rootTile.Container)
	}
	children := tabs.Children()
	if len(children) != 2 || children[0] != paneID {
		t.Fatalf("tab children = %v, want the old root first", children)
	}
	if tabs.Active != a.behavior.focused {
		t.Error("new pane is not the active tab")
	}
}

func TestAddPaneToEmptyTree(t *testing.T) {
	a := newTestApp(tiling.NewEmptyTree[Pane]())

	a.addPane(PaneNotes)

	if a.tree.IsEmpty() {
		t.Fatal("tree still empty")
	}
	if _, ok := a.FocusedTile(); !ok {
		t.Error("no focused tile after first pane")
	}
}

func TestCloseFocusedRemovesPane(t *testing.T) {
	a := newTestApp(tiling.NewTreeFromPanes(tiling.KindHorizontal, []Pane{
		NewPane(PaneNotes), NewPane(PaneClock),
	}))
	id, ok := a.tree.Tiles.FindPane(func(p *Pane) bool { return p.Kind == PaneClock })
	if !ok {
		t.Fatal("clock pane missing")
	}
	a.behavior.focused = id

	a.closeFocused()

	if _, ok := a.tree.Tiles.Get(id); ok {
		t.Error("closed pane still in the arena")
	}
	if _, ok := a.FocusedTile(); ok {
		t.Error("focus survived the close")
	}
}

func TestSplitFocusedReplacesPaneWithBinarySplit(t *testing.T) {
	a := newTestApp(tiling.NewTreeFromPanes(tiling.KindHorizontal, []Pane{
		NewPane(PaneNotes), NewPane(PaneClock),
	}))
	focused, ok := a.tree.Tiles.FindPane(func(p *Pane) bool { return p.Kind == PaneClock })
	if !ok {
		t.Fatal("clock pane missing")
	}
	a.behavior.focused = focused

	a.splitFocused(tiling.Vertical)

	parentID, ok := a.tree.Tiles.ParentOf(focused)
	if !ok {
		t.Fatal("split pane has no parent")
	}
	parentTile, _ := a.tree.Tiles.Get(parentID)
	split, isLinear := parentTile.Container.(*tiling.Linear)
	if !isLinear || split.Dir != tiling.Vertical {
		t.Fatalf("parent is %T, want a vertical split", parentTile.Container)
	}
	children := split.Children()
	if len(children) != 2 || children[0] != focused {
		t.Fatalf("split children = %v, want the old pane first", children)
	}
	if a.behavior.focused != children[1] {
		t.Error("focus did not move to the new pane")
	}
	// The split itself took the old pane's slot under the root.
	rootTile, _ := a.tree.Tiles.Get(a.tree.Root)
	if !rootTile.Container.HasChild(parentID) {
		t.Error("split container not inserted where the pane was")
	}
}

func TestSplitFocusedRootPane(t *testing.T) {
	tiles := tiling.NewTiles[Pane]()
	paneID := tiles.InsertPane(NewPane(PaneNotes))
	a := newTestApp(tiling.NewTree(paneID, tiles))
	a.behavior.focused = paneID

	a.splitFocused(tiling.Horizontal)

	rootTile, ok := a.tree.Tiles.Get(a.tree.Root)
	if !ok {
		t.Fatal("no root after split")
	}
	split, isLinear := rootTile.Container.(*tiling.Linear)
	if !isLinear || split.Dir != tiling.Horizontal {
		t.Fatalf("root is %T, want a horizontal split", rootTile.Container)
	}
	if children := split.Children(); len(children) != 2 || children[0] != paneID {
		t.Fatalf("split children = %v, want the old root first", children)
	}
}

func TestCycleContainerKind(t *testing.T) {
	a := newTestApp(tiling.NewTreeFromPanes(tiling.KindTabs, []Pane{
		NewPane(PaneNotes), NewPane(PaneClock),
	}))
	focused, _ := a.tree.Tiles.FindPane(func(p *Pane) bool { return p.Kind == PaneNotes })
	a.behavior.focused = focused

	a.cycleContainerKind()

	rootTile, _ := a.tree.Tiles.Get(a.tree.Root)
	if kind := rootTile.Container.Kind(); kind == tiling.KindTabs {
		t.Error("container kind did not change")
	}
	if n := rootTile.Container.NumChildren(); n != 2 {
		t.Errorf("children lost in kind change: %d, want 2", n)
	}
}

func TestFrameRateRisesWhileInteracting(t *testing.T) {
	a := newTestApp(tiling.NewTreeFromPanes(tiling.KindHorizontal, []Pane{NewPane(PaneNotes)}))
	if got := a.frameRate(); got != config.NormalFPS {
		t.Errorf("idle frame rate = %d, want %d", got, config.NormalFPS)
	}
	a.primaryDown = true
	if got := a.frameRate(); got != config.InteractionFPS {
		t.Errorf("interacting frame rate = %d, want %d", got, config.InteractionFPS)
	}
}

func TestLayoutRoundTripOnDisk(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	tree := tiling.NewTreeFromPanes(tiling.KindGrid, []Pane{
		NewPane(PaneNotes), NewPane(PaneSysInfo), NewPane(PaneClock),
	})
	if err := SaveLayout(tree); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored, err := LoadLayout()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if restored.Root != tree.Root {
		t.Errorf("root = %v, want %v", restored.Root, tree.Root)
	}
	if restored.Tiles.Len() != tree.Tiles.Len() {
		t.Errorf("tile count = %d, want %d", restored.Tiles.Len(), tree.Tiles.Len())
	}
}

func TestSysStatsCPUGraphFixedWidth(t *testing.T) {
	s := &SysStats{}
	if got := len([]rune(s.CPUGraph())); got != 10 {
		t.Errorf("empty graph width = %d, want 10", got)
	}
	s.CPUHistory = []float64{0, 12, 50, 99, 100}
	if got := len([]rune(s.CPUGraph())); got != 10 {
		t.Errorf("partial graph width = %d, want 10", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512B"},
		{2048, "2.0K"},
		{3 * 1024 * 1024, "3.0M"},
		{5 * 1024 * 1024 * 1024, "5.0G"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	if got := formatUptime(90 * time.Minute); got != "1h 30m" {
		t.Errorf("uptime = %q, want 1h 30m", got)
	}
	if got := formatUptime(49 * time.Hour); got != "2d 1h 0m" {
		t.Errorf("uptime = %q, want 2d 1h 0m", got)
	}
}
