package tiling

import (
	"fmt"
	"math"
	"strings"
)

// Frame is the host input for one UI pass. The engine is renderer-agnostic:
// the host samples its pointer and keyboard state into a Frame, and the
// Behavior callbacks do the actual painting.
type Frame struct {
	// Pointer is the pointer position, valid when HasPointer is set.
	Pointer    Point
	HasPointer bool

	// PrimaryDown reports whether the primary button is held.
	PrimaryDown bool

	// PrimaryPressed reports a primary press that happened this frame.
	PrimaryPressed bool

	// DoubleClicked reports a primary double-click this frame.
	DoubleClicked bool

	// Released reports a primary release this frame.
	Released bool

	// Escape aborts an in-progress drag.
	Escape bool

	// DT is the seconds since the previous frame, for preview smoothing.
	DT float64
}

type resizeAxis int

const (
	resizeLinear resizeAxis = iota
	resizeGridCol
	resizeGridRow
)

// resizeTarget identifies the share boundary currently being dragged.
type resizeTarget struct {
	containerID TileID
	axis        resizeAxis
	index       int
}

// Tree is the top level type: a root id plus the arena of all tiles.
// The drag and preview fields are per-session state, never persisted.
type Tree[Pane any] struct {
	Root  TileID
	Tiles *Tiles[Pane]

	draggedID           TileID
	smoothedPreviewRect *Rect
	resize              *resizeTarget
}

// NewTree constructs a tree over an existing arena.
func NewTree[Pane any](root TileID, tiles *Tiles[Pane]) *Tree[Pane] {
	return &Tree[Pane]{Root: root, Tiles: tiles}
}

// NewEmptyTree constructs a tree with no tiles at all.
func NewEmptyTree[Pane any]() *Tree[Pane] {
	return &Tree[Pane]{Tiles: NewTiles[Pane]()}
}

// NewTreeFromPanes builds a one-container tree of the given kind holding all
// the panes.
func NewTreeFromPanes[Pane any](kind ContainerKind, panes []Pane) *Tree[Pane] {
	tiles := NewTiles[Pane]()
	children := make([]TileID, 0, len(panes))
	for _, pane := range panes {
		children = append(children, tiles.InsertPane(pane))
	}
	root := tiles.InsertContainer(NewContainer(kind, children))
	return NewTree(root, tiles)
}

// IsEmpty reports whether the tree holds no tiles.
func (t *Tree[Pane]) IsEmpty() bool { return t.Tiles == nil || t.Tiles.IsEmpty() }

// DraggedID returns the tile currently being dragged, or zero.
func (t *Tree[Pane]) DraggedID() TileID { return t.draggedID }

// IsVisible reports whether a tile is visible; see Tiles.IsVisible.
func (t *Tree[Pane]) IsVisible(id TileID) bool { return t.Tiles.IsVisible(id) }

// SetVisible shows or hides a tile; see Tiles.SetVisible.
func (t *Tree[Pane]) SetVisible(id TileID, visible bool) { t.Tiles.SetVisible(id, visible) }

// MakeActive switches every tab container onto the path to tiles the
// predicate matches.
func (t *Tree[Pane]) MakeActive(shouldActivate func(TileID, *Tile[Pane]) bool) {
	t.Tiles.MakeActive(t.Root, shouldActivate)
}

// UI runs one frame: normalize the tree, lay it out into rect, walk it for
// rendering and interaction, then handle any in-progress drag.
func (t *Tree[Pane]) UI(b Behavior[Pane], frame *Frame, rect Rect) {
	if t.Root == 0 {
		return
	}

	options := b.SimplificationOptions()
	t.Simplify(options)
	if options.AllPanesMustHaveTabs {
		t.Tiles.MakeAllPanesChildrenOfTabs(false, t.Root)
	}

	t.Tiles.GC(b, t.Root)
	t.Tiles.clearRects()

	if frame.Escape && t.draggedID != 0 {
		// Abort the drag, leaving the tree untouched.
		t.draggedID = 0
		t.smoothedPreviewRect = nil
	}

	dc := newDropContext(t.draggedID, frame.HasPointer, frame.Pointer)

	t.Tiles.LayoutTile(b, rect, t.Root)
	t.tileUI(b, dc, frame, t.Root)
	t.previewAndCommit(b, dc, frame)
}

// Simplify normalizes the whole tree once. The root is never removed: an
// empty root stays, and a single-child root is replaced by its child.
func (t *Tree[Pane]) Simplify(options SimplificationOptions) {
	if t.Root == 0 {
		return
	}
	switch action := t.Tiles.Simplify(options, t.Root, nil); action.Verdict {
	case SimplifyRemove:
		// Only a missing root tile yields this; an existing root is
		// always kept, even when empty.
	case SimplifyKeep:
	case SimplifyReplace:
		t.Root = action.Replacement
	}
}

// GC frees unreachable tiles; see Tiles.GC.
func (t *Tree[Pane]) GC(b Behavior[Pane]) {
	t.Tiles.GC(b, t.Root)
}

// MoveTile moves a tile to the given insertion point. A move within the
// same container of the requested kind degenerates to an in-place reorder
// (or, for grids, a slot swap); anything else detaches the tile and
// re-inserts it, wrapping the target in a new container if the kinds differ.
func (t *Tree[Pane]) MoveTile(moved TileID, point InsertionPoint) {
	logger.Debug("moving tile", "tile", moved, "parent", point.ParentID,
		"kind", point.Insertion.Kind, "index", point.Insertion.Index)

	if parentID, ok := t.Tiles.ParentOf(moved); ok && parentID == point.ParentID {
		if parent, ok := t.Tiles.Get(parentID); ok && parent.IsContainer() &&
			parent.Container.Kind() == point.Insertion.Kind {
			t.reorderWithin(parent.Container, moved, point.Insertion.Index)
			return
		}
	}

	t.RemoveTileIDFromParent(moved)
	t.Tiles.insertAt(point, moved)
}

// reorderWithin moves a child to a new index inside its own container.
func (t *Tree[Pane]) reorderWithin(c Container, moved TileID, index int) {
	switch c := c.(type) {
	case *Grid:
		oldIndex := -1
		for i, slot := range c.Slots {
			if slot == moved {
				oldIndex = i
				break
			}
		}
		if oldIndex < 0 {
			return
		}
		// Swap with the destination occupant; a hole swaps back as a hole.
		prev, _ := c.ReplaceAt(index, moved)
		if oldIndex != index && oldIndex < len(c.Slots) {
			c.Slots[oldIndex] = prev
		}
	case *Tabs:
		oldIndex, ok := c.RemoveChild(moved)
		if !ok {
			return
		}
		if oldIndex < index {
			index--
		}
		c.InsertChild(index, moved)
		c.SetActive(moved)
	case *Linear:
		oldIndex, ok := c.RemoveChild(moved)
		if !ok {
			return
		}
		if oldIndex < index {
			index--
		}
		c.InsertChild(index, moved)
	}
}

// RemoveTileIDFromParent detaches a tile from whatever container holds it,
// returning the parent and the former child index. The tile itself stays in
// the arena; no simplification is performed.
func (t *Tree[Pane]) RemoveTileIDFromParent(id TileID) (TileID, int, bool) {
	for parentID, tile := range t.Tiles.tiles {
		if !tile.IsContainer() {
			continue
		}
		if index, ok := tile.Container.RemoveChild(id); ok {
			return parentID, index, true
		}
	}
	return 0, 0, false
}

// RemoveRecursively removes a tile and its subtree from both the arena and
// its parent's child list.
func (t *Tree[Pane]) RemoveRecursively(id TileID) {
	if id == t.Root {
		logger.Warn("refusing to remove root tile", "tile", id)
		return
	}
	t.RemoveTileIDFromParent(id)
	t.Tiles.RemoveRecursively(id)
}

func (t *Tree[Pane]) startDrag(b Behavior[Pane], id TileID) {
	if id == t.Root || t.draggedID == id {
		return
	}
	t.draggedID = id
	t.smoothedPreviewRect = nil
	b.OnEdit(EditTileDragged)
}

// previewAndCommit paints the drop preview while a drag is in flight and
// commits the move when the primary button is released.
func (t *Tree[Pane]) previewAndCommit(b Behavior[Pane], dc *dropContext, frame *Frame) {
	if t.draggedID == 0 || !frame.HasPointer {
		t.smoothedPreviewRect = nil
		return
	}

	if dc.previewRect != nil {
		preview := t.smoothPreviewRect(*dc.previewRect, frame.DT)

		var parentRect *Rect
		if dc.bestInsertion != nil {
			if rect, ok := t.Tiles.TryRect(dc.bestInsertion.ParentID); ok {
				parentRect = &rect
			}
		}
		b.PaintDragPreview(frame, parentRect, preview)
	}

	if frame.Released {
		if dc.bestInsertion != nil {
			t.MoveTile(t.draggedID, *dc.bestInsertion)
			b.OnEdit(EditTileDropped)
		}
		t.draggedID = 0
		t.smoothedPreviewRect = nil
	}
}

// smoothPreviewRect moves the preview toward its target with an exponential
// lerp, snapping once the remaining distance drops below half a unit.
func (t *Tree[Pane]) smoothPreviewRect(target Rect, dt float64) Rect {
	dt = min(dt, 0.1)
	// Reach 90% of the target in 0.05s.
	factor := 1.0 - math.Pow(1.0-0.9, dt/0.05)

	if t.smoothedPreviewRect == nil {
		rect := target
		t.smoothedPreviewRect = &rect
		return target
	}

	smoothed := t.smoothedPreviewRect.Lerp(target, factor)
	diff := math.Sqrt(smoothed.Min.DistSq(target.Min)) + math.Sqrt(smoothed.Max.DistSq(target.Max))
	if diff < 0.5 {
		smoothed = target
	}
	*t.smoothedPreviewRect = smoothed
	return smoothed
}

// String renders a hierarchical view of the tree, for debugging.
func (t *Tree[Pane]) String() string {
	var sb strings.Builder
	sb.WriteString("Tree {\n")
	t.formatTile(&sb, 1, t.Root)
	sb.WriteString("}")
	return sb.String()
}

func (t *Tree[Pane]) formatTile(sb *strings.Builder, indent int, id TileID) {
	fmt.Fprintf(sb, "%s%s ", strings.Repeat("  ", indent), id)
	tile, ok := t.Tiles.Get(id)
	if !ok {
		sb.WriteString("DANGLING\n")
		return
	}
	if tile.IsPane() {
		fmt.Fprintf(sb, "Pane %v\n", *tile.Pane)
		return
	}
	fmt.Fprintf(sb, "%s\n", tile.Container.Kind())
	for _, child := range tile.Container.Children() {
		t.formatTile(sb, indent+1, child)
	}
}
