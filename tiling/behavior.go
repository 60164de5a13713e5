package tiling

import "math"

// EditAction describes a user edit, reported through Behavior.OnEdit.
type EditAction int

const (
	// EditTileResized fires when a share boundary is dragged.
	EditTileResized EditAction = iota
	// EditTileDragged fires when a tile drag starts.
	EditTileDragged
	// EditTileDropped fires when a dragged tile lands in a new position.
	EditTileDropped
	// EditTabSelected fires when a tab becomes active through interaction,
	// including hover-activation during a drag.
	EditTabSelected
)

// String returns the action name for logs.
func (a EditAction) String() string {
	switch a {
	case EditTileResized:
		return "resized"
	case EditTileDragged:
		return "dragged"
	case EditTileDropped:
		return "dropped"
	case EditTabSelected:
		return "tab-selected"
	default:
		return "unknown"
	}
}

// PaneResponse is returned by Behavior.PaneUI.
type PaneResponse int

const (
	// PaneNone means nothing of interest happened.
	PaneNone PaneResponse = iota
	// PaneDragStarted means the user grabbed the pane to drag it.
	PaneDragStarted
)

// TabState informs the rendering of a single tab button.
type TabState struct {
	Active         bool
	IsBeingDragged bool
	Closable       bool
}

// TabBarResponse reports what happened in a tab bar this frame.
// The engine uses ButtonRects to compute tab drop zones, so a Behavior that
// wants tab re-ordering by drag must fill them in.
type TabBarResponse struct {
	// ButtonRects maps each rendered (visible) tab child to its button rect.
	ButtonRects map[TileID]Rect

	// Selected is the tab the user clicked, or zero.
	Selected TileID

	// DragStarted is the tab the user grabbed to drag, or zero.
	DragStarted TileID

	// CloseRequested is the tab whose close affordance was pressed, or zero.
	// The engine consults Behavior.OnTabClose before actually closing.
	CloseRequested TileID
}

// Style carries the numeric layout parameters supplied by the Behavior.
type Style struct {
	// TabBarHeight is the strip reserved at the top of a Tabs container.
	TabBarHeight float64

	// GapWidth separates siblings in linear and grid layouts.
	GapWidth float64

	// MinSize is the extent below which no tile shrinks during share resize.
	MinSize float64

	// IdealTileAspectRatio guides the grid auto-column heuristic.
	IdealTileAspectRatio float64

	// ResizeGrabRadius is the pointer distance within which a share
	// boundary can be grabbed.
	ResizeGrabRadius float64
}

// DefaultStyle returns the stock numbers. They are tuned for pixel hosts;
// terminal hosts will want something like TabBarHeight 1, GapWidth 0.
func DefaultStyle() Style {
	return Style{
		TabBarHeight:         24,
		GapWidth:             1,
		MinSize:              32,
		IdealTileAspectRatio: 4.0 / 3.0,
		ResizeGrabRadius:     5,
	}
}

// Behavior is the capability set the embedding application supplies.
// It renders pane content and tab bars, answers policy questions, and
// provides the style numbers. BehaviorDefaults covers everything except
// PaneUI, PaneTitle and TabBarUI.
type Behavior[Pane any] interface {
	// PaneUI renders a pane into its computed rect and reports whether the
	// user started dragging the tile from within the content.
	PaneUI(frame *Frame, id TileID, pane *Pane, rect Rect) PaneResponse

	// PaneTitle produces the display title of a pane.
	PaneTitle(pane *Pane) string

	// TabBarUI renders the tab bar of a Tabs container into barRect and
	// reports clicks, drags and close requests. EqualWidthTabBar provides a
	// non-interactive geometry-only implementation.
	TabBarUI(frame *Frame, tiles *Tiles[Pane], id TileID, tabs *Tabs, barRect Rect) TabBarResponse

	// RetainPane is consulted during GC; returning false removes the pane.
	RetainPane(pane *Pane) bool

	// IsTabClosable reports whether a tab should show a close affordance.
	IsTabClosable(tiles *Tiles[Pane], id TileID) bool

	// OnTabClose is called when a close was requested. Returning false
	// aborts the close; the engine respects the veto.
	OnTabClose(tiles *Tiles[Pane], id TileID) bool

	// Style returns the numeric layout parameters for this frame.
	Style() Style

	// SimplificationOptions returns the tree normalization policy.
	SimplificationOptions() SimplificationOptions

	// GridAutoColumnCount picks the column count for an auto-layout grid.
	GridAutoColumnCount(numVisibleChildren int, rect Rect, gap float64) int

	// PaintDragPreview draws the drop preview. parentRect is the rect of
	// the container that would receive the tile, if known.
	PaintDragPreview(frame *Frame, parentRect *Rect, previewRect Rect)

	// OnEdit is notified of structural edits, for undo or telemetry.
	OnEdit(action EditAction)
}

// BehaviorDefaults provides the default implementations for the optional
// Behavior methods. Embed it and implement PaneUI, PaneTitle and TabBarUI.
type BehaviorDefaults[Pane any] struct{}

// RetainPane keeps every pane.
func (BehaviorDefaults[Pane]) RetainPane(*Pane) bool { return true }

// IsTabClosable disables close buttons.
func (BehaviorDefaults[Pane]) IsTabClosable(*Tiles[Pane], TileID) bool { return false }

// OnTabClose allows any close that was requested anyway.
func (BehaviorDefaults[Pane]) OnTabClose(*Tiles[Pane], TileID) bool { return true }

// Style returns DefaultStyle.
func (BehaviorDefaults[Pane]) Style() Style { return DefaultStyle() }

// SimplificationOptions returns DefaultSimplificationOptions.
func (BehaviorDefaults[Pane]) SimplificationOptions() SimplificationOptions {
	return DefaultSimplificationOptions()
}

// GridAutoColumnCount applies AutoColumnCount with the default aspect ratio.
func (BehaviorDefaults[Pane]) GridAutoColumnCount(n int, rect Rect, gap float64) int {
	return AutoColumnCount(n, rect.Width(), rect.Height(), gap, DefaultStyle().IdealTileAspectRatio)
}

// PaintDragPreview does nothing; previews are cosmetic.
func (BehaviorDefaults[Pane]) PaintDragPreview(*Frame, *Rect, Rect) {}

// OnEdit ignores edit events.
func (BehaviorDefaults[Pane]) OnEdit(EditAction) {}

// TileTitle returns the display title for any tile: the pane title for
// panes, the container kind name for containers.
func TileTitle[Pane any](b Behavior[Pane], tiles *Tiles[Pane], id TileID) string {
	tile, ok := tiles.Get(id)
	if !ok {
		return "MISSING TILE"
	}
	if tile.IsPane() {
		return b.PaneTitle(tile.Pane)
	}
	return tile.Container.Kind().String()
}

// EqualWidthTabBar returns a TabBarResponse whose button rects divide the
// bar evenly among visible tabs, with no interaction. Useful as a fallback
// and for headless layout tests.
func EqualWidthTabBar[Pane any](tiles *Tiles[Pane], tabs *Tabs, barRect Rect) TabBarResponse {
	var visible []TileID
	for _, child := range tabs.ChildIDs {
		if tiles.IsVisible(child) {
			visible = append(visible, child)
		}
	}
	rects := make(map[TileID]Rect, len(visible))
	if n := len(visible); n > 0 {
		w := barRect.Width() / float64(n)
		for i, child := range visible {
			rects[child] = NewRect(barRect.Min.X+float64(i)*w, barRect.Min.Y, w, barRect.Height())
		}
	}
	return TabBarResponse{ButtonRects: rects}
}

// AutoColumnCount chooses how many columns fit n children best in a
// width-by-height area. It scans every candidate count and minimizes a loss
// that weighs the deviation from the desired per-cell aspect ratio (by n)
// against the number of empty cells (by a constant 2). The candidate n-1 is
// skipped for n >= 4: a lone orphan on the last row looks broken (eight
// children must never yield seven columns).
func AutoColumnCount(n int, width, height, gap, desiredAspect float64) int {
	if n <= 1 {
		return 1
	}

	bestLoss := math.Inf(1)
	bestNumColumns := 1

	for ncols := 1; ncols <= n; ncols++ {
		if n >= 4 && ncols == n-1 {
			continue
		}

		nrows := (n + ncols - 1) / ncols

		cellWidth := (width - gap*float64(ncols-1)) / float64(ncols)
		cellHeight := (height - gap*float64(nrows-1)) / float64(nrows)

		cellAspect := cellWidth / cellHeight
		aspectDiff := math.Abs(desiredAspect - cellAspect)
		numEmptyCells := ncols*nrows - n

		loss := aspectDiff*float64(n) + 2.0*float64(numEmptyCells)

		if loss < bestLoss {
			bestLoss = loss
			bestNumColumns = ncols
		}
	}

	return bestNumColumns
}
