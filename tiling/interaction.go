package tiling

import "math"

// tileUI renders one tile and registers its drop targets. Drop suggestions
// are disabled inside the dragged subtree so a tile can never be dropped
// into itself.
func (t *Tree[Pane]) tileUI(b Behavior[Pane], dc *dropContext, frame *Frame, id TileID) {
	rect, ok := t.Tiles.TryRect(id)
	if !ok {
		return
	}

	tile, ok := t.Tiles.Remove(id)
	if !ok {
		logger.Warn("missing tile during interaction", "tile", id)
		return
	}

	wasEnabled := dc.enabled
	if id == dc.draggedID {
		dc.enabled = false
	}

	if tile.IsPane() {
		if b.PaneUI(frame, id, tile.Pane, rect) == PaneDragStarted {
			t.startDrag(b, id)
		}
	} else {
		switch c := tile.Container.(type) {
		case *Tabs:
			t.tabsUI(b, dc, frame, c, rect, id)
		case *Linear:
			t.linearUI(b, dc, frame, c, rect, id)
		case *Grid:
			t.gridUI(b, dc, frame, c, id)
		}
	}

	kind, isContainer := tile.Kind()
	dc.onTile(b.Style(), id, rect, kind, isContainer)

	t.Tiles.Insert(id, tile)
	dc.enabled = wasEnabled
}

// tabsUI renders the tab bar, recurses into the active child, and registers
// the gaps between tab buttons as drop targets. Since only the active tab
// was laid out, a selection switch takes effect on the next frame.
func (t *Tree[Pane]) tabsUI(b Behavior[Pane], dc *dropContext, frame *Frame, tabs *Tabs, rect Rect, id TileID) {
	barRect, _ := rect.SplitTopBottomAtY(rect.Min.Y + b.Style().TabBarHeight)
	resp := b.TabBarUI(frame, t.Tiles, id, tabs, barRect)

	nextActive := tabs.Active
	if resp.Selected != 0 && tabs.HasChild(resp.Selected) {
		nextActive = resp.Selected
		b.OnEdit(EditTabSelected)
	}
	if resp.DragStarted != 0 {
		t.startDrag(b, resp.DragStarted)
	}

	if dc.draggedID != 0 && frame.HasPointer {
		// Hovering a tab button during a drag opens that tab, so the user
		// can drop something inside it.
		for child, buttonRect := range resp.ButtonRects {
			if buttonRect.Contains(frame.Pointer) {
				nextActive = child
				b.OnEdit(EditTabSelected)
			}
		}
	}

	if closeID := resp.CloseRequested; closeID != 0 && tabs.HasChild(closeID) {
		if b.OnTabClose(t.Tiles, closeID) {
			logger.Debug("closing tab", "tile", closeID)
			tabs.RemoveChild(closeID)
			t.Tiles.RemoveRecursively(closeID)
			if nextActive == closeID {
				nextActive = 0
			}
		}
	}

	if tabs.Active != 0 {
		t.tileUI(b, dc, frame, tabs.Active)
	}

	tabDropZones(dc, id, tabs, resp.ButtonRects)

	// Only the active tab was laid out, so switch after the recursion.
	if nextActive != 0 {
		tabs.Active = nextActive
	}
}

func (t *Tree[Pane]) linearUI(b Behavior[Pane], dc *dropContext, frame *Frame, l *Linear, rect Rect, id TileID) {
	visible := l.visibleChildren(t.Tiles)
	for _, child := range visible {
		t.tileUI(b, dc, frame, child)
	}

	linearDropZones(t.Tiles, dc, id, l)

	if dc.draggedID == 0 {
		t.linearResize(b, frame, l, rect, id, visible)
	}
}

// linearResize drags the boundary between two siblings, redistributing
// shares. Space is taken from the neighbors on the shrinking side, nearest
// first, and no tile goes below the style minimum size. Double-clicking a
// boundary evens out the two adjacent shares.
func (t *Tree[Pane]) linearResize(b Behavior[Pane], frame *Frame, l *Linear, rect Rect, id TileID, visible []TileID) {
	if !frame.HasPointer {
		return
	}
	style := b.Style()

	sizeOf := func(child TileID) float64 {
		childRect := t.Tiles.RectOf(child)
		if l.Dir == Horizontal {
			return childRect.Width()
		}
		return childRect.Height()
	}

	for i := 0; i+1 < len(visible); i++ {
		first, second := visible[i], visible[i+1]
		firstRect := t.Tiles.RectOf(first)
		secondRect := t.Tiles.RectOf(second)

		var boundary, pointerPos float64
		if l.Dir == Horizontal {
			boundary = (firstRect.Max.X + secondRect.Min.X) / 2
			pointerPos = frame.Pointer.X
		} else {
			boundary = (firstRect.Max.Y + secondRect.Min.Y) / 2
			pointerPos = frame.Pointer.Y
		}

		hovered := rect.Contains(frame.Pointer) &&
			math.Abs(pointerPos-boundary) <= style.ResizeGrabRadius

		active := t.resize != nil && t.resize.containerID == id &&
			t.resize.axis == resizeLinear && t.resize.index == i

		switch {
		case active && frame.PrimaryDown:
			delta := pointerPos - boundary
			if delta < 0 {
				l.SetShare(second, l.Share(second)+
					shrinkShares(style, l.Shares, reversed(visible[:i+1]), -delta, sizeOf))
			} else if delta > 0 {
				l.SetShare(first, l.Share(first)+
					shrinkShares(style, l.Shares, visible[i+1:], delta, sizeOf))
			}
			if delta != 0 {
				b.OnEdit(EditTileResized)
			}
		case active:
			t.resize = nil
		case hovered && frame.DoubleClicked:
			mean := (l.Share(first) + l.Share(second)) / 2
			l.SetShare(first, mean)
			l.SetShare(second, mean)
			b.OnEdit(EditTileResized)
		case hovered && frame.PrimaryPressed:
			t.resize = &resizeTarget{containerID: id, axis: resizeLinear, index: i}
		}
	}
}

func (t *Tree[Pane]) gridUI(b Behavior[Pane], dc *dropContext, frame *Frame, g *Grid, id TileID) {
	for _, slot := range g.Slots {
		if slot != 0 && t.Tiles.IsVisible(slot) {
			t.tileUI(b, dc, frame, slot)
		}
	}

	gridDropZones(dc, id, g)

	if dc.draggedID == 0 {
		parentRect := t.Tiles.RectOf(id)
		t.gridResizeAxis(b, frame, g, parentRect, id, resizeGridCol)
		t.gridResizeAxis(b, frame, g, parentRect, id, resizeGridRow)
	}
}

// gridResizeAxis drags the boundary between two grid columns or rows.
func (t *Tree[Pane]) gridResizeAxis(b Behavior[Pane], frame *Frame, g *Grid, parentRect Rect, id TileID, axis resizeAxis) {
	if !frame.HasPointer {
		return
	}
	style := b.Style()

	ranges := g.colRanges
	shares := g.ColShares
	pointerPos := frame.Pointer.X
	if axis == resizeGridRow {
		ranges = g.rowRanges
		shares = g.RowShares
		pointerPos = frame.Pointer.Y
	}
	if len(shares) < len(ranges) {
		return
	}

	sizeOf := func(i int) float64 { return ranges[i].size() }

	for i := 0; i+1 < len(ranges); i++ {
		boundary := (ranges[i].hi + ranges[i+1].lo) / 2

		hovered := parentRect.Contains(frame.Pointer) &&
			math.Abs(pointerPos-boundary) <= style.ResizeGrabRadius

		active := t.resize != nil && t.resize.containerID == id &&
			t.resize.axis == axis && t.resize.index == i

		switch {
		case active && frame.PrimaryDown:
			delta := pointerPos - boundary
			if delta < 0 {
				shares[i+1] += shrinkIndexedShares(style, shares, descending(i), -delta, sizeOf)
			} else if delta > 0 {
				shares[i] += shrinkIndexedShares(style, shares, ascending(i+1, len(ranges)), delta, sizeOf)
			}
			if delta != 0 {
				b.OnEdit(EditTileResized)
			}
		case active:
			t.resize = nil
		case hovered && frame.DoubleClicked:
			mean := (shares[i] + shares[i+1]) / 2
			shares[i] = mean
			shares[i+1] = mean
			b.OnEdit(EditTileResized)
		case hovered && frame.PrimaryPressed:
			t.resize = &resizeTarget{containerID: id, axis: axis, index: i}
		}
	}
}

// reversed returns a copy of the ids in back-to-front order, so the nearest
// neighbor of a boundary gives up its space first.
func reversed(ids []TileID) []TileID {
	out := make([]TileID, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

// descending returns i, i-1, …, 0.
func descending(i int) []int {
	out := make([]int, 0, i+1)
	for j := i; j >= 0; j-- {
		out = append(out, j)
	}
	return out
}

// ascending returns lo, lo+1, …, hi-1.
func ascending(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for j := lo; j < hi; j++ {
		out = append(out, j)
	}
	return out
}
