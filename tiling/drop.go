package tiling

import "math"

// atEnd is an insertion index meaning "after the last child". Indices are
// clamped on insertion, so any large value works; this one reads better.
const atEnd = math.MaxInt

// previewThickness is the width of the drop zones between linear siblings.
const previewThickness = 12.0

// tabPreviewThickness is the narrower zone between tab buttons.
const tabPreviewThickness = 6.0

// ContainerInsertion names a container kind and a child index within it.
// If the target tile is not a container of that kind, it gets wrapped in a
// new one on insertion.
type ContainerInsertion struct {
	Kind  ContainerKind
	Index int
}

// InsertionPoint is a place in the tree where a tile can be inserted.
type InsertionPoint struct {
	ParentID  TileID
	Insertion ContainerInsertion
}

// dropContext accumulates candidate drop targets during the interaction
// walk. Every tile and gap registers itself; the candidate whose preview
// center is closest to the pointer (squared distance) wins.
type dropContext struct {
	enabled    bool
	draggedID  TileID
	hasPointer bool
	pointer    Point

	bestDistSq    float64
	bestInsertion *InsertionPoint
	previewRect   *Rect
}

func newDropContext(draggedID TileID, hasPointer bool, pointer Point) *dropContext {
	return &dropContext{
		enabled:    true,
		draggedID:  draggedID,
		hasPointer: hasPointer,
		pointer:    pointer,
		bestDistSq: math.Inf(1),
	}
}

// onTile registers the whole-tile drop targets: half-splits on both axes
// (skipping the axis the tile already splits on, where the sibling gaps are
// better targets) and a tab insertion below the would-be tab bar.
func (dc *dropContext) onTile(style Style, parentID TileID, rect Rect, kind ContainerKind, isContainer bool) {
	if !dc.enabled {
		return
	}

	if !isContainer || kind != KindHorizontal {
		left, right := rect.SplitLeftRightAtFraction(0.5)
		dc.suggestRect(InsertionPoint{parentID, ContainerInsertion{KindHorizontal, 0}}, left)
		dc.suggestRect(InsertionPoint{parentID, ContainerInsertion{KindHorizontal, atEnd}}, right)
	}

	if !isContainer || kind != KindVertical {
		top, bottom := rect.SplitTopBottomAtFraction(0.5)
		dc.suggestRect(InsertionPoint{parentID, ContainerInsertion{KindVertical, 0}}, top)
		dc.suggestRect(InsertionPoint{parentID, ContainerInsertion{KindVertical, atEnd}}, bottom)
	}

	_, below := rect.SplitTopBottomAtY(rect.Min.Y + style.TabBarHeight)
	dc.suggestRect(InsertionPoint{parentID, ContainerInsertion{KindTabs, atEnd}}, below)
}

// suggestRect offers a candidate; the one closest to the pointer sticks.
func (dc *dropContext) suggestRect(insertion InsertionPoint, preview Rect) {
	if !dc.enabled || !dc.hasPointer {
		return
	}
	distSq := dc.pointer.DistSq(preview.Center())
	if distSq < dc.bestDistSq {
		dc.bestDistSq = distSq
		dc.bestInsertion = &insertion
		dc.previewRect = &preview
	}
}

// linearDropZones registers the gap targets of a linear container: before
// the first child, between each pair of siblings, after the last one, and
// the dragged child's own hole so a drop can cancel back into place.
func linearDropZones[Pane any](ts *Tiles[Pane], dc *dropContext, parentID TileID, l *Linear) {
	kind := l.Kind()
	draggedIndex := -1
	for i, child := range l.ChildIDs {
		if child == dc.draggedID {
			draggedIndex = i
		}
	}

	afterRect := func(rect Rect) Rect {
		if l.Dir == Horizontal {
			return RectFromMinMax(Pt(rect.Max.X-previewThickness, rect.Min.Y), rect.Max)
		}
		return RectFromMinMax(Pt(rect.Min.X, rect.Max.Y-previewThickness), rect.Max)
	}

	dropZones(previewThickness, l.ChildIDs, draggedIndex, l.Dir,
		func(id TileID) (Rect, bool) { return ts.TryRect(id) },
		func(rect Rect, i int) {
			dc.suggestRect(InsertionPoint{parentID, ContainerInsertion{kind, i}}, rect)
		},
		afterRect,
	)
}

// dropZones walks a child list along one axis and registers a drop rect for
// each gap. Invisible children are skipped; the dragged child contributes
// its own rect (the hole) instead of gaps on either side of it.
func dropZones(thickness float64, children []TileID, draggedIndex int, dir LinearDir,
	getRect func(TileID) (Rect, bool),
	addDropRect func(Rect, int),
	afterRect func(Rect) Rect,
) {
	beforeRect := func(rect Rect) Rect {
		if dir == Horizontal {
			return RectFromMinMax(rect.Min, Pt(rect.Min.X+thickness, rect.Max.Y))
		}
		return RectFromMinMax(rect.Min, Pt(rect.Max.X, rect.Min.Y+thickness))
	}
	betweenRects := func(a, b Rect) Rect {
		if dir == Horizontal {
			center := Pt(a.Max.X, a.Center().Y).Lerp(Pt(b.Min.X, b.Center().Y), 0.5)
			return RectFromCenterSize(center, thickness, a.Height())
		}
		center := Pt(a.Center().X, a.Max.Y).Lerp(Pt(b.Center().X, b.Min.Y), 0.5)
		return RectFromCenterSize(center, a.Width(), thickness)
	}

	havePrev := false
	var prevRect Rect

	for i, child := range children {
		rect, ok := getRect(child)
		if !ok {
			continue
		}

		switch {
		case i == draggedIndex:
			// The hole the dragged tile came from.
			addDropRect(rect, i)
		case havePrev:
			if i-1 != draggedIndex {
				addDropRect(betweenRects(prevRect, rect), i)
			}
		default:
			addDropRect(beforeRect(rect), 0)
		}

		prevRect = rect
		havePrev = true
	}

	if havePrev && draggedIndex != len(children)-1 {
		addDropRect(afterRect(prevRect), len(children))
	}
}

// tabDropZones registers the gaps between tab buttons as drop targets, so a
// tile can be dropped into a specific tab position. Button rects come from
// the Behavior's tab bar rendering.
func tabDropZones(dc *dropContext, parentID TileID, t *Tabs, buttonRects map[TileID]Rect) {
	draggedIndex := -1
	for i, child := range t.ChildIDs {
		if child == dc.draggedID {
			draggedIndex = i
		}
	}

	afterRect := func(rect Rect) Rect {
		size := rect
		if draggedIndex >= 0 {
			if r, ok := buttonRects[t.ChildIDs[draggedIndex]]; ok {
				size = r
			}
		}
		return NewRect(rect.Max.X, rect.Min.Y, size.Width(), size.Height())
	}

	dropZones(tabPreviewThickness, t.ChildIDs, draggedIndex, Horizontal,
		func(id TileID) (Rect, bool) {
			rect, ok := buttonRects[id]
			return rect, ok
		},
		func(rect Rect, i int) {
			dc.suggestRect(InsertionPoint{parentID, ContainerInsertion{KindTabs, i}}, rect)
		},
		afterRect,
	)
}

// gridDropZones registers every lattice cell (occupied or hole) of the grid
// as a drop target at its slot index.
func gridDropZones(dc *dropContext, parentID TileID, g *Grid) {
	for i := 0; i < g.numCells(); i++ {
		dc.suggestRect(InsertionPoint{parentID, ContainerInsertion{KindGrid, i}}, g.cellRect(i))
	}
}
