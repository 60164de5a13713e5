package tiling

// GridLayout decides how many columns a grid uses.
type GridLayout int

const (
	// GridAuto asks the Behavior for a column count each frame, so resizing
	// the host area may reflow the grid.
	GridAuto GridLayout = iota
	// GridColumns pins the column count to Grid.Columns.
	GridColumns
)

// span is a half-open 1D interval along one axis.
type span struct {
	lo, hi float64
}

func (s span) size() float64 { return s.hi - s.lo }

// Grid lays children out row-major in a column/row lattice.
//
// The slot list may contain holes (zero ids), which makes drag-dropping into
// specific cells cheap. Holes are collapsed when they grow too numerous.
type Grid struct {
	// Slots is the row-major slot list. A zero id is a hole.
	Slots []TileID `json:"children"`

	// Layout selects auto or fixed column count.
	Layout GridLayout `json:"layout"`

	// Columns is the column count when Layout is GridColumns.
	Columns int `json:"columns,omitempty"`

	// ColShares is the width weight of each column.
	ColShares []float64 `json:"col_shares,omitempty"`

	// RowShares is the height weight of each row.
	RowShares []float64 `json:"row_shares,omitempty"`

	// Recomputed during layout, never persisted.
	colRanges []span
	rowRanges []span
}

// NewGrid constructs an auto-layout grid of the given children.
func NewGrid(children []TileID) *Grid {
	slots := make([]TileID, len(children))
	copy(slots, children)
	return &Grid{Slots: slots}
}

// NewGridWithColumns constructs a grid pinned to the given column count.
func NewGridWithColumns(columns int, children []TileID) *Grid {
	g := NewGrid(children)
	g.Layout = GridColumns
	g.Columns = columns
	return g
}

// Kind returns KindGrid.
func (g *Grid) Kind() ContainerKind { return KindGrid }

// NumChildren counts occupied slots, including invisible children.
func (g *Grid) NumChildren() int {
	n := 0
	for _, slot := range g.Slots {
		if slot != 0 {
			n++
		}
	}
	return n
}

// Children returns the occupied slots in order, skipping holes.
func (g *Grid) Children() []TileID {
	out := make([]TileID, 0, len(g.Slots))
	for _, slot := range g.Slots {
		if slot != 0 {
			out = append(out, slot)
		}
	}
	return out
}

// HasChild reports whether the id occupies a slot.
func (g *Grid) HasChild(id TileID) bool {
	if id == 0 {
		return false
	}
	for _, slot := range g.Slots {
		if slot == id {
			return true
		}
	}
	return false
}

// AddChild appends a child after the last slot.
func (g *Grid) AddChild(id TileID) {
	g.Slots = append(g.Slots, id)
}

// InsertChild puts a child at the given slot index: into the hole if the slot
// is empty, shifting otherwise, appending when the index is past the end.
func (g *Grid) InsertChild(index int, id TileID) {
	if index < len(g.Slots) {
		if g.Slots[index] == 0 {
			g.Slots[index] = id
			return
		}
		g.Slots = append(g.Slots[:index], append([]TileID{id}, g.Slots[index:]...)...)
		return
	}
	g.Slots = append(g.Slots, id)
}

// ReplaceAt puts a child at the given slot index, returning the previous
// occupant if the slot was taken. Out-of-range indices append.
func (g *Grid) ReplaceAt(index int, id TileID) (TileID, bool) {
	if index < len(g.Slots) {
		prev := g.Slots[index]
		g.Slots[index] = id
		return prev, prev != 0
	}
	g.Slots = append(g.Slots, id)
	return 0, false
}

// RemoveChild turns the child's slot into a hole, returning its slot index.
func (g *Grid) RemoveChild(id TileID) (int, bool) {
	if id == 0 {
		return 0, false
	}
	for i, slot := range g.Slots {
		if slot == id {
			g.Slots[i] = 0
			return i, true
		}
	}
	return 0, false
}

// Retain turns rejected children's slots into holes.
func (g *Grid) Retain(keep func(TileID) bool) {
	for i, slot := range g.Slots {
		if slot != 0 && !keep(slot) {
			g.Slots[i] = 0
		}
	}
}

func (g *Grid) simplifyChildren(simplify func(TileID) SimplifyAction) {
	for i, slot := range g.Slots {
		if slot == 0 {
			continue
		}
		switch action := simplify(slot); action.Verdict {
		case SimplifyRemove:
			g.Slots[i] = 0
		case SimplifyKeep:
		case SimplifyReplace:
			g.Slots[i] = action.Replacement
		}
	}
}

func (g *Grid) collapseHoles() {
	kept := g.Slots[:0]
	for _, slot := range g.Slots {
		if slot != 0 {
			kept = append(kept, slot)
		}
	}
	g.Slots = kept
}

// visibleSlots returns the slot list with invisible children filtered out.
// Holes are kept, so drag targets stay where the user left them.
func (g *Grid) visibleSlots(vis interface{ IsVisible(TileID) bool }) []TileID {
	out := make([]TileID, 0, len(g.Slots))
	for _, slot := range g.Slots {
		if slot == 0 || vis.IsVisible(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// cellRect returns the rect of the i-th cell (row-major) from the ranges
// computed by the last layout pass.
func (g *Grid) cellRect(i int) Rect {
	col := i % len(g.colRanges)
	row := i / len(g.colRanges)
	return Rect{
		Min: Pt(g.colRanges[col].lo, g.rowRanges[row].lo),
		Max: Pt(g.colRanges[col].hi, g.rowRanges[row].hi),
	}
}

func (g *Grid) numCells() int { return len(g.colRanges) * len(g.rowRanges) }

// gridLayout sizes the lattice from the column/row shares and lays out each
// visible child into its cell. Trailing holes are trimmed first, and all
// holes are collapsed once they outnumber the smaller lattice dimension.
func gridLayout[Pane any](ts *Tiles[Pane], b Behavior[Pane], g *Grid, rect Rect) {
	for len(g.Slots) > 0 && g.Slots[len(g.Slots)-1] == 0 {
		g.Slots = g.Slots[:len(g.Slots)-1]
	}

	gap := b.Style().GapWidth
	visible := g.visibleSlots(ts)

	numCols := 1
	if g.Layout == GridColumns {
		numCols = g.Columns
	} else {
		numCols = b.GridAutoColumnCount(len(visible), rect, gap)
	}
	numCols = max(numCols, 1)
	numRows := (len(visible) + numCols - 1) / numCols
	numRows = max(numRows, 1)

	g.ColShares = resizeShares(g.ColShares, numCols)
	g.RowShares = resizeShares(g.RowShares, numRows)

	colWidths := sizesFromShares(g.ColShares, rect.Width(), gap)
	rowHeights := sizesFromShares(g.RowShares, rect.Height(), gap)

	g.colRanges = g.colRanges[:0]
	x := rect.Min.X
	for _, w := range colWidths {
		g.colRanges = append(g.colRanges, span{x, x + w})
		x += w + gap
	}

	g.rowRanges = g.rowRanges[:0]
	y := rect.Min.Y
	for _, h := range rowHeights {
		g.rowRanges = append(g.rowRanges, span{y, y + h})
		y += h + gap
	}

	for i, child := range visible {
		if child != 0 {
			ts.LayoutTile(b, g.cellRect(i), child)
		}
	}

	numHoles := numCols*numRows - len(visible)
	for _, slot := range visible {
		if slot == 0 {
			numHoles++
		}
	}
	if numHoles >= min(numCols, numRows) {
		// More holes than there are columns or rows; collapse them all so
		// the grid can shrink next frame.
		g.collapseHoles()
	}
}

// resizeShares grows or truncates a share slice to n entries, padding with 1.
func resizeShares(shares []float64, n int) []float64 {
	for len(shares) < n {
		shares = append(shares, 1)
	}
	return shares[:n]
}

// sizesFromShares divides the gap-adjusted extent proportionally to shares,
// falling back to uniform cells when the total is degenerate.
func sizesFromShares(shares []float64, available, gap float64) []float64 {
	if len(shares) == 0 {
		return nil
	}
	available = max(available-gap*float64(len(shares)-1), 0)

	total := 0.0
	for _, s := range shares {
		total += s
	}

	sizes := make([]float64, len(shares))
	if total <= 0 {
		for i := range sizes {
			sizes[i] = available / float64(len(shares))
		}
		return sizes
	}
	for i, s := range shares {
		sizes[i] = s / total * available
	}
	return sizes
}

// shrinkIndexedShares is the slice-indexed variant of shrinkShares, used for
// grid column and row resizing where shares are positional rather than keyed.
func shrinkIndexedShares(style Style, shares []float64, indices []int, target float64, sizeOf func(int) float64) float64 {
	if len(indices) == 0 {
		return 0
	}

	totalShares := 0.0
	totalSize := 0.0
	for _, i := range indices {
		totalShares += shares[i]
		totalSize += sizeOf(i)
	}
	if totalSize <= 0 {
		return 0
	}

	sharesPerUnit := totalShares / totalSize
	minSizeInShares := sharesPerUnit * style.MinSize
	targetInShares := sharesPerUnit * target

	totalLost := 0.0
	for _, i := range indices {
		spare := max(shares[i]-minSizeInShares, 0)
		needed := max(targetInShares-totalLost, 0)
		shrinkBy := min(spare, needed)

		shares[i] -= shrinkBy
		totalLost += shrinkBy
	}
	return totalLost
}
