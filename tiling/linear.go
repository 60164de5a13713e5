package tiling

// LinearDir is the main axis of a Linear container.
type LinearDir int

const (
	// Horizontal lays children out left-to-right.
	Horizontal LinearDir = iota
	// Vertical lays children out top-down.
	Vertical
)

// String returns the direction name.
func (d LinearDir) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Shares maps children to positive weights governing proportional sizing
// along the main axis. Absent children weigh the default 1. Shares for
// currently invisible tiles are kept so they can come back unchanged.
type Shares map[TileID]float64

// Of returns the share of a child, defaulting to 1.
func (s Shares) Of(id TileID) float64 {
	if share, ok := s[id]; ok {
		return share
	}
	return 1
}

// Replace moves the share of one id to another, used when a simplify pass
// substitutes a child.
func (s Shares) Replace(oldID, newID TileID) {
	if share, ok := s[oldID]; ok {
		delete(s, oldID)
		s[newID] = share
	}
}

// Retain drops share entries for children that no longer exist.
func (s Shares) Retain(keep func(TileID) bool) {
	for id := range s {
		if !keep(id) {
			delete(s, id)
		}
	}
}

// Split divides available space among the children proportionally to their
// shares. A zero or degenerate total falls back to uniform division.
func (s Shares) Split(children []TileID, available float64) []float64 {
	total := 0.0
	for _, child := range children {
		total += s.Of(child)
	}
	sizes := make([]float64, len(children))
	if total <= 0 {
		for i := range sizes {
			sizes[i] = available / float64(len(children))
		}
		return sizes
	}
	for i, child := range children {
		sizes[i] = available * s.Of(child) / total
	}
	return sizes
}

// Linear is a horizontal or vertical share-split container.
type Linear struct {
	ChildIDs []TileID  `json:"children"`
	Dir      LinearDir `json:"dir"`
	Shares   Shares    `json:"shares,omitempty"`
}

// NewLinear constructs a Linear container with uniform shares.
func NewLinear(dir LinearDir, children []TileID) *Linear {
	return &Linear{ChildIDs: children, Dir: dir, Shares: Shares{}}
}

// NewBinaryLinear constructs a two-way split where the first child gets the
// given fraction of the space. The shares are scaled by two so the total
// stays equal to the child count, which keeps later insertions cheap.
func NewBinaryLinear(dir LinearDir, first, second TileID, fraction float64) *Linear {
	l := NewLinear(dir, []TileID{first, second})
	l.SetShare(first, 2*fraction)
	l.SetShare(second, 2*(1-fraction))
	return l
}

// Kind returns KindHorizontal or KindVertical.
func (l *Linear) Kind() ContainerKind {
	if l.Dir == Vertical {
		return KindVertical
	}
	return KindHorizontal
}

// NumChildren counts children, including invisible ones.
func (l *Linear) NumChildren() int { return len(l.ChildIDs) }

// Children returns a copy of the child ids in order.
func (l *Linear) Children() []TileID {
	out := make([]TileID, len(l.ChildIDs))
	copy(out, l.ChildIDs)
	return out
}

// HasChild reports whether the id is a direct child.
func (l *Linear) HasChild(id TileID) bool {
	for _, child := range l.ChildIDs {
		if child == id {
			return true
		}
	}
	return false
}

// AddChild appends a child with the default share.
func (l *Linear) AddChild(id TileID) {
	l.ChildIDs = append(l.ChildIDs, id)
}

// InsertChild inserts a child at the given index, clamped to the list.
func (l *Linear) InsertChild(index int, id TileID) {
	index = min(index, len(l.ChildIDs))
	l.ChildIDs = append(l.ChildIDs[:index], append([]TileID{id}, l.ChildIDs[index:]...)...)
}

// Share returns the child's share, defaulting to 1.
func (l *Linear) Share(id TileID) float64 {
	return l.Shares.Of(id)
}

// SetShare assigns a share weight to a child.
func (l *Linear) SetShare(id TileID, share float64) {
	if l.Shares == nil {
		l.Shares = Shares{}
	}
	l.Shares[id] = share
}

// RemoveChild detaches a child, returning its former index.
// Its share entry is kept until the next layout garbage-collects it.
func (l *Linear) RemoveChild(id TileID) (int, bool) {
	for i, child := range l.ChildIDs {
		if child == id {
			l.ChildIDs = append(l.ChildIDs[:i], l.ChildIDs[i+1:]...)
			return i, true
		}
	}
	return 0, false
}

// Retain keeps only approved children, in order.
func (l *Linear) Retain(keep func(TileID) bool) {
	kept := l.ChildIDs[:0]
	for _, child := range l.ChildIDs {
		if keep(child) {
			kept = append(kept, child)
		}
	}
	l.ChildIDs = kept
}

func (l *Linear) simplifyChildren(simplify func(TileID) SimplifyAction) {
	kept := l.ChildIDs[:0]
	for _, child := range l.ChildIDs {
		switch action := simplify(child); action.Verdict {
		case SimplifyRemove:
		case SimplifyKeep:
			kept = append(kept, child)
		case SimplifyReplace:
			l.Shares.Replace(child, action.Replacement)
			kept = append(kept, action.Replacement)
		}
	}
	l.ChildIDs = kept
}

// visibleChildren filters the child list down to visible tiles.
func (l *Linear) visibleChildren(vis interface{ IsVisible(TileID) bool }) []TileID {
	var out []TileID
	for _, child := range l.ChildIDs {
		if vis.IsVisible(child) {
			out = append(out, child)
		}
	}
	return out
}

// linearLayout splits the gap-adjusted main-axis extent among visible
// children proportionally to their shares and lays them out contiguously.
func linearLayout[Pane any](ts *Tiles[Pane], b Behavior[Pane], l *Linear, rect Rect) {
	// Drop share entries for children that are gone.
	childSet := make(map[TileID]struct{}, len(l.ChildIDs))
	for _, child := range l.ChildIDs {
		childSet[child] = struct{}{}
	}
	l.Shares.Retain(func(id TileID) bool {
		_, ok := childSet[id]
		return ok
	})

	visible := l.visibleChildren(ts)
	if len(visible) == 0 {
		return
	}

	gap := b.Style().GapWidth
	totalGap := gap * float64(len(visible)-1)

	if l.Dir == Horizontal {
		available := max(rect.Width()-totalGap, 0)
		widths := l.Shares.Split(visible, available)
		x := rect.Min.X
		for i, child := range visible {
			childRect := NewRect(x, rect.Min.Y, widths[i], rect.Height())
			ts.LayoutTile(b, childRect, child)
			x += widths[i] + gap
		}
	} else {
		available := max(rect.Height()-totalGap, 0)
		heights := l.Shares.Split(visible, available)
		y := rect.Min.Y
		for i, child := range visible {
			childRect := NewRect(rect.Min.X, y, rect.Width(), heights[i])
			ts.LayoutTile(b, childRect, child)
			y += heights[i] + gap
		}
	}
}

// shrinkShares shrinks the given children by a total of target (in host
// units), never taking a child below the style minimum size. Children are
// visited in order, so the nearest neighbor gives up space first. Returns
// how many shares were actually freed.
func shrinkShares(style Style, shares Shares, children []TileID, target float64, sizeOf func(TileID) float64) float64 {
	if len(children) == 0 {
		return 0
	}

	totalShares := 0.0
	totalSize := 0.0
	for _, child := range children {
		totalShares += shares.Of(child)
		totalSize += sizeOf(child)
	}
	if totalSize <= 0 {
		return 0
	}

	sharesPerUnit := totalShares / totalSize
	minSizeInShares := sharesPerUnit * style.MinSize
	targetInShares := sharesPerUnit * target

	totalLost := 0.0
	for _, child := range children {
		share := shares.Of(child)
		spare := max(share-minSizeInShares, 0)
		needed := max(targetInShares-totalLost, 0)
		shrinkBy := min(spare, needed)

		shares[child] = share - shrinkBy
		totalLost += shrinkBy
	}
	return totalLost
}
