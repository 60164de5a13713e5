package tiling

// Tabs is a container showing exactly one child at a time.
type Tabs struct {
	// ChildIDs are the tabs, in order.
	ChildIDs []TileID `json:"children"`

	// Active is the currently open tab, or zero for none.
	Active TileID `json:"active,omitempty"`
}

// NewTabs constructs a Tabs container with the first child active.
func NewTabs(children []TileID) *Tabs {
	t := &Tabs{ChildIDs: children}
	if len(children) > 0 {
		t.Active = children[0]
	}
	return t
}

// Kind returns KindTabs.
func (t *Tabs) Kind() ContainerKind { return KindTabs }

// NumChildren counts children, including invisible ones.
func (t *Tabs) NumChildren() int { return len(t.ChildIDs) }

// Children returns a copy of the child ids in order.
func (t *Tabs) Children() []TileID {
	out := make([]TileID, len(t.ChildIDs))
	copy(out, t.ChildIDs)
	return out
}

// HasChild reports whether the id is a tab here.
func (t *Tabs) HasChild(id TileID) bool {
	for _, child := range t.ChildIDs {
		if child == id {
			return true
		}
	}
	return false
}

// AddChild appends a tab without activating it.
func (t *Tabs) AddChild(id TileID) {
	t.ChildIDs = append(t.ChildIDs, id)
}

// InsertChild inserts a tab at the given index, clamped to the list.
func (t *Tabs) InsertChild(index int, id TileID) {
	index = min(index, len(t.ChildIDs))
	t.ChildIDs = append(t.ChildIDs[:index], append([]TileID{id}, t.ChildIDs[index:]...)...)
}

// SetActive makes the given child the open tab.
func (t *Tabs) SetActive(id TileID) {
	t.Active = id
}

// IsActive reports whether the given child is the open tab.
func (t *Tabs) IsActive(id TileID) bool {
	return id != 0 && t.Active == id
}

// RemoveChild detaches a tab, returning its former index.
func (t *Tabs) RemoveChild(id TileID) (int, bool) {
	for i, child := range t.ChildIDs {
		if child == id {
			t.ChildIDs = append(t.ChildIDs[:i], t.ChildIDs[i+1:]...)
			return i, true
		}
	}
	return 0, false
}

// Retain keeps only approved tabs, in order.
func (t *Tabs) Retain(keep func(TileID) bool) {
	kept := t.ChildIDs[:0]
	for _, child := range t.ChildIDs {
		if keep(child) {
			kept = append(kept, child)
		}
	}
	t.ChildIDs = kept
}

func (t *Tabs) simplifyChildren(simplify func(TileID) SimplifyAction) {
	kept := t.ChildIDs[:0]
	for _, child := range t.ChildIDs {
		switch action := simplify(child); action.Verdict {
		case SimplifyRemove:
		case SimplifyKeep:
			kept = append(kept, child)
		case SimplifyReplace:
			if t.Active == child {
				t.Active = action.Replacement
			}
			kept = append(kept, action.Replacement)
		}
	}
	t.ChildIDs = kept
}

// tabsLayout reserves the tab bar strip and lays out only the active child.
// The active tab is revalidated first: if it is gone or invisible, the first
// visible child takes over (or none, if every child is hidden).
func tabsLayout[Pane any](ts *Tiles[Pane], b Behavior[Pane], t *Tabs, rect Rect) {
	if t.Active != 0 && (!t.HasChild(t.Active) || !ts.IsVisible(t.Active)) {
		t.Active = 0
	}

	if t.Active == 0 {
		for _, child := range t.ChildIDs {
			if ts.IsVisible(child) {
				t.Active = child
				break
			}
		}
	}

	activeRect := rect
	activeRect.Min.Y += b.Style().TabBarHeight

	if t.Active != 0 {
		// Only the active tab is laid out; the others are skipped entirely.
		ts.LayoutTile(b, activeRect, t.Active)
	}
}
