package tiling

// Tiles is the arena owning every tile in a tree, keyed by id. It carries no
// root; the Tree does. Visibility is stored inverted (only invisible ids) so
// new tiles show up without bookkeeping, and the rect cache is refilled by
// every layout pass and never persisted.
type Tiles[Pane any] struct {
	tiles     map[TileID]*Tile[Pane]
	invisible map[TileID]struct{}
	rects     map[TileID]Rect
}

// NewTiles constructs an empty arena.
func NewTiles[Pane any]() *Tiles[Pane] {
	return &Tiles[Pane]{
		tiles:     map[TileID]*Tile[Pane]{},
		invisible: map[TileID]struct{}{},
		rects:     map[TileID]Rect{},
	}
}

// Len counts tiles, including invisible ones.
func (ts *Tiles[Pane]) Len() int { return len(ts.tiles) }

// IsEmpty reports whether the arena holds no tiles at all.
func (ts *Tiles[Pane]) IsEmpty() bool { return len(ts.tiles) == 0 }

// Get looks up a tile by id.
func (ts *Tiles[Pane]) Get(id TileID) (*Tile[Pane], bool) {
	tile, ok := ts.tiles[id]
	return tile, ok
}

// TileIDs returns every id, in arbitrary order.
func (ts *Tiles[Pane]) TileIDs() []TileID {
	out := make([]TileID, 0, len(ts.tiles))
	for id := range ts.tiles {
		out = append(out, id)
	}
	return out
}

// Insert puts a tile at a specific id, replacing any previous occupant.
func (ts *Tiles[Pane]) Insert(id TileID, tile *Tile[Pane]) {
	ts.tiles[id] = tile
}

// Remove deletes a single tile, returning it. Children are left in place.
func (ts *Tiles[Pane]) Remove(id TileID) (*Tile[Pane], bool) {
	tile, ok := ts.tiles[id]
	if ok {
		delete(ts.tiles, id)
	}
	return tile, ok
}

// RemoveRecursively deletes a tile and its whole subtree, returning every
// removed tile in unspecified order.
func (ts *Tiles[Pane]) RemoveRecursively(id TileID) []*Tile[Pane] {
	var removed []*Tile[Pane]
	ts.removeRecursivelyImpl(id, &removed)
	return removed
}

func (ts *Tiles[Pane]) removeRecursivelyImpl(id TileID, removed *[]*Tile[Pane]) {
	tile, ok := ts.Remove(id)
	if !ok {
		return
	}
	if tile.IsContainer() {
		for _, child := range tile.Container.Children() {
			ts.removeRecursivelyImpl(child, removed)
		}
	}
	*removed = append(*removed, tile)
}

// InsertNew adds a tile under a freshly generated id.
func (ts *Tiles[Pane]) InsertNew(tile *Tile[Pane]) TileID {
	id := NewTileID()
	for _, taken := ts.tiles[id]; taken; _, taken = ts.tiles[id] {
		id = NewTileID()
	}
	ts.tiles[id] = tile
	return id
}

// InsertPane adds a new leaf holding the given pane.
func (ts *Tiles[Pane]) InsertPane(pane Pane) TileID {
	return ts.InsertNew(NewPaneTile(pane))
}

// InsertContainer adds a new container tile.
func (ts *Tiles[Pane]) InsertContainer(c Container) TileID {
	return ts.InsertNew(NewContainerTile[Pane](c))
}

// InsertTabTile adds a new tab container of the given children.
func (ts *Tiles[Pane]) InsertTabTile(children []TileID) TileID {
	return ts.InsertContainer(NewTabs(children))
}

// InsertHorizontalTile adds a new left-to-right split of the given children.
func (ts *Tiles[Pane]) InsertHorizontalTile(children []TileID) TileID {
	return ts.InsertContainer(NewLinear(Horizontal, children))
}

// InsertVerticalTile adds a new top-down split of the given children.
func (ts *Tiles[Pane]) InsertVerticalTile(children []TileID) TileID {
	return ts.InsertContainer(NewLinear(Vertical, children))
}

// InsertGridTile adds a new auto-layout grid of the given children.
func (ts *Tiles[Pane]) InsertGridTile(children []TileID) TileID {
	return ts.InsertContainer(NewGrid(children))
}

// ParentOf finds the container holding the given child, or zero.
func (ts *Tiles[Pane]) ParentOf(child TileID) (TileID, bool) {
	for id, tile := range ts.tiles {
		if tile.IsContainer() && tile.Container.HasChild(child) {
			return id, true
		}
	}
	return 0, false
}

// IsRoot reports whether no container claims the tile as a child.
func (ts *Tiles[Pane]) IsRoot(id TileID) bool {
	_, ok := ts.ParentOf(id)
	return !ok
}

// FindPane returns the id of the first pane the predicate matches.
func (ts *Tiles[Pane]) FindPane(match func(*Pane) bool) (TileID, bool) {
	for id, tile := range ts.tiles {
		if tile.IsPane() && match(tile.Pane) {
			return id, true
		}
	}
	return 0, false
}

// IsVisible reports tile visibility. Tiles are visible by default; invisible
// tiles keep their place in the hierarchy but take no space.
func (ts *Tiles[Pane]) IsVisible(id TileID) bool {
	_, hidden := ts.invisible[id]
	return !hidden
}

// SetVisible shows or hides a tile.
func (ts *Tiles[Pane]) SetVisible(id TileID, visible bool) {
	if visible {
		delete(ts.invisible, id)
	} else {
		ts.invisible[id] = struct{}{}
	}
}

// ToggleVisibility flips a tile's visibility.
func (ts *Tiles[Pane]) ToggleVisibility(id TileID) {
	ts.SetVisible(id, !ts.IsVisible(id))
}

// TryRect returns the rect the last layout pass gave the tile, if it is
// visible and was laid out.
func (ts *Tiles[Pane]) TryRect(id TileID) (Rect, bool) {
	if !ts.IsVisible(id) {
		return Rect{}, false
	}
	rect, ok := ts.rects[id]
	return rect, ok
}

// RectOf is TryRect with a zero-rect fallback for callers that only paint.
func (ts *Tiles[Pane]) RectOf(id TileID) Rect {
	rect, ok := ts.TryRect(id)
	if !ok {
		logger.Warn("no rect for tile", "tile", id)
	}
	return rect
}

func (ts *Tiles[Pane]) clearRects() {
	clear(ts.rects)
}

// LayoutTile records the tile's rect and recurses into container children.
// The tile is taken out of the arena while its subtree is processed, which
// also makes accidental self-reference cycles terminate.
func (ts *Tiles[Pane]) LayoutTile(b Behavior[Pane], rect Rect, id TileID) {
	tile, ok := ts.Remove(id)
	if !ok {
		logger.Warn("missing tile during layout", "tile", id)
		return
	}
	ts.rects[id] = rect

	if tile.IsContainer() {
		switch c := tile.Container.(type) {
		case *Tabs:
			tabsLayout(ts, b, c, rect)
		case *Linear:
			linearLayout(ts, b, c, rect)
		case *Grid:
			gridLayout(ts, b, c, rect)
		}
	}

	ts.tiles[id] = tile
}

// insertAt places an already-inserted tile at the given insertion point.
// When the parent is not a container of the requested kind, the parent is
// swapped out for a new container of that kind holding both the old parent
// and the inserted tile, so the parent's own parent never notices.
func (ts *Tiles[Pane]) insertAt(point InsertionPoint, inserted TileID) {
	parentTile, ok := ts.Remove(point.ParentID)
	if !ok {
		logger.Warn("missing insertion parent", "tile", point.ParentID)
		return
	}

	kind := point.Insertion.Kind
	index := point.Insertion.Index

	if parentTile.IsContainer() && parentTile.Container.Kind() == kind {
		switch c := parentTile.Container.(type) {
		case *Tabs:
			c.InsertChild(index, inserted)
			c.SetActive(inserted)
		case *Linear:
			c.InsertChild(index, inserted)
		case *Grid:
			c.InsertChild(index, inserted)
		}
		ts.tiles[point.ParentID] = parentTile
		return
	}

	// Wrap: the old parent moves to a fresh id and a new container of the
	// wanted kind takes over the old id.
	movedID := ts.InsertNew(parentTile)
	var wrapper Container
	switch kind {
	case KindTabs:
		t := NewTabs([]TileID{movedID})
		t.InsertChild(min(index, 1), inserted)
		t.SetActive(inserted)
		wrapper = t
	case KindHorizontal:
		l := NewLinear(Horizontal, []TileID{movedID})
		l.InsertChild(min(index, 1), inserted)
		wrapper = l
	case KindVertical:
		l := NewLinear(Vertical, []TileID{movedID})
		l.InsertChild(min(index, 1), inserted)
		wrapper = l
	case KindGrid:
		wrapper = NewGrid([]TileID{movedID, inserted})
	}
	ts.tiles[point.ParentID] = NewContainerTile[Pane](wrapper)
}

// GC walks the tree from the root, severing cycles and duplicate references,
// dropping panes the Behavior no longer retains, and finally freeing every
// tile unreachable from the root. The root itself is never removed.
func (ts *Tiles[Pane]) GC(b Behavior[Pane], root TileID) {
	visited := make(map[TileID]struct{}, len(ts.tiles))

	if root != 0 {
		// The verdict on the root is ignored; the root always stays.
		ts.gcTileID(b, visited, root)
	}

	if len(visited) < len(ts.tiles) {
		// Happens when the tree was built or deserialized in a bad state.
		var orphans []TileID
		for id := range ts.tiles {
			if _, ok := visited[id]; !ok {
				orphans = append(orphans, id)
			}
		}
		logger.Warn("gc collecting unreachable tiles", "tiles", orphans)
	}

	for id := range ts.invisible {
		if _, ok := visited[id]; !ok {
			delete(ts.invisible, id)
		}
	}
	for id := range ts.tiles {
		if _, ok := visited[id]; !ok {
			delete(ts.tiles, id)
		}
	}
}

// gcTileID reports whether the tile should be kept in its parent. A tile
// seen twice (a cycle or duplicate reference) is severed at the second
// sighting.
func (ts *Tiles[Pane]) gcTileID(b Behavior[Pane], visited map[TileID]struct{}, id TileID) bool {
	// Sever before removing: the tile stays in the arena under its first
	// parent, only the duplicate edge is dropped.
	if _, seen := visited[id]; seen {
		logger.Warn("cycle or duplicate tile reference", "tile", id)
		return false
	}
	tile, ok := ts.Remove(id)
	if !ok {
		return false
	}
	visited[id] = struct{}{}

	if tile.IsPane() {
		if !b.RetainPane(tile.Pane) {
			return false
		}
	} else {
		tile.Container.Retain(func(child TileID) bool {
			return ts.gcTileID(b, visited, child)
		})
	}

	ts.tiles[id] = tile
	return true
}

// Simplify normalizes the subtree at id per the options and returns the
// verdict the parent should apply. A root-level call (nil parentKind) never
// yields a remove verdict for an existing tile: the root stays even when
// empty.
func (ts *Tiles[Pane]) Simplify(options SimplificationOptions, id TileID, parentKind *ContainerKind) SimplifyAction {
	tile, ok := ts.Remove(id)
	if !ok {
		logger.Warn("missing tile during simplify", "tile", id)
		return simplifyRemove()
	}

	action := ts.simplifyTile(options, id, tile, parentKind)
	if action.Verdict == SimplifyRemove && parentKind == nil {
		logger.Warn("refusing to remove root tile during simplify", "tile", id)
		action = simplifyKeep()
	}
	if action.Verdict == SimplifyKeep {
		ts.tiles[id] = tile
	}
	return action
}

// simplifyTile computes the verdict for one tile. The tile itself is out of
// the arena while its children recurse; the caller reinserts it on keep.
func (ts *Tiles[Pane]) simplifyTile(options SimplificationOptions, id TileID, tile *Tile[Pane], parentKind *ContainerKind) SimplifyAction {
	if tile.IsContainer() {
		container := tile.Container
		kind := container.Kind()
		container.simplifyChildren(func(child TileID) SimplifyAction {
			return ts.Simplify(options, child, &kind)
		})

		if kind == KindTabs {
			if options.PruneEmptyTabs && container.NumChildren() == 0 {
				logger.Debug("simplify: removing empty tabs container", "tile", id)
				return simplifyRemove()
			}
			if options.PruneSingleChildTabs {
				if only, ok := OnlyChild(container); ok {
					childIsPane := false
					if child, ok := ts.Get(only); ok {
						childIsPane = child.IsPane()
					}
					if options.AllPanesMustHaveTabs && childIsPane &&
						(parentKind == nil || *parentKind != KindTabs) {
						// Keep the lone tab: the pane needs it.
					} else {
						logger.Debug("simplify: collapsing single-child tabs container", "tile", id)
						return simplifyReplace(only)
					}
				}
			}
		} else {
			if options.JoinNestedLinearContainers {
				if parent, ok := container.(*Linear); ok {
					ts.joinNestedLinear(parent)
				}
			}
			if options.PruneEmptyContainers && container.NumChildren() == 0 {
				logger.Debug("simplify: removing empty container", "tile", id)
				return simplifyRemove()
			}
			if options.PruneSingleChildContainers {
				if only, ok := OnlyChild(container); ok {
					logger.Debug("simplify: collapsing single-child container", "tile", id)
					return simplifyReplace(only)
				}
			}
		}
	}

	return simplifyKeep()
}

// joinNestedLinear splices same-direction linear children into the parent.
// Each absorbed child's grandchildren have their shares rescaled so they
// keep exactly the footprint the child occupied in the parent.
func (ts *Tiles[Pane]) joinNestedLinear(parent *Linear) {
	newChildren := make([]TileID, 0, len(parent.ChildIDs))
	for _, childID := range parent.ChildIDs {
		childTile, ok := ts.Get(childID)
		if !ok || !childTile.IsContainer() {
			newChildren = append(newChildren, childID)
			continue
		}
		child, ok := childTile.Container.(*Linear)
		if !ok || child.Dir != parent.Dir {
			newChildren = append(newChildren, childID)
			continue
		}

		logger.Debug("simplify: absorbing nested linear container", "children", len(child.ChildIDs))

		childShareSum := 0.0
		for _, grandchild := range child.ChildIDs {
			childShareSum += child.Shares.Of(grandchild)
		}
		shareNormalizer := 1.0
		if childShareSum > 0 {
			shareNormalizer = parent.Shares.Of(childID) / childShareSum
		}
		for _, grandchild := range child.ChildIDs {
			newChildren = append(newChildren, grandchild)
			parent.SetShare(grandchild, child.Shares.Of(grandchild)*shareNormalizer)
		}
		delete(ts.tiles, childID)
	}
	parent.ChildIDs = newChildren
}

// MakeAllPanesChildrenOfTabs wraps every pane whose parent is not a tab
// container in a fresh single-tab container.
func (ts *Tiles[Pane]) MakeAllPanesChildrenOfTabs(parentIsTabs bool, id TileID) {
	tile, ok := ts.Remove(id)
	if !ok {
		logger.Warn("missing tile while wrapping panes in tabs", "tile", id)
		return
	}

	if tile.IsPane() {
		if !parentIsTabs {
			// The pane moves to a fresh id; a tab container takes its old
			// id, so the parent's child list needs no update.
			movedID := ts.InsertNew(tile)
			ts.tiles[id] = NewContainerTile[Pane](NewTabs([]TileID{movedID}))
			return
		}
	} else {
		isTabs := tile.Container.Kind() == KindTabs
		for _, child := range tile.Container.Children() {
			ts.MakeAllPanesChildrenOfTabs(isTabs, child)
		}
	}

	ts.tiles[id] = tile
}

// MakeActive walks the subtree and switches every tab container onto the
// path leading to tiles the predicate matches. Returns whether any match
// was found in the subtree.
func (ts *Tiles[Pane]) MakeActive(id TileID, shouldActivate func(TileID, *Tile[Pane]) bool) bool {
	tile, ok := ts.Remove(id)
	if !ok {
		logger.Warn("missing tile during make-active", "tile", id)
		return false
	}

	activate := shouldActivate(id, tile)

	if tile.IsContainer() {
		var activeChild TileID
		for _, child := range tile.Container.Children() {
			if ts.MakeActive(child, shouldActivate) {
				activeChild = child
			}
		}
		if activeChild != 0 {
			if tabs, ok := tile.Container.(*Tabs); ok {
				tabs.SetActive(activeChild)
			}
			activate = true
		}
	}

	ts.tiles[id] = tile
	return activate
}
