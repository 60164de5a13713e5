package tiling

// Tile is a node in the tree: either a pane (a leaf holding user content of
// type Pane) or a container of more tiles. Exactly one of the two fields is
// set; the engine never inspects pane contents except through the Behavior.
type Tile[Pane any] struct {
	Pane      *Pane
	Container Container
}

// NewPaneTile wraps a pane payload in a tile.
func NewPaneTile[Pane any](pane Pane) *Tile[Pane] {
	return &Tile[Pane]{Pane: &pane}
}

// NewContainerTile wraps a container in a tile.
func NewContainerTile[Pane any](c Container) *Tile[Pane] {
	return &Tile[Pane]{Container: c}
}

// IsPane reports whether the tile is a leaf.
func (t *Tile[Pane]) IsPane() bool {
	return t.Pane != nil
}

// IsContainer reports whether the tile is a container.
func (t *Tile[Pane]) IsContainer() bool {
	return t.Container != nil
}

// Kind returns the container kind, or false for panes.
func (t *Tile[Pane]) Kind() (ContainerKind, bool) {
	if t.Container == nil {
		return 0, false
	}
	return t.Container.Kind(), true
}

// SetKind converts the tile's container to a different kind, keeping the
// child order. Shares and the active tab do not survive the conversion.
// No-op for panes and for containers already of that kind.
func (t *Tile[Pane]) SetKind(kind ContainerKind) {
	if t.Container == nil || t.Container.Kind() == kind {
		return
	}
	t.Container = NewContainer(kind, t.Container.Children())
}
