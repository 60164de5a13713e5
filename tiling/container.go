package tiling

// ContainerKind is the layout type of a container.
type ContainerKind int

const (
	// KindTabs shows one child at a time behind a tab bar.
	KindTabs ContainerKind = iota
	// KindHorizontal lays children out left-to-right.
	KindHorizontal
	// KindVertical lays children out top-down.
	KindVertical
	// KindGrid lays children out row-major in columns and rows.
	KindGrid
)

// AllContainerKinds lists every kind, for kind-cycling UIs.
var AllContainerKinds = [4]ContainerKind{KindTabs, KindHorizontal, KindVertical, KindGrid}

// String returns a human-readable name, also used as the default tab title
// for container tiles.
func (k ContainerKind) String() string {
	switch k {
	case KindTabs:
		return "Tabs"
	case KindHorizontal:
		return "Horizontal"
	case KindVertical:
		return "Vertical"
	case KindGrid:
		return "Grid"
	default:
		return "Unknown"
	}
}

// Container is a tile that owns an ordered set of child tile ids.
// The closed set of implementations is *Tabs, *Linear, and *Grid;
// recursive operations dispatch over them with type switches.
type Container interface {
	// Kind returns the layout type.
	Kind() ContainerKind

	// NumChildren counts children, including invisible ones.
	NumChildren() int

	// Children returns the child ids in order, including invisible ones.
	// The returned slice is a copy.
	Children() []TileID

	// HasChild reports whether the id is a direct child.
	HasChild(id TileID) bool

	// AddChild appends a child.
	AddChild(id TileID)

	// InsertChild places a child at the given position; out-of-range
	// indices append. Grids fill a hole at the slot instead of shifting.
	InsertChild(index int, id TileID)

	// RemoveChild detaches the id, returning its former position.
	RemoveChild(id TileID) (index int, ok bool)

	// Retain keeps only the children the predicate approves, in order.
	Retain(keep func(TileID) bool)

	// simplifyChildren applies a simplify verdict to each child in place.
	simplifyChildren(simplify func(TileID) SimplifyAction)
}

// NewContainer constructs an empty-state container of the given kind holding
// the given children.
func NewContainer(kind ContainerKind, children []TileID) Container {
	switch kind {
	case KindTabs:
		return NewTabs(children)
	case KindHorizontal:
		return NewLinear(Horizontal, children)
	case KindVertical:
		return NewLinear(Vertical, children)
	case KindGrid:
		return NewGrid(children)
	default:
		logger.Warn("unknown container kind, falling back to tabs", "kind", int(kind))
		return NewTabs(children)
	}
}

// OnlyChild returns the container's single child, if it has exactly one.
func OnlyChild(c Container) (TileID, bool) {
	if c.NumChildren() != 1 {
		return 0, false
	}
	return c.Children()[0], true
}
