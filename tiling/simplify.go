package tiling

// SimplifyVerdict is the outcome of simplifying one child.
type SimplifyVerdict int

const (
	// SimplifyKeep leaves the child in place.
	SimplifyKeep SimplifyVerdict = iota
	// SimplifyRemove drops the child from its parent.
	SimplifyRemove
	// SimplifyReplace substitutes the child with Replacement.
	SimplifyReplace
)

// SimplifyAction tells a container what to do with one of its children
// after the child's subtree has been simplified.
type SimplifyAction struct {
	Verdict     SimplifyVerdict
	Replacement TileID
}

func simplifyKeep() SimplifyAction   { return SimplifyAction{Verdict: SimplifyKeep} }
func simplifyRemove() SimplifyAction { return SimplifyAction{Verdict: SimplifyRemove} }
func simplifyReplace(id TileID) SimplifyAction {
	return SimplifyAction{Verdict: SimplifyReplace, Replacement: id}
}

// SimplificationOptions is the tree normalization policy, queried from the
// Behavior every frame. The root tile is exempt from removal regardless of
// these switches.
type SimplificationOptions struct {
	// PruneEmptyTabs removes tab containers with no children.
	PruneEmptyTabs bool `toml:"prune_empty_tabs"`

	// PruneEmptyContainers removes non-tab containers with no children.
	PruneEmptyContainers bool `toml:"prune_empty_containers"`

	// PruneSingleChildTabs replaces single-child tab containers with their
	// child, unless the child is a lone pane and AllPanesMustHaveTabs holds.
	PruneSingleChildTabs bool `toml:"prune_single_child_tabs"`

	// PruneSingleChildContainers replaces single-child non-tab containers
	// with their child.
	PruneSingleChildContainers bool `toml:"prune_single_child_containers"`

	// AllPanesMustHaveTabs wraps every pane whose parent is not a tab
	// container in a fresh one. Off by default.
	AllPanesMustHaveTabs bool `toml:"all_panes_must_have_tabs"`

	// JoinNestedLinearContainers splices a linear container's children into
	// a same-direction linear parent, rescaling shares so the child keeps
	// its overall footprint.
	JoinNestedLinearContainers bool `toml:"join_nested_linear_containers"`
}

// DefaultSimplificationOptions enables every normalization except
// AllPanesMustHaveTabs.
func DefaultSimplificationOptions() SimplificationOptions {
	return SimplificationOptions{
		PruneEmptyTabs:             true,
		PruneEmptyContainers:       true,
		PruneSingleChildTabs:       true,
		PruneSingleChildContainers: true,
		AllPanesMustHaveTabs:       false,
		JoinNestedLinearContainers: true,
	}
}

// OffSimplificationOptions disables all normalization, leaving the tree
// exactly as the caller built it.
func OffSimplificationOptions() SimplificationOptions {
	return SimplificationOptions{}
}
