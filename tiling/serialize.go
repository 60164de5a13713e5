package tiling

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Persistence notes: only the structural state is serialized. Layout rects,
// drag sessions and the preview rect are per-frame and rebuilt on the next
// UI pass after a restore.

// MarshalJSON encodes the id as a decimal string: ids use the full 64-bit
// range, which does not survive JSON number precision.
func (id TileID) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(id), 10))
}

// UnmarshalJSON accepts both the string form and a plain number.
func (id *TileID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n uint64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("tile id: %w", err)
		}
		*id = TileID(n)
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("tile id %q: %w", s, err)
	}
	*id = TileID(n)
	return nil
}

// MarshalJSON encodes the direction by name.
func (d LinearDir) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a direction name.
func (d *LinearDir) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "horizontal":
		*d = Horizontal
	case "vertical":
		*d = Vertical
	default:
		return fmt.Errorf("unknown linear direction %q", s)
	}
	return nil
}

// MarshalJSON encodes the grid layout mode by name.
func (gl GridLayout) MarshalJSON() ([]byte, error) {
	if gl == GridColumns {
		return json.Marshal("columns")
	}
	return json.Marshal("auto")
}

// UnmarshalJSON decodes a grid layout mode name.
func (gl *GridLayout) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "auto":
		*gl = GridAuto
	case "columns":
		*gl = GridColumns
	default:
		return fmt.Errorf("unknown grid layout %q", s)
	}
	return nil
}

func kindTag(kind ContainerKind) string {
	switch kind {
	case KindTabs:
		return "tabs"
	case KindHorizontal, KindVertical:
		return "linear"
	case KindGrid:
		return "grid"
	default:
		return "unknown"
	}
}

type tileEnvelope struct {
	Type      string          `json:"type"`
	Pane      json.RawMessage `json:"pane,omitempty"`
	Container json.RawMessage `json:"container,omitempty"`
}

// MarshalJSON encodes a tile as a type-tagged envelope, since the container
// field is an interface.
func (t *Tile[Pane]) MarshalJSON() ([]byte, error) {
	if t.IsPane() {
		pane, err := json.Marshal(t.Pane)
		if err != nil {
			return nil, fmt.Errorf("marshal pane: %w", err)
		}
		return json.Marshal(tileEnvelope{Type: "pane", Pane: pane})
	}
	container, err := json.Marshal(t.Container)
	if err != nil {
		return nil, fmt.Errorf("marshal container: %w", err)
	}
	return json.Marshal(tileEnvelope{Type: kindTag(t.Container.Kind()), Container: container})
}

// UnmarshalJSON decodes a type-tagged tile envelope.
func (t *Tile[Pane]) UnmarshalJSON(data []byte) error {
	var env tileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Type {
	case "pane":
		pane := new(Pane)
		if err := json.Unmarshal(env.Pane, pane); err != nil {
			return fmt.Errorf("unmarshal pane: %w", err)
		}
		t.Pane = pane
		t.Container = nil
	case "tabs":
		c := &Tabs{}
		if err := json.Unmarshal(env.Container, c); err != nil {
			return err
		}
		t.Pane = nil
		t.Container = c
	case "linear":
		c := &Linear{}
		if err := json.Unmarshal(env.Container, c); err != nil {
			return err
		}
		if c.Shares == nil {
			c.Shares = Shares{}
		}
		t.Pane = nil
		t.Container = c
	case "grid":
		c := &Grid{}
		if err := json.Unmarshal(env.Container, c); err != nil {
			return err
		}
		t.Pane = nil
		t.Container = c
	default:
		return fmt.Errorf("unknown tile type %q", env.Type)
	}
	return nil
}

type tilesEnvelope[Pane any] struct {
	Tiles     map[TileID]*Tile[Pane] `json:"tiles"`
	Invisible []TileID               `json:"invisible,omitempty"`
}

// MarshalJSON encodes the arena. The rect cache is transient and excluded.
func (ts *Tiles[Pane]) MarshalJSON() ([]byte, error) {
	invisible := make([]TileID, 0, len(ts.invisible))
	for id := range ts.invisible {
		invisible = append(invisible, id)
	}
	slices.Sort(invisible)
	return json.Marshal(tilesEnvelope[Pane]{Tiles: ts.tiles, Invisible: invisible})
}

// UnmarshalJSON decodes the arena with an empty rect cache.
func (ts *Tiles[Pane]) UnmarshalJSON(data []byte) error {
	var env tilesEnvelope[Pane]
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	ts.tiles = env.Tiles
	if ts.tiles == nil {
		ts.tiles = map[TileID]*Tile[Pane]{}
	}
	ts.invisible = make(map[TileID]struct{}, len(env.Invisible))
	for _, id := range env.Invisible {
		ts.invisible[id] = struct{}{}
	}
	ts.rects = map[TileID]Rect{}
	return nil
}

type treeEnvelope[Pane any] struct {
	Root  TileID       `json:"root"`
	Tiles *Tiles[Pane] `json:"tiles"`
}

// MarshalJSON encodes the root id and the arena. Drag state is excluded.
func (t *Tree[Pane]) MarshalJSON() ([]byte, error) {
	return json.Marshal(treeEnvelope[Pane]{Root: t.Root, Tiles: t.Tiles})
}

// UnmarshalJSON decodes a tree with cleared session state.
func (t *Tree[Pane]) UnmarshalJSON(data []byte) error {
	var env treeEnvelope[Pane]
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	t.Root = env.Root
	t.Tiles = env.Tiles
	if t.Tiles == nil {
		t.Tiles = NewTiles[Pane]()
	}
	t.draggedID = 0
	t.smoothedPreviewRect = nil
	t.resize = nil
	return nil
}
