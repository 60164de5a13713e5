package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/Gaurav-Gosain/mosaic/tiling"
)

// SaveLayout persists the tree to the state directory. Transient layout
// state (rects, drags) is excluded by the tree's own serialization.
func SaveLayout(tree *tiling.Tree[Pane]) error {
	path, err := config.LayoutStatePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

// LoadLayout restores the tree saved by SaveLayout.
func LoadLayout() (*tiling.Tree[Pane], error) {
	path, err := config.LayoutStatePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	tree := &tiling.Tree[Pane]{}
	if err := json.Unmarshal(data, tree); err != nil {
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}
	return tree, nil
}
