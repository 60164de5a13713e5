// Package app implements the mosaic terminal application: a bubbletea
// program hosting a tile tree of demo panes.
package app

import (
	"fmt"

	"github.com/google/uuid"
)

// PaneKind selects what a pane renders.
type PaneKind string

const (
	// PaneNotes is a static scratch pane.
	PaneNotes PaneKind = "notes"
	// PaneSysInfo renders live system statistics.
	PaneSysInfo PaneKind = "sysinfo"
	// PaneClock renders the current time.
	PaneClock PaneKind = "clock"
)

// Pane is the leaf payload of the tile tree. It is JSON-serializable so the
// whole layout can be persisted and restored.
type Pane struct {
	ID    string   `json:"id"`
	Kind  PaneKind `json:"kind"`
	Title string   `json:"title"`
	Body  string   `json:"body,omitempty"`
}

var paneCounter int

// NewPane creates a pane of the given kind with a unique id and a numbered
// default title.
func NewPane(kind PaneKind) Pane {
	paneCounter++
	title := fmt.Sprintf("%s %d", kind, paneCounter)
	return Pane{
		ID:    uuid.NewString(),
		Kind:  kind,
		Title: title,
	}
}
