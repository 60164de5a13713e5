package app

import (
	"math"
	"strings"
	"time"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/Gaurav-Gosain/mosaic/internal/theme"
	"github.com/Gaurav-Gosain/mosaic/tiling"
	"github.com/charmbracelet/x/ansi"
)

// Z-index bands for composing the frame.
const (
	zPane    = 10
	zTabBar  = 20
	zPreview = 90
	zOverlay = 100
)

// paneBehavior renders the tile tree into lipgloss layers and reports
// pointer interactions back to the engine.
type paneBehavior struct {
	tiling.BehaviorDefaults[Pane]

	cfg   *config.Config
	stats *SysStats

	// Rebuilt every frame by the UI pass.
	layers []*lipgloss.Layer

	// focused is the pane the user clicked last.
	focused tiling.TileID

	// dirty is set on structural edits so the layout can be autosaved.
	dirty bool
}

func newPaneBehavior(cfg *config.Config) *paneBehavior {
	return &paneBehavior{cfg: cfg, stats: &SysStats{}}
}

func (b *paneBehavior) beginFrame() {
	b.layers = b.layers[:0]
}

// cellBounds converts an engine rect to integer cell coordinates.
func cellBounds(r tiling.Rect) (x, y, w, h int) {
	x = int(math.Round(r.Min.X))
	y = int(math.Round(r.Min.Y))
	w = int(math.Round(r.Max.X)) - x
	h = int(math.Round(r.Max.Y)) - y
	return x, y, w, h
}

// Style supplies the engine's layout numbers from the config.
func (b *paneBehavior) Style() tiling.Style {
	return b.cfg.Layout.Style()
}

// SimplificationOptions supplies the tree normalization policy.
func (b *paneBehavior) SimplificationOptions() tiling.SimplificationOptions {
	return b.cfg.Simplification
}

// GridAutoColumnCount uses the configured cell aspect ratio.
func (b *paneBehavior) GridAutoColumnCount(n int, rect tiling.Rect, gap float64) int {
	return tiling.AutoColumnCount(n, rect.Width(), rect.Height(), gap, b.cfg.Layout.IdealAspect)
}

// IsTabClosable allows closing any tab; the engine removes empty tab bars
// through simplification afterwards.
func (b *paneBehavior) IsTabClosable(tiles *tiling.Tiles[Pane], id tiling.TileID) bool {
	return true
}

// OnEdit marks the layout dirty for autosave.
func (b *paneBehavior) OnEdit(action tiling.EditAction) {
	b.dirty = true
}

func (b *paneBehavior) PaneTitle(pane *Pane) string {
	return pane.Title
}

// PaneUI renders one pane into its rect and reports drags started from the
// pane's title row.
func (b *paneBehavior) PaneUI(frame *tiling.Frame, id tiling.TileID, pane *Pane, rect tiling.Rect) tiling.PaneResponse {
	x, y, w, h := cellBounds(rect)
	if w < 2 || h < 1 {
		return tiling.PaneNone
	}

	focused := b.focused == id
	if frame.HasPointer && frame.PrimaryPressed && rect.Contains(frame.Pointer) {
		b.focused = id
		focused = true
	}

	b.layers = append(b.layers, lipgloss.NewLayer(b.renderPane(pane, w, h, focused)).
		X(x).Y(y).Z(zPane).ID(pane.ID))

	// A press on the title row grabs the pane for dragging.
	if frame.HasPointer && frame.PrimaryPressed && rect.Contains(frame.Pointer) &&
		int(math.Round(frame.Pointer.Y)) == y {
		return tiling.PaneDragStarted
	}
	return tiling.PaneNone
}

func (b *paneBehavior) renderPane(pane *Pane, w, h int, focused bool) string {
	border := theme.PaneBorder()
	if focused {
		border = theme.PaneBorderFocused()
	}

	var body []string
	switch pane.Kind {
	case PaneSysInfo:
		body = b.stats.Lines()
	case PaneClock:
		body = []string{
			time.Now().Format("15:04:05"),
			time.Now().Format("Mon Jan 2 2006"),
		}
	default:
		if pane.Body != "" {
			body = strings.Split(pane.Body, "\n")
		} else {
			body = []string{"", "drag me by my title row"}
		}
	}

	title := ansi.Truncate(" "+pane.Title+" ", max(w-2, 0), "…")
	titleStyle := lipgloss.NewStyle().Foreground(theme.PaneTitleFg()).Bold(focused)

	lines := make([]string, 0, h)
	lines = append(lines, titleStyle.Render(title))
	for _, line := range body {
		if len(lines) >= h {
			break
		}
		lines = append(lines, ansi.Truncate(line, max(w-2, 0), "…"))
	}

	box := lipgloss.NewStyle().
		Foreground(theme.PaneFg()).
		Width(w - 2).
		Height(h - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
	if h < 3 || w < 4 {
		// Too small for a border; render bare content.
		box = lipgloss.NewStyle().Foreground(theme.PaneFg()).Width(w).Height(h)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// TabBarUI renders the tab buttons of one Tabs container and reports
// clicks, drag grabs and close requests.
func (b *paneBehavior) TabBarUI(frame *tiling.Frame, tiles *tiling.Tiles[Pane], id tiling.TileID, tabs *tiling.Tabs, barRect tiling.Rect) tiling.TabBarResponse {
	x, y, w, _ := cellBounds(barRect)
	resp := tiling.TabBarResponse{ButtonRects: make(map[tiling.TileID]tiling.Rect)}

	var rendered []string
	cursor := 0
	for _, child := range tabs.ChildIDs {
		if !tiles.IsVisible(child) {
			continue
		}
		if cursor >= w {
			break
		}

		title := " " + tiling.TileTitle[Pane](b, tiles, child) + " "
		closable := b.IsTabClosable(tiles, child)
		if closable {
			title += "× "
		}
		title = ansi.Truncate(title, w-cursor, "…")
		bw := ansi.StringWidth(title)
		if bw == 0 {
			break
		}

		buttonRect := tiling.NewRect(barRect.Min.X+float64(cursor), barRect.Min.Y, float64(bw), barRect.Height())
		resp.ButtonRects[child] = buttonRect

		active := tabs.Active == child
		style := lipgloss.NewStyle().
			Foreground(theme.TabInactiveFg()).
			Background(theme.TabInactiveBg())
		if active {
			style = lipgloss.NewStyle().
				Foreground(theme.TabActiveFg()).
				Background(theme.TabActiveBg()).
				Bold(true)
		}
		rendered = append(rendered, style.Render(title))

		if frame.HasPointer && frame.PrimaryPressed && buttonRect.Contains(frame.Pointer) {
			// The close glyph sits in the last two cells of the button.
			if closable && frame.Pointer.X >= buttonRect.Max.X-2 {
				resp.CloseRequested = child
			} else {
				resp.Selected = child
				resp.DragStarted = child
			}
		}
		cursor += bw
	}

	bar := strings.Join(rendered, "")
	if pad := w - ansi.StringWidth(bar); pad > 0 {
		bar += lipgloss.NewStyle().Background(theme.TabInactiveBg()).Render(strings.Repeat(" ", pad))
	}
	b.layers = append(b.layers, lipgloss.NewLayer(bar).X(x).Y(y).Z(zTabBar))

	return resp
}

// PaintDragPreview draws the drop target as a filled block above the panes.
func (b *paneBehavior) PaintDragPreview(frame *tiling.Frame, parentRect *tiling.Rect, previewRect tiling.Rect) {
	x, y, w, h := cellBounds(previewRect)
	if w < 1 || h < 1 {
		return
	}

	style := lipgloss.NewStyle().
		Foreground(theme.DropPreviewFg()).
		Background(theme.DropPreviewBg()).
		Width(w).
		Height(h)
	if w >= 4 && h >= 3 {
		style = style.
			Width(w - 2).
			Height(h - 2).
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.DropPreviewFg())
	}

	b.layers = append(b.layers, lipgloss.NewLayer(style.Render("")).X(x).Y(y).Z(zPreview))
}
