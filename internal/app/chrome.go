package app

import (
	"fmt"
	"strings"
	"time"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/Gaurav-Gosain/mosaic/internal/theme"
	"github.com/Gaurav-Gosain/mosaic/tiling"
	"github.com/charmbracelet/x/ansi"
)

// Interacting reports whether a pointer interaction is in flight. Used to
// filter mouse motion events when idle.
func (a *App) Interacting() bool {
	return a.primaryDown || (a.tree != nil && a.tree.DraggedID() != 0)
}

func (a *App) renderStatusBar() string {
	base := lipgloss.NewStyle().
		Foreground(theme.StatusBarFg()).
		Background(theme.StatusBarBg())
	accent := base.Foreground(theme.StatusBarAccent()).Bold(true)

	panes := 0
	if !a.tree.IsEmpty() {
		for _, id := range a.tree.Tiles.TileIDs() {
			if tile, ok := a.tree.Tiles.Get(id); ok && tile.IsPane() {
				panes++
			}
		}
	}

	left := accent.Render(" mosaic ") + base.Render(fmt.Sprintf(" %d panes ", panes))
	if focused, ok := a.tree.Tiles.Get(a.behavior.focused); ok && focused.IsPane() {
		left += base.Render("· " + focused.Pane.Title + " ")
	}

	right := base.Render(" ? help ")
	if a.statusMsg != "" && time.Now().Before(a.statusUntil) {
		right = accent.Render(" "+a.statusMsg+" ") + right
	}

	gap := a.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 0 {
		gap = 0
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}

func (a *App) renderHelp() string {
	badge := lipgloss.NewStyle().
		Foreground(theme.HelpKeyBadge()).
		Bold(true)
	text := lipgloss.NewStyle().Foreground(theme.HelpText())

	actions := []string{
		config.ActionNewPane,
		config.ActionNewSysInfo,
		config.ActionNewClock,
		config.ActionClosePane,
		config.ActionSplitRight,
		config.ActionSplitDown,
		config.ActionCycleKind,
		config.ActionToggleHidden,
		config.ActionGatherToTabs,
		config.ActionSaveLayout,
		config.ActionLoadLayout,
		config.ActionToggleHelp,
		config.ActionQuit,
	}

	var rows []string
	for _, action := range actions {
		keys := a.Registry.GetKeys(action)
		if len(keys) == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("%s  %s",
			badge.Render(fmt.Sprintf("%-14s", strings.Join(keys, ", "))),
			text.Render(config.ActionDescriptions[action])))
	}
	rows = append(rows, "", text.Render("drag panes by their title row, tabs by their button"))
	rows = append(rows, text.Render("drag the boundary between panes to resize"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Render(strings.Join(rows, "\n"))
}

// FocusedTile returns the pane the user clicked last, if it still exists.
func (a *App) FocusedTile() (tiling.TileID, bool) {
	if a.behavior.focused == 0 {
		return 0, false
	}
	if _, ok := a.tree.Tiles.Get(a.behavior.focused); !ok {
		return 0, false
	}
	return a.behavior.focused, true
}
