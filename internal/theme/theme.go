// Package theme provides color themes and styling for mosaic.
package theme

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and standard terminal colors
// are used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if ok := tint.SetTintID(themeName); !ok {
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme, or nil when theming is
// disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Pane content colors.

func PaneFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

func PaneBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

func PaneTitleFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("14")
	}
	return t.BrightCyan
}

func PaneBorder() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("8")
	}
	return t.BrightBlack
}

func PaneBorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

// Tab bar colors.

func TabActiveFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("0")
	}
	return t.Black
}

func TabActiveBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("14")
	}
	return t.BrightCyan
}

func TabInactiveFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("7")
	}
	return t.White
}

func TabInactiveBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#303040")
	}
	return t.BrightBlack
}

func TabDraggedBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("5")
	}
	return t.Purple
}

// Drag and drop colors.

func DropPreviewBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#2a4a6a")
	}
	return t.Blue
}

func DropPreviewFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#aaddff")
	}
	return t.BrightBlue
}

// Status bar colors.

func StatusBarBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

func StatusBarFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

func StatusBarAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

// System monitor pane colors.

func SysInfoLabel() color.Color {
	return lipgloss.Color("11")
}

func SysInfoValue() color.Color {
	return lipgloss.Color("10")
}

func SysInfoGraph() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("12")
	}
	return t.BrightBlue
}

// Help overlay colors.

func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

func HelpText() color.Color {
	return lipgloss.Color("7")
}
