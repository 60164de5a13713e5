// Package config handles loading, watching and saving the mosaic
// configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/mosaic/tiling"
	"github.com/adrg/xdg"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// NormalFPS is the frame rate the UI runs at when idle.
const NormalFPS = 60

// InteractionFPS is the frame rate used while a drag or resize is in flight.
const InteractionFPS = 120

// Config is the root of the user-facing configuration.
type Config struct {
	// Theme is a bubbletint theme id. Empty disables theming and the
	// terminal's own colors are used.
	Theme string `toml:"theme"`

	FPS int `toml:"fps"`

	Layout         LayoutConfig                 `toml:"layout"`
	Simplification tiling.SimplificationOptions `toml:"simplification"`
	Keybindings    Keybindings                  `toml:"keybindings"`
}

// LayoutConfig carries the numeric layout parameters, in terminal cells.
type LayoutConfig struct {
	TabBarHeight     float64 `toml:"tab_bar_height"`
	GapWidth         float64 `toml:"gap_width"`
	MinPaneSize      float64 `toml:"min_pane_size"`
	IdealAspect      float64 `toml:"ideal_aspect"`
	ResizeGrabRadius float64 `toml:"resize_grab_radius"`

	// AutoSave persists the layout to the state directory after every
	// structural edit.
	AutoSave bool `toml:"auto_save"`
}

// Style converts the layout section to the engine's style numbers.
func (l LayoutConfig) Style() tiling.Style {
	return tiling.Style{
		TabBarHeight:         l.TabBarHeight,
		GapWidth:             l.GapWidth,
		MinSize:              l.MinPaneSize,
		IdealTileAspectRatio: l.IdealAspect,
		ResizeGrabRadius:     l.ResizeGrabRadius,
	}
}

// DefaultConfig returns the stock configuration. Terminal cells are roughly
// twice as tall as they are wide, so the ideal aspect is higher than the
// engine's pixel-oriented default.
func DefaultConfig() *Config {
	return &Config{
		Theme: "",
		FPS:   NormalFPS,
		Layout: LayoutConfig{
			TabBarHeight:     1,
			GapWidth:         0,
			MinPaneSize:      5,
			IdealAspect:      3.0,
			ResizeGrabRadius: 1,
			AutoSave:         true,
		},
		Simplification: tiling.DefaultSimplificationOptions(),
		Keybindings:    DefaultKeybindings(),
	}
}

// GetConfigPath returns the path of the config file, creating the parent
// directory if needed.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("mosaic", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("could not resolve config path: %w", err)
	}
	return path, nil
}

// LayoutStatePath returns the path the workspace layout is persisted to.
func LayoutStatePath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("mosaic", "layout.json"))
	if err != nil {
		return "", fmt.Errorf("could not resolve layout path: %w", err)
	}
	return path, nil
}

// LoadUserConfig loads the config file, writing the defaults to disk first
// if no file exists yet. Unknown keys are tolerated so configs survive
// version skew in both directions.
func LoadUserConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if writeErr := SaveConfig(cfg); writeErr != nil {
			return cfg, writeErr
		}
		return cfg, nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("could not read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("could not parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveConfig writes the config to its canonical path with a short header.
func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("# mosaic configuration\n")
	sb.WriteString("# Location: " + path + "\n\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// normalize clamps nonsensical values back to something usable.
func (c *Config) normalize() {
	if c.FPS <= 0 {
		c.FPS = NormalFPS
	}
	if c.Layout.TabBarHeight < 1 {
		c.Layout.TabBarHeight = 1
	}
	if c.Layout.MinPaneSize < 1 {
		c.Layout.MinPaneSize = 1
	}
	if c.Layout.IdealAspect <= 0 {
		c.Layout.IdealAspect = 3.0
	}
	if c.Layout.ResizeGrabRadius <= 0 {
		c.Layout.ResizeGrabRadius = 1
	}
}

// Watch re-reads the config whenever the file changes and delivers the
// result on the returned channel. Closing the stop channel ends the watch.
func Watch(stop <-chan struct{}) (<-chan *Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create config watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace the file on save
	// and a file watch would go stale after the first write.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("could not watch config directory: %w", err)
	}

	updates := make(chan *Config, 1)
	go func() {
		defer close(updates)
		defer func() { _ = watcher.Close() }()

		var debounce *time.Timer
		for {
			select {
			case <-stop:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				// Editors emit bursts of events per save.
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(100*time.Millisecond, func() {
					cfg, err := LoadUserConfig()
					if err != nil {
						return
					}
					select {
					case updates <- cfg:
					default:
					}
				})
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return updates, nil
}
