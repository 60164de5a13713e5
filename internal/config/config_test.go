package config_test

import (
	"testing"

	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/pelletier/go-toml/v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.FPS <= 0 {
		t.Error("expected a positive default FPS")
	}
	if cfg.Layout.TabBarHeight < 1 {
		t.Error("expected tab bars at least one cell tall")
	}
	if !cfg.Simplification.PruneSingleChildContainers {
		t.Error("expected single-child pruning on by default")
	}
	if len(cfg.Keybindings.Actions) == 0 {
		t.Error("expected default keybindings")
	}
}

func TestConfigTOMLRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Theme = "dracula"
	cfg.Layout.GapWidth = 1
	cfg.Simplification.JoinNestedLinearContainers = false

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := config.DefaultConfig()
	if err := toml.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.Theme != "dracula" {
		t.Errorf("theme = %q, want dracula", restored.Theme)
	}
	if restored.Layout.GapWidth != 1 {
		t.Errorf("gap width = %v, want 1", restored.Layout.GapWidth)
	}
	if restored.Simplification.JoinNestedLinearContainers {
		t.Error("simplification toggle lost in round trip")
	}
}

func TestLayoutStyleConversion(t *testing.T) {
	cfg := config.DefaultConfig()
	style := cfg.Layout.Style()

	if style.TabBarHeight != cfg.Layout.TabBarHeight {
		t.Error("tab bar height not carried into style")
	}
	if style.MinSize != cfg.Layout.MinPaneSize {
		t.Error("min pane size not carried into style")
	}
}

func TestKeybindRegistryDefaults(t *testing.T) {
	registry := config.NewKeybindRegistry(nil)

	if got := registry.ActionFor("ctrl+n"); got != config.ActionNewPane {
		t.Errorf("ctrl+n = %q, want %q", got, config.ActionNewPane)
	}
	if got := registry.ActionFor("ctrl+c"); got != config.ActionQuit {
		t.Errorf("ctrl+c = %q, want %q", got, config.ActionQuit)
	}
	if got := registry.ActionFor("ctrl+zz"); got != "" {
		t.Errorf("unbound key resolved to %q", got)
	}
}

func TestKeybindRegistryUserOverridesReplace(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings.Actions = map[string][]string{
		config.ActionNewPane: {"ctrl+b"},
		"not_a_real_action":  {"ctrl+x"},
	}

	registry := config.NewKeybindRegistry(cfg)

	if got := registry.ActionFor("ctrl+b"); got != config.ActionNewPane {
		t.Errorf("ctrl+b = %q, want %q", got, config.ActionNewPane)
	}
	// Overrides replace the default keys rather than extending them.
	if got := registry.ActionFor("ctrl+n"); got == config.ActionNewPane {
		t.Error("default key survived an override")
	}
	if got := registry.ActionFor("ctrl+x"); got != "" {
		t.Errorf("unknown action bound anyway: %q", got)
	}
}
