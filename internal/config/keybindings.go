package config

// Keybindings maps actions to the keys that trigger them. Multiple keys can
// be bound to the same action.
type Keybindings struct {
	Actions map[string][]string `toml:"actions"`
}

// The actions the app dispatches on. Keys in the config file that do not
// match one of these are ignored.
const (
	ActionNewPane      = "new_pane"
	ActionNewSysInfo   = "new_sysinfo_pane"
	ActionNewClock     = "new_clock_pane"
	ActionClosePane    = "close_pane"
	ActionSplitRight   = "split_right"
	ActionSplitDown    = "split_down"
	ActionCycleKind    = "cycle_container_kind"
	ActionToggleHidden = "toggle_hidden"
	ActionGatherToTabs = "gather_to_tabs"
	ActionSaveLayout   = "save_layout"
	ActionLoadLayout   = "load_layout"
	ActionToggleHelp   = "toggle_help"
	ActionQuit         = "quit"
)

// ActionDescriptions maps actions to help-menu text.
var ActionDescriptions = map[string]string{
	ActionNewPane:      "Open a new notes pane",
	ActionNewSysInfo:   "Open a system monitor pane",
	ActionNewClock:     "Open a clock pane",
	ActionClosePane:    "Close the focused pane",
	ActionSplitRight:   "Split the focused pane, new pane to the right",
	ActionSplitDown:    "Split the focused pane, new pane below",
	ActionCycleKind:    "Cycle the focused pane's container kind",
	ActionToggleHidden: "Hide or reveal the focused pane",
	ActionGatherToTabs: "Wrap every pane in its own tab bar",
	ActionSaveLayout:   "Save the layout to disk",
	ActionLoadLayout:   "Restore the layout from disk",
	ActionToggleHelp:   "Toggle the help overlay",
	ActionQuit:         "Quit",
}

// DefaultKeybindings returns the stock bindings.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		Actions: map[string][]string{
			ActionNewPane:      {"ctrl+n", "n"},
			ActionNewSysInfo:   {"ctrl+s"},
			ActionNewClock:     {"ctrl+t"},
			ActionClosePane:    {"ctrl+w", "x"},
			ActionSplitRight:   {"ctrl+b", "|"},
			ActionSplitDown:    {"ctrl+v", "-"},
			ActionCycleKind:    {"ctrl+k"},
			ActionToggleHidden: {"ctrl+h"},
			ActionGatherToTabs: {"ctrl+g"},
			ActionSaveLayout:   {"ctrl+o"},
			ActionLoadLayout:   {"ctrl+l"},
			ActionToggleHelp:   {"?"},
			ActionQuit:         {"ctrl+c", "ctrl+q"},
		},
	}
}

// KeybindRegistry resolves key presses to actions. User bindings replace the
// defaults per action, never merge with them.
type KeybindRegistry struct {
	keyToAction map[string]string
	actionKeys  map[string][]string
}

// NewKeybindRegistry builds a registry from the user config, falling back to
// the defaults for any unbound action.
func NewKeybindRegistry(cfg *Config) *KeybindRegistry {
	r := &KeybindRegistry{
		keyToAction: make(map[string]string),
		actionKeys:  make(map[string][]string),
	}

	defaults := DefaultKeybindings()
	for action, keys := range defaults.Actions {
		r.bind(action, keys)
	}
	if cfg != nil {
		for action, keys := range cfg.Keybindings.Actions {
			if _, known := defaults.Actions[action]; !known {
				continue
			}
			r.unbind(action)
			r.bind(action, keys)
		}
	}
	return r
}

func (r *KeybindRegistry) bind(action string, keys []string) {
	for _, key := range keys {
		r.keyToAction[key] = action
	}
	r.actionKeys[action] = append([]string(nil), keys...)
}

func (r *KeybindRegistry) unbind(action string) {
	for _, key := range r.actionKeys[action] {
		if r.keyToAction[key] == action {
			delete(r.keyToAction, key)
		}
	}
	delete(r.actionKeys, action)
}

// ActionFor returns the action bound to the given key, or "".
func (r *KeybindRegistry) ActionFor(key string) string {
	return r.keyToAction[key]
}

// GetKeys returns the keys bound to an action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionKeys[action]
}
