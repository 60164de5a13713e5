package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/Gaurav-Gosain/mosaic/internal/theme"
	"github.com/Gaurav-Gosain/mosaic/tiling"
)

// TickerMsg drives the per-frame update loop.
type TickerMsg time.Time

// ConfigReloadedMsg carries a freshly loaded config after a file change.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// doubleClickWindow is how close together two clicks must land, in time and
// cells, to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// App is the bubbletea model hosting the tile tree.
type App struct {
	Cfg      *config.Config
	Registry *config.KeybindRegistry

	behavior *paneBehavior
	tree     *tiling.Tree[Pane]

	width  int
	height int

	// Pointer state accumulated between frames. The one-shot flags are
	// cleared after each UI pass.
	pointer       tiling.Point
	hasPointer    bool
	primaryDown   bool
	primaryPress  bool
	released      bool
	doubleClicked bool
	escape        bool
	lastClickAt   time.Time
	lastClickPos  tiling.Point

	lastFrame   time.Time
	rendered    string
	showHelp    bool
	statusMsg   string
	statusUntil time.Time

	configUpdates <-chan *config.Config
	stopWatch     chan struct{}
}

// Options configures a new App.
type Options struct {
	Config      *config.Config
	Registry    *config.KeybindRegistry
	Width       int
	Height      int
	WatchConfig bool
}

// New builds the app, restoring the saved layout when one exists.
func New(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	registry := opts.Registry
	if registry == nil {
		registry = config.NewKeybindRegistry(cfg)
	}

	a := &App{
		Cfg:      cfg,
		Registry: registry,
		behavior: newPaneBehavior(cfg),
		width:    opts.Width,
		height:   opts.Height,
	}

	if tree, err := LoadLayout(); err == nil && !tree.IsEmpty() {
		a.tree = tree
	} else {
		a.tree = defaultTree()
	}

	if opts.WatchConfig {
		a.stopWatch = make(chan struct{})
		if updates, err := config.Watch(a.stopWatch); err == nil {
			a.configUpdates = updates
		}
	}
	return a
}

// defaultTree is the workspace a first-time user sees.
func defaultTree() *tiling.Tree[Pane] {
	return tiling.NewTreeFromPanes(tiling.KindHorizontal, []Pane{
		NewPane(PaneNotes),
		NewPane(PaneSysInfo),
	})
}

// Init starts the frame ticker and, if enabled, the config watch.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.tickCmd()}
	if a.configUpdates != nil {
		cmds = append(cmds, listenForConfig(a.configUpdates))
	}
	return tea.Batch(cmds...)
}

// tickCmd schedules the next frame. Drags and resizes tick faster so the
// drop preview tracks the pointer smoothly.
func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.frameRate()), func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

func (a *App) frameRate() int {
	if a.Interacting() {
		return config.InteractionFPS
	}
	if a.Cfg.FPS > 0 {
		return a.Cfg.FPS
	}
	return config.NormalFPS
}

func listenForConfig(updates <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// Update handles all incoming messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.runFrame()
		return a, nil

	case tea.KeyPressMsg:
		return a.handleKey(msg)

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			pos := tiling.Pt(float64(mouse.X), float64(mouse.Y))
			now := time.Now()
			if now.Sub(a.lastClickAt) < doubleClickWindow && pos == a.lastClickPos {
				a.doubleClicked = true
			}
			a.lastClickAt = now
			a.lastClickPos = pos
			a.pointer = pos
			a.hasPointer = true
			a.primaryDown = true
			a.primaryPress = true
			a.runFrame()
		}
		return a, nil

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		a.pointer = tiling.Pt(float64(mouse.X), float64(mouse.Y))
		a.hasPointer = true
		if a.primaryDown {
			a.runFrame()
		}
		return a, nil

	case tea.MouseReleaseMsg:
		mouse := msg.Mouse()
		a.pointer = tiling.Pt(float64(mouse.X), float64(mouse.Y))
		a.hasPointer = true
		a.primaryDown = false
		a.released = true
		a.runFrame()
		return a, nil

	case TickerMsg:
		if sysInfoVisible(a.tree) {
			a.behavior.stats.Refresh()
		}
		a.runFrame()
		return a, a.tickCmd()

	case ConfigReloadedMsg:
		a.Cfg = msg.Config
		a.Registry = config.NewKeybindRegistry(msg.Config)
		a.behavior.cfg = msg.Config
		_ = theme.Initialize(msg.Config.Theme)
		a.setStatus("config reloaded")
		return a, listenForConfig(a.configUpdates)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.showHelp {
		a.showHelp = false
		a.runFrame()
		return a, nil
	}
	if key == "esc" {
		a.escape = true
		a.runFrame()
		return a, nil
	}

	switch a.Registry.ActionFor(key) {
	case config.ActionNewPane:
		a.addPane(PaneNotes)
	case config.ActionNewSysInfo:
		a.addPane(PaneSysInfo)
	case config.ActionNewClock:
		a.addPane(PaneClock)
	case config.ActionClosePane:
		a.closeFocused()
	case config.ActionSplitRight:
		a.splitFocused(tiling.Horizontal)
	case config.ActionSplitDown:
		a.splitFocused(tiling.Vertical)
	case config.ActionCycleKind:
		a.cycleContainerKind()
	case config.ActionToggleHidden:
		if a.behavior.focused != 0 {
			a.tree.Tiles.ToggleVisibility(a.behavior.focused)
			a.behavior.dirty = true
		}
	case config.ActionGatherToTabs:
		a.Cfg.Simplification.AllPanesMustHaveTabs = !a.Cfg.Simplification.AllPanesMustHaveTabs
		a.setStatus(fmt.Sprintf("tabs everywhere: %v", a.Cfg.Simplification.AllPanesMustHaveTabs))
	case config.ActionSaveLayout:
		if err := SaveLayout(a.tree); err != nil {
			a.setStatus("save failed: " + err.Error())
		} else {
			a.setStatus("layout saved")
		}
	case config.ActionLoadLayout:
		if tree, err := LoadLayout(); err != nil {
			a.setStatus("load failed: " + err.Error())
		} else {
			a.tree = tree
			a.behavior.focused = 0
			a.setStatus("layout restored")
		}
	case config.ActionToggleHelp:
		a.showHelp = !a.showHelp
	case config.ActionQuit:
		a.Cleanup()
		return a, tea.Quit
	}

	a.runFrame()
	return a, nil
}

// addPane inserts a new pane next to the root's children, wrapping a pane
// root in a tab container when needed.
func (a *App) addPane(kind PaneKind) {
	pane := NewPane(kind)

	if a.tree.IsEmpty() {
		a.tree = tiling.NewTreeFromPanes(tiling.KindTabs, []Pane{pane})
		id, _ := a.tree.Tiles.FindPane(func(p *Pane) bool { return p.ID == pane.ID })
		a.behavior.focused = id
		a.behavior.dirty = true
		return
	}

	id := a.tree.Tiles.InsertPane(pane)
	rootTile, ok := a.tree.Tiles.Get(a.tree.Root)
	if !ok {
		return
	}
	if rootTile.IsContainer() {
		rootTile.Container.AddChild(id)
		if tabs, isTabs := rootTile.Container.(*tiling.Tabs); isTabs {
			tabs.SetActive(id)
		}
	} else {
		a.tree.Root = a.tree.Tiles.InsertTabTile([]tiling.TileID{a.tree.Root, id})
		if wrapped, ok := a.tree.Tiles.Get(a.tree.Root); ok {
			if tabs, isTabs := wrapped.Container.(*tiling.Tabs); isTabs {
				tabs.SetActive(id)
			}
		}
	}
	a.behavior.focused = id
	a.behavior.dirty = true
}

// splitFocused replaces the focused pane with a binary split of it and a
// fresh notes pane.
func (a *App) splitFocused(dir tiling.LinearDir) {
	focused, ok := a.FocusedTile()
	if !ok {
		a.addPane(PaneNotes)
		return
	}

	newID := a.tree.Tiles.InsertPane(NewPane(PaneNotes))
	split := tiling.NewBinaryLinear(dir, focused, newID, 0.5)

	if parentID, index, ok := a.tree.RemoveTileIDFromParent(focused); ok {
		splitID := a.tree.Tiles.InsertContainer(split)
		if parentTile, ok := a.tree.Tiles.Get(parentID); ok && parentTile.IsContainer() {
			parentTile.Container.InsertChild(index, splitID)
		}
	} else if focused == a.tree.Root {
		a.tree.Root = a.tree.Tiles.InsertContainer(split)
	} else {
		// Focused tile is detached; drop the split and keep the new pane out
		// of the tree rather than leak it.
		a.tree.Tiles.Remove(newID)
		return
	}

	a.behavior.focused = newID
	a.behavior.dirty = true
}

// cycleContainerKind rotates the focused pane's parent container through
// tabs, horizontal, vertical and grid.
func (a *App) cycleContainerKind() {
	focused, ok := a.FocusedTile()
	if !ok {
		return
	}
	parentID, hasParent := a.tree.Tiles.ParentOf(focused)
	if !hasParent {
		return
	}
	parentTile, ok := a.tree.Tiles.Get(parentID)
	if !ok || !parentTile.IsContainer() {
		return
	}

	kinds := tiling.AllContainerKinds
	current := parentTile.Container.Kind()
	for i, kind := range kinds {
		if kind == current {
			parentTile.SetKind(kinds[(i+1)%len(kinds)])
			break
		}
	}
	a.behavior.dirty = true
}

func (a *App) closeFocused() {
	if a.behavior.focused == 0 {
		return
	}
	a.tree.RemoveRecursively(a.behavior.focused)
	a.behavior.focused = 0
	a.behavior.dirty = true
}

func sysInfoVisible(tree *tiling.Tree[Pane]) bool {
	if tree.IsEmpty() {
		return false
	}
	id, ok := tree.Tiles.FindPane(func(p *Pane) bool { return p.Kind == PaneSysInfo })
	return ok && tree.Tiles.IsVisible(id)
}

func (a *App) setStatus(msg string) {
	a.statusMsg = msg
	a.statusUntil = time.Now().Add(3 * time.Second)
}

// runFrame runs one immediate-mode UI pass over the tree and re-renders
// the screen.
func (a *App) runFrame() {
	if a.width <= 0 || a.height <= 0 {
		return
	}

	now := time.Now()
	dt := 1.0 / float64(config.NormalFPS)
	if !a.lastFrame.IsZero() {
		dt = now.Sub(a.lastFrame).Seconds()
	}
	a.lastFrame = now

	frame := &tiling.Frame{
		Pointer:        a.pointer,
		HasPointer:     a.hasPointer,
		PrimaryDown:    a.primaryDown,
		PrimaryPressed: a.primaryPress,
		DoubleClicked:  a.doubleClicked,
		Released:       a.released,
		Escape:         a.escape,
		DT:             dt,
	}
	a.primaryPress = false
	a.released = false
	a.doubleClicked = false
	a.escape = false

	a.behavior.beginFrame()
	// The bottom row is reserved for the status bar.
	area := tiling.NewRect(0, 0, float64(a.width), float64(a.height-1))
	a.tree.UI(a.behavior, frame, area)

	if a.behavior.dirty && a.Cfg.Layout.AutoSave && a.tree.DraggedID() == 0 {
		_ = SaveLayout(a.tree)
		a.behavior.dirty = false
	}

	a.rendered = a.compose()
}

// compose stacks the frame's layers plus chrome into one screen.
func (a *App) compose() string {
	canvas := lipgloss.NewCanvas(a.width, a.height)
	layers := append([]*lipgloss.Layer(nil), a.behavior.layers...)

	layers = append(layers, lipgloss.NewLayer(a.renderStatusBar()).
		X(0).Y(a.height-1).Z(zOverlay).ID("status"))

	if a.showHelp {
		help := a.renderHelp()
		x := max((a.width-lipgloss.Width(help))/2, 0)
		y := max((a.height-lipgloss.Height(help))/2, 0)
		layers = append(layers, lipgloss.NewLayer(help).X(x).Y(y).Z(zOverlay).ID("help"))
	}

	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas.Render()
}

// View returns the rendered screen.
func (a *App) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(a.rendered))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

// Cleanup stops background work. Safe to call more than once.
func (a *App) Cleanup() {
	if a.stopWatch != nil {
		close(a.stopWatch)
		a.stopWatch = nil
	}
	if a.Cfg.Layout.AutoSave {
		_ = SaveLayout(a.tree)
	}
}
