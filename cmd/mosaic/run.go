package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/mosaic/internal/app"
	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/Gaurav-Gosain/mosaic/internal/server"
	"github.com/Gaurav-Gosain/mosaic/internal/theme"
	"github.com/Gaurav-Gosain/mosaic/tiling"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// filterMouseMotion drops mouse motion events while no interaction is in
// flight. Hover feedback only matters during a drag, and idle motion events
// otherwise burn a full frame each.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	if a, ok := model.(*app.App); ok && !a.Interacting() {
		return nil
	}
	return msg
}

// setupLogging routes diagnostics to a file in the state directory. The
// terminal is owned by the UI, so logs never go to stderr while running.
func setupLogging() {
	if !debugMode {
		return
	}
	path, err := xdg.StateFile(filepath.Join("mosaic", "debug.log"))
	if err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	tiling.SetLogger(log.Default())
}

func loadConfig() *config.Config {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	if themeName != "" {
		userConfig.Theme = themeName
	}
	return userConfig
}

func runLocal() error {
	setupLogging()

	userConfig := loadConfig()
	if err := theme.Initialize(userConfig.Theme); err != nil {
		log.Warn("failed to initialize theme", "err", err)
	}

	model := app.New(app.Options{
		Config:      userConfig,
		Registry:    config.NewKeybindRegistry(userConfig),
		WatchConfig: true,
	})

	p := tea.NewProgram(
		model,
		tea.WithFPS(userConfig.FPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()
	if finalApp, ok := finalModel.(*app.App); ok {
		finalApp.Cleanup()
	}
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSH(sshHost, sshPort, sshKeyPath string) error {
	setupLogging()

	userConfig := loadConfig()
	if err := theme.Initialize(userConfig.Theme); err != nil {
		log.Warn("failed to initialize theme", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()

	cfg := &server.SSHConfig{
		Host:    sshHost,
		Port:    sshPort,
		KeyPath: sshKeyPath,
	}
	if err := server.Start(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
