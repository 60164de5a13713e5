// Package server exposes mosaic over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/mosaic/internal/app"
	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

// SSHConfig holds the SSH server settings.
type SSHConfig struct {
	Host    string
	Port    string
	KeyPath string
}

// Start runs the SSH server until the context is canceled. Each connection
// gets its own mosaic instance sized to the client's PTY.
func Start(ctx context.Context, cfg *SSHConfig) error {
	hostKeyPath := cfg.KeyPath
	if hostKeyPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		hostKeyPath = filepath.Join(homeDir, ".ssh", "mosaic_host_key")
	}

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting SSH server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down SSH server")
	return server.Shutdown(ctx)
}

// teaHandler creates a mosaic instance for one SSH session.
func teaHandler(session ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := session.Pty()
	if !active {
		return nil, nil
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config for SSH session, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	model := app.New(app.Options{
		Config:   userConfig,
		Registry: config.NewKeybindRegistry(userConfig),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
	})

	return model, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
	}
}
