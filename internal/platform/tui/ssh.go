package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"

	"github.com/avolkov/snakeboard/internal/identity"
	"github.com/avolkov/snakeboard/internal/leaderboard"
	"github.com/avolkov/snakeboard/internal/snake"
)

// SSHConfig holds configuration for remote play over SSH.
type SSHConfig struct {
	// Address is the host:port to listen on (e.g. ":23234").
	Address string

	// HostKeyPath is the path to the host key file. If empty, a key is
	// auto-generated at ~/.snakeboard/host_key.
	HostKeyPath string

	// API is the leaderboard base URL shared by all sessions. Empty
	// disables the leaderboard.
	API string

	// Tuning is the game timing applied to every session.
	Tuning snake.Tuning

	// IdleTimeout closes idle connections.
	IdleTimeout time.Duration
}

// SSHServer serves the snake TUI to SSH clients, one session model per
// connection. Each session gets its own ephemeral nickname; all
// sessions share the configured leaderboard.
type SSHServer struct {
	config SSHConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates an SSH server with the given configuration.
func NewSSHServer(cfg SSHConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakeboard-ssh",
	})

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".snakeboard", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithProgramHandler(srv.programHandler, termenv.ANSI256),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// programHandler builds the Bubble Tea program for one SSH session. The
// program is created here (not via the plain middleware) because the
// tick clock needs Program.Send to inject ticks from its own goroutine.
func (s *SSHServer) programHandler(sess ssh.Session) *tea.Program {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil
	}

	nick := identity.Generate(rand.New(rand.NewSource(time.Now().UnixNano())))
	var client *leaderboard.Client
	if s.config.API != "" {
		client = leaderboard.NewClient(s.config.API, nick)
	}

	var p *tea.Program
	m := NewModel(Options{
		Tuning: s.config.Tuning,
		Client: client,
		Width:  pty.Window.Width,
		Height: pty.Window.Height,
		Send: func(msg tea.Msg) {
			if p != nil {
				p.Send(msg)
			}
		},
	})

	opts := append(bubbletea.MakeOptions(sess), tea.WithAltScreen())
	p = tea.NewProgram(m, opts...)
	return p
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
