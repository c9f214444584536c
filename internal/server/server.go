// Package server exposes the leaderboard service over HTTP: the
// read/write API, the live standings WebSocket feed, and graceful
// lifecycle handling.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/avolkov/snakeboard/internal/leaderboard"
)

// Config holds the server settings.
type Config struct {
	// Addr is the host:port to listen on (e.g. ":8489").
	Addr string

	// DBPath is the path to the leaderboard database.
	DBPath string
}

// FromEnv overlays environment variables onto cfg. A .env file is
// loaded first when present (ignored when absent). SNAKEBOARD_ADDR and
// SNAKEBOARD_DB take precedence over the file-based configuration.
func FromEnv(cfg Config) Config {
	//nolint:errcheck // .env is optional
	godotenv.Load()

	if v := os.Getenv("SNAKEBOARD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SNAKEBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	return cfg
}

// Server is the leaderboard HTTP server.
type Server struct {
	config Config
	svc    *leaderboard.Service
	hub    *Hub
	logger *log.Logger
	http   *http.Server
}

// New creates a server around the given service. The service's change
// hook is wired to the live feed so every accepted submission pushes
// fresh standings to subscribers.
func New(cfg Config, svc *leaderboard.Service) *Server {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakeboard",
	})

	s := &Server{
		config: cfg,
		svc:    svc,
		logger: logger,
	}
	s.hub = NewHub(logger)
	svc.OnChange = s.broadcastStandings

	mux := http.NewServeMux()
	mux.HandleFunc("/api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/api/leaderboard/live", s.hub.HandleSubscribe)

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.logging(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe starts the server and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting leaderboard server", "address", s.config.Addr)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-done:
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.hub.Close()
	return s.http.Shutdown(ctx)
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// logging wraps a handler with request logging.
func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"took", time.Since(start),
		)
	})
}

// broadcastStandings pushes the current top standings to live
// subscribers. Best-effort; read failures are dropped.
func (s *Server) broadcastStandings() {
	entries, err := s.svc.Top(leaderboard.DefaultLimit)
	if err != nil {
		return
	}
	s.hub.Broadcast(standingsPayload(entries))
}
