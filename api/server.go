package api

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"hangman/log"
	"hangman/logic"
	"hangman/models"
	"hangman/web"

	"github.com/gorilla/mux"
)

// Server serves the browser game: HTML pages, form POSTs, JSON state and
// WebSocket updates, all backed by one in-memory session table.
type Server struct {
	server     *http.Server
	sessions   *Sessions
	hub        *Hub
	sessionTTL time.Duration
}

type NewServerOptions struct {
	Addr  string
	Words []models.WordEntry
	// Source picks words. It is only used under the session lock.
	Source logic.Source
	// SessionTTL is how long an idle session is kept. Zero keeps sessions forever.
	SessionTTL time.Duration
}

func NewServer(opts NewServerOptions) *Server {
	s := &Server{
		sessions:   NewSessions(opts.Words, opts.Source),
		hub:        NewHub(),
		sessionTTL: opts.SessionTTL,
	}
	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router returns the HTTP routes of the game.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	// Page and form routes; wrong methods get 405 from mux
	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/guess", s.handleGuess).Methods(http.MethodPost)
	r.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	r.HandleFunc("/definition", s.handleDefinition).Methods(http.MethodPost)
	r.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)

	// Stylesheet and game.js, embedded in the binary
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	return r
}

// Sessions exposes the session table, for the CLI and tests.
func (s *Server) Sessions() *Sessions {
	return s.sessions
}

// Start serves until Stop is called. ctx bounds the idle-session pruner.
func (s *Server) Start(ctx context.Context) error {
	// Idle sessions are only dropped when a TTL is configured
	if s.sessionTTL > 0 {
		go s.pruneSessions(ctx)
	}

	log.Info("Server running at http://localhost%s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Server closed")
			return nil
		}
		return err
	}
	return nil
}

// Stop shuts the HTTP server down gracefully, waiting at most until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// minPruneInterval keeps tiny TTLs from spinning the pruner (or handing
// NewTicker a zero interval, which panics).
const minPruneInterval = time.Second

// pruneInterval is how often idle sessions are looked for: half the TTL,
// but never more often than minPruneInterval.
func pruneInterval(ttl time.Duration) time.Duration {
	return max(ttl/2, minPruneInterval)
}

// pruneSessions drops idle sessions until ctx is done.
func (s *Server) pruneSessions(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval(s.sessionTTL))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.sessions.Prune(now.Add(-s.sessionTTL)); n > 0 {
				log.Debug("Pruned %d idle sessions", n)
			}
		}
	}
}
