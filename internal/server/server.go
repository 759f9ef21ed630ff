// Package server exposes hand parsing and replay sessions over HTTP.
//
// Uploaded files are parsed in a batch and the hands kept in an LRU store.
// Replay sessions are driven over a websocket: the client sends navigation
// commands and receives the resulting table snapshot after each one.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lox/handreplay/internal/config"
)

// Server is the HTTP API.
type Server struct {
	cfg      *config.Config
	logger   zerolog.Logger
	clock    quartz.Clock
	upgrader websocket.Upgrader
	hands    *HandStore
	sessions *SessionRegistry
	mux      *http.ServeMux

	mu         sync.Mutex
	conns      map[*sessionConn]struct{}
	httpServer *http.Server
	cancel     context.CancelFunc
}

// Option customizes a Server.
type Option func(*Server)

// WithClock replaces the wall clock used for session expiry.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// New creates a server from cfg. A nil cfg uses the defaults.
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger.With().Str("component", "server").Logger(),
		clock:  quartz.NewReal(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: make(map[*sessionConn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	hands, err := NewHandStore(cfg.Replay.CacheSize)
	if err != nil {
		return nil, err
	}
	s.hands = hands
	s.sessions = NewSessionRegistry(s.clock, cfg.Replay.TTL(), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/hands", s.handleUpload)
	mux.HandleFunc("GET /api/hands/{id}", s.handleGetHand)
	mux.HandleFunc("GET /api/hands/{id}/phh", s.handleGetPHH)
	mux.HandleFunc("POST /api/hands/{id}/sessions", s.handleOpenSession)
	mux.HandleFunc("GET /ws/sessions/{id}", s.handleSessionSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	s.mux = mux
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Hands is the store of uploaded hands.
func (s *Server) Hands() *HandStore {
	return s.hands
}

// Sessions is the registry of open replay sessions.
func (s *Server) Sessions() *SessionRegistry {
	return s.sessions
}

// Start serves on addr and runs the session sweeper. It blocks until the
// server stops and returns http.ErrServerClosed after Shutdown.
func (s *Server) Start(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.httpServer = httpServer
	s.cancel = cancel
	s.mu.Unlock()

	go s.sessions.Run(ctx, s.cfg.Replay.Sweep())

	s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")
	return httpServer.ListenAndServe()
}

// Shutdown stops the sweeper, closes open websockets and drains HTTP
// requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	if s.cancel != nil {
		s.cancel()
	}
	conns := make([]*sessionConn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.close()
	}
	if httpServer == nil {
		return nil
	}
	if err := httpServer.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) track(c *sessionConn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(c *sessionConn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
