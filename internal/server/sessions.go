package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lox/handreplay/internal/hand"
	"github.com/lox/handreplay/internal/metrics"
	"github.com/lox/handreplay/internal/replay"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("replay session not found")

type sessionEntry struct {
	session  *replay.Session
	lastUsed time.Time
}

// SessionRegistry owns the open replay sessions and expires idle ones.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	clock    quartz.Clock
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewSessionRegistry creates a registry whose sessions expire after ttl
// without a command.
func NewSessionRegistry(clock quartz.Clock, ttl time.Duration, logger zerolog.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*sessionEntry),
		clock:    clock,
		ttl:      ttl,
		logger:   logger.With().Str("component", "sessions").Logger(),
	}
}

// Open starts a replay of h and returns the new session id with the reset
// snapshot.
func (r *SessionRegistry) Open(h *hand.ParsedHand) (string, replay.Snapshot, error) {
	s, err := replay.NewSession(h)
	if err != nil {
		return "", replay.Snapshot{}, err
	}
	snap, err := s.Do(replay.Command{Op: replay.OpSnapshot})
	if err != nil {
		return "", replay.Snapshot{}, err
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &sessionEntry{session: s, lastUsed: r.clock.Now()}
	active := len(r.sessions)
	r.mu.Unlock()

	metrics.Metrics.SessionCreated()
	metrics.Metrics.SetActiveSessions(active)
	r.logger.Debug().Str("session", id).Str("hand_id", h.HandID).Msg("Opened replay session")
	return id, snap, nil
}

// Do runs cmd against the session and marks it as used.
func (r *SessionRegistry) Do(id string, cmd replay.Command) (replay.Snapshot, error) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		e.lastUsed = r.clock.Now()
	}
	r.mu.Unlock()
	if !ok {
		return replay.Snapshot{}, ErrSessionNotFound
	}
	metrics.Metrics.ReplayCommand(string(cmd.Op))
	return e.session.Do(cmd)
}

// Exists reports whether id names an open session.
func (r *SessionRegistry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	return ok
}

// Close removes the session.
func (r *SessionRegistry) Close(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	active := len(r.sessions)
	r.mu.Unlock()
	metrics.Metrics.SetActiveSessions(active)
}

// Len is the number of open sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for at least the ttl and returns how many
// were removed.
func (r *SessionRegistry) Sweep() int {
	now := r.clock.Now()
	r.mu.Lock()
	expired := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastUsed) >= r.ttl {
			delete(r.sessions, id)
			expired++
		}
	}
	active := len(r.sessions)
	r.mu.Unlock()

	if expired > 0 {
		metrics.Metrics.SessionsExpired(expired)
		r.logger.Debug().Int("expired", expired).Int("active", active).Msg("Swept idle sessions")
	}
	metrics.Metrics.SetActiveSessions(active)
	return expired
}

// Run sweeps every interval until ctx is done.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := r.clock.NewTicker(interval, "sessions", "sweep")
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
