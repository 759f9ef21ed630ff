package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/handreplay/internal/replay"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// SessionMessage is sent to the client after every command.
type SessionMessage struct {
	Snapshot *replay.Snapshot `json:"snapshot,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// sessionConn drives one replay session over a websocket.
type sessionConn struct {
	id        string
	conn      *websocket.Conn
	registry  *SessionRegistry
	logger    zerolog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	writeMu   sync.Mutex
	closeOnce sync.Once
}

func (s *Server) handleSessionSocket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.Exists(id) {
		s.writeError(w, http.StatusNotFound, ErrSessionNotFound.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &sessionConn{
		id:       id,
		conn:     conn,
		registry: s.sessions,
		logger:   s.logger.With().Str("session", id).Logger(),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.track(c)
	go func() {
		defer s.untrack(c)
		c.serve()
	}()
}

func (c *sessionConn) close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// serve sends the current snapshot and then answers each command with the
// resulting one until the peer goes away or the session expires.
func (c *sessionConn) serve() {
	defer func() { _ = c.close() }()
	go c.pingLoop()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	if !c.handle(replay.Command{Op: replay.OpSnapshot}) {
		return
	}
	for {
		var cmd replay.Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Msg("WebSocket read failed")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if !c.handle(cmd) {
			return
		}
	}
}

// handle runs cmd and writes the reply. It returns false when the
// connection should close.
func (c *sessionConn) handle(cmd replay.Command) bool {
	snap, err := c.registry.Do(c.id, cmd)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		_ = c.write(SessionMessage{Error: err.Error()})
		return false
	case err != nil:
		return c.write(SessionMessage{Snapshot: &snap, Error: err.Error()}) == nil
	}
	return c.write(SessionMessage{Snapshot: &snap}) == nil
}

func (c *sessionConn) write(msg SessionMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to write message")
		return err
	}
	return nil
}

func (c *sessionConn) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}
