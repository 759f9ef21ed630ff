package server

import (
	"io"
	"testing"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/handreplay/internal/config"
)

// testLogger creates a logger that discards output for tests
func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}

// newTestServer builds a server with default config and a mock clock.
func newTestServer(t testing.TB) *Server {
	t.Helper()
	srv, err := New(config.Default(), testLogger(), WithClock(quartz.NewMock(t)))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}
