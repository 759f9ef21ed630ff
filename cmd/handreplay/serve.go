package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lox/handreplay/cmd/handreplay/shared"
	"github.com/lox/handreplay/internal/config"
	"github.com/lox/handreplay/internal/server"
)

// ServeCmd runs the HTTP API.
type ServeCmd struct {
	Config string `help:"Path to HCL config file" type:"path"`
	Addr   string `help:"Listen address (overrides config)"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	logger := shared.LoggerFromConfig(cfg.Server, c.Debug)

	s, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Str("address", cfg.Server.Address).
		Int("cache_size", cfg.Replay.CacheSize).
		Dur("session_ttl", cfg.Replay.TTL()).
		Int("max_hands", cfg.Parser.MaxHands).
		Msg("Starting handreplay server")

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := s.Start(cfg.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
