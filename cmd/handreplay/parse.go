package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lox/handreplay/cmd/handreplay/shared"
	"github.com/lox/handreplay/internal/config"
	"github.com/lox/handreplay/internal/export"
	"github.com/lox/handreplay/internal/parser"
	"github.com/lox/handreplay/internal/phh"
	"github.com/lox/handreplay/internal/render"
	"github.com/lox/handreplay/internal/replay"
)

// ParseCmd parses every hand in a file and prints or exports the result.
type ParseCmd struct {
	File     string `arg:"" name:"file" help:"Hand history file, or - for stdin"`
	Format   string `enum:"summary,json,phh" default:"summary" help:"Output format (summary, json, phh)"`
	Out      string `help:"Also write hands.json and session.phhs to this directory" type:"path"`
	Workers  int    `help:"Concurrent parse workers (0 = config or GOMAXPROCS)"`
	MaxHands int    `name:"max-hands" help:"Maximum hands to parse (0 = config default)"`
	Config   string `help:"Path to HCL config file" type:"path"`
	Debug    bool   `help:"Enable debug logging"`
}

func (c *ParseCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger := shared.LoggerFromConfig(cfg.Server, c.Debug)

	text, err := shared.ReadInput(c.File)
	if err != nil {
		return err
	}

	opts := parser.BatchOptions{
		Workers:  cfg.Parser.Workers,
		MaxHands: cfg.Parser.MaxHands,
		Logger:   logger,
	}
	if c.Workers > 0 {
		opts.Workers = c.Workers
	}
	if c.MaxHands > 0 {
		opts.MaxHands = c.MaxHands
	}

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	res := parser.ParseBatch(ctx, text, opts)
	logger.Info().
		Int("total", res.Total).
		Int("parsed", res.Parsed).
		Int("failed", res.Failed).
		Int("duplicates", res.Duplicates).
		Int("skipped", res.Skipped).
		Msg("Parsed hand history")

	if c.Out != "" {
		if _, err := export.NewWriter(c.Out, logger).WriteBatch(res); err != nil {
			return err
		}
	}
	if res.Total == 0 {
		return fmt.Errorf("%s: %w", c.File, parser.ErrEmptyInput)
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "phh":
		return writePHH(os.Stdout, res, logger)
	default:
		return writeSummary(os.Stdout, res, logger)
	}
}

func writePHH(w io.Writer, res *parser.BatchResult, logger zerolog.Logger) error {
	var histories []*phh.HandHistory
	for _, r := range res.Hands() {
		hh, err := phh.FromHand(r.Hand)
		if err != nil {
			logger.Warn().Err(err).Str("hand_id", r.Hand.HandID).Msg("Skipping hand in PHH output")
			continue
		}
		histories = append(histories, hh)
	}
	return phh.EncodeSession(w, 1, histories)
}

func writeSummary(w io.Writer, res *parser.BatchResult, logger zerolog.Logger) error {
	printer := render.NewPrinter(w)
	for _, r := range res.Results {
		if !r.OK() {
			if r.Err != nil {
				logger.Warn().Int("hand", r.Index).Str("stage", string(r.Err.Stage)).Str("kind", string(r.Err.Kind)).Msg(r.Err.Reason)
			}
			continue
		}
		if r.Duplicate {
			continue
		}
		outcome, err := replay.Final(r.Hand)
		if err != nil {
			logger.Warn().Err(err).Str("hand_id", r.Hand.HandID).Msg("Failed to replay hand")
			continue
		}
		printer.Header(r.Hand)
		printer.Outcome(outcome)
	}
	_, err := fmt.Fprintf(w, "Parsed %d of %d hands (%d failed, %d duplicates, %d skipped)\n",
		res.Parsed, res.Total, res.Failed, res.Duplicates, res.Skipped)
	return err
}
