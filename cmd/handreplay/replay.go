package main

import (
	"fmt"
	"os"

	"github.com/lox/handreplay/cmd/handreplay/shared"
	"github.com/lox/handreplay/internal/config"
	"github.com/lox/handreplay/internal/hand"
	"github.com/lox/handreplay/internal/parser"
	"github.com/lox/handreplay/internal/render"
	"github.com/lox/handreplay/internal/replay"
	"github.com/lox/handreplay/internal/tui"
)

// ReplayCmd opens one hand in the interactive viewer, or prints every step
// with --plain.
type ReplayCmd struct {
	File   string `arg:"" name:"file" help:"Hand history file, or - for stdin"`
	Hand   string `help:"Hand id to replay (default: first parsed hand)"`
	Plain  bool   `help:"Print every step instead of opening the viewer"`
	Config string `help:"Path to HCL config file" type:"path"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ReplayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger := shared.LoggerFromConfig(cfg.Server, c.Debug)

	text, err := shared.ReadInput(c.File)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	res := parser.ParseBatch(ctx, text, parser.BatchOptions{
		Workers:  cfg.Parser.Workers,
		MaxHands: cfg.Parser.MaxHands,
		Logger:   logger,
	})
	h, err := selectHand(res, c.Hand)
	if err != nil {
		return err
	}

	r, err := replay.New(h)
	if err != nil {
		return err
	}
	if c.Plain {
		render.NewPrinter(os.Stdout).Replay(r)
		return nil
	}
	return tui.Run(r, logger)
}

// selectHand picks the hand with the given id, or the first parsed hand.
func selectHand(res *parser.BatchResult, id string) (*hand.ParsedHand, error) {
	hands := res.Hands()
	if len(hands) == 0 {
		for _, r := range res.Results {
			if r.Err != nil {
				return nil, r.Err
			}
		}
		return nil, parser.ErrEmptyInput
	}
	if id == "" {
		return hands[0].Hand, nil
	}
	for _, r := range hands {
		if r.Hand.HandID == id {
			return r.Hand, nil
		}
	}
	return nil, fmt.Errorf("hand %s not found (%d hands parsed)", id, len(hands))
}
