package parser

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// BatchOptions configures ParseBatch.
type BatchOptions struct {
	// Workers bounds concurrent parses; GOMAXPROCS when zero.
	Workers int
	// MaxHands caps the number of blocks parsed; the rest are skipped.
	MaxHands int
	Logger   zerolog.Logger
}

// BatchResult aggregates a multi-hand parse. Total equals
// Parsed + Failed + Cancelled + Skipped.
type BatchResult struct {
	Results    []Result `json:"results"`
	Total      int      `json:"total"`
	Parsed     int      `json:"parsed"`
	Failed     int      `json:"failed"`
	Cancelled  int      `json:"cancelled"`
	Skipped    int      `json:"skipped"`
	Duplicates int      `json:"duplicates"`
}

// ParseBatch splits text into hands and parses them concurrently.
func ParseBatch(ctx context.Context, text string, opts BatchOptions) *BatchResult {
	return ParseBlocks(ctx, Split(text), opts)
}

// ParseBlocks parses pre-split hand blocks. When ctx is cancelled no new
// blocks are dispatched; blocks already running finish and are reported.
func ParseBlocks(ctx context.Context, blocks []string, opts BatchOptions) *BatchResult {
	res := &BatchResult{Total: len(blocks)}
	if opts.MaxHands > 0 && len(blocks) > opts.MaxHands {
		res.Skipped = len(blocks) - opts.MaxHands
		blocks = blocks[:opts.MaxHands]
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	slots := make([]*Result, len(blocks))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, block := range blocks {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r := parseResult(i, block)
			slots[i] = &r
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]int)
	for i, slot := range slots {
		if slot == nil {
			res.Cancelled++
			continue
		}
		r := *slot
		for _, w := range r.Warnings {
			opts.Logger.Debug().Int("hand", i).Str("kind", string(w.Kind)).Int("line", w.Line).Msg(w.Text)
		}
		if !r.OK() {
			res.Failed++
			if r.Err != nil {
				opts.Logger.Debug().Int("hand", i).Str("stage", string(r.Err.Stage)).Msg(r.Err.Reason)
			}
			res.Results = append(res.Results, r)
			continue
		}
		res.Parsed++
		if first, dup := seen[r.Hand.HandID]; dup {
			r.Duplicate = true
			res.Duplicates++
			opts.Logger.Debug().Str("hand_id", r.Hand.HandID).Int("first", first).Int("index", i).Msg("duplicate hand")
		} else {
			seen[r.Hand.HandID] = i
		}
		res.Results = append(res.Results, r)
	}
	if res.Cancelled > 0 {
		opts.Logger.Warn().Int("cancelled", res.Cancelled).Int("parsed", res.Parsed).Msg("batch parse cancelled")
	}
	return res
}

// Hands returns the successfully parsed, non-duplicate hands in input order.
func (b *BatchResult) Hands() []*Result {
	var out []*Result
	for i := range b.Results {
		if b.Results[i].OK() && !b.Results[i].Duplicate {
			out = append(out, &b.Results[i])
		}
	}
	return out
}
