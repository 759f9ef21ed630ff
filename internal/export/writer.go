// Package export writes batch parse results to disk.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lox/handreplay/internal/parser"
	"github.com/lox/handreplay/internal/phh"
)

const (
	// ResultsFile holds the JSON batch result.
	ResultsFile = "hands.json"
	// SessionFile holds every exported hand as PHH sections.
	SessionFile = "session.phhs"
)

// Writer places export files in Dir.
type Writer struct {
	Dir    string
	Logger zerolog.Logger
}

// NewWriter returns a writer for dir.
func NewWriter(dir string, logger zerolog.Logger) *Writer {
	return &Writer{Dir: dir, Logger: logger}
}

// Written lists the files produced by WriteBatch.
type Written struct {
	Results string
	Session string
	Hands   int
}

// WriteBatch writes the JSON result of the batch and a PHH session of its
// parsed, non-duplicate hands. Hands that cannot be converted to PHH are
// logged and left out of the session file.
func (w *Writer) WriteBatch(res *parser.BatchResult) (Written, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return Written{}, fmt.Errorf("export: create dir: %w", err)
	}
	out := Written{
		Results: filepath.Join(w.Dir, ResultsFile),
		Session: filepath.Join(w.Dir, SessionFile),
	}

	if err := writeAtomic(out.Results, 0o644, func(bw *bufio.Writer) error {
		enc := json.NewEncoder(bw)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}); err != nil {
		return Written{}, fmt.Errorf("export: write %s: %w", ResultsFile, err)
	}

	var histories []*phh.HandHistory
	for _, r := range res.Hands() {
		hh, err := phh.FromHand(r.Hand)
		if err != nil {
			w.Logger.Warn().Err(err).Str("hand_id", r.Hand.HandID).Msg("skipping hand in PHH export")
			continue
		}
		histories = append(histories, hh)
	}
	if err := writeAtomic(out.Session, 0o644, func(bw *bufio.Writer) error {
		return phh.EncodeSession(bw, 1, histories)
	}); err != nil {
		return Written{}, fmt.Errorf("export: write %s: %w", SessionFile, err)
	}
	out.Hands = len(histories)

	w.Logger.Info().
		Str("dir", w.Dir).
		Int("hands", out.Hands).
		Int("failed", res.Failed).
		Msg("export written")
	return out, nil
}
