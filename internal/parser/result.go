package parser

import (
	"encoding/json"

	"github.com/lox/handreplay/internal/hand"
)

// Result is the outcome of parsing one block of a batch.
type Result struct {
	Index     int
	Hand      *hand.ParsedHand
	Warnings  []Warning
	Err       *ParseError
	Duplicate bool
}

// OK reports whether the block produced a hand.
func (r Result) OK() bool {
	return r.Err == nil && r.Hand != nil
}

type okResult struct {
	OK        bool             `json:"ok"`
	Index     int              `json:"index"`
	HandID    string           `json:"hand_id"`
	Duplicate bool             `json:"duplicate,omitempty"`
	Hand      *hand.ParsedHand `json:"hand"`
	Warnings  []Warning        `json:"warnings"`
}

type failedResult struct {
	OK       bool      `json:"ok"`
	Index    int       `json:"index"`
	Stage    Stage     `json:"stage"`
	Kind     Kind      `json:"kind"`
	Reason   string    `json:"reason"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// MarshalJSON emits {"ok":true,"hand":...} or {"ok":false,"stage":...,"reason":...}.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.OK() {
		out := failedResult{Index: r.Index, Warnings: r.Warnings}
		if r.Err != nil {
			out.Stage, out.Kind, out.Reason = r.Err.Stage, r.Err.Kind, r.Err.Reason
		}
		return json.Marshal(out)
	}
	warns := r.Warnings
	if warns == nil {
		warns = []Warning{}
	}
	return json.Marshal(okResult{
		OK:        true,
		Index:     r.Index,
		HandID:    r.Hand.HandID,
		Duplicate: r.Duplicate,
		Hand:      r.Hand,
		Warnings:  warns,
	})
}

func parseResult(index int, block string) Result {
	h, warns, perr := parse(block)
	return Result{Index: index, Hand: h, Warnings: warns, Err: perr}
}
