// Package parser turns PokerStars hand history text into hand.ParsedHand
// values.
//
// Parsing runs as a fixed pipeline: tokenize, header, roster, blinds,
// streets, summary, assemble. The first three stages and assembly can fail;
// everything else recovers and reports a Warning instead.
package parser

import (
	"github.com/lox/handreplay/internal/hand"
)

// Parse parses one hand history block. Warnings are returned even when the
// hand fails to parse. A non-nil error is always a *ParseError.
func Parse(text string) (*hand.ParsedHand, []Warning, error) {
	h, warns, perr := parse(text)
	if perr != nil {
		return nil, warns, perr
	}
	return h, warns, nil
}

func parse(text string) (*hand.ParsedHand, []Warning, *ParseError) {
	var w warnings

	lines, perr := tokenize(text)
	if perr != nil {
		return nil, nil, perr
	}
	hdr, perr := parseHeader(lines)
	if perr != nil {
		return nil, nil, perr
	}
	sec := locate(lines)
	r, perr := parseRoster(lines, sec.rosterEnd(), &w)
	if perr != nil {
		return nil, w, perr
	}

	heroName, heroCards := r.hero(lines[:sec.summary])
	forced := parseBlinds(lines, sec.firstBoard, r, hdr, &w)

	start := 1
	if sec.holeCards >= 0 {
		start = sec.holeCards + 1
	}
	streets := parseStreets(lines, start, sec.summary, r, &w)
	sum := parseSummary(lines, sec.summary, r, &w)

	h, perr := assemble(parts{
		header:    hdr,
		roster:    r,
		forced:    forced,
		streets:   streets,
		summary:   sum,
		heroName:  heroName,
		heroCards: heroCards,
	}, lines[0].no, &w)
	if perr != nil {
		return nil, w, perr
	}
	return h, w, nil
}
