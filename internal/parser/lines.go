package parser

import (
	"regexp"
	"strings"
)

// Role is the coarse, context free classification of one log line.
type Role int

const (
	RoleOther Role = iota
	RoleHeader
	RoleTable
	RoleSeat
	RolePost
	RoleDealt
	RoleMarker
	RoleAction
)

var (
	reHeaderLine = regexp.MustCompile(`Hand #\d+:`)
	reMarker     = regexp.MustCompile(`^\*\*\*\s*([A-Z ]+?)\s*\*\*\*(.*)$`)
	reSeatLine   = regexp.MustCompile(`^Seat \d+: `)
)

// Classify reports the role of a single trimmed line.
func Classify(line string) Role {
	switch {
	case reMarker.MatchString(line):
		return RoleMarker
	case reHeaderLine.MatchString(line):
		return RoleHeader
	case strings.HasPrefix(line, "Table '"):
		return RoleTable
	case reSeatLine.MatchString(line):
		return RoleSeat
	case strings.HasPrefix(line, "Dealt to "):
		return RoleDealt
	case strings.Contains(line, ": posts "):
		return RolePost
	case strings.Contains(line, ": "), strings.HasPrefix(line, "Uncalled bet"), strings.Contains(line, " collected "):
		return RoleAction
	default:
		return RoleOther
	}
}

// line is a trimmed, non-empty input line and its 1-based position.
type line struct {
	no   int
	text string
}

// marker returns the upper case name of a "*** NAME ***" line and the text
// that follows it.
func (l line) marker() (string, string, bool) {
	m := reMarker.FindStringSubmatch(l.text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// tokenize splits text into trimmed non-empty lines, tolerating a byte order
// mark and CRLF line endings.
func tokenize(text string) ([]line, *ParseError) {
	text = strings.TrimPrefix(text, "﻿")
	var out []line
	for i, raw := range strings.Split(text, "\n") {
		t := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if t == "" {
			continue
		}
		out = append(out, line{no: i + 1, text: t})
	}
	if len(out) == 0 {
		return nil, newParseError(StageTokenize, KindEmptyInput, ErrEmptyInput, "no non-empty lines")
	}
	return out, nil
}

// section indexes locate the structural markers within a tokenized hand.
type sections struct {
	holeCards  int // index of "*** HOLE CARDS ***", -1 when absent
	firstBoard int // index of the first FLOP/TURN/RIVER marker, or len
	summary    int // index of "*** SUMMARY ***", or len
}

func locate(lines []line) sections {
	s := sections{holeCards: -1, firstBoard: len(lines), summary: len(lines)}
	for i, l := range lines {
		name, _, ok := l.marker()
		if !ok {
			continue
		}
		switch {
		case name == "HOLE CARDS" && s.holeCards < 0:
			s.holeCards = i
		case name == "SUMMARY" && s.summary == len(lines):
			s.summary = i
		case isBoardMarker(name) && s.firstBoard == len(lines):
			s.firstBoard = i
		}
	}
	if s.firstBoard > s.summary {
		s.firstBoard = s.summary
	}
	return s
}

// rosterEnd is the index where seat lines stop being roster entries.
func (s sections) rosterEnd() int {
	if s.holeCards >= 0 {
		return s.holeCards
	}
	return s.firstBoard
}

func isBoardMarker(name string) bool {
	_, ok := boardStreet(name)
	return ok
}
