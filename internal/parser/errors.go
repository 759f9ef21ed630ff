package parser

import (
	"errors"
	"fmt"
)

// Stage names the parsing step that rejected a hand.
type Stage string

const (
	StageTokenize Stage = "tokenize"
	StageHeader   Stage = "header"
	StageRoster   Stage = "roster"
	StageAssemble Stage = "assemble"
)

// Kind classifies parse problems, fatal and non-fatal.
type Kind string

const (
	KindEmptyInput             Kind = "EmptyInput"
	KindInvalidHeader          Kind = "InvalidHeader"
	KindNoPlayers              Kind = "NoPlayers"
	KindAssemblyInvariant      Kind = "AssemblyInvariantViolation"
	KindMalformedAmount        Kind = "MalformedAmount"
	KindUnrecognizedActionLine Kind = "UnrecognizedActionLine"
	KindMissingButton          Kind = "MissingButton"
)

// Sentinel errors matched by errors.Is against a *ParseError.
var (
	ErrEmptyInput        = errors.New("empty input")
	ErrInvalidHeader     = errors.New("invalid header")
	ErrNoPlayers         = errors.New("no players")
	ErrAssemblyInvariant = errors.New("assembly invariant violation")
)

var sentinels = map[Kind]error{
	KindEmptyInput:        ErrEmptyInput,
	KindInvalidHeader:     ErrInvalidHeader,
	KindNoPlayers:         ErrNoPlayers,
	KindAssemblyInvariant: ErrAssemblyInvariant,
}

// ParseError is a fatal failure for one hand. It is never retryable.
type ParseError struct {
	Stage  Stage
	Kind   Kind
	Reason string
	Err    error
}

func newParseError(stage Stage, kind Kind, err error, format string, args ...any) *ParseError {
	return &ParseError{
		Stage:  stage,
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s: %s", e.Stage, e.Kind, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// Warning is a recovered problem; the hand still parsed.
type Warning struct {
	Kind Kind   `json:"kind"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Text)
}
