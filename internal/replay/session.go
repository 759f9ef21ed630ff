package replay

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lox/handreplay/internal/hand"
)

// Op names a navigation command.
type Op string

const (
	OpSnapshot Op = "snapshot"
	OpReset    Op = "reset"
	OpForward  Op = "forward"
	OpBackward Op = "backward"
	OpStreet   Op = "street"
	OpEnd      Op = "end"
	OpAction   Op = "action"
	OpSeek     Op = "seek"
)

// ErrUnknownCommand is returned by Session.Do for an unrecognised Op.
var ErrUnknownCommand = errors.New("replay: unknown command")

// Command is one navigation request. Street, Action and Position are read
// only by the ops that need them.
type Command struct {
	Op       Op  `json:"op"`
	Street   int `json:"street,omitempty"`
	Action   int `json:"action,omitempty"`
	Position int `json:"position,omitempty"`
}

// Session serializes navigation of one replayer so concurrent commands never
// interleave a rebuild.
type Session struct {
	mu sync.Mutex
	r  *Replayer
}

// NewSession validates h and starts a session at Reset.
func NewSession(h *hand.ParsedHand) (*Session, error) {
	r, err := New(h)
	if err != nil {
		return nil, err
	}
	return &Session{r: r}, nil
}

// HandID identifies the replayed hand.
func (s *Session) HandID() string {
	return s.r.Hand().HandID
}

// Do applies cmd and returns the resulting snapshot.
func (s *Session) Do(cmd Command) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Op {
	case OpSnapshot, "":
	case OpReset:
		s.r.Reset()
	case OpForward:
		s.r.StepForward()
	case OpBackward:
		s.r.StepBackward()
	case OpStreet:
		s.r.JumpToStreet(cmd.Street)
	case OpEnd:
		s.r.JumpToEnd()
	case OpAction:
		s.r.SkipToAction(cmd.Street, cmd.Action)
	case OpSeek:
		s.r.Seek(cmd.Position)
	default:
		return s.r.Snapshot(), fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Op)
	}
	return s.r.Snapshot(), nil
}
