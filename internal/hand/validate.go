package hand

import (
	"errors"
	"fmt"
)

// ErrInvariant is matched by every InvariantError.
var ErrInvariant = errors.New("hand invariant violated")

// InvariantError reports a structural problem with a ParsedHand.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "hand: " + e.Reason
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

func violation(format string, args ...any) error {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the structural invariants a hand must satisfy before replay.
func (h *ParsedHand) Validate() error {
	if h == nil {
		return violation("hand is nil")
	}
	if len(h.Players) == 0 {
		return violation("no players")
	}
	if h.ButtonSeat < 1 {
		return violation("button seat %d out of range", h.ButtonSeat)
	}

	names := make(map[string]struct{}, len(h.Players))
	seats := make(map[int]struct{}, len(h.Players))
	var buttons, smallBlinds, bigBlinds int
	for i, p := range h.Players {
		if p.Name == "" {
			return violation("player %d has no name", i)
		}
		if _, dup := names[p.Name]; dup {
			return violation("duplicate player name %q", p.Name)
		}
		names[p.Name] = struct{}{}
		if p.Seat < 1 {
			return violation("player %q has invalid seat %d", p.Name, p.Seat)
		}
		if _, dup := seats[p.Seat]; dup {
			return violation("seat %d occupied twice", p.Seat)
		}
		seats[p.Seat] = struct{}{}
		if i > 0 && h.Players[i-1].Seat > p.Seat {
			return violation("players not ordered by seat")
		}
		if p.StartingStack.IsNegative() {
			return violation("player %q has negative stack", p.Name)
		}
		if p.IsButton {
			buttons++
		}
		if p.IsSmallBlind {
			smallBlinds++
		}
		if p.IsBigBlind {
			bigBlinds++
		}
	}
	if buttons > 1 {
		return violation("%d players flagged as button", buttons)
	}
	if smallBlinds > 1 {
		return violation("%d players flagged as small blind", smallBlinds)
	}
	if bigBlinds > 1 {
		return violation("%d players flagged as big blind", bigBlinds)
	}

	if h.HeroName != "" {
		hero, ok := h.PlayerByName(h.HeroName)
		if !ok || !hero.IsHero {
			return violation("hero %q not in roster", h.HeroName)
		}
	}

	if h.Blinds.Small.IsNegative() || h.Blinds.Big.IsNegative() || h.Blinds.Ante.IsNegative() {
		return violation("negative blind amount")
	}

	for _, a := range h.Posts {
		if !a.Kind.Posting() {
			return violation("non-posting action %q in posts", a.Kind)
		}
		if err := checkAction(names, a); err != nil {
			return err
		}
	}

	last := -1
	for _, s := range h.Streets {
		idx := s.Name.Index()
		if idx < 0 {
			return violation("unknown street %q", s.Name)
		}
		if idx <= last {
			return violation("street %q out of order", s.Name)
		}
		last = idx
		if err := checkRevealed(s); err != nil {
			return err
		}
		for _, a := range s.Actions {
			if err := checkAction(names, a); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkRevealed(s Street) error {
	limit := 1
	switch s.Name {
	case Preflop:
		limit = 0
	case Flop:
		limit = 3
	}
	if len(s.RevealedCards) > limit {
		return violation("%s reveals %d cards", s.Name, len(s.RevealedCards))
	}
	return nil
}

func checkAction(names map[string]struct{}, a Action) error {
	if !a.Kind.Known() {
		return violation("unknown action kind %q", a.Kind)
	}
	if _, ok := names[a.Player]; !ok {
		return violation("action %s by unknown player %q", a.Kind, a.Player)
	}
	if a.Amount.IsNegative() || a.TotalBet.IsNegative() {
		return violation("negative amount in %s by %q", a.Kind, a.Player)
	}
	return nil
}
