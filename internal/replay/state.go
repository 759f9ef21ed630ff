// Package replay steps through a parsed hand and derives the table state at
// every cursor position.
//
// Forward steps apply one action at a time. Every other movement rebuilds the
// state from Reset, since folds, checks and one-time blind postings cannot be
// undone in place.
package replay

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lox/handreplay/internal/hand"
)

// Cursor addresses a replay position. Action -1 is the point before the
// first action of the street.
type Cursor struct {
	Street int `json:"street_index"`
	Action int `json:"action_index"`
}

// PlayerState is one player's view of the table at a cursor.
type PlayerState struct {
	Name             string
	Seat             int
	Stack            decimal.Decimal
	CurrentStreetBet decimal.Decimal
	Cards            []hand.Card
	IsFolded         bool
	IsActive         bool
	IsAllIn          bool
	IsChecked        bool
	IsWinner         bool
}

// TableState is the full derived state at one cursor.
type TableState struct {
	Players    map[string]*PlayerState
	BoardCards []hand.Card
	Pot        decimal.Decimal
	Street     hand.StreetName
	Cursor     Cursor
	Complete   bool
	LastAction *hand.Action
}

// Clone returns a deep copy.
func (s *TableState) Clone() *TableState {
	out := &TableState{
		Players:    make(map[string]*PlayerState, len(s.Players)),
		BoardCards: hand.CloneCards(s.BoardCards),
		Pot:        s.Pot,
		Street:     s.Street,
		Cursor:     s.Cursor,
		Complete:   s.Complete,
	}
	for name, p := range s.Players {
		cp := *p
		cp.Cards = hand.CloneCards(p.Cards)
		out.Players[name] = &cp
	}
	if s.LastAction != nil {
		a := *s.LastAction
		a.Cards = hand.CloneCards(a.Cards)
		out.LastAction = &a
	}
	return out
}

// Seated returns the players ordered by seat.
func (s *TableState) Seated() []*PlayerState {
	out := make([]*PlayerState, 0, len(s.Players))
	for _, p := range s.Players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}

// Remaining returns the players who have not folded, by seat.
func (s *TableState) Remaining() []*PlayerState {
	var out []*PlayerState
	for _, p := range s.Seated() {
		if !p.IsFolded {
			out = append(out, p)
		}
	}
	return out
}

// ChipsInPlay is the sum of every stack and the pot.
func (s *TableState) ChipsInPlay() decimal.Decimal {
	total := s.Pot
	for _, p := range s.Players {
		total = total.Add(p.Stack)
	}
	return total
}
