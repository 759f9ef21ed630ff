package replay

import (
	"github.com/shopspring/decimal"

	"github.com/lox/handreplay/internal/hand"
)

// PlayerResult is one player's result after the hand settles.
type PlayerResult struct {
	Name          string
	Seat          int
	StartingStack decimal.Decimal
	FinalStack    decimal.Decimal
	Net           decimal.Decimal
	Winner        bool
}

// Outcome is the settled end state of a hand.
type Outcome struct {
	HandID  string
	Pot     decimal.Decimal
	Rake    decimal.Decimal
	Board   []hand.Card
	Results []PlayerResult
}

// Final replays h to the end and reports every player's net result.
func Final(h *hand.ParsedHand) (*Outcome, error) {
	r, err := New(h)
	if err != nil {
		return nil, err
	}
	r.JumpToEnd()
	st := r.state

	out := &Outcome{
		HandID: h.HandID,
		Pot:    st.Pot,
		Rake:   h.Summary.Rake,
		Board:  hand.CloneCards(st.BoardCards),
	}
	for _, p := range h.Players {
		ps := st.Players[p.Name]
		out.Results = append(out.Results, PlayerResult{
			Name:          p.Name,
			Seat:          p.Seat,
			StartingStack: p.StartingStack,
			FinalStack:    ps.Stack,
			Net:           ps.Stack.Sub(p.StartingStack),
			Winner:        ps.IsWinner,
		})
	}
	return out, nil
}

// Result returns the named player's result.
func (o *Outcome) Result(name string) (PlayerResult, bool) {
	for _, r := range o.Results {
		if r.Name == name {
			return r, true
		}
	}
	return PlayerResult{}, false
}

// Winners lists the players credited with chips.
func (o *Outcome) Winners() []PlayerResult {
	var out []PlayerResult
	for _, r := range o.Results {
		if r.Winner {
			out = append(out, r)
		}
	}
	return out
}
