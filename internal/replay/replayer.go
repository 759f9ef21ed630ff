package replay

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lox/handreplay/internal/hand"
)

// Replayer holds one hand and a cursor into it. It is not safe for
// concurrent use; see Session.
type Replayer struct {
	hand    *hand.ParsedHand
	streets []hand.Street
	state   *TableState
}

// New validates h and returns a replayer positioned at Reset.
func New(h *hand.ParsedHand) (*Replayer, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	streets := h.Streets
	if len(streets) == 0 {
		streets = []hand.Street{{Name: hand.Preflop}}
	}
	r := &Replayer{hand: h, streets: streets}
	r.Reset()
	return r, nil
}

// Hand returns the hand being replayed.
func (r *Replayer) Hand() *hand.ParsedHand {
	return r.hand
}

// Streets returns the streets the cursor moves over.
func (r *Replayer) Streets() []hand.Street {
	return r.streets
}

// Reset returns to the first street before any action, with forced bets
// already posted.
func (r *Replayer) Reset() {
	st := &TableState{
		Players: make(map[string]*PlayerState, len(r.hand.Players)),
		Pot:     decimal.Zero,
	}
	for _, p := range r.hand.Players {
		ps := &PlayerState{
			Name:     p.Name,
			Seat:     p.Seat,
			Stack:    p.StartingStack,
			IsActive: true,
		}
		if p.IsHero {
			ps.Cards = hand.CloneCards(p.HoleCards)
		}
		st.Players[p.Name] = ps
	}
	st.enterStreet(0, r.streets[0])
	for _, a := range r.posts() {
		st.post(a)
	}
	r.state = st
}

// posts returns the hand's forced bets, synthesizing them from the blind
// flags when the hand carries none.
func (r *Replayer) posts() []hand.Action {
	if len(r.hand.Posts) > 0 {
		return r.hand.Posts
	}
	var out []hand.Action
	if r.hand.Blinds.Ante.IsPositive() {
		for _, p := range r.hand.Players {
			out = append(out, hand.Action{Player: p.Name, Kind: hand.PostAnte, Amount: r.hand.Blinds.Ante})
		}
	}
	for _, p := range r.hand.Players {
		if p.IsSmallBlind {
			out = append(out, hand.Action{Player: p.Name, Kind: hand.PostSmallBlind, Amount: r.hand.Blinds.Small})
		}
	}
	for _, p := range r.hand.Players {
		if p.IsBigBlind {
			out = append(out, hand.Action{Player: p.Name, Kind: hand.PostBigBlind, Amount: r.hand.Blinds.Big})
		}
	}
	return out
}

// StepForward advances one position. It reports false when the hand is
// already complete.
func (r *Replayer) StepForward() bool {
	st := r.state
	if st.Complete {
		return false
	}
	cur := st.Cursor
	street := r.streets[cur.Street]
	switch {
	case cur.Action+1 < len(street.Actions):
		st.Cursor.Action++
		st.apply(street.Actions[st.Cursor.Action])
	case cur.Street+1 < len(r.streets):
		st.enterStreet(cur.Street+1, r.streets[cur.Street+1])
	default:
		st.settle(r.hand, r.streets)
	}
	return true
}

// StepBackward rebuilds the state one position earlier. It reports false at
// the reset position.
func (r *Replayer) StepBackward() bool {
	pos := r.Position()
	if pos == 0 {
		return false
	}
	r.seek(pos - 1)
	return true
}

// JumpToStreet moves to the start of street n, clamped to the hand.
func (r *Replayer) JumpToStreet(n int) {
	n = clamp(n, 0, len(r.streets)-1)
	r.seek(r.positionOf(Cursor{Street: n, Action: -1}))
}

// JumpToEnd replays to the settled final state.
func (r *Replayer) JumpToEnd() {
	r.seek(r.Positions() - 1)
}

// SkipToAction moves to just after the given action, clamping both indexes.
func (r *Replayer) SkipToAction(street, action int) {
	street = clamp(street, 0, len(r.streets)-1)
	action = clamp(action, -1, len(r.streets[street].Actions)-1)
	r.seek(r.positionOf(Cursor{Street: street, Action: action}))
}

// Seek moves to a linear position, clamped to [0, Positions()-1].
func (r *Replayer) Seek(pos int) {
	r.seek(clamp(pos, 0, r.Positions()-1))
}

func (r *Replayer) seek(pos int) {
	r.Reset()
	for i := 0; i < pos; i++ {
		if !r.StepForward() {
			return
		}
	}
}

// Positions is the number of distinct cursor positions, the settled end
// included.
func (r *Replayer) Positions() int {
	n := 1
	for _, s := range r.streets {
		n += len(s.Actions) + 1
	}
	return n
}

// Position is the linear index of the current cursor.
func (r *Replayer) Position() int {
	if r.state.Complete {
		return r.Positions() - 1
	}
	return r.positionOf(r.state.Cursor)
}

func (r *Replayer) positionOf(c Cursor) int {
	pos := 0
	for i := 0; i < c.Street; i++ {
		pos += len(r.streets[i].Actions) + 1
	}
	return pos + c.Action + 1
}

// Cursor returns the current cursor.
func (r *Replayer) Cursor() Cursor {
	return r.state.Cursor
}

// Complete reports whether the hand has been settled.
func (r *Replayer) Complete() bool {
	return r.state.Complete
}

// State returns a copy of the current table state.
func (r *Replayer) State() *TableState {
	return r.state.Clone()
}

// Progress is the completed share of the hand in percent.
func (r *Replayer) Progress() float64 {
	last := r.Positions() - 1
	if last <= 0 {
		return 100
	}
	return float64(r.Position()) * 100 / float64(last)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
