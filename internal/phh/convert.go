package phh

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lox/handreplay/internal/hand"
	"github.com/lox/handreplay/internal/replay"
)

var variants = map[hand.GameMode]string{
	hand.CashHoldem:       "NT",
	hand.TournamentHoldem: "NT",
	hand.CashOmaha:        "PO",
	hand.TournamentOmaha:  "PO",
}

// FromHand replays h and records it as a PHH hand history.
func FromHand(h *hand.ParsedHand) (*HandHistory, error) {
	r, err := replay.New(h)
	if err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}

	order := actingOrder(h)
	index := make(map[string]int, len(order))
	for i, p := range order {
		index[p.Name] = i
	}

	variant, ok := variants[h.GameMode]
	if !ok {
		variant = "NT"
	}
	hh := &HandHistory{
		Variant:           variant,
		Table:             h.TableName,
		SeatCount:         h.MaxSeats,
		Antes:             make([]float64, len(order)),
		BlindsOrStraddles: make([]float64, len(order)),
		MinBet:            h.Blinds.Big.InexactFloat64(),
		StartingStacks:    make([]float64, len(order)),
		FinishingStacks:   make([]float64, len(order)),
		Winnings:          make([]float64, len(order)),
		Currency:          h.Currency,
		Level:             h.Level,
		HandID:            h.HandID,
		Rake:              h.Summary.Rake.InexactFloat64(),
		Timestamp:         h.PlayedAt,
	}
	if h.TournamentID != "" {
		hh.Event = "Tournament #" + h.TournamentID
	}
	hh.populateTimeFields()

	holeCount := 2
	if h.GameMode == hand.CashOmaha || h.GameMode == hand.TournamentOmaha {
		holeCount = 4
	}
	for i, p := range order {
		hh.Seats = append(hh.Seats, p.Seat)
		hh.Players = append(hh.Players, p.Name)
		hh.StartingStacks[i] = p.StartingStack.InexactFloat64()
		hh.Actions = append(hh.Actions, fmt.Sprintf("d dh p%d %s", i+1, cardRun(p.HoleCards, holeCount)))
	}
	for i, amounts := range forcedAmounts(r, order) {
		hh.Antes[i] = amounts[0].InexactFloat64()
		hh.BlindsOrStraddles[i] = amounts[1].InexactFloat64()
	}

	streets := r.Streets()
	var beforeSettle *replay.TableState
	for r.StepForward() {
		st := r.State()
		if st.Complete {
			break
		}
		beforeSettle = st
		if st.Cursor.Action < 0 {
			if cards := streets[st.Cursor.Street].RevealedCards; len(cards) > 0 {
				hh.Actions = append(hh.Actions, "d db "+cardRun(cards, 0))
			}
			continue
		}
		a := streets[st.Cursor.Street].Actions[st.Cursor.Action]
		bet := decimal.Zero
		if ps, ok := st.Players[a.Player]; ok {
			bet = ps.CurrentStreetBet
		}
		if s, ok := FormatAction(index[a.Player], a, bet); ok {
			hh.Actions = append(hh.Actions, s)
		}
	}

	final := r.State()
	if beforeSettle == nil {
		r.Reset()
		beforeSettle = r.State()
	}
	for i, p := range order {
		end := final.Players[p.Name].Stack
		hh.FinishingStacks[i] = end.InexactFloat64()
		if won := end.Sub(beforeSettle.Players[p.Name].Stack); won.IsPositive() {
			hh.Winnings[i] = won.InexactFloat64()
		}
	}
	return hh, nil
}

// actingOrder lists players clockwise starting after the button.
func actingOrder(h *hand.ParsedHand) []hand.Player {
	players := append([]hand.Player(nil), h.Players...)
	sort.SliceStable(players, func(i, j int) bool {
		return distance(h, players[i]) < distance(h, players[j])
	})
	return players
}

func distance(h *hand.ParsedHand, p hand.Player) int {
	d := h.ButtonDistance(p.Name)
	if d <= 0 {
		return d + len(h.Players)
	}
	return d
}

// forcedAmounts returns each player's ante and blind, read from the reset
// state so synthesized posts are included.
func forcedAmounts(r *replay.Replayer, order []hand.Player) [][2]decimal.Decimal {
	r.Reset()
	st := r.State()
	out := make([][2]decimal.Decimal, len(order))
	for i, p := range order {
		ps := st.Players[p.Name]
		paid := p.StartingStack.Sub(ps.Stack)
		out[i] = [2]decimal.Decimal{paid.Sub(ps.CurrentStreetBet), ps.CurrentStreetBet}
	}
	return out
}
