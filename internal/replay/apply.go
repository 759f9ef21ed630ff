package replay

import (
	"github.com/shopspring/decimal"

	"github.com/lox/handreplay/internal/hand"
)

// commit moves up to amount from the player's stack into the pot and returns
// what was actually paid. A player who runs out of chips is all-in.
func (s *TableState) commit(p *PlayerState, amount decimal.Decimal) decimal.Decimal {
	paid := decimal.Min(amount, p.Stack)
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	p.Stack = p.Stack.Sub(paid)
	s.Pot = s.Pot.Add(paid)
	if p.Stack.IsZero() && paid.IsPositive() {
		p.IsAllIn = true
	}
	return paid
}

// post applies a forced bet. Blinds count towards the street bet; antes are
// dead money.
func (s *TableState) post(a hand.Action) {
	p, ok := s.Players[a.Player]
	if !ok {
		return
	}
	paid := s.commit(p, a.Amount)
	if a.Kind != hand.PostAnte {
		p.CurrentStreetBet = p.CurrentStreetBet.Add(paid)
	}
}

// apply performs a single street action.
func (s *TableState) apply(a hand.Action) {
	last := a
	last.Cards = hand.CloneCards(a.Cards)
	s.LastAction = &last

	p, ok := s.Players[a.Player]
	if !ok {
		return
	}

	switch a.Kind {
	case hand.Fold:
		p.IsFolded = true
		p.IsActive = false
		if len(a.Cards) > 0 {
			p.Cards = hand.CloneCards(a.Cards)
		}
	case hand.Check:
		p.IsChecked = true
	case hand.Call, hand.Bet:
		p.CurrentStreetBet = p.CurrentStreetBet.Add(s.commit(p, a.Amount))
		p.IsChecked = false
	case hand.Raise:
		// The raiser pays up to the new total, not the raise size. The two
		// agree when the raiser already matched the previous bet, as the big
		// blind raising 40 to 60 over a limp pays 40.
		increment := a.Amount
		if a.TotalBet.GreaterThan(p.CurrentStreetBet) {
			increment = a.TotalBet.Sub(p.CurrentStreetBet)
		}
		p.CurrentStreetBet = p.CurrentStreetBet.Add(s.commit(p, increment))
		p.IsChecked = false
	case hand.AllIn:
		p.CurrentStreetBet = p.CurrentStreetBet.Add(s.commit(p, p.Stack))
		p.IsAllIn = true
		p.IsChecked = false
	case hand.PostSmallBlind, hand.PostBigBlind, hand.PostAnte:
		s.post(a)
	case hand.Uncalled:
		back := decimal.Min(a.Amount, s.Pot)
		p.Stack = p.Stack.Add(back)
		p.CurrentStreetBet = decimal.Max(decimal.Zero, p.CurrentStreetBet.Sub(back))
		s.Pot = s.Pot.Sub(back)
		if back.IsPositive() {
			p.IsAllIn = false
		}
	case hand.Shows:
		if len(a.Cards) > 0 {
			p.Cards = hand.CloneCards(a.Cards)
		}
	case hand.Mucks:
		p.Cards = nil
	case hand.Collected:
		p.IsWinner = true
	}
}

// enterStreet sweeps bets into the pot and deals the street's cards.
func (s *TableState) enterStreet(index int, st hand.Street) {
	s.Cursor = Cursor{Street: index, Action: -1}
	s.Street = st.Name
	s.BoardCards = append(s.BoardCards, st.RevealedCards...)
	for _, p := range s.Players {
		p.CurrentStreetBet = decimal.Zero
		p.IsChecked = false
	}
}

// settle credits the winners once at the end of the hand. Summary results
// win over collected lines; with neither, a lone unfolded player takes the
// pot. Winners without amounts split what the others leave of the pot
// evenly, odd chips to the first of them.
func (s *TableState) settle(h *hand.ParsedHand, streets []hand.Street) {
	s.Complete = true
	for _, p := range s.Players {
		p.CurrentStreetBet = decimal.Zero
	}

	type credit struct {
		name   string
		amount decimal.Decimal
	}
	var credits []credit
	switch {
	case len(h.Summary.Winners) > 0:
		for _, w := range h.Summary.Winners {
			credits = append(credits, credit{w.Player, w.Amount})
		}
	default:
		index := make(map[string]int)
		for _, st := range streets {
			for _, a := range st.Actions {
				if a.Kind != hand.Collected {
					continue
				}
				if i, ok := index[a.Player]; ok {
					credits[i].amount = credits[i].amount.Add(a.Amount)
					continue
				}
				index[a.Player] = len(credits)
				credits = append(credits, credit{a.Player, a.Amount})
			}
		}
		if len(credits) == 0 {
			if remaining := s.Remaining(); len(remaining) == 1 {
				credits = append(credits, credit{remaining[0].Name, s.Pot})
			}
		}
	}
	if len(credits) == 0 {
		return
	}

	known := decimal.Zero
	var shares []int
	for i, c := range credits {
		if c.amount.IsZero() {
			shares = append(shares, i)
			continue
		}
		known = known.Add(c.amount)
	}
	if rest := s.Pot.Sub(known); len(shares) > 0 && rest.IsPositive() {
		places := int32(0)
		if exp := rest.Exponent(); exp < 0 {
			places = -exp
		}
		n := decimal.NewFromInt(int64(len(shares)))
		share := rest.Div(n).Truncate(places)
		for _, i := range shares {
			credits[i].amount = share
		}
		credits[shares[0]].amount = share.Add(rest.Sub(share.Mul(n)))
	}

	for _, c := range credits {
		if p, ok := s.Players[c.name]; ok {
			p.Stack = p.Stack.Add(c.amount)
			p.IsWinner = true
		}
	}
}
