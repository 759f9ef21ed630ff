// Package render prints replay positions as plain text for terminals and
// logs.
package render

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lox/handreplay/internal/hand"
)

// Describe renders an action the way it reads in a hand history.
func Describe(a hand.Action) string {
	switch a.Kind {
	case hand.Fold:
		return a.Player + " folds"
	case hand.Check:
		return a.Player + " checks"
	case hand.Call:
		return fmt.Sprintf("%s calls %s", a.Player, a.Amount)
	case hand.Bet:
		return fmt.Sprintf("%s bets %s", a.Player, a.Amount)
	case hand.Raise:
		if a.TotalBet.IsPositive() {
			return fmt.Sprintf("%s raises %s to %s", a.Player, a.Amount, a.TotalBet)
		}
		return fmt.Sprintf("%s raises %s", a.Player, a.Amount)
	case hand.AllIn:
		if a.Via == hand.Raise && a.TotalBet.IsPositive() {
			return fmt.Sprintf("%s raises to %s and is all-in", a.Player, a.TotalBet)
		}
		return fmt.Sprintf("%s is all-in for %s", a.Player, a.Amount)
	case hand.PostSmallBlind:
		return fmt.Sprintf("%s posts small blind %s", a.Player, a.Amount)
	case hand.PostBigBlind:
		return fmt.Sprintf("%s posts big blind %s", a.Player, a.Amount)
	case hand.PostAnte:
		return fmt.Sprintf("%s posts ante %s", a.Player, a.Amount)
	case hand.Shows:
		return fmt.Sprintf("%s shows [%s]", a.Player, hand.JoinCards(a.Cards))
	case hand.Mucks:
		return a.Player + " mucks"
	case hand.Collected:
		return fmt.Sprintf("%s collected %s", a.Player, a.Amount)
	case hand.Uncalled:
		return fmt.Sprintf("uncalled %s returned to %s", a.Amount, a.Player)
	}
	return fmt.Sprintf("%s %s", a.Player, a.Kind)
}

// Net formats a stack change with an explicit sign for gains.
func Net(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.String()
	}
	return d.String()
}
