package parser

import (
	"regexp"
	"strings"

	"github.com/lox/handreplay/internal/hand"
)

var (
	reBracket  = regexp.MustCompile(`\[([^\]]*)\]`)
	reRaise    = regexp.MustCompile(`^raises (\S+) to (\S+)`)
	reUncalled = regexp.MustCompile(`^Uncalled bet \(([^)]+)\) returned to (.+)$`)
)

// boardStreet maps a "*** NAME ***" marker to the street it opens. Second
// boards of a run-it-twice hand are not replayed.
func boardStreet(marker string) (hand.StreetName, bool) {
	switch strings.TrimPrefix(marker, "FIRST ") {
	case "FLOP":
		return hand.Flop, true
	case "TURN":
		return hand.Turn, true
	case "RIVER":
		return hand.River, true
	}
	return "", false
}

// streetFold accumulates streets while folding over the action region of a
// hand. Each step returns the next accumulator.
type streetFold struct {
	closed []hand.Street
	open   *hand.Street
}

func (f streetFold) begin(name hand.StreetName, cards []hand.Card) streetFold {
	if f.open != nil {
		f.closed = append(f.closed, *f.open)
	}
	f.open = &hand.Street{Name: name, RevealedCards: cards}
	return f
}

func (f streetFold) act(a hand.Action) streetFold {
	if f.open == nil {
		f = f.begin(hand.Preflop, nil)
	}
	open := *f.open
	open.Actions = append(open.Actions, a)
	f.open = &open
	return f
}

// result drops empty post-flop streets; preflop is always kept.
func (f streetFold) result() []hand.Street {
	all := f.closed
	if f.open != nil {
		all = append(all, *f.open)
	}
	out := make([]hand.Street, 0, len(all))
	for _, s := range all {
		if s.Name != hand.Preflop && len(s.Actions) == 0 && len(s.RevealedCards) == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Name == s.Name {
			out[n-1].Actions = append(out[n-1].Actions, s.Actions...)
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 || out[0].Name != hand.Preflop {
		out = append([]hand.Street{{Name: hand.Preflop}}, out...)
	}
	return out
}

// parseStreets folds the lines between the roster and the summary into
// streets of actions.
func parseStreets(lines []line, start, end int, r *roster, w *warnings) []hand.Street {
	f := streetFold{}.begin(hand.Preflop, nil)
	for _, l := range lines[start:end] {
		if name, rest, ok := l.marker(); ok {
			street, board := boardStreet(name)
			if !board {
				continue
			}
			brackets := reBracket.FindAllStringSubmatch(rest, -1)
			var cards []hand.Card
			if len(brackets) > 0 {
				// Turn and river repeat the earlier board in the first bracket.
				cards = hand.ParseCards(brackets[len(brackets)-1][1])
			}
			if limit := revealLimit(street); len(cards) > limit {
				cards = cards[len(cards)-limit:]
			}
			f = f.begin(street, cards)
			continue
		}

		switch Classify(l.text) {
		case RoleDealt, RolePost, RoleSeat, RoleTable, RoleHeader:
			continue
		}
		a, ok := parseAction(l, r, w)
		if !ok {
			w.add(KindUnrecognizedActionLine, l.no, l.text)
			continue
		}
		f = f.act(a)
	}
	return f.result()
}

func revealLimit(s hand.StreetName) int {
	if s == hand.Flop {
		return 3
	}
	return 1
}

// parseAction converts one action line. Lines that are player chatter or
// table notices report false.
func parseAction(l line, r *roster, w *warnings) (hand.Action, bool) {
	if m := reUncalled.FindStringSubmatch(l.text); m != nil {
		name := strings.TrimSpace(m[2])
		if r.player(name) == nil {
			return hand.Action{}, false
		}
		return hand.Action{Player: name, Kind: hand.Uncalled, Amount: w.money(l.no, l.text, m[1])}, true
	}
	if name, rest, ok := r.collector(l.text); ok {
		return hand.Action{Player: name, Kind: hand.Collected, Amount: w.money(l.no, l.text, collectedAmount(rest))}, true
	}

	name, verb, ok := r.actor(l.text)
	if !ok {
		return hand.Action{}, false
	}
	a := hand.Action{Player: name}

	if strings.HasSuffix(verb, "and is all-in") {
		a.Kind = hand.AllIn
		a.Amount = w.money(l.no, l.text, trailingAmount(verb))
		switch {
		case strings.HasPrefix(verb, "calls"):
			a.Via = hand.Call
		case strings.HasPrefix(verb, "bets"):
			a.Via = hand.Bet
		case strings.HasPrefix(verb, "raises"):
			a.Via = hand.Raise
			a.TotalBet = a.Amount
		}
		return a, true
	}

	switch {
	case strings.HasPrefix(verb, "folds"):
		a.Kind = hand.Fold
		a.Cards = bracketCards(verb)
	case strings.HasPrefix(verb, "checks"):
		a.Kind = hand.Check
	case strings.HasPrefix(verb, "calls"):
		a.Kind = hand.Call
		a.Amount = w.money(l.no, l.text, trailingAmount(verb))
	case strings.HasPrefix(verb, "bets"):
		a.Kind = hand.Bet
		a.Amount = w.money(l.no, l.text, trailingAmount(verb))
	case strings.HasPrefix(verb, "raises"):
		a.Kind = hand.Raise
		if m := reRaise.FindStringSubmatch(verb); m != nil {
			a.Amount = w.money(l.no, l.text, m[1])
			a.TotalBet = w.money(l.no, l.text, m[2])
		} else {
			a.Amount = w.money(l.no, l.text, trailingAmount(verb))
			a.TotalBet = a.Amount
		}
	case strings.HasPrefix(verb, "shows"):
		a.Kind = hand.Shows
		a.Cards = bracketCards(verb)
	case strings.HasPrefix(verb, "mucks"), strings.HasPrefix(verb, "doesn't show"):
		a.Kind = hand.Mucks
		a.Cards = bracketCards(verb)
	default:
		return hand.Action{}, false
	}
	return a, true
}

// collectedAmount picks the last numeric token of "X from pot" or
// "X from side pot-1".
func collectedAmount(rest string) string {
	fields := strings.Fields(rest)
	for i := len(fields) - 1; i >= 0; i-- {
		if fields[i] == "pot" || strings.HasPrefix(fields[i], "pot-") {
			continue
		}
		if _, ok := ParseMoney(fields[i]); ok {
			return fields[i]
		}
	}
	return rest
}

func bracketCards(s string) []hand.Card {
	m := reBracket.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	return hand.ParseCards(m[1])
}
