package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/handreplay/internal/hand"
)

var (
	reTotalPot    = regexp.MustCompile(`Total pot (\S+)`)
	reRake        = regexp.MustCompile(`Rake (\S+)`)
	reBoard       = regexp.MustCompile(`^Board \[([^\]]+)\]`)
	reSummarySeat = regexp.MustCompile(`^Seat (\d+): (.*)$`)
	reWon         = regexp.MustCompile(`\b(?:collected|won)\b(?: \(([^)]+)\))?`)
	reShowed      = regexp.MustCompile(`(?:showed|mucked) \[([^\]]+)\]`)
)

type summary struct {
	hand.Summary
	// shown holds cards revealed on seat lines, keyed by player, in seat order.
	shown []shownCards
}

type shownCards struct {
	player string
	cards  []hand.Card
	mucked bool
}

// parseSummary reads pot, rake, board and per-seat results after the
// "*** SUMMARY ***" marker.
func parseSummary(lines []line, start int, r *roster, w *warnings) summary {
	var s summary
	if start >= len(lines) {
		return s
	}
	for _, l := range lines[start+1:] {
		if m := reTotalPot.FindStringSubmatch(l.text); m != nil {
			s.TotalPot = w.money(l.no, l.text, m[1])
			if m := reRake.FindStringSubmatch(l.text); m != nil {
				s.Rake = w.money(l.no, l.text, m[1])
			}
			continue
		}
		if m := reBoard.FindStringSubmatch(l.text); m != nil {
			s.Board = hand.ParseCards(m[1])
			continue
		}
		m := reSummarySeat.FindStringSubmatch(l.text)
		if m == nil {
			continue
		}
		seat, _ := strconv.Atoi(m[1])
		p := r.bySeat(seat)
		if p == nil {
			w.add(KindUnrecognizedActionLine, l.no, l.text)
			continue
		}
		rest := strings.TrimPrefix(m[2], p.Name)
		if wins := reWon.FindAllStringSubmatch(rest, -1); len(wins) > 0 {
			// "and won with ..." carries no amount; settlement shares the pot.
			winner := hand.Winner{Player: p.Name, Seat: p.Seat}
			for _, won := range wins {
				if won[1] != "" {
					winner.Amount = winner.Amount.Add(w.money(l.no, l.text, won[1]))
				}
			}
			s.Winners = append(s.Winners, winner)
		}
		if shown := reShowed.FindStringSubmatch(rest); shown != nil {
			s.shown = append(s.shown, shownCards{
				player: p.Name,
				cards:  hand.ParseCards(shown[1]),
				mucked: shown[0][0] == 'm',
			})
		}
	}
	return s
}
