package parser

import (
	"strconv"

	"github.com/lox/handreplay/internal/hand"
)

type parts struct {
	header    header
	roster    *roster
	forced    forcedBets
	streets   []hand.Street
	summary   summary
	heroName  string
	heroCards []hand.Card
}

// assemble composes the stage outputs into a hand and checks its invariants.
func assemble(p parts, firstLine int, w *warnings) (*hand.ParsedHand, *ParseError) {
	players := make([]hand.Player, len(p.roster.players))
	copy(players, p.roster.players)

	h := &hand.ParsedHand{
		HandID:       p.header.handID,
		TournamentID: p.header.tournamentID,
		TableName:    p.header.tableName,
		Level:        p.header.level,
		Stakes:       p.header.stakes,
		Currency:     p.header.currency,
		GameMode:     p.header.mode,
		MaxSeats:     p.header.maxSeats,
		PlayedAt:     p.header.playedAt,
		Blinds:       p.forced.blinds,
		Players:      players,
		Posts:        p.forced.posts,
		Streets:      p.streets,
		Summary:      p.summary.Summary,
	}

	switch {
	case p.roster.taggedButton:
		for _, pl := range players {
			if pl.IsButton {
				h.ButtonSeat = pl.Seat
				break
			}
		}
	case p.header.buttonSeat > 0:
		h.ButtonSeat = p.header.buttonSeat
		markSeat(players, h.ButtonSeat, func(pl *hand.Player) { pl.IsButton = true })
	default:
		h.ButtonSeat = players[0].Seat
		players[0].IsButton = true
		w.add(KindMissingButton, firstLine, "no button seat; defaulting to seat "+strconv.Itoa(h.ButtonSeat))
	}

	if !p.roster.taggedBlinds {
		markName(players, p.forced.smallBlind, func(pl *hand.Player) { pl.IsSmallBlind = true })
		markName(players, p.forced.bigBlind, func(pl *hand.Player) { pl.IsBigBlind = true })
	}

	if p.heroName != "" {
		h.HeroName = p.heroName
		h.HeroCards = hand.CloneCards(p.heroCards)
		markName(players, p.heroName, func(pl *hand.Player) {
			pl.IsHero = true
			pl.HoleCards = hand.CloneCards(p.heroCards)
		})
	}

	revealShowdown(h, p.summary.shown)

	if err := h.Validate(); err != nil {
		return nil, newParseError(StageAssemble, KindAssemblyInvariant, err, "%v", err)
	}
	return h, nil
}

// revealShowdown records cards shown during play or listed in the summary.
// Summary-only reveals gain a shows action on the last street so replay can
// expose them.
func revealShowdown(h *hand.ParsedHand, shown []shownCards) {
	showed := make(map[string]bool)
	for _, s := range h.Streets {
		for _, a := range s.Actions {
			if (a.Kind == hand.Shows || a.Kind == hand.Mucks) && len(a.Cards) > 0 {
				setHoleCards(h.Players, a.Player, a.Cards)
				showed[a.Player] = showed[a.Player] || a.Kind == hand.Shows
			}
		}
	}
	for _, s := range shown {
		setHoleCards(h.Players, s.player, s.cards)
		if s.mucked || showed[s.player] || len(h.Streets) == 0 {
			continue
		}
		last := &h.Streets[len(h.Streets)-1]
		last.Actions = append(last.Actions, hand.Action{
			Player: s.player,
			Kind:   hand.Shows,
			Cards:  hand.CloneCards(s.cards),
		})
		showed[s.player] = true
	}
}

func setHoleCards(players []hand.Player, name string, cards []hand.Card) {
	markName(players, name, func(pl *hand.Player) {
		if len(pl.HoleCards) == 0 {
			pl.HoleCards = hand.CloneCards(cards)
		}
	})
}

func markName(players []hand.Player, name string, fn func(*hand.Player)) {
	if name == "" {
		return
	}
	for i := range players {
		if players[i].Name == name {
			fn(&players[i])
			return
		}
	}
}

func markSeat(players []hand.Player, seat int, fn func(*hand.Player)) {
	for i := range players {
		if players[i].Seat == seat {
			fn(&players[i])
			return
		}
	}
}
