package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lox/handreplay/internal/hand"
)

type forcedBets struct {
	blinds hand.Blinds
	posts  []hand.Action
	// posters of the first small and big blind, used when the roster carries
	// no position tags.
	smallBlind string
	bigBlind   string
}

// parseBlinds collects forced bets posted before the first board card.
// Amounts missing from the log fall back to the header stakes.
func parseBlinds(lines []line, end int, r *roster, hdr header, w *warnings) forcedBets {
	var fb forcedBets
	var haveSmall, haveBig, haveAnte bool
	for _, l := range lines[1:end] {
		if Classify(l.text) != RolePost {
			continue
		}
		name, rest, ok := r.actor(l.text)
		if !ok {
			w.add(KindUnrecognizedActionLine, l.no, l.text)
			continue
		}
		rest = strings.TrimSpace(strings.TrimSuffix(rest, "and is all-in"))
		amount := w.money(l.no, l.text, trailingAmount(rest))

		switch {
		case strings.HasPrefix(rest, "posts small & big blinds"):
			big := hdr.blinds.Big
			if haveBig {
				big = fb.blinds.Big
			}
			if big.IsPositive() && amount.GreaterThan(big) {
				fb.posts = append(fb.posts,
					hand.Action{Player: name, Kind: hand.PostBigBlind, Amount: big},
					hand.Action{Player: name, Kind: hand.PostAnte, Amount: amount.Sub(big)},
				)
			} else {
				fb.posts = append(fb.posts, hand.Action{Player: name, Kind: hand.PostBigBlind, Amount: amount})
			}
		case strings.HasPrefix(rest, "posts small blind"):
			fb.posts = append(fb.posts, hand.Action{Player: name, Kind: hand.PostSmallBlind, Amount: amount})
			if !haveSmall {
				haveSmall = true
				fb.blinds.Small = amount
				fb.smallBlind = name
			}
		case strings.HasPrefix(rest, "posts big blind"):
			fb.posts = append(fb.posts, hand.Action{Player: name, Kind: hand.PostBigBlind, Amount: amount})
			if !haveBig {
				haveBig = true
				fb.blinds.Big = amount
				fb.bigBlind = name
			}
		case strings.HasPrefix(rest, "posts the ante"), strings.HasPrefix(rest, "posts ante"):
			fb.posts = append(fb.posts, hand.Action{Player: name, Kind: hand.PostAnte, Amount: amount})
			if !haveAnte {
				haveAnte = true
				fb.blinds.Ante = amount
			}
		default:
			w.add(KindUnrecognizedActionLine, l.no, l.text)
		}
	}

	if !haveSmall {
		fb.blinds.Small = hdr.blinds.Small
	}
	if !haveBig {
		fb.blinds.Big = hdr.blinds.Big
	}
	if !haveAnte {
		fb.blinds.Ante = decimal.Zero
	}
	return fb
}
