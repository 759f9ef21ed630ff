package phh

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/lox/handreplay/internal/hand"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hh *HandHistory) error {
	if hh == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hh)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hh *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hh); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeSession writes hands as a .phhs file with one numbered section per
// hand, starting at first.
func EncodeSession(w io.Writer, first int, hands []*HandHistory) error {
	for i, hh := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", first+i); err != nil {
			return err
		}
		if err := Encode(w, hh); err != nil {
			return fmt.Errorf("phh: section %d: %w", first+i, err)
		}
	}
	return nil
}

// FormatAction converts one replayed action to a PHH action string. streetBet
// is the player's bet on the street after the action was applied. It reports
// false for actions PHH leaves implicit (posts, uncalled bets, collections).
func FormatAction(player int, a hand.Action, streetBet decimal.Decimal) (string, bool) {
	p := fmt.Sprintf("p%d", player+1)
	switch a.Kind {
	case hand.Fold:
		return p + " f", true
	case hand.Check, hand.Call:
		return p + " cc", true
	case hand.Bet, hand.Raise:
		if !streetBet.IsPositive() {
			return "", false
		}
		return fmt.Sprintf("%s cbr %s", p, streetBet), true
	case hand.AllIn:
		if a.Via == hand.Call {
			return p + " cc", true
		}
		return fmt.Sprintf("%s cbr %s", p, streetBet), true
	case hand.Shows:
		return fmt.Sprintf("%s sm %s", p, cardRun(a.Cards, 2)), true
	case hand.Mucks:
		return p + " sm", true
	case hand.PostSmallBlind, hand.PostBigBlind, hand.PostAnte, hand.Uncalled, hand.Collected:
		return "", false
	default:
		return fmt.Sprintf("# %s %s %s", p, a.Kind, a.Amount), true
	}
}

// cardRun renders cards without separators, padding unknown hole cards.
func cardRun(cards []hand.Card, pad int) string {
	var b strings.Builder
	for _, c := range cards {
		if c.Valid() {
			b.WriteString(string(c))
		} else {
			b.WriteString("??")
		}
	}
	for i := len(cards); i < pad; i++ {
		b.WriteString("??")
	}
	return b.String()
}
