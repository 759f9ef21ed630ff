package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lox/handreplay/internal/hand"
)

var (
	reHandID     = regexp.MustCompile(`Hand #(\d+)`)
	reTournament = regexp.MustCompile(`Tournament #(\d+)`)
	reLevel      = regexp.MustCompile(`Level ([IVXLCDM]+|\d+)`)
	reStakes     = regexp.MustCompile(`\(([^()]*\d[^()]*/[^()]*\d[^()]*)\)`)
	reCurrency   = regexp.MustCompile(`\b(USD|EUR|GBP|CAD|INR|CNY)\b`)
	reTableName  = regexp.MustCompile(`'([^']+)'`)
	reMaxSeats   = regexp.MustCompile(`(\d+)-max`)
	reButtonSeat = regexp.MustCompile(`Seat #(\d+) is the button`)
	rePlayedAt   = regexp.MustCompile(`(\d{4}/\d{2}/\d{2} \d{1,2}:\d{2}:\d{2})`)
)

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "CNY",
}

type header struct {
	handID       string
	tournamentID string
	level        string
	stakes       string
	currency     string
	mode         hand.GameMode
	tableName    string
	maxSeats     int
	buttonSeat   int
	playedAt     time.Time
	blinds       hand.Blinds
}

// parseHeader reads hand metadata from the first line and the table line.
// The hand id and the table name are mandatory.
func parseHeader(lines []line) (header, *ParseError) {
	first := lines[0].text
	m := reHandID.FindStringSubmatch(first)
	if m == nil {
		return header{}, newParseError(StageHeader, KindInvalidHeader, ErrInvalidHeader,
			"line %d: no hand id in %q", lines[0].no, first)
	}

	h := header{handID: m[1], mode: gameMode(first)}
	if m := reTournament.FindStringSubmatch(first); m != nil {
		h.tournamentID = m[1]
	}
	if m := reLevel.FindStringSubmatch(first); m != nil {
		h.level = m[1]
	}
	if m := reStakes.FindStringSubmatch(first); m != nil {
		h.stakes = strings.TrimSpace(m[1])
		h.blinds = stakesBlinds(h.stakes)
	}
	h.currency = currency(first, h.stakes)
	if m := rePlayedAt.FindStringSubmatch(first); m != nil {
		if t, err := time.Parse("2006/01/02 15:04:05", m[1]); err == nil {
			h.playedAt = t
		}
	}

	if len(lines) > 1 {
		h.readTable(lines[1].text)
	}
	if h.buttonSeat == 0 {
		for _, l := range lines {
			if m := reButtonSeat.FindStringSubmatch(l.text); m != nil {
				h.buttonSeat, _ = strconv.Atoi(m[1])
				break
			}
		}
	}
	if h.tableName == "" {
		for _, l := range lines[1:] {
			if Classify(l.text) == RoleSeat {
				break
			}
			if Classify(l.text) == RoleTable {
				h.readTable(l.text)
				break
			}
		}
	}
	if h.tableName == "" {
		return header{}, newParseError(StageHeader, KindInvalidHeader, ErrInvalidHeader,
			"line %d: no table name", lines[0].no)
	}
	return h, nil
}

func (h *header) readTable(text string) {
	if !strings.HasPrefix(text, "Table ") {
		return
	}
	if m := reTableName.FindStringSubmatch(text); m != nil {
		h.tableName = m[1]
	}
	if m := reMaxSeats.FindStringSubmatch(text); m != nil {
		h.maxSeats, _ = strconv.Atoi(m[1])
	}
	if m := reButtonSeat.FindStringSubmatch(text); m != nil {
		h.buttonSeat, _ = strconv.Atoi(m[1])
	}
}

func gameMode(first string) hand.GameMode {
	tournament := strings.Contains(first, "Tournament")
	switch {
	case strings.Contains(first, "Omaha"):
		if tournament {
			return hand.TournamentOmaha
		}
		return hand.CashOmaha
	case strings.Contains(first, "Hold"):
		if tournament {
			return hand.TournamentHoldem
		}
		return hand.CashHoldem
	}
	return hand.GameModeUnknown
}

func currency(first, stakes string) string {
	if m := reCurrency.FindStringSubmatch(stakes); m != nil {
		return m[1]
	}
	for sym, code := range currencySymbols {
		if strings.Contains(stakes, sym) {
			return code
		}
	}
	if m := reCurrency.FindStringSubmatch(first); m != nil {
		return m[1]
	}
	return ""
}

// stakesBlinds reads "$0.01/$0.02 USD" or "10/20" into small and big blind.
func stakesBlinds(stakes string) hand.Blinds {
	stakes = reCurrency.ReplaceAllString(stakes, "")
	small, big, ok := strings.Cut(stakes, "/")
	if !ok {
		return hand.Blinds{}
	}
	var b hand.Blinds
	b.Small, _ = ParseMoney(small)
	b.Big, _ = ParseMoney(big)
	return b
}
