package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

var moneyStripper = strings.NewReplacer(
	"€", "", "$", "", "£", "", "¥", "", ",", "",
	" ", "", "\t", "", "(", "", ")", "",
)

// ParseMoney converts a printed amount such as "$1,250.50" or "(60)" to a
// decimal. The boolean is false when the token holds no number.
func ParseMoney(token string) (decimal.Decimal, bool) {
	clean := moneyStripper.Replace(token)
	clean = strings.TrimRight(clean, ".")
	if clean == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// money parses token and records a MalformedAmount warning when it fails.
func (w *warnings) money(line int, text, token string) decimal.Decimal {
	d, ok := ParseMoney(token)
	if !ok {
		w.add(KindMalformedAmount, line, text)
	}
	return d
}

// trailingAmount returns the last whitespace separated token of s with the
// all-in suffix removed.
func trailingAmount(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), "and is all-in")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

type warnings []Warning

func (w *warnings) add(kind Kind, line int, text string) {
	*w = append(*w, Warning{Kind: kind, Line: line, Text: text})
}
