package hand

import "strings"

// Card is a two character token such as "Ah" or "Td".
type Card string

var rankMap = map[string]string{
	"a":  "A",
	"k":  "K",
	"q":  "Q",
	"j":  "J",
	"10": "T",
	"t":  "T",
	"9":  "9",
	"8":  "8",
	"7":  "7",
	"6":  "6",
	"5":  "5",
	"4":  "4",
	"3":  "3",
	"2":  "2",
}

// Rank returns the rank character.
func (c Card) Rank() byte {
	if len(c) != 2 {
		return 0
	}
	return c[0]
}

// Suit returns the suit character.
func (c Card) Suit() byte {
	if len(c) != 2 {
		return 0
	}
	return c[1]
}

// Valid reports whether the card is a well-formed rank+suit token.
func (c Card) Valid() bool {
	if len(c) != 2 {
		return false
	}
	return strings.IndexByte("23456789TJQKA", c[0]) >= 0 && strings.IndexByte("shdc", c[1]) >= 0
}

// Red reports whether the card is a heart or a diamond.
func (c Card) Red() bool {
	s := c.Suit()
	return s == 'h' || s == 'd'
}

// NormalizeCard converts loose notation (10h, ah, AS) to the canonical form (Th, Ah, As).
// Unknown cards ("??", "X") are returned upper-cased so they never pass Valid.
func NormalizeCard(raw string) Card {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lowered := strings.ToLower(raw)
	if len(lowered) < 2 {
		return Card(strings.ToUpper(lowered))
	}

	suit := lowered[len(lowered)-1:]
	rankPart := lowered[:len(lowered)-1]
	rank, ok := rankMap[rankPart]
	if !ok {
		rank = strings.ToUpper(rankPart[:1])
	}
	return Card(rank + suit)
}

// ParseCards splits a whitespace separated run ("Ah Kd 7c") into cards.
func ParseCards(run string) []Card {
	fields := strings.Fields(run)
	if len(fields) == 0 {
		return nil
	}
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		if c := NormalizeCard(f); c != "" {
			cards = append(cards, c)
		}
	}
	return cards
}

// JoinCards renders cards as a space separated run.
func JoinCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}

// CloneCards returns a copy of cards, nil for empty input.
func CloneCards(cards []Card) []Card {
	if len(cards) == 0 {
		return nil
	}
	return append([]Card(nil), cards...)
}
