package hand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/handreplay/internal/hand"
)

func TestNormalizeCard(t *testing.T) {
	tests := []struct {
		in   string
		want hand.Card
	}{
		{"10h", "Th"},
		{"10H", "Th"},
		{"ah", "Ah"},
		{"As", "As"},
		{"??", "??"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, hand.NormalizeCard(tt.in), tt.in)
	}
}

func TestParseCards(t *testing.T) {
	assert.Equal(t, []hand.Card{"Ah", "Td", "2c"}, hand.ParseCards(" ah 10d  2C "))
	assert.Nil(t, hand.ParseCards("   "))
	assert.Equal(t, "Ah Td", hand.JoinCards([]hand.Card{"Ah", "Td"}))
}

func TestCardPredicates(t *testing.T) {
	assert.True(t, hand.Card("Kd").Valid())
	assert.True(t, hand.Card("Kd").Red())
	assert.False(t, hand.Card("Ks").Red())
	assert.False(t, hand.Card("??").Valid())
	assert.False(t, hand.Card("K").Valid())
	assert.Equal(t, byte('K'), hand.Card("Kd").Rank())
}
