package parser_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handreplay/internal/hand"
	"github.com/lox/handreplay/internal/handtest"
	"github.com/lox/handreplay/internal/parser"
)

func TestParseCashHand(t *testing.T) {
	h, warns, err := parser.Parse(handtest.CashSixMax)
	require.NoError(t, err)
	assert.Empty(t, warns)

	assert.Equal(t, "243567890123", h.HandID)
	assert.Equal(t, "Alcyone II", h.TableName)
	assert.Equal(t, hand.CashHoldem, h.GameMode)
	assert.Equal(t, "$0.01/$0.02 USD", h.Stakes)
	assert.Equal(t, "USD", h.Currency)
	assert.Equal(t, 6, h.MaxSeats)
	assert.Equal(t, 3, h.ButtonSeat)
	assert.Equal(t, time.Date(2024, 1, 15, 20, 30, 0, 0, time.UTC), h.PlayedAt)

	handtest.RequireDecimal(t, "0.01", h.Blinds.Small)
	handtest.RequireDecimal(t, "0.02", h.Blinds.Big)
	handtest.RequireDecimal(t, "0", h.Blinds.Ante)

	require.Len(t, h.Players, 3)
	alice, bob, hero := h.Players[0], h.Players[1], h.Players[2]
	assert.Equal(t, "alice", alice.Name)
	assert.True(t, alice.IsBigBlind)
	assert.True(t, bob.IsButton)
	assert.True(t, hero.IsSmallBlind)
	assert.True(t, hero.IsHero)
	handtest.RequireDecimal(t, "2.10", hero.StartingStack)

	assert.Equal(t, "Hero", h.HeroName)
	assert.Equal(t, []hand.Card{"Ah", "Kd"}, h.HeroCards)
	assert.Equal(t, []hand.Card{"9s", "Ts"}, bob.HoleCards, "showdown cards are recorded")

	require.Len(t, h.Posts, 2)
	assert.Equal(t, hand.PostSmallBlind, h.Posts[0].Kind)
	assert.Equal(t, hand.PostBigBlind, h.Posts[1].Kind)

	require.Len(t, h.Streets, 4)
	assert.Equal(t, []hand.Card{"7c", "8d", "2h"}, h.Streets[1].RevealedCards)
	assert.Equal(t, []hand.Card{"Js"}, h.Streets[2].RevealedCards)
	assert.Equal(t, []hand.Card{"Qh"}, h.Streets[3].RevealedCards)
	assert.Equal(t, []hand.Card{"7c", "8d", "2h", "Js", "Qh"}, h.Board())

	heroRaise := h.Streets[0].Actions[1]
	assert.Equal(t, hand.Raise, heroRaise.Kind)
	handtest.RequireDecimal(t, "0.12", heroRaise.Amount)
	handtest.RequireDecimal(t, "0.18", heroRaise.TotalBet)

	river := h.Streets[3].Actions
	require.Len(t, river, 5)
	assert.Equal(t, hand.Shows, river[2].Kind)
	assert.Equal(t, hand.Collected, river[4].Kind)
	handtest.RequireDecimal(t, "1.54", river[4].Amount)

	handtest.RequireDecimal(t, "1.58", h.Summary.TotalPot)
	handtest.RequireDecimal(t, "0.04", h.Summary.Rake)
	require.Len(t, h.Summary.Winners, 1)
	assert.Equal(t, "bob", h.Summary.Winners[0].Player)
	handtest.RequireDecimal(t, "1.54", h.Summary.Winners[0].Amount)
}

func TestParseTournamentAllIn(t *testing.T) {
	h, warns, err := parser.Parse(handtest.TournamentAllIn)
	require.NoError(t, err)

	assert.Equal(t, "3456789012", h.TournamentID)
	assert.Equal(t, "III", h.Level)
	assert.Equal(t, hand.TournamentHoldem, h.GameMode)
	assert.Equal(t, "3456789012 7", h.TableName)
	assert.Equal(t, 9, h.MaxSeats)
	handtest.RequireDecimal(t, "25", h.Blinds.Small)
	handtest.RequireDecimal(t, "50", h.Blinds.Big)
	handtest.RequireDecimal(t, "5", h.Blinds.Ante)
	assert.Len(t, h.Posts, 5)

	short, ok := h.PlayerByName("short stack")
	require.True(t, ok, "names with spaces resolve")
	assert.True(t, short.IsSmallBlind)

	pre := h.Streets[0].Actions
	require.Len(t, pre, 5)
	assert.Equal(t, hand.AllIn, pre[1].Kind)
	assert.Equal(t, hand.Raise, pre[1].Via)
	handtest.RequireDecimal(t, "395", pre[1].Amount)
	assert.Equal(t, hand.Uncalled, pre[4].Kind)
	assert.Equal(t, "Hero", pre[4].Player)
	handtest.RequireDecimal(t, "1100", pre[4].Amount)

	require.Len(t, h.Streets, 4, "run-out streets keep their cards")
	assert.Empty(t, h.Streets[1].Actions)

	require.Len(t, warns, 1)
	assert.Equal(t, parser.KindUnrecognizedActionLine, warns[0].Kind)
	assert.Contains(t, warns[0].Text, "finished the tournament")
}

func TestParseSplitPot(t *testing.T) {
	h := handtest.Parse(t, handtest.SplitPot)

	require.Len(t, h.Summary.Winners, 2)
	assert.Equal(t, "B", h.Summary.Winners[0].Player)
	assert.Equal(t, "C", h.Summary.Winners[1].Player)
	handtest.RequireDecimal(t, "0.15", h.Summary.Winners[1].Amount)

	river, ok := h.Street(hand.River)
	require.True(t, ok)
	var kinds []hand.ActionKind
	for _, a := range river.Actions {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []hand.ActionKind{hand.Shows, hand.Shows, hand.Mucks, hand.Collected, hand.Collected}, kinds)
}

func TestParseSplitPotWithoutAmounts(t *testing.T) {
	h := handtest.Parse(t, handtest.SplitPotNoAmounts)

	require.Len(t, h.Summary.Winners, 2)
	for i, name := range []string{"B", "C"} {
		assert.Equal(t, name, h.Summary.Winners[i].Player)
		assert.True(t, h.Summary.Winners[i].Amount.IsZero())
	}
}

func TestParseSummaryOnlyShowdown(t *testing.T) {
	h := handtest.Parse(t, handtest.SummaryShowdown)

	flop, ok := h.Street(hand.Flop)
	require.True(t, ok)
	require.Len(t, flop.Actions, 4)
	assert.Equal(t, hand.Action{Player: "P1", Kind: hand.Shows, Cards: []hand.Card{"Ad", "Ac"}}, flop.Actions[2])
	assert.Equal(t, hand.Shows, flop.Actions[3].Kind)

	p2, _ := h.PlayerByName("P2")
	assert.Equal(t, []hand.Card{"3c", "4c"}, p2.HoleCards)
}

func TestParseResilience(t *testing.T) {
	t.Run("missing ante", func(t *testing.T) {
		h := handtest.Parse(t, handtest.HeadsUp)
		handtest.RequireDecimal(t, "0", h.Blinds.Ante)
	})

	t.Run("malformed amount", func(t *testing.T) {
		text := strings.Replace(handtest.HeadsUp, "P1: calls 10", "P1: calls abc", 1)
		h, warns, err := parser.Parse(text)
		require.NoError(t, err)

		call := h.Streets[0].Actions[0]
		assert.Equal(t, hand.Call, call.Kind)
		assert.True(t, call.Amount.IsZero())
		require.Len(t, warns, 1)
		assert.Equal(t, parser.KindMalformedAmount, warns[0].Kind)
		assert.Equal(t, 9, warns[0].Line)
	})

	t.Run("chatter is skipped", func(t *testing.T) {
		text := strings.Replace(handtest.HeadsUp, "P2: checks\n", "P2: checks\nP1 said, \"gl\"\nP2: sits out\n", 1)
		h, warns, err := parser.Parse(text)
		require.NoError(t, err)
		assert.Len(t, h.Streets[0].Actions, 2)
		require.Len(t, warns, 2)
		for _, w := range warns {
			assert.Equal(t, parser.KindUnrecognizedActionLine, w.Kind)
		}
	})

	t.Run("crlf and bom", func(t *testing.T) {
		text := "﻿" + strings.ReplaceAll(handtest.HeadsUp, "\n", "\r\n")
		h := handtest.Parse(t, text)
		assert.Equal(t, "1000", h.HandID)
		assert.Len(t, h.Players, 2)
	})
}

func TestParseButton(t *testing.T) {
	t.Run("tag wins over header seat", func(t *testing.T) {
		text := strings.Replace(handtest.HeadsUp, "Seat 2: P2 (1000 in chips)", "Seat 2: P2 (1000 in chips) [BTN]", 1)
		h := handtest.Parse(t, text)
		assert.Equal(t, 2, h.ButtonSeat)
		btn, ok := h.Button()
		require.True(t, ok)
		assert.Equal(t, "P2", btn.Name)
	})

	t.Run("missing button defaults to first seat", func(t *testing.T) {
		text := strings.Replace(handtest.HeadsUp, " Seat #1 is the button", "", 1)
		h, warns, err := parser.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, 1, h.ButtonSeat)
		require.Len(t, warns, 1)
		assert.Equal(t, parser.KindMissingButton, warns[0].Kind)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		stage parser.Stage
		want  error
	}{
		{"empty", "  \n\n\t\n", parser.StageTokenize, parser.ErrEmptyInput},
		{"no header", "hello\nworld", parser.StageHeader, parser.ErrInvalidHeader},
		{"no table", "PokerStars Hand #1: Hold'em No Limit (10/20)\nSeat 1: P1 (1000 in chips)\nSeat 2: P2 (1000 in chips)\n*** HOLE CARDS ***", parser.StageHeader, parser.ErrInvalidHeader},
		{"no players", "PokerStars Hand #1: Hold'em No Limit (10/20)\nTable 'x' 6-max Seat #1 is the button\n*** HOLE CARDS ***", parser.StageRoster, parser.ErrNoPlayers},
		{
			"two buttons",
			"PokerStars Hand #1: Hold'em No Limit (10/20)\nTable 'x' 6-max\nSeat 1: a (100 in chips) [BTN]\nSeat 2: b (100 in chips) [BTN]\n*** HOLE CARDS ***",
			parser.StageAssemble,
			parser.ErrAssemblyInvariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, err := parser.Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, h)
			assert.ErrorIs(t, err, tt.want)

			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.stage, perr.Stage)
			assert.NotEmpty(t, perr.Reason)
		})
	}
}

func TestParseInvariantErrorUnwraps(t *testing.T) {
	_, _, err := parser.Parse("PokerStars Hand #1: Hold'em\nTable 'x' 6-max\nSeat 1: a (100 in chips) [SB]\nSeat 2: b (100 in chips) [SB]")
	assert.ErrorIs(t, err, hand.ErrInvariant)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"$1,250.50", "1250.50", true},
		{"€3", "3", true},
		{"(60)", "60", true},
		{"£0.02", "0.02", true},
		{"1 500", "1500", true},
		{"abc", "0", false},
		{"", "0", false},
	}

	for _, tt := range tests {
		got, ok := parser.ParseMoney(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		handtest.RequireDecimal(t, tt.want, got, tt.in)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want parser.Role
	}{
		{"PokerStars Hand #1: Hold'em No Limit (10/20)", parser.RoleHeader},
		{"Table 'Heads Up' 2-max Seat #1 is the button", parser.RoleTable},
		{"Seat 1: P1 (1000 in chips)", parser.RoleSeat},
		{"P1: posts small blind 10", parser.RolePost},
		{"*** FLOP *** [2h 7s Kd]", parser.RoleMarker},
		{"Dealt to P1 [9c 8c]", parser.RoleDealt},
		{"P1: raises 20 to 40", parser.RoleAction},
		{"Uncalled bet (20) returned to P2", parser.RoleAction},
		{"P2 collected 60 from pot", parser.RoleAction},
		{"P2 finished the tournament", parser.RoleOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parser.Classify(tt.line), tt.line)
	}
}
