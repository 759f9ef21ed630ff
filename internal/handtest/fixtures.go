// Package handtest holds hand history fixtures shared by tests.
package handtest

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lox/handreplay/internal/hand"
	"github.com/lox/handreplay/internal/parser"
)

// CashSixMax is a three-way cash hand played to showdown with rake.
const CashSixMax = `PokerStars Hand #243567890123: Hold'em No Limit ($0.01/$0.02 USD) - 2024/01/15 20:30:00 ET
Table 'Alcyone II' 6-max Seat #3 is the button
Seat 1: alice ($2.00 in chips)
Seat 3: bob ($1.50 in chips)
Seat 5: Hero ($2.10 in chips)
Hero: posts small blind $0.01
alice: posts big blind $0.02
*** HOLE CARDS ***
Dealt to Hero [Ah Kd]
bob: raises $0.04 to $0.06
Hero: raises $0.12 to $0.18
alice: folds
bob: calls $0.12
*** FLOP *** [7c 8d 2h]
Hero: bets $0.20
bob: calls $0.20
*** TURN *** [7c 8d 2h] [Js]
Hero: checks
bob: bets $0.40
Hero: calls $0.40
*** RIVER *** [7c 8d 2h Js] [Qh]
Hero: checks
bob: checks
*** SHOW DOWN ***
Hero: shows [Ah Kd] (high card Ace)
bob: shows [9s Ts] (a straight, Eight to Queen)
bob collected $1.54 from pot
*** SUMMARY ***
Total pot $1.58 | Rake $0.04
Board [7c 8d 2h Js Qh]
Seat 1: alice (big blind) folded before Flop
Seat 3: bob (button) showed [9s Ts] and won ($1.54) with a straight, Eight to Queen
Seat 5: Hero (small blind) showed [Ah Kd] and lost with high card Ace
`

// TournamentAllIn has antes, two all-ins and an uncalled bet.
const TournamentAllIn = `PokerStars Hand #250000000001: Tournament #3456789012, $1.00+$0.10 USD Hold'em No Limit - Level III (25/50) - 2024/03/02 18:04:11 ET
Table '3456789012 7' 9-max Seat #2 is the button
Seat 1: Villain1 (3000 in chips)
Seat 2: Hero (1500 in chips)
Seat 4: short stack (400 in chips)
Villain1: posts the ante 5
Hero: posts the ante 5
short stack: posts the ante 5
short stack: posts small blind 25
Villain1: posts big blind 50
*** HOLE CARDS ***
Dealt to Hero [Qs Qh]
Hero: raises 100 to 150
short stack: raises 245 to 395 and is all-in
Villain1: folds
Hero: raises 1100 to 1495 and is all-in
Uncalled bet (1100) returned to Hero
*** FLOP *** [2c 9d Kh]
*** TURN *** [2c 9d Kh] [4s]
*** RIVER *** [2c 9d Kh 4s] [7h]
*** SHOW DOWN ***
short stack: shows [As Jd] (high card Ace)
Hero: shows [Qs Qh] (a pair of Queens)
Hero collected 855 from pot
short stack finished the tournament in 3rd place
*** SUMMARY ***
Total pot 855 | Rake 0
Board [2c 9d Kh 4s 7h]
Seat 1: Villain1 (big blind) folded before Flop
Seat 2: Hero (button) showed [Qs Qh] and won (855) with a pair of Queens
Seat 4: short stack (small blind) showed [As Jd] and lost with high card Ace
`

// HeadsUp is the two player hand from the replay walkthrough: the big
// blind bets the flop and the small blind folds, leaving a pot of 60.
const HeadsUp = `PokerStars Hand #1000: Hold'em No Limit (10/20) - 2024/01/01 12:00:00 ET
Table 'Heads Up' 2-max Seat #1 is the button
Seat 1: P1 (1000 in chips)
Seat 2: P2 (1000 in chips)
P1: posts small blind 10
P2: posts big blind 20
*** HOLE CARDS ***
Dealt to P1 [9c 8c]
P1: calls 10
P2: checks
*** FLOP *** [2h 7s Kd]
P2: bets 20
P1: folds
`

// SplitPot ends with two winners sharing the pot.
const SplitPot = `PokerStars Hand #2000: Hold'em No Limit ($0.05/$0.10 USD) - 2024/02/10 09:15:42 ET
Table 'Split' 6-max Seat #1 is the button
Seat 1: A ($10 in chips)
Seat 2: B ($10 in chips)
Seat 3: C ($10 in chips)
B: posts small blind $0.05
C: posts big blind $0.10
*** HOLE CARDS ***
A: calls $0.10
B: calls $0.05
C: checks
*** FLOP *** [Ah Kh Qh]
B: checks
C: checks
A: checks
*** TURN *** [Ah Kh Qh] [Jh]
*** RIVER *** [Ah Kh Qh Jh] [Th]
*** SHOW DOWN ***
B: shows [2c 3d] (a Royal Flush)
C: shows [4c 5d] (a Royal Flush)
A: mucks hand
B collected $0.15 from pot
C collected $0.15 from pot
*** SUMMARY ***
Total pot $0.30 | Rake $0
Board [Ah Kh Qh Jh Th]
Seat 1: A (button) mucked
Seat 2: B (small blind) showed [2c 3d] and won ($0.15) with a Royal Flush
Seat 3: C (big blind) showed [4c 5d] and won ($0.15) with a Royal Flush
`

// SplitPotNoAmounts is SplitPot with the winners named only by "and won"
// summary lines that carry no amount.
var SplitPotNoAmounts = strings.NewReplacer(
	"B collected $0.15 from pot\n", "",
	"C collected $0.15 from pot\n", "",
	"and won ($0.15) with", "and won with",
).Replace(SplitPot)

// SummaryShowdown only reveals cards in the summary section.
const SummaryShowdown = `PokerStars Hand #3000: Hold'em No Limit (10/20) - 2024/01/01 12:05:00 ET
Table 'Summary Only' 2-max Seat #1 is the button
Seat 1: P1 (1000 in chips)
Seat 2: P2 (1000 in chips)
P1: posts small blind 10
P2: posts big blind 20
*** HOLE CARDS ***
P1: calls 10
P2: checks
*** FLOP *** [2h 7s Kd]
P2: checks
P1: checks
*** SUMMARY ***
Total pot 40 | Rake 0
Board [2h 7s Kd]
Seat 1: P1 (button) (small blind) showed [Ad Ac] and won (40) with a pair of Aces
Seat 2: P2 (big blind) showed [3c 4c] and lost with high card King
`

// Parse parses text and fails the test on a parse error.
func Parse(t testing.TB, text string) *hand.ParsedHand {
	t.Helper()
	h, _, err := parser.Parse(text)
	require.NoError(t, err)
	return h
}

// Dec parses a decimal literal.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// RequireDecimal compares decimals by value.
func RequireDecimal(t testing.TB, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, Dec(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}
