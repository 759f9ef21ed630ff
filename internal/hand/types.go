// Package hand defines the structured form of a parsed poker hand history.
//
// A ParsedHand is built once by the parser and treated as immutable
// afterwards; replay code derives its own mutable table state from it.
package hand

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameMode classifies the hand by format and variant.
type GameMode int

const (
	GameModeUnknown GameMode = iota
	TournamentHoldem
	CashHoldem
	TournamentOmaha
	CashOmaha
)

func (m GameMode) String() string {
	switch m {
	case TournamentHoldem:
		return "tournament_holdem"
	case CashHoldem:
		return "cash_holdem"
	case TournamentOmaha:
		return "tournament_omaha"
	case CashOmaha:
		return "cash_omaha"
	default:
		return "unknown"
	}
}

// Tournament reports whether the mode is a tournament format.
func (m GameMode) Tournament() bool {
	return m == TournamentHoldem || m == TournamentOmaha
}

// ParseGameMode is the inverse of GameMode.String.
func ParseGameMode(s string) GameMode {
	for _, m := range []GameMode{TournamentHoldem, CashHoldem, TournamentOmaha, CashOmaha} {
		if m.String() == s {
			return m
		}
	}
	return GameModeUnknown
}

// StreetName identifies a betting round.
type StreetName string

const (
	Preflop StreetName = "preflop"
	Flop    StreetName = "flop"
	Turn    StreetName = "turn"
	River   StreetName = "river"
)

// StreetOrder is the canonical order of betting rounds.
var StreetOrder = []StreetName{Preflop, Flop, Turn, River}

// Index returns the canonical position of the street, or -1.
func (s StreetName) Index() int {
	for i, name := range StreetOrder {
		if name == s {
			return i
		}
	}
	return -1
}

// BoardSize is the number of community cards visible once the street is dealt.
func (s StreetName) BoardSize() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	default:
		return 0
	}
}

// ActionKind is the verb of a recorded action.
type ActionKind string

const (
	Fold           ActionKind = "fold"
	Check          ActionKind = "check"
	Call           ActionKind = "call"
	Bet            ActionKind = "bet"
	Raise          ActionKind = "raise"
	AllIn          ActionKind = "all-in"
	PostSmallBlind ActionKind = "small_blind"
	PostBigBlind   ActionKind = "big_blind"
	PostAnte       ActionKind = "ante"
	Shows          ActionKind = "shows"
	Collected      ActionKind = "collected"
	Mucks          ActionKind = "mucks"
	Uncalled       ActionKind = "uncalled"
)

var actionKinds = map[ActionKind]struct{}{
	Fold: {}, Check: {}, Call: {}, Bet: {}, Raise: {}, AllIn: {},
	PostSmallBlind: {}, PostBigBlind: {}, PostAnte: {},
	Shows: {}, Collected: {}, Mucks: {}, Uncalled: {},
}

// Known reports whether k is one of the defined kinds.
func (k ActionKind) Known() bool {
	_, ok := actionKinds[k]
	return ok
}

// Posting reports whether the action is a forced bet.
func (k ActionKind) Posting() bool {
	return k == PostSmallBlind || k == PostBigBlind || k == PostAnte
}

// Wager reports whether the action moves chips from stack to pot.
func (k ActionKind) Wager() bool {
	switch k {
	case Call, Bet, Raise, AllIn, PostSmallBlind, PostBigBlind, PostAnte:
		return true
	}
	return false
}

// Action is one line of play attributed to a player.
type Action struct {
	Player string
	Kind   ActionKind
	// Amount is the increment put in (or returned/collected); for raises it is
	// the raise size, never the resulting total.
	Amount decimal.Decimal
	// TotalBet is the player's outstanding bet on the street after a raise.
	TotalBet decimal.Decimal
	// Via is the underlying verb of an all-in (call, bet, raise or a post).
	Via   ActionKind
	Cards []Card
}

// Street is one betting round with the cards it revealed.
type Street struct {
	Name          StreetName
	RevealedCards []Card
	Actions       []Action
}

// Player is a seated player at hand start.
type Player struct {
	Name          string
	Seat          int
	StartingStack decimal.Decimal
	IsButton      bool
	IsSmallBlind  bool
	IsBigBlind    bool
	IsHero        bool
	HoleCards     []Card
}

// Blinds holds the forced bet sizes of the hand.
type Blinds struct {
	Small decimal.Decimal
	Big   decimal.Decimal
	Ante  decimal.Decimal
}

// Winner is a pot share reported in the summary.
type Winner struct {
	Player string
	Seat   int
	Amount decimal.Decimal
}

// Summary is the post-hand section of the log.
type Summary struct {
	TotalPot decimal.Decimal
	Rake     decimal.Decimal
	Board    []Card
	Winners  []Winner
}

// ParsedHand is a fully parsed hand history.
type ParsedHand struct {
	HandID       string
	TournamentID string
	TableName    string
	Level        string
	Stakes       string
	Currency     string
	GameMode     GameMode
	MaxSeats     int
	ButtonSeat   int
	PlayedAt     time.Time

	Blinds  Blinds
	Players []Player
	// Posts holds the forced bets in log order; they are applied on replay reset.
	Posts   []Action
	Streets []Street

	HeroName  string
	HeroCards []Card

	Summary Summary
}

// PlayerByName returns the named player.
func (h *ParsedHand) PlayerByName(name string) (Player, bool) {
	for _, p := range h.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerBySeat returns the player in the given seat.
func (h *ParsedHand) PlayerBySeat(seat int) (Player, bool) {
	for _, p := range h.Players {
		if p.Seat == seat {
			return p, true
		}
	}
	return Player{}, false
}

// Button returns the button player, if any.
func (h *ParsedHand) Button() (Player, bool) {
	for _, p := range h.Players {
		if p.IsButton {
			return p, true
		}
	}
	return Player{}, false
}

// Street returns the street with the given name.
func (h *ParsedHand) Street(name StreetName) (Street, bool) {
	for _, s := range h.Streets {
		if s.Name == name {
			return s, true
		}
	}
	return Street{}, false
}

// Board accumulates the revealed cards of all streets.
func (h *ParsedHand) Board() []Card {
	var board []Card
	for _, s := range h.Streets {
		board = append(board, s.RevealedCards...)
	}
	return board
}

// ActionCount is the number of street actions, posts excluded.
func (h *ParsedHand) ActionCount() int {
	n := 0
	for _, s := range h.Streets {
		n += len(s.Actions)
	}
	return n
}

// ActionsBy returns every street action taken by the named player.
func (h *ParsedHand) ActionsBy(name string) []Action {
	var out []Action
	for _, s := range h.Streets {
		for _, a := range s.Actions {
			if a.Player == name {
				out = append(out, a)
			}
		}
	}
	return out
}
