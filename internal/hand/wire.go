package hand

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that encodes as a bare JSON number.
type Amount decimal.Decimal

// NewAmount wraps d for the wire.
func NewAmount(d decimal.Decimal) Amount { return Amount(d) }

// Decimal unwraps the amount.
func (a Amount) Decimal() decimal.Decimal { return decimal.Decimal(a) }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*a = Amount(decimal.Zero)
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("hand: decode amount %q: %w", b, err)
	}
	*a = Amount(d)
	return nil
}

type wireHand struct {
	HandID       string       `json:"hand_id"`
	TournamentID string       `json:"tournament_id,omitempty"`
	TableName    string       `json:"table_name"`
	Level        string       `json:"level,omitempty"`
	Stakes       string       `json:"stakes,omitempty"`
	Currency     string       `json:"currency,omitempty"`
	GameMode     string       `json:"game_mode"`
	MaxSeats     int          `json:"max_seats,omitempty"`
	ButtonSeat   int          `json:"button_seat"`
	PlayedAt     *time.Time   `json:"played_at,omitempty"`
	Blinds       wireBlinds   `json:"blinds"`
	Players      []wirePlayer `json:"players"`
	Posts        []wireAction `json:"posts,omitempty"`
	Streets      []wireStreet `json:"streets"`
	HeroName     string       `json:"hero_name,omitempty"`
	HeroCards    []Card       `json:"hero_cards,omitempty"`
	Summary      wireSummary  `json:"summary"`
}

type wireBlinds struct {
	Small Amount `json:"small"`
	Big   Amount `json:"big"`
	Ante  Amount `json:"ante"`
}

type wirePlayer struct {
	Name         string `json:"name"`
	Seat         int    `json:"seat"`
	Stack        Amount `json:"stack"`
	Position     string `json:"position,omitempty"`
	IsButton     bool   `json:"is_button"`
	IsSmallBlind bool   `json:"is_small_blind"`
	IsBigBlind   bool   `json:"is_big_blind"`
	IsHero       bool   `json:"is_hero"`
	HoleCards    []Card `json:"hole_cards,omitempty"`
}

type wireStreet struct {
	Name    StreetName   `json:"name"`
	Cards   []Card       `json:"cards"`
	Actions []wireAction `json:"actions"`
}

type wireAction struct {
	Player   string     `json:"player"`
	Action   ActionKind `json:"action"`
	Amount   Amount     `json:"amount"`
	TotalBet Amount     `json:"total_bet"`
	Via      ActionKind `json:"via,omitempty"`
	Cards    []Card     `json:"cards,omitempty"`
}

type wireWinner struct {
	Player string `json:"player"`
	Seat   int    `json:"seat"`
	Amount Amount `json:"amount"`
}

type wireSummary struct {
	TotalPot Amount       `json:"total_pot"`
	Rake     Amount       `json:"rake"`
	Board    []Card       `json:"board"`
	Winners  []wireWinner `json:"winners,omitempty"`
}

// MarshalJSON encodes the hand with snake_case field names.
func (h ParsedHand) MarshalJSON() ([]byte, error) {
	w := wireHand{
		HandID:       h.HandID,
		TournamentID: h.TournamentID,
		TableName:    h.TableName,
		Level:        h.Level,
		Stakes:       h.Stakes,
		Currency:     h.Currency,
		GameMode:     h.GameMode.String(),
		MaxSeats:     h.MaxSeats,
		ButtonSeat:   h.ButtonSeat,
		Blinds: wireBlinds{
			Small: Amount(h.Blinds.Small),
			Big:   Amount(h.Blinds.Big),
			Ante:  Amount(h.Blinds.Ante),
		},
		Players:   make([]wirePlayer, len(h.Players)),
		Posts:     toWireActions(h.Posts),
		Streets:   make([]wireStreet, len(h.Streets)),
		HeroName:  h.HeroName,
		HeroCards: h.HeroCards,
		Summary: wireSummary{
			TotalPot: Amount(h.Summary.TotalPot),
			Rake:     Amount(h.Summary.Rake),
			Board:    nonNilCards(h.Summary.Board),
		},
	}
	if !h.PlayedAt.IsZero() {
		t := h.PlayedAt
		w.PlayedAt = &t
	}
	for i, p := range h.Players {
		w.Players[i] = wirePlayer{
			Name:         p.Name,
			Seat:         p.Seat,
			Stack:        Amount(p.StartingStack),
			Position:     h.PositionName(p.Name),
			IsButton:     p.IsButton,
			IsSmallBlind: p.IsSmallBlind,
			IsBigBlind:   p.IsBigBlind,
			IsHero:       p.IsHero,
			HoleCards:    p.HoleCards,
		}
	}
	for i, s := range h.Streets {
		w.Streets[i] = wireStreet{
			Name:    s.Name,
			Cards:   nonNilCards(s.RevealedCards),
			Actions: toWireActions(s.Actions),
		}
		if w.Streets[i].Actions == nil {
			w.Streets[i].Actions = []wireAction{}
		}
	}
	for _, win := range h.Summary.Winners {
		w.Summary.Winners = append(w.Summary.Winners, wireWinner{
			Player: win.Player,
			Seat:   win.Seat,
			Amount: Amount(win.Amount),
		})
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (h *ParsedHand) UnmarshalJSON(b []byte) error {
	var w wireHand
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	out := ParsedHand{
		HandID:       w.HandID,
		TournamentID: w.TournamentID,
		TableName:    w.TableName,
		Level:        w.Level,
		Stakes:       w.Stakes,
		Currency:     w.Currency,
		GameMode:     ParseGameMode(w.GameMode),
		MaxSeats:     w.MaxSeats,
		ButtonSeat:   w.ButtonSeat,
		Blinds: Blinds{
			Small: w.Blinds.Small.Decimal(),
			Big:   w.Blinds.Big.Decimal(),
			Ante:  w.Blinds.Ante.Decimal(),
		},
		Posts:     fromWireActions(w.Posts),
		HeroName:  w.HeroName,
		HeroCards: CloneCards(w.HeroCards),
		Summary: Summary{
			TotalPot: w.Summary.TotalPot.Decimal(),
			Rake:     w.Summary.Rake.Decimal(),
			Board:    CloneCards(w.Summary.Board),
		},
	}
	if w.PlayedAt != nil {
		out.PlayedAt = *w.PlayedAt
	}
	for _, p := range w.Players {
		out.Players = append(out.Players, Player{
			Name:          p.Name,
			Seat:          p.Seat,
			StartingStack: p.Stack.Decimal(),
			IsButton:      p.IsButton,
			IsSmallBlind:  p.IsSmallBlind,
			IsBigBlind:    p.IsBigBlind,
			IsHero:        p.IsHero,
			HoleCards:     CloneCards(p.HoleCards),
		})
	}
	for _, s := range w.Streets {
		out.Streets = append(out.Streets, Street{
			Name:          s.Name,
			RevealedCards: CloneCards(s.Cards),
			Actions:       fromWireActions(s.Actions),
		})
	}
	for _, win := range w.Summary.Winners {
		out.Summary.Winners = append(out.Summary.Winners, Winner{
			Player: win.Player,
			Seat:   win.Seat,
			Amount: win.Amount.Decimal(),
		})
	}
	*h = out
	return nil
}

func toWireActions(actions []Action) []wireAction {
	if len(actions) == 0 {
		return nil
	}
	out := make([]wireAction, len(actions))
	for i, a := range actions {
		out[i] = wireAction{
			Player:   a.Player,
			Action:   a.Kind,
			Amount:   Amount(a.Amount),
			TotalBet: Amount(a.TotalBet),
			Via:      a.Via,
			Cards:    a.Cards,
		}
	}
	return out
}

func fromWireActions(actions []wireAction) []Action {
	if len(actions) == 0 {
		return nil
	}
	out := make([]Action, len(actions))
	for i, a := range actions {
		out[i] = Action{
			Player:   a.Player,
			Kind:     a.Action,
			Amount:   a.Amount.Decimal(),
			TotalBet: a.TotalBet.Decimal(),
			Via:      a.Via,
			Cards:    CloneCards(a.Cards),
		}
	}
	return out
}

func nonNilCards(cards []Card) []Card {
	if cards == nil {
		return []Card{}
	}
	return cards
}
