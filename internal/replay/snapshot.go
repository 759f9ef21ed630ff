package replay

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/lox/handreplay/internal/hand"
)

// SeatView is a player's state with the static facts a renderer needs.
type SeatView struct {
	PlayerState
	Position     string
	IsButton     bool
	IsSmallBlind bool
	IsBigBlind   bool
	IsHero       bool
}

// Snapshot is a self-contained view of one replay position.
type Snapshot struct {
	HandID          string
	Cursor          Cursor
	Street          hand.StreetName
	Players         []SeatView
	BoardCards      []hand.Card
	Pot             decimal.Decimal
	LastAction      *hand.Action
	Position        int
	Positions       int
	Progress        float64
	CanStepForward  bool
	CanStepBackward bool
	Complete        bool
}

// Snapshot captures the current position.
func (r *Replayer) Snapshot() Snapshot {
	st := r.state.Clone()
	snap := Snapshot{
		HandID:          r.hand.HandID,
		Cursor:          st.Cursor,
		Street:          st.Street,
		BoardCards:      st.BoardCards,
		Pot:             st.Pot,
		LastAction:      st.LastAction,
		Position:        r.Position(),
		Positions:       r.Positions(),
		Progress:        r.Progress(),
		CanStepForward:  !st.Complete,
		CanStepBackward: r.Position() > 0,
		Complete:        st.Complete,
	}
	for _, p := range r.hand.Players {
		ps := st.Players[p.Name]
		snap.Players = append(snap.Players, SeatView{
			PlayerState:  *ps,
			Position:     r.hand.PositionName(p.Name),
			IsButton:     p.IsButton,
			IsSmallBlind: p.IsSmallBlind,
			IsBigBlind:   p.IsBigBlind,
			IsHero:       p.IsHero,
		})
	}
	return snap
}

type wireSeat struct {
	Name             string      `json:"name"`
	Seat             int         `json:"seat"`
	Position         string      `json:"position,omitempty"`
	Stack            hand.Amount `json:"stack"`
	CurrentStreetBet hand.Amount `json:"current_street_bet"`
	Cards            []hand.Card `json:"cards"`
	IsFolded         bool        `json:"is_folded"`
	IsActive         bool        `json:"is_active"`
	IsAllIn          bool        `json:"is_all_in"`
	IsChecked        bool        `json:"is_checked"`
	IsWinner         bool        `json:"is_winner"`
	IsButton         bool        `json:"is_button"`
	IsSmallBlind     bool        `json:"is_small_blind"`
	IsBigBlind       bool        `json:"is_big_blind"`
	IsHero           bool        `json:"is_hero"`
}

type wireAction struct {
	Player   string          `json:"player"`
	Action   hand.ActionKind `json:"action"`
	Amount   hand.Amount     `json:"amount"`
	TotalBet hand.Amount     `json:"total_bet"`
	Via      hand.ActionKind `json:"via,omitempty"`
	Cards    []hand.Card     `json:"cards,omitempty"`
}

type wireSnapshot struct {
	HandID          string          `json:"hand_id"`
	Cursor          Cursor          `json:"cursor"`
	Street          hand.StreetName `json:"current_street"`
	Players         []wireSeat      `json:"players"`
	BoardCards      []hand.Card     `json:"board_cards"`
	Pot             hand.Amount     `json:"pot"`
	LastAction      *wireAction     `json:"last_action"`
	Position        int             `json:"position"`
	Positions       int             `json:"total_positions"`
	Progress        float64         `json:"progress"`
	CanStepForward  bool            `json:"can_step_forward"`
	CanStepBackward bool            `json:"can_step_backward"`
	Complete        bool            `json:"complete"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	w := wireSnapshot{
		HandID:          s.HandID,
		Cursor:          s.Cursor,
		Street:          s.Street,
		Players:         make([]wireSeat, len(s.Players)),
		BoardCards:      s.BoardCards,
		Pot:             hand.NewAmount(s.Pot),
		Position:        s.Position,
		Positions:       s.Positions,
		Progress:        s.Progress,
		CanStepForward:  s.CanStepForward,
		CanStepBackward: s.CanStepBackward,
		Complete:        s.Complete,
	}
	if w.BoardCards == nil {
		w.BoardCards = []hand.Card{}
	}
	for i, p := range s.Players {
		cards := p.Cards
		if cards == nil {
			cards = []hand.Card{}
		}
		w.Players[i] = wireSeat{
			Name:             p.Name,
			Seat:             p.Seat,
			Position:         p.Position,
			Stack:            hand.NewAmount(p.Stack),
			CurrentStreetBet: hand.NewAmount(p.CurrentStreetBet),
			Cards:            cards,
			IsFolded:         p.IsFolded,
			IsActive:         p.IsActive,
			IsAllIn:          p.IsAllIn,
			IsChecked:        p.IsChecked,
			IsWinner:         p.IsWinner,
			IsButton:         p.IsButton,
			IsSmallBlind:     p.IsSmallBlind,
			IsBigBlind:       p.IsBigBlind,
			IsHero:           p.IsHero,
		}
	}
	if a := s.LastAction; a != nil {
		w.LastAction = &wireAction{
			Player:   a.Player,
			Action:   a.Kind,
			Amount:   hand.NewAmount(a.Amount),
			TotalBet: hand.NewAmount(a.TotalBet),
			Via:      a.Via,
			Cards:    a.Cards,
		}
	}
	return json.Marshal(w)
}
