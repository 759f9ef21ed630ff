package replay_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handreplay/internal/hand"
	"github.com/lox/handreplay/internal/handtest"
	"github.com/lox/handreplay/internal/replay"
)

var fixtures = map[string]string{
	"cash":       handtest.CashSixMax,
	"tournament": handtest.TournamentAllIn,
	"heads up":   handtest.HeadsUp,
	"split":      handtest.SplitPot,
	"split bare": handtest.SplitPotNoAmounts,
	"summary":    handtest.SummaryShowdown,
}

func newReplayer(t *testing.T, text string) *replay.Replayer {
	t.Helper()
	r, err := replay.New(handtest.Parse(t, text))
	require.NoError(t, err)
	return r
}

func TestHeadsUpWalkthrough(t *testing.T) {
	r := newReplayer(t, handtest.HeadsUp)

	st := r.State()
	assert.Equal(t, replay.Cursor{Street: 0, Action: -1}, r.Cursor())
	handtest.RequireDecimal(t, "30", st.Pot)
	handtest.RequireDecimal(t, "990", st.Players["P1"].Stack)
	handtest.RequireDecimal(t, "20", st.Players["P2"].CurrentStreetBet)
	assert.Equal(t, []hand.Card{"9c", "8c"}, st.Players["P1"].Cards, "hero cards are visible")
	assert.Nil(t, st.Players["P2"].Cards)

	for r.StepForward() {
	}

	st = r.State()
	assert.True(t, st.Complete)
	handtest.RequireDecimal(t, "60", st.Pot)
	assert.True(t, st.Players["P2"].IsWinner)
	assert.True(t, st.Players["P1"].IsFolded)
	assert.False(t, st.Players["P1"].IsActive)
	handtest.RequireDecimal(t, "1020", st.Players["P2"].Stack)
	handtest.RequireDecimal(t, "980", st.Players["P1"].Stack)
}

func TestStackConservation(t *testing.T) {
	for name, text := range fixtures {
		t.Run(name, func(t *testing.T) {
			h := handtest.Parse(t, text)
			r, err := replay.New(h)
			require.NoError(t, err)
			start := r.State().ChipsInPlay()
			r.JumpToEnd()
			st := r.State()

			delta := decimal.Zero
			for _, p := range h.Players {
				delta = delta.Add(p.StartingStack.Sub(st.Players[p.Name].Stack))
			}
			if len(h.Summary.Winners) > 0 {
				handtest.RequireDecimal(t, h.Summary.Rake.String(), delta, "chips lost equal the rake")
			} else {
				assert.True(t, delta.IsZero(), "pot fully awarded, got %s", delta)
			}

			for r.StepBackward() {
				require.True(t, start.Equal(r.State().ChipsInPlay()), "chips conserved before settlement")
				if r.Position() == 0 {
					break
				}
			}
		})
	}
}

func TestBoardGrowth(t *testing.T) {
	r := newReplayer(t, handtest.CashSixMax)
	want := map[hand.StreetName]int{hand.Preflop: 0, hand.Flop: 3, hand.Turn: 4, hand.River: 5}

	prev := 0
	for {
		st := r.State()
		assert.Len(t, st.BoardCards, want[st.Street], "street %s", st.Street)
		assert.GreaterOrEqual(t, len(st.BoardCards), prev)
		prev = len(st.BoardCards)
		if !r.StepForward() {
			break
		}
	}

	r.JumpToStreet(2)
	assert.Equal(t, []hand.Card{"7c", "8d", "2h", "Js"}, r.State().BoardCards, "rebuild does not duplicate cards")
}

func TestStepBackwardIsDeterministic(t *testing.T) {
	for name, text := range fixtures {
		t.Run(name, func(t *testing.T) {
			r := newReplayer(t, text)
			for pos := 0; pos < r.Positions(); pos++ {
				r.Seek(pos)
				want := r.State()

				for k := 1; k <= 3; k++ {
					back := 0
					for i := 0; i < k && r.StepBackward(); i++ {
						back++
					}
					for i := 0; i < back; i++ {
						require.True(t, r.StepForward())
					}
					if diff := cmp.Diff(want, r.State()); diff != "" {
						t.Fatalf("position %d, %d back (-want +got):\n%s", pos, k, diff)
					}
				}
			}
		})
	}
}

func TestResetIsIdempotent(t *testing.T) {
	r := newReplayer(t, handtest.TournamentAllIn)
	r.JumpToEnd()
	r.Reset()
	first := r.State()
	r.Reset()
	if diff := cmp.Diff(first, r.State()); diff != "" {
		t.Fatalf("reset changed state (-first +second):\n%s", diff)
	}
	handtest.RequireDecimal(t, "90", first.Pot)
	handtest.RequireDecimal(t, "25", first.Players["short stack"].CurrentStreetBet, "antes are not street bets")
}

func TestRaiseUsesIncrement(t *testing.T) {
	h := &hand.ParsedHand{
		HandID:     "raise",
		ButtonSeat: 1,
		Players: []hand.Player{
			{Name: "P1", Seat: 1, StartingStack: decimal.NewFromInt(1000)},
			{Name: "P2", Seat: 2, StartingStack: decimal.NewFromInt(1000)},
		},
		Streets: []hand.Street{{
			Name: hand.Preflop,
			Actions: []hand.Action{
				{Player: "P1", Kind: hand.Bet, Amount: decimal.NewFromInt(200)},
				{Player: "P2", Kind: hand.Call, Amount: decimal.NewFromInt(200)},
				{Player: "P1", Kind: hand.Raise, Amount: decimal.NewFromInt(100), TotalBet: decimal.NewFromInt(300)},
			},
		}},
	}
	r, err := replay.New(h)
	require.NoError(t, err)

	r.SkipToAction(0, 1)
	before := r.State().Pot
	r.StepForward()
	st := r.State()
	handtest.RequireDecimal(t, "300", st.Players["P1"].CurrentStreetBet)
	handtest.RequireDecimal(t, "100", st.Pot.Sub(before))
	handtest.RequireDecimal(t, "700", st.Players["P1"].Stack)
}

func TestAllInAndUncalled(t *testing.T) {
	r := newReplayer(t, handtest.TournamentAllIn)

	r.SkipToAction(0, 3)
	st := r.State()
	assert.True(t, st.Players["Hero"].IsAllIn)
	assert.True(t, st.Players["Hero"].Stack.IsZero())
	handtest.RequireDecimal(t, "1495", st.Players["Hero"].CurrentStreetBet)

	r.StepForward()
	st = r.State()
	assert.Equal(t, hand.Uncalled, st.LastAction.Kind)
	handtest.RequireDecimal(t, "1100", st.Players["Hero"].Stack)
	handtest.RequireDecimal(t, "395", st.Players["Hero"].CurrentStreetBet)
	handtest.RequireDecimal(t, "855", st.Pot)
	assert.True(t, st.Players["short stack"].IsAllIn)
}

func TestShowdownRevealsCards(t *testing.T) {
	r := newReplayer(t, handtest.CashSixMax)
	assert.Nil(t, r.State().Players["bob"].Cards)
	r.JumpToEnd()
	assert.Equal(t, []hand.Card{"9s", "Ts"}, r.State().Players["bob"].Cards)
}

func TestSplitPotSettlement(t *testing.T) {
	r := newReplayer(t, handtest.SplitPot)
	r.JumpToEnd()
	st := r.State()
	handtest.RequireDecimal(t, "10.05", st.Players["B"].Stack)
	handtest.RequireDecimal(t, "10.05", st.Players["C"].Stack)
	handtest.RequireDecimal(t, "9.90", st.Players["A"].Stack)
	assert.False(t, st.Players["A"].IsWinner)
}

func TestSplitPotSummaryWithoutAmounts(t *testing.T) {
	out, err := replay.Final(handtest.Parse(t, handtest.SplitPotNoAmounts))
	require.NoError(t, err)
	handtest.RequireDecimal(t, "0.30", out.Pot)

	total := decimal.Zero
	for _, name := range []string{"A", "B", "C"} {
		res, ok := out.Result(name)
		require.True(t, ok)
		total = total.Add(res.FinalStack)
	}
	handtest.RequireDecimal(t, "30", total)

	b, _ := out.Result("B")
	c, _ := out.Result("C")
	handtest.RequireDecimal(t, "10.05", b.FinalStack)
	handtest.RequireDecimal(t, "10.05", c.FinalStack)
	assert.Len(t, out.Winners(), 2)
}

func TestEvenSplitWithoutAmounts(t *testing.T) {
	h := &hand.ParsedHand{
		HandID:     "even",
		ButtonSeat: 1,
		Players: []hand.Player{
			{Name: "P1", Seat: 1, StartingStack: decimal.NewFromInt(1000), IsButton: true, IsSmallBlind: true},
			{Name: "P2", Seat: 2, StartingStack: decimal.NewFromInt(1000), IsBigBlind: true},
		},
		Posts: []hand.Action{
			{Player: "P1", Kind: hand.PostSmallBlind, Amount: decimal.NewFromInt(10)},
			{Player: "P2", Kind: hand.PostBigBlind, Amount: decimal.NewFromInt(20)},
			{Player: "P1", Kind: hand.PostAnte, Amount: decimal.NewFromInt(5)},
		},
		Streets: []hand.Street{{
			Name: hand.Preflop,
			Actions: []hand.Action{
				{Player: "P1", Kind: hand.Call, Amount: decimal.NewFromInt(10)},
				{Player: "P2", Kind: hand.Check},
				{Player: "P1", Kind: hand.Collected},
				{Player: "P2", Kind: hand.Collected},
			},
		}},
	}

	out, err := replay.Final(h)
	require.NoError(t, err)
	handtest.RequireDecimal(t, "45", out.Pot)
	p1, _ := out.Result("P1")
	p2, _ := out.Result("P2")
	handtest.RequireDecimal(t, "998", p1.FinalStack, "odd chip to the first seat")
	handtest.RequireDecimal(t, "1002", p2.FinalStack)
	assert.Len(t, out.Winners(), 2)
}

func TestSynthesizedBlinds(t *testing.T) {
	h := &hand.ParsedHand{
		HandID:     "built",
		ButtonSeat: 1,
		Blinds:     hand.Blinds{Small: decimal.NewFromInt(10), Big: decimal.NewFromInt(20), Ante: decimal.NewFromInt(2)},
		Players: []hand.Player{
			{Name: "P1", Seat: 1, StartingStack: decimal.NewFromInt(100), IsButton: true, IsSmallBlind: true},
			{Name: "P2", Seat: 2, StartingStack: decimal.NewFromInt(100), IsBigBlind: true},
		},
	}
	r, err := replay.New(h)
	require.NoError(t, err)
	st := r.State()
	handtest.RequireDecimal(t, "34", st.Pot)
	handtest.RequireDecimal(t, "88", st.Players["P1"].Stack)
	handtest.RequireDecimal(t, "10", st.Players["P1"].CurrentStreetBet)
	assert.Equal(t, 2, r.Positions(), "an empty preflop and the settled end")
}

func TestNavigationClamps(t *testing.T) {
	r := newReplayer(t, handtest.CashSixMax)

	r.JumpToStreet(99)
	assert.Equal(t, replay.Cursor{Street: 3, Action: -1}, r.Cursor())

	r.SkipToAction(0, 99)
	assert.Equal(t, replay.Cursor{Street: 0, Action: 3}, r.Cursor())

	r.SkipToAction(-4, -9)
	assert.Equal(t, replay.Cursor{Street: 0, Action: -1}, r.Cursor())
	assert.False(t, r.StepBackward())

	r.JumpToEnd()
	assert.True(t, r.Complete())
	assert.False(t, r.StepForward())
	assert.InDelta(t, 100.0, r.Progress(), 0.001)
}

func TestNewRejectsInvalidHand(t *testing.T) {
	_, err := replay.New(&hand.ParsedHand{HandID: "x", ButtonSeat: 1})
	assert.ErrorIs(t, err, hand.ErrInvariant)
}

func TestSnapshotJSON(t *testing.T) {
	r := newReplayer(t, handtest.HeadsUp)
	r.JumpToStreet(1)
	r.StepForward()

	data, err := json.Marshal(r.Snapshot())
	require.NoError(t, err)

	var doc struct {
		Street     string          `json:"current_street"`
		Pot        json.RawMessage `json:"pot"`
		BoardCards []string        `json:"board_cards"`
		LastAction struct {
			Player string `json:"player"`
			Action string `json:"action"`
		} `json:"last_action"`
		Players []struct {
			Name     string `json:"name"`
			Position string `json:"position"`
		} `json:"players"`
		CanStepBackward bool `json:"can_step_backward"`
		CanStepForward  bool `json:"can_step_forward"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "flop", doc.Street)
	assert.Equal(t, "60", string(doc.Pot))
	assert.Equal(t, []string{"2h", "7s", "Kd"}, doc.BoardCards)
	assert.Equal(t, "P2", doc.LastAction.Player)
	assert.Equal(t, "bet", doc.LastAction.Action)
	require.Len(t, doc.Players, 2)
	assert.Equal(t, "BTN/SB", doc.Players[0].Position)
	assert.True(t, doc.CanStepBackward)
	assert.True(t, doc.CanStepForward)
}

func TestSessionSerializesCommands(t *testing.T) {
	s, err := replay.NewSession(handtest.Parse(t, handtest.CashSixMax))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Do(replay.Command{Op: replay.OpForward})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := s.Do(replay.Command{Op: replay.OpSnapshot})
	require.NoError(t, err)
	assert.Equal(t, snap.Positions-1, snap.Position)
	assert.True(t, snap.Complete)

	snap, err = s.Do(replay.Command{Op: replay.OpStreet, Street: 1})
	require.NoError(t, err)
	assert.Equal(t, hand.Flop, snap.Street)

	_, err = s.Do(replay.Command{Op: "teleport"})
	assert.ErrorIs(t, err, replay.ErrUnknownCommand)
}

func TestFinalOutcome(t *testing.T) {
	out, err := replay.Final(handtest.Parse(t, handtest.CashSixMax))
	require.NoError(t, err)

	bob, ok := out.Result("bob")
	require.True(t, ok)
	assert.True(t, bob.Winner)
	handtest.RequireDecimal(t, "0.76", bob.Net)

	hero, _ := out.Result("Hero")
	handtest.RequireDecimal(t, "-0.78", hero.Net)

	sum := decimal.Zero
	for _, res := range out.Results {
		sum = sum.Add(res.Net)
	}
	handtest.RequireDecimal(t, "-0.04", sum)
}
