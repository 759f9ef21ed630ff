package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handreplay/internal/handtest"
	"github.com/lox/handreplay/internal/replay"
)

func newTestModel(t *testing.T, text string) *Model {
	t.Helper()
	r, err := replay.New(handtest.Parse(t, text))
	require.NoError(t, err)
	m := New(r, zerolog.Nop())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		switch k {
		case "right":
			_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
		case "left":
			_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		default:
			_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
	return cmd
}

func TestReplayViewerNavigation(t *testing.T) {
	t.Run("step forward and back", func(t *testing.T) {
		m := newTestModel(t, handtest.HeadsUp)
		assert.Equal(t, 0, m.replayer.Position())

		press(m, "right", "l")
		assert.Equal(t, 2, m.replayer.Position())

		press(m, "left")
		assert.Equal(t, 1, m.replayer.Position())

		press(m, "h", "h")
		assert.Equal(t, 0, m.replayer.Position(), "backward stops at reset")
	})

	t.Run("street jumps", func(t *testing.T) {
		m := newTestModel(t, handtest.HeadsUp)

		press(m, "n")
		assert.Equal(t, replay.Cursor{Street: 1, Action: -1}, m.replayer.Cursor())

		press(m, "n")
		assert.True(t, m.replayer.Complete(), "next street from the last street ends the hand")

		press(m, "p")
		assert.Equal(t, replay.Cursor{Street: 1, Action: -1}, m.replayer.Cursor())
		assert.False(t, m.replayer.Complete())

		press(m, "p")
		assert.Equal(t, 0, m.replayer.Position())
	})

	t.Run("reset and end", func(t *testing.T) {
		m := newTestModel(t, handtest.HeadsUp)

		press(m, "G")
		assert.True(t, m.replayer.Complete())

		press(m, "g")
		assert.Equal(t, 0, m.replayer.Position())
	})
}

func TestReplayViewerLog(t *testing.T) {
	m := newTestModel(t, handtest.HeadsUp)
	press(m, "l", "l")

	lines := strings.Join(m.logLines(), "\n")
	assert.Contains(t, lines, "*** PREFLOP ***")
	assert.Contains(t, lines, "P1 calls 10")
	assert.Contains(t, lines, "> P2 checks")
	assert.NotContains(t, lines, "*** FLOP ***")

	press(m, "G")
	lines = strings.Join(m.logLines(), "\n")
	assert.Contains(t, lines, "*** FLOP ***")
	assert.Contains(t, lines, "P1 folds")
	assert.Contains(t, lines, "HAND COMPLETE")
	assert.NotContains(t, lines, "> ")
}

func TestReplayViewerView(t *testing.T) {
	r, err := replay.New(handtest.Parse(t, handtest.HeadsUp))
	require.NoError(t, err)
	m := New(r, zerolog.Nop())
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Hand #1000")
	assert.Contains(t, view, "Pot: 30")
	assert.Contains(t, view, "BTN/SB")
	assert.Contains(t, view, "quit")

	press(m, "?")
	assert.True(t, m.help.ShowAll)
}

func TestReplayViewerQuit(t *testing.T) {
	m := newTestModel(t, handtest.HeadsUp)
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
