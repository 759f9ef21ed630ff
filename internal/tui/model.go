// Package tui is an interactive terminal viewer for replaying a hand.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/lox/handreplay/internal/hand"
	"github.com/lox/handreplay/internal/render"
	"github.com/lox/handreplay/internal/replay"
)

const sidebarWidth = 44

// Model is the Bubble Tea model for the replay viewer.
type Model struct {
	replayer *replay.Replayer
	logger   zerolog.Logger

	logViewport viewport.Model
	help        help.Model
	keys        keyMap

	width       int
	height      int
	initialized bool
	quitting    bool
}

// New creates a viewer positioned at the reset state of r.
func New(r *replay.Replayer, logger zerolog.Logger) *Model {
	r.Reset()
	vp := viewport.New(10, 5)
	return &Model{
		replayer:    r,
		logger:      logger.With().Str("component", "tui").Logger(),
		logViewport: vp,
		help:        help.New(),
		keys:        defaultKeyMap(),
	}
}

// Run shows the viewer on the alternate screen until the user quits.
func Run(r *replay.Replayer, logger zerolog.Logger) error {
	_, err := tea.NewProgram(New(r, logger), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug().Int("width", m.width).Int("height", m.height).Msg("Updating dimensions")
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Forward):
			m.replayer.StepForward()
		case key.Matches(msg, m.keys.Backward):
			m.replayer.StepBackward()
		case key.Matches(msg, m.keys.NextStreet):
			m.nextStreet()
		case key.Matches(msg, m.keys.PrevStreet):
			m.prevStreet()
		case key.Matches(msg, m.keys.Reset):
			m.replayer.Reset()
		case key.Matches(msg, m.keys.End):
			m.replayer.JumpToEnd()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.ScrollUp):
			m.logViewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keys.ScrollDown):
			m.logViewport.ScrollDown(1)
			return m, nil
		default:
			return m, nil
		}
		m.follow()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// nextStreet jumps to the start of the following street, or to the end from
// the last one.
func (m *Model) nextStreet() {
	if m.replayer.Complete() {
		return
	}
	next := m.replayer.Cursor().Street + 1
	if next >= len(m.replayer.Streets()) {
		m.replayer.JumpToEnd()
		return
	}
	m.replayer.JumpToStreet(next)
}

// prevStreet returns to the start of the current street, or to the previous
// street when already there.
func (m *Model) prevStreet() {
	cur := m.replayer.Cursor()
	if cur.Action == -1 && !m.replayer.Complete() {
		m.replayer.JumpToStreet(cur.Street - 1)
		return
	}
	m.replayer.JumpToStreet(cur.Street)
}

// follow keeps the most recent log line visible.
func (m *Model) follow() {
	if m.logViewport.Height > 0 {
		m.logViewport.SetContent(strings.Join(m.logLines(), "\n"))
		m.logViewport.GotoBottom()
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	snap := m.replayer.Snapshot()
	header := m.renderHeader(snap)
	footer := m.help.View(m.keys)
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	logWidth := m.width - sidebarWidth - 4
	if logWidth < 1 {
		logWidth = 1
	}
	m.logViewport.Width = logWidth
	m.logViewport.Height = bodyHeight
	m.logViewport.SetContent(strings.Join(m.logLines(), "\n"))
	if !m.initialized {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := paneStyle.Width(logWidth).Height(bodyHeight).Render(m.logViewport.View())
	sidebar := paneStyle.Width(sidebarWidth).Height(bodyHeight).Render(m.renderTable(snap))
	body := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderHeader(snap replay.Snapshot) string {
	h := m.replayer.Hand()
	title := HeaderStyle.Render(fmt.Sprintf("Hand #%s", h.HandID))
	info := []string{h.TableName}
	if h.Stakes != "" {
		info = append(info, h.Stakes)
	}
	progress := fmt.Sprintf("%d/%d (%.0f%%)", snap.Position, snap.Positions-1, snap.Progress)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		title, " ",
		InfoStyle.Render(strings.Join(info, " | ")), "  ",
		StreetStyle.Render(string(snap.Street)), "  ",
		progress,
	)
}

func (m *Model) renderTable(snap replay.Snapshot) string {
	var b strings.Builder
	b.WriteString(PotStyle.Render("Pot: " + snap.Pot.String()))
	b.WriteString("\n")
	b.WriteString("Board: " + formatCards(snap.BoardCards))
	b.WriteString("\n\n")
	for _, seat := range snap.Players {
		name := PlayerInfoStyle.Render(seat.Name)
		if seat.IsHero {
			name = HeroStyle.Render(seat.Name)
		}
		line := fmt.Sprintf("%-6s %s %s %s", seat.Position, name, seat.Stack, formatCards(seat.Cards))
		if seat.CurrentStreetBet.IsPositive() {
			line += " bet " + seat.CurrentStreetBet.String()
		}
		switch {
		case seat.IsWinner:
			line = WinnerStyle.Render(line + " ★")
		case seat.IsFolded:
			line = FoldedStyle.Render(line + " folded")
		case seat.IsAllIn:
			line = AllInStyle.Render(line + " all-in")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// logLines lists the hand history up to the current position.
func (m *Model) logLines() []string {
	cur := m.replayer.Cursor()
	complete := m.replayer.Complete()
	var lines []string
	for i, st := range m.replayer.Streets() {
		if i > cur.Street {
			break
		}
		marker := "*** " + strings.ToUpper(string(st.Name)) + " ***"
		if len(st.RevealedCards) > 0 {
			marker += " " + formatCards(st.RevealedCards)
		}
		lines = append(lines, StreetStyle.Render(marker))
		for j, a := range st.Actions {
			if i == cur.Street && j > cur.Action && !complete {
				break
			}
			text := render.Describe(a)
			if i == cur.Street && j == cur.Action && !complete {
				text = CurrentLineStyle.Render("> " + text)
			}
			lines = append(lines, text)
		}
	}
	if complete {
		lines = append(lines, PotStyle.Render("*** HAND COMPLETE ***"))
	}
	return lines
}

func formatCards(cards []hand.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("--")
	}
	formatted := make([]string, len(cards))
	for i, c := range cards {
		if c.Red() {
			formatted[i] = RedCardStyle.Render(string(c))
		} else {
			formatted[i] = BlackCardStyle.Render(string(c))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
