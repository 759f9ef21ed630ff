package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/lox/handreplay/internal/hand"
	"github.com/lox/handreplay/internal/replay"
)

const rule = "────────────────────────────────────────"

// Printer writes replay positions as text, colored to the profile of the
// underlying writer.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a printer for w. Pass termenv.WithProfile(termenv.Ascii)
// to force uncolored output.
func NewPrinter(w io.Writer, opts ...termenv.OutputOption) *Printer {
	return &Printer{out: termenv.NewOutput(w, opts...)}
}

func (p *Printer) style(text, color string, bold bool) string {
	s := p.out.String(text)
	if color != "" {
		s = s.Foreground(p.out.Color(color))
	}
	if bold {
		s = s.Bold()
	}
	return s.String()
}

func (p *Printer) dim(text string) string {
	return p.out.String(text).Faint().String()
}

// Header prints the hand identity and table line.
func (p *Printer) Header(h *hand.ParsedHand) {
	title := fmt.Sprintf("=== Hand #%s ===", h.HandID)
	fmt.Fprintln(p.out, p.style(title, "#7D56F4", true))

	var parts []string
	if h.TableName != "" {
		parts = append(parts, fmt.Sprintf("Table '%s'", h.TableName))
	}
	if h.TournamentID != "" {
		parts = append(parts, "Tournament #"+h.TournamentID)
	}
	if h.Level != "" {
		parts = append(parts, "Level "+h.Level)
	}
	if h.Stakes != "" {
		parts = append(parts, h.Stakes)
	}
	parts = append(parts, h.GameMode.String())
	fmt.Fprintln(p.out, strings.Join(parts, " | "))
}

// Step prints the position counter, the last action and the pot.
func (p *Printer) Step(s replay.Snapshot) {
	counter := p.dim(fmt.Sprintf("[%d/%d]", s.Position, s.Positions-1))
	street := p.style(string(s.Street), "#96CEB4", true)

	var what string
	switch {
	case s.Complete:
		what = p.style("hand complete", "#FFD700", true)
	case s.Cursor.Action == -1 && s.Cursor.Street == 0:
		what = "blinds posted"
	case s.Cursor.Action == -1:
		what = "dealt " + p.Board(s.BoardCards)
	case s.LastAction != nil:
		what = Describe(*s.LastAction)
	}
	fmt.Fprintf(p.out, "%s %s: %s  (pot %s)\n", counter, street, what, s.Pot)
}

// Table prints every seat at the snapshot.
func (p *Printer) Table(s replay.Snapshot) {
	fmt.Fprintf(p.out, "Board: %s  Pot: %s\n", p.Board(s.BoardCards), p.style(s.Pot.String(), "#FFD700", true))
	for _, seat := range s.Players {
		name := seat.Name
		if seat.IsHero {
			name = p.style(name, "", true)
		}
		status := ""
		switch {
		case seat.IsWinner:
			status = p.style(" winner", "#04B575", true)
		case seat.IsFolded:
			status = p.dim(" folded")
		case seat.IsAllIn:
			status = p.style(" all-in", "#FF6B6B", true)
		}
		bet := ""
		if seat.CurrentStreetBet.IsPositive() {
			bet = fmt.Sprintf(" bet %s", seat.CurrentStreetBet)
		}
		fmt.Fprintf(p.out, "  Seat %d %-6s %s: %s %s%s%s\n",
			seat.Seat, seat.Position, name, seat.Stack, p.Cards(seat.Cards), bet, status)
	}
}

// Outcome prints the settled result of a hand.
func (p *Printer) Outcome(o *replay.Outcome) {
	fmt.Fprintf(p.out, "Board: %s  Pot: %s", p.Board(o.Board), o.Pot)
	if o.Rake.IsPositive() {
		fmt.Fprintf(p.out, "  Rake: %s", o.Rake)
	}
	fmt.Fprintln(p.out)
	for _, r := range o.Results {
		net := Net(r.Net)
		switch {
		case r.Net.IsPositive():
			net = p.style(net, "#04B575", true)
		case r.Net.IsNegative():
			net = p.style(net, "#FF6B6B", false)
		}
		fmt.Fprintf(p.out, "  %s: %s -> %s (%s)\n", r.Name, r.StartingStack, r.FinalStack, net)
	}
	fmt.Fprintln(p.out, p.dim(rule))
}

// Replay prints every position of r from reset to the settled end, with the
// table at the start of each street.
func (p *Printer) Replay(r *replay.Replayer) {
	r.Reset()
	p.Header(r.Hand())
	snap := r.Snapshot()
	p.Step(snap)
	p.Table(snap)
	for r.StepForward() {
		snap = r.Snapshot()
		p.Step(snap)
		if snap.Cursor.Action == -1 && !snap.Complete {
			p.Table(snap)
		}
	}
	p.Table(snap)
}

// Board formats community cards as flop | turn | river.
func (p *Printer) Board(cards []hand.Card) string {
	if len(cards) == 0 {
		return p.dim("[]")
	}
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = p.Card(c)
	}
	if len(formatted) <= 3 {
		return "[" + strings.Join(formatted, " ") + "]"
	}
	return "[" + strings.Join(formatted[:3], " ") + " | " + strings.Join(formatted[3:], " | ") + "]"
}

// Cards formats hole cards, or a placeholder when hidden.
func (p *Printer) Cards(cards []hand.Card) string {
	if len(cards) == 0 {
		return p.dim("--")
	}
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = p.Card(c)
	}
	return strings.Join(formatted, " ")
}

// Card renders one card with a suit symbol.
func (p *Printer) Card(c hand.Card) string {
	if !c.Valid() {
		return string(c)
	}
	var symbol, color string
	switch c.Suit() {
	case 's':
		symbol, color = "♠", "#5B8DEF"
	case 'h':
		symbol, color = "♥", "#FF6B6B"
	case 'd':
		symbol, color = "♦", "#FFD700"
	case 'c':
		symbol, color = "♣", "#04B575"
	}
	return p.style(string(c.Rank())+symbol, color, true)
}
