package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lox/handreplay/internal/hand"
)

var (
	reSeat  = regexp.MustCompile(`^Seat (\d+): (.+) \(([^()]*\d[^()]*)\)(.*)$`)
	reDealt = regexp.MustCompile(`^Dealt to (.+?) \[([^\]]+)\]`)
)

// roster is the seated players in seat order plus a name index used to
// attribute action lines.
type roster struct {
	players []hand.Player
	// tagged records which positions came from [BTN]/[SB]/[BB] tags.
	taggedButton bool
	taggedBlinds bool
	// byLength holds player names longest first so prefix matching picks
	// "bob smith" over "bob".
	byLength []string
	index    map[string]int
}

func parseRoster(lines []line, end int, w *warnings) (*roster, *ParseError) {
	r := &roster{index: make(map[string]int)}
	for _, l := range lines[1:end] {
		m := reSeat.FindStringSubmatch(l.text)
		if m == nil {
			continue
		}
		seat, _ := strconv.Atoi(m[1])
		name := strings.TrimSpace(m[2])
		if _, dup := r.index[name]; dup {
			continue
		}
		stack := m[3]
		if i := strings.Index(stack, " in chips"); i >= 0 {
			stack = stack[:i]
		} else if fields := strings.Fields(stack); len(fields) > 0 {
			stack = fields[0]
		}
		p := hand.Player{
			Name:          name,
			Seat:          seat,
			StartingStack: w.money(l.no, l.text, stack),
		}
		tags := m[4]
		if strings.Contains(tags, "[BTN]") {
			p.IsButton = true
			r.taggedButton = true
		}
		if strings.Contains(tags, "[SB]") {
			p.IsSmallBlind = true
			r.taggedBlinds = true
		}
		if strings.Contains(tags, "[BB]") {
			p.IsBigBlind = true
			r.taggedBlinds = true
		}
		r.index[name] = len(r.players)
		r.players = append(r.players, p)
	}
	if len(r.players) == 0 {
		return nil, newParseError(StageRoster, KindNoPlayers, ErrNoPlayers, "no seat lines before hole cards")
	}

	sort.SliceStable(r.players, func(i, j int) bool { return r.players[i].Seat < r.players[j].Seat })
	for i, p := range r.players {
		r.index[p.Name] = i
		r.byLength = append(r.byLength, p.Name)
	}
	sort.SliceStable(r.byLength, func(i, j int) bool { return len(r.byLength[i]) > len(r.byLength[j]) })
	return r, nil
}

func (r *roster) player(name string) *hand.Player {
	i, ok := r.index[name]
	if !ok {
		return nil
	}
	return &r.players[i]
}

func (r *roster) bySeat(seat int) *hand.Player {
	for i := range r.players {
		if r.players[i].Seat == seat {
			return &r.players[i]
		}
	}
	return nil
}

// actor splits "name: rest" where name is a seated player.
func (r *roster) actor(text string) (string, string, bool) {
	for _, name := range r.byLength {
		if rest, ok := strings.CutPrefix(text, name+": "); ok {
			return name, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}

// collector splits "name collected X from pot".
func (r *roster) collector(text string) (string, string, bool) {
	for _, name := range r.byLength {
		if rest, ok := strings.CutPrefix(text, name+" collected "); ok {
			return name, rest, true
		}
	}
	return "", "", false
}

// hero finds the first "Dealt to NAME [cards]" line naming a seated player.
func (r *roster) hero(lines []line) (string, []hand.Card) {
	for _, l := range lines {
		m := reDealt.FindStringSubmatch(l.text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if r.player(name) == nil {
			continue
		}
		return name, hand.ParseCards(m[2])
	}
	return "", nil
}
