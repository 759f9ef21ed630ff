package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Forward    key.Binding
	Backward   key.Binding
	NextStreet key.Binding
	PrevStreet key.Binding
	Reset      key.Binding
	End        key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Forward: key.NewBinding(
			key.WithKeys("right", "l", " "),
			key.WithHelp("→/l", "step"),
		),
		Backward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "back"),
		),
		NextStreet: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next street"),
		),
		PrevStreet: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "prev street"),
		),
		Reset: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "reset"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "end"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Backward, k.NextStreet, k.End, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.NextStreet, k.PrevStreet},
		{k.Reset, k.End, k.ScrollUp, k.ScrollDown},
		{k.Help, k.Quit},
	}
}
