package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Attack   key.Binding
	Cancel   key.Binding
	Edge     key.Binding
	Snapshot key.Binding
	Palette  key.Binding
	Disarm   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Attack: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "attack"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cancel attack"),
	),
	Edge: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "draw edge"),
	),
	Snapshot: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save png"),
	),
	Palette: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "pick palette item"),
	),
	Disarm: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "drop nothing"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Palette, k.Edge, k.Attack, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Palette, k.Disarm, k.Edge},
		{k.Attack, k.Cancel, k.Snapshot},
		{k.Help, k.Quit},
	}
}
