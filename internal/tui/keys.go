package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Combine key.Binding
	Cancel  key.Binding
	Prev    key.Binding
	Next    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Combine: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "combine")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev frame")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next frame")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Combine, k.Cancel, k.Prev, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
