package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open    key.Binding
	Back    key.Binding
	Cycle   key.Binding
	Block   key.Binding
	Park    key.Binding
	Add     key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Preview key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Cycle:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle")),
	Block:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "block")),
	Park:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "park")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Redo:    key.NewBinding(key.WithKeys("U", "ctrl+r"), key.WithHelp("U", "redo")),
	Preview: key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "preview")),
	Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
