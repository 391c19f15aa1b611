package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Menu
	NewRoom  key.Binding
	JoinRoom key.Binding

	// Lobby
	Enter key.Binding
	Ready key.Binding
	Start key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back/leave"),
	),

	NewRoom: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new room"),
	),
	JoinRoom: key.NewBinding(
		key.WithKeys("j"),
		key.WithHelp("j", "join room"),
	),

	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	Ready: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "toggle ready"),
	),
	Start: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "start game"),
	),
}
