package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GameSwitch is the room→game transition. The lobby session has served
// its purpose once the gate opens; the game runs over its own channel,
// so the lobby connection is released here.
func (m model) GameSwitch(roomID string) (tea.Model, tea.Cmd) {
	if s := m.state.lobby.session; s != nil {
		s.Leave()
	}
	m = m.SwitchPage(gamePage)
	return m, nil
}

func (m model) GameUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Back) {
			return m.SwitchPage(menuPage), nil
		}
	case sessionEventMsg, sessionEndedMsg:
		// Drain leftovers from the lobby session teardown.
		return m, nil
	}
	return m, nil
}

func (m model) GameView() string {
	return m.renderer.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(
			lipgloss.Center,
			m.theme.TextBrand().Bold(true).Render("Game starting..."),
			m.theme.TextBody().Render("everyone is ready"),
			"",
			m.theme.TextBody().Faint(true).Render("press esc for the menu"),
		),
	)
}
