package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func (m model) MenuUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.NewRoom):
			return m, m.createRoom()
		case key.Matches(msg, keys.JoinRoom):
			return m.JoinSwitch()
		}

	case roomCreatedMsg:
		return m.LobbySwitch(msg.roomID)

	case joinFailedMsg:
		m.error = &visibleError{message: msg.message}
		return m, nil
	}

	return m, nil
}

func (m model) MenuView() string {
	base := m.theme.Base().Render
	bold := m.theme.TextAccent().Bold(true).Render

	menu := table.New().
		Border(lipgloss.HiddenBorder()).
		Row(bold("n"), base("new room")).
		Row(bold("j"), base("join room")).
		Row(bold("ctrl+c"), base("quit")).
		StyleFunc(func(row, col int) lipgloss.Style {
			return m.theme.Base().
				Padding(0, 1).
				AlignHorizontal(lipgloss.Left)
		})

	modal := m.theme.Base().
		Padding(1).
		Border(lipgloss.NormalBorder(), true, false).
		BorderForeground(m.theme.Border()).
		Render

	title := m.theme.TextBrand().Bold(true).Render("lobbycli")
	signedIn := m.theme.TextBody().Render("signed in as " + m.selfName)

	return m.renderer.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(
			lipgloss.Center,
			title,
			signedIn,
			modal(menu.Render()),
		),
	)
}
