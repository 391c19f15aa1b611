package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type joinState struct {
	input   textinput.Model
	error   string
	joining bool
}

func (m model) JoinSwitch() (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "Enter room code..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.PromptStyle = m.theme.TextBrand()
	ti.TextStyle = m.theme.TextAccent()
	ti.PlaceholderStyle = m.theme.TextBody()

	m.state.join = joinState{input: ti}
	m = m.SwitchPage(joinPage)
	return m, textinput.Blink
}

func (m model) JoinUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return m.SwitchPage(menuPage), nil

		case key.Matches(msg, keys.Enter):
			roomID := strings.TrimSpace(m.state.join.input.Value())
			if roomID == "" {
				m.state.join.error = "Room code cannot be empty"
				return m, nil
			}

			m.state.join.error = ""
			m.state.join.joining = true
			return m.LobbySwitch(roomID)
		}

	case joinFailedMsg:
		m.state.join.error = msg.message
		m.state.join.joining = false
		return m, nil
	}

	m.state.join.input, cmd = m.state.join.input.Update(msg)
	return m, cmd
}

func (m model) JoinView() string {
	s := m.state.join

	var sections []string

	sections = append(sections,
		m.theme.TextBrand().Bold(true).Render("Join Room"),
		"",
		m.theme.TextBody().Render("Enter the room code to join an existing lobby."),
		"",
		m.theme.TextAccent().Render("Room Code:"),
		s.input.View(),
	)

	if s.error != "" {
		sections = append(sections, "", m.theme.TextError().Render("⚠ "+s.error))
	}
	if s.joining {
		sections = append(sections, "", m.theme.TextHighlight().Render("Joining room..."))
	}

	sections = append(sections, "", "",
		m.theme.TextBody().Faint(true).Render("Press Enter to join • Esc to go back"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return m.renderer.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
