package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/lobbycli/internal/domain"
	"github.com/hilthontt/lobbycli/internal/lobby"
	"github.com/muesli/reflow/wordwrap"
)

type lobbyState struct {
	roomID  string
	session *lobby.Session

	status       lobby.Status
	participants []domain.Participant
	entries      []domain.ChatEntry
	localReady   bool
	canStart     bool
	lostNotice   bool

	input textinput.Model
	chat  viewport.Model
}

func (m model) LobbySwitch(roomID string) (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Focus()
	ti.CharLimit = 512
	ti.PromptStyle = m.theme.TextBrand()
	ti.TextStyle = m.theme.TextAccent()
	ti.PlaceholderStyle = m.theme.TextBody()

	m.state.lobby = lobbyState{
		roomID: roomID,
		status: lobby.StatusConnecting,
		input:  ti,
		chat:   viewport.New(m.chatWidth(), m.chatHeight()),
	}

	m = m.SwitchPage(lobbyPage)
	return m, m.joinSession(roomID)
}

func (m model) LobbyUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.state.lobby

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			if s.session != nil {
				s.session.Leave()
			}
			return m.SwitchPage(menuPage), nil

		case key.Matches(msg, keys.Ready):
			if s.session != nil {
				_ = s.session.ToggleReady()
			}
			return m, nil

		case key.Matches(msg, keys.Start):
			if s.canStart {
				return m.GameSwitch(s.roomID)
			}
			return m, nil

		case key.Matches(msg, keys.Enter):
			body := strings.TrimSpace(s.input.Value())
			if body == "" || s.session == nil {
				return m, nil
			}
			if err := s.session.SendChat(body); err != nil {
				// Not connected: leave the input untouched so nothing
				// is silently lost.
				return m, nil
			}
			s.input.SetValue("")
			return m, nil
		}

	case sessionJoinedMsg:
		if msg.session.RoomID() != s.roomID || s.session != nil {
			// A join for a room we are no longer entering.
			msg.session.Leave()
			return m, nil
		}
		s.session = msg.session
		s.status = msg.session.Status()
		return m, waitForSessionEvent(msg.session)

	case sessionEventMsg:
		m.applySessionEvent(msg.event)
		return m, waitForSessionEvent(s.session)

	case sessionEndedMsg:
		return m, nil

	case joinFailedMsg:
		m.error = &visibleError{message: msg.message}
		return m.SwitchPage(menuPage), nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	cmds = append(cmds, cmd)
	s.chat, cmd = s.chat.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *model) applySessionEvent(ev lobby.Event) {
	s := &m.state.lobby

	switch ev := ev.(type) {
	case lobby.StatusChanged:
		s.status = ev.Status
		s.canStart = ev.CanStart
		if ev.ConnectionLost {
			s.lostNotice = true
		}

	case lobby.RosterUpdated:
		s.participants = ev.Participants
		s.localReady = ev.LocalReady
		s.canStart = ev.CanStart

	case lobby.ChatAppended:
		s.entries = append(s.entries, ev.Entry)
		s.canStart = ev.CanStart
		s.chat.SetContent(m.renderChat())
		s.chat.GotoBottom()
	}
}

func (m model) chatWidth() int {
	w := m.widthContainer - 26
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) chatHeight() int {
	h := m.heightContainer - 8
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) resizeLobby() model {
	s := &m.state.lobby
	if s.roomID == "" {
		return m
	}
	s.chat.Width = m.chatWidth()
	s.chat.Height = m.chatHeight()
	s.chat.SetContent(m.renderChat())
	return m
}

func (m model) renderChat() string {
	s := m.state.lobby

	var b strings.Builder
	for _, e := range s.entries {
		var line string
		switch e.Sender {
		case domain.SystemSender:
			line = m.theme.TextBody().Faint(true).Render(e.Body)
		case domain.LocalSender:
			line = m.theme.TextBrand().Render(e.Sender+": ") + m.theme.TextAccent().Render(e.Body)
		default:
			line = m.theme.TextHighlight().Render(e.Sender+": ") + m.theme.TextAccent().Render(e.Body)
		}
		b.WriteString(wordwrap.String(line, s.chat.Width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) LobbyView() string {
	s := m.state.lobby

	statusStyle := m.theme.TextError()
	if s.status == lobby.StatusConnected {
		statusStyle = m.theme.TextSuccess()
	}
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.theme.TextBrand().Bold(true).Render("Room: "+s.roomID),
		m.theme.TextBody().Render("  "),
		statusStyle.Render(s.status.String()),
	)

	roster := m.rosterPane()
	chatPane := lipgloss.JoinVertical(
		lipgloss.Left,
		s.chat.View(),
		s.input.View(),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, roster, "  ", chatPane)

	footer := m.lobbyFooter()

	var notices []string
	if s.lostNotice {
		notices = append(notices, m.theme.TextError().Render("Connection lost. Leave and rejoin the room."))
	}

	sections := []string{header, "", body, ""}
	sections = append(sections, notices...)
	sections = append(sections, footer)

	return m.renderer.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m model) rosterPane() string {
	s := m.state.lobby

	lines := []string{m.theme.TextAccent().Bold(true).Render("Players")}
	if len(s.participants) == 0 {
		lines = append(lines, m.theme.TextBody().Render("Waiting for players..."))
	}
	for _, p := range s.participants {
		marker := m.theme.TextBody().Render("  ")
		if p.Ready {
			marker = m.theme.TextSuccess().Render("✓ ")
		}
		lines = append(lines, marker+m.theme.TextAccent().Render(p.Name))
	}

	return m.theme.Base().
		Width(22).
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border()).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m model) lobbyFooter() string {
	s := m.state.lobby

	ready := "Ready"
	if s.localReady {
		ready = "Unready"
	}

	parts := []string{
		m.theme.TextBody().Render("ctrl+r " + ready),
		m.theme.TextBody().Render("esc leave"),
	}
	if s.canStart {
		parts = append(parts, m.theme.TextSuccess().Bold(true).Render("ctrl+s start game"))
	} else {
		parts = append(parts, m.theme.TextBody().Faint(true).Render("ctrl+s start game (waiting)"))
	}

	return strings.Join(parts, m.theme.TextBody().Render("  •  "))
}
