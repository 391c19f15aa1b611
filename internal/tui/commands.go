package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hilthontt/lobbycli/internal/api"
	"github.com/hilthontt/lobbycli/internal/lobby"
)

type roomCreatedMsg struct {
	roomID string
}

type joinFailedMsg struct {
	message string
}

type sessionJoinedMsg struct {
	session *lobby.Session
}

type sessionEventMsg struct {
	event lobby.Event
}

type sessionEndedMsg struct{}

// createRoom asks the server for a fresh room. Unauthenticated users
// are pointed at the login redirect instead of retrying.
func (m model) createRoom() tea.Cmd {
	return func() tea.Msg {
		roomID, err := m.client.CreateRoom(m.context)
		if err != nil {
			if errors.Is(err, api.ErrUnauthenticated) {
				return joinFailedMsg{message: "Not logged in. Visit " + m.client.LoginURL() + " first."}
			}
			return joinFailedMsg{message: "Failed to create room: " + err.Error()}
		}
		return roomCreatedMsg{roomID: roomID}
	}
}

func (m model) joinSession(roomID string) tea.Cmd {
	return func() tea.Msg {
		session, err := lobby.Join(m.context, lobby.Options{
			BaseURL:          m.cfg.Server.BaseURL,
			RoomID:           roomID,
			SelfName:         m.selfName,
			HandshakeTimeout: m.cfg.Server.HandshakeTimeout,
			EchoWindow:       m.cfg.Chat.EchoWindow,
			Logger:           m.logger,
		})
		if err != nil {
			return joinFailedMsg{message: "Failed to connect to room " + roomID}
		}
		return sessionJoinedMsg{session: session}
	}
}

// waitForSessionEvent blocks on the session's event channel and hands
// the next event to the update loop; the lobby page re-issues it after
// every event until the channel closes.
func waitForSessionEvent(session *lobby.Session) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-session.Events()
		if !ok {
			return sessionEndedMsg{}
		}
		return sessionEventMsg{event: ev}
	}
}
