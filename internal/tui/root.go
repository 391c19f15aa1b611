package tui

import (
	"context"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/lobbycli/internal/api"
	"github.com/hilthontt/lobbycli/internal/infrastructure/configs"
	"github.com/hilthontt/lobbycli/internal/infrastructure/logging"
	"github.com/hilthontt/lobbycli/internal/tui/theme"
)

type page = int
type size = int

const (
	menuPage page = iota
	joinPage
	lobbyPage
	gamePage
)

const (
	undersized size = iota
	small
	medium
	large
)

type state struct {
	join  joinState
	lobby lobbyState
}

type visibleError struct {
	message string
}

type model struct {
	renderer *lipgloss.Renderer
	page     page
	state    state

	context  context.Context
	cfg      *configs.Config
	client   *api.Client
	logger   logging.Logger
	selfName string

	error *visibleError

	viewportWidth   int
	viewportHeight  int
	widthContainer  int
	heightContainer int
	widthContent    int
	heightContent   int
	size            size
	theme           theme.Theme
}

func NewModel(renderer *lipgloss.Renderer, cfg *configs.Config, client *api.Client, logger logging.Logger, selfName string) tea.Model {
	return model{
		context:  context.Background(),
		page:     menuPage,
		renderer: renderer,
		cfg:      cfg,
		client:   client,
		logger:   logger,
		selfName: selfName,
		theme:    theme.BasicTheme(renderer),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionJoinedMsg:
		// A join that completes after the user has navigated away from
		// the lobby still owns a live connection; release it instead of
		// letting it leak.
		if m.page != lobbyPage {
			msg.session.Leave()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height

		switch {
		case m.viewportWidth < 30 || m.viewportHeight < 12:
			m.size = undersized
			m.widthContainer = m.viewportWidth
			m.heightContainer = m.viewportHeight
		case m.viewportWidth < 60:
			m.size = small
			m.widthContainer = m.viewportWidth
			m.heightContainer = m.viewportHeight
		case m.viewportWidth < 90:
			m.size = medium
			m.widthContainer = 60
			m.heightContainer = int(math.Min(float64(msg.Height), 30))
		default:
			m.size = large
			m.widthContainer = 90
			m.heightContainer = int(math.Min(float64(msg.Height), 34))
		}

		m.widthContent = m.widthContainer - 2
		m.heightContent = m.heightContainer
		m = m.resizeLobby()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			if m.state.lobby.session != nil {
				m.state.lobby.session.Leave()
			}
			return m, tea.Quit
		}
		if m.error != nil && key.Matches(msg, keys.Back) {
			m.error = nil
			return m, nil
		}
	}

	switch m.page {
	case menuPage:
		return m.MenuUpdate(msg)
	case joinPage:
		return m.JoinUpdate(msg)
	case lobbyPage:
		return m.LobbyUpdate(msg)
	case gamePage:
		return m.GameUpdate(msg)
	}

	return m, nil
}

func (m model) View() string {
	if m.size == undersized {
		return m.theme.TextError().Render("terminal too small")
	}
	if m.error != nil {
		return m.renderer.Place(
			m.viewportWidth,
			m.viewportHeight,
			lipgloss.Center,
			lipgloss.Center,
			lipgloss.JoinVertical(
				lipgloss.Center,
				m.theme.TextError().Render(m.error.message),
				m.theme.TextBody().Render("press esc to continue"),
			),
		)
	}

	switch m.page {
	case menuPage:
		return m.MenuView()
	case joinPage:
		return m.JoinView()
	case lobbyPage:
		return m.LobbyView()
	case gamePage:
		return m.GameView()
	default:
		return ""
	}
}

func (m model) SwitchPage(page page) model {
	m.page = page
	return m
}
