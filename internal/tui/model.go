package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/rosterdash/internal/app"
	"github.com/andy/rosterdash/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenDetail
	ScreenForm
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "Login"
	case ScreenDashboard:
		return "Dashboard"
	case ScreenDetail:
		return "Client"
	case ScreenForm:
		return "Client Form"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	operator string
	checked  bool // session lookup finished
	loaded   bool // roster store initialized
	source   service.Source

	// Screen models (lazy initialized)
	login     tea.Model
	dashboard tea.Model
	detail    tea.Model
	form      tea.Model
	settings  tea.Model

	// Error state
	err       error
	statusMsg string
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenLogin,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkSession(), m.loadRoster())
}

// checkSession looks up a remembered operator so the login gate can be skipped
func (m *Model) checkSession() tea.Cmd {
	return func() tea.Msg {
		operator, err := m.app.Session.Operator()
		if err != nil {
			return sessionCheckMsg{}
		}
		return sessionCheckMsg{operator: operator}
	}
}

// loadRoster initializes the roster store in the background. It never fails:
// an unreachable remote yields the demonstration roster.
func (m *Model) loadRoster() tea.Cmd {
	return func() tea.Msg {
		return rosterLoadedMsg{source: m.app.Store.Initialize(context.Background())}
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	refresh := func() tea.Msg { return RefreshDataMsg{} }
	switch screen {
	case ScreenLogin:
		// Always start from empty credentials
		m.login = NewLoginModel(m.app)
		return m.login.Init()
	case ScreenDashboard:
		if m.dashboard == nil {
			m.dashboard = NewDashboardModel(m.app)
			return m.dashboard.Init()
		}
		return refresh
	case ScreenDetail:
		if m.detail == nil {
			m.detail = NewDetailModel(m.app)
			return m.detail.Init()
		}
		return refresh
	case ScreenSettings:
		if m.settings == nil {
			m.settings = NewSettingsModel(m.app)
			return m.settings.Init()
		}
		return refresh
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global keys (q, ',', L) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) activeScreen() tea.Model {
	switch m.currentScreen {
	case ScreenLogin:
		return m.login
	case ScreenDashboard:
		return m.dashboard
	case ScreenDetail:
		return m.detail
	case ScreenForm:
		return m.form
	case ScreenSettings:
		return m.settings
	}
	return nil
}

func (m *Model) setActiveScreen(s tea.Model) {
	switch m.currentScreen {
	case ScreenLogin:
		m.login = s
	case ScreenDashboard:
		m.dashboard = s
	case ScreenDetail:
		m.detail = s
	case ScreenForm:
		m.form = s
	case ScreenSettings:
		m.settings = s
	}
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

func (m *Model) switchTo(screen Screen) tea.Cmd {
	m.currentScreen = screen
	return m.initScreen(screen)
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Clear transient messages on any keypress
		m.statusMsg = ""
		m.err = nil

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// A pending delete takes every key until it is answered
		if pending, ok := m.app.Store.PendingDelete(); ok {
			switch {
			case key.Matches(msg, DefaultKeyMap.Confirm):
				client, _, err := m.app.Store.ConfirmDelete(context.Background())
				if err != nil {
					m.err = err
					return m, nil
				}
				m.statusMsg = fmt.Sprintf("Deleted %s", client.Name)
				if m.currentScreen == ScreenDetail {
					return m, m.switchTo(ScreenDashboard)
				}
				return m, func() tea.Msg { return RefreshDataMsg{} }
			case key.Matches(msg, DefaultKeyMap.Back), msg.String() == "n", msg.String() == "N":
				m.app.Store.CancelDelete()
				m.statusMsg = fmt.Sprintf("Kept %s", pending.Name)
			}
			return m, nil
		}

		// Skip global keys when a screen is capturing text input
		if m.currentScreen != ScreenLogin && !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchTo(ScreenSettings)

			case key.Matches(msg, DefaultKeyMap.Logout):
				if err := m.app.Session.Logout(); err != nil {
					m.app.Logger.Warn("logout failed", "error", err)
				}
				m.operator = ""
				m.app.Store.ClearSelection()
				return m, m.switchTo(ScreenLogin)
			}
		}

	case sessionCheckMsg:
		m.checked = true
		if msg.operator != "" {
			m.operator = msg.operator
			return m, m.switchTo(ScreenDashboard)
		}
		return m, m.switchTo(ScreenLogin)

	case loggedInMsg:
		m.operator = msg.operator
		if msg.warning != "" {
			m.statusMsg = msg.warning
		}
		return m, m.switchTo(ScreenDashboard)

	case rosterLoadedMsg:
		m.loaded = true
		if msg.source == service.SourceKept {
			m.statusMsg = "Remote unavailable, keeping the current roster"
		} else {
			m.source = msg.source
		}
		if m.dashboard != nil {
			var cmd tea.Cmd
			m.dashboard, cmd = m.dashboard.Update(RefreshDataMsg{})
			return m, cmd
		}
		return m, nil

	case OpenClientFormMsg:
		m.form = NewClientFormModel(m.app, msg.EditID)
		m.currentScreen = ScreenForm
		return m, m.form.Init()

	case clientSavedMsg:
		if msg.err != nil {
			// Validation errors stay on the form
			break
		}
		if msg.isNew {
			m.statusMsg = fmt.Sprintf("Added %s", msg.client.Name)
			return m, m.switchTo(ScreenDashboard)
		}
		m.statusMsg = fmt.Sprintf("Saved %s", msg.client.Name)
		m.app.Store.Select(msg.client.ID)
		return m, m.switchTo(ScreenDetail)

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)

	case StatusMsg:
		m.statusMsg = msg.Text
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if screen := m.activeScreen(); screen != nil {
		screen, cmd = screen.Update(msg)
		m.setActiveScreen(screen)
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 || !m.checked {
		return "Loading..."
	}

	// Header
	title := fmt.Sprintf("rosterdash - %s", m.currentScreen.String())
	if m.operator != "" {
		title += subtitleStyle.Render(fmt.Sprintf("  signed in as %s", m.operator))
	}
	if m.loaded && m.source == service.SourceSeed {
		title += lipgloss.NewStyle().Foreground(warningColor).Render("  [remote unavailable: demonstration roster]")
	}
	header := headerStyle.Render(title)

	// Footer with navigation keys
	footer := footerStyle.Render(m.footerText())

	// Current screen content
	content := "Loading..."
	if screen := m.activeScreen(); screen != nil {
		content = screen.View()
	}
	if pending, ok := m.app.Store.PendingDelete(); ok {
		content = confirmStyle.Render(fmt.Sprintf(
			"Delete %s (%s)?\n\nThis cannot be undone.\n\n%s",
			pending.Name, pending.Company,
			helpStyle.Render("y: delete  n/esc: keep"),
		))
	}

	// Error/status display
	messageDisplay := ""
	if m.err != nil {
		var msg string
		if errors.Is(m.err, service.ErrNotInitialized) {
			msg = "Roster is still loading"
		} else {
			msg = m.err.Error()
		}
		messageDisplay = "\n" + errorStyle.Render("Error: "+msg)
	} else if m.statusMsg != "" {
		messageDisplay = "\n" + statusStyle.Render(m.statusMsg)
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, messageDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(max(m.height-4, 1)) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

func (m Model) footerText() string {
	switch m.currentScreen {
	case ScreenLogin:
		return "[enter] Log in  [ctrl+c] Quit"
	case ScreenForm:
		return "[ctrl+s] Save  [esc] Cancel"
	default:
		return "[,] Settings  [L]og out  [Q]uit"
	}
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
