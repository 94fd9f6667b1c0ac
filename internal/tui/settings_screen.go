package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andy/rosterdash/internal/app"
	"github.com/andy/rosterdash/internal/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldBaseURL = iota
	settingsFieldTimeout
	settingsFieldPageSize
	settingsFieldCount
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel shows the effective configuration and edits the parts
// that take effect on the next start
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string

	keyringOK bool
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	m.keyringOK = m.app.Session.IsAvailable()
	return nil
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Config

	m.fields[settingsFieldBaseURL] = textinput.New()
	m.fields[settingsFieldBaseURL].Placeholder = "http://localhost:4090"
	m.fields[settingsFieldBaseURL].CharLimit = 256
	m.fields[settingsFieldBaseURL].Width = 50
	m.fields[settingsFieldBaseURL].SetValue(cfg.Remote.BaseURL)

	m.fields[settingsFieldTimeout] = textinput.New()
	m.fields[settingsFieldTimeout].Placeholder = "10s"
	m.fields[settingsFieldTimeout].CharLimit = 10
	m.fields[settingsFieldTimeout].Width = 10
	m.fields[settingsFieldTimeout].SetValue(cfg.Remote.Timeout.String())

	m.fields[settingsFieldPageSize] = textinput.New()
	m.fields[settingsFieldPageSize].Placeholder = "10"
	m.fields[settingsFieldPageSize].CharLimit = 4
	m.fields[settingsFieldPageSize].Width = 10
	m.fields[settingsFieldPageSize].SetValue(strconv.Itoa(cfg.Dashboard.PageSize))

	m.fieldFocus = settingsFieldBaseURL
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	baseURL := strings.TrimSpace(m.fields[settingsFieldBaseURL].Value())
	timeoutStr := strings.TrimSpace(m.fields[settingsFieldTimeout].Value())
	pageSizeStr := strings.TrimSpace(m.fields[settingsFieldPageSize].Value())

	return func() tea.Msg {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil || timeout <= 0 {
			return settingsSavedMsg{err: fmt.Errorf("timeout must be a positive duration like 10s")}
		}

		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil {
			return settingsSavedMsg{err: fmt.Errorf("page size must be a whole number")}
		}

		// Validate a copy so a bad value never reaches the live config
		next := *m.app.Config
		next.Remote.BaseURL = baseURL
		next.Remote.Timeout = timeout
		next.Dashboard.PageSize = pageSize
		if err := next.Validate(); err != nil {
			return settingsSavedMsg{err: err}
		}

		*m.app.Config = next
		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.keyringOK = m.app.Session.IsAvailable()

	case tea.KeyMsg:
		m.err = nil
		switch {
		case key.Matches(msg, DefaultKeyMap.Select), key.Matches(msg, DefaultKeyMap.Edit):
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		case key.Matches(msg, DefaultKeyMap.Back):
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDashboard} }
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved. Changes apply the next time rosterdash starts."
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case key.Matches(msg, DefaultKeyMap.NextField):
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.PrevField):
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.Select):
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.Save):
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)
	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(value))
	}

	s += subtitleStyle.Render("  Remote Roster") + "\n\n"
	s += row("Base URL:", cfg.Remote.BaseURL)
	s += row("Timeout:", cfg.Remote.Timeout.String())
	s += row("Page Size:", strconv.Itoa(cfg.Dashboard.PageSize))

	keyring := "available"
	if !m.keyringOK {
		keyring = fmt.Sprintf("unavailable (set %s)", session.EnvOperator)
	}
	s += "\n" + subtitleStyle.Render("  Diagnostics") + "\n\n"
	s += row("Log Level:", cfg.Log.Level)
	s += row("Log File:", cfg.Log.File)
	s += row("Keyring:", keyring)
	s += row("Config File:", m.app.ConfigPath)

	s += "\n" + helpStyle.Render("  enter: edit settings  esc: back")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{"Remote Base URL:", "Request Timeout:", "Page Size:"}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
