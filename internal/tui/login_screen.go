package tui

import (
	"errors"
	"fmt"

	"github.com/andy/rosterdash/internal/app"
	"github.com/andy/rosterdash/internal/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	loginFieldOperator = iota
	loginFieldPassword
	loginFieldCount
)

// LoginModel is the login gate. Any non-empty credentials pass.
type LoginModel struct {
	app        *app.App
	fields     []textinput.Model
	fieldFocus int
	err        error
}

// NewLoginModel creates a login screen with empty credentials
func NewLoginModel(a *app.App) tea.Model {
	m := &LoginModel{app: a, fields: make([]textinput.Model, loginFieldCount)}

	m.fields[loginFieldOperator] = textinput.New()
	m.fields[loginFieldOperator].Placeholder = "operator"
	m.fields[loginFieldOperator].CharLimit = 64
	m.fields[loginFieldOperator].Width = 30

	m.fields[loginFieldPassword] = textinput.New()
	m.fields[loginFieldPassword].Placeholder = "password"
	m.fields[loginFieldPassword].CharLimit = 128
	m.fields[loginFieldPassword].Width = 30
	m.fields[loginFieldPassword].EchoMode = textinput.EchoPassword
	m.fields[loginFieldPassword].EchoCharacter = '•'

	return m
}

// IsCapturingInput is always true: every key is typed into a field
func (m *LoginModel) IsCapturingInput() bool {
	return true
}

func (m *LoginModel) Init() tea.Cmd {
	m.fieldFocus = loginFieldOperator
	return m.fields[loginFieldOperator].Focus()
}

// submit passes the gate. A keyring failure does not block login; the
// operator is just not remembered for next time.
func (m *LoginModel) submit() tea.Cmd {
	operator := m.fields[loginFieldOperator].Value()
	password := m.fields[loginFieldPassword].Value()

	err := m.app.Session.Login(operator, password)
	if errors.Is(err, session.ErrEmptyCredentials) {
		m.err = err
		return nil
	}

	msg := loggedInMsg{operator: operator}
	if err != nil {
		m.app.Logger.Warn("could not remember operator", "error", err)
		msg.warning = "Logged in, but the session will not be remembered"
	}
	return func() tea.Msg { return msg }
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		switch {
		case key.Matches(msg, DefaultKeyMap.NextField):
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % loginFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.PrevField):
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + loginFieldCount) % loginFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.Select):
			if m.fieldFocus == loginFieldCount-1 {
				return m, m.submit()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	s := titleStyle.Render("Welcome to rosterdash") + "\n"
	s += subtitleStyle.Render("  Sign in to manage your client roster.") + "\n\n"

	labels := []string{"Operator:", "Password:"}
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

	s += helpStyle.Render("  tab: next field  enter: next/log in")
	return s
}
