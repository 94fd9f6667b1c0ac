package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/rosterdash/internal/app"
	"github.com/andy/rosterdash/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// form field indices
const (
	fieldName = iota
	fieldCompany
	fieldAge
	fieldGender
	fieldCurrency
	fieldCost
	fieldPicture
	fieldCount
)

var fieldLabels = []string{"Name:", "Company:", "Age:", "Gender:", "Currency:", "Subscription cost:", "Picture URL:"}

// ClientFormModel adds a client or edits an existing one
type ClientFormModel struct {
	app        *app.App
	fields     []textinput.Model
	fieldFocus int
	editingID  string // empty for new client
	original   domain.Client
	err        error
}

// NewClientFormModel creates the form. editID selects the client to edit;
// an empty or unknown id opens a blank add form.
func NewClientFormModel(a *app.App, editID string) tea.Model {
	m := &ClientFormModel{app: a}

	var editing *domain.Client
	if editID != "" {
		if c, ok := a.Store.Get(editID); ok {
			editing = &c
		}
	}
	m.initForm(editing)
	return m
}

// IsCapturingInput is always true while the form is open
func (m *ClientFormModel) IsCapturingInput() bool {
	return true
}

func (m *ClientFormModel) Init() tea.Cmd {
	return m.fields[m.fieldFocus].Focus()
}

func (m *ClientFormModel) initForm(editing *domain.Client) {
	m.fields = make([]textinput.Model, fieldCount)
	for i := range m.fields {
		m.fields[i] = textinput.New()
		m.fields[i].CharLimit = 100
		m.fields[i].Width = 40
	}

	m.fields[fieldName].Placeholder = "Client name"
	m.fields[fieldCompany].Placeholder = "COMPANY"
	m.fields[fieldAge].Placeholder = "30"
	m.fields[fieldAge].CharLimit = 3
	m.fields[fieldAge].Width = 5
	m.fields[fieldGender].Placeholder = "male / female / other"
	m.fields[fieldCurrency].Placeholder = "USD / INR / Yen / CAD / SGD"
	m.fields[fieldCost].Placeholder = "1200.00"
	m.fields[fieldCost].CharLimit = 16
	m.fields[fieldCost].Width = 16
	m.fields[fieldPicture].Placeholder = domain.DefaultPicture
	m.fields[fieldPicture].CharLimit = 256

	// Pre-fill for editing
	if editing != nil {
		m.original = *editing
		m.editingID = editing.ID
		m.fields[fieldName].SetValue(editing.Name)
		m.fields[fieldCompany].SetValue(editing.Company)
		m.fields[fieldAge].SetValue(strconv.Itoa(editing.Age))
		m.fields[fieldGender].SetValue(string(editing.Gender))
		m.fields[fieldCurrency].SetValue(string(editing.Currency))
		m.fields[fieldCost].SetValue(editing.SubscriptionCost)
		m.fields[fieldPicture].SetValue(editing.Picture)
	} else {
		m.fields[fieldCurrency].SetValue(string(domain.CurrencyUSD))
	}

	m.fieldFocus = fieldName
}

// values reads the form into a candidate. The age must be a whole number.
func (m *ClientFormModel) values() (domain.NewClient, error) {
	ageStr := strings.TrimSpace(m.fields[fieldAge].Value())
	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return domain.NewClient{}, &domain.ValidationError{Field: "age", Message: fmt.Sprintf("must be a whole number (got %q)", ageStr)}
	}
	return domain.NewClient{
		Name:             m.fields[fieldName].Value(),
		Company:          m.fields[fieldCompany].Value(),
		Age:              age,
		Gender:           domain.Gender(strings.ToLower(strings.TrimSpace(m.fields[fieldGender].Value()))),
		Picture:          m.fields[fieldPicture].Value(),
		Currency:         parseCurrency(m.fields[fieldCurrency].Value()),
		SubscriptionCost: m.fields[fieldCost].Value(),
	}, nil
}

// patch holds only the fields that differ from the client being edited
func (m *ClientFormModel) patch(v domain.NewClient) domain.ClientPatch {
	v = v.Normalize()
	o := m.original

	var p domain.ClientPatch
	if v.Name != o.Name {
		p.Name = &v.Name
	}
	if v.Company != o.Company {
		p.Company = &v.Company
	}
	if v.Age != o.Age {
		p.Age = &v.Age
	}
	if v.Gender != o.Gender {
		p.Gender = &v.Gender
	}
	if v.Picture != o.Picture {
		p.Picture = &v.Picture
	}
	if v.Currency != o.Currency {
		p.Currency = &v.Currency
	}
	if v.SubscriptionCost != o.SubscriptionCost {
		p.SubscriptionCost = &v.SubscriptionCost
	}
	return p
}

func (m *ClientFormModel) saveClient() tea.Cmd {
	v, err := m.values()
	editingID := m.editingID
	var patch domain.ClientPatch
	if err == nil && editingID != "" {
		patch = m.patch(v)
	}

	return func() tea.Msg {
		if err != nil {
			return clientSavedMsg{err: err}
		}
		ctx := context.Background()

		if editingID != "" {
			client, ok, err := m.app.Store.Update(ctx, editingID, patch)
			if err != nil {
				return clientSavedMsg{err: err}
			}
			if !ok {
				return clientSavedMsg{err: fmt.Errorf("client %s: %w", editingID, domain.ErrNotFound)}
			}
			return clientSavedMsg{client: client}
		}

		client, err := m.app.Store.Add(ctx, v)
		if err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{client: client, isNew: true}
	}
}

func (m *ClientFormModel) cancel() tea.Cmd {
	if m.editingID != "" && m.app.Store.Select(m.editingID) {
		return func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDetail} }
	}
	return func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDashboard} }
}

func (m *ClientFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			return m, m.cancel()

		case key.Matches(msg, DefaultKeyMap.NextField):
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.PrevField):
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.Select):
			// If on last field, save
			if m.fieldFocus == fieldCount-1 {
				return m, m.saveClient()
			}
			// Otherwise advance to next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.Save):
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientFormModel) View() string {
	var s string
	if m.editingID == "" {
		s += titleStyle.Render("New Client") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Client") + subtitleStyle.Render("  "+m.original.Name) + "\n\n"
	}

	for i, label := range fieldLabels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += "\n" + errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}

// parseCurrency matches a currency code case-insensitively, leaving
// unknown input as typed for validation to report
func parseCurrency(s string) domain.Currency {
	s = strings.TrimSpace(s)
	for _, c := range domain.Currencies {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return domain.Currency(s)
}
