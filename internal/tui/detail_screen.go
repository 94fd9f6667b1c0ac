package tui

import (
	"fmt"

	"github.com/andy/rosterdash/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DetailModel shows the selected client. It reads the selection from the
// roster store on every render so edits show up immediately.
type DetailModel struct {
	app *app.App
}

// NewDetailModel creates a new detail screen model
func NewDetailModel(a *app.App) tea.Model {
	return &DetailModel{app: a}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) back() tea.Cmd {
	m.app.Store.ClearSelection()
	return func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDashboard} }
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	client, selected := m.app.Store.Selected()
	if !selected {
		return m, m.back()
	}

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Back):
		return m, m.back()
	case key.Matches(keyMsg, DefaultKeyMap.Edit):
		return m, func() tea.Msg { return OpenClientFormMsg{EditID: client.ID} }
	case key.Matches(keyMsg, DefaultKeyMap.Delete):
		m.app.Store.RequestDelete(client.ID)
	}
	return m, nil
}

func (m *DetailModel) View() string {
	c, ok := m.app.Store.Selected()
	if !ok {
		return subtitleStyle.Render("  No client selected.")
	}

	rows := [][2]string{
		{"Company", c.Company},
		{"Age", fmt.Sprintf("%d", c.Age)},
		{"Gender", string(c.Gender)},
		{"Subscription", fmt.Sprintf("%s (%s)", formatCost(c), c.Currency)},
		{"Registered", c.Registered.Display()},
		{"Picture", c.Picture},
		{"ID", c.ID},
	}

	body := titleStyle.Render(c.Name) + "\n\n"
	for _, r := range rows {
		body += fmt.Sprintf("%s %s\n", subtitleStyle.Render(fmt.Sprintf("%-13s", r[0]+":")), r[1])
	}

	s := boxStyle.Render(body) + "\n\n"
	s += helpStyle.Render("  e: edit  d: delete  esc: back")
	return s
}
