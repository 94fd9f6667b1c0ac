package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/rosterdash/internal/app"
	"github.com/andy/rosterdash/internal/domain"
	"github.com/andy/rosterdash/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel shows the roster statistics and the searchable client list
type DashboardModel struct {
	app *app.App

	search    textinput.Model
	searching bool
	query     string
	page      int
	cursor    int

	view  service.Page
	stats domain.Stats
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	search := textinput.New()
	search.Placeholder = "name or company"
	search.CharLimit = 64
	search.Width = 30
	search.Prompt = "/ "

	return &DashboardModel{
		app:    a,
		search: search,
		page:   1,
	}
}

// IsCapturingInput returns true while the search box has focus
func (m *DashboardModel) IsCapturingInput() bool {
	return m.searching
}

func (m *DashboardModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

// refresh re-derives the visible page, clamping the page number so a
// shrinking result set never strands the operator on an empty page
func (m *DashboardModel) refresh() {
	store := m.app.Store
	m.stats = store.Stats()
	m.view = store.View(m.query, m.page)
	if clamped := service.ClampPage(m.page, m.view.TotalPages); clamped != m.page {
		m.page = clamped
		m.view = store.View(m.query, m.page)
	}
	if m.cursor >= len(m.view.Clients) {
		m.cursor = max(0, len(m.view.Clients)-1)
	}
}

func (m *DashboardModel) setQuery(q string) {
	if q == m.query {
		return
	}
	m.query = q
	m.page = 1
	m.cursor = 0
	m.refresh()
}

func (m *DashboardModel) current() (domain.Client, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Clients) {
		return domain.Client{}, false
	}
	return m.view.Clients[m.cursor], true
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if !m.app.Store.Initialized() {
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.view.Clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.PrevPage):
			if m.view.HasPrev() {
				m.page--
				m.cursor = 0
				m.refresh()
			}
		case key.Matches(msg, DefaultKeyMap.NextPage):
			if m.view.HasNext() {
				m.page++
				m.cursor = 0
				m.refresh()
			}
		case key.Matches(msg, DefaultKeyMap.Search):
			m.searching = true
			m.search.SetValue(m.query)
			m.search.CursorEnd()
			return m, m.search.Focus()
		case key.Matches(msg, DefaultKeyMap.Back):
			m.setQuery("")
		case key.Matches(msg, DefaultKeyMap.Reload):
			store := m.app.Store
			return m, func() tea.Msg {
				return rosterLoadedMsg{source: store.Initialize(context.Background())}
			}
		case key.Matches(msg, DefaultKeyMap.New):
			return m, func() tea.Msg { return OpenClientFormMsg{} }
		case key.Matches(msg, DefaultKeyMap.Select):
			if c, ok := m.current(); ok && m.app.Store.Select(c.ID) {
				return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDetail} }
			}
		case key.Matches(msg, DefaultKeyMap.Edit):
			if c, ok := m.current(); ok {
				return m, func() tea.Msg { return OpenClientFormMsg{EditID: c.ID} }
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if c, ok := m.current(); ok {
				m.app.Store.RequestDelete(c.ID)
			}
		}
	}

	return m, nil
}

// updateSearch filters live as the operator types
func (m *DashboardModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, DefaultKeyMap.Select):
			m.searching = false
			m.search.Blur()
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Back):
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.setQuery("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setQuery(m.search.Value())
	return m, cmd
}

func (m *DashboardModel) View() string {
	if !m.app.Store.Initialized() {
		return "Loading roster..."
	}

	var s string
	s += m.renderStats() + "\n\n"

	// Search line
	if m.searching {
		s += m.search.View() + "\n\n"
	} else if m.query != "" {
		s += subtitleStyle.Render(fmt.Sprintf("  Filter: %q  (esc to clear)", m.query)) + "\n\n"
	}

	if m.view.TotalMatches == 0 {
		if m.query != "" {
			s += subtitleStyle.Render("  No clients match your search.") + "\n"
		} else {
			s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		}
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf("  %-24s %-16s %4s  %-7s %16s  %s",
		"Name", "Company", "Age", "Gender", "Subscription", "Registered")) + "\n"
	for i, c := range m.view.Clients {
		s += m.renderRow(i, c) + "\n"
	}

	s += "\n" + subtitleStyle.Render(fmt.Sprintf("  Page %d of %d  ·  %d client(s)",
		m.view.Page, m.view.TotalPages, m.view.TotalMatches)) + "\n"
	s += "\n" + helpStyle.Render("  j/k: move  h/l: page  /: search  enter: open  n: new  e: edit  d: delete  r: reload")

	return s
}

func (m *DashboardModel) renderStats() string {
	card := func(label, value string) string {
		return statCardStyle.Render(subtitleStyle.Render(label) + "\n" + statValueStyle.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Clients", fmt.Sprintf("%d", m.stats.TotalClients)),
		card("Companies", fmt.Sprintf("%d", m.stats.Companies)),
		card("Total Revenue", formatAmount(m.stats.TotalRevenue)),
		card("Average Age", fmt.Sprintf("%d", m.stats.AverageAge)),
	)
}

func (m *DashboardModel) renderRow(index int, c domain.Client) string {
	line := fmt.Sprintf("%-24s %-16s %4d  %-7s %16s  %s",
		truncateStr(c.Name, 24),
		truncateStr(c.Company, 16),
		c.Age,
		c.Gender,
		formatCost(c),
		c.Registered.Display(),
	)
	if index == m.cursor {
		return "> " + selectedStyle.Render(line)
	}
	return "  " + strings.TrimRight(line, " ")
}
