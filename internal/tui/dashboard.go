package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salim-ai/salim-client/internal/gateway"
	"github.com/salim-ai/salim-client/internal/session"
)

// DashboardModel is the landing surface after sign-in: a greeting, a
// market ticker and a cursor menu over the feature pages.
type DashboardModel struct {
	ctx     context.Context
	session *session.Store
	api     *gateway.Gateway

	items []dashboardItem
	idx   int

	quote    string
	quoteErr bool
}

type dashboardItem struct {
	label string
	route string
}

func NewDashboardModel(ctx context.Context, sessionStore *session.Store, api *gateway.Gateway) *DashboardModel {
	return &DashboardModel{
		ctx:     ctx,
		session: sessionStore,
		api:     api,
		items: []dashboardItem{
			{label: "Banking", route: routeBanking},
			{label: "Settings", route: routeSettings},
		},
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.cmdQuote("AAPL")
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if q, ok := msg.(quoteMsg); ok {
		if q.err != nil {
			m.quoteErr = true
			return m, nil
		}
		m.quoteErr = false
		m.quote = fmt.Sprintf("%s %.2f %s (%+.2f%%)",
			q.quote.Symbol, q.quote.Price, q.quote.Currency, q.quote.ChangePercent)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "enter":
		route := m.items[m.idx].route
		return m, func() tea.Msg { return NavigateTo{Route: route} }
	case "ctrl+l":
		return m, m.cmdLogout()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	snapshot := m.session.Snapshot()

	var b strings.Builder
	greeting := "Welcome back"
	if snapshot.User.FirstName != "" {
		greeting = "Welcome back, " + snapshot.User.FirstName
	}
	b.WriteString(greeting)
	if snapshot.Credentials.IsDemo() {
		b.WriteString("  " + infoStyle.Render("[demo]"))
	}
	b.WriteString("\n")

	switch {
	case m.quote != "":
		b.WriteString(helpStyle.Render(m.quote) + "\n")
	case m.quoteErr:
		b.WriteString(helpStyle.Render("market data unavailable") + "\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, item.label))
	}

	return renderPage("DASHBOARD",
		strings.TrimRight(b.String(), "\n"),
		"enter: open │ ↑/↓: navigate │ ctrl+l: sign out")
}

func (m *DashboardModel) cmdQuote(symbol string) tea.Cmd {
	ctx := m.ctx
	api := m.api

	return func() tea.Msg {
		quote, err := api.Quote(ctx, symbol)
		return quoteMsg{quote: quote, err: err}
	}
}

func (m *DashboardModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	store := m.session

	return func() tea.Msg {
		store.Logout(ctx)
		return logoutDoneMsg{}
	}
}
