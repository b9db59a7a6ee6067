package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NotFoundModel is the terminal surface for unknown routes; it never
// redirects, the user leaves it explicitly.
type NotFoundModel struct{}

func NewNotFoundModel() *NotFoundModel {
	return &NotFoundModel{}
}

func (m *NotFoundModel) Init() tea.Cmd {
	return nil
}

func (m *NotFoundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		return m, func() tea.Msg { return NavigateTo{Route: routeRoot} }
	}
	return m, nil
}

func (m *NotFoundModel) View() string {
	return renderPage("404",
		"This page does not exist.",
		"enter: go home")
}
