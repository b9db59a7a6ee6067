package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// renderPage lays out a titled page with a help footer, shared by every
// surface so the shell looks uniform.
func renderPage(title, body, help string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(body)
	if help != "" {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(help))
	}
	return appStyle.Render(b.String())
}
