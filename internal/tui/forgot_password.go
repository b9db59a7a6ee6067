package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ForgotPasswordModel is a public placeholder surface: it collects an email
// and always reports that reset instructions were sent. Actual reset
// delivery is a backend concern.
type ForgotPasswordModel struct {
	input textinput.Model
	sent  bool
}

func NewForgotPasswordModel() *ForgotPasswordModel {
	input := textinput.New()
	input.Placeholder = "email"
	input.CharLimit = 254
	input.Width = 40
	input.Focus()

	return &ForgotPasswordModel{input: input}
}

func (m *ForgotPasswordModel) Init() tea.Cmd {
	m.sent = false
	m.input.SetValue("")
	return textinput.Blink
}

func (m *ForgotPasswordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateTo{Route: routeLogin} }
		case "enter":
			if strings.TrimSpace(m.input.Value()) != "" {
				m.sent = true
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ForgotPasswordModel) View() string {
	var b strings.Builder
	b.WriteString("Email [")
	b.WriteString(m.input.View())
	b.WriteString("]")

	if m.sent {
		b.WriteString("\n\n" + infoStyle.Render(
			"If an account exists for that address, reset instructions are on the way."))
	}

	return renderPage("RESET PASSWORD",
		b.String(),
		"enter: send reset link │ esc: back to sign in")
}
