package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/salim-ai/salim-client/internal/gateway"
	"github.com/salim-ai/salim-client/internal/session"
	"github.com/salim-ai/salim-client/models"
)

const (
	registerFieldName = iota
	registerFieldEmail
	registerFieldPassword
	registerFieldConfirm
)

// RegisterModel collects name, email and password, creates the account and
// hands the user back to the login page. Registration never signs the user
// in by itself.
type RegisterModel struct {
	ctx     context.Context
	session *session.Store

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, sessionStore *session.Store) *RegisterModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "full name"
	nameInput.CharLimit = 128
	nameInput.Width = 40
	nameInput.Focus()

	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 254
	emailInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	confirmInput := textinput.New()
	confirmInput.Placeholder = "confirm password"
	confirmInput.CharLimit = 256
	confirmInput.Width = 40
	confirmInput.EchoMode = textinput.EchoPassword
	confirmInput.EchoCharacter = '*'

	return &RegisterModel{
		ctx:     ctx,
		session: sessionStore,
		inputs:  []textinput.Model{nameInput, emailInput, passwordInput, confirmInput},
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(registerResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = registerErrorMessage(result.err)
			return m, nil
		}

		email := strings.TrimSpace(m.inputs[registerFieldEmail].Value())
		return m, func() tea.Msg {
			return NavigateTo{Route: routeLogin, Payload: registeredMsg{email: email}}
		}
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusPrev()
			return m, nil
		case "esc":
			return m, func() tea.Msg { return NavigateTo{Route: routeLogin} }
		case "enter":
			if m.submitting {
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) View() string {
	labels := []string{"Name    ", "Email   ", "Password", "Confirm "}

	var b strings.Builder
	for i, input := range m.inputs {
		b.WriteString(labels[i])
		b.WriteString(" [")
		b.WriteString(input.View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\nCreating account...")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	return renderPage("CREATE ACCOUNT",
		strings.TrimRight(b.String(), "\n"),
		"enter: create │ esc: back to sign in")
}

func (m *RegisterModel) submit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[registerFieldName].Value())
	email := strings.TrimSpace(m.inputs[registerFieldEmail].Value())
	password := m.inputs[registerFieldPassword].Value()
	confirm := m.inputs[registerFieldConfirm].Value()

	switch {
	case name == "" || email == "" || password == "":
		m.errMsg = "All fields are required"
		return m, nil
	case password != confirm:
		m.errMsg = "Passwords do not match"
		return m, nil
	}

	m.errMsg = ""
	m.submitting = true
	return m, m.cmdRegister(models.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: name,
	})
}

func (m *RegisterModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx := m.ctx
	store := m.session

	return func() tea.Msg {
		return registerResultMsg{err: store.Register(ctx, req)}
	}
}

func registerErrorMessage(err error) string {
	switch {
	case errors.Is(err, gateway.ErrConflict):
		return "An account with this email already exists."
	case errors.Is(err, gateway.ErrBadRequest):
		return "Please check the email address and password."
	case errors.Is(err, gateway.ErrNetwork):
		return "Could not reach the server. Check your connection."
	default:
		return "Could not create the account. Please try again."
	}
}
