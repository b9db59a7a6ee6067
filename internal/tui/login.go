package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/salim-ai/salim-client/internal/session"
)

// LoginModel is the Bubble Tea model for the login surface. Two text inputs
// (email and password) dispatch an async login command on submission; the
// shell navigates to the dashboard on success.
type LoginModel struct {
	ctx     context.Context
	session *session.Store

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	infoMsg    string
}

// NewLoginModel creates a LoginModel with pre-configured email and password
// inputs. The email field receives focus immediately; the password field
// uses masked echo.
func NewLoginModel(ctx context.Context, sessionStore *session.Store) *LoginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{
		ctx:     ctx,
		session: sessionStore,
		inputs:  []textinput.Model{emailInput, passwordInput},
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch result := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if result.err != nil {
			m.errMsg = loginErrorMessage(result.err)
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Route: routeDashboard} }

	case registeredMsg:
		m.infoMsg = "Account created for " + result.email + ". Please sign in."
		m.inputs[0].SetValue(result.email)
		return m, nil

	case sessionExpiredMsg:
		m.errMsg = "Your session expired. Please sign in again."
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusPrev()
			return m, nil
		case "ctrl+r":
			return m, func() tea.Msg { return NavigateTo{Route: routeRegister} }
		case "ctrl+f":
			return m, func() tea.Msg { return NavigateTo{Route: routeForgotPassword} }
		case "ctrl+d":
			m.session.EnterDemo()
			return m, func() tea.Msg { return NavigateTo{Route: routeDashboard} }
		case "enter":
			if m.submitting {
				return m, nil
			}

			email := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			if email == "" || password == "" {
				m.errMsg = "Email and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.infoMsg = ""
			m.submitting = true
			return m, m.cmdLogin(email, password)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Email    [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\nSigning in...")
	}
	if m.infoMsg != "" {
		b.WriteString("\n" + infoStyle.Render(m.infoMsg))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	return renderPage("SIGN IN",
		strings.TrimRight(b.String(), "\n"),
		"enter: sign in │ ctrl+r: register │ ctrl+f: forgot password │ ctrl+d: demo")
}

func (m *LoginModel) cmdLogin(email, password string) tea.Cmd {
	ctx := m.ctx
	store := m.session

	return func() tea.Msg {
		return loginResultMsg{err: store.Login(ctx, email, password)}
	}
}

func (m *LoginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// loginErrorMessage renders the kind-specific message for each member of
// the login error taxonomy.
func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, session.ErrAccountDisabled):
		return "This account has been disabled. Contact support."
	case errors.Is(err, session.ErrServer):
		return "The server is having trouble. Please try again later."
	case errors.Is(err, session.ErrNetwork):
		return "Could not reach the server. Check your connection."
	default:
		return "Sign in failed. Please try again."
	}
}
