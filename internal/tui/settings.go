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
	settingsFieldName = iota
	settingsFieldEmail
	settingsFieldCurrentPassword
	settingsFieldNewPassword
)

// SettingsModel edits the profile (name, email) and changes the password.
// Profile saves go to the backend first; the session user record is
// patched only after the backend accepted the change.
type SettingsModel struct {
	ctx     context.Context
	session *session.Store
	api     *gateway.Gateway

	inputs []textinput.Model
	focus  int

	saving  bool
	errMsg  string
	infoMsg string
}

func NewSettingsModel(ctx context.Context, sessionStore *session.Store, api *gateway.Gateway) *SettingsModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "full name"
	nameInput.CharLimit = 128
	nameInput.Width = 40
	nameInput.Focus()

	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 254
	emailInput.Width = 40

	currentInput := textinput.New()
	currentInput.Placeholder = "current password"
	currentInput.CharLimit = 256
	currentInput.Width = 40
	currentInput.EchoMode = textinput.EchoPassword
	currentInput.EchoCharacter = '*'

	newInput := textinput.New()
	newInput.Placeholder = "new password"
	newInput.CharLimit = 256
	newInput.Width = 40
	newInput.EchoMode = textinput.EchoPassword
	newInput.EchoCharacter = '*'

	return &SettingsModel{
		ctx:     ctx,
		session: sessionStore,
		api:     api,
		inputs:  []textinput.Model{nameInput, emailInput, currentInput, newInput},
	}
}

func (m *SettingsModel) Init() tea.Cmd {
	snapshot := m.session.Snapshot()
	m.inputs[settingsFieldName].SetValue(snapshot.User.FullName)
	m.inputs[settingsFieldEmail].SetValue(snapshot.User.Email)
	m.inputs[settingsFieldCurrentPassword].SetValue("")
	m.inputs[settingsFieldNewPassword].SetValue("")
	m.errMsg = ""
	m.infoMsg = ""
	return textinput.Blink
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch result := msg.(type) {
	case profileSavedMsg:
		m.saving = false
		if result.err != nil {
			m.errMsg = settingsErrorMessage(result.err)
			return m, nil
		}
		m.session.UpdateUser(m.ctx, result.user)
		m.infoMsg = "Profile saved."
		return m, nil

	case passwordChangedMsg:
		m.saving = false
		if result.err != nil {
			m.errMsg = passwordErrorMessage(result.err)
			return m, nil
		}
		m.inputs[settingsFieldCurrentPassword].SetValue("")
		m.inputs[settingsFieldNewPassword].SetValue("")
		m.infoMsg = "Password changed."
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.focusField((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.focusField((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		case "esc":
			return m, func() tea.Msg { return NavigateTo{Route: routeDashboard} }
		case "enter":
			if m.saving {
				return m, nil
			}
			if m.focus <= settingsFieldEmail {
				return m.saveProfile()
			}
			return m.changePassword()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	labels := []string{"Name            ", "Email           ", "Current password", "New password    "}

	var b strings.Builder
	b.WriteString("Profile\n")
	for i := settingsFieldName; i <= settingsFieldEmail; i++ {
		b.WriteString("  " + labels[i] + " [" + m.inputs[i].View() + "]\n")
	}
	b.WriteString("\nPassword\n")
	for i := settingsFieldCurrentPassword; i <= settingsFieldNewPassword; i++ {
		b.WriteString("  " + labels[i] + " [" + m.inputs[i].View() + "]\n")
	}

	if m.saving {
		b.WriteString("\nSaving...")
	}
	if m.infoMsg != "" {
		b.WriteString("\n" + infoStyle.Render(m.infoMsg))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	return renderPage("SETTINGS",
		strings.TrimRight(b.String(), "\n"),
		"enter: save current section │ tab: next field │ esc: back")
}

func (m *SettingsModel) focusField(idx int) {
	m.inputs[m.focus].Blur()
	m.focus = idx
	m.inputs[m.focus].Focus()
}

func (m *SettingsModel) saveProfile() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[settingsFieldName].Value())
	email := strings.TrimSpace(m.inputs[settingsFieldEmail].Value())
	if name == "" || email == "" {
		m.errMsg = "Name and email are required"
		return m, nil
	}

	m.errMsg = ""
	m.infoMsg = ""
	m.saving = true

	ctx := m.ctx
	api := m.api
	return m, func() tea.Msg {
		user, err := api.UpdateMe(ctx, models.UpdateProfileRequest{
			Email:    email,
			FullName: name,
		})
		return profileSavedMsg{user: user, err: err}
	}
}

func (m *SettingsModel) changePassword() (tea.Model, tea.Cmd) {
	current := m.inputs[settingsFieldCurrentPassword].Value()
	next := m.inputs[settingsFieldNewPassword].Value()
	if current == "" || next == "" {
		m.errMsg = "Both password fields are required"
		return m, nil
	}

	m.errMsg = ""
	m.infoMsg = ""
	m.saving = true

	ctx := m.ctx
	api := m.api
	return m, func() tea.Msg {
		return passwordChangedMsg{err: api.ChangePassword(ctx, current, next)}
	}
}

func settingsErrorMessage(err error) string {
	switch {
	case errors.Is(err, gateway.ErrConflict):
		return "That email is already taken."
	case errors.Is(err, gateway.ErrBadRequest):
		return "Please check the name and email."
	case errors.Is(err, gateway.ErrNetwork):
		return "Could not reach the server. Check your connection."
	default:
		return "Could not save the profile."
	}
}

func passwordErrorMessage(err error) string {
	switch {
	case errors.Is(err, gateway.ErrUnauthorized), errors.Is(err, gateway.ErrBadRequest):
		return "The current password is incorrect."
	case errors.Is(err, gateway.ErrNetwork):
		return "Could not reach the server. Check your connection."
	default:
		return "Could not change the password."
	}
}
