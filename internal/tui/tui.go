package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salim-ai/salim-client/internal/banklink"
	"github.com/salim-ai/salim-client/internal/gateway"
	"github.com/salim-ai/salim-client/internal/session"
)

// TUI owns the Bubble Tea program. Out-of-band events — an expired session
// reported by the gateway, a consent leg opened by the bank-link widget —
// are forwarded into the program as messages.
type TUI struct {
	program *tea.Program
}

func New(ctx context.Context, sessionStore *session.Store, api *gateway.Gateway,
	coordinator *banklink.Coordinator, widget *banklink.HostedWidget) *TUI {

	pages := map[string]tea.Model{
		routeLoading:        NewLoadingModel(),
		routeLogin:          NewLoginModel(ctx, sessionStore),
		routeRegister:       NewRegisterModel(ctx, sessionStore),
		routeForgotPassword: NewForgotPasswordModel(),
		routeDashboard:      NewDashboardModel(ctx, sessionStore, api),
		routeBanking:        NewBankingModel(ctx, coordinator, widget),
		routeSettings:       NewSettingsModel(ctx, sessionStore, api),
		routeNotFound:       NewNotFoundModel(),
	}

	initialize := func() tea.Msg {
		return initDoneMsg{err: sessionStore.Initialize(ctx)}
	}

	root := NewRootModel(pages, sessionStore, initialize)
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	api.OnSessionExpired(func() {
		program.Send(sessionExpiredMsg{})
	})
	widget.SetPrompt(func(linkToken string) {
		program.Send(linkPromptMsg{linkToken: linkToken})
	})

	return &TUI{program: program}
}

// Run blocks until the user quits or the context is canceled.
func (t *TUI) Run() error {
	_, err := t.program.Run()
	return err
}
