package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/salim-ai/salim-client/internal/banklink"
	"github.com/salim-ai/salim-client/internal/store"
	"github.com/salim-ai/salim-client/models"
)

const maxVisibleTransactions = 10

// BankingModel drives the bank-link handshake and renders the persisted
// accounts/transactions snapshot. While a consent leg is active it shows
// the hosted link URL and a paste field for the public token the user
// brings back from the browser.
type BankingModel struct {
	ctx         context.Context
	coordinator *banklink.Coordinator
	widget      *banklink.HostedWidget

	record  *models.BankLinkRecord
	busy    bool
	errMsg  string
	infoMsg string

	// consent leg state
	linkToken  string
	tokenInput textinput.Model
}

func NewBankingModel(ctx context.Context, coordinator *banklink.Coordinator, widget *banklink.HostedWidget) *BankingModel {
	tokenInput := textinput.New()
	tokenInput.Placeholder = "public-sandbox-..."
	tokenInput.CharLimit = 128
	tokenInput.Width = 44

	return &BankingModel{
		ctx:         ctx,
		coordinator: coordinator,
		widget:      widget,
		tokenInput:  tokenInput,
	}
}

func (m *BankingModel) Init() tea.Cmd {
	m.errMsg = ""
	m.infoMsg = ""
	return m.cmdLoad()
}

func (m *BankingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch result := msg.(type) {
	case bankLinkLoadedMsg:
		if result.err != nil {
			if !errors.Is(result.err, store.ErrBankLinkNotFound) {
				m.errMsg = "Could not read the saved bank connection."
			}
			return m, nil
		}
		m.record = result.record
		return m, nil

	case linkPromptMsg:
		m.linkToken = result.linkToken
		m.tokenInput.SetValue("")
		m.tokenInput.Focus()
		return m, textinput.Blink

	case bankLinkDoneMsg:
		m.busy = false
		m.linkToken = ""
		m.tokenInput.Blur()
		if result.err != nil {
			m.errMsg = handshakeErrorMessage(result.err)
			return m, nil
		}
		if result.record != nil {
			m.record = result.record
			m.infoMsg = "Bank connection is up to date."
		}
		return m, nil

	case bankDisconnectedMsg:
		m.busy = false
		if result.err != nil {
			m.errMsg = "Could not disconnect the bank."
			return m, nil
		}
		m.record = nil
		m.infoMsg = "Bank disconnected."
		return m, nil

	case copiedMsg:
		m.infoMsg = "Copied to clipboard."
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// A consent leg is active: the paste field owns the keyboard.
	if m.linkToken != "" {
		switch keyMsg.String() {
		case "enter":
			token := strings.TrimSpace(m.tokenInput.Value())
			if token == "" {
				return m, nil
			}
			m.widget.Submit(token, models.Institution{})
			return m, nil
		case "esc":
			m.widget.Cancel()
			return m, nil
		case "ctrl+y":
			return m, m.cmdCopyLinkURL()
		}

		var cmd tea.Cmd
		m.tokenInput, cmd = m.tokenInput.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "c":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		m.infoMsg = ""
		return m, m.cmdConnect()
	case "r":
		if m.busy || m.record == nil {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		m.infoMsg = ""
		return m, m.cmdRefresh()
	case "d":
		if m.busy || m.record == nil {
			return m, nil
		}
		m.busy = true
		return m, m.cmdDisconnect()
	case "y":
		if m.record == nil {
			return m, nil
		}
		return m, cmdCopy(m.record.ItemID)
	case "esc":
		return m, func() tea.Msg { return NavigateTo{Route: routeDashboard} }
	}

	return m, nil
}

func (m *BankingModel) View() string {
	if m.linkToken != "" {
		return m.viewConsent()
	}

	var b strings.Builder
	switch {
	case m.busy:
		b.WriteString("Working...\n")
	case m.record == nil:
		b.WriteString("No bank connected yet. Press 'c' to link an account.\n")
	default:
		m.writeSnapshot(&b)
	}

	if m.infoMsg != "" {
		b.WriteString("\n" + infoStyle.Render(m.infoMsg))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	help := "c: connect │ esc: back"
	if m.record != nil {
		help = "c: connect │ r: refresh │ d: disconnect │ y: copy item id │ esc: back"
	}
	return renderPage("BANKING", strings.TrimRight(b.String(), "\n"), help)
}

func (m *BankingModel) viewConsent() string {
	var b strings.Builder
	b.WriteString("Open this URL in your browser and complete the bank sign-in:\n\n")
	b.WriteString("  " + m.linkURL() + "\n\n")
	b.WriteString("Then paste the public token here:\n")
	b.WriteString("[" + m.tokenInput.View() + "]")

	if m.infoMsg != "" {
		b.WriteString("\n" + infoStyle.Render(m.infoMsg))
	}

	return renderPage("LINK YOUR BANK",
		b.String(),
		"enter: submit token │ ctrl+y: copy URL │ esc: cancel")
}

func (m *BankingModel) writeSnapshot(b *strings.Builder) {
	b.WriteString("Accounts\n")
	for _, account := range m.record.Accounts {
		available := "—"
		if account.Balance.Available != nil {
			available = fmt.Sprintf("%.2f", *account.Balance.Available)
		}
		b.WriteString(fmt.Sprintf("  %-24s ••%-6s %10.2f %s (avail %s)\n",
			account.Name, account.Mask,
			account.Balance.Current, account.Balance.Currency, available))
	}

	b.WriteString("\nRecent transactions\n")
	transactions := m.record.Transactions
	if len(transactions) > maxVisibleTransactions {
		transactions = transactions[:maxVisibleTransactions]
	}
	for _, txn := range transactions {
		name := txn.Name
		if txn.MerchantName != "" {
			name = txn.MerchantName
		}
		pending := ""
		if txn.Pending {
			pending = " (pending)"
		}
		b.WriteString(fmt.Sprintf("  %s  %-28s %10.2f %s%s\n",
			txn.Date, name, txn.Amount, txn.Currency, pending))
	}
	if len(m.record.Transactions) == 0 {
		b.WriteString("  none in the last 30 days\n")
	}
}

func (m *BankingModel) linkURL() string {
	return "https://cdn.plaid.com/link/v2/stable/link.html?token=" + m.linkToken
}

func (m *BankingModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator

	return func() tea.Msg {
		record, err := coordinator.Load(ctx)
		return bankLinkLoadedMsg{record: record, err: err}
	}
}

func (m *BankingModel) cmdConnect() tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator

	return func() tea.Msg {
		record, err := coordinator.Connect(ctx)
		return bankLinkDoneMsg{record: record, err: err}
	}
}

func (m *BankingModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator

	return func() tea.Msg {
		record, err := coordinator.Refresh(ctx)
		return bankLinkDoneMsg{record: record, err: err}
	}
}

func (m *BankingModel) cmdDisconnect() tea.Cmd {
	ctx := m.ctx
	coordinator := m.coordinator

	return func() tea.Msg {
		return bankDisconnectedMsg{err: coordinator.Disconnect(ctx)}
	}
}

func (m *BankingModel) cmdCopyLinkURL() tea.Cmd {
	return cmdCopy(m.linkURL())
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return nil
		}
		return copiedMsg{}
	}
}

// handshakeErrorMessage renders a connect/refresh failure; widget failures
// carry institution context when Plaid reported one.
func handshakeErrorMessage(err error) string {
	var widgetErr *banklink.WidgetError
	if errors.As(err, &widgetErr) {
		return widgetErr.UserMessage()
	}

	switch {
	case errors.Is(err, banklink.ErrHandshakeInFlight):
		return "A bank link is already in progress."
	case errors.Is(err, store.ErrBankLinkNotFound):
		return "No bank is connected."
	default:
		return "Bank link failed. Please try again."
	}
}
