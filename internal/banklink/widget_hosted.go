package banklink

import (
	"context"
	"strings"

	"github.com/salim-ai/salim-client/models"
)

// HostedWidget is the terminal-client implementation of [Widget]. It hands
// the link token to a prompt callback (the banking page renders the hosted
// link URL from it) and waits for the user to paste the resulting public
// token back, or to dismiss the flow.
type HostedWidget struct {
	prompt func(linkToken string)

	tokens  chan WidgetResult
	cancels chan struct{}
	fails   chan *WidgetError
}

// NewHostedWidget constructs an idle HostedWidget.
func NewHostedWidget() *HostedWidget {
	return &HostedWidget{
		tokens:  make(chan WidgetResult, 1),
		cancels: make(chan struct{}, 1),
		fails:   make(chan *WidgetError, 1),
	}
}

// SetPrompt registers the callback invoked when a consent leg starts. The
// application wiring points it at the TUI program so the banking page can
// display the hosted link.
func (w *HostedWidget) SetPrompt(prompt func(linkToken string)) {
	w.prompt = prompt
}

// Open implements [Widget]. It blocks until Submit, Fail, or Cancel is
// called, or ctx is done.
func (w *HostedWidget) Open(ctx context.Context, linkToken string) (WidgetResult, error) {
	// A prior leg that ended via ctx.Done() may have left a buffered
	// Submit, Fail, or Cancel behind. Discard it so this leg only
	// resolves on its own input.
	w.drain()

	if w.prompt != nil {
		w.prompt(linkToken)
	}

	select {
	case result := <-w.tokens:
		if strings.TrimSpace(result.PublicToken) == "" {
			return WidgetResult{}, ErrWidgetCanceled
		}
		return result, nil
	case widgetErr := <-w.fails:
		return WidgetResult{}, widgetErr
	case <-w.cancels:
		return WidgetResult{}, ErrWidgetCanceled
	case <-ctx.Done():
		return WidgetResult{}, ctx.Err()
	}
}

func (w *HostedWidget) drain() {
	select {
	case <-w.tokens:
	default:
	}
	select {
	case <-w.fails:
	default:
	}
	select {
	case <-w.cancels:
	default:
	}
}

// Submit completes the consent leg with the pasted public token.
func (w *HostedWidget) Submit(publicToken string, institution models.Institution) {
	select {
	case w.tokens <- WidgetResult{PublicToken: strings.TrimSpace(publicToken), Institution: institution}:
	default:
	}
}

// Fail reports a structured provider error for the active consent leg.
func (w *HostedWidget) Fail(code string) {
	select {
	case w.fails <- &WidgetError{Code: code}:
	default:
	}
}

// Cancel dismisses the active consent leg silently.
func (w *HostedWidget) Cancel() {
	select {
	case w.cancels <- struct{}{}:
	default:
	}
}
