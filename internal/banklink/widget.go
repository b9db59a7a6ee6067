package banklink

import (
	"context"
	"errors"
	"fmt"

	"github.com/salim-ai/salim-client/models"
)

//go:generate mockgen -source=widget.go -destination=../mock/widget_mock.go -package=mock

// Widget is the external collaborator that performs the user-facing
// institution authentication. The coordinator hands it a short-lived link
// token and receives either a public token with institution metadata, a
// structured [*WidgetError], or [ErrWidgetCanceled] when the user closes
// the widget without a result. The coordinator depends only on this
// contract, never on the widget's internals.
type Widget interface {
	Open(ctx context.Context, linkToken string) (WidgetResult, error)
}

// WidgetResult is the successful outcome of the consent leg.
type WidgetResult struct {
	PublicToken string
	Institution models.Institution
}

// Widget error codes as reported by the linking provider.
const (
	WidgetCodeUserExit                 = "USER_EXIT"
	WidgetCodeInvalidCredentials       = "INVALID_CREDENTIALS"
	WidgetCodeItemLoginRequired        = "ITEM_LOGIN_REQUIRED"
	WidgetCodeInstitutionNotResponding = "INSTITUTION_NOT_RESPONDING"
)

// ErrWidgetCanceled is returned by a Widget when the user dismisses it
// without completing or failing; like USER_EXIT it is silent.
var ErrWidgetCanceled = errors.New("link widget canceled")

// WidgetError is a structured failure reported by the widget.
type WidgetError struct {
	// Code is one of the WidgetCode* constants, or an unspecified
	// provider code.
	Code string

	// Institution carries whatever metadata the widget collected before
	// failing; it may be zero.
	Institution models.Institution
}

func (e *WidgetError) Error() string {
	return fmt.Sprintf("link widget error: %s", e.Code)
}

// Silent reports whether the failure should not be surfaced to the user.
func (e *WidgetError) Silent() bool {
	return e.Code == WidgetCodeUserExit
}

// UserMessage renders the kind-specific message for a non-silent failure.
func (e *WidgetError) UserMessage() string {
	switch e.Code {
	case WidgetCodeInvalidCredentials:
		return "The institution rejected your credentials. Please try again."
	case WidgetCodeItemLoginRequired:
		return "Your bank requires you to sign in again before linking."
	case WidgetCodeInstitutionNotResponding:
		return "The institution is not responding right now. Please try again later."
	default:
		return "Bank linking failed. Please try again."
	}
}
