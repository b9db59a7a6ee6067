package tui

import (
	"github.com/salim-ai/salim-client/models"
)

// NavigateTo asks the shell to switch to the given route. The guard in
// RootModel may substitute a different destination (login for an
// unauthenticated protected visit, dashboard for an authenticated public
// visit).
type NavigateTo struct {
	Route   string
	Payload any
}

// initDoneMsg signals that session rehydration finished.
type initDoneMsg struct {
	err error
}

// sessionExpiredMsg is sent by the gateway wiring when credential renewal
// failed and the session was logged out.
type sessionExpiredMsg struct{}

type loginResultMsg struct {
	err error
}

type registerResultMsg struct {
	err error
}

// registeredMsg is delivered to the login page after a successful
// registration so it can show the "please sign in" hint.
type registeredMsg struct {
	email string
}

type profileSavedMsg struct {
	user models.User
	err  error
}

type passwordChangedMsg struct {
	err error
}

// linkPromptMsg carries the link token of an active consent leg; the
// banking page renders the hosted link URL from it.
type linkPromptMsg struct {
	linkToken string
}

type bankLinkLoadedMsg struct {
	record *models.BankLinkRecord
	err    error
}

type bankLinkDoneMsg struct {
	record *models.BankLinkRecord
	err    error
}

type bankDisconnectedMsg struct {
	err error
}

type quoteMsg struct {
	quote models.Quote
	err   error
}

type copiedMsg struct{}

type logoutDoneMsg struct{}
