package models

import "time"

// PersistedSession is the durable form of the session state, written through
// to the local store under a single key. The loading flag is intentionally
// absent: it is transient and always starts true on process start.
type PersistedSession struct {
	// Credentials is the token pair in effect when the session was saved.
	Credentials CredentialPair `json:"credentials"`

	// User is the profile record associated with the credentials.
	User User `json:"user"`

	// Authenticated mirrors the in-memory flag at save time. It is stored
	// for rehydration only; Initialize re-validates it against the backend.
	Authenticated bool `json:"authenticated"`

	// SavedAt records when the session was last written.
	SavedAt time.Time `json:"saved_at"`
}
