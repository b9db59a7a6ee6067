// Package store implements the durable client-side key-value store backing
// the session state and the bank-link record.
//
// Values are opaque serialized JSON kept in a single SQLite table. The
// session repository owns the session key; the bank-link repository owns the
// four bank-link keys. Neither reads the other's keys; the one documented
// exception — logout clearing the bank-link keys — is driven from the
// session layer through the bank-link repository's Clear.
package store

import (
	"context"

	"github.com/salim-ai/salim-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SessionRepository persists the session state under a single durable key.
type SessionRepository interface {
	// Save writes the session state through to the durable store,
	// replacing any previous value.
	Save(ctx context.Context, session models.PersistedSession) error

	// Load reads the persisted session state. Returns
	// [ErrSessionNotFound] if no session has been saved.
	Load(ctx context.Context) (models.PersistedSession, error)

	// Clear removes the persisted session state. Clearing an absent
	// session is not an error.
	Clear(ctx context.Context) error
}

// BankLinkRepository persists the bank-link 4-tuple (access token, item id,
// accounts snapshot, transactions snapshot) under four durable keys.
type BankLinkRepository interface {
	// Save writes all four values in a single transaction so that a
	// partial record is never observable.
	Save(ctx context.Context, record models.BankLinkRecord) error

	// Load reads the persisted record. Returns [ErrBankLinkNotFound] if
	// any of the four keys is absent.
	Load(ctx context.Context) (models.BankLinkRecord, error)

	// Clear removes all four keys in a single transaction. Clearing an
	// absent record is not an error.
	Clear(ctx context.Context) error
}
