package store

import (
	"context"
	"fmt"

	"github.com/salim-ai/salim-client/internal/config"
	"github.com/salim-ai/salim-client/internal/logger"
)

// ClientStorages groups the durable repositories into a single value that
// can be passed around the service layer.
type ClientStorages struct {
	// Session is the repository owning the session-state key.
	Session SessionRepository

	// BankLink is the repository owning the four bank-link keys.
	BankLink BankLinkRepository
}

// NewClientStorages initialises the durable store using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path in cfg.DB.DSN, creating
//     the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs a [ClientStorages] value wired to fresh repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Session:  NewSessionRepository(db, logger),
		BankLink: NewBankLinkRepository(db, logger),
	}, nil
}
