package store

import (
	"database/sql"

	"github.com/salim-ai/salim-client/internal/logger"
	"github.com/salim-ai/salim-client/migrations"
)

// DB wraps the raw sql.DB handle together with the store's logger.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema migrations to the local database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
