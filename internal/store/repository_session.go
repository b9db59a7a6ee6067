package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/salim-ai/salim-client/internal/logger"
	"github.com/salim-ai/salim-client/models"
)

// keySession is the single composite durable key holding
// {credentials, user, authenticated}.
const keySession = "session"

type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository constructs the SQLite-backed [SessionRepository].
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{DB: db, logger: logger}
}

func (r *sessionRepository) Save(ctx context.Context, session models.PersistedSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err = setValue(ctx, r.DB.DB, keySession, string(payload)); err != nil {
		r.logger.Err(err).Msg("failed to persist session state")
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (r *sessionRepository) Load(ctx context.Context) (models.PersistedSession, error) {
	value, err := getValue(ctx, r.DB.DB, keySession)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return models.PersistedSession{}, ErrSessionNotFound
		}
		return models.PersistedSession{}, fmt.Errorf("load session: %w", err)
	}

	var session models.PersistedSession
	if err = json.Unmarshal([]byte(value), &session); err != nil {
		return models.PersistedSession{}, fmt.Errorf("decode session: %w", err)
	}

	return session, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := deleteKeys(ctx, r.DB.DB, keySession); err != nil {
		r.logger.Err(err).Msg("failed to clear session state")
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
