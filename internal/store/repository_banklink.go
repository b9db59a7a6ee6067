package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/salim-ai/salim-client/internal/logger"
	"github.com/salim-ai/salim-client/models"
)

// Durable keys owned by the bank-link repository. The access token is a
// secret equivalent to a password for the linked institution.
const (
	keyBankAccessToken  = "plaid_access_token"
	keyBankItemID       = "plaid_item_id"
	keyBankAccounts     = "plaid_accounts"
	keyBankTransactions = "plaid_transactions"
)

type bankLinkRepository struct {
	*DB
	logger *logger.Logger
}

// NewBankLinkRepository constructs the SQLite-backed [BankLinkRepository].
func NewBankLinkRepository(db *DB, logger *logger.Logger) BankLinkRepository {
	return &bankLinkRepository{DB: db, logger: logger}
}

// Save writes the 4-tuple in one transaction. Either all four keys are
// updated or none are; a reader can never observe a partial record.
func (r *bankLinkRepository) Save(ctx context.Context, record models.BankLinkRecord) error {
	accounts, err := json.Marshal(record.Accounts)
	if err != nil {
		return fmt.Errorf("encode accounts snapshot: %w", err)
	}
	transactions, err := json.Marshal(record.Transactions)
	if err != nil {
		return fmt.Errorf("encode transactions snapshot: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	entries := map[string]string{
		keyBankAccessToken:  record.AccessToken,
		keyBankItemID:       record.ItemID,
		keyBankAccounts:     string(accounts),
		keyBankTransactions: string(transactions),
	}
	for key, value := range entries {
		if err = setValue(ctx, tx, key, value); err != nil {
			r.logger.Err(err).Str("key", key).Msg("failed to persist bank link value")
			return fmt.Errorf("save bank link: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *bankLinkRepository) Load(ctx context.Context) (models.BankLinkRecord, error) {
	var record models.BankLinkRecord

	values := make(map[string]string, 4)
	for _, key := range []string{keyBankAccessToken, keyBankItemID, keyBankAccounts, keyBankTransactions} {
		value, err := getValue(ctx, r.DB.DB, key)
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				return models.BankLinkRecord{}, ErrBankLinkNotFound
			}
			return models.BankLinkRecord{}, fmt.Errorf("load bank link: %w", err)
		}
		values[key] = value
	}

	record.AccessToken = values[keyBankAccessToken]
	record.ItemID = values[keyBankItemID]

	if err := json.Unmarshal([]byte(values[keyBankAccounts]), &record.Accounts); err != nil {
		return models.BankLinkRecord{}, fmt.Errorf("decode accounts snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(values[keyBankTransactions]), &record.Transactions); err != nil {
		return models.BankLinkRecord{}, fmt.Errorf("decode transactions snapshot: %w", err)
	}

	return record, nil
}

func (r *bankLinkRepository) Clear(ctx context.Context) error {
	if err := deleteKeys(ctx, r.DB.DB, keyBankAccessToken, keyBankItemID, keyBankAccounts, keyBankTransactions); err != nil {
		r.logger.Err(err).Msg("failed to clear bank link record")
		return fmt.Errorf("clear bank link: %w", err)
	}

	return nil
}
