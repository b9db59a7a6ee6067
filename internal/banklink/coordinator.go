// Package banklink drives the three-leg handshake that connects a bank
// account: initiate (link token), user consent (external widget), exchange
// (public token for a long-lived access token), then an initial snapshot of
// accounts and transactions. The resulting 4-tuple is persisted durably and
// only ever as a whole.
package banklink

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/salim-ai/salim-client/internal/logger"
	"github.com/salim-ai/salim-client/internal/store"
	"github.com/salim-ai/salim-client/models"
)

//go:generate mockgen -source=coordinator.go -destination=../mock/banklink_mock.go -package=mock

// initialWindow is the transaction lookback applied on the first snapshot
// after linking.
const initialWindow = 30 * 24 * time.Hour

// defaultCountryCodes is sent with every link-token request.
var defaultCountryCodes = []string{"US"}

// BankingAPI is the slice of the gateway the coordinator drives.
type BankingAPI interface {
	CreateLinkToken(ctx context.Context, countryCodes []string) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (models.ExchangeResponse, error)
	Accounts(ctx context.Context, accessToken string) ([]models.Account, error)
	Transactions(ctx context.Context, req models.TransactionsRequest) ([]models.Transaction, error)
}

// ErrHandshakeInFlight is returned when Connect is called while another
// handshake is active; from the user's perspective re-opening the widget is
// a no-op.
var ErrHandshakeInFlight = errors.New("bank link handshake already in flight")

// Coordinator owns the handshake and the persisted bank-link record.
type Coordinator struct {
	api    BankingAPI
	widget Widget
	repo   store.BankLinkRepository
	logger *logger.Logger

	// now is the clock behind the transaction lookback window.
	now func() time.Time

	inFlight atomic.Bool
}

// NewCoordinator constructs a Coordinator. The widget is the external
// consent collaborator; repo is the durable home of the 4-tuple.
func NewCoordinator(api BankingAPI, widget Widget, repo store.BankLinkRepository, logger *logger.Logger) *Coordinator {
	return &Coordinator{
		api:    api,
		widget: widget,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Connect runs the full handshake and returns the persisted record.
//
// Nothing is written until the final snapshot step has succeeded: a widget
// failure, an exchange failure, or a snapshot failure all leave prior
// persisted state untouched. A user cancel (silent USER_EXIT or widget
// dismissal) returns (nil, nil).
func (c *Coordinator) Connect(ctx context.Context) (*models.BankLinkRecord, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrHandshakeInFlight
	}
	defer c.inFlight.Store(false)

	linkToken, err := c.api.CreateLinkToken(ctx, defaultCountryCodes)
	if err != nil {
		return nil, fmt.Errorf("initiate bank link: %w", err)
	}

	result, err := c.widget.Open(ctx, linkToken)
	if err != nil {
		if errors.Is(err, ErrWidgetCanceled) {
			c.logger.Debug().Msg("bank link widget dismissed by user")
			return nil, nil
		}
		var widgetErr *WidgetError
		if errors.As(err, &widgetErr) && widgetErr.Silent() {
			c.logger.Debug().Str("code", widgetErr.Code).Msg("bank link widget exited silently")
			return nil, nil
		}
		return nil, fmt.Errorf("bank link consent: %w", err)
	}

	exchange, err := c.api.ExchangePublicToken(ctx, result.PublicToken)
	if err != nil {
		return nil, fmt.Errorf("exchange public token: %w", err)
	}

	record, err := c.snapshot(ctx, exchange.AccessToken, exchange.ItemID)
	if err != nil {
		return nil, err
	}

	if err = c.repo.Save(ctx, *record); err != nil {
		return nil, fmt.Errorf("persist bank link: %w", err)
	}

	c.logger.Info().
		Str("item_id", record.ItemID).
		Str("institution", result.Institution.Name).
		Int("accounts", len(record.Accounts)).
		Msg("bank link established")

	return record, nil
}

// Refresh re-fetches the snapshots with the stored access token and
// overwrites them in place. Returns [store.ErrBankLinkNotFound] when no
// institution is linked.
func (c *Coordinator) Refresh(ctx context.Context) (*models.BankLinkRecord, error) {
	existing, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	record, err := c.snapshot(ctx, existing.AccessToken, existing.ItemID)
	if err != nil {
		return nil, err
	}

	if err = c.repo.Save(ctx, *record); err != nil {
		return nil, fmt.Errorf("persist bank link: %w", err)
	}

	return record, nil
}

// Disconnect removes the persisted record.
func (c *Coordinator) Disconnect(ctx context.Context) error {
	return c.repo.Clear(ctx)
}

// Load returns the persisted record without touching the network.
func (c *Coordinator) Load(ctx context.Context) (*models.BankLinkRecord, error) {
	record, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Coordinator) snapshot(ctx context.Context, accessToken, itemID string) (*models.BankLinkRecord, error) {
	accounts, err := c.api.Accounts(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("accounts snapshot: %w", err)
	}

	end := c.now().UTC()
	start := end.Add(-initialWindow)
	transactions, err := c.api.Transactions(ctx, models.TransactionsRequest{
		AccessToken: accessToken,
		StartDate:   start.Format(time.DateOnly),
		EndDate:     end.Format(time.DateOnly),
	})
	if err != nil {
		return nil, fmt.Errorf("transactions snapshot: %w", err)
	}

	return &models.BankLinkRecord{
		ItemID:       itemID,
		AccessToken:  accessToken,
		Accounts:     accounts,
		Transactions: transactions,
	}, nil
}
