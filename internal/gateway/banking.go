package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/salim-ai/salim-client/models"
)

// CreateLinkToken initiates the bank-link handshake via
// POST /plaid/create_link_token and returns the short-lived link token
// handed to the consent widget.
func (g *Gateway) CreateLinkToken(ctx context.Context, countryCodes []string) (string, error) {
	var resp models.LinkTokenResponse
	body := models.LinkTokenRequest{CountryCodes: countryCodes}

	if err := g.do(ctx, http.MethodPost, "/plaid/create_link_token", body, &resp); err != nil {
		return "", fmt.Errorf("create link token request: %w", err)
	}

	return resp.LinkToken, nil
}

// ExchangePublicToken swaps the widget's public token for the long-lived
// institution access token via POST /plaid/exchange_public_token.
func (g *Gateway) ExchangePublicToken(ctx context.Context, publicToken string) (models.ExchangeResponse, error) {
	var resp models.ExchangeResponse
	body := models.ExchangeRequest{PublicToken: publicToken}

	if err := g.do(ctx, http.MethodPost, "/plaid/exchange_public_token", body, &resp); err != nil {
		return models.ExchangeResponse{}, fmt.Errorf("exchange public token request: %w", err)
	}

	return resp, nil
}

// Accounts fetches the accounts snapshot for an institution access token via
// POST /plaid/accounts.
func (g *Gateway) Accounts(ctx context.Context, accessToken string) ([]models.Account, error) {
	var resp models.AccountsResponse
	body := models.AccountsRequest{AccessToken: accessToken}

	if err := g.do(ctx, http.MethodPost, "/plaid/accounts", body, &resp); err != nil {
		return nil, fmt.Errorf("accounts request: %w", err)
	}

	return resp.Accounts, nil
}

// Transactions fetches a transactions snapshot via POST /plaid/transactions.
func (g *Gateway) Transactions(ctx context.Context, req models.TransactionsRequest) ([]models.Transaction, error) {
	var resp models.TransactionsResponse

	if err := g.do(ctx, http.MethodPost, "/plaid/transactions", req, &resp); err != nil {
		return nil, fmt.Errorf("transactions request: %w", err)
	}

	return resp.Transactions, nil
}
