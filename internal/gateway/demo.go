package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/salim-ai/salim-client/models"
)

// Fixtures is the static lookup table behind demo mode, keyed by
// "METHOD:PATH". When the session holds the demo sentinel the gateway
// resolves every request here and never contacts the network; routes with
// no fixture get the generic demo payload with a 200-equivalent outcome.
type Fixtures map[string]json.RawMessage

// genericDemoPayload is returned for any route without a fixture.
var genericDemoPayload = json.RawMessage(`{"demo":true,"message":"This feature is not available in demo mode"}`)

// DefaultFixtures builds the fixture table shipped with the client: the demo
// profile, a small banking snapshot, one stock quote, and an empty chat
// session list.
func DefaultFixtures() Fixtures {
	available := 950.25

	return Fixtures{
		"GET:/auth/me": mustJSON(models.DemoUserProfile()),

		"POST:/plaid/accounts": mustJSON(models.AccountsResponse{
			Accounts: []models.Account{
				{
					ID:      "demo-account-1",
					Name:    "Demo Checking",
					Type:    "depository",
					Subtype: "checking",
					Mask:    "0000",
					Balance: models.Balance{Current: 1024.50, Available: &available, Currency: "USD"},
				},
			},
		}),

		"POST:/plaid/transactions": mustJSON(models.TransactionsResponse{
			Transactions: []models.Transaction{
				{
					ID:       "demo-txn-1",
					Date:     "2025-01-15",
					Name:     "Coffee Shop",
					Amount:   4.75,
					Currency: "USD",
					Category: []string{"Food and Drink", "Coffee"},
				},
			},
		}),

		"GET:/stocks/quote/AAPL": mustJSON(models.Quote{
			Symbol:        "AAPL",
			Price:         189.30,
			Change:        1.12,
			ChangePercent: 0.59,
			Currency:      "USD",
		}),

		"GET:/chat/sessions": mustJSON([]models.ChatSession{}),
	}
}

// Resolve returns the fixture for the given method and path, or the generic
// demo payload when none is registered.
func (f Fixtures) Resolve(method, path string) json.RawMessage {
	if fixture, ok := f[strings.ToUpper(method)+":"+path]; ok {
		return fixture
	}
	return genericDemoPayload
}

func (g *Gateway) resolveDemo(method, path string, out any) error {
	payload := g.fixtures.Resolve(method, path)

	g.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("demo mode: resolved request from fixture table")

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode demo fixture %s %s: %w", method, path, err)
	}
	return nil
}

func mustJSON(v any) json.RawMessage {
	payload, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return payload
}
