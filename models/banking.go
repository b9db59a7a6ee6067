package models

// Balance describes the monetary position of a single account.
// Available may legitimately be absent (nil), which the UI must distinguish
// from being equal to Current.
type Balance struct {
	Current   float64  `json:"current"`
	Available *float64 `json:"available,omitempty"`
	Currency  string   `json:"currency"`
}

// Account is one account snapshot returned by POST /plaid/accounts.
type Account struct {
	// ID is the Plaid account_id.
	ID string `json:"account_id"`

	// Name is the institution-assigned account name.
	Name string `json:"name"`

	// Type is the coarse account class (depository, credit, loan, ...).
	Type string `json:"type"`

	// Subtype refines Type (checking, savings, credit card, ...).
	Subtype string `json:"subtype"`

	// Mask is the last few digits of the account number shown in UI.
	Mask string `json:"mask"`

	Balance Balance `json:"balance"`
}

// Transaction is one transaction snapshot returned by POST /plaid/transactions.
// Sign convention: a positive Amount is an outflow (debit from the user),
// a negative Amount is an inflow.
type Transaction struct {
	// ID is the Plaid transaction_id.
	ID string `json:"transaction_id"`

	// Date is the posting date in YYYY-MM-DD form, as Plaid returns it.
	Date string `json:"date"`

	// Name is the transaction description.
	Name string `json:"name"`

	// MerchantName is the cleaned-up merchant, when Plaid resolves one.
	MerchantName string `json:"merchant_name,omitempty"`

	Amount   float64  `json:"amount"`
	Currency string   `json:"currency"`
	Category []string `json:"category,omitempty"`
	Pending  bool     `json:"pending"`
}

// Institution is the metadata the link widget reports about the institution
// the user connected.
type Institution struct {
	ID   string `json:"institution_id"`
	Name string `json:"name"`
}

// BankLinkRecord is the 4-tuple persisted per connected institution.
// AccessToken is a secret equivalent to a password for the linked
// institution; it is persisted together with the snapshots iff the final
// snapshot step of the handshake succeeded.
type BankLinkRecord struct {
	ItemID       string        `json:"item_id"`
	AccessToken  string        `json:"access_token"`
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}

// LinkTokenRequest is the wire shape of POST /plaid/create_link_token.
type LinkTokenRequest struct {
	CountryCodes []string `json:"country_codes"`
}

// LinkTokenResponse is the reply to POST /plaid/create_link_token.
type LinkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

// ExchangeRequest is the wire shape of POST /plaid/exchange_public_token.
type ExchangeRequest struct {
	PublicToken string `json:"public_token"`
}

// ExchangeResponse is the reply to POST /plaid/exchange_public_token.
type ExchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// AccountsRequest is the wire shape of POST /plaid/accounts.
type AccountsRequest struct {
	AccessToken string `json:"access_token"`
}

// AccountsResponse is the reply to POST /plaid/accounts.
type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// TransactionsRequest is the wire shape of POST /plaid/transactions.
// Dates are YYYY-MM-DD.
type TransactionsRequest struct {
	AccessToken string   `json:"access_token"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	AccountIDs  []string `json:"account_ids,omitempty"`
}

// TransactionsResponse is the reply to POST /plaid/transactions.
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
