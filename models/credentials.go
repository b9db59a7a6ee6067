package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DemoAccessToken is the sentinel credential installed by demo mode.
// When the session holds this value the gateway must never contact the
// network and token renewal is suppressed entirely.
const DemoAccessToken = "demo-token"

// CredentialPair holds the two opaque tokens issued by the backend on login.
// Either both fields are present or both are absent; the demo sentinel
// stands in for both at once.
type CredentialPair struct {
	// Access is the short-lived token attached to outbound requests as
	// bearer authorization.
	Access string `json:"access"`

	// Renewal is the longer-lived token used exclusively to obtain a new
	// access token via POST /auth/refresh.
	Renewal string `json:"renewal"`
}

// Empty reports whether the pair holds no credentials at all.
func (c CredentialPair) Empty() bool {
	return c.Access == "" && c.Renewal == ""
}

// IsDemo reports whether the pair holds the demo sentinel.
func (c CredentialPair) IsDemo() bool {
	return c.Access == DemoAccessToken
}

// AccessExpiry extracts the "exp" claim from the access token without
// verifying the signature. The client never validates tokens (that is the
// backend's job); the expiry is read purely for diagnostics and logging.
// Returns the zero time if the token is not a parseable JWT or carries no
// expiry claim.
func (c CredentialPair) AccessExpiry() time.Time {
	if c.Access == "" || c.IsDemo() || strings.Count(c.Access, ".") != 2 {
		return time.Time{}
	}

	token, _, err := jwt.NewParser().ParseUnverified(c.Access, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// TokenResponse is the wire shape of POST /auth/login and POST /auth/refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Credentials converts the wire response into a [CredentialPair].
// A refresh response may omit the refresh token; deciding whether to retain
// the previous renewal credential is the session store's job, so Renewal is
// mapped verbatim here.
func (r TokenResponse) Credentials() CredentialPair {
	return CredentialPair{Access: r.AccessToken, Renewal: r.RefreshToken}
}
