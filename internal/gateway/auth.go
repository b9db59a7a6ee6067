package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/salim-ai/salim-client/models"
)

// Login exchanges email/password for a credential pair via POST /auth/login.
// The request is dispatched without a bearer header and a 401 is terminal
// (invalid credentials), never retried through renewal.
func (g *Gateway) Login(ctx context.Context, email, password string) (models.CredentialPair, error) {
	var tokens models.TokenResponse
	body := models.LoginRequest{Email: email, Password: password}

	if err := g.do(ctx, http.MethodPost, "/auth/login", body, &tokens, withoutAuth()); err != nil {
		return models.CredentialPair{}, fmt.Errorf("login request: %w", err)
	}

	return tokens.Credentials(), nil
}

// Register creates a new account via POST /auth/register. It does not issue
// credentials; the caller logs in explicitly afterwards.
func (g *Gateway) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var profile models.UserProfile

	if err := g.do(ctx, http.MethodPost, "/auth/register", req, &profile, withoutAuth()); err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}

	return profile.User(), nil
}

// Me fetches the current user profile via GET /auth/me.
func (g *Gateway) Me(ctx context.Context) (models.User, error) {
	var profile models.UserProfile

	if err := g.do(ctx, http.MethodGet, "/auth/me", nil, &profile); err != nil {
		return models.User{}, fmt.Errorf("profile request: %w", err)
	}

	return profile.User(), nil
}

// UpdateMe patches the current user profile via PUT /auth/me and returns the
// updated record.
func (g *Gateway) UpdateMe(ctx context.Context, patch models.UpdateProfileRequest) (models.User, error) {
	var profile models.UserProfile

	if err := g.do(ctx, http.MethodPut, "/auth/me", patch, &profile); err != nil {
		return models.User{}, fmt.Errorf("profile update request: %w", err)
	}

	return profile.User(), nil
}

// ChangePassword changes the account password via POST /auth/change-password.
func (g *Gateway) ChangePassword(ctx context.Context, current, next string) error {
	body := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}

	if err := g.do(ctx, http.MethodPost, "/auth/change-password", body, nil); err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return nil
}

// Refresh exchanges the renewal credential for a fresh token pair via
// POST /auth/refresh. Like Login it bypasses bearer attachment and the
// 401-retry policy: a 401 here means the renewal credential itself is dead.
func (g *Gateway) Refresh(ctx context.Context, renewal string) (models.CredentialPair, error) {
	var tokens models.TokenResponse
	body := models.RefreshRequest{RefreshToken: renewal}

	if err := g.do(ctx, http.MethodPost, "/auth/refresh", body, &tokens, withoutAuth()); err != nil {
		return models.CredentialPair{}, fmt.Errorf("refresh request: %w", err)
	}

	return tokens.Credentials(), nil
}
