package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/salim-ai/salim-client/internal/config"
	"github.com/salim-ai/salim-client/internal/logger"
	"github.com/salim-ai/salim-client/models"
)

// SessionSource is the gateway's read-side view of the session store. The
// gateway reads the current access credential at dispatch time and drives
// credential renewal on unauthorized replies; it never mutates session state
// itself.
type SessionSource interface {
	// AccessToken returns the current access credential and whether it
	// should be attached to outbound requests. During the two-step login
	// the credential is attachable before the profile arrives, so the
	// second value tracks credential presence, not the full
	// authenticated flag.
	AccessToken() (token string, attachable bool)

	// RefreshAccess exchanges the renewal credential for a fresh access
	// token. Returns false (after logging out) when renewal fails.
	RefreshAccess(ctx context.Context) bool
}

// Gateway is the single shared outbound request channel. It owns the policy
// for credential attachment, single-flight renewal on 401, and the demo-mode
// fixture short-circuit. Feature helpers (auth.go, banking.go, ...) are thin
// typed envelopes over [Gateway.do]; none contain business logic.
type Gateway struct {
	client   *resty.Client
	fixtures Fixtures
	logger   *logger.Logger

	mu               sync.RWMutex
	session          SessionSource
	onSessionExpired func()

	refresh singleflight.Group
}

// New constructs a Gateway for the configured backend. It normalises and
// validates the base URL and applies the default request timeout and JSON
// media type.
func New(cfg config.ClientAPI, logger *logger.Logger) (*Gateway, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Content-Type", "application/json")

	return &Gateway{
		client:   client,
		fixtures: DefaultFixtures(),
		logger:   logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// BindSession attaches the session store the gateway reads credentials from.
// The gateway and the session store are constructed in that order and bound
// afterwards, since each needs the other.
func (g *Gateway) BindSession(session SessionSource) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = session
}

// OnSessionExpired registers the callback invoked when credential renewal
// fails; the view shell uses it to navigate to the login surface.
func (g *Gateway) OnSessionExpired(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onSessionExpired = fn
}

type requestOptions struct {
	// skipAuth marks auth-path requests (login, register, refresh): no
	// bearer header is attached and a 401 is terminal, never retried.
	skipAuth bool
}

type requestOption func(*requestOptions)

func withoutAuth() requestOption {
	return func(o *requestOptions) { o.skipAuth = true }
}

// do dispatches one logical request through the gateway policy:
//
//  1. Read {access, attachable} from the session source.
//  2. Demo sentinel on authenticated calls: resolve from the fixture table,
//     never touch the network.
//  3. Otherwise attach the bearer header when a credential is present,
//     dispatch, and
//     on a first-attempt 401 coalesce onto a single-flight renewal; if the
//     renewal succeeds re-issue the request exactly once with the fresh
//     credential, otherwise signal session expiry and propagate.
//
// The caller's ctx is observed at dispatch and again before the
// retry-after-renewal, so cancellation during the renewal window never
// issues the retry.
func (g *Gateway) do(ctx context.Context, method, path string, body, out any, opts ...requestOption) error {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	// Unauthenticated calls (login, register, renewal) always go to the
	// network, even in demo mode: they are how a demo session is replaced
	// by a real one.
	token, attachable := g.sessionState()
	if token == models.DemoAccessToken && !o.skipAuth {
		return g.resolveDemo(method, path, out)
	}

	attach := attachable && !o.skipAuth
	resp, err := g.dispatch(ctx, method, path, body, token, attach)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized && attach {
		if !g.refreshShared(ctx) {
			g.notifySessionExpired()
			return fmt.Errorf("%w: %s %s", ErrSessionExpired, method, path)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", ErrNetwork, ctxErr)
		}

		token, _ = g.sessionState()
		resp, err = g.dispatch(ctx, method, path, body, token, true)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNetwork, err)
		}
	}

	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if out != nil && len(resp.Body()) > 0 {
		if err = json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}

	return nil
}

func (g *Gateway) dispatch(ctx context.Context, method, path string, body any, token string, attach bool) (*resty.Response, error) {
	req := g.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	if body != nil {
		req.SetBody(body)
	}
	if attach && token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	return req.Execute(method, path)
}

// refreshShared coalesces concurrent renewal attempts onto one in-flight
// call: exactly one RefreshAccess happens per contiguous cluster of 401s,
// and every waiter shares its outcome.
func (g *Gateway) refreshShared(ctx context.Context) bool {
	v, _, _ := g.refresh.Do("refresh", func() (any, error) {
		session := g.sessionSource()
		if session == nil {
			return false, nil
		}
		// The renewal must survive cancellation of the originating
		// request: coalesced siblings still need its result.
		return session.RefreshAccess(context.WithoutCancel(ctx)), nil
	})

	ok, _ := v.(bool)
	return ok
}

func (g *Gateway) sessionState() (string, bool) {
	session := g.sessionSource()
	if session == nil {
		return "", false
	}
	return session.AccessToken()
}

func (g *Gateway) sessionSource() SessionSource {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

func (g *Gateway) notifySessionExpired() {
	g.mu.RLock()
	fn := g.onSessionExpired
	g.mu.RUnlock()

	if fn != nil {
		fn()
	}
	g.logger.Warn().Msg("credential renewal failed, session expired")
}
