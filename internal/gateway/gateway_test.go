package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salim-ai/salim-client/internal/config"
	"github.com/salim-ai/salim-client/internal/logger"
	"github.com/salim-ai/salim-client/models"
)

// fakeSession is a minimal SessionSource: a token, an attachable flag, and
// a scripted renewal outcome.
type fakeSession struct {
	mu         sync.Mutex
	token      string
	attachable bool

	refreshOK    bool
	freshToken   string
	refreshDelay time.Duration
	refreshCalls atomic.Int64

	// onRefresh, when set, runs inside RefreshAccess before the outcome is
	// applied. Tests use it to interleave caller-side events with the
	// renewal window.
	onRefresh func()
}

func (f *fakeSession) AccessToken() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.attachable
}

func (f *fakeSession) RefreshAccess(_ context.Context) bool {
	f.refreshCalls.Add(1)
	if f.refreshDelay > 0 {
		time.Sleep(f.refreshDelay)
	}
	if f.onRefresh != nil {
		f.onRefresh()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.refreshOK {
		f.token = ""
		f.attachable = false
		return false
	}
	f.token = f.freshToken
	return true
}

func newTestGateway(t *testing.T, serverURL string, session SessionSource) *Gateway {
	t.Helper()

	g, err := New(config.ClientAPI{
		BaseURL:        serverURL,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	if session != nil {
		g.BindSession(session)
	}
	return g
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestGateway_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(t, w, models.UserProfile{ID: 7, Email: "a@b.c", FullName: "Ada Lovelace"})
	}))
	defer server.Close()

	session := &fakeSession{token: "access-1", attachable: true}
	g := newTestGateway(t, server.URL, session)

	user, err := g.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer access-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
}

func TestGateway_NoBearerWithoutCredential(t *testing.T) {
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, models.TokenResponse{AccessToken: "a", RefreshToken: "r"})
	}))
	defer server.Close()

	g := newTestGateway(t, server.URL, &fakeSession{})

	_, err := g.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestGateway_RenewalRetriesExactlyOnce(t *testing.T) {
	var requests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, models.UserProfile{ID: 1, Email: "a@b.c", FullName: "Ada"})
	}))
	defer server.Close()

	session := &fakeSession{
		token:      "stale",
		attachable: true,
		refreshOK:  true,
		freshToken: "fresh",
	}
	g := newTestGateway(t, server.URL, session)

	_, err := g.Me(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, session.refreshCalls.Load())
	assert.EqualValues(t, 2, requests.Load())
}

func TestGateway_RetriedRequestStill401IsTerminal(t *testing.T) {
	var requests atomic.Int64

	// The backend rejects even the fresh credential; the gateway must not
	// loop.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	session := &fakeSession{
		token:      "stale",
		attachable: true,
		refreshOK:  true,
		freshToken: "fresh",
	}
	g := newTestGateway(t, server.URL, session)

	_, err := g.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	assert.EqualValues(t, 1, session.refreshCalls.Load())
	assert.EqualValues(t, 2, requests.Load())
}

func TestGateway_ConcurrentRenewalCoalesces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, models.UserProfile{ID: 1, Email: "a@b.c", FullName: "Ada"})
	}))
	defer server.Close()

	session := &fakeSession{
		token:        "stale",
		attachable:   true,
		refreshOK:    true,
		freshToken:   "fresh",
		refreshDelay: 100 * time.Millisecond,
	}
	g := newTestGateway(t, server.URL, session)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = g.Me(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		assert.NoError(t, errs[i])
	}
	assert.EqualValues(t, 1, session.refreshCalls.Load(),
		"concurrent 401s must coalesce onto a single renewal")
}

func TestGateway_CancellationDuringRenewalSkipsRetry(t *testing.T) {
	var requests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, models.UserProfile{ID: 1, Email: "a@b.c", FullName: "Ada"})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The caller gives up while the renewal is in flight. The renewal
	// itself still completes (it runs detached), but the retry must not
	// be issued on the dead context.
	session := &fakeSession{
		token:      "stale",
		attachable: true,
		refreshOK:  true,
		freshToken: "fresh",
		onRefresh:  cancel,
	}
	g := newTestGateway(t, server.URL, session)

	_, err := g.Me(ctx)
	require.ErrorIs(t, err, ErrNetwork)

	assert.EqualValues(t, 1, session.refreshCalls.Load())
	assert.EqualValues(t, 1, requests.Load(), "canceled caller must not receive the retry")
}

func TestGateway_RenewalFailureSignalsExpiry(t *testing.T) {
	var requests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	session := &fakeSession{token: "stale", attachable: true, refreshOK: false}
	g := newTestGateway(t, server.URL, session)

	var expired atomic.Bool
	g.OnSessionExpired(func() { expired.Store(true) })

	_, err := g.Me(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)

	assert.True(t, expired.Load())
	assert.EqualValues(t, 1, requests.Load(), "failed renewal must not re-issue the request")
}

func TestGateway_AuthPath401IsNeverRenewed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	session := &fakeSession{token: "stale", attachable: true, refreshOK: true, freshToken: "fresh"}
	g := newTestGateway(t, server.URL, session)

	_, err := g.Login(context.Background(), "a@b.c", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualValues(t, 0, session.refreshCalls.Load())
}

func TestGateway_DemoNeverTouchesNetwork(t *testing.T) {
	var requests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	session := &fakeSession{token: models.DemoAccessToken, attachable: true}
	g := newTestGateway(t, server.URL, session)
	ctx := context.Background()

	user, err := g.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DemoUserProfile().Email, user.Email)

	quote, err := g.Quote(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)

	// A route without a fixture resolves to the generic demo payload.
	_, err = g.InvokeTool(ctx, models.ToolInvokeRequest{ToolName: "flight_search"})
	require.NoError(t, err)

	assert.EqualValues(t, 0, requests.Load())
}

func TestGateway_DemoDoesNotCaptureAuthCalls(t *testing.T) {
	var requests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		writeJSON(t, w, models.TokenResponse{AccessToken: "real-access", RefreshToken: "real-renewal"})
	}))
	defer server.Close()

	// Logging in out of demo mode must reach the backend and return real
	// credentials, not resolve against a fixture.
	session := &fakeSession{token: models.DemoAccessToken, attachable: true}
	g := newTestGateway(t, server.URL, session)

	creds, err := g.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "real-access", creds.Access)

	assert.EqualValues(t, 1, requests.Load(), "auth calls bypass the demo resolver")
}

func TestGateway_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, want: ErrBadRequest},
		{name: "forbidden", status: http.StatusForbidden, want: ErrForbidden},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, want: ErrConflict},
		{name: "internal", status: http.StatusInternalServerError, want: ErrInternalServerError},
		{name: "bad gateway", status: http.StatusBadGateway, want: ErrBadGateway},
		{name: "unmapped 5xx", status: http.StatusServiceUnavailable, want: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			g := newTestGateway(t, server.URL, &fakeSession{})

			_, err := g.Quote(context.Background(), "AAPL")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGateway_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close() // refuse connections

	g := newTestGateway(t, server.URL, &fakeSession{})

	_, err := g.Quote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain host", in: "localhost:8000", want: "http://localhost:8000"},
		{name: "full url", in: "https://api.salim.ai/api/v1", want: "https://api.salim.ai/api/v1"},
		{name: "trailing slash", in: "http://localhost:8000/api/v1/", want: "http://localhost:8000/api/v1"},
		{name: "empty", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
