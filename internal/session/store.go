// Package session implements the persistent session store: the single
// source of truth for authentication state.
//
// A [Store] holds {credentials, user, authenticated, loading}, writes the
// durable part through to the local store on every mutation, and notifies
// subscribed observers with an atomic snapshot after each transition. The
// invariant authenticated ⇔ credentials ∧ user holds at every observable
// state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dario.cat/mergo"

	"github.com/salim-ai/salim-client/internal/logger"
	"github.com/salim-ai/salim-client/internal/store"
	"github.com/salim-ai/salim-client/models"
)

//go:generate mockgen -source=store.go -destination=../mock/session_mock.go -package=mock

// AuthAPI is the slice of the gateway the session store drives. It is
// satisfied by *gateway.Gateway; the store and the gateway are constructed
// separately and bound in the application wiring.
type AuthAPI interface {
	// Login exchanges email/password for a credential pair.
	Login(ctx context.Context, email, password string) (models.CredentialPair, error)

	// Register creates a new account without issuing credentials.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Me fetches the profile for the current credentials.
	Me(ctx context.Context) (models.User, error)

	// Refresh exchanges the renewal credential for a fresh token pair.
	Refresh(ctx context.Context, renewal string) (models.CredentialPair, error)
}

// State is the observable session state. Observers always receive a copy;
// no mutation is visible half-applied.
type State struct {
	Credentials   models.CredentialPair
	User          models.User
	Authenticated bool
	Loading       bool
}

// Observer receives a snapshot after every state transition.
type Observer func(State)

// Store is the process-wide session holder.
type Store struct {
	api       AuthAPI
	sessions  store.SessionRepository
	bankLinks store.BankLinkRepository
	logger    *logger.Logger

	mu        sync.RWMutex
	state     State
	observers []Observer

	initOnce    sync.Once
	loadingOnce sync.Once
}

// NewStore constructs a session store in the loading state. Initialize must
// be called once before the store is useful.
//
// bankLinks is held for exactly one purpose: Logout clears the bank-link
// keys so a later user on the same device cannot inherit banking snapshots.
// The store never reads them.
func NewStore(api AuthAPI, storages *store.ClientStorages, logger *logger.Logger) *Store {
	return &Store{
		api:       api,
		sessions:  storages.Session,
		bankLinks: storages.BankLink,
		logger:    logger,
		state:     State{Loading: true},
	}
}

// Subscribe registers an observer. It is called with a snapshot after every
// subsequent state transition.
func (s *Store) Subscribe(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// AccessToken implements gateway.SessionSource. The second value reports
// credential presence so the profile fetch inside the two-step login is
// dispatched with the just-issued token.
func (s *Store) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Credentials.Access, s.state.Credentials.Access != ""
}

// Initialize rehydrates the session from the durable store, at most once
// per process. A persisted credential pair is re-validated against
// GET /auth/me; on failure all credentials are cleared. Whatever the
// outcome, the store leaves the loading state exactly once.
func (s *Store) Initialize(ctx context.Context) error {
	var initErr error

	s.initOnce.Do(func() {
		defer s.finishLoading()

		persisted, err := s.sessions.Load(ctx)
		if err != nil {
			if !errors.Is(err, store.ErrSessionNotFound) {
				s.logger.Err(err).Msg("failed to load persisted session")
			}
			return
		}
		if persisted.Credentials.Empty() {
			return
		}

		if persisted.Credentials.IsDemo() {
			s.EnterDemo()
			return
		}

		// Install the persisted pair first so the validation request
		// carries it (and can renew it on a 401). Authenticated stays
		// false until the profile is confirmed: a partial record (the
		// process died between the two login steps, or a prior clear
		// failed) must never surface an authenticated state without a
		// user.
		s.setState(ctx, func(st *State) {
			st.Credentials = persisted.Credentials
			st.User = persisted.User
			st.Authenticated = false
		})

		user, err := s.api.Me(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("persisted credentials rejected, clearing session")
			s.clearSession(ctx)
			initErr = err
			return
		}

		s.setState(ctx, func(st *State) {
			st.User = user
			st.Authenticated = true
		})
	})

	return initErr
}

// Login performs the two-step credential exchange: (a) swap email/password
// for a token pair and persist it immediately so subsequent requests
// include it; (b) fetch the profile. Any failure clears partial state.
// Errors are translated to the login taxonomy (ErrInvalidCredentials,
// ErrAccountDisabled, ErrServer, ErrNetwork).
func (s *Store) Login(ctx context.Context, email, password string) error {
	creds, err := s.api.Login(ctx, email, password)
	if err != nil {
		return mapLoginError(err)
	}

	s.setState(ctx, func(st *State) {
		st.Credentials = creds
		st.User = models.User{}
		st.Authenticated = false
	})

	user, err := s.api.Me(ctx)
	if err != nil {
		s.clearSession(ctx)
		return mapLoginError(err)
	}

	s.setState(ctx, func(st *State) {
		st.User = user
		st.Authenticated = true
	})

	s.logger.Info().
		Str("email", user.Email).
		Time("access_expiry", creds.AccessExpiry()).
		Msg("login succeeded")

	return nil
}

// Register creates the account. It does not log in; the caller proceeds to
// an explicit Login.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) error {
	if _, err := s.api.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Logout clears credentials and user, and clears the bank-link keys as
// well. The latter is a correctness requirement, not a UX concern: a
// subsequent user on this device must not inherit banking snapshots.
func (s *Store) Logout(ctx context.Context) {
	s.clearSession(ctx)

	if err := s.bankLinks.Clear(ctx); err != nil {
		s.logger.Err(err).Msg("failed to clear bank link record on logout")
	}
}

// UpdateUser merges non-zero fields of patch into the user record in place
// and re-derives the split name. No network I/O.
func (s *Store) UpdateUser(ctx context.Context, patch models.User) {
	s.setState(ctx, func(st *State) {
		if err := mergo.Merge(&st.User, patch, mergo.WithOverride); err != nil {
			s.logger.Err(err).Msg("failed to merge user patch")
			return
		}
		st.User.SplitName()
	})
}

// RefreshAccess exchanges the renewal credential for a fresh access token.
// When the backend returns a new renewal credential it replaces the prior
// one; otherwise the prior one is retained. Failure logs the session out
// and returns false. Suppressed entirely for the demo sentinel.
func (s *Store) RefreshAccess(ctx context.Context) bool {
	current := s.Snapshot().Credentials
	if current.IsDemo() {
		return true
	}
	if current.Renewal == "" {
		s.Logout(ctx)
		return false
	}

	fresh, err := s.api.Refresh(ctx, current.Renewal)
	if err != nil {
		s.logger.Warn().Err(err).Msg("credential renewal failed")
		s.Logout(ctx)
		return false
	}

	if fresh.Renewal == "" {
		fresh.Renewal = current.Renewal
	}

	s.setState(ctx, func(st *State) {
		st.Credentials = fresh
	})

	return true
}

// EnterDemo installs the fixed demo user and the sentinel credentials.
// Used to exercise the UI without a backend.
func (s *Store) EnterDemo() {
	s.setState(context.Background(), func(st *State) {
		st.Credentials = models.DemoCredentials()
		st.User = models.DemoUserProfile().User()
		st.Authenticated = true
	})
	s.finishLoading()
}

// finishLoading transitions loading to false, exactly once per process.
func (s *Store) finishLoading() {
	s.loadingOnce.Do(func() {
		s.setState(context.Background(), func(st *State) {
			st.Loading = false
		})
	})
}

func (s *Store) clearSession(ctx context.Context) {
	s.setState(ctx, func(st *State) {
		st.Credentials = models.CredentialPair{}
		st.User = models.User{}
		st.Authenticated = false
	})
}

// setState applies one atomic transition: the mutation runs under the lock,
// the durable write-through happens while the new state is current, and
// observers are notified with the resulting snapshot after the lock is
// released.
func (s *Store) setState(ctx context.Context, mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	for _, obs := range observers {
		obs(snapshot)
	}
}

func (s *Store) persist(ctx context.Context, snapshot State) {
	if snapshot.Credentials.Empty() && !snapshot.Authenticated {
		if err := s.sessions.Clear(ctx); err != nil {
			s.logger.Err(err).Msg("failed to clear persisted session")
		}
		return
	}

	record := models.PersistedSession{
		Credentials:   snapshot.Credentials,
		User:          snapshot.User,
		Authenticated: snapshot.Authenticated,
		SavedAt:       time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, record); err != nil {
		s.logger.Err(err).Msg("failed to persist session state")
	}
}
