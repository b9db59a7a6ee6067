package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/salim-ai/salim-client/internal/gateway"
	"github.com/salim-ai/salim-client/internal/logger"
	"github.com/salim-ai/salim-client/internal/mock"
	"github.com/salim-ai/salim-client/internal/store"
	"github.com/salim-ai/salim-client/models"
)

func newTestStore(
	t *testing.T,
	ctrl *gomock.Controller,
) (*Store, *mock.MockAuthAPI, *mock.MockSessionRepository, *mock.MockBankLinkRepository) {
	t.Helper()

	api := mock.NewMockAuthAPI(ctrl)
	sessions := mock.NewMockSessionRepository(ctrl)
	bankLinks := mock.NewMockBankLinkRepository(ctrl)

	storages := &store.ClientStorages{Session: sessions, BankLink: bankLinks}
	return NewStore(api, storages, logger.Nop()), api, sessions, bankLinks
}

func testCreds() models.CredentialPair {
	return models.CredentialPair{Access: "access-1", Renewal: "renewal-1"}
}

func testUser() models.User {
	u := models.User{ID: 42, Email: "ada@salim.ai", FullName: "Ada Lovelace"}
	u.SplitName()
	return u
}

// assertInvariant checks authenticated ⇔ credentials present ∧ user present
// on a snapshot.
func assertInvariant(t *testing.T, st State) {
	t.Helper()
	if st.Authenticated {
		assert.False(t, st.Credentials.Empty())
		assert.NotZero(t, st.User.ID)
	}
}

func TestStore_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	api.EXPECT().Login(ctx, "ada@salim.ai", "pw").Return(testCreds(), nil)
	api.EXPECT().Me(ctx).Return(testUser(), nil)
	// Two transitions persist: credentials-only, then the full session.
	sessions.EXPECT().Save(ctx, gomock.Any()).Times(2).Return(nil)

	var transitions []State
	s.Subscribe(func(st State) { transitions = append(transitions, st) })

	require.NoError(t, s.Login(ctx, "ada@salim.ai", "pw"))

	snapshot := s.Snapshot()
	assert.True(t, snapshot.Authenticated)
	assert.Equal(t, "Ada", snapshot.User.FirstName)
	assert.Equal(t, "access-1", snapshot.Credentials.Access)

	// No observer may see authenticated state without a user, and the
	// intermediate credentials-only transition is unauthenticated.
	require.Len(t, transitions, 2)
	assert.False(t, transitions[0].Authenticated)
	for _, st := range transitions {
		assertInvariant(t, st)
	}
}

func TestStore_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, _, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	api.EXPECT().Login(ctx, "ada@salim.ai", "nope").
		Return(models.CredentialPair{}, gateway.ErrUnauthorized)

	err := s.Login(ctx, "ada@salim.ai", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, s.Snapshot().Authenticated)
}

func TestStore_Login_ProfileFetchFailureClearsPartialState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	api.EXPECT().Login(ctx, "ada@salim.ai", "pw").Return(testCreds(), nil)
	api.EXPECT().Me(ctx).Return(models.User{}, gateway.ErrInternalServerError)
	sessions.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	sessions.EXPECT().Clear(ctx).Return(nil)

	err := s.Login(ctx, "ada@salim.ai", "pw")
	assert.ErrorIs(t, err, ErrServer)

	snapshot := s.Snapshot()
	assert.False(t, snapshot.Authenticated)
	assert.True(t, snapshot.Credentials.Empty())
	assert.Zero(t, snapshot.User.ID)
}

func TestStore_LoginErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		from error
		want error
	}{
		{name: "unauthorized", from: gateway.ErrUnauthorized, want: ErrInvalidCredentials},
		{name: "forbidden", from: gateway.ErrForbidden, want: ErrAccountDisabled},
		{name: "server", from: gateway.ErrInternalServerError, want: ErrServer},
		{name: "bad gateway", from: gateway.ErrBadGateway, want: ErrServer},
		{name: "network", from: gateway.ErrNetwork, want: ErrNetwork},
		{name: "other", from: errors.New("weird"), want: ErrAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapLoginError(tt.from), tt.want)
		})
	}
}

func TestStore_Register_DoesNotLogIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, _, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	req := models.RegisterRequest{Email: "new@salim.ai", Password: "pw", FullName: "New User"}
	api.EXPECT().Register(ctx, req).Return(testUser(), nil)

	require.NoError(t, s.Register(ctx, req))

	snapshot := s.Snapshot()
	assert.False(t, snapshot.Authenticated)
	assert.True(t, snapshot.Credentials.Empty())
}

func TestStore_Initialize_RestoresPersistedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	persisted := models.PersistedSession{
		Credentials:   testCreds(),
		User:          testUser(),
		Authenticated: true,
	}
	sessions.EXPECT().Load(ctx).Return(persisted, nil)
	api.EXPECT().Me(ctx).Return(testUser(), nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)

	assert.True(t, s.Snapshot().Loading)
	require.NoError(t, s.Initialize(ctx))

	snapshot := s.Snapshot()
	assert.False(t, snapshot.Loading)
	assert.True(t, snapshot.Authenticated)
	assert.Equal(t, "ada@salim.ai", snapshot.User.Email)
}

func TestStore_Initialize_PartialRecordStaysUnauthenticatedUntilValidated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	// A record with credentials but no user, as left behind when the
	// process dies between the two login steps.
	persisted := models.PersistedSession{
		Credentials:   testCreds(),
		Authenticated: false,
	}
	sessions.EXPECT().Load(ctx).Return(persisted, nil)
	api.EXPECT().Me(ctx).Return(testUser(), nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)

	var transitions []State
	s.Subscribe(func(st State) { transitions = append(transitions, st) })

	require.NoError(t, s.Initialize(ctx))

	// No observer may see authenticated=true with an absent user, not
	// even between credential install and profile validation.
	require.NotEmpty(t, transitions)
	for _, st := range transitions {
		assertInvariant(t, st)
	}
	assert.False(t, transitions[0].Authenticated)

	snapshot := s.Snapshot()
	assert.True(t, snapshot.Authenticated)
	assert.Equal(t, int64(42), snapshot.User.ID)
}

func TestStore_Initialize_RejectedCredentialsAreCleared(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	persisted := models.PersistedSession{
		Credentials:   testCreds(),
		User:          testUser(),
		Authenticated: true,
	}
	sessions.EXPECT().Load(ctx).Return(persisted, nil)
	api.EXPECT().Me(ctx).Return(models.User{}, gateway.ErrSessionExpired)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)
	sessions.EXPECT().Clear(gomock.Any()).AnyTimes().Return(nil)

	require.Error(t, s.Initialize(ctx))

	snapshot := s.Snapshot()
	assert.False(t, snapshot.Loading)
	assert.False(t, snapshot.Authenticated)
	assert.True(t, snapshot.Credentials.Empty())
}

func TestStore_Initialize_NoPersistedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	sessions.EXPECT().Load(ctx).Return(models.PersistedSession{}, store.ErrSessionNotFound)

	require.NoError(t, s.Initialize(ctx))

	snapshot := s.Snapshot()
	assert.False(t, snapshot.Loading)
	assert.False(t, snapshot.Authenticated)
}

func TestStore_Initialize_RunsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	sessions.EXPECT().Load(ctx).Times(1).Return(models.PersistedSession{}, store.ErrSessionNotFound)

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Initialize(ctx))
}

func TestStore_Logout_ClearsSessionAndBankKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, bankLinks := newTestStore(t, ctrl)
	ctx := context.Background()

	api.EXPECT().Login(ctx, "ada@salim.ai", "pw").Return(testCreds(), nil)
	api.EXPECT().Me(ctx).Return(testUser(), nil)
	sessions.EXPECT().Save(ctx, gomock.Any()).Times(2).Return(nil)
	require.NoError(t, s.Login(ctx, "ada@salim.ai", "pw"))

	sessions.EXPECT().Clear(ctx).Return(nil)
	bankLinks.EXPECT().Clear(ctx).Return(nil)

	s.Logout(ctx)

	snapshot := s.Snapshot()
	assert.False(t, snapshot.Authenticated)
	assert.True(t, snapshot.Credentials.Empty())
	assert.Zero(t, snapshot.User.ID)
}

func TestStore_RefreshAccess_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	api.EXPECT().Login(ctx, "ada@salim.ai", "pw").Return(testCreds(), nil)
	api.EXPECT().Me(ctx).Return(testUser(), nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)
	require.NoError(t, s.Login(ctx, "ada@salim.ai", "pw"))

	// Backend rotates the access token but omits the renewal credential;
	// the prior renewal must be retained.
	api.EXPECT().Refresh(ctx, "renewal-1").
		Return(models.CredentialPair{Access: "access-2"}, nil)

	assert.True(t, s.RefreshAccess(ctx))

	snapshot := s.Snapshot()
	assert.Equal(t, "access-2", snapshot.Credentials.Access)
	assert.Equal(t, "renewal-1", snapshot.Credentials.Renewal)
	assert.True(t, snapshot.Authenticated)
}

func TestStore_RefreshAccess_FailureLogsOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, bankLinks := newTestStore(t, ctrl)
	ctx := context.Background()

	api.EXPECT().Login(ctx, "ada@salim.ai", "pw").Return(testCreds(), nil)
	api.EXPECT().Me(ctx).Return(testUser(), nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)
	require.NoError(t, s.Login(ctx, "ada@salim.ai", "pw"))

	api.EXPECT().Refresh(ctx, "renewal-1").
		Return(models.CredentialPair{}, gateway.ErrUnauthorized)
	sessions.EXPECT().Clear(ctx).Return(nil)
	bankLinks.EXPECT().Clear(ctx).Return(nil)

	assert.False(t, s.RefreshAccess(ctx))
	assert.False(t, s.Snapshot().Authenticated)
}

func TestStore_RefreshAccess_NoRenewalCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, sessions, bankLinks := newTestStore(t, ctrl)
	ctx := context.Background()

	sessions.EXPECT().Clear(ctx).Return(nil)
	bankLinks.EXPECT().Clear(ctx).Return(nil)

	assert.False(t, s.RefreshAccess(ctx))
}

func TestStore_RefreshAccess_DemoIsSuppressed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, sessions, _ := newTestStore(t, ctrl)

	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)
	s.EnterDemo()

	// No Refresh expectation: the API must not be called.
	assert.True(t, s.RefreshAccess(context.Background()))
	assert.True(t, s.Snapshot().Authenticated)
}

func TestStore_EnterDemo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, sessions, _ := newTestStore(t, ctrl)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)

	s.EnterDemo()

	snapshot := s.Snapshot()
	assert.True(t, snapshot.Authenticated)
	assert.False(t, snapshot.Loading)
	assert.True(t, snapshot.Credentials.IsDemo())
	assert.Equal(t, models.DemoUserProfile().Email, snapshot.User.Email)
}

func TestStore_UpdateUser_MergesPatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	api.EXPECT().Login(ctx, "ada@salim.ai", "pw").Return(testCreds(), nil)
	api.EXPECT().Me(ctx).Return(testUser(), nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)
	require.NoError(t, s.Login(ctx, "ada@salim.ai", "pw"))

	s.UpdateUser(ctx, models.User{FullName: "Ada King"})

	snapshot := s.Snapshot()
	assert.Equal(t, "Ada King", snapshot.User.FullName)
	assert.Equal(t, "King", snapshot.User.LastName)
	// Untouched fields survive the merge.
	assert.Equal(t, "ada@salim.ai", snapshot.User.Email)
	assert.EqualValues(t, 42, snapshot.User.ID)
}

func TestStore_AccessToken_TracksCredentialPresence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, api, sessions, _ := newTestStore(t, ctrl)
	ctx := context.Background()

	token, attachable := s.AccessToken()
	assert.Empty(t, token)
	assert.False(t, attachable)

	api.EXPECT().Login(ctx, "ada@salim.ai", "pw").Return(testCreds(), nil)
	// The profile fetch between the two login steps must already carry
	// the credential.
	api.EXPECT().Me(ctx).DoAndReturn(func(context.Context) (models.User, error) {
		stepToken, stepAttachable := s.AccessToken()
		assert.Equal(t, "access-1", stepToken)
		assert.True(t, stepAttachable)
		return testUser(), nil
	})
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)

	require.NoError(t, s.Login(ctx, "ada@salim.ai", "pw"))

	token, attachable = s.AccessToken()
	assert.Equal(t, "access-1", token)
	assert.True(t, attachable)
}
