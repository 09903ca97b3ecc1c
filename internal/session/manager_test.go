package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarhub-client/internal/api"
	"scholarhub-client/internal/common/errors"
	"scholarhub-client/internal/common/logger"
	"scholarhub-client/internal/models"
)

// memStore is an in-memory CredentialStore for manager tests.
type memStore struct {
	mu   sync.Mutex
	pair *models.TokenPair
}

func (s *memStore) Save(_ context.Context, pair *models.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *pair
	s.pair = &copied
	return nil
}

func (s *memStore) Load(_ context.Context) *models.TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = nil
	return nil
}

// fakeAuthAPI scripts the backend's auth behavior and counts calls.
type fakeAuthAPI struct {
	loginPair    *models.TokenPair
	loginErr     error
	registerErr  error
	refreshPair  *models.TokenPair
	refreshErr   error
	meUser            *models.User
	meErrs            []error // consumed per call; nil entry means success
	meCalls           int
	refreshCalls      int
	changePassErr     error
	changePassCalls   int
	changePassCurrent string
}

func (f *fakeAuthAPI) Login(context.Context, string, string) (*models.TokenPair, error) {
	return f.loginPair, f.loginErr
}

func (f *fakeAuthAPI) Register(context.Context, api.RegisterInput) error {
	return f.registerErr
}

func (f *fakeAuthAPI) Refresh(context.Context, string) (*models.TokenPair, error) {
	f.refreshCalls++
	return f.refreshPair, f.refreshErr
}

func (f *fakeAuthAPI) Me(context.Context, string) (*models.User, error) {
	var err error
	if f.meCalls < len(f.meErrs) {
		err = f.meErrs[f.meCalls]
	}
	f.meCalls++
	if err != nil {
		return nil, err
	}
	return f.meUser, nil
}

func (f *fakeAuthAPI) UpdateMe(_ context.Context, _ string, input api.ProfileUpdateInput) (*models.User, error) {
	u := *f.meUser
	u.FirstName = input.FirstName
	u.LastName = input.LastName
	return &u, nil
}

func (f *fakeAuthAPI) ChangePassword(_ context.Context, _ string, current, _ string) error {
	f.changePassCalls++
	f.changePassCurrent = current
	return f.changePassErr
}

func newTestManager(t *testing.T, f *fakeAuthAPI) (*Manager, *memStore) {
	t.Helper()
	store := &memStore{}
	return NewManager(f, store, logger.NewTestLogger(t)), store
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAuthAPI{loginPair: &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	m, store := newTestManager(t, f)

	require.NoError(t, m.Login(context.Background(), "a@b.edu", "Secret1!"))

	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "acc", m.AccessToken())
	require.NotNil(t, store.Load(context.Background()), "pair is persisted")
}

func TestLogin_RejectionStaysAnonymous(t *testing.T) {
	f := &fakeAuthAPI{loginErr: errors.NewAuthError("Invalid email or password", "")}
	m, store := newTestManager(t, f)

	err := m.Login(context.Background(), "a@b.edu", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")
	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, store.Load(context.Background()))
}

func TestRegister_PasswordPolicyBeforeNetwork(t *testing.T) {
	f := &fakeAuthAPI{registerErr: errors.NewTransportError("must not be reached", nil)}
	m, _ := newTestManager(t, f)

	err := m.Register(context.Background(), RegisterInput{
		Email:    "a@b.edu",
		Password: "weak",
		Role:     models.RoleApplicant,
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err), "policy failure never reaches the network")
}

func TestRegister_ConfirmationMismatch(t *testing.T) {
	m, _ := newTestManager(t, &fakeAuthAPI{})

	err := m.Register(context.Background(), RegisterInput{
		Email:    "a@b.edu",
		Password: "Abcdef1!",
		Confirm:  "Other1!!",
		Role:     models.RoleApplicant,
	})
	assert.True(t, errors.IsValidation(err))
}

func TestHydrate_Success(t *testing.T) {
	f := &fakeAuthAPI{meUser: &models.User{ID: 1, Email: "a@b.edu", Role: models.RoleApplicant}}
	m, store := newTestManager(t, f)
	require.NoError(t, store.Save(context.Background(), &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}))

	user, err := m.Hydrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, 0, f.refreshCalls)
}

func TestHydrate_RefreshRecovers(t *testing.T) {
	f := &fakeAuthAPI{
		meUser:      &models.User{ID: 1, Email: "a@b.edu", Role: models.RoleReviewer},
		meErrs:      []error{errors.NewAuthError("token expired", ""), nil},
		refreshPair: &models.TokenPair{AccessToken: "acc-2", RefreshToken: "ref-2"},
	}
	m, store := newTestManager(t, f)
	require.NoError(t, store.Save(context.Background(), &models.TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1", NeedsProfileSetup: true}))

	user, err := m.Hydrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, 1, f.refreshCalls, "exactly one refresh")
	assert.Equal(t, 2, f.meCalls, "one retry after refresh")

	persisted := store.Load(context.Background())
	require.NotNil(t, persisted)
	assert.Equal(t, "acc-2", persisted.AccessToken)
	assert.True(t, persisted.NeedsProfileSetup, "onboarding flag survives the refresh")
}

func TestHydrate_UnrecoverableClearsEverything(t *testing.T) {
	f := &fakeAuthAPI{
		meErrs:     []error{errors.NewAuthError("token expired", "")},
		refreshErr: errors.NewAuthError("refresh token invalid", ""),
	}
	m, store := newTestManager(t, f)
	require.NoError(t, store.Save(context.Background(), &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}))

	_, err := m.Hydrate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, store.Load(context.Background()), "credentials are destroyed")
	assert.Equal(t, 1, f.refreshCalls, "gives up after one refresh")
	assert.Equal(t, 1, f.meCalls, "no retry when refresh itself fails")
}

func TestHydrate_RetryFailureGivesUp(t *testing.T) {
	f := &fakeAuthAPI{
		meErrs:      []error{errors.NewAuthError("token expired", ""), errors.NewAuthError("still invalid", "")},
		refreshPair: &models.TokenPair{AccessToken: "acc-2", RefreshToken: "ref-2"},
	}
	m, store := newTestManager(t, f)
	require.NoError(t, store.Save(context.Background(), &models.TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"}))

	_, err := m.Hydrate(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, f.refreshCalls)
	assert.Equal(t, 2, f.meCalls, "exactly one retry, then give up")
	assert.Equal(t, StateAnonymous, m.State())
}

func TestHydrate_NoStoredSession(t *testing.T) {
	m, _ := newTestManager(t, &fakeAuthAPI{})

	_, err := m.Hydrate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
	assert.Equal(t, StateAnonymous, m.State())
}

func TestHydrate_ExpiredTokenSkipsDoomedCall(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Hour))
	f := &fakeAuthAPI{
		meUser:      &models.User{ID: 1, Email: "a@b.edu", Role: models.RoleApplicant},
		refreshPair: &models.TokenPair{AccessToken: "acc-2", RefreshToken: "ref-2"},
	}
	m, store := newTestManager(t, f)
	require.NoError(t, store.Save(context.Background(), &models.TokenPair{AccessToken: expired, RefreshToken: "ref-1"}))

	user, err := m.Hydrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, 1, f.refreshCalls)
	assert.Equal(t, 1, f.meCalls, "the pre-refresh call is skipped entirely")
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestLogout_NeverFails(t *testing.T) {
	f := &fakeAuthAPI{loginPair: &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	m, store := newTestManager(t, f)
	require.NoError(t, m.Login(context.Background(), "a@b.edu", "Secret1!"))

	m.Logout(context.Background())
	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, m.AccessToken())
	assert.Nil(t, store.Load(context.Background()))

	// Logging out twice is fine.
	m.Logout(context.Background())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestHandleAuthError(t *testing.T) {
	f := &fakeAuthAPI{loginPair: &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	m, _ := newTestManager(t, f)
	require.NoError(t, m.Login(context.Background(), "a@b.edu", "Secret1!"))

	transport := errors.NewTransportError("flaky network", nil)
	assert.Equal(t, transport, m.HandleAuthError(context.Background(), transport))
	assert.Equal(t, StateAuthenticated, m.State(), "non-auth errors do not clear the session")

	authErr := errors.NewAuthError("unauthorized", "")
	assert.Equal(t, authErr, m.HandleAuthError(context.Background(), authErr), "error still reaches the caller")
	assert.Equal(t, StateAnonymous, m.State(), "401 is the forced-logout trigger")
}

func TestUpdateProfile_Broadcasts(t *testing.T) {
	f := &fakeAuthAPI{
		loginPair: &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
		meUser:    &models.User{ID: 1, Email: "a@b.edu", Role: models.RoleApplicant},
	}
	m, _ := newTestManager(t, f)
	require.NoError(t, m.Login(context.Background(), "a@b.edu", "Secret1!"))
	_, err := m.Hydrate(context.Background())
	require.NoError(t, err)

	received := make(chan *models.User, 2)
	unsubscribe := m.Feed().Subscribe(func(u *models.User) { received <- u })
	defer unsubscribe()

	updated, err := m.UpdateProfile(context.Background(), "Ada", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.FirstName)

	select {
	case u := <-received:
		require.NotNil(t, u)
		assert.Equal(t, "Ada", u.FirstName)
	case <-time.After(time.Second):
		t.Fatal("identity broadcast not delivered")
	}

	assert.Equal(t, "Ada", m.CurrentUser().FirstName)
}

func TestChangePassword(t *testing.T) {
	f := &fakeAuthAPI{loginPair: &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	m, _ := newTestManager(t, f)

	err := m.ChangePassword(context.Background(), "old", "Abcdef1!", "Abcdef1!")
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err), "requires an active session")
	assert.Zero(t, f.changePassCalls)

	require.NoError(t, m.Login(context.Background(), "a@b.edu", "Secret1!"))

	err = m.ChangePassword(context.Background(), "old", "weak", "weak")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err), "policy failure never reaches the network")
	assert.Zero(t, f.changePassCalls)

	err = m.ChangePassword(context.Background(), "old", "Abcdef1!", "Mismatch1!")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	require.NoError(t, m.ChangePassword(context.Background(), "old", "Abcdef1!", "Abcdef1!"))
	assert.Equal(t, 1, f.changePassCalls)
	assert.Equal(t, "old", f.changePassCurrent)
	assert.Equal(t, StateAuthenticated, m.State(), "session survives the password change")
}

func TestSetNeedsProfileSetup(t *testing.T) {
	f := &fakeAuthAPI{loginPair: &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	m, store := newTestManager(t, f)
	require.NoError(t, m.Login(context.Background(), "a@b.edu", "Secret1!"))

	m.SetNeedsProfileSetup(context.Background(), true)
	assert.True(t, m.Pair().NeedsProfileSetup)
	assert.True(t, store.Load(context.Background()).NeedsProfileSetup)

	m.SetNeedsProfileSetup(context.Background(), false)
	assert.False(t, store.Load(context.Background()).NeedsProfileSetup)
}
