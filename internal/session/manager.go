package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"scholarhub-client/internal/api"
	"scholarhub-client/internal/common/errors"
	"scholarhub-client/internal/common/logger"
	"scholarhub-client/internal/common/metrics"
	"scholarhub-client/internal/models"
)

// State is the session manager's explicit lifecycle state.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateRefreshing     State = "refreshing"
)

// AuthAPI is the slice of the backend contract the manager consumes.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Register(ctx context.Context, input api.RegisterInput) error
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Me(ctx context.Context, accessToken string) (*models.User, error)
	UpdateMe(ctx context.Context, accessToken string, input api.ProfileUpdateInput) (*models.User, error)
	ChangePassword(ctx context.Context, accessToken, current, updated string) error
}

// RegisterInput is the manager-level registration request. Confirm is checked
// when non-empty (the registration form supplies it; scripted callers may not).
type RegisterInput struct {
	Email     string
	Password  string
	Confirm   string
	FirstName string
	LastName  string
	Role      models.Role
}

// Manager owns the credential pair and the identity lifecycle. Hydration must
// complete before any role-gated rendering decision; callers sequence on it.
type Manager struct {
	mu    sync.Mutex
	state State
	pair  *models.TokenPair
	user  *models.User

	api    AuthAPI
	store  CredentialStore
	feed   *IdentityFeed
	logger logger.Logger
}

func NewManager(authAPI AuthAPI, store CredentialStore, log logger.Logger) *Manager {
	return &Manager{
		state:  StateAnonymous,
		api:    authAPI,
		store:  store,
		feed:   NewIdentityFeed(),
		logger: log.WithFields(map[string]interface{}{"component": "session"}),
	}
}

// Feed exposes the identity broadcast for subscribers.
func (m *Manager) Feed() *IdentityFeed {
	return m.feed
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the hydrated identity, or nil while anonymous.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Pair returns the current credential pair, or nil.
func (m *Manager) Pair() *models.TokenPair {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pair
}

// AccessToken returns the current access token, or "" while anonymous.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pair == nil {
		return ""
	}
	return m.pair.AccessToken
}

// setState must be called with the lock held.
func (m *Manager) setState(s State) {
	if m.state != s {
		m.state = s
		metrics.SessionTransitions.WithLabelValues(string(s)).Inc()
	}
}

// Login exchanges credentials for a token pair, persists it, and transitions
// to Authenticated. Identity is hydrated separately. On rejection the manager
// stays Anonymous and the auth error carries the backend's first message.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	m.setState(StateAuthenticating)
	m.mu.Unlock()

	pair, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.mu.Lock()
		m.setState(StateAnonymous)
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.pair = pair
	m.setState(StateAuthenticated)
	m.mu.Unlock()

	if err := m.store.Save(ctx, pair); err != nil {
		// The in-memory session stays valid; only persistence failed.
		m.logger.Warn("failed to persist credentials", map[string]interface{}{"error": err.Error()})
	}

	m.logger.Info("logged in", map[string]interface{}{"email": email})
	return nil
}

// Register validates the password policy client-side, then creates the
// account. It does not log in.
func (m *Manager) Register(ctx context.Context, input RegisterInput) error {
	if input.Confirm != "" {
		if err := ValidatePasswordConfirmation(input.Password, input.Confirm); err != nil {
			return err
		}
	} else if err := ValidatePassword(input.Password); err != nil {
		return err
	}
	if !input.Role.Valid() {
		return errors.NewValidationError("Unknown role.", string(input.Role))
	}

	return m.api.Register(ctx, api.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
	})
}

// Hydrate resolves the current identity from the stored credential. On any
// failure it attempts exactly one refresh and one retry; if that also fails
// the session is unrecoverable: credentials are cleared and the manager is
// Anonymous. The one-retry bound is deliberate and load-bearing.
func (m *Manager) Hydrate(ctx context.Context) (*models.User, error) {
	m.mu.Lock()
	pair := m.pair
	if pair == nil {
		pair = m.store.Load(ctx)
		m.pair = pair
	}
	m.mu.Unlock()

	if pair.Empty() {
		m.mu.Lock()
		m.setState(StateAnonymous)
		m.mu.Unlock()
		return nil, errors.NewAuthError("no stored session", "")
	}

	// A token known to be expired goes straight to the refresh step instead
	// of burning the attempt on a guaranteed 401.
	if !accessTokenExpired(pair.AccessToken) {
		user, err := m.api.Me(ctx, pair.AccessToken)
		if err == nil {
			m.adopt(user)
			return user, nil
		}
		m.logger.Debug("hydration failed, attempting refresh", map[string]interface{}{"error": err.Error()})
	}

	return m.refreshAndRetry(ctx, pair)
}

// refreshAndRetry performs the single refresh plus one hydration retry.
func (m *Manager) refreshAndRetry(ctx context.Context, pair *models.TokenPair) (*models.User, error) {
	m.mu.Lock()
	m.setState(StateRefreshing)
	m.mu.Unlock()

	refreshed, err := m.api.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		m.forceLogout(ctx, "refresh rejected")
		return nil, errors.NewAuthError("session expired", err.Error())
	}

	refreshed.NeedsProfileSetup = pair.NeedsProfileSetup

	m.mu.Lock()
	m.pair = refreshed
	m.mu.Unlock()
	if err := m.store.Save(ctx, refreshed); err != nil {
		m.logger.Warn("failed to persist refreshed credentials", map[string]interface{}{"error": err.Error()})
	}

	user, err := m.api.Me(ctx, refreshed.AccessToken)
	if err != nil {
		m.forceLogout(ctx, "hydration retry failed")
		return nil, errors.NewAuthError("session expired", err.Error())
	}

	m.adopt(user)
	return user, nil
}

// adopt records a hydrated identity and broadcasts it.
func (m *Manager) adopt(user *models.User) {
	m.mu.Lock()
	m.user = user
	m.setState(StateAuthenticated)
	m.mu.Unlock()
	m.feed.Publish(user)
}

// Logout clears credentials and transitions to Anonymous. It never fails.
func (m *Manager) Logout(ctx context.Context) {
	m.forceLogout(ctx, "explicit logout")
}

func (m *Manager) forceLogout(ctx context.Context, reason string) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("failed to clear credential store", map[string]interface{}{"error": err.Error()})
	}

	m.mu.Lock()
	m.pair = nil
	m.user = nil
	m.setState(StateAnonymous)
	m.mu.Unlock()

	m.logger.Info("session ended", map[string]interface{}{"reason": reason})
	m.feed.Publish(nil)
}

// HandleAuthError performs the forced-logout side effect when err is an auth
// error, then returns err unmodified so the caller can redirect. Services
// route backend errors through here; a 401 is the single logout trigger.
func (m *Manager) HandleAuthError(ctx context.Context, err error) error {
	if errors.IsAuth(err) {
		m.forceLogout(ctx, "unauthorized response")
	}
	return err
}

// UpdateProfile patches the identity's name fields and broadcasts the new
// identity without forcing a re-hydration.
func (m *Manager) UpdateProfile(ctx context.Context, firstName, lastName string) (*models.User, error) {
	token := m.AccessToken()
	if token == "" {
		return nil, errors.NewAuthError("not authenticated", "")
	}

	user, err := m.api.UpdateMe(ctx, token, api.ProfileUpdateInput{FirstName: firstName, LastName: lastName})
	if err != nil {
		return nil, m.HandleAuthError(ctx, err)
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	m.feed.Publish(user)
	return user, nil
}

// ChangePassword validates the new password against the policy before asking
// the backend to change it. The session stays valid afterwards; the backend
// does not rotate tokens on password change.
func (m *Manager) ChangePassword(ctx context.Context, current, updated, confirm string) error {
	token := m.AccessToken()
	if token == "" {
		return errors.NewAuthError("not authenticated", "")
	}
	if err := ValidatePasswordConfirmation(updated, confirm); err != nil {
		return err
	}
	if err := m.api.ChangePassword(ctx, token, current, updated); err != nil {
		return m.HandleAuthError(ctx, err)
	}
	m.logger.Info("password changed", nil)
	return nil
}

// SetNeedsProfileSetup flips the onboarding flag on the persisted pair.
func (m *Manager) SetNeedsProfileSetup(ctx context.Context, needed bool) {
	m.mu.Lock()
	if m.pair == nil {
		m.mu.Unlock()
		return
	}
	updated := *m.pair
	updated.NeedsProfileSetup = needed
	m.pair = &updated
	m.mu.Unlock()

	if err := m.store.Save(ctx, &updated); err != nil {
		m.logger.Warn("failed to persist onboarding flag", map[string]interface{}{"error": err.Error()})
	}
}

// accessTokenExpired decodes the JWT exp claim without verifying the
// signature; verification is the backend's job. Tokens without a parsable
// claim fall back to the reactive 401 path.
func accessTokenExpired(accessToken string) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
