// Package session orchestrates login, registration, logout, and
// authentication-status queries. It is the only component the UI calls:
// it composes the token store, the identity resolver, and the remote API
// client into one pipeline and persists the merged result.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/ykarpenko/bookshelf-cli/internal/api"
	"github.com/ykarpenko/bookshelf-cli/internal/logging"
	"github.com/ykarpenko/bookshelf-cli/internal/model"
)

// TokenStore is the persistence surface the manager needs.
type TokenStore interface {
	SaveToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	SaveIdentity(ctx context.Context, user *model.User)
	Identity(ctx context.Context) (*model.User, error)
	ClearSession(ctx context.Context) error
}

// Resolver decodes tokens into user records and answers validity queries.
type Resolver interface {
	Decode(ctx context.Context, token string) (*model.User, error)
	ValidAt(token string, now time.Time) bool
}

// Manager is the session state machine between anonymous and authenticated.
// Login/Register move it forward, Logout moves it back, and expiry is
// detected lazily by IsAuthenticated and CurrentUser.
type Manager struct {
	client   api.Client
	store    TokenStore
	resolver Resolver
	log      logging.Logger
	now      func() time.Time
}

func NewManager(client api.Client, store TokenStore, resolver Resolver, log logging.Logger) *Manager {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Manager{
		client:   client,
		store:    store,
		resolver: resolver,
		log:      log,
		now:      time.Now,
	}
}

// WithClock injects a custom clock. Useful in tests.
func (m *Manager) WithClock(clock func() time.Time) *Manager {
	if clock != nil {
		m.now = clock
	}
	return m
}

// Login authenticates against the backend and opens a session. A rejected
// credential or transport failure on the auth call fails the whole operation
// with ErrAuthFailed; a profile-fetch failure does not.
func (m *Manager) Login(ctx context.Context, creds LoginCredentials) (*model.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	token, err := m.client.Login(ctx, api.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		m.log.Error(ctx, "login failed", "email", creds.Email, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	user, err := m.establishSession(ctx, token, "")
	if err != nil {
		return nil, err
	}

	m.log.Info(ctx, "session opened", "user_id", user.ID)
	return user, nil
}

// Register creates an account and opens a session. The admin secret in creds
// is consumed here: the outbound request carries name, email, password, and
// role only. When the profile fetch fails or returns no name, the name the
// user typed into the registration form wins over anything claim-derived.
func (m *Manager) Register(ctx context.Context, creds RegisterCredentials) (*model.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	role := creds.Role
	if role == "" {
		role = model.RoleUser
	}

	token, err := m.client.Register(ctx, api.RegisterRequest{
		Name:     creds.Name,
		Email:    creds.Email,
		Password: creds.Password,
		Role:     role,
	})
	if err != nil {
		m.log.Error(ctx, "registration failed", "email", creds.Email, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	user, err := m.establishSession(ctx, token, creds.Name)
	if err != nil {
		return nil, err
	}

	m.log.Info(ctx, "account registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// establishSession persists the token, derives a provisional record from its
// claims, merges in the remote profile on a best-effort basis, and persists
// the final record. fallbackName, when set, replaces the claim-derived name
// before the profile merge.
func (m *Manager) establishSession(ctx context.Context, token, fallbackName string) (*model.User, error) {
	if err := m.store.SaveToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}
	m.client.SetAuthToken(token)

	user, err := m.resolver.Decode(ctx, token)
	if err != nil {
		return nil, err
	}
	if fallbackName != "" {
		user.Name = fallbackName
	}

	profile, err := m.client.Profile(ctx)
	if err != nil {
		m.log.Warn(ctx, "could not fetch user profile", "error", err)
	} else if profile.Name != "" {
		user.Name = profile.Name
	}

	m.store.SaveIdentity(ctx, user)
	return user, nil
}

// Logout ends the session. It never fails observably: the remote
// notification is best-effort, and local teardown always runs. Only the
// session keys are removed; data like reading progress stays.
func (m *Manager) Logout(ctx context.Context) {
	token, err := m.store.Token(ctx)
	if err != nil {
		m.log.Warn(ctx, "cannot read stored token", "error", err)
	}
	if token != "" {
		if err := m.client.Logout(ctx); err != nil {
			m.log.Warn(ctx, "logout notification failed", "error", err)
		}
	}

	if err := m.store.ClearSession(ctx); err != nil {
		m.log.Error(ctx, "failed to clear session state", "error", err)
	}
	m.client.ClearAuthToken()
	m.log.Info(ctx, "session closed")
}

// IsAuthenticated reports whether a token is present and its expiry claim is
// strictly in the future. A token that fails to decode counts as absent.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	token, err := m.store.Token(ctx)
	if err != nil {
		m.log.Warn(ctx, "cannot read stored token", "error", err)
		return false
	}
	if token == "" {
		return false
	}
	return m.resolver.ValidAt(token, m.now())
}

// CurrentUser returns the persisted user record. When the record is missing
// but a valid token is present, the record is rebuilt from the token and
// re-persisted, so a resumed session self-heals. Returns nil when no session
// exists.
func (m *Manager) CurrentUser(ctx context.Context) *model.User {
	user, err := m.store.Identity(ctx)
	if err != nil {
		m.log.Warn(ctx, "cannot read stored user record", "error", err)
		return nil
	}
	if user != nil {
		return user
	}

	token, err := m.store.Token(ctx)
	if err != nil || token == "" {
		return nil
	}
	if !m.resolver.ValidAt(token, m.now()) {
		return nil
	}

	user, err = m.resolver.Decode(ctx, token)
	if err != nil {
		m.log.Warn(ctx, "stored token does not decode", "error", err)
		return nil
	}
	m.store.SaveIdentity(ctx, user)
	return user
}
