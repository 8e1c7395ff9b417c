package auth

import (
	"context"
	stderrors "errors"

	"github.com/krcglobal/gbms/internal/errors"
	"github.com/krcglobal/gbms/internal/log"
	"github.com/krcglobal/gbms/internal/session"
)

// Manager drives login, logout and route guarding over a session.
type Manager struct {
	session   session.Session
	verifier  Verifier
	navigator Navigator
	validate  TokenValidator
	revoker   Revoker
	logger    *log.Logger
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithNavigator sets the page navigator. Without one navigation is a no-op.
func WithNavigator(n Navigator) ManagerOption {
	return func(m *Manager) {
		if n != nil {
			m.navigator = n
		}
	}
}

// WithTokenValidator replaces the NonEmpty liveness check.
func WithTokenValidator(v TokenValidator) ManagerOption {
	return func(m *Manager) {
		if v != nil {
			m.validate = v
		}
	}
}

// WithRevoker sets the remote logout called before the session is cleared.
func WithRevoker(r Revoker) ManagerOption {
	return func(m *Manager) {
		m.revoker = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = log.OrDefault(l)
	}
}

// NewManager creates a manager over sess that checks logins with verifier.
func NewManager(sess session.Session, verifier Verifier, opts ...ManagerOption) *Manager {
	m := &Manager{
		session:   sess,
		verifier:  verifier,
		navigator: noopNavigator{},
		validate:  NonEmpty,
		logger:    log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsAuthenticated reports whether the session holds a live token.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	token, ok := m.session.Token()
	if !ok {
		return false
	}
	if !m.validate(token) {
		m.logger.DebugContext(ctx, "stored token rejected by validator")
		return false
	}
	return true
}

// State returns the current login state.
func (m *Manager) State(ctx context.Context) State {
	if m.IsAuthenticated(ctx) {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// RequireAuth guards a protected page. When unauthenticated it navigates
// to the entry page and returns false.
func (m *Manager) RequireAuth(ctx context.Context) bool {
	if m.IsAuthenticated(ctx) {
		return true
	}
	m.navigator.Navigate(EntryPage)
	return false
}

// CheckExistingSession is the entry page check: an authenticated user is
// sent to the home page.
func (m *Manager) CheckExistingSession(ctx context.Context) bool {
	if !m.IsAuthenticated(ctx) {
		return false
	}
	m.navigator.Navigate(HomePage)
	return true
}

// Login verifies the credentials and stores the session on success.
//
// Rejected or missing credentials produce an unsuccessful result and a nil
// error; nothing is stored. A non-nil error means the verifier or the
// session store failed.
func (m *Manager) Login(ctx context.Context, loginName, secret string) (*LoginResult, error) {
	if loginName == "" || secret == "" {
		return &LoginResult{Message: MessageMissingCredentials}, nil
	}

	user, token, err := m.verifier.Verify(ctx, loginName, secret)
	if err != nil {
		if stderrors.Is(err, ErrInvalidCredentials) {
			m.logger.InfoContext(ctx, "login rejected", "login", loginName)
			return &LoginResult{Message: loginMessage(err)}, nil
		}
		return nil, err
	}
	if user == nil || token == "" {
		return nil, errors.New(errors.ErrCodeAuthInvalidCredentials, "verifier returned no session")
	}

	if err := m.session.Save(token, user); err != nil {
		m.logger.LogError(ctx, "failed to save session", err)
		return nil, err
	}

	m.logger.InfoContext(ctx, "login succeeded", "login", loginName, "role", user.Role)
	return &LoginResult{Success: true, User: user, Token: token}, nil
}

// Logout ends the session and navigates to the entry page. Remote revoke
// and storage failures are logged and do not stop the local logout, so
// logging out always succeeds.
func (m *Manager) Logout(ctx context.Context) error {
	if _, ok := m.session.Token(); ok && m.revoker != nil {
		if err := m.revoker.Logout(ctx); err != nil {
			m.logger.WithError(err).WarnContext(ctx, "remote logout failed")
		}
	}

	if err := m.session.Clear(); err != nil {
		m.logger.LogError(ctx, "failed to clear session", err)
	}
	m.navigator.Navigate(EntryPage)
	return nil
}

// HandleUnauthorized reacts to a 401 from the backend. It never calls the
// backend, so it is safe as the API client's unauthorized hook.
func (m *Manager) HandleUnauthorized(ctx context.Context) {
	if err := m.session.Clear(); err != nil {
		m.logger.LogError(ctx, "failed to clear session after 401", err)
	}
	m.logger.InfoContext(ctx, "session expired")
	m.navigator.Navigate(EntryPage)
}

// CurrentUser returns the stored user.
func (m *Manager) CurrentUser(ctx context.Context) (*session.User, bool) {
	return m.session.User()
}

// HasRole reports whether the stored user has one of roles.
func (m *Manager) HasRole(ctx context.Context, roles ...string) bool {
	user, ok := m.CurrentUser(ctx)
	return ok && user.HasRole(roles...)
}

// RequireRole returns nil when the user is authenticated and has one of
// roles.
func (m *Manager) RequireRole(ctx context.Context, roles ...string) error {
	if !m.IsAuthenticated(ctx) {
		return errors.NewNotAuthenticatedError()
	}
	if !m.HasRole(ctx, roles...) {
		return ErrForbidden
	}
	return nil
}
