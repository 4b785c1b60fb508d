// Package auth owns the admin session lifecycle. The Manager is the
// single source of truth for "who is logged in and with what token" and
// the only component allowed to mutate the session.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/addisride/admin-console/credstore"
	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// State is the manager's position in the session lifecycle:
// Unauthenticated -> Authenticating -> Authenticated -> {Refreshing ->
// Authenticated | Unauthenticated}. Logout moves to Unauthenticated from
// anywhere.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// API is the slice of the resource gateway the manager needs for the
// auth endpoints.
type API interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResult, error)
	RefreshSession(ctx context.Context, refreshToken string) (*gateway.TokenPair, error)
}

// Manager owns the Session and mirrors every change into the credential
// store.
type Manager struct {
	api    API
	store  credstore.Store
	logger zerolog.Logger
	now    func() time.Time

	lock    sync.RWMutex
	state   State
	current *session.Session
	// epoch increments on every logout. A refresh that resolves against
	// an older epoch is discarded, so a completed refresh can never
	// resurrect a session the operator already ended.
	epoch uint64

	refreshGroup singleflight.Group

	subscriberLock sync.Mutex
	subscribers    []func(State)
}

type ManagerOption func(*Manager)

// WithNowFunc sets the time source (primarily for testing).
func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger sets the lifecycle logger.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New creates a Manager and synchronously hydrates it from the
// credential store, so the session state is settled before any
// protected surface renders. An absent or corrupt stored session leaves
// the manager Unauthenticated.
func New(api API, store credstore.Store, options ...ManagerOption) (*Manager, error) {
	if api == nil {
		return nil, errors.New("[auth.New] api is required")
	}
	if store == nil {
		return nil, errors.New("[auth.New] store is required")
	}

	m := &Manager{
		api:    api,
		store:  store,
		logger: zerolog.Nop(),
		now:    time.Now,
		state:  Unauthenticated,
	}
	for _, opt := range options {
		opt(m)
	}

	if stored, err := store.Load(); err == nil && stored.Valid() {
		m.current = stored
		m.state = Authenticated
		m.logger.Info().Str("admin", stored.Identity.DisplayName).Msg("session restored from credential store")
	}

	return m, nil
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state
}

// Session returns a copy of the current session, or nil when logged out.
func (m *Manager) Session() *session.Session {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.current.Clone()
}

// Token returns the current access token, or "" when logged out. It
// satisfies gateway.TokenProvider.
func (m *Manager) Token() string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.AccessToken
}

// Subscribe registers a listener for state transitions. Listeners run
// synchronously on the goroutine driving the transition and must not
// call back into the manager's mutating operations.
func (m *Manager) Subscribe(fn func(State)) {
	m.subscriberLock.Lock()
	defer m.subscriberLock.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) notify(state State) {
	m.subscriberLock.Lock()
	subscribers := make([]func(State), len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.subscriberLock.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
}

func (m *Manager) setState(state State) {
	m.lock.Lock()
	m.state = state
	m.lock.Unlock()
	m.notify(state)
}

// Login exchanges credentials for a session. Rejected credentials are a
// normal outcome and return (false, nil); only transport, server and
// validation failures return an error.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (bool, error) {
	m.setState(Authenticating)

	result, err := m.api.Login(ctx, identifier, secret)
	if err != nil {
		// A failed login over an existing session leaves that session
		// intact; state and tokens must agree.
		m.lock.Lock()
		if m.current != nil {
			m.state = Authenticated
		} else {
			m.state = Unauthenticated
		}
		restored := m.state
		m.lock.Unlock()
		m.notify(restored)

		if errors.Is(err, gateway.ErrUnauthorized) || errors.Is(err, gateway.ErrForbidden) {
			m.logger.Info().Str("identifier", identifier).Msg("login rejected")
			return false, nil
		}
		return false, errors.Wrap(err, "[Manager.Login] login request")
	}

	newSession := &session.Session{
		Identity: session.Identity{
			ID:          result.User.ID,
			DisplayName: result.User.FirstName + " " + result.User.LastName,
			Role:        "admin",
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		CreatedAt:    m.now(),
	}

	m.lock.Lock()
	m.current = newSession
	m.state = Authenticated
	m.lock.Unlock()

	if err := m.store.Save(newSession); err != nil {
		m.logger.Warn().Err(err).Msg("failed to persist session")
	}

	m.logger.Info().Str("admin", newSession.Identity.DisplayName).Msg("logged in")
	m.notify(Authenticated)
	return true, nil
}

// Logout ends the session, clears the credential store and signals
// subscribers so dependents (the realtime channel) tear down. Safe to
// call when already logged out.
func (m *Manager) Logout() {
	m.lock.Lock()
	if m.state == Unauthenticated && m.current == nil {
		m.lock.Unlock()
		return
	}
	m.current = nil
	m.state = Unauthenticated
	m.epoch++
	m.lock.Unlock()

	if err := m.store.Clear(); err != nil {
		m.logger.Warn().Err(err).Msg("failed to clear credential store")
	}

	m.logger.Info().Msg("logged out")
	m.notify(Unauthenticated)
}

// Refresh rotates the token pair using the stored refresh token and
// returns the new access token. Concurrent callers are coalesced onto a
// single network call and all observe the identical outcome. Any
// refresh failure ends the session: the caller receives
// SessionExpiredErr and the manager is logged out.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	m.lock.RLock()
	current := m.current
	epoch := m.epoch
	m.lock.RUnlock()

	if !current.Valid() {
		return "", NotAuthenticatedErr
	}

	token, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx, current.RefreshToken, epoch)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (m *Manager) doRefresh(ctx context.Context, refreshToken string, epoch uint64) (string, error) {
	m.lock.Lock()
	if m.epoch != epoch || m.current == nil {
		m.lock.Unlock()
		return "", SessionExpiredErr
	}
	if m.current.RefreshToken != refreshToken {
		// The pair was rotated by a flight that completed between this
		// caller sampling the session and reaching here. Replaying the
		// old refresh token would get the healthy session revoked, so
		// hand back the already-rotated access token instead.
		access := m.current.AccessToken
		m.lock.Unlock()
		return access, nil
	}
	m.state = Refreshing
	m.lock.Unlock()
	m.notify(Refreshing)

	pair, err := m.api.RefreshSession(ctx, refreshToken)

	m.lock.Lock()
	if m.epoch != epoch || m.current == nil {
		// Logged out while the refresh was in flight. Logout wins:
		// whatever the server answered is discarded.
		m.lock.Unlock()
		return "", SessionExpiredErr
	}

	if err != nil {
		m.lock.Unlock()
		m.logger.Warn().Err(err).Msg("token refresh failed, ending session")
		m.Logout()
		return "", errors.Wrap(SessionExpiredErr, err.Error())
	}

	// Both tokens rotate together; there is never a state where a new
	// access token is paired with the old refresh token.
	m.current = m.current.WithTokens(pair.AccessToken, pair.RefreshToken)
	m.state = Authenticated
	rotated := m.current
	m.lock.Unlock()

	if err := m.store.Save(rotated); err != nil {
		m.logger.Warn().Err(err).Msg("failed to persist refreshed session")
	}

	m.logger.Debug().Msg("token pair rotated")
	m.notify(Authenticated)
	return pair.AccessToken, nil
}
