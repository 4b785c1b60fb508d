package auth_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/addisride/admin-console/auth"
	"github.com/addisride/admin-console/credstore/storefakes"
	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func timeout() time.Duration { return 2 * time.Second }
func tick() time.Duration    { return 5 * time.Millisecond }

// fakeAPI implements auth.API with scriptable responses.
type fakeAPI struct {
	loginResult *gateway.LoginResult
	loginErr    error

	refreshPair  *gateway.TokenPair
	refreshErr   error
	refreshCalls atomic.Int64
	// refreshGate, when set, blocks RefreshSession until released.
	refreshGate chan struct{}
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAPI) RefreshSession(ctx context.Context, refreshToken string) (*gateway.TokenPair, error) {
	f.refreshCalls.Add(1)
	if f.refreshGate != nil {
		<-f.refreshGate
	}
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshPair, nil
}

func loggedInManager(t *testing.T, api auth.API) (*auth.Manager, *storefakes.FakeStore) {
	t.Helper()

	store := storefakes.NewFakeStore()
	require.NoError(t, store.Save(&session.Session{
		Identity:     session.Identity{ID: 1, DisplayName: "Sara Tesfaye", Role: "admin"},
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))

	manager, err := auth.New(api, store)
	require.NoError(t, err)
	require.Equal(t, auth.Authenticated, manager.State())
	return manager, store
}

func TestHydrateAbsentIsUnauthenticated(t *testing.T) {
	manager, err := auth.New(&fakeAPI{}, storefakes.NewFakeStore())
	require.NoError(t, err)
	require.Equal(t, auth.Unauthenticated, manager.State())
	require.Nil(t, manager.Session())
	require.Empty(t, manager.Token())
}

func TestLoginSuccess(t *testing.T) {
	api := &fakeAPI{loginResult: &gateway.LoginResult{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         gateway.User{ID: 5, FirstName: "Hanna", LastName: "Girma"},
	}}
	store := storefakes.NewFakeStore()
	manager, err := auth.New(api, store)
	require.NoError(t, err)

	var transitions []auth.State
	manager.Subscribe(func(s auth.State) { transitions = append(transitions, s) })

	ok, err := manager.Login(context.Background(), "hanna@example.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, auth.Authenticated, manager.State())
	require.Equal(t, "access-1", manager.Token())
	require.Equal(t, "Hanna Girma", manager.Session().Identity.DisplayName)
	require.Contains(t, transitions, auth.Authenticating)
	require.Contains(t, transitions, auth.Authenticated)

	// Session persisted.
	stored, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "refresh-1", stored.RefreshToken)
}

func TestLoginInvalidCredentialsIsNotAnError(t *testing.T) {
	api := &fakeAPI{loginErr: gateway.ErrUnauthorized}
	manager, err := auth.New(api, storefakes.NewFakeStore())
	require.NoError(t, err)

	ok, err := manager.Login(context.Background(), "ops@example.com", "wrong")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, auth.Unauthenticated, manager.State())
}

func TestLoginTransportFailureIsAnError(t *testing.T) {
	api := &fakeAPI{loginErr: &gateway.NetworkError{Err: errors.New("connection refused")}}
	manager, err := auth.New(api, storefakes.NewFakeStore())
	require.NoError(t, err)

	ok, err := manager.Login(context.Background(), "ops@example.com", "secret")
	require.Error(t, err)
	require.False(t, ok)
	require.Equal(t, auth.Unauthenticated, manager.State())
}

func TestFailedLoginKeepsExistingSession(t *testing.T) {
	api := &fakeAPI{loginErr: gateway.ErrUnauthorized}
	manager, _ := loggedInManager(t, api)

	ok, err := manager.Login(context.Background(), "other@example.com", "wrong")
	require.NoError(t, err)
	require.False(t, ok)

	// The old session survives and state agrees with the tokens.
	require.Equal(t, auth.Authenticated, manager.State())
	require.Equal(t, "access-1", manager.Token())
	require.Equal(t, "Sara Tesfaye", manager.Session().Identity.DisplayName)
}

func TestLogoutIdempotent(t *testing.T) {
	manager, store := loggedInManager(t, &fakeAPI{})

	manager.Logout()
	require.Equal(t, auth.Unauthenticated, manager.State())
	require.Equal(t, 1, store.ClearCount)

	manager.Logout()
	require.Equal(t, 1, store.ClearCount)
}

func TestRefreshRotatesBothTokensTogether(t *testing.T) {
	api := &fakeAPI{refreshPair: &gateway.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}}
	manager, store := loggedInManager(t, api)

	token, err := manager.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "access-2", token)

	current := manager.Session()
	require.Equal(t, "access-2", current.AccessToken)
	require.Equal(t, "refresh-2", current.RefreshToken)

	stored, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "access-2", stored.AccessToken)
	require.Equal(t, "refresh-2", stored.RefreshToken)
}

func TestRefreshWhileLoggedOut(t *testing.T) {
	manager, err := auth.New(&fakeAPI{}, storefakes.NewFakeStore())
	require.NoError(t, err)

	_, err = manager.Refresh(context.Background())
	require.ErrorIs(t, err, auth.NotAuthenticatedErr)
}

func TestRefreshFailureLogsOut(t *testing.T) {
	api := &fakeAPI{refreshErr: gateway.ErrUnauthorized}
	manager, store := loggedInManager(t, api)

	var lastState auth.State = -1
	manager.Subscribe(func(s auth.State) { lastState = s })

	_, err := manager.Refresh(context.Background())
	require.ErrorIs(t, err, auth.SessionExpiredErr)
	require.Equal(t, auth.Unauthenticated, manager.State())
	require.Equal(t, auth.Unauthenticated, lastState)
	require.Equal(t, 1, store.ClearCount)

	stored, loadErr := store.Load()
	require.NoError(t, loadErr)
	require.Nil(t, stored)
}

func TestRefreshCoalescing(t *testing.T) {
	const callers = 12

	api := &fakeAPI{
		refreshPair: &gateway.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"},
		refreshGate: make(chan struct{}),
	}
	manager, _ := loggedInManager(t, api)

	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)

	started := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started <- struct{}{}
			tokens[i], errs[i] = manager.Refresh(context.Background())
		}(i)
	}
	for i := 0; i < callers; i++ {
		<-started
	}
	// All callers are running and the first is blocked inside the fake;
	// give the rest a moment to attach to the in-flight refresh before
	// letting it complete.
	require.Eventually(t, func() bool { return api.refreshCalls.Load() == 1 }, timeout(), tick())
	time.Sleep(50 * time.Millisecond)
	close(api.refreshGate)
	wg.Wait()

	// Exactly one network refresh, and every caller saw its result.
	require.Equal(t, int64(1), api.refreshCalls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "access-2", tokens[i])
	}
}

func TestRefreshCoalescingSharedFailure(t *testing.T) {
	api := &fakeAPI{
		refreshErr:  gateway.ErrUnauthorized,
		refreshGate: make(chan struct{}),
	}
	manager, _ := loggedInManager(t, api)

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	started := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started <- struct{}{}
			_, errs[i] = manager.Refresh(context.Background())
		}(i)
	}
	for i := 0; i < callers; i++ {
		<-started
	}
	require.Eventually(t, func() bool { return api.refreshCalls.Load() == 1 }, timeout(), tick())
	time.Sleep(50 * time.Millisecond)
	close(api.refreshGate)
	wg.Wait()

	require.Equal(t, int64(1), api.refreshCalls.Load())
	for i := 0; i < callers; i++ {
		require.ErrorIs(t, errs[i], auth.SessionExpiredErr)
	}
	require.Equal(t, auth.Unauthenticated, manager.State())
}

// rotatingAPI models a backend that revokes each refresh token the
// moment it is used: only the most recently issued token is accepted,
// anything older counts as a replay.
type rotatingAPI struct {
	lock     sync.Mutex
	serial   int
	expected string
	replays  int
}

func newRotatingAPI() *rotatingAPI {
	return &rotatingAPI{serial: 1, expected: "refresh-1"}
}

func (f *rotatingAPI) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	return nil, errors.New("not scripted")
}

func (f *rotatingAPI) RefreshSession(ctx context.Context, refreshToken string) (*gateway.TokenPair, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if refreshToken != f.expected {
		f.replays++
		return nil, gateway.ErrUnauthorized
	}
	f.serial++
	f.expected = fmt.Sprintf("refresh-%d", f.serial)
	return &gateway.TokenPair{
		AccessToken:  fmt.Sprintf("access-%d", f.serial),
		RefreshToken: f.expected,
	}, nil
}

func (f *rotatingAPI) replayCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.replays
}

func TestRefreshNeverReplaysRotatedToken(t *testing.T) {
	api := newRotatingAPI()
	manager, _ := loggedInManager(t, api)

	// A caller that sampled the pair just before another flight rotated
	// it must not put the old refresh token back on the wire; the
	// backend would treat that as a replay and revoke the session.
	const workers = 8
	const rounds = 200
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				if _, err := manager.Refresh(context.Background()); err != nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	require.Zero(t, api.replayCount())
	require.Equal(t, auth.Authenticated, manager.State())

	// The session settled on the pair the backend last issued.
	current := manager.Session()
	require.Equal(t, api.expected, current.RefreshToken)
}

func TestLogoutWinsRaceWithInflightRefresh(t *testing.T) {
	api := &fakeAPI{
		refreshPair: &gateway.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"},
		refreshGate: make(chan struct{}),
	}
	manager, store := loggedInManager(t, api)

	done := make(chan error, 1)
	go func() {
		_, err := manager.Refresh(context.Background())
		done <- err
	}()

	// Wait until the refresh call is actually in flight.
	require.Eventually(t, func() bool { return api.refreshCalls.Load() == 1 },
		timeout(), tick())

	manager.Logout()
	close(api.refreshGate)

	err := <-done
	require.ErrorIs(t, err, auth.SessionExpiredErr)

	// The successful refresh resolution must not resurrect the session.
	require.Equal(t, auth.Unauthenticated, manager.State())
	require.Nil(t, manager.Session())
	stored, loadErr := store.Load()
	require.NoError(t, loadErr)
	require.Nil(t, stored)
}
