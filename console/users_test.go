package console_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/addisride/admin-console/console"
	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
	"github.com/stretchr/testify/require"
)

func newUsersController(t *testing.T, handler http.Handler) (*console.UsersController, *notify.Center) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gateway.NewClient(server.URL, func() string { return "token" })
	require.NoError(t, err)

	// A long TTL keeps success toasts alive long enough to assert on.
	center := notify.NewCenter(notify.WithTTL(time.Minute))
	return console.NewUsersController(client, noRefresh{}, center), center
}

func usersHandler(banStatus int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]any{
			"results": []gateway.User{
				{ID: 1, FirstName: "Abel", Banned: false},
				{ID: 2, FirstName: "Liya", Banned: false},
			},
			"pagination": map[string]int{"page": 1, "limit": 10, "total": 2},
		})
	})
	mux.HandleFunc("/admin/users/2/ban", func(w http.ResponseWriter, r *http.Request) {
		if banStatus != http.StatusOK {
			writeStatus(w, banStatus, map[string]string{"error": "cannot ban this user"})
			return
		}
		writeStatus(w, http.StatusOK, map[string]any{
			"message": "user banned",
			"user":    gateway.User{ID: 2, FirstName: "Liya", Banned: true},
		})
	})
	return mux
}

func TestBanAppliesOptimisticPatch(t *testing.T) {
	users, center := newUsersController(t, usersHandler(http.StatusOK))

	require.NoError(t, users.Pager().Load(context.Background()))
	require.NoError(t, users.Ban(context.Background(), 2))

	// The ban shows locally before any refetch; the other row is
	// untouched.
	items := users.Pager().Current().Items
	require.False(t, items[0].Banned)
	require.True(t, items[1].Banned)

	// Success is surfaced as a toast.
	queue := center.List()
	require.Len(t, queue, 1)
	require.Equal(t, notify.Success, queue[0].Category)
	require.Equal(t, "User banned", queue[0].Title)
}

func TestFailedBanIsNeverSilent(t *testing.T) {
	users, center := newUsersController(t, usersHandler(http.StatusUnprocessableEntity))

	require.NoError(t, users.Pager().Load(context.Background()))
	require.Error(t, users.Ban(context.Background(), 2))

	// No optimistic patch on failure.
	require.False(t, users.Pager().Current().Items[1].Banned)

	queue := center.List()
	require.Len(t, queue, 1)
	require.Equal(t, notify.Warning, queue[0].Category)
	require.Equal(t, "Ban failed", queue[0].Title)
	// Validation details pass through to the notice.
	require.Contains(t, queue[0].Body, "cannot ban this user")
}

func TestFilterChangeInvalidatesInflightFetch(t *testing.T) {
	users, _ := newUsersController(t, usersHandler(http.StatusOK))

	require.NoError(t, users.Pager().Load(context.Background()))
	users.SetFilter(gateway.UserFilter{Search: "liya"})

	// The old page is still displayed until the next Load completes;
	// filter changes alone never clobber state.
	require.Len(t, users.Pager().Current().Items, 2)
}
