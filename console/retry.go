// Package console holds the per-resource view-state controllers: the
// pagination cursor, filters and loading flag each page keeps, the
// stale-response discard rule, and the single retry-after-refresh
// policy shared by every resource call.
package console

import (
	"context"

	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
)

// Authenticator is the slice of the auth manager the controllers need.
type Authenticator interface {
	Refresh(ctx context.Context) (string, error)
}

// Notifier is where action outcomes surface. Controllers never mutate
// the notification queue directly beyond posting through it.
type Notifier interface {
	Post(category notify.Category, title, body string) string
}

// withAuthRetry runs fn and, on an Unauthorized outcome, refreshes the
// session and retries exactly once. The gateway reads the token per
// request, so the retried call automatically carries the rotated token.
// A failed refresh (or a retry that fails again) propagates; the auth
// manager has already logged out by then and its subscribers handle the
// redirect to login. Never loops.
func withAuthRetry(ctx context.Context, authn Authenticator, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if !gateway.IsUnauthorized(err) {
		return err
	}
	if _, refreshErr := authn.Refresh(ctx); refreshErr != nil {
		return refreshErr
	}
	return fn(ctx)
}
