package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
)

// UsersController drives the user-management page: paged listing with
// search/banned filters, plus the ban, unban and admin-toggle actions.
type UsersController struct {
	api      *gateway.Client
	authn    Authenticator
	notifier Notifier
	pager    *Pager[gateway.User]

	filterLock sync.Mutex
	filter     gateway.UserFilter
}

func NewUsersController(api *gateway.Client, authn Authenticator, notifier Notifier) *UsersController {
	c := &UsersController{
		api:      api,
		authn:    authn,
		notifier: notifier,
	}
	c.pager = NewPager(authn, c.fetch, DefaultPageSize)
	return c
}

func (c *UsersController) fetch(ctx context.Context, page, limit int) (*gateway.Page[gateway.User], error) {
	c.filterLock.Lock()
	filter := c.filter
	c.filterLock.Unlock()
	return c.api.Users(ctx, page, limit, filter)
}

func (c *UsersController) Pager() *Pager[gateway.User] {
	return c.pager
}

// SetFilter replaces the search/banned filter and invalidates any fetch
// still in flight for the old filter.
func (c *UsersController) SetFilter(filter gateway.UserFilter) {
	c.filterLock.Lock()
	c.filter = filter
	c.filterLock.Unlock()
	c.pager.Invalidate()
}

// Ban bans a user. On success the row is patched locally so the table
// reflects the ban before the next refetch.
func (c *UsersController) Ban(ctx context.Context, userID int64) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		_, banErr := c.api.BanUser(ctx, userID)
		return banErr
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Ban failed", actionFailureBody(err))
		return err
	}

	c.pager.Patch(func(users []gateway.User) {
		for i := range users {
			if users[i].ID == userID {
				users[i].Banned = true
			}
		}
	})
	c.notifier.Post(notify.Success, "User banned", fmt.Sprintf("User #%d has been banned.", userID))
	return nil
}

// Unban lifts a user's ban.
func (c *UsersController) Unban(ctx context.Context, userID int64) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		_, unbanErr := c.api.UnbanUser(ctx, userID)
		return unbanErr
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Unban failed", actionFailureBody(err))
		return err
	}

	c.pager.Patch(func(users []gateway.User) {
		for i := range users {
			if users[i].ID == userID {
				users[i].Banned = false
			}
		}
	})
	c.notifier.Post(notify.Success, "User unbanned", fmt.Sprintf("User #%d has been unbanned.", userID))
	return nil
}

// SetAdmin grants or revokes admin status.
func (c *UsersController) SetAdmin(ctx context.Context, userID int64, isAdmin bool) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		return c.api.SetAdmin(ctx, userID, isAdmin)
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Admin change failed", actionFailureBody(err))
		return err
	}

	c.pager.Patch(func(users []gateway.User) {
		for i := range users {
			if users[i].ID == userID {
				users[i].IsAdmin = isAdmin
			}
		}
	})
	c.notifier.Post(notify.Success, "Admin status updated", fmt.Sprintf("User #%d admin=%t.", userID, isAdmin))
	return nil
}

// actionFailureBody renders a failure for the generic action-failed
// toast. Validation messages pass through; everything else gets a
// transient-failure wording.
func actionFailureBody(err error) string {
	var validationErr *gateway.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return "The action could not be completed. Please try again."
}
