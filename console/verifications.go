package console

import (
	"context"
	"fmt"

	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
)

// VerificationsController drives the identity-verification review queue.
type VerificationsController struct {
	api      *gateway.Client
	authn    Authenticator
	notifier Notifier
	pager    *Pager[gateway.PendingVerification]
}

func NewVerificationsController(api *gateway.Client, authn Authenticator, notifier Notifier) *VerificationsController {
	c := &VerificationsController{
		api:      api,
		authn:    authn,
		notifier: notifier,
	}
	c.pager = NewPager(authn, c.fetch, DefaultPageSize)
	return c
}

func (c *VerificationsController) fetch(ctx context.Context, page, limit int) (*gateway.Page[gateway.PendingVerification], error) {
	return c.api.PendingVerifications(ctx, page, limit)
}

func (c *VerificationsController) Pager() *Pager[gateway.PendingVerification] {
	return c.pager
}

// Approve marks a submission verified; the card leaves the queue
// immediately.
func (c *VerificationsController) Approve(ctx context.Context, userID int64) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		_, verifyErr := c.api.ApproveVerification(ctx, userID)
		return verifyErr
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Verification failed", actionFailureBody(err))
		return err
	}

	c.pager.Remove(func(v gateway.PendingVerification) bool { return v.ID == userID })
	c.notifier.Post(notify.Success, "Identity verified", fmt.Sprintf("User #%d is now verified.", userID))
	return nil
}

// Reject declines a submission; the card leaves the queue immediately.
func (c *VerificationsController) Reject(ctx context.Context, userID int64) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		_, rejectErr := c.api.RejectVerification(ctx, userID)
		return rejectErr
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Rejection failed", actionFailureBody(err))
		return err
	}

	c.pager.Remove(func(v gateway.PendingVerification) bool { return v.ID == userID })
	c.notifier.Post(notify.Success, "Verification rejected", fmt.Sprintf("Submission from user #%d was rejected.", userID))
	return nil
}
