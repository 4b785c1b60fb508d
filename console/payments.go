package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
)

// PaymentsController drives the escrow/payout page: paged listing with
// filters, payout release, refunds and the expired-payment sweep.
type PaymentsController struct {
	api      *gateway.Client
	authn    Authenticator
	notifier Notifier
	pager    *Pager[gateway.Payment]

	filterLock sync.Mutex
	filter     gateway.PaymentFilter
}

func NewPaymentsController(api *gateway.Client, authn Authenticator, notifier Notifier) *PaymentsController {
	c := &PaymentsController{
		api:      api,
		authn:    authn,
		notifier: notifier,
	}
	c.pager = NewPager(authn, c.fetch, DefaultPageSize)
	return c
}

func (c *PaymentsController) fetch(ctx context.Context, page, limit int) (*gateway.Page[gateway.Payment], error) {
	c.filterLock.Lock()
	filter := c.filter
	c.filterLock.Unlock()
	return c.api.Payments(ctx, page, limit, filter)
}

func (c *PaymentsController) Pager() *Pager[gateway.Payment] {
	return c.pager
}

func (c *PaymentsController) SetFilter(filter gateway.PaymentFilter) {
	c.filterLock.Lock()
	c.filter = filter
	c.filterLock.Unlock()
	c.pager.Invalidate()
}

// Release releases the escrowed payout for a completed ride.
func (c *PaymentsController) Release(ctx context.Context, rideID int64) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		return c.api.ReleasePayment(ctx, rideID)
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Release failed", actionFailureBody(err))
		return err
	}

	c.pager.Patch(func(payments []gateway.Payment) {
		for i := range payments {
			if payments[i].RideID == rideID {
				payments[i].Status = "released"
			}
		}
	})
	c.notifier.Post(notify.Success, "Payment released", fmt.Sprintf("Payout for ride #%d released.", rideID))
	return nil
}

// Refund refunds a payment.
func (c *PaymentsController) Refund(ctx context.Context, paymentID int64) error {
	var result *gateway.RefundResult
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		var refundErr error
		result, refundErr = c.api.RefundPayment(ctx, paymentID)
		return refundErr
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Refund failed", actionFailureBody(err))
		return err
	}

	c.pager.Patch(func(payments []gateway.Payment) {
		for i := range payments {
			if payments[i].ID == paymentID {
				payments[i].Status = "refunded"
			}
		}
	})
	c.notifier.Post(notify.Success, "Payment refunded",
		fmt.Sprintf("Refunded %.2f (ref %s).", result.RefundAmount, result.PaymentReference))
	return nil
}

// RunCleanup triggers the backend's expired-payment sweep.
func (c *PaymentsController) RunCleanup(ctx context.Context) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		return c.api.RunPaymentCleanup(ctx)
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Cleanup failed", actionFailureBody(err))
		return err
	}
	c.notifier.Post(notify.Success, "Cleanup complete", "Expired payments have been swept.")
	return nil
}
