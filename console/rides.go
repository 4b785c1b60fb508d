package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
)

// RidesController drives the ride-monitoring page: paged listing with a
// status filter, the operator cancel action, and the in-ride chat log.
type RidesController struct {
	api      *gateway.Client
	authn    Authenticator
	notifier Notifier
	pager    *Pager[gateway.Ride]

	filterLock sync.Mutex
	status     string
}

func NewRidesController(api *gateway.Client, authn Authenticator, notifier Notifier) *RidesController {
	c := &RidesController{
		api:      api,
		authn:    authn,
		notifier: notifier,
	}
	c.pager = NewPager(authn, c.fetch, DefaultPageSize)
	return c
}

func (c *RidesController) fetch(ctx context.Context, page, limit int) (*gateway.Page[gateway.Ride], error) {
	c.filterLock.Lock()
	status := c.status
	c.filterLock.Unlock()
	return c.api.Rides(ctx, page, limit, status)
}

func (c *RidesController) Pager() *Pager[gateway.Ride] {
	return c.pager
}

// SetStatusFilter narrows the listing to one ride status ("" for all).
func (c *RidesController) SetStatusFilter(status string) {
	c.filterLock.Lock()
	c.status = status
	c.filterLock.Unlock()
	c.pager.Invalidate()
}

// Cancel cancels a ride on the operator's behalf. The row is patched to
// cancelled locally; the refund count from the backend is surfaced in
// the success notice.
func (c *RidesController) Cancel(ctx context.Context, rideID int64) error {
	var refunds int
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		var cancelErr error
		refunds, cancelErr = c.api.CancelRide(ctx, rideID)
		return cancelErr
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Cancel failed", actionFailureBody(err))
		return err
	}

	c.pager.Patch(func(rides []gateway.Ride) {
		for i := range rides {
			if rides[i].ID == rideID {
				rides[i].Status = "cancelled"
			}
		}
	})
	c.notifier.Post(notify.Success, "Ride cancelled",
		fmt.Sprintf("Ride #%d cancelled, %d refunds processed.", rideID, refunds))
	return nil
}

// Messages fetches the chat log for a ride.
func (c *RidesController) Messages(ctx context.Context, rideID int64) ([]gateway.RideMessage, error) {
	var messages []gateway.RideMessage
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		var msgErr error
		messages, msgErr = c.api.RideMessages(ctx, rideID)
		return msgErr
	})
	return messages, err
}
