package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
)

// ReportsController drives the abuse-report triage page.
type ReportsController struct {
	api      *gateway.Client
	authn    Authenticator
	notifier Notifier
	pager    *Pager[gateway.Report]

	filterLock sync.Mutex
	resolved   *bool
}

func NewReportsController(api *gateway.Client, authn Authenticator, notifier Notifier) *ReportsController {
	c := &ReportsController{
		api:      api,
		authn:    authn,
		notifier: notifier,
	}
	c.pager = NewPager(authn, c.fetch, DefaultPageSize)
	return c
}

func (c *ReportsController) fetch(ctx context.Context, page, limit int) (*gateway.Page[gateway.Report], error) {
	c.filterLock.Lock()
	resolved := c.resolved
	c.filterLock.Unlock()
	return c.api.Reports(ctx, page, limit, resolved)
}

func (c *ReportsController) Pager() *Pager[gateway.Report] {
	return c.pager
}

// SetResolvedFilter narrows the listing to resolved or open reports;
// nil shows all.
func (c *ReportsController) SetResolvedFilter(resolved *bool) {
	c.filterLock.Lock()
	c.resolved = resolved
	c.filterLock.Unlock()
	c.pager.Invalidate()
}

// Resolve marks a report handled.
func (c *ReportsController) Resolve(ctx context.Context, reportID int64) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		_, resolveErr := c.api.ResolveReport(ctx, reportID)
		return resolveErr
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Resolve failed", actionFailureBody(err))
		return err
	}

	c.pager.Patch(func(reports []gateway.Report) {
		for i := range reports {
			if reports[i].ID == reportID {
				reports[i].Resolved = true
			}
		}
	})
	c.notifier.Post(notify.Success, "Report resolved", fmt.Sprintf("Report #%d marked resolved.", reportID))
	return nil
}

// Delete removes a report outright.
func (c *ReportsController) Delete(ctx context.Context, reportID int64) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		return c.api.DeleteReport(ctx, reportID)
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Delete failed", actionFailureBody(err))
		return err
	}

	c.pager.Remove(func(r gateway.Report) bool { return r.ID == reportID })
	c.notifier.Post(notify.Success, "Report deleted", fmt.Sprintf("Report #%d deleted.", reportID))
	return nil
}
