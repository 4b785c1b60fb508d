package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
)

// CompaniesController drives the partner-company page. The companies
// endpoint is unpaged, so the controller keeps a plain slice, guarded by
// the same generation rule as the pagers.
type CompaniesController struct {
	api      *gateway.Client
	authn    Authenticator
	notifier Notifier

	lock       sync.Mutex
	companies  []gateway.Company
	loading    bool
	generation uint64
}

func NewCompaniesController(api *gateway.Client, authn Authenticator, notifier Notifier) *CompaniesController {
	return &CompaniesController{
		api:      api,
		authn:    authn,
		notifier: notifier,
	}
}

// Load replaces the company list wholesale; superseded fetches are
// discarded.
func (c *CompaniesController) Load(ctx context.Context) error {
	c.lock.Lock()
	c.generation++
	generation := c.generation
	c.loading = true
	c.lock.Unlock()

	var companies []gateway.Company
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		var fetchErr error
		companies, fetchErr = c.api.Companies(ctx)
		return fetchErr
	})

	c.lock.Lock()
	defer c.lock.Unlock()
	if generation != c.generation {
		return nil
	}
	c.loading = false
	if err != nil {
		return err
	}
	c.companies = companies
	return nil
}

// Companies returns a snapshot of the current list.
func (c *CompaniesController) Companies() []gateway.Company {
	c.lock.Lock()
	defer c.lock.Unlock()
	snapshot := make([]gateway.Company, len(c.companies))
	copy(snapshot, c.companies)
	return snapshot
}

// Create registers a new partner company and appends it locally.
func (c *CompaniesController) Create(ctx context.Context, name string) error {
	var company *gateway.Company
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		var createErr error
		company, createErr = c.api.CreateCompany(ctx, name)
		return createErr
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Create failed", actionFailureBody(err))
		return err
	}

	c.lock.Lock()
	c.companies = append(c.companies, *company)
	c.lock.Unlock()
	c.notifier.Post(notify.Success, "Company created", fmt.Sprintf("Partner company %q registered.", name))
	return nil
}

// Delete removes a partner company.
func (c *CompaniesController) Delete(ctx context.Context, companyID int64) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		return c.api.DeleteCompany(ctx, companyID)
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Delete failed", actionFailureBody(err))
		return err
	}

	c.lock.Lock()
	kept := c.companies[:0]
	for _, company := range c.companies {
		if company.ID != companyID {
			kept = append(kept, company)
		}
	}
	c.companies = kept
	c.lock.Unlock()
	c.notifier.Post(notify.Success, "Company deleted", fmt.Sprintf("Partner company #%d removed.", companyID))
	return nil
}
