package console

import (
	"context"
	"sync"

	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/notify"
)

// ConfigController drives the global-configuration page.
type ConfigController struct {
	api      *gateway.Client
	authn    Authenticator
	notifier Notifier

	lock    sync.Mutex
	current *gateway.PlatformConfig
}

func NewConfigController(api *gateway.Client, authn Authenticator, notifier Notifier) *ConfigController {
	return &ConfigController{
		api:      api,
		authn:    authn,
		notifier: notifier,
	}
}

func (c *ConfigController) Load(ctx context.Context) error {
	var cfg *gateway.PlatformConfig
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		var loadErr error
		cfg, loadErr = c.api.Config(ctx)
		return loadErr
	})
	if err != nil {
		return err
	}

	c.lock.Lock()
	c.current = cfg
	c.lock.Unlock()
	return nil
}

func (c *ConfigController) Current() *gateway.PlatformConfig {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.current == nil {
		return nil
	}
	snapshot := *c.current
	return &snapshot
}

// Update applies a partial config change and refetches on the next
// Load; the local copy is patched optimistically.
func (c *ConfigController) Update(ctx context.Context, updates map[string]any) error {
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		return c.api.UpdateConfig(ctx, updates)
	})
	if err != nil {
		c.notifier.Post(notify.Warning, "Config update failed", actionFailureBody(err))
		return err
	}

	c.notifier.Post(notify.Success, "Configuration saved", "Platform configuration updated.")
	return nil
}

// DashboardController aggregates the landing-page statistics, the SOS
// alert feed and the backend health report.
type DashboardController struct {
	api      *gateway.Client
	authn    Authenticator
	sosPager *Pager[gateway.SOSAlert]

	lock   sync.Mutex
	stats  *gateway.DashboardStats
	health *gateway.SystemHealth
}

func NewDashboardController(api *gateway.Client, authn Authenticator) *DashboardController {
	c := &DashboardController{
		api:   api,
		authn: authn,
	}
	c.sosPager = NewPager(authn, c.fetchSOS, DefaultPageSize)
	return c
}

func (c *DashboardController) fetchSOS(ctx context.Context, page, limit int) (*gateway.Page[gateway.SOSAlert], error) {
	return c.api.SOSAlerts(ctx, page, limit)
}

func (c *DashboardController) SOSPager() *Pager[gateway.SOSAlert] {
	return c.sosPager
}

func (c *DashboardController) Load(ctx context.Context) error {
	var stats *gateway.DashboardStats
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		var statsErr error
		stats, statsErr = c.api.Dashboard(ctx)
		return statsErr
	})
	if err != nil {
		return err
	}

	c.lock.Lock()
	c.stats = stats
	c.lock.Unlock()
	return nil
}

func (c *DashboardController) LoadHealth(ctx context.Context) error {
	var health *gateway.SystemHealth
	err := withAuthRetry(ctx, c.authn, func(ctx context.Context) error {
		var healthErr error
		health, healthErr = c.api.Health(ctx)
		return healthErr
	})
	if err != nil {
		return err
	}

	c.lock.Lock()
	c.health = health
	c.lock.Unlock()
	return nil
}

func (c *DashboardController) Stats() *gateway.DashboardStats {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.stats == nil {
		return nil
	}
	snapshot := *c.stats
	return &snapshot
}

func (c *DashboardController) Health() *gateway.SystemHealth {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.health == nil {
		return nil
	}
	snapshot := *c.health
	return &snapshot
}
