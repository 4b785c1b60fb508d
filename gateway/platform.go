package gateway

import (
	"context"
	"net/http"
	"net/url"
)

// Config fetches the global platform configuration.
func (c *Client) Config(ctx context.Context) (*PlatformConfig, error) {
	var cfg PlatformConfig
	if err := c.requestJSON(ctx, http.MethodGet, "/admin/config", nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateConfig applies a partial update to the platform configuration.
func (c *Client) UpdateConfig(ctx context.Context, updates map[string]any) error {
	return c.requestJSON(ctx, http.MethodPut, "/admin/config", nil, updates, nil)
}

// Dashboard fetches the aggregate dashboard statistics.
func (c *Client) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.requestJSON(ctx, http.MethodGet, "/admin/stats/dashboard", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RideStatistics fetches ride volume statistics.
func (c *Client) RideStatistics(ctx context.Context) (*RideStats, error) {
	var stats RideStats
	if err := c.requestJSON(ctx, http.MethodGet, "/admin/stats/rides", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// PaymentStatistics fetches payment statistics for a period ("all",
// "week", "month", ...).
func (c *Client) PaymentStatistics(ctx context.Context, period string) (*PaymentStats, error) {
	if period == "" {
		period = "all"
	}
	query := url.Values{}
	query.Set("period", period)
	var stats PaymentStats
	if err := c.requestJSON(ctx, http.MethodGet, "/admin/stats/payments", query, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Health fetches the backend's dependency health report.
func (c *Client) Health(ctx context.Context) (*SystemHealth, error) {
	var health SystemHealth
	if err := c.requestJSON(ctx, http.MethodGet, "/admin/system-health", nil, nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
