package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/addisride/admin-console/internal/utils"
)

// Reports lists abuse reports with pagination and an optional resolved
// filter.
func (c *Client) Reports(ctx context.Context, page, limit int, resolved *bool) (*Page[Report], error) {
	filters := url.Values{}
	if resolved != nil {
		filters.Set("resolved", strconv.FormatBool(utils.Value(resolved)))
	}
	return listPage[Report](ctx, c, "/admin/reports", page, limit, filters)
}

// ReportByID fetches a single report.
func (c *Client) ReportByID(ctx context.Context, reportID int64) (*Report, error) {
	var report Report
	if err := c.requestJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/reports/%d", reportID), nil, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ResolveReport marks a report resolved and returns the updated entity.
func (c *Client) ResolveReport(ctx context.Context, reportID int64) (*Report, error) {
	var resp struct {
		Message string  `json:"message"`
		Report  *Report `json:"report"`
	}
	if err := c.requestJSON(ctx, http.MethodPost, fmt.Sprintf("/admin/reports/%d/resolve", reportID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Report, nil
}

// DeleteReport removes a report.
func (c *Client) DeleteReport(ctx context.Context, reportID int64) error {
	return c.requestJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/reports/%d", reportID), nil, nil, nil)
}
