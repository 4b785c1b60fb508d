package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Companies lists partner companies. Legacy endpoint: the response is a
// bare array.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	data, err := c.request(ctx, http.MethodGet, "/admin/companies", nil, nil)
	if err != nil {
		return nil, err
	}
	var companies []Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, &NetworkError{Err: errors.Wrap(err, "decode companies")}
	}
	return companies, nil
}

// CreateCompany registers a new partner company.
func (c *Client) CreateCompany(ctx context.Context, name string) (*Company, error) {
	body := map[string]string{"name": name}
	var company Company
	if err := c.requestJSON(ctx, http.MethodPost, "/admin/companies", nil, body, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// DeleteCompany removes a partner company.
func (c *Client) DeleteCompany(ctx context.Context, companyID int64) error {
	return c.requestJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/companies/%d", companyID), nil, nil, nil)
}
