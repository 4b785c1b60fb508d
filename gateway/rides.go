package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// Rides lists rides with pagination and an optional status filter.
func (c *Client) Rides(ctx context.Context, page, limit int, status string) (*Page[Ride], error) {
	filters := url.Values{}
	if status != "" {
		filters.Set("status", status)
	}
	return listPage[Ride](ctx, c, "/admin/rides", page, limit, filters)
}

// Ride fetches a single ride by id.
func (c *Client) Ride(ctx context.Context, rideID int64) (*Ride, error) {
	var ride Ride
	if err := c.requestJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/rides/%d", rideID), nil, nil, &ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

// CancelRide cancels a ride on behalf of an operator and returns the
// number of passenger refunds the backend processed.
func (c *Client) CancelRide(ctx context.Context, rideID int64) (int, error) {
	body := map[string]int64{"rideId": rideID}
	var resp struct {
		Message          string `json:"message"`
		RefundsProcessed int    `json:"refunds_processed"`
	}
	if err := c.requestJSON(ctx, http.MethodPost, "/admin/rides/cancel", nil, body, &resp); err != nil {
		return 0, err
	}
	return resp.RefundsProcessed, nil
}

// RideMessages fetches the in-ride chat log. Legacy endpoint: the
// response is a bare array.
func (c *Client) RideMessages(ctx context.Context, rideID int64) ([]RideMessage, error) {
	data, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/admin/rides/%d/messages", rideID), nil, nil)
	if err != nil {
		return nil, err
	}
	var messages []RideMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, &NetworkError{Err: errors.Wrap(err, "decode ride messages")}
	}
	return messages, nil
}

// SOSAlerts lists emergency alerts. Legacy endpoint: despite taking
// page/limit parameters the response is a bare array.
func (c *Client) SOSAlerts(ctx context.Context, page, limit int) (*Page[SOSAlert], error) {
	return listPage[SOSAlert](ctx, c, "/admin/sos", page, limit, nil)
}
