package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// PaymentFilter narrows the payment listing. Zero values mean "no
// filter".
type PaymentFilter struct {
	Status string
	UserID int64
	RideID int64
}

// RefundResult is the outcome of a manual refund.
type RefundResult struct {
	Message          string  `json:"message"`
	RefundAmount     float64 `json:"refund_amount"`
	PaymentReference string  `json:"payment_reference"`
}

// Payments lists payments with pagination and optional filters.
func (c *Client) Payments(ctx context.Context, page, limit int, filter PaymentFilter) (*Page[Payment], error) {
	filters := url.Values{}
	if filter.Status != "" {
		filters.Set("status", filter.Status)
	}
	if filter.UserID != 0 {
		filters.Set("user_id", strconv.FormatInt(filter.UserID, 10))
	}
	if filter.RideID != 0 {
		filters.Set("ride_id", strconv.FormatInt(filter.RideID, 10))
	}
	return listPage[Payment](ctx, c, "/admin/payments", page, limit, filters)
}

// PaymentByID fetches a single payment.
func (c *Client) PaymentByID(ctx context.Context, paymentID int64) (*Payment, error) {
	var payment Payment
	if err := c.requestJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/payments/%d", paymentID), nil, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ReleasePayment releases the escrowed payout for a completed ride.
func (c *Client) ReleasePayment(ctx context.Context, rideID int64) error {
	body := map[string]int64{"rideId": rideID}
	return c.requestJSON(ctx, http.MethodPost, "/admin/payments/release", nil, body, nil)
}

// RefundPayment refunds a payment and returns the refund details.
func (c *Client) RefundPayment(ctx context.Context, paymentID int64) (*RefundResult, error) {
	var result RefundResult
	if err := c.requestJSON(ctx, http.MethodPost, fmt.Sprintf("/admin/payments/%d/refund", paymentID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RunPaymentCleanup triggers the backend's expired-payment sweep.
func (c *Client) RunPaymentCleanup(ctx context.Context) error {
	return c.requestJSON(ctx, http.MethodPost, "/admin/payments/cleanup", nil, nil, nil)
}
