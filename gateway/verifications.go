package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// PendingVerifications lists identity-verification submissions awaiting
// review.
func (c *Client) PendingVerifications(ctx context.Context, page, limit int) (*Page[PendingVerification], error) {
	return listPage[PendingVerification](ctx, c, "/admin/verifications", page, limit, nil)
}

// ApproveVerification marks a user's identity submission as verified.
func (c *Client) ApproveVerification(ctx context.Context, userID int64) (*User, error) {
	var resp userActionResponse
	if err := c.requestJSON(ctx, http.MethodPost, fmt.Sprintf("/admin/verifications/%d/verify", userID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// RejectVerification rejects a user's identity submission.
func (c *Client) RejectVerification(ctx context.Context, userID int64) (*User, error) {
	var resp userActionResponse
	if err := c.requestJSON(ctx, http.MethodPost, fmt.Sprintf("/admin/verifications/%d/reject", userID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
