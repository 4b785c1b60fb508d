package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/addisride/admin-console/internal/utils"
)

// UserFilter narrows the user listing. Zero values mean "no filter".
type UserFilter struct {
	Search string
	Banned *bool
}

// UserUpdate carries the mutable user fields for a profile edit. Nil
// fields are left unchanged by the backend.
type UserUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// Users lists users with pagination and optional search/banned filters.
func (c *Client) Users(ctx context.Context, page, limit int, filter UserFilter) (*Page[User], error) {
	filters := url.Values{}
	if filter.Search != "" {
		filters.Set("search", filter.Search)
	}
	if filter.Banned != nil {
		filters.Set("banned", strconv.FormatBool(utils.Value(filter.Banned)))
	}
	return listPage[User](ctx, c, "/admin/users", page, limit, filters)
}

// User fetches a single user by id.
func (c *Client) User(ctx context.Context, userID int64) (*User, error) {
	var user User
	if err := c.requestJSON(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", userID), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial profile edit.
func (c *Client) UpdateUser(ctx context.Context, userID int64, updates UserUpdate) (*User, error) {
	var user User
	if err := c.requestJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", userID), nil, updates, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type userActionResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// BanUser bans a user and returns the updated entity.
func (c *Client) BanUser(ctx context.Context, userID int64) (*User, error) {
	var resp userActionResponse
	if err := c.requestJSON(ctx, http.MethodPost, fmt.Sprintf("/admin/users/%d/ban", userID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UnbanUser lifts a ban and returns the updated entity.
func (c *Client) UnbanUser(ctx context.Context, userID int64) (*User, error) {
	var resp userActionResponse
	if err := c.requestJSON(ctx, http.MethodPost, fmt.Sprintf("/admin/users/%d/unban", userID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// SetAdmin grants or revokes admin status.
func (c *Client) SetAdmin(ctx context.Context, userID int64, isAdmin bool) error {
	body := map[string]bool{"is_admin": isAdmin}
	return c.requestJSON(ctx, http.MethodPost, fmt.Sprintf("/admin/users/%d/toggle-admin", userID), nil, body, nil)
}
