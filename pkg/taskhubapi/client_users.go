package taskhubapi

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsers returns every user.
func (c *Client) ListUsers(ctx context.Context) ([]UserView, error) {
	var out []UserView
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser returns the user with the given id.
func (c *Client) GetUser(ctx context.Context, id int64) (*UserView, error) {
	var out UserView
	path := fmt.Sprintf("/api/users/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers a new user and returns the persisted view.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*UserView, error) {
	var out UserView
	if err := c.doJSON(ctx, http.MethodPost, "/api/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser replaces the profile of the user with the given id. An empty
// password leaves the stored credentials untouched.
func (c *Client) UpdateUser(ctx context.Context, id int64, req CreateUserRequest) (*UserView, error) {
	var out UserView
	path := fmt.Sprintf("/api/users/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser deletes the user with the given id along with every task they
// own.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/users/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}
