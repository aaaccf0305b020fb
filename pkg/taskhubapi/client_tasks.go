package taskhubapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListTasks returns every task.
func (c *Client) ListTasks(ctx context.Context) ([]TaskView, error) {
	var out []TaskView
	if err := c.doJSON(ctx, http.MethodGet, "/api/tasks", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTasksPage returns one page of tasks. Pages are zero-indexed.
func (c *Client) ListTasksPage(ctx context.Context, page, size int) ([]TaskView, error) {
	var out []TaskView
	path := fmt.Sprintf("/api/tasks?page=%d&size=%d", page, size)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask returns the task with the given id.
func (c *Client) GetTask(ctx context.Context, id int64) (*TaskView, error) {
	var out TaskView
	path := fmt.Sprintf("/api/tasks/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTasksByUser returns every task owned by the given user.
func (c *Client) ListTasksByUser(ctx context.Context, userID int64) ([]TaskView, error) {
	var out []TaskView
	path := fmt.Sprintf("/api/tasks/user/%d", userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTasksByStatus returns every task with the given status
// (TODO, IN_PROGRESS, DONE or CANCELLED).
func (c *Client) ListTasksByStatus(ctx context.Context, status string) ([]TaskView, error) {
	var out []TaskView
	path := "/api/tasks/status/" + url.PathEscape(status)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTasksByPriority returns every task with the given priority
// (LOW, MEDIUM, HIGH or URGENT).
func (c *Client) ListTasksByPriority(ctx context.Context, priority string) ([]TaskView, error) {
	var out []TaskView
	path := "/api/tasks/priority/" + url.PathEscape(priority)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchTasks returns every task whose title or description contains keyword.
func (c *Client) SearchTasks(ctx context.Context, keyword string) ([]TaskView, error) {
	var out []TaskView
	path := "/api/tasks/search?keyword=" + url.QueryEscape(keyword)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOverdueTasks returns every task whose due date has passed.
func (c *Client) ListOverdueTasks(ctx context.Context) ([]TaskView, error) {
	var out []TaskView
	if err := c.doJSON(ctx, http.MethodGet, "/api/tasks/overdue", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a new task and returns the persisted view.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskView, error) {
	var out TaskView
	if err := c.doJSON(ctx, http.MethodPost, "/api/tasks", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask replaces the mutable fields of the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, id int64, req CreateTaskRequest) (*TaskView, error) {
	var out TaskView
	path := fmt.Sprintf("/api/tasks/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask deletes the task with the given id.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/tasks/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}
