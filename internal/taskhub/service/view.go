package service

import (
	"context"
	"fmt"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/pkg/taskhubapi"
)

// ViewService projects domain entities into API views, resolving the nested
// owner and assignee users for tasks.
type ViewService struct {
	store store.Store
}

func NewViewService(st store.Store) *ViewService {
	return &ViewService{store: st}
}

// User projects a user. The password hash never appears in the view.
func (s *ViewService) User(u domain.User) taskhubapi.UserView {
	return taskhubapi.UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: taskhubapi.NewTimestamp(u.CreatedAt),
		UpdatedAt: taskhubapi.NewTimestamp(u.UpdatedAt),
	}
}

// Users projects a slice of users, preserving order.
func (s *ViewService) Users(us []domain.User) []taskhubapi.UserView {
	views := make([]taskhubapi.UserView, len(us))
	for i, u := range us {
		views[i] = s.User(u)
	}
	return views
}

// Task projects a single task.
func (s *ViewService) Task(ctx context.Context, t domain.Task) (taskhubapi.TaskView, error) {
	views, err := s.Tasks(ctx, []domain.Task{t})
	if err != nil {
		return taskhubapi.TaskView{}, err
	}
	return views[0], nil
}

// Tasks projects a slice of tasks, loading each referenced user once.
func (s *ViewService) Tasks(ctx context.Context, ts []domain.Task) ([]taskhubapi.TaskView, error) {
	cache := map[int64]*taskhubapi.UserView{}

	resolve := func(id int64) (*taskhubapi.UserView, error) {
		if v, ok := cache[id]; ok {
			return v, nil
		}

		u, err := s.store.Users().GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load user %d: %w", id, err)
		}

		view := s.User(u)
		cache[id] = &view
		return &view, nil
	}

	views := make([]taskhubapi.TaskView, len(ts))
	for i, t := range ts {
		owner, err := resolve(t.OwnerID)
		if err != nil {
			return nil, err
		}

		view := taskhubapi.TaskView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
			Priority:    string(t.Priority),
			User:        owner,
			CreatedAt:   taskhubapi.NewTimestamp(t.CreatedAt),
			UpdatedAt:   taskhubapi.NewTimestamp(t.UpdatedAt),
		}

		if t.DueDate != nil {
			due := taskhubapi.NewTimestamp(*t.DueDate)
			view.DueDate = &due
		}

		if t.AssigneeID != nil {
			assignee, err := resolve(*t.AssigneeID)
			if err != nil {
				return nil, err
			}
			view.AssignedTo = assignee
		}

		views[i] = view
	}
	return views, nil
}
