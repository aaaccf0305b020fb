package service

import (
	"context"
	"errors"
	"time"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/pkg/slogx"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assigned user not found")
)

// TaskService manages tasks.
type TaskService struct {
	store store.Store

	// Now supplies the current time for overdue checks. Tests override it.
	Now func() time.Time
}

func NewTaskService(st store.Store) *TaskService {
	return &TaskService{store: st, Now: time.Now}
}

// TaskParams carries the validated fields for creating or updating a task. A
// nil AssigneeID leaves the task unassigned (and on update clears any
// existing assignment).
type TaskParams struct {
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
	DueDate     *time.Time
	AssigneeID  *int64
}

// List returns every task ordered by id.
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.store.Tasks().List(ctx)
}

// ListPage returns one page of tasks ordered by id.
func (s *TaskService) ListPage(ctx context.Context, limit, offset int64) ([]domain.Task, error) {
	return s.store.Tasks().ListPage(ctx, limit, offset)
}

// Get returns the task with the given id.
func (s *TaskService) Get(ctx context.Context, id int64) (domain.Task, error) {
	t, err := s.store.Tasks().GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Task{}, ErrTaskNotFound
	}
	return t, err
}

// ListByOwner returns every task owned by the given user. The user must
// exist.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	ok, err := s.store.Users().ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return s.store.Tasks().ListByOwner(ctx, ownerID)
}

// ListByAssignee returns every task assigned to the given user.
func (s *TaskService) ListByAssignee(ctx context.Context, assigneeID int64) ([]domain.Task, error) {
	return s.store.Tasks().ListByAssignee(ctx, assigneeID)
}

// ListByStatus returns every task in the given lifecycle state.
func (s *TaskService) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	return s.store.Tasks().ListByStatus(ctx, status)
}

// ListByPriority returns every task at the given priority.
func (s *TaskService) ListByPriority(ctx context.Context, priority domain.Priority) ([]domain.Task, error) {
	return s.store.Tasks().ListByPriority(ctx, priority)
}

// ListByOwnerAndStatus returns the owner's tasks in the given state.
func (s *TaskService) ListByOwnerAndStatus(ctx context.Context, ownerID int64, status domain.Status) ([]domain.Task, error) {
	return s.store.Tasks().ListByOwnerAndStatus(ctx, ownerID, status)
}

// ListByOwnerDueBetween returns the owner's tasks due within [from, to].
func (s *TaskService) ListByOwnerDueBetween(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.Task, error) {
	return s.store.Tasks().ListByOwnerDueBetween(ctx, ownerID, from, to)
}

// Search returns tasks whose title or description contains keyword.
func (s *TaskService) Search(ctx context.Context, keyword string) ([]domain.Task, error) {
	return s.store.Tasks().Search(ctx, keyword)
}

// ListOverdue returns every task whose due date is strictly in the past,
// regardless of status.
func (s *TaskService) ListOverdue(ctx context.Context) ([]domain.Task, error) {
	return s.store.Tasks().ListDueBefore(ctx, s.Now().UTC())
}

// Create stores a new task owned by ownerID. The owner and any assignee must
// exist.
func (s *TaskService) Create(ctx context.Context, ownerID int64, p TaskParams) (domain.Task, error) {
	var created domain.Task
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		ok, err := tx.Users().ExistsByID(ctx, ownerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}

		if err := checkAssignee(ctx, tx, p.AssigneeID); err != nil {
			return err
		}

		created, err = tx.Tasks().Create(ctx, domain.Task{
			Title:       p.Title,
			Description: p.Description,
			Status:      p.Status,
			Priority:    p.Priority,
			DueDate:     p.DueDate,
			OwnerID:     ownerID,
			AssigneeID:  p.AssigneeID,
		})
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	slogx.FromContext(ctx).Info("task_created",
		"task_id", created.ID,
		"owner_id", created.OwnerID,
		"status", string(created.Status),
		"priority", string(created.Priority),
	)
	return created, nil
}

// Update replaces the mutable fields of a task. Ownership never changes; a
// nil AssigneeID clears the assignment.
func (s *TaskService) Update(ctx context.Context, id int64, p TaskParams) (domain.Task, error) {
	var updated domain.Task
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		current, err := tx.Tasks().GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}

		if err := checkAssignee(ctx, tx, p.AssigneeID); err != nil {
			return err
		}

		current.Title = p.Title
		current.Description = p.Description
		current.Status = p.Status
		current.Priority = p.Priority
		current.DueDate = p.DueDate
		current.AssigneeID = p.AssigneeID

		updated, err = tx.Tasks().Update(ctx, current)
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	slogx.FromContext(ctx).Info("task_updated",
		"task_id", updated.ID,
		"status", string(updated.Status),
	)
	return updated, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.Tasks().Delete(ctx, id); errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		} else if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("task_deleted", "task_id", id)
	return nil
}

func checkAssignee(ctx context.Context, tx store.Store, assigneeID *int64) error {
	if assigneeID == nil {
		return nil
	}

	ok, err := tx.Users().ExistsByID(ctx, *assigneeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssigneeNotFound
	}
	return nil
}
