package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/internal/taskhub/store/drivers/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "taskhub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, username, email string) domain.User {
	t.Helper()

	u, err := s.Users().Create(context.Background(), domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$stub",
		Name:         "Test " + username,
		Role:         domain.RoleUser,
	})
	require.NoError(t, err)
	return u
}

func TestUserCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := createUser(t, s, "alice", "alice@example.com")
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, domain.RoleUser, got.Role)
	require.True(t, got.CreatedAt.Equal(created.CreatedAt))

	byName, err := s.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	_, err = s.Users().GetByID(ctx, created.ID+100)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserUniqueConstraints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createUser(t, s, "alice", "alice@example.com")

	_, err := s.Users().Create(ctx, domain.User{
		Username: "alice", Email: "other@example.com",
		PasswordHash: "x", Name: "dup", Role: domain.RoleUser,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().Create(ctx, domain.User{
		Username: "bob", Email: "alice@example.com",
		PasswordHash: "x", Name: "dup", Role: domain.RoleUser,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUserExistsAndIsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := createUser(t, s, "alice", "alice@example.com")

	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)

	ok, err := s.Users().ExistsByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Users().ExistsByUsername(ctx, "nobody")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.Users().ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDeletingOwnerCascadesToTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "alice", "alice@example.com")
	task, err := s.Tasks().Create(ctx, domain.Task{
		Title: "doomed", Status: domain.StatusTodo,
		Priority: domain.PriorityLow, OwnerID: owner.ID,
	})
	require.NoError(t, err)

	require.NoError(t, s.Users().Delete(ctx, owner.ID))

	_, err = s.Tasks().GetByID(ctx, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletingAssigneeClearsAssignment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "alice", "alice@example.com")
	helper := createUser(t, s, "bob", "bob@example.com")

	task, err := s.Tasks().Create(ctx, domain.Task{
		Title: "shared", Status: domain.StatusTodo,
		Priority: domain.PriorityLow, OwnerID: owner.ID, AssigneeID: &helper.ID,
	})
	require.NoError(t, err)

	require.NoError(t, s.Users().Delete(ctx, helper.ID))

	got, err := s.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.Nil(t, got.AssigneeID)
}

func TestTaskFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, s, "alice", "alice@example.com")
	bob := createUser(t, s, "bob", "bob@example.com")

	mk := func(title string, status domain.Status, priority domain.Priority, ownerID int64) domain.Task {
		task, err := s.Tasks().Create(ctx, domain.Task{
			Title: title, Status: status, Priority: priority, OwnerID: ownerID,
		})
		require.NoError(t, err)
		return task
	}

	mk("write docs", domain.StatusTodo, domain.PriorityLow, alice.ID)
	mk("fix login", domain.StatusInProgress, domain.PriorityHigh, alice.ID)
	mk("ship release", domain.StatusTodo, domain.PriorityUrgent, bob.ID)

	byOwner, err := s.Tasks().ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, byOwner, 2)

	byStatus, err := s.Tasks().ListByStatus(ctx, domain.StatusTodo)
	require.NoError(t, err)
	require.Len(t, byStatus, 2)

	byPriority, err := s.Tasks().ListByPriority(ctx, domain.PriorityHigh)
	require.NoError(t, err)
	require.Len(t, byPriority, 1)
	require.Equal(t, "fix login", byPriority[0].Title)

	both, err := s.Tasks().ListByOwnerAndStatus(ctx, alice.ID, domain.StatusTodo)
	require.NoError(t, err)
	require.Len(t, both, 1)
	require.Equal(t, "write docs", both[0].Title)
}

func TestTaskListByAssignee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "alice", "alice@example.com")
	helper := createUser(t, s, "bob", "bob@example.com")

	assigned, err := s.Tasks().Create(ctx, domain.Task{
		Title: "assigned", Status: domain.StatusTodo,
		Priority: domain.PriorityLow, OwnerID: owner.ID, AssigneeID: &helper.ID,
	})
	require.NoError(t, err)

	_, err = s.Tasks().Create(ctx, domain.Task{
		Title: "unassigned", Status: domain.StatusTodo,
		Priority: domain.PriorityLow, OwnerID: owner.ID,
	})
	require.NoError(t, err)

	got, err := s.Tasks().ListByAssignee(ctx, helper.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "assigned", got[0].Title)

	// Clearing the assignment drops the task from the assignee's list.
	assigned.AssigneeID = nil
	_, err = s.Tasks().Update(ctx, assigned)
	require.NoError(t, err)

	got, err = s.Tasks().ListByAssignee(ctx, helper.ID)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTaskPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "alice", "alice@example.com")
	for i := 0; i < 5; i++ {
		_, err := s.Tasks().Create(ctx, domain.Task{
			Title: "task", Status: domain.StatusTodo,
			Priority: domain.PriorityLow, OwnerID: owner.ID,
		})
		require.NoError(t, err)
	}

	page, err := s.Tasks().ListPage(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)

	last, err := s.Tasks().ListPage(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, last, 1)

	beyond, err := s.Tasks().ListPage(ctx, 2, 10)
	require.NoError(t, err)
	require.Empty(t, beyond)
}

func TestTaskDueDateQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "alice", "alice@example.com")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	mk := func(title string, due time.Time, status domain.Status) {
		_, err := s.Tasks().Create(ctx, domain.Task{
			Title: title, Status: status, Priority: domain.PriorityLow,
			OwnerID: owner.ID, DueDate: &due,
		})
		require.NoError(t, err)
	}

	mk("overdue", now.Add(-24*time.Hour), domain.StatusTodo)
	mk("done late", now.Add(-24*time.Hour), domain.StatusDone)
	mk("cancelled late", now.Add(-24*time.Hour), domain.StatusCancelled)
	mk("due exactly now", now, domain.StatusTodo)
	mk("future", now.Add(24*time.Hour), domain.StatusTodo)

	// Status does not matter, only the due date. A finished task with a
	// past due date still comes back.
	overdue, err := s.Tasks().ListDueBefore(ctx, now)
	require.NoError(t, err)
	require.Len(t, overdue, 3)
	require.Equal(t, "overdue", overdue[0].Title)
	require.Equal(t, "done late", overdue[1].Title)
	require.Equal(t, "cancelled late", overdue[2].Title)

	ranged, err := s.Tasks().ListByOwnerDueBetween(ctx, owner.ID, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	require.Equal(t, "due exactly now", ranged[0].Title)
	require.Equal(t, "future", ranged[1].Title)
}

func TestTaskSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "alice", "alice@example.com")
	mk := func(title, description string) {
		_, err := s.Tasks().Create(ctx, domain.Task{
			Title: title, Description: description,
			Status: domain.StatusTodo, Priority: domain.PriorityLow, OwnerID: owner.ID,
		})
		require.NoError(t, err)
	}

	mk("Deploy service", "roll out v2")
	mk("Write changelog", "describe the deploy steps")
	mk("Unrelated", "100% done")

	hits, err := s.Tasks().Search(ctx, "deploy")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Write changelog", hits[0].Title)

	// Substring match is case sensitive.
	hits, err = s.Tasks().Search(ctx, "Deploy")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Deploy service", hits[0].Title)

	// LIKE metacharacters match literally.
	hits, err = s.Tasks().Search(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Unrelated", hits[0].Title)

	all, err := s.Tasks().Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestTaskUpdateAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "alice", "alice@example.com")
	helper := createUser(t, s, "bob", "bob@example.com")

	task, err := s.Tasks().Create(ctx, domain.Task{
		Title: "draft", Status: domain.StatusTodo,
		Priority: domain.PriorityLow, OwnerID: owner.ID, AssigneeID: &helper.ID,
	})
	require.NoError(t, err)

	task.Title = "final"
	task.Status = domain.StatusDone
	task.AssigneeID = nil

	updated, err := s.Tasks().Update(ctx, task)
	require.NoError(t, err)
	require.Equal(t, "final", updated.Title)
	require.Equal(t, domain.StatusDone, updated.Status)
	require.Nil(t, updated.AssigneeID)
	require.Equal(t, owner.ID, updated.OwnerID)

	require.NoError(t, s.Tasks().Delete(ctx, task.ID))
	require.ErrorIs(t, s.Tasks().Delete(ctx, task.ID), store.ErrNotFound)

	_, err = s.Tasks().Update(ctx, task)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Store) error {
		_, err := tx.Users().Create(ctx, domain.User{
			Username: "ghost", Email: "ghost@example.com",
			PasswordHash: "x", Name: "Ghost", Role: domain.RoleUser,
		})
		require.NoError(t, err)
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	ok, err := s.Users().ExistsByUsername(ctx, "ghost")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWithTxCommits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Store) error {
		u, err := tx.Users().Create(ctx, domain.User{
			Username: "alice", Email: "alice@example.com",
			PasswordHash: "x", Name: "Alice", Role: domain.RoleUser,
		})
		if err != nil {
			return err
		}

		_, err = tx.Tasks().Create(ctx, domain.Task{
			Title: "first", Status: domain.StatusTodo,
			Priority: domain.PriorityLow, OwnerID: u.ID,
		})
		return err
	})
	require.NoError(t, err)

	tasks, err := s.Tasks().List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}
