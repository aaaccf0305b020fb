package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
	"github.com/nightowllabs/taskhub/internal/taskhub/service"
)

func TestViewTaskResolvesOwnerAndAssignee(t *testing.T) {
	st, tasks, alice, bob := setupTasks(t)
	views := service.NewViewService(st)
	ctx := context.Background()

	created, err := tasks.Create(ctx, alice.ID, service.TaskParams{
		Title: "pair review", Status: domain.StatusTodo,
		Priority: domain.PriorityMedium, AssigneeID: &bob.ID,
	})
	require.NoError(t, err)

	view, err := views.Task(ctx, created)
	require.NoError(t, err)

	require.Equal(t, created.ID, view.ID)
	require.Equal(t, "TODO", view.Status)
	require.Equal(t, "MEDIUM", view.Priority)
	require.NotNil(t, view.User)
	require.Equal(t, "alice", view.User.Username)
	require.NotNil(t, view.AssignedTo)
	require.Equal(t, "bob", view.AssignedTo.Username)
	require.Nil(t, view.DueDate)
}

func TestViewTaskWithoutAssignee(t *testing.T) {
	st, tasks, alice, _ := setupTasks(t)
	views := service.NewViewService(st)
	ctx := context.Background()

	created, err := tasks.Create(ctx, alice.ID, service.TaskParams{
		Title: "solo", Status: domain.StatusTodo, Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	view, err := views.Task(ctx, created)
	require.NoError(t, err)
	require.Nil(t, view.AssignedTo)
}

func TestViewUserHidesCredentials(t *testing.T) {
	st, _, alice, _ := setupTasks(t)
	views := service.NewViewService(st)

	view := views.User(alice)
	require.Equal(t, alice.ID, view.ID)
	require.Equal(t, "alice", view.Username)
	require.Equal(t, "USER", view.Role)
}
