package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	taskhttp "github.com/nightowllabs/taskhub/internal/taskhub/http"
	"github.com/nightowllabs/taskhub/internal/taskhub/service"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/internal/taskhub/store/drivers/sqlite"
	"github.com/nightowllabs/taskhub/pkg/cryptox"
	"github.com/nightowllabs/taskhub/pkg/taskhubapi"
)

type fixture struct {
	server *httptest.Server
	client *taskhubapi.Client
	store  store.Store
	tasks  *service.TaskService
}

func newFixture(t *testing.T, secret []byte) *fixture {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "taskhub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	users := service.NewUserService(st)
	tasks := service.NewTaskService(st)

	router := taskhttp.NewRouter(taskhttp.RouterConfig{
		Store:          st,
		Users:          users,
		Tasks:          tasks,
		Views:          service.NewViewService(st),
		JWTSecret:      secret,
		DefaultOwnerID: 1,
		Version:        "test",
		StartedAt:      time.Now(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &fixture{
		server: server,
		client: taskhubapi.NewClient(server.URL),
		store:  st,
		tasks:  tasks,
	}
}

func (f *fixture) createUser(t *testing.T, username, email string) *taskhubapi.UserView {
	t.Helper()

	u, err := f.client.CreateUser(t.Context(), taskhubapi.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: "pw-123456",
		Name:     "Test " + username,
	})
	require.NoError(t, err)
	return u
}

func TestCreateUserDefaultsToUserRole(t *testing.T) {
	f := newFixture(t, nil)

	u := f.createUser(t, "alice", "alice@example.com")
	require.NotZero(t, u.ID)
	require.Equal(t, "USER", u.Role)
	require.Equal(t, "alice", u.Username)
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()

	_, err := f.client.CreateUser(ctx, taskhubapi.CreateUserRequest{
		Username: "alice", Email: "not-an-email", Password: "pw", Name: "Alice",
	})
	requireAPIError(t, err, http.StatusBadRequest, taskhubapi.ErrorCodeValidationFailed)

	_, err = f.client.CreateUser(ctx, taskhubapi.CreateUserRequest{
		Username: "alice", Email: "alice@example.com", Name: "Alice",
	})
	requireAPIError(t, err, http.StatusBadRequest, taskhubapi.ErrorCodeValidationFailed)

	_, err = f.client.CreateUser(ctx, taskhubapi.CreateUserRequest{
		Email: "alice@example.com", Password: "pw", Name: "Alice",
	})
	requireAPIError(t, err, http.StatusBadRequest, taskhubapi.ErrorCodeValidationFailed)
}

func TestCreateUserConflict(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "alice", "alice@example.com")

	_, err := f.client.CreateUser(t.Context(), taskhubapi.CreateUserRequest{
		Username: "alice", Email: "second@example.com", Password: "pw", Name: "Dup",
	})
	requireAPIError(t, err, http.StatusConflict, taskhubapi.ErrorCodeConflict)
	require.True(t, taskhubapi.IsConflict(err))
}

func TestTaskLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()

	f.createUser(t, "alice", "alice@example.com")
	bob := f.createUser(t, "bob", "bob@example.com")

	created, err := f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
		Title: "T1", Status: "TODO", Priority: "LOW",
	})
	require.NoError(t, err)
	require.Equal(t, "TODO", created.Status)
	require.Nil(t, created.AssignedTo)
	require.NotNil(t, created.User)
	require.Equal(t, "alice", created.User.Username)

	// Assign to bob, then clear by omitting assignedToId.
	updated, err := f.client.UpdateTask(ctx, created.ID, taskhubapi.CreateTaskRequest{
		Title: "T1", Status: "IN_PROGRESS", Priority: "HIGH", AssignedToID: &bob.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)
	require.Equal(t, "bob", updated.AssignedTo.Username)

	cleared, err := f.client.UpdateTask(ctx, created.ID, taskhubapi.CreateTaskRequest{
		Title: "T1", Status: "IN_PROGRESS", Priority: "HIGH",
	})
	require.NoError(t, err)
	require.Nil(t, cleared.AssignedTo)

	require.NoError(t, f.client.DeleteTask(ctx, created.ID))

	_, err = f.client.GetTask(ctx, created.ID)
	requireAPIError(t, err, http.StatusNotFound, taskhubapi.ErrorCodeNotFound)
	require.True(t, taskhubapi.IsNotFound(err))
}

func TestTaskCreateUnknownAssignee(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "alice", "alice@example.com")

	ghost := int64(999)
	_, err := f.client.CreateTask(t.Context(), taskhubapi.CreateTaskRequest{
		Title: "T1", Status: "TODO", Priority: "LOW", AssignedToID: &ghost,
	})
	requireAPIError(t, err, http.StatusNotFound, taskhubapi.ErrorCodeNotFound)
}

func TestTaskValidationAndEnumParsing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()
	f.createUser(t, "alice", "alice@example.com")

	_, err := f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
		Status: "TODO", Priority: "LOW",
	})
	requireAPIError(t, err, http.StatusBadRequest, taskhubapi.ErrorCodeValidationFailed)

	_, err = f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
		Title: "T1", Status: "PENDING", Priority: "LOW",
	})
	requireAPIError(t, err, http.StatusBadRequest, taskhubapi.ErrorCodeValidationFailed)

	_, err = f.client.ListTasksByStatus(ctx, "NOT_A_STATUS")
	requireAPIError(t, err, http.StatusBadRequest, taskhubapi.ErrorCodeValidationFailed)

	_, err = f.client.ListTasksByPriority(ctx, "EXTREME")
	requireAPIError(t, err, http.StatusBadRequest, taskhubapi.ErrorCodeValidationFailed)
}

func TestTaskListPagination(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()
	f.createUser(t, "alice", "alice@example.com")

	for i := 0; i < 5; i++ {
		_, err := f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
			Title: fmt.Sprintf("T%d", i), Status: "TODO", Priority: "LOW",
		})
		require.NoError(t, err)
	}

	all, err := f.client.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)

	first, err := f.client.ListTasksPage(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	third, err := f.client.ListTasksPage(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, third, 1)
}

func TestTaskListDefaultPageSize(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()
	f.createUser(t, "alice", "alice@example.com")

	for i := 0; i < 12; i++ {
		_, err := f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
			Title: fmt.Sprintf("T%d", i), Status: "TODO", Priority: "LOW",
		})
		require.NoError(t, err)
	}

	// An explicit page without a size windows by the default of 10.
	resp, err := http.Get(f.server.URL + "/api/tasks?page=0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page []taskhubapi.TaskView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page, 10)
}

func TestTaskFiltersAndSearch(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()
	alice := f.createUser(t, "alice", "alice@example.com")

	_, err := f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
		Title: "deploy the api", Status: "TODO", Priority: "URGENT",
	})
	require.NoError(t, err)

	_, err = f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
		Title: "tidy backlog", Status: "DONE", Priority: "LOW",
	})
	require.NoError(t, err)

	byStatus, err := f.client.ListTasksByStatus(ctx, "TODO")
	require.NoError(t, err)
	require.Len(t, byStatus, 1)

	byPriority, err := f.client.ListTasksByPriority(ctx, "URGENT")
	require.NoError(t, err)
	require.Len(t, byPriority, 1)

	byUser, err := f.client.ListTasksByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	_, err = f.client.ListTasksByUser(ctx, alice.ID+50)
	requireAPIError(t, err, http.StatusNotFound, taskhubapi.ErrorCodeNotFound)

	hits, err := f.client.SearchTasks(ctx, "deploy")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "deploy the api", hits[0].Title)
}

func TestTaskOverdue(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()
	f.createUser(t, "alice", "alice@example.com")

	now := time.Now().UTC().Truncate(time.Second)
	f.tasks.Now = func() time.Time { return now }

	past := taskhubapi.NewTimestamp(now.Add(-time.Hour))
	future := taskhubapi.NewTimestamp(now.Add(time.Hour))

	_, err := f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
		Title: "late", Status: "TODO", Priority: "LOW", DueDate: &past,
	})
	require.NoError(t, err)

	_, err = f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
		Title: "on track", Status: "TODO", Priority: "LOW", DueDate: &future,
	})
	require.NoError(t, err)

	overdue, err := f.client.ListOverdueTasks(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, "late", overdue[0].Title)
	require.NotNil(t, overdue[0].DueDate)
}

func TestUserUpdateAndDelete(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()
	u := f.createUser(t, "alice", "alice@example.com")

	updated, err := f.client.UpdateUser(ctx, u.ID, taskhubapi.CreateUserRequest{
		Username: "alice", Email: "alice@example.com", Name: "Alice Renamed", Role: "ADMIN",
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Renamed", updated.Name)
	require.Equal(t, "ADMIN", updated.Role)

	require.NoError(t, f.client.DeleteUser(ctx, u.ID))

	err = f.client.DeleteUser(ctx, u.ID)
	requireAPIError(t, err, http.StatusNotFound, taskhubapi.ErrorCodeNotFound)
}

func TestCallerIdentityFromBearerToken(t *testing.T) {
	secret := []byte("test-secret-0123456789")
	f := newFixture(t, secret)
	ctx := t.Context()

	f.createUser(t, "alice", "alice@example.com")
	bob := f.createUser(t, "bob", "bob@example.com")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: fmt.Sprintf("%d", bob.ID),
	}).SignedString(secret)
	require.NoError(t, err)

	authed := taskhubapi.NewClient(f.server.URL, taskhubapi.WithToken(token))
	created, err := authed.CreateTask(ctx, taskhubapi.CreateTaskRequest{
		Title: "bob's task", Status: "TODO", Priority: "LOW",
	})
	require.NoError(t, err)
	require.Equal(t, "bob", created.User.Username)

	// Without a token the default owner applies.
	fallback, err := f.client.CreateTask(ctx, taskhubapi.CreateTaskRequest{
		Title: "default owner", Status: "TODO", Priority: "LOW",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", fallback.User.Username)
}

func TestCallerIdentityRejectsBadToken(t *testing.T) {
	f := newFixture(t, []byte("test-secret-0123456789"))

	body, err := json.Marshal(taskhubapi.CreateTaskRequest{
		Title: "nope", Status: "TODO", Priority: "LOW",
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/api/tasks", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not.a.token")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthProbes(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()

	live, err := f.client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := f.client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *taskhubapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
