package taskhub_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nightowllabs/taskhub/pkg/taskhubapi"
)

func TestAdminIsSeeded(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)

	var found bool
	for _, u := range users {
		if u.Username == "admin" {
			found = true
			require.Equal(t, "ADMIN", u.Role)
		}
	}
	require.True(t, found, "expected a seeded admin user")
}

func TestUserCRUD(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	username := uniq("alice")
	email := username + "@example.com"

	created, err := client.CreateUser(ctx, taskhubapi.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: "pw-123456",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "USER", created.Role)
	require.False(t, created.CreatedAt.IsZero())

	got, err := client.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, username, got.Username)

	updated, err := client.UpdateUser(ctx, created.ID, taskhubapi.CreateUserRequest{
		Username: username,
		Email:    email,
		Name:     "Alice Renamed",
		Role:     "ADMIN",
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Renamed", updated.Name)
	require.Equal(t, "ADMIN", updated.Role)

	require.NoError(t, client.DeleteUser(ctx, created.ID))

	_, err = client.GetUser(ctx, created.ID)
	require.True(t, taskhubapi.IsNotFound(err))
}

func TestUserConflicts(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	username := uniq("carol")
	email := username + "@example.com"

	first, err := client.CreateUser(ctx, taskhubapi.CreateUserRequest{
		Username: username, Email: email, Password: "pw-123456", Name: "Carol",
	})
	require.NoError(t, err)

	_, err = client.CreateUser(ctx, taskhubapi.CreateUserRequest{
		Username: username, Email: uniq("other") + "@example.com",
		Password: "pw-123456", Name: "Carol Again",
	})
	require.True(t, taskhubapi.IsConflict(err))

	_, err = client.CreateUser(ctx, taskhubapi.CreateUserRequest{
		Username: uniq("other"), Email: email,
		Password: "pw-123456", Name: "Carol Again",
	})
	require.True(t, taskhubapi.IsConflict(err))

	require.NoError(t, client.DeleteUser(ctx, first.ID))
}

func TestUserValidation(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	_, err := client.CreateUser(ctx, taskhubapi.CreateUserRequest{
		Username: uniq("dave"), Email: "not-an-email",
		Password: "pw-123456", Name: "Dave",
	})

	var apiErr *taskhubapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, taskhubapi.ErrorCodeValidationFailed, apiErr.Code)
}
