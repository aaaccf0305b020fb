// Package service holds the business logic between the HTTP handlers and the
// store. Services return sentinel errors that the handlers translate into
// HTTP status codes.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/pkg/cryptox"
	"github.com/nightowllabs/taskhub/pkg/slogx"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

// UserService manages user accounts.
type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

// CreateUserParams carries the validated fields for creating or updating a
// user. Password is the plaintext credential; it is hashed before it reaches
// the store.
type CreateUserParams struct {
	Username string
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// List returns every user ordered by id.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().List(ctx)
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.store.Users().GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// Create registers a new user. Username and email must both be unused.
func (s *UserService) Create(ctx context.Context, p CreateUserParams) (domain.User, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	var created domain.User
	err = s.store.WithTx(ctx, func(tx store.Store) error {
		taken, err := tx.Users().ExistsByUsername(ctx, p.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		taken, err = tx.Users().ExistsByEmail(ctx, p.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		created, err = tx.Users().Create(ctx, domain.User{
			Username:     p.Username,
			Email:        p.Email,
			PasswordHash: hash,
			Name:         p.Name,
			Role:         p.Role,
		})
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user_created",
		"user_id", created.ID,
		"username", created.Username,
		"role", string(created.Role),
	)
	return created, nil
}

// Update replaces the profile of an existing user. An empty password keeps
// the stored hash; uniqueness is only re-checked for fields that changed.
func (s *UserService) Update(ctx context.Context, id int64, p CreateUserParams) (domain.User, error) {
	var hash string
	if p.Password != "" {
		var err error
		if hash, err = cryptox.HashPassword(p.Password); err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
	}

	var updated domain.User
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		current, err := tx.Users().GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if p.Username != current.Username {
			taken, err := tx.Users().ExistsByUsername(ctx, p.Username)
			if err != nil {
				return err
			}
			if taken {
				return ErrUsernameTaken
			}
		}

		if p.Email != current.Email {
			taken, err := tx.Users().ExistsByEmail(ctx, p.Email)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
		}

		current.Username = p.Username
		current.Email = p.Email
		current.Name = p.Name
		current.Role = p.Role
		if hash != "" {
			current.PasswordHash = hash
		}

		updated, err = tx.Users().Update(ctx, current)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user_updated", "user_id", updated.ID)
	return updated, nil
}

// Delete removes a user. Tasks they own are removed with them; tasks merely
// assigned to them become unassigned.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.Users().Delete(ctx, id); errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		} else if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user_deleted", "user_id", id)
	return nil
}
