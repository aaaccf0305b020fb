package app

import (
	"context"
	"fmt"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/pkg/cryptox"
	"github.com/nightowllabs/taskhub/pkg/slogx"
)

// EnsureDefaultUser seeds the admin account on a fresh database so that task
// ownership always has a valid fallback. The password comes from
// configuration or is generated; it is never logged.
func EnsureDefaultUser(ctx context.Context, st store.Store, password string) error {
	return st.WithTx(ctx, func(tx store.Store) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return fmt.Errorf("check for existing users: %w", err)
		}
		if !empty {
			return nil
		}

		generated := false
		if password == "" {
			if password, err = cryptox.GeneratePassword(); err != nil {
				return fmt.Errorf("generate admin password: %w", err)
			}
			generated = true
		}

		hash, err := cryptox.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		admin, err := tx.Users().Create(ctx, domain.User{
			Username:     "admin",
			Email:        "admin@taskhub.local",
			PasswordHash: hash,
			Name:         "Administrator",
			Role:         domain.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}

		slogx.FromContext(ctx).Info("seeded default admin user",
			"user_id", admin.ID,
			"username", admin.Username,
			"generated_password", generated,
		)
		return nil
	})
}
