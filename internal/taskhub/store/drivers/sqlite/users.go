package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
)

type usersRepo struct {
	conn dbtx
}

var _ store.UserRepo = (*usersRepo)(nil)

const userColumns = `id, username, email, password_hash, name, role, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u       domain.User
		role    string
		created string
		updated string
	)

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &role, &created, &updated)
	if err != nil {
		return domain.User{}, err
	}

	u.Role = domain.Role(role)
	if u.CreatedAt, err = decodeTime(created); err != nil {
		return domain.User{}, err
	}
	if u.UpdatedAt, err = decodeTime(updated); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, store.ErrNotFound
	}
	return u, err
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, store.ErrNotFound
	}
	return u, err
}

func (r *usersRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC().Truncate(time.Second)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = u.CreatedAt

	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, name, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.Name, string(u.Role),
		encodeTime(u.CreatedAt), encodeTime(u.UpdatedAt))
	if err != nil {
		return domain.User{}, mapWriteError(err)
	}

	if u.ID, err = res.LastInsertId(); err != nil {
		return domain.User{}, fmt.Errorf("read inserted user id: %w", err)
	}
	return u, nil
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	u.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	res, err := r.conn.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, password_hash = ?, name = ?, role = ?, updated_at = ?
		 WHERE id = ?`,
		u.Username, u.Email, u.PasswordHash, u.Name, string(u.Role),
		encodeTime(u.UpdatedAt), u.ID)
	if err != nil {
		return domain.User{}, mapWriteError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.User{}, store.ErrNotFound
	}

	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, id)
}

func (r *usersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = ?)`, username)
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`, email)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	exists, err := r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users)`)
	return !exists, err
}

func (r *usersRepo) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
