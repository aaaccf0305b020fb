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

type tasksRepo struct {
	conn dbtx
}

var _ store.TaskRepo = (*tasksRepo)(nil)

const taskColumns = `id, title, description, status, priority, due_date, owner_id, assigned_to_id, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var (
		t        domain.Task
		status   string
		priority string
		due      sql.NullString
		assignee sql.NullInt64
		created  string
		updated  string
	)

	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority,
		&due, &t.OwnerID, &assignee, &created, &updated)
	if err != nil {
		return domain.Task{}, err
	}

	t.Status = domain.Status(status)
	t.Priority = domain.Priority(priority)
	if assignee.Valid {
		t.AssigneeID = &assignee.Int64
	}
	if t.DueDate, err = decodeNullTime(due); err != nil {
		return domain.Task{}, err
	}
	if t.CreatedAt, err = decodeTime(created); err != nil {
		return domain.Task{}, err
	}
	if t.UpdatedAt, err = decodeTime(updated); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *tasksRepo) GetByID(ctx context.Context, id int64) (domain.Task, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, store.ErrNotFound
	}
	return t, err
}

func (r *tasksRepo) List(ctx context.Context) ([]domain.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
}

func (r *tasksRepo) ListPage(ctx context.Context, limit, offset int64) ([]domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset)
}

func (r *tasksRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = ? ORDER BY id`,
		ownerID)
}

func (r *tasksRepo) ListByAssignee(ctx context.Context, assigneeID int64) ([]domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE assigned_to_id = ? ORDER BY id`,
		assigneeID)
}

func (r *tasksRepo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE status = ? ORDER BY id`,
		string(status))
}

func (r *tasksRepo) ListByPriority(ctx context.Context, priority domain.Priority) ([]domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE priority = ? ORDER BY id`,
		string(priority))
}

func (r *tasksRepo) ListByOwnerAndStatus(ctx context.Context, ownerID int64, status domain.Status) ([]domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = ? AND status = ? ORDER BY id`,
		ownerID, string(status))
}

func (r *tasksRepo) ListDueBefore(ctx context.Context, t time.Time) ([]domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE due_date IS NOT NULL AND due_date < ?
		 ORDER BY id`,
		encodeTime(t))
}

func (r *tasksRepo) ListByOwnerDueBetween(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE owner_id = ? AND due_date IS NOT NULL AND due_date >= ? AND due_date <= ?
		 ORDER BY id`,
		ownerID, encodeTime(from), encodeTime(to))
}

// Search matches keyword as a case-sensitive substring of title or
// description. instr never treats the keyword as a pattern, so SQL LIKE
// metacharacters need no escaping.
func (r *tasksRepo) Search(ctx context.Context, keyword string) ([]domain.Task, error) {
	if keyword == "" {
		return r.List(ctx)
	}
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE instr(title, ?) > 0 OR instr(description, ?) > 0
		 ORDER BY id`,
		keyword, keyword)
}

func (r *tasksRepo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	now := time.Now().UTC().Truncate(time.Second)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = t.CreatedAt

	var assignee sql.NullInt64
	if t.AssigneeID != nil {
		assignee = sql.NullInt64{Int64: *t.AssigneeID, Valid: true}
	}

	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO tasks (title, description, status, priority, due_date, owner_id, assigned_to_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, string(t.Status), string(t.Priority),
		encodeNullTime(t.DueDate), t.OwnerID, assignee,
		encodeTime(t.CreatedAt), encodeTime(t.UpdatedAt))
	if err != nil {
		return domain.Task{}, mapWriteError(err)
	}

	if t.ID, err = res.LastInsertId(); err != nil {
		return domain.Task{}, fmt.Errorf("read inserted task id: %w", err)
	}
	return t, nil
}

// Update replaces the mutable fields of a task. The owner is fixed at
// creation and never rewritten.
func (r *tasksRepo) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	var assignee sql.NullInt64
	if t.AssigneeID != nil {
		assignee = sql.NullInt64{Int64: *t.AssigneeID, Valid: true}
	}

	res, err := r.conn.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, assigned_to_id = ?, updated_at = ?
		 WHERE id = ?`,
		t.Title, t.Description, string(t.Status), string(t.Priority),
		encodeNullTime(t.DueDate), assignee, encodeTime(t.UpdatedAt), t.ID)
	if err != nil {
		return domain.Task{}, mapWriteError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Task{}, fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.Task{}, store.ErrNotFound
	}

	return r.GetByID(ctx, t.ID)
}

func (r *tasksRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
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

func (r *tasksRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *tasksRepo) query(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
