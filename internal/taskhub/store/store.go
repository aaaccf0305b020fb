package store

import (
	"context"
	"errors"
	"time"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists is returned when an insert or update violates a
	// uniqueness constraint.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the persistence boundary of the service. Implementations live
// under drivers/.
type Store interface {
	// Users returns the user repository.
	Users() UserRepo

	// Tasks returns the task repository.
	Tasks() TaskRepo

	// WithTx runs fn inside a transaction. The Store passed to fn operates
	// on that transaction; the transaction commits when fn returns nil and
	// rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// Ping verifies the underlying connection is alive.
	Ping(ctx context.Context) error

	// ApplyMigrations brings the schema up to date.
	ApplyMigrations() error

	// Close releases the underlying connection pool.
	Close() error
}

// UserRepo provides access to user rows.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)

	// Create inserts u and returns the persisted row with its generated id
	// and timestamps.
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, u domain.User) (domain.User, error)
	Delete(ctx context.Context, id int64) error

	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// IsEmpty reports whether no users exist yet, used for first-run
	// seeding.
	IsEmpty(ctx context.Context) (bool, error)
}

// TaskRepo provides access to task rows.
type TaskRepo interface {
	GetByID(ctx context.Context, id int64) (domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListPage(ctx context.Context, limit, offset int64) ([]domain.Task, error)

	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
	ListByAssignee(ctx context.Context, assigneeID int64) ([]domain.Task, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error)
	ListByPriority(ctx context.Context, priority domain.Priority) ([]domain.Task, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID int64, status domain.Status) ([]domain.Task, error)

	// ListDueBefore returns tasks whose due date is strictly before t,
	// regardless of status.
	ListDueBefore(ctx context.Context, t time.Time) ([]domain.Task, error)

	// ListByOwnerDueBetween returns the owner's tasks due within
	// [from, to], bounds inclusive.
	ListByOwnerDueBetween(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.Task, error)

	// Search returns tasks whose title or description contains keyword as a
	// case-sensitive substring. An empty keyword matches every task.
	Search(ctx context.Context, keyword string) ([]domain.Task, error)

	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	Update(ctx context.Context, t domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id int64) error

	ExistsByID(ctx context.Context, id int64) (bool, error)
}
