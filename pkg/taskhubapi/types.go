package taskhubapi

import (
	"fmt"
	"time"
)

// TimeLayout is the wire format for every timestamp in the API: local-style
// second precision with no timezone suffix.
const TimeLayout = "2006-01-02T15:04:05"

// Timestamp wraps time.Time with the API's fixed wire format.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to second precision in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Second)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(TimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string in %q format", TimeLayout)
	}
	parsed, err := time.Parse(TimeLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// UserView is the read-only projection of a user. It never carries the
// password hash.
type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// TaskView is the read-only projection of a task with its owner and optional
// assignee nested one level deep.
type TaskView struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *Timestamp `json:"dueDate,omitempty"`
	User        *UserView  `json:"user"`
	AssignedTo  *UserView  `json:"assignedTo,omitempty"`
	CreatedAt   Timestamp  `json:"createdAt"`
	UpdatedAt   Timestamp  `json:"updatedAt"`
}

// CreateTaskRequest is the body for both POST /api/tasks and PUT /api/tasks/{id}.
// An absent AssignedToID on update clears any existing assignment.
type CreateTaskRequest struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	Status       string     `json:"status" validate:"required"`
	Priority     string     `json:"priority" validate:"required"`
	DueDate      *Timestamp `json:"dueDate"`
	AssignedToID *int64     `json:"assignedToId"`
}

// CreateUserRequest is the body for both POST /api/users and PUT /api/users/{id}.
// Password is required on create; on update an empty password preserves the
// stored hash. Role defaults to USER when omitted.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role"`
}

// HealthChecks reports the status of the service's critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
