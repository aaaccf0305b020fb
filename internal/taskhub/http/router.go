// Package http wires the TaskHub HTTP surface: routing, request handlers,
// caller identity, and the health probes.
package http

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nightowllabs/taskhub/internal/taskhub/service"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/pkg/httpx"
)

// RouterConfig collects everything the router needs.
type RouterConfig struct {
	Store store.Store
	Users *service.UserService
	Tasks *service.TaskService
	Views *service.ViewService

	// JWTSecret enables bearer-token caller identity when non-empty.
	JWTSecret []byte

	// DefaultOwnerID is the fallback caller for unauthenticated writes.
	DefaultOwnerID int64

	Version   string
	StartedAt time.Time
}

// NewRouter builds the route table. Read endpoints are rate limited by IP,
// write endpoints by resolved caller.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	identity := CallerIdentity(cfg.JWTSecret, cfg.DefaultOwnerID)
	read := []httpx.Middleware{identity, httpx.RateLimitByIP(httpx.PublicLimit)}
	write := []httpx.Middleware{identity, httpx.RateLimitByCaller(httpx.LenientLimit)}

	tasks := NewTaskHandler(cfg.Tasks, cfg.Views)
	users := NewUserHandler(cfg.Users, cfg.Views)

	mux.Handle("GET /api/tasks", httpx.Chain(http.HandlerFunc(tasks.List), read...))
	mux.Handle("GET /api/tasks/{id}", httpx.Chain(http.HandlerFunc(tasks.Get), read...))
	mux.Handle("GET /api/tasks/user/{userId}", httpx.Chain(http.HandlerFunc(tasks.ByUser), read...))
	mux.Handle("GET /api/tasks/status/{status}", httpx.Chain(http.HandlerFunc(tasks.ByStatus), read...))
	mux.Handle("GET /api/tasks/priority/{priority}", httpx.Chain(http.HandlerFunc(tasks.ByPriority), read...))
	mux.Handle("GET /api/tasks/search", httpx.Chain(http.HandlerFunc(tasks.Search), read...))
	mux.Handle("GET /api/tasks/overdue", httpx.Chain(http.HandlerFunc(tasks.Overdue), read...))
	mux.Handle("POST /api/tasks", httpx.Chain(http.HandlerFunc(tasks.Create), write...))
	mux.Handle("PUT /api/tasks/{id}", httpx.Chain(http.HandlerFunc(tasks.Update), write...))
	mux.Handle("DELETE /api/tasks/{id}", httpx.Chain(http.HandlerFunc(tasks.Delete), write...))

	mux.Handle("GET /api/users", httpx.Chain(http.HandlerFunc(users.List), read...))
	mux.Handle("GET /api/users/{id}", httpx.Chain(http.HandlerFunc(users.Get), read...))
	mux.Handle("POST /api/users", httpx.Chain(http.HandlerFunc(users.Create), write...))
	mux.Handle("PUT /api/users/{id}", httpx.Chain(http.HandlerFunc(users.Update), write...))
	mux.Handle("DELETE /api/users/{id}", httpx.Chain(http.HandlerFunc(users.Delete), write...))

	mux.Handle("GET /livez", Livez(cfg.Version, cfg.StartedAt))
	mux.Handle("GET /readyz", Readyz(cfg.Store, cfg.Version, cfg.StartedAt))
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}
