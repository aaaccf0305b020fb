// Package app assembles the TaskHub service: configuration, logging,
// storage, seeding, routing, and the HTTP server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	taskhttp "github.com/nightowllabs/taskhub/internal/taskhub/http"
	"github.com/nightowllabs/taskhub/internal/taskhub/service"
	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/internal/taskhub/store/drivers/sqlite"
	"github.com/nightowllabs/taskhub/pkg/cryptox"
	"github.com/nightowllabs/taskhub/pkg/slogx"
)

// Application owns the long-lived pieces of the service.
type Application struct {
	cfg       Config
	log       *slog.Logger
	store     store.Store
	server    *http.Server
	startedAt time.Time
}

// New builds a fully wired application: logger, database (migrated and
// seeded), services, router, and HTTP server.
func New(version string) (*Application, error) {
	cfg := LoadConfig()

	log := slogx.New(slogx.Config{
		Service: "taskhub",
		Version: version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	cryptox.SetPepperPath(cfg.PepperFile)

	st, err := initDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	users := service.NewUserService(st)
	tasks := service.NewTaskService(st)
	views := service.NewViewService(st)

	startedAt := time.Now()
	router := taskhttp.NewRouter(taskhttp.RouterConfig{
		Store:          st,
		Users:          users,
		Tasks:          tasks,
		Views:          views,
		JWTSecret:      []byte(cfg.JWTSecret),
		DefaultOwnerID: cfg.DefaultOwnerID,
		Version:        version,
		StartedAt:      startedAt,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           slogx.HTTPMiddleware(log)(router),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Application{
		cfg:       cfg,
		log:       log,
		store:     st,
		server:    server,
		startedAt: startedAt,
	}, nil
}

func initDatabase(cfg Config, log *slog.Logger) (store.Store, error) {
	st, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	ctx := slogx.WithContext(context.Background(), log)
	if err := EnsureDefaultUser(ctx, st, cfg.AdminPassword); err != nil {
		_ = st.Close()
		return nil, err
	}

	log.Info("database ready", "file", cfg.DatabaseFile)
	return st, nil
}

// Run starts the HTTP server and blocks until the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownGracePeriod)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown stops the HTTP server and closes the store.
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error

	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}

	if len(errs) == 0 {
		a.log.Info("shutdown complete")
	}
	return errors.Join(errs...)
}
