package app

import (
	"log/slog"

	"github.com/thenoetrevino/flowboard/internal/api"
	"github.com/thenoetrevino/flowboard/internal/config"
	"github.com/thenoetrevino/flowboard/internal/database"
	"github.com/thenoetrevino/flowboard/internal/metrics"
	projectservice "github.com/thenoetrevino/flowboard/internal/services/project"
	taskservice "github.com/thenoetrevino/flowboard/internal/services/task"
	userservice "github.com/thenoetrevino/flowboard/internal/services/user"
)

// App holds all server-side services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo *database.Repository

	// Service layer (business logic)
	UserService    userservice.Service
	ProjectService projectservice.Service
	TaskService    taskservice.Service

	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo *database.Repository, opts ...Option) *App {
	cfg := &appConfig{
		userTTL: config.DefaultUserTTL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.New()
	}

	var (
		userOpts    []userservice.Option
		projectOpts []projectservice.Option
		taskOpts    []taskservice.Option
	)
	if cfg.clock != nil {
		userOpts = append(userOpts, userservice.WithClock(cfg.clock))
		projectOpts = append(projectOpts, projectservice.WithClock(cfg.clock))
		taskOpts = append(taskOpts, taskservice.WithClock(cfg.clock))
	}

	return &App{
		repo:           repo,
		UserService:    userservice.NewService(repo, cfg.userTTL, userOpts...),
		ProjectService: projectservice.NewService(repo, projectOpts...),
		TaskService:    taskservice.NewService(repo, taskOpts...),
		Metrics:        cfg.metrics,
		Logger:         cfg.logger,
	}
}

// Repo returns the underlying repository for maintenance jobs
func (a *App) Repo() *database.Repository {
	return a.repo
}

// APIDeps wires the services into the HTTP server's dependencies
func (a *App) APIDeps() api.Deps {
	return api.Deps{
		Users:    a.UserService,
		Projects: a.ProjectService,
		Tasks:    a.TaskService,
		Store:    a.repo,
		Metrics:  a.Metrics,
		Logger:   a.Logger,
	}
}

// Close releases the database connection
func (a *App) Close() error {
	return a.repo.Close()
}
