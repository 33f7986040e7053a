// Package api serves the board's REST interface over gin.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/metrics"
	projectservice "github.com/thenoetrevino/flowboard/internal/services/project"
	taskservice "github.com/thenoetrevino/flowboard/internal/services/task"
	userservice "github.com/thenoetrevino/flowboard/internal/services/user"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Version is reported by the root route
const Version = "1.0.0"

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the handlers call into
type Deps struct {
	Users    userservice.Service
	Projects projectservice.Service
	Tasks    taskservice.Service
	Store    Pinger
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Config tunes the HTTP surface
type Config struct {
	ServiceName string
	// BodyLimit caps request bodies in bytes. Zero means 10 MB.
	BodyLimit int64
	// CORSOrigins lists allowed origins. Empty or "*" allows any.
	CORSOrigins []string
}

// Server wires the services to gin routes
type Server struct {
	users    userservice.Service
	projects projectservice.Service
	tasks    taskservice.Service
	store    Pinger
	metrics  *metrics.Metrics
	logger   *slog.Logger
	router   *gin.Engine
}

// NewServer creates the router and registers every route
func NewServer(deps Deps, cfg Config) *Server {
	registerValidators()

	if cfg.ServiceName == "" {
		cfg.ServiceName = "flowboard"
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 10 << 20
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	s := &Server{
		users:    deps.Users,
		projects: deps.Projects,
		tasks:    deps.Tasks,
		store:    deps.Store,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		router:   gin.New(),
	}

	s.router.Use(
		gin.CustomRecovery(s.recoverPanic),
		requestID(),
		otelgin.Middleware(cfg.ServiceName),
		s.observe(),
		corsMiddleware(cfg.CORSOrigins),
		bodyLimit(cfg.BodyLimit),
	)

	s.router.GET("/", s.handleInfo)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := s.router.Group("/api")
	{
		users := api.Group("/users")
		users.GET("", s.handleListUsers)
		users.POST("", s.handleCreateUser)
		users.GET("/:id", s.handleGetUser)
		users.PUT("/:id", s.handleUpdateUser)
		users.DELETE("/:id", s.handleDeleteUser)

		projects := api.Group("/projects")
		projects.GET("", s.handleListProjects)
		projects.POST("", s.handleCreateProject)
		projects.GET("/:id", s.handleGetProject)
		projects.PUT("/:id", s.handleUpdateProject)
		projects.DELETE("/:id", s.handleDeleteProject)
		projects.POST("/:id/members", s.handleAddMember)
		projects.DELETE("/:id/members/:user_id", s.handleRemoveMember)

		tasks := api.Group("/tasks")
		tasks.GET("", s.handleListTasks)
		tasks.POST("", s.handleCreateTask)
		tasks.GET("/:id", s.handleGetTask)
		tasks.PUT("/:id", s.handleUpdateTask)
		tasks.PATCH("/:id/status", s.handleMoveTask)
		tasks.DELETE("/:id", s.handleDeleteTask)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, converters.Envelope[any]{Success: false, Error: "Route not found"})
	})

	return s
}

// ServeHTTP lets the server be mounted directly on an http.Server
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, converters.ServiceInfo{
		Success:   true,
		Message:   "FlowBoard API is running!",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	})
}

// handleHealth always answers 200 so the process counts as live; the store
// field reports whether data routes will work.
func (s *Server) handleHealth(c *gin.Context) {
	health := converters.Health{
		Status: "ok",
		Store:  "ok",
		Uptime: s.metrics.Uptime().Truncate(time.Second).String(),
	}
	if s.store == nil {
		health.Status, health.Store = "degraded", "not configured"
	} else if err := s.store.Ping(c.Request.Context()); err != nil {
		health.Status, health.Store = "degraded", "unavailable"
	}
	c.JSON(http.StatusOK, health)
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.logger.Error("panic serving request",
		"path", c.Request.URL.Path,
		"request_id", c.GetString(requestIDKey),
		"panic", recovered,
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		converters.Envelope[any]{Success: false, Error: "Something went wrong!"})
}
