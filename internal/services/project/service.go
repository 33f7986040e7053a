package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/flowboard/internal/database"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	ListProjects(ctx context.Context) ([]*models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) error

	// Membership
	AddMember(ctx context.Context, projectID, userID int) (*models.Project, error)
	RemoveMember(ctx context.Context, projectID, userID int) error

	// Maintenance
	RecountTasks(ctx context.Context) (int, error)
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	Title       string
	Description string
	Color       string
}

// UpdateProjectRequest encapsulates data for updating a project.
// Nil fields are left unchanged. The task counter is not client writable.
type UpdateProjectRequest struct {
	ID          int
	Title       *string
	Description *string
	Color       *string
}

// repository defines the data access methods needed by the project service
// This interface is private to the service layer
type repository interface {
	ListProjects(ctx context.Context) ([]*models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	CreateProject(ctx context.Context, title, description, color string, now time.Time) (*models.Project, error)
	UpdateProject(ctx context.Context, id int, patch database.ProjectPatch, now time.Time) error
	DeleteProject(ctx context.Context, id int) error
	RecountTasks(ctx context.Context) (int, error)

	MembersByProjects(ctx context.Context, projectIDs []int) (map[int][]*models.User, error)
	AddMember(ctx context.Context, projectID, userID int, now time.Time) (bool, error)
	RemoveMember(ctx context.Context, projectID, userID int) error
	DeleteMembersByProject(ctx context.Context, projectID int) error
	DeleteTasksByProject(ctx context.Context, projectID int) error

	GetUser(ctx context.Context, id int) (*models.User, error)

	// Transaction support
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// service implements Service interface with private repository
type service struct {
	repo repository
	now  func() time.Time
}

// Option configures the project service
type Option func(*service)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a new project service with private repository
func NewService(repo repository, opts ...Option) Service {
	s := &service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProjects returns every project, newest first, with members resolved
// and task counts taken from the task rows.
func (s *service) ListProjects(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachMembers(ctx, projects...); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject retrieves a project with its members
func (s *service) GetProject(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}

	p, err := s.repo.GetProject(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachMembers(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProject creates a new project with validation
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = models.DefaultProjectColor
	}

	p, err := s.repo.CreateProject(ctx, title, strings.TrimSpace(req.Description), color, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

// UpdateProject applies the supplied fields and returns the refreshed project
func (s *service) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidProjectID
	}

	var patch database.ProjectPatch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		patch.Title = &title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		patch.Description = &description
	}
	if req.Color != nil {
		color := strings.TrimSpace(*req.Color)
		if color == "" {
			color = models.DefaultProjectColor
		}
		patch.Color = &color
	}

	if err := s.repo.UpdateProject(ctx, req.ID, patch, s.now()); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetProject(ctx, req.ID)
}

// DeleteProject removes a project together with its tasks, their
// assignments and its memberships in one transaction.
func (s *service) DeleteProject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}

	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetProject(ctx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteTasksByProject(ctx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteMembersByProject(ctx, id); err != nil {
			return err
		}
		return s.repo.DeleteProject(ctx, id)
	})
	if errors.Is(err, models.ErrNotFound) {
		return ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// AddMember adds a user to a project. Adding an existing member is a no-op.
func (s *service) AddMember(ctx context.Context, projectID, userID int) (*models.Project, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	inserted, err := s.repo.AddMember(ctx, projectID, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	if !inserted {
		slog.Debug("member already present", "project_id", projectID, "user_id", userID)
	}

	return s.GetProject(ctx, projectID)
}

// RemoveMember removes a membership. Removing a non-member succeeds.
func (s *service) RemoveMember(ctx context.Context, projectID, userID int) error {
	if projectID <= 0 {
		return ErrInvalidProjectID
	}
	if userID <= 0 {
		return ErrInvalidUserID
	}
	if err := s.repo.RemoveMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// RecountTasks repairs stored task counters that drifted from the task rows
func (s *service) RecountTasks(ctx context.Context) (int, error) {
	n, err := s.repo.RecountTasks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to recount tasks: %w", err)
	}
	if n > 0 {
		slog.Warn("repaired drifted task counters", "projects", n)
	}
	return n, nil
}

func (s *service) attachMembers(ctx context.Context, projects ...*models.Project) error {
	ids := make([]int, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	members, err := s.repo.MembersByProjects(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}
	for _, p := range projects {
		p.Members = members[p.ID]
	}
	return nil
}
