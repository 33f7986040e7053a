package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/thenoetrevino/flowboard/internal/database"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListTasks(ctx context.Context, projectID int) (*models.GroupedTasks, error)
	GetTask(ctx context.Context, id int) (*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id int) error

	// Task movement
	MoveTask(ctx context.Context, id int, status string) (*models.Task, error)
}

// CreateTaskRequest encapsulates all data needed to create a task.
// Empty optional fields fall back to the board defaults.
type CreateTaskRequest struct {
	ProjectID     int
	Title         string
	Description   string
	Status        string
	Category      string
	CategoryColor string
	BorderColor   string
	Assignees     []int
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update.
// A non-nil Assignees replaces the whole assignee set.
type UpdateTaskRequest struct {
	ID            int
	Title         *string
	Description   *string
	Status        *string
	Category      *string
	CategoryColor *string
	BorderColor   *string
	Assignees     *[]int
}

// repository defines the data access methods needed by the task service
// This interface is private to the service layer
type repository interface {
	ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error)
	GetTask(ctx context.Context, id int) (*models.Task, error)
	CreateTask(ctx context.Context, t *models.Task) error
	UpdateTask(ctx context.Context, id int, patch database.TaskPatch, now time.Time) error
	DeleteTask(ctx context.Context, id int) error
	SetTaskAssignees(ctx context.Context, taskID int, userIDs []int) error
	AssigneesByTasks(ctx context.Context, taskIDs []int) (map[int][]*models.User, error)

	GetProject(ctx context.Context, id int) (*models.Project, error)
	AdjustTaskCount(ctx context.Context, projectID, delta int) error
	GetUsersByIDs(ctx context.Context, ids []int) ([]*models.User, error)

	// Transaction support
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// service implements Service interface
type service struct {
	repo repository
	now  func() time.Time
}

// Option configures the task service
type Option func(*service)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a new task service
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

// ListTasks returns a project's tasks grouped by status, newest first.
// A project without tasks, or an unknown project, yields three empty groups.
func (s *service) ListTasks(ctx context.Context, projectID int) (*models.GroupedTasks, error) {
	if projectID <= 0 {
		return nil, ErrProjectIDRequired
	}

	tasks, err := s.repo.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.attachAssignees(ctx, tasks...); err != nil {
		return nil, err
	}

	grouped := models.NewGroupedTasks()
	for _, t := range tasks {
		grouped.Add(t)
	}
	return grouped, nil
}

// GetTask retrieves a task with its assignees
func (s *service) GetTask(ctx context.Context, id int) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}

	t, err := s.repo.GetTask(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachAssignees(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTask writes the task row, its assignments and the project's counter
// increment in one transaction.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if req.ProjectID <= 0 || title == "" {
		return nil, ErrMissingRequired
	}

	status := models.StatusTodo
	if req.Status != "" {
		status = models.Status(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	assignees, err := normalizeAssignees(req.Assignees)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		ProjectID:     req.ProjectID,
		Title:         title,
		Description:   strings.TrimSpace(req.Description),
		Status:        status,
		Category:      orDefault(req.Category, models.DefaultCategory),
		CategoryColor: orDefault(req.CategoryColor, models.DefaultCategoryColor),
		BorderColor:   orDefault(req.BorderColor, models.DefaultBorderColor),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.repo.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetProject(ctx, req.ProjectID); err != nil {
			return err
		}
		if err := s.checkAssignees(ctx, assignees); err != nil {
			return err
		}
		if err := s.repo.CreateTask(ctx, task); err != nil {
			return err
		}
		if len(assignees) > 0 {
			if err := s.repo.SetTaskAssignees(ctx, task.ID, assignees); err != nil {
				return err
			}
		}
		return s.repo.AdjustTaskCount(ctx, task.ProjectID, 1)
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		if errors.Is(err, models.ErrInvalidArgument) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.attachAssignees(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies the supplied fields. A supplied assignee list replaces
// the existing set inside the same transaction.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidTaskID
	}

	var patch database.TaskPatch
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
	if req.Status != nil {
		status := models.Status(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		patch.Status = &status
	}
	patch.Category = req.Category
	patch.CategoryColor = req.CategoryColor
	patch.BorderColor = req.BorderColor

	var assignees []int
	if req.Assignees != nil {
		var err error
		if assignees, err = normalizeAssignees(*req.Assignees); err != nil {
			return nil, err
		}
	}

	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		if req.Assignees != nil {
			if err := s.checkAssignees(ctx, assignees); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateTask(ctx, req.ID, patch, s.now()); err != nil {
			return err
		}
		if req.Assignees != nil {
			return s.repo.SetTaskAssignees(ctx, req.ID, assignees)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		if errors.Is(err, models.ErrInvalidArgument) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(ctx, req.ID)
}

// MoveTask changes only the status (and updated_at) of a task
func (s *service) MoveTask(ctx context.Context, id int, status string) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}

	st := models.Status(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateTask(ctx, id, database.TaskPatch{Status: &st}, s.now()); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	return s.GetTask(ctx, id)
}

// DeleteTask removes a task and decrements its project's counter, floored
// at zero, in one transaction.
func (s *service) DeleteTask(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidTaskID
	}

	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		t, err := s.repo.GetTask(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteTask(ctx, id); err != nil {
			return err
		}
		return s.repo.AdjustTaskCount(ctx, t.ProjectID, -1)
	})
	if errors.Is(err, models.ErrNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// checkAssignees fails with InvalidArgument when any id has no user row
func (s *service) checkAssignees(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	users, err := s.repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(users) == len(ids) {
		return nil
	}

	found := make(map[int]bool, len(users))
	for _, u := range users {
		found[u.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, fmt.Sprint(id))
		}
	}
	return models.InvalidArgument("Unknown assignee ids: " + strings.Join(missing, ", "))
}

func (s *service) attachAssignees(ctx context.Context, tasks ...*models.Task) error {
	ids := make([]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	assignees, err := s.repo.AssigneesByTasks(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load assignees: %w", err)
	}
	for _, t := range tasks {
		t.AssigneeDetails = assignees[t.ID]
		t.Assignees = make([]int, len(t.AssigneeDetails))
		for i, u := range t.AssigneeDetails {
			t.Assignees[i] = u.ID
		}
	}
	return nil
}

// normalizeAssignees drops duplicates and returns the ids in ascending order
func normalizeAssignees(ids []int) ([]int, error) {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, ErrInvalidAssigneeID
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Ints(out)
	return out, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
