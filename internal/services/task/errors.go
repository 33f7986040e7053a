package task

import "github.com/thenoetrevino/flowboard/internal/models"

// Task-related errors
var (
	// Validation errors
	ErrProjectIDRequired = models.InvalidArgument("project_id query parameter is required")
	ErrMissingRequired   = models.InvalidArgument("project_id and title are required")
	ErrEmptyTitle        = models.InvalidArgument("Title cannot be empty")
	ErrInvalidStatus     = models.InvalidArgument("Invalid status. Must be: todo, in-progress, or completed")
	ErrInvalidTaskID     = models.InvalidArgument("invalid task ID")
	ErrInvalidAssigneeID = models.InvalidArgument("assignee ids must be positive")

	// Business logic errors
	ErrTaskNotFound    = models.NotFound("Task not found")
	ErrProjectNotFound = models.NotFound("Project not found")
)
