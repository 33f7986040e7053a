package project

import "github.com/thenoetrevino/flowboard/internal/models"

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyTitle       = models.InvalidArgument("Title is required")
	ErrInvalidProjectID = models.InvalidArgument("invalid project ID")
	ErrInvalidUserID    = models.InvalidArgument("user_id is required")

	// Business logic errors
	ErrProjectNotFound = models.NotFound("Project not found")
	ErrUserNotFound    = models.NotFound("User not found")
)
