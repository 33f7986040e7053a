package user

import "github.com/thenoetrevino/flowboard/internal/models"

// Domain errors for user service
var (
	// Validation errors
	ErrEmptyName     = models.InvalidArgument("Name is required")
	ErrInvalidUserID = models.InvalidArgument("invalid user ID")

	// Business logic errors
	ErrUserNotFound = models.NotFound("User not found")
)
