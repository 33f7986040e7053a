package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/thenoetrevino/flowboard/internal/database"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// Service defines all user-related business operations
type Service interface {
	// Read operations
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)

	// Write operations
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// CreateUserRequest encapsulates data for creating a user
type CreateUserRequest struct {
	Name   string
	Avatar string
}

// UpdateUserRequest encapsulates data for updating a user.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	ID     int
	Name   *string
	Avatar *string
}

// repository defines the data access methods needed by the user service
// This interface is private to the service layer
type repository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	CreateUser(ctx context.Context, name, avatar string, now time.Time) (*models.User, error)
	UpdateUser(ctx context.Context, id int, patch database.UserPatch, now time.Time) error
	DeleteUser(ctx context.Context, id int) error
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// service implements Service with a read-through cache in front of GetUser
type service struct {
	repo  repository
	cache *cache.Cache
	now   func() time.Time
}

// Option configures the user service
type Option func(*service)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a new user service. A ttl of zero disables caching.
func NewService(repo repository, ttl time.Duration, opts ...Option) Service {
	s := &service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cacheKey(id int) string {
	return "user:" + strconv.Itoa(id)
}

// ListUsers returns every user, newest first
func (s *service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser retrieves a user, serving repeated lookups from the cache
func (s *service) GetUser(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey(id)); ok {
			u := *cached.(*models.User)
			return &u, nil
		}
	}

	u, err := s.repo.GetUser(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		stored := *u
		s.cache.SetDefault(cacheKey(id), &stored)
	}
	return u, nil
}

// CreateUser creates a user after trimming and validating the name
func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	u, err := s.repo.CreateUser(ctx, name, strings.TrimSpace(req.Avatar), s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// UpdateUser applies the supplied fields and returns the refreshed user
func (s *service) UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidUserID
	}

	var patch database.UserPatch
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		patch.Name = &name
	}
	if req.Avatar != nil {
		avatar := strings.TrimSpace(*req.Avatar)
		patch.Avatar = &avatar
	}

	s.forget(req.ID)
	err := s.repo.UpdateUser(ctx, req.ID, patch, s.now())
	// a lookup racing the write may have cached the old row again
	s.forget(req.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.GetUser(ctx, req.ID)
}

// DeleteUser removes the user along with its memberships and assignments
func (s *service) DeleteUser(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidUserID
	}

	s.forget(id)
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		return s.repo.DeleteUser(ctx, id)
	})
	s.forget(id)
	if errors.Is(err, models.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *service) forget(id int) {
	if s.cache != nil {
		s.cache.Delete(cacheKey(id))
	}
}
