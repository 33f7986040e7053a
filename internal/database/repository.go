package database

import (
	"context"
	"database/sql"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
// A Repository built on a nil *sql.DB fails every call with models.ErrStoreUnavailable.
type Repository struct {
	*UserRepo
	*ProjectRepo
	*TaskRepo
	db *sql.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	ex := executor{db: db}
	return &Repository{
		UserRepo:    &UserRepo{executor: ex},
		ProjectRepo: &ProjectRepo{executor: ex},
		TaskRepo:    &TaskRepo{executor: ex},
		db:          db,
	}
}

// InTx runs fn in a single transaction. Repository calls made with the ctx
// passed to fn join that transaction.
func (r *Repository) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

// Ping reports whether the store is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return ErrNotConfigured
	}
	return classify(r.db.PingContext(ctx))
}

// Close closes the underlying connection pool
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
