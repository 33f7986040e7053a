package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/flowboard/internal/models"
)

// UserRepo handles all user-related database operations.
type UserRepo struct {
	executor
}

// UserPatch lists the user columns an update may change. Nil fields are left alone.
type UserPatch struct {
	Name   *string
	Avatar *string
}

const userColumns = `id, name, avatar, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var avatar sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Avatar = NullStringToString(avatar)
	return u, nil
}

func scanUsers(rows *sql.Rows) ([]*models.User, error) {
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListUsers returns every user, newest first
func (r *UserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list users: %w", err))
	}
	return scanUsers(rows)
}

// GetUser fetches a user by id
func (r *UserRepo) GetUser(ctx context.Context, id int) (*models.User, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("User not found")
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get user %d: %w", id, err))
	}
	return u, nil
}

// GetUsersByIDs returns the users among ids that exist, in no particular order
func (r *UserRepo) GetUsersByIDs(ctx context.Context, ids []int) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id IN (`+placeholders(len(ids))+`)`,
		intArgs(ids)...)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get users: %w", err))
	}
	return scanUsers(rows)
}

// CreateUser inserts a user and returns it with its assigned id
func (r *UserRepo) CreateUser(ctx context.Context, name, avatar string, now time.Time) (*models.User, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	result, err := q.ExecContext(ctx,
		`INSERT INTO users (name, avatar, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		name, nullString(avatar), now, now)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to create user: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:        int(id),
		Name:      name,
		Avatar:    avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateUser applies the non-nil fields of patch and refreshes updated_at
func (r *UserRepo) UpdateUser(ctx context.Context, id int, patch UserPatch, now time.Time) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Avatar != nil {
		b.set("avatar", nullString(*patch.Avatar))
	}
	b.set("updated_at", now)

	result, err := q.ExecContext(ctx,
		`UPDATE users SET `+b.clause()+` WHERE id = ?`, append(b.args, id)...)
	if err != nil {
		return classify(fmt.Errorf("failed to update user %d: %w", id, err))
	}
	return rowsAffected(result, "User not found")
}

// DeleteUser removes a user together with its membership and assignment rows
func (r *UserRepo) DeleteUser(ctx context.Context, id int) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM task_assignees WHERE user_id = ?`, id); err != nil {
		return classify(fmt.Errorf("failed to delete assignments of user %d: %w", id, err))
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM project_members WHERE user_id = ?`, id); err != nil {
		return classify(fmt.Errorf("failed to delete memberships of user %d: %w", id, err))
	}

	result, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete user %d: %w", id, err))
	}
	return rowsAffected(result, "User not found")
}
