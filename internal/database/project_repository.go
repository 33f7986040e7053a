package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/flowboard/internal/models"
)

// ProjectRepo handles all project and membership database operations.
type ProjectRepo struct {
	executor
}

// ProjectPatch lists the project columns an update may change. Nil fields are left alone.
type ProjectPatch struct {
	Title       *string
	Description *string
	Color       *string
}

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	p := &models.Project{Members: []*models.User{}}
	var description sql.NullString
	if err := row.Scan(&p.ID, &p.Title, &description, &p.Color, &p.TaskCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Description = NullStringToString(description)
	return p, nil
}

// ListProjects returns every project, newest first. TaskCount is counted
// live from the task rows rather than read from the stored counter.
func (r *ProjectRepo) ListProjects(ctx context.Context) ([]*models.Project, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT p.id, p.title, p.description, p.color,
		       (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id),
		       p.created_at, p.updated_at
		FROM projects p
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list projects: %w", err))
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject fetches a project by id with its stored task counter
func (r *ProjectRepo) GetProject(ctx context.Context, id int) (*models.Project, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	p, err := scanProject(q.QueryRowContext(ctx, `
		SELECT id, title, description, color, task_count, created_at, updated_at
		FROM projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("Project not found")
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get project %d: %w", id, err))
	}
	return p, nil
}

// CreateProject inserts a project with a zero task counter
func (r *ProjectRepo) CreateProject(ctx context.Context, title, description, color string, now time.Time) (*models.Project, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO projects (title, description, color, task_count, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)`,
		title, nullString(description), color, now, now)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to create project: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Project{
		ID:          int(id),
		Title:       title,
		Description: description,
		Color:       color,
		Members:     []*models.User{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateProject applies the non-nil fields of patch and refreshes updated_at
func (r *ProjectRepo) UpdateProject(ctx context.Context, id int, patch ProjectPatch, now time.Time) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.set("description", nullString(*patch.Description))
	}
	if patch.Color != nil {
		b.set("color", *patch.Color)
	}
	b.set("updated_at", now)

	result, err := q.ExecContext(ctx,
		`UPDATE projects SET `+b.clause()+` WHERE id = ?`, append(b.args, id)...)
	if err != nil {
		return classify(fmt.Errorf("failed to update project %d: %w", id, err))
	}
	return rowsAffected(result, "Project not found")
}

// DeleteProject removes the project row only. Callers clear dependants first.
func (r *ProjectRepo) DeleteProject(ctx context.Context, id int) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete project %d: %w", id, err))
	}
	return rowsAffected(result, "Project not found")
}

// AdjustTaskCount adds delta to the stored counter, never letting it drop below zero
func (r *ProjectRepo) AdjustTaskCount(ctx context.Context, projectID, delta int) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `
		UPDATE projects
		SET task_count = CASE WHEN task_count + ? < 0 THEN 0 ELSE task_count + ? END
		WHERE id = ?`,
		delta, delta, projectID)
	if err != nil {
		return classify(fmt.Errorf("failed to adjust task count of project %d: %w", projectID, err))
	}
	return rowsAffected(result, "Project not found")
}

// RecountTasks rewrites every stored counter that disagrees with the task
// rows and returns how many projects were repaired.
func (r *ProjectRepo) RecountTasks(ctx context.Context) (int, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}

	result, err := q.ExecContext(ctx, `
		UPDATE projects
		SET task_count = (SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id)
		WHERE task_count <> (SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id)`)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to recount tasks: %w", err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ============================================================================
// Membership
// ============================================================================

// MembersByProjects resolves the members of each project in one query.
// Every requested id is present in the result, possibly with an empty slice.
func (r *ProjectRepo) MembersByProjects(ctx context.Context, projectIDs []int) (map[int][]*models.User, error) {
	members := make(map[int][]*models.User, len(projectIDs))
	for _, id := range projectIDs {
		members[id] = []*models.User{}
	}
	if len(projectIDs) == 0 {
		return members, nil
	}

	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT pm.project_id, u.id, u.name, u.avatar, u.created_at, u.updated_at
		FROM project_members pm
		INNER JOIN users u ON u.id = pm.user_id
		WHERE pm.project_id IN (`+placeholders(len(projectIDs))+`)
		ORDER BY pm.created_at, u.id`,
		intArgs(projectIDs)...)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to load members: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var projectID int
		var avatar sql.NullString
		u := &models.User{}
		if err := rows.Scan(&projectID, &u.ID, &u.Name, &avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Avatar = NullStringToString(avatar)
		members[projectID] = append(members[projectID], u)
	}
	return members, rows.Err()
}

// AddMember inserts a membership row. It reports false without error when
// the pair already exists.
func (r *ProjectRepo) AddMember(ctx context.Context, projectID, userID int, now time.Time) (bool, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return false, err
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO project_members (project_id, user_id, created_at) VALUES (?, ?, ?)`,
		projectID, userID, now)
	if isDuplicateKey(err) {
		return false, nil
	}
	if err != nil {
		return false, classify(fmt.Errorf("failed to add member %d to project %d: %w", userID, projectID, err))
	}
	return true, nil
}

// RemoveMember deletes a membership row if it exists
func (r *ProjectRepo) RemoveMember(ctx context.Context, projectID, userID int) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = ? AND user_id = ?`, projectID, userID)
	if err != nil {
		return classify(fmt.Errorf("failed to remove member %d from project %d: %w", userID, projectID, err))
	}
	return nil
}

// DeleteMembersByProject removes every membership row of a project
func (r *ProjectRepo) DeleteMembersByProject(ctx context.Context, projectID int) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = ?`, projectID); err != nil {
		return classify(fmt.Errorf("failed to delete members of project %d: %w", projectID, err))
	}
	return nil
}
