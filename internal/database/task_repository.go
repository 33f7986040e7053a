package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/flowboard/internal/models"
)

// TaskRepo handles all task and assignment database operations.
type TaskRepo struct {
	executor
}

// TaskPatch lists the task columns an update may change. Nil fields are left alone.
type TaskPatch struct {
	Title         *string
	Description   *string
	Status        *models.Status
	Category      *string
	CategoryColor *string
	BorderColor   *string
}

const taskColumns = `id, project_id, title, description, status, category, category_color, border_color, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	t := &models.Task{Assignees: []int{}, AssigneeDetails: []*models.User{}}
	var description sql.NullString
	var status string
	if err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &description, &status,
		&t.Category, &t.CategoryColor, &t.BorderColor, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Description = NullStringToString(description)
	t.Status = models.Status(status)
	return t, nil
}

// ListTasksByProject returns a project's tasks, newest first
func (r *TaskRepo) ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at DESC, id DESC`,
		projectID)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list tasks of project %d: %w", projectID, err))
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask fetches a task by id
func (r *TaskRepo) GetTask(ctx context.Context, id int) (*models.Task, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	t, err := scanTask(q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("Task not found")
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get task %d: %w", id, err))
	}
	return t, nil
}

// CreateTask inserts the task row and sets t.ID. Assignees are written separately.
func (r *TaskRepo) CreateTask(ctx context.Context, t *models.Task) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO tasks (project_id, title, description, status, category, category_color, border_color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID, t.Title, nullString(t.Description), string(t.Status),
		t.Category, t.CategoryColor, t.BorderColor, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return classify(fmt.Errorf("failed to create task: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = int(id)
	return nil
}

// UpdateTask applies the non-nil fields of patch and refreshes updated_at
func (r *TaskRepo) UpdateTask(ctx context.Context, id int, patch TaskPatch, now time.Time) error {
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
	if patch.Status != nil {
		b.set("status", string(*patch.Status))
	}
	if patch.Category != nil {
		b.set("category", *patch.Category)
	}
	if patch.CategoryColor != nil {
		b.set("category_color", *patch.CategoryColor)
	}
	if patch.BorderColor != nil {
		b.set("border_color", *patch.BorderColor)
	}
	b.set("updated_at", now)

	result, err := q.ExecContext(ctx,
		`UPDATE tasks SET `+b.clause()+` WHERE id = ?`, append(b.args, id)...)
	if err != nil {
		return classify(fmt.Errorf("failed to update task %d: %w", id, err))
	}
	return rowsAffected(result, "Task not found")
}

// DeleteTask removes a task and its assignment rows
func (r *TaskRepo) DeleteTask(ctx context.Context, id int) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = ?`, id); err != nil {
		return classify(fmt.Errorf("failed to delete assignees of task %d: %w", id, err))
	}

	result, err := q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete task %d: %w", id, err))
	}
	return rowsAffected(result, "Task not found")
}

// DeleteTasksByProject removes every task of a project and their assignment rows
func (r *TaskRepo) DeleteTasksByProject(ctx context.Context, projectID int) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx,
		`DELETE FROM task_assignees WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)`,
		projectID); err != nil {
		return classify(fmt.Errorf("failed to delete assignees of project %d: %w", projectID, err))
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, projectID); err != nil {
		return classify(fmt.Errorf("failed to delete tasks of project %d: %w", projectID, err))
	}
	return nil
}

// ============================================================================
// Assignment
// ============================================================================

// SetTaskAssignees replaces all assignees on a task.
// Removes existing assignments and adds the new set.
func (r *TaskRepo) SetTaskAssignees(ctx context.Context, taskID int, userIDs []int) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = ?`, taskID); err != nil {
		return classify(fmt.Errorf("failed to clear assignees of task %d: %w", taskID, err))
	}

	for _, userID := range userIDs {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO task_assignees (task_id, user_id) VALUES (?, ?)`, taskID, userID); err != nil {
			return classify(fmt.Errorf("failed to assign user %d to task %d: %w", userID, taskID, err))
		}
	}
	return nil
}

// AssigneesByTasks resolves the assignees of each task in one query.
// Every requested id is present in the result, possibly with an empty slice.
func (r *TaskRepo) AssigneesByTasks(ctx context.Context, taskIDs []int) (map[int][]*models.User, error) {
	assignees := make(map[int][]*models.User, len(taskIDs))
	for _, id := range taskIDs {
		assignees[id] = []*models.User{}
	}
	if len(taskIDs) == 0 {
		return assignees, nil
	}

	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT ta.task_id, u.id, u.name, u.avatar, u.created_at, u.updated_at
		FROM task_assignees ta
		INNER JOIN users u ON u.id = ta.user_id
		WHERE ta.task_id IN (`+placeholders(len(taskIDs))+`)
		ORDER BY u.id`,
		intArgs(taskIDs)...)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to load assignees: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var taskID int
		var avatar sql.NullString
		u := &models.User{}
		if err := rows.Scan(&taskID, &u.ID, &u.Name, &avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Avatar = NullStringToString(avatar)
		assignees[taskID] = append(assignees[taskID], u)
	}
	return assignees, rows.Err()
}
