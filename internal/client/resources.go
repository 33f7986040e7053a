package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// ============================================================================
// Users
// ============================================================================

func (c *Client) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := call[[]converters.User](ctx, c, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	return converters.UsersFromWire(users), nil
}

func (c *Client) GetUser(ctx context.Context, id int) (*models.User, error) {
	u, err := call[converters.User](ctx, c, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return converters.UserFromWire(u), nil
}

func (c *Client) CreateUser(ctx context.Context, body converters.CreateUserBody) (*models.User, error) {
	u, err := call[converters.User](ctx, c, http.MethodPost, "/api/users", body)
	if err != nil {
		return nil, err
	}
	return converters.UserFromWire(u), nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, body converters.UpdateUserBody) (*models.User, error) {
	u, err := call[converters.User](ctx, c, http.MethodPut, fmt.Sprintf("/api/users/%d", id), body)
	if err != nil {
		return nil, err
	}
	return converters.UserFromWire(u), nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	_, err := call[any](ctx, c, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil)
	return err
}

// ============================================================================
// Projects
// ============================================================================

func (c *Client) ListProjects(ctx context.Context) ([]*models.Project, error) {
	projects, err := call[[]converters.Project](ctx, c, http.MethodGet, "/api/projects", nil)
	if err != nil {
		return nil, err
	}
	return converters.ProjectsFromWire(projects), nil
}

func (c *Client) GetProject(ctx context.Context, id int) (*models.Project, error) {
	p, err := call[converters.Project](ctx, c, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return converters.ProjectFromWire(p), nil
}

func (c *Client) CreateProject(ctx context.Context, body converters.CreateProjectBody) (*models.Project, error) {
	p, err := call[converters.Project](ctx, c, http.MethodPost, "/api/projects", body)
	if err != nil {
		return nil, err
	}
	return converters.ProjectFromWire(p), nil
}

func (c *Client) UpdateProject(ctx context.Context, id int, body converters.UpdateProjectBody) (*models.Project, error) {
	p, err := call[converters.Project](ctx, c, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), body)
	if err != nil {
		return nil, err
	}
	return converters.ProjectFromWire(p), nil
}

func (c *Client) DeleteProject(ctx context.Context, id int) error {
	_, err := call[any](ctx, c, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil)
	return err
}

// AddMember adds a user to a project and returns the project with its members
func (c *Client) AddMember(ctx context.Context, projectID, userID int) (*models.Project, error) {
	p, err := call[converters.Project](ctx, c, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/members", projectID), converters.AddMemberBody{UserID: userID})
	if err != nil {
		return nil, err
	}
	return converters.ProjectFromWire(p), nil
}

func (c *Client) RemoveMember(ctx context.Context, projectID, userID int) error {
	_, err := call[any](ctx, c, http.MethodDelete,
		fmt.Sprintf("/api/projects/%d/members/%d", projectID, userID), nil)
	return err
}

// ============================================================================
// Tasks
// ============================================================================

// ListTasks returns a project's tasks grouped by status
func (c *Client) ListTasks(ctx context.Context, projectID int) (*models.GroupedTasks, error) {
	q := url.Values{"project_id": {strconv.Itoa(projectID)}}
	groups, err := call[converters.TaskGroups](ctx, c, http.MethodGet, "/api/tasks?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return converters.GroupedFromWire(groups), nil
}

func (c *Client) GetTask(ctx context.Context, id int) (*models.Task, error) {
	t, err := call[converters.Task](ctx, c, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return converters.TaskFromWire(t), nil
}

func (c *Client) CreateTask(ctx context.Context, body converters.CreateTaskBody) (*models.Task, error) {
	t, err := call[converters.Task](ctx, c, http.MethodPost, "/api/tasks", body)
	if err != nil {
		return nil, err
	}
	return converters.TaskFromWire(t), nil
}

func (c *Client) UpdateTask(ctx context.Context, id int, body converters.UpdateTaskBody) (*models.Task, error) {
	t, err := call[converters.Task](ctx, c, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), body)
	if err != nil {
		return nil, err
	}
	return converters.TaskFromWire(t), nil
}

// MoveTask changes only the status of a task
func (c *Client) MoveTask(ctx context.Context, id int, status models.Status) (*models.Task, error) {
	t, err := call[converters.Task](ctx, c, http.MethodPatch,
		fmt.Sprintf("/api/tasks/%d/status", id), converters.MoveTaskBody{Status: string(status)})
	if err != nil {
		return nil, err
	}
	return converters.TaskFromWire(t), nil
}

func (c *Client) DeleteTask(ctx context.Context, id int) error {
	_, err := call[any](ctx, c, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil)
	return err
}
