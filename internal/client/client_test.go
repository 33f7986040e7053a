package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/flowboard/internal/api"
	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/database"
	"github.com/thenoetrevino/flowboard/internal/models"
	projectservice "github.com/thenoetrevino/flowboard/internal/services/project"
	taskservice "github.com/thenoetrevino/flowboard/internal/services/task"
	userservice "github.com/thenoetrevino/flowboard/internal/services/user"
	"github.com/thenoetrevino/flowboard/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, repo *database.Repository) *Client {
	t.Helper()
	s := api.NewServer(api.Deps{
		Users:    userservice.NewService(repo, time.Minute),
		Projects: projectservice.NewService(repo),
		Tasks:    taskservice.NewService(repo),
		Store:    repo,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, api.Config{})

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", WithHTTPClient(ts.Client()))
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	repo, _ := testutil.SetupTestRepository(t)
	return serve(t, repo)
}

func TestClient_BoardRoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	ctx := context.Background()

	ana, err := c.CreateUser(ctx, converters.CreateUserBody{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", ana.Name)
	assert.Empty(t, ana.Avatar)

	project, err := c.CreateProject(ctx, converters.CreateProjectBody{Title: "Launch", Description: "Q3"})
	require.NoError(t, err)
	assert.Equal(t, "Q3", project.Description)

	project, err = c.AddMember(ctx, project.ID, ana.ID)
	require.NoError(t, err)
	require.Len(t, project.Members, 1)
	assert.Equal(t, "Ana", project.Members[0].Name)

	task, err := c.CreateTask(ctx, converters.CreateTaskBody{
		ProjectID: project.ID,
		Title:     "Write copy",
		Assignees: []int{ana.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, []int{ana.ID}, task.Assignees)

	moved, err := c.MoveTask(ctx, task.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, moved.Status)

	groups, err := c.ListTasks(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, groups.Todo)
	require.Len(t, groups.Completed, 1)
	assert.Equal(t, task.ID, groups.Completed[0].ID)

	projects, err := c.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 1, projects[0].TaskCount)

	title := "Write better copy"
	updated, err := c.UpdateTask(ctx, task.ID, converters.UpdateTaskBody{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	require.NoError(t, c.DeleteTask(ctx, task.ID))
	require.NoError(t, c.RemoveMember(ctx, project.ID, ana.ID))

	p, err := c.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.TaskCount)
	assert.Empty(t, p.Members)

	require.NoError(t, c.DeleteProject(ctx, project.ID))
	require.NoError(t, c.DeleteUser(ctx, ana.ID))

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestClient_MapsErrorKinds(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.GetProject(ctx, 42)
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "Project not found", models.Message(err))

	_, err = c.CreateUser(ctx, converters.CreateUserBody{})
	require.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.Equal(t, "Name is required", models.Message(err))

	_, err = c.MoveTask(ctx, 1, models.Status("done"))
	require.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.Equal(t, "Invalid status. Must be: todo, in-progress, or completed", models.Message(err))
}

func TestClient_StoreDown(t *testing.T) {
	t.Parallel()
	c := serve(t, database.NewRepository(nil))

	_, err := c.ListProjects(context.Background())
	require.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Equal(t, "Failed to fetch projects", models.Message(err))

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "degraded", h.Status)
}

func TestClient_ServerUnreachable(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(url, WithTimeout(time.Second))
	_, err := c.ListUsers(context.Background())
	require.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "API unreachable")
}

func TestClient_NonEnvelopeError(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	_, err := New(ts.URL).ListUsers(context.Background())
	require.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Equal(t, "Bad Gateway", models.Message(err))
}

func TestWithTimeout_LeavesSharedClientAlone(t *testing.T) {
	t.Parallel()
	shared := &http.Client{Timeout: time.Minute}

	c := New("http://localhost:5000", WithHTTPClient(shared), WithTimeout(2*time.Second))

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 2*time.Second, c.http.Timeout)
	assert.NotSame(t, shared, c.http)
}
