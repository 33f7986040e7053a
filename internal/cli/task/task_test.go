package task

import (
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/flowboard/internal/cli"
	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/models"
	"github.com/thenoetrevino/flowboard/internal/testutil"
	"github.com/thenoetrevino/flowboard/internal/testutil/apitest"
)

func runTask(t *testing.T, url string, stdin string, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "flowboard"}
	cli.AddGlobalFlags(root)
	root.AddCommand(TaskCmd())
	root.SetIn(strings.NewReader(stdin))
	return testutil.ExecuteCommand(t, root, append(append([]string{"task"}, args...), "--api-url", url)...)
}

func TestTaskCreate_JSON(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")
	userID := testutil.CreateTestUser(t, db, "Ana")

	out, err := runTask(t, url, "", "create",
		"--project", strconv.Itoa(projectID),
		"--title", "Pick fonts",
		"--status", "in-progress",
		"--assignee", strconv.Itoa(userID),
		"--json")
	require.NoError(t, err)

	var resp struct {
		Success bool            `json:"success"`
		Data    converters.Task `json:"data"`
	}
	testutil.ParseJSON(t, out, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Pick fonts", resp.Data.Title)
	assert.Equal(t, "in-progress", resp.Data.Status)
	assert.Equal(t, []int{userID}, resp.Data.Assignees)
	assert.Equal(t, 1, testutil.TaskCount(t, db, projectID))
}

func TestTaskCreate_Quiet(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")

	out, err := runTask(t, url, "", "create", "--project", strconv.Itoa(projectID), "--title", "Ship", "--quiet")
	require.NoError(t, err)

	id, convErr := strconv.Atoi(strings.TrimSpace(out))
	require.NoError(t, convErr)
	assert.Equal(t, 1, testutil.CountRows(t, db, "SELECT COUNT(*) FROM tasks WHERE id = ?", id))
}

func TestTaskCreate_Validation(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := strconv.Itoa(testutil.CreateTestProject(t, db, "Launch"))

	tests := []struct {
		name string
		args []string
	}{
		{"blank title", []string{"--project", projectID, "--title", "   "}},
		{"bad status", []string{"--project", projectID, "--title", "x", "--status", "done"}},
		{"unknown assignee", []string{"--project", projectID, "--title", "x", "--assignee", "999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runTask(t, url, "", append([]string{"create", "--json"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
		})
	}
	assert.Equal(t, 0, testutil.CountRows(t, db, "SELECT COUNT(*) FROM tasks"))
}

func TestTaskCreate_UnknownProject(t *testing.T) {
	testutil.IsolateConfig(t)
	url, _ := apitest.Serve(t)

	out, err := runTask(t, url, "", "create", "--project", "42", "--title", "x", "--json")
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	assert.Contains(t, out, `"NOT_FOUND"`)
}

func TestTaskList_Human(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")
	testutil.CreateTestTask(t, db, projectID, "Write copy", models.StatusTodo)
	testutil.CreateTestTask(t, db, projectID, "Pick fonts", models.StatusCompleted)

	out, err := runTask(t, url, "", "list", "--project", strconv.Itoa(projectID))
	require.NoError(t, err)
	assert.Contains(t, out, "To Do")
	assert.Contains(t, out, "Write copy")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "Pick fonts")
}

func TestTaskList_EmptyProject(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")

	out, err := runTask(t, url, "", "list", "--project", strconv.Itoa(projectID))
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found")
}

func TestTaskMove(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")
	taskID := testutil.CreateTestTask(t, db, projectID, "Write copy", models.StatusTodo)

	out, err := runTask(t, url, "", "move", "--id", strconv.Itoa(taskID), "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "moved to")
	assert.Equal(t, 1, testutil.CountRows(t, db,
		"SELECT COUNT(*) FROM tasks WHERE id = ? AND status = 'completed'", taskID))
}

func TestTaskMove_Errors(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")
	taskID := testutil.CreateTestTask(t, db, projectID, "Write copy", models.StatusTodo)

	_, err := runTask(t, url, "", "move", "--id", strconv.Itoa(taskID), "--status", "archived")
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	_, err = runTask(t, url, "", "move", "--id", "999", "--status", "todo")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	_, err = runTask(t, url, "", "move", "--status", "todo")
	require.Error(t, err)
	assert.Equal(t, cli.ExitGeneral, cli.ExitCode(err), "missing required flag is a cobra error")
}

func TestTaskDelete_Confirmation(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")
	taskID := strconv.Itoa(testutil.CreateTestTask(t, db, projectID, "Write copy", models.StatusTodo))

	out, err := runTask(t, url, "n\n", "delete", "--id", taskID)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	assert.Equal(t, 1, testutil.CountRows(t, db, "SELECT COUNT(*) FROM tasks"))

	out, err = runTask(t, url, "y\n", "delete", "--id", taskID)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted successfully")
	assert.Equal(t, 0, testutil.CountRows(t, db, "SELECT COUNT(*) FROM tasks"))
}

func TestTaskDelete_ForceJSON(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")
	taskID := testutil.CreateTestTask(t, db, projectID, "Write copy", models.StatusTodo)

	out, err := runTask(t, url, "", "delete", "--id", strconv.Itoa(taskID), "--force", "--json")
	require.NoError(t, err)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	testutil.ParseJSON(t, out, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, taskID, resp.Data.ID)
}
