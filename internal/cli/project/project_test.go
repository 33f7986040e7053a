package project

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

func runProject(t *testing.T, url string, stdin string, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "flowboard"}
	cli.AddGlobalFlags(root)
	root.AddCommand(ProjectCmd())
	root.SetIn(strings.NewReader(stdin))
	return testutil.ExecuteCommand(t, root, append(append([]string{"project"}, args...), "--api-url", url)...)
}

func TestProjectCreate_JSON(t *testing.T) {
	testutil.IsolateConfig(t)
	url, _ := apitest.Serve(t)

	out, err := runProject(t, url, "", "create", "--title", "Website Redesign", "--description", "Q3", "--json")
	require.NoError(t, err)

	var resp struct {
		Success bool               `json:"success"`
		Data    converters.Project `json:"data"`
	}
	testutil.ParseJSON(t, out, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Website Redesign", resp.Data.Title)
	require.NotNil(t, resp.Data.Description)
	assert.Equal(t, "Q3", *resp.Data.Description)
	assert.Equal(t, models.DefaultProjectColor, resp.Data.Color)
	assert.Equal(t, 0, resp.Data.TaskCount)
}

func TestProjectCreate_BlankTitle(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)

	_, err := runProject(t, url, "", "create", "--title", "  ")
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	assert.Equal(t, 0, testutil.CountRows(t, db, "SELECT COUNT(*) FROM projects"))
}

func TestProjectList(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)

	out, err := runProject(t, url, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found")

	projectID := testutil.CreateTestProject(t, db, "Launch")
	testutil.CreateTestProject(t, db, "Hiring")
	testutil.CreateTestTask(t, db, projectID, "Write copy", models.StatusTodo)

	out, err = runProject(t, url, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 projects")
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "1 task")
	assert.Contains(t, out, "Hiring")

	out, err = runProject(t, url, "", "list", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, strings.Fields(out), "newest first")
}

func TestProjectMembers(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := strconv.Itoa(testutil.CreateTestProject(t, db, "Launch"))
	userID := strconv.Itoa(testutil.CreateTestUser(t, db, "Ana"))

	out, err := runProject(t, url, "", "add-member", "--project", projectID, "--user", userID)
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")

	// adding twice keeps a single membership
	_, err = runProject(t, url, "", "add-member", "--project", projectID, "--user", userID)
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CountRows(t, db, "SELECT COUNT(*) FROM project_members"))

	_, err = runProject(t, url, "", "add-member", "--project", projectID, "--user", "999", "--json")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	_, err = runProject(t, url, "", "remove-member", "--project", projectID, "--user", userID, "--quiet")
	require.NoError(t, err)
	assert.Equal(t, 0, testutil.CountRows(t, db, "SELECT COUNT(*) FROM project_members"))
}

func TestProjectDelete(t *testing.T) {
	testutil.IsolateConfig(t)
	url, db := apitest.Serve(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")
	testutil.CreateTestTask(t, db, projectID, "Write copy", models.StatusTodo)
	id := strconv.Itoa(projectID)

	out, err := runProject(t, url, "no\n", "delete", "--id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	assert.Equal(t, 1, testutil.CountRows(t, db, "SELECT COUNT(*) FROM projects"))

	out, err = runProject(t, url, "", "delete", "--id", id, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted successfully")
	assert.Equal(t, 0, testutil.CountRows(t, db, "SELECT COUNT(*) FROM projects"))
	assert.Equal(t, 0, testutil.CountRows(t, db, "SELECT COUNT(*) FROM tasks"))

	_, err = runProject(t, url, "", "delete", "--id", id, "--force")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}
