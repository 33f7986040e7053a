package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/flowboard/internal/models"
	"github.com/thenoetrevino/flowboard/internal/testutil"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit error", &ExitError{Code: ExitNotFound, Err: errors.New("gone")}, ExitNotFound},
		{"wrapped exit error", fmt.Errorf("run: %w", &ExitError{Code: ExitValidation, Err: errors.New("bad")}), ExitValidation},
		{"plain error", errors.New("required flag(s) \"id\" not set"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestFormatter_FailAPI_JSON(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{JSON: true, Out: &out, Err: &out}

	err := f.FailAPI(models.NotFound("Task not found"))
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, ExitCode(err))
	assert.ErrorIs(t, err, models.ErrNotFound)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	testutil.ParseJSON(t, out.String(), &body)
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Task not found", body.Error.Message)
}

func TestFormatter_FailHuman(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Out: &out, Err: &errOut}

	err := f.Invalid("task title cannot be empty")
	assert.Equal(t, ExitValidation, ExitCode(err))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), "task title cannot be empty")

	err = f.FailAPI(models.StoreUnavailable("API unreachable: connection refused"))
	assert.Equal(t, ExitGeneral, ExitCode(err))
	assert.Contains(t, errOut.String(), "API unreachable")
}

func TestFormatter_SuccessAndIDs(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{JSON: true, Out: &out}

	require.NoError(t, f.Success(map[string]int{"id": 4}))
	assert.JSONEq(t, `{"success":true,"data":{"id":4}}`, out.String())

	out.Reset()
	f.IDs(1, 2)
	assert.Equal(t, "1\n2\n", out.String())
}

func TestNewCLI_FlagOverridesConfig(t *testing.T) {
	testutil.IsolateConfig(t)
	t.Setenv("FLOWBOARD_API_URL", "http://from-env:5000")

	var got *CLI
	root := &cobra.Command{Use: "flowboard"}
	AddGlobalFlags(root)
	root.AddCommand(&cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewCLI(cmd)
			got = c
			return err
		},
	})

	_, err := testutil.ExecuteCommand(t, root, "probe")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:5000", got.Client.BaseURL())

	_, err = testutil.ExecuteCommand(t, root, "probe", "--api-url", "http://flag:9000/")
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9000", got.Client.BaseURL())
}

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "": false} {
		cmd := &cobra.Command{}
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetIn(strings.NewReader(input))

		assert.Equal(t, want, Confirm(cmd, "Delete?"), "input %q", input)
		assert.Contains(t, out.String(), "Delete? (y/N)")
	}
}
