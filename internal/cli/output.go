package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
	Out   io.Writer
	Err   io.Writer
}

// NewFormatter reads the output flags of cmd
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

// Success outputs a JSON envelope around data
func (f *OutputFormatter) Success(data any) error {
	return json.NewEncoder(f.Out).Encode(map[string]any{
		"success": true,
		"data":    data,
	})
}

// IDs prints one id per line, for quiet mode
func (f *OutputFormatter) IDs(ids ...int) {
	for _, id := range ids {
		fmt.Fprintf(f.Out, "%d\n", id)
	}
}

// Printf writes human-readable output
func (f *OutputFormatter) Printf(format string, args ...any) {
	fmt.Fprintf(f.Out, format, args...)
}

// Fail reports err under code and returns it wrapped with its exit code
func (f *OutputFormatter) Fail(code string, err error) error {
	f.Error(code, message(err))
	return &ExitError{Code: exitCodeFor(err), Err: err}
}

// FailAPI reports an error returned by the API client, deriving the code
// from its kind
func (f *OutputFormatter) FailAPI(err error) error {
	code := "API_ERROR"
	switch {
	case errors.Is(err, models.ErrNotFound):
		code = "NOT_FOUND"
	case errors.Is(err, models.ErrInvalidArgument):
		code = "VALIDATION_ERROR"
	}
	return f.Fail(code, err)
}

// Invalid reports a validation failure caught before calling the API
func (f *OutputFormatter) Invalid(msg string) error {
	return f.Fail("VALIDATION_ERROR", models.InvalidArgument(msg))
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, msg string) {
	if f.JSON {
		_ = json.NewEncoder(f.Out).Encode(map[string]any{
			"success": false,
			"error": map[string]any{
				"code":    code,
				"message": msg,
			},
		})
		return
	}

	fmt.Fprintf(f.Err, "%s %s\n", ErrorStyle.Render("Error:"), msg)
}

func message(err error) string {
	var modelErr *models.Error
	if errors.As(err, &modelErr) {
		return modelErr.Msg
	}
	return err.Error()
}
