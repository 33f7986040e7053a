package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/cli"
	"github.com/thenoetrevino/flowboard/internal/cli/project"
	"github.com/thenoetrevino/flowboard/internal/cli/task"
	"github.com/thenoetrevino/flowboard/internal/cli/user"
	"github.com/thenoetrevino/flowboard/internal/config"
)

// NewRootCmd builds the flowboard command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flowboard",
		Short: "FlowBoard - a kanban board for projects and tasks",
		Long: `FlowBoard is a kanban board with a REST API, a terminal board and
agent-friendly commands for managing users, projects and tasks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(boardCmd())
	rootCmd.AddCommand(recountCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(task.TaskCmd())

	return rootCmd
}

// Execute runs the command tree under ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.Client.APIURL = apiURL
	}
	return cfg, nil
}
