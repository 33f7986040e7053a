package project

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/cli"
	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// AddMemberCmd returns the project add-member subcommand
func AddMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-member",
		Short: "Add a user to a project",
		Long: `Add a user to a project. Adding an existing member is a no-op.

Examples:
  flowboard project add-member --project=1 --user=2
`,
		RunE: runAddMember,
	}

	cmd.Flags().Int("project", 0, "Project ID (required)")
	cmd.Flags().Int("user", 0, "User ID (required)")
	markRequired(cmd, "project", "user")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAddMember(cmd *cobra.Command, args []string) error {
	c, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	projectID, _ := cmd.Flags().GetInt("project")
	userID, _ := cmd.Flags().GetInt("user")

	p, err := c.Client.AddMember(cmd.Context(), projectID, userID)
	if err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		formatter.IDs(p.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.Success(converters.ProjectToWire(p))
	}

	formatter.Printf("%s User %d is a member of '%s'\n", cli.SuccessStyle.Render("✓"), userID, p.Title)
	formatter.Printf("  %s %s\n", cli.LabelStyle.Render("Members:"), memberNames(p))
	return nil
}

// RemoveMemberCmd returns the project remove-member subcommand
func RemoveMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-member",
		Short: "Remove a user from a project",
		RunE:  runRemoveMember,
	}

	cmd.Flags().Int("project", 0, "Project ID (required)")
	cmd.Flags().Int("user", 0, "User ID (required)")
	markRequired(cmd, "project", "user")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRemoveMember(cmd *cobra.Command, args []string) error {
	c, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	projectID, _ := cmd.Flags().GetInt("project")
	userID, _ := cmd.Flags().GetInt("user")

	if err := c.Client.RemoveMember(cmd.Context(), projectID, userID); err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		formatter.IDs(projectID)
		return nil
	}

	if formatter.JSON {
		return formatter.Success(map[string]any{"project_id": projectID, "user_id": userID})
	}

	formatter.Printf("%s User %d removed from project %d\n", cli.SuccessStyle.Render("✓"), userID, projectID)
	return nil
}

func memberNames(p *models.Project) string {
	names := make([]string, 0, len(p.Members))
	for _, m := range p.Members {
		names = append(names, m.Name)
	}
	return strings.Join(names, ", ")
}

func taskCount(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
