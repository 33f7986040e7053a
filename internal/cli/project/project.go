// Package project holds all cli commands related to projects
//
// e.g., flowboard project ...
package project

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/cli"
	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(AddMemberCmd())
	cmd.AddCommand(RemoveMemberCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			log.Printf("Error marking flag as required: %v", err)
		}
	}
}

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long:  "List all projects with their task counts and members.",
		RunE:  runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	c, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	projects, err := c.Client.ListProjects(cmd.Context())
	if err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		for _, p := range projects {
			formatter.IDs(p.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Success(converters.ProjectsToWire(projects))
	}

	if len(projects) == 0 {
		formatter.Printf("No projects found\n")
		return nil
	}

	formatter.Printf("Found %d projects:\n\n", len(projects))
	for _, p := range projects {
		formatter.Printf("  [%d] %s %s", p.ID, cli.TitleStyle.Render(p.Title),
			cli.SubtitleStyle.Render(taskCount(p.TaskCount)))
		if p.Description != "" {
			formatter.Printf(" - %s", p.Description)
		}
		formatter.Printf("\n")
		if names := memberNames(p); names != "" {
			formatter.Printf("      %s %s\n", cli.LabelStyle.Render("Members:"), names)
		}
	}
	return nil
}

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project with specified attributes.

Examples:
  # Simple project (human-readable output)
  flowboard project create --title="Website Redesign"

  # JSON output for agents
  flowboard project create --title="Website Redesign" --json

  # Quiet mode for bash capture
  PROJECT_ID=$(flowboard project create --title="Website Redesign" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Project title (required)")
	markRequired(cmd, "title")

	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("color", "", "Project color (defaults to "+models.DefaultProjectColor+")")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	c, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	color, _ := cmd.Flags().GetString("color")

	if strings.TrimSpace(title) == "" {
		return formatter.Invalid("project title cannot be empty")
	}

	p, err := c.Client.CreateProject(cmd.Context(), converters.CreateProjectBody{
		Title:       title,
		Description: description,
		Color:       color,
	})
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

	formatter.Printf("%s Project '%s' created successfully (ID: %d)\n", cli.SuccessStyle.Render("✓"), p.Title, p.ID)
	if p.Description != "" {
		formatter.Printf("  Description: %s\n", p.Description)
	}
	return nil
}

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project",
		Long:  "Delete a project and all of its tasks (requires confirmation unless --force or --quiet).",
		RunE:  runDelete,
	}

	cmd.Flags().Int("id", 0, "Project ID (required)")
	markRequired(cmd, "id")

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	c, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	projectID, _ := cmd.Flags().GetInt("id")
	force, _ := cmd.Flags().GetBool("force")

	p, err := c.Client.GetProject(cmd.Context(), projectID)
	if err != nil {
		return formatter.FailAPI(err)
	}

	if !force && !formatter.Quiet && !formatter.JSON {
		prompt := fmt.Sprintf("Delete project #%d: '%s' and its %s?", p.ID, p.Title, taskCount(p.TaskCount))
		if !cli.Confirm(cmd, prompt) {
			formatter.Printf("Cancelled\n")
			return nil
		}
	}

	if err := c.Client.DeleteProject(cmd.Context(), projectID); err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		formatter.IDs(projectID)
		return nil
	}

	if formatter.JSON {
		return formatter.Success(map[string]any{"id": projectID})
	}

	formatter.Printf("%s Project %d deleted successfully\n", cli.SuccessStyle.Render("✓"), projectID)
	return nil
}
