// Package task holds all cli commands related to tasks
//
// e.g., flowboard task ...
package task

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/cli"
	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(MoveCmd())
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

var columnTitles = map[models.Status]string{
	models.StatusTodo:       "To Do",
	models.StatusInProgress: "In Progress",
	models.StatusCompleted:  "Completed",
}

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks by status",
		RunE:  runList,
	}

	cmd.Flags().Int("project", 0, "Project ID (required)")
	markRequired(cmd, "project")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	c, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	projectID, _ := cmd.Flags().GetInt("project")

	groups, err := c.Client.ListTasks(cmd.Context(), projectID)
	if err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		for _, status := range models.Statuses {
			for _, t := range *groups.Group(status) {
				formatter.IDs(t.ID)
			}
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Success(converters.GroupedToWire(groups))
	}

	if groups.Len() == 0 {
		formatter.Printf("No tasks found\n")
		return nil
	}

	for _, status := range models.Statuses {
		tasks := *groups.Group(status)
		formatter.Printf("%s (%d)\n", cli.StatusStyles[status].Render(columnTitles[status]), len(tasks))
		for _, t := range tasks {
			formatter.Printf("  [%d] %s", t.ID, t.Title)
			if names := assigneeNames(t); names != "" {
				formatter.Printf(" %s", cli.SubtitleStyle.Render("@"+names))
			}
			formatter.Printf("\n")
		}
		formatter.Printf("\n")
	}
	return nil
}

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task in a project.

Examples:
  flowboard task create --project=1 --title="Write landing copy"

  # Start in progress, assigned to users 2 and 3
  flowboard task create --project=1 --title="Pick fonts" \
    --status=in-progress --assignee=2 --assignee=3

  # Quiet mode for bash capture
  TASK_ID=$(flowboard task create --project=1 --title="Ship" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().Int("project", 0, "Project ID (required)")
	cmd.Flags().String("title", "", "Task title (required)")
	markRequired(cmd, "project", "title")

	cmd.Flags().String("description", "", "Task description (markdown)")
	cmd.Flags().String("status", "", "Initial status: todo, in-progress, completed")
	cmd.Flags().String("category", "", "Category (defaults to "+models.DefaultCategory+")")
	cmd.Flags().IntSlice("assignee", nil, "Assignee user ID (repeatable)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	c, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	projectID, _ := cmd.Flags().GetInt("project")
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	status, _ := cmd.Flags().GetString("status")
	category, _ := cmd.Flags().GetString("category")
	assignees, _ := cmd.Flags().GetIntSlice("assignee")

	if strings.TrimSpace(title) == "" {
		return formatter.Invalid("task title cannot be empty")
	}
	if status != "" {
		if _, err := models.ParseStatus(status); err != nil {
			return formatter.Fail("VALIDATION_ERROR", err)
		}
	}

	t, err := c.Client.CreateTask(cmd.Context(), converters.CreateTaskBody{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      status,
		Category:    category,
		Assignees:   assignees,
	})
	if err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		formatter.IDs(t.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.Success(converters.TaskToWire(t))
	}

	formatter.Printf("%s Task '%s' created (ID: %d) in %s\n",
		cli.SuccessStyle.Render("✓"), t.Title, t.ID, cli.StatusStyles[t.Status].Render(columnTitles[t.Status]))
	return nil
}

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to another status",
		Long: `Change only the status of a task.

Examples:
  flowboard task move --id=4 --status=completed
`,
		RunE: runMove,
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	cmd.Flags().String("status", "", "Target status: todo, in-progress, completed (required)")
	markRequired(cmd, "id", "status")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	c, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	taskID, _ := cmd.Flags().GetInt("id")
	raw, _ := cmd.Flags().GetString("status")

	status, err := models.ParseStatus(raw)
	if err != nil {
		return formatter.Fail("VALIDATION_ERROR", err)
	}

	t, err := c.Client.MoveTask(cmd.Context(), taskID, status)
	if err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		formatter.IDs(t.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.Success(converters.TaskToWire(t))
	}

	formatter.Printf("%s Task %d moved to %s\n",
		cli.SuccessStyle.Render("✓"), t.ID, cli.StatusStyles[t.Status].Render(columnTitles[t.Status]))
	return nil
}

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task",
		Long:  "Delete a task by ID (requires confirmation unless --force or --quiet).",
		RunE:  runDelete,
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
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

	taskID, _ := cmd.Flags().GetInt("id")
	force, _ := cmd.Flags().GetBool("force")

	t, err := c.Client.GetTask(cmd.Context(), taskID)
	if err != nil {
		return formatter.FailAPI(err)
	}

	if !force && !formatter.Quiet && !formatter.JSON {
		if !cli.Confirm(cmd, fmt.Sprintf("Delete task #%d: '%s'?", t.ID, t.Title)) {
			formatter.Printf("Cancelled\n")
			return nil
		}
	}

	if err := c.Client.DeleteTask(cmd.Context(), taskID); err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		formatter.IDs(taskID)
		return nil
	}

	if formatter.JSON {
		return formatter.Success(map[string]any{"id": taskID})
	}

	formatter.Printf("%s Task %d deleted successfully\n", cli.SuccessStyle.Render("✓"), taskID)
	return nil
}

func assigneeNames(t *models.Task) string {
	names := make([]string, 0, len(t.AssigneeDetails))
	for _, u := range t.AssigneeDetails {
		names = append(names, u.Name)
	}
	return strings.Join(names, ", ")
}
