// Package user holds all cli commands related to users
//
// e.g., flowboard user ...
package user

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/cli"
	"github.com/thenoetrevino/flowboard/internal/converters"
	osuser "github.com/thenoetrevino/flowboard/internal/user"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())

	return cmd
}

// ListCmd returns the user list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
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

	users, err := c.Client.ListUsers(cmd.Context())
	if err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		for _, u := range users {
			formatter.IDs(u.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Success(converters.UsersToWire(users))
	}

	if len(users) == 0 {
		formatter.Printf("No users found\n")
		return nil
	}

	formatter.Printf("Found %d users:\n\n", len(users))
	for _, u := range users {
		formatter.Printf("  [%d] %s\n", u.ID, u.Name)
	}
	return nil
}

// CreateCmd returns the user create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Long: `Create a new user. The name defaults to the current OS user.

Examples:
  flowboard user create --name="Ana"

  # Quiet mode for bash capture
  USER_ID=$(flowboard user create --name="Ana" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "User name (defaults to the current OS user)")
	cmd.Flags().String("avatar", "", "Avatar URL")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	c, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	avatar, _ := cmd.Flags().GetString("avatar")
	if !cmd.Flags().Changed("name") {
		name = osuser.DisplayName()
	}
	if strings.TrimSpace(name) == "" {
		return formatter.Invalid("user name cannot be empty")
	}

	u, err := c.Client.CreateUser(cmd.Context(), converters.CreateUserBody{Name: name, Avatar: avatar})
	if err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		formatter.IDs(u.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.Success(converters.UserToWire(u))
	}

	formatter.Printf("%s User '%s' created (ID: %d)\n", cli.SuccessStyle.Render("✓"), u.Name, u.ID)
	return nil
}
