// Package cli holds what every command shares: configuration loading, the
// API client, output formatting and exit codes.
package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/client"
	"github.com/thenoetrevino/flowboard/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	Client *client.Client
	Config *config.Config
}

// AddGlobalFlags registers the persistent flags every command reads
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to the config file")
	cmd.PersistentFlags().String("api-url", "", "FlowBoard API URL (overrides config)")
}

// AddOutputFlags registers the agent-friendly output flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// NewCLI loads the configuration and builds an API client for cmd
func NewCLI(cmd *cobra.Command) (*CLI, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.Client.APIURL = apiURL
	}

	InitStyles(cfg.Theme)

	return &CLI{
		Client: client.New(cfg.Client.APIURL, client.WithTimeout(cfg.Client.Timeout)),
		Config: cfg,
	}, nil
}

// Setup builds the CLI and formatter for a command. Initialization failures
// are already reported through the formatter.
func Setup(cmd *cobra.Command) (*CLI, *OutputFormatter, error) {
	formatter := NewFormatter(cmd)
	c, err := NewCLI(cmd)
	if err != nil {
		return nil, formatter, formatter.Fail("INITIALIZATION_ERROR", err)
	}
	return c, formatter, nil
}

// Confirm asks a yes/no question on the command's input
func Confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", prompt)
	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
