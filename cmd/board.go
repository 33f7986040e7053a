package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/client"
	"github.com/thenoetrevino/flowboard/internal/config"
	"github.com/thenoetrevino/flowboard/internal/logging"
	"github.com/thenoetrevino/flowboard/internal/store"
	"github.com/thenoetrevino/flowboard/internal/tui"
)

func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the terminal board",
		Long: `Open the interactive kanban board against the configured API.

Logs go to ~/.flowboard/logs/flowboard.log so the terminal stays clean.`,
		RunE: runBoard,
	}
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.Init(logging.Options{
		Level:  cfg.Logging.Level,
		Format: "text",
		File:   filepath.Join(dataDir, "logs", "flowboard.log"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logCloser.Close()

	logger.Info("board starting", "api_url", cfg.Client.APIURL)

	api := client.New(cfg.Client.APIURL, client.WithTimeout(cfg.Client.Timeout))
	return tui.Run(cmd.Context(), store.New(api, store.WithLogger(logger)), cfg)
}
