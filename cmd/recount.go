package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/app"
	"github.com/thenoetrevino/flowboard/internal/cli"
	"github.com/thenoetrevino/flowboard/internal/database"
	"github.com/thenoetrevino/flowboard/internal/jobs"
)

func recountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recount",
		Short: "Repair project task counters",
		Long: `Recompute every project's task counter from its task rows and fix the
ones that drifted. Runs once against the configured database.`,
		RunE: runRecount,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRecount(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}

	db, _, err := database.Open(cmd.Context(), database.Options{
		URL:          cfg.Database.URL,
		Key:          cfg.Database.Key,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return formatter.Fail("STORE_UNAVAILABLE", fmt.Errorf("failed to open database: %w", err))
	}

	application := app.New(database.NewRepository(db), app.WithLogger(slog.Default()))
	defer application.Close()

	scheduler, err := jobs.NewScheduler(application.ProjectService, application.Metrics, application.Logger, 0)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	repaired, err := scheduler.RunOnce(cmd.Context())
	if err != nil {
		return formatter.FailAPI(err)
	}

	if formatter.Quiet {
		formatter.Printf("%d\n", repaired)
		return nil
	}
	if formatter.JSON {
		return formatter.Success(map[string]any{"repaired": repaired})
	}

	formatter.Printf("%s Repaired %d project counters\n", cli.SuccessStyle.Render("✓"), repaired)
	return nil
}
