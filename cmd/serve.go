package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/flowboard/internal/api"
	"github.com/thenoetrevino/flowboard/internal/app"
	"github.com/thenoetrevino/flowboard/internal/config"
	"github.com/thenoetrevino/flowboard/internal/database"
	"github.com/thenoetrevino/flowboard/internal/jobs"
	"github.com/thenoetrevino/flowboard/internal/logging"
	"github.com/thenoetrevino/flowboard/internal/metrics"
	"github.com/thenoetrevino/flowboard/internal/tracing"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	connectTimeout  = 5 * time.Second
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the REST API and the maintenance scheduler until interrupted.

The server starts even when the database cannot be reached; every data
request then fails with a store-unavailable error.`,
		RunE: runServe,
	}
	cmd.Flags().Int("port", 0, "Port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	logger, logCloser, err := logging.Init(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logCloser.Close()

	shutdownTracing, err := tracing.Init(tracing.Config{
		Exporter:       cfg.Tracing.Exporter,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: api.Version,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	application := app.New(openRepository(ctx, cfg, logger),
		app.WithUserTTL(cfg.Cache.UserTTL),
		app.WithMetrics(m),
		app.WithLogger(logger),
	)
	defer application.Close()

	scheduler, err := jobs.NewScheduler(application.ProjectService, m, logger, cfg.Maintenance.RecountInterval)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewServer(application.APIDeps(), api.Config{
			ServiceName: cfg.Tracing.ServiceName,
			BodyLimit:   int64(cfg.Server.BodyLimitMB) << 20,
			CORSOrigins: cfg.Server.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("flowboard api listening", "addr", server.Addr, "version", api.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		return scheduler.Stop()
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openRepository connects to the configured database. Connection failures
// leave the repository without a database so the API can still answer.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) *database.Repository {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, dialect, err := database.Open(ctx, database.Options{
		URL:          cfg.Database.URL,
		Key:          cfg.Database.Key,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		logger.Error("database unavailable, serving without a store", "error", err)
		return database.NewRepository(nil)
	}

	logger.Info("database connected", "dialect", dialect)
	return database.NewRepository(db)
}
