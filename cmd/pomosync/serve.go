package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pomosync/internal/clock"
	"pomosync/internal/config"
	"pomosync/internal/db"
	"pomosync/internal/handler"
	"pomosync/internal/repository"
	"pomosync/internal/router"
	"pomosync/internal/service"
	"pomosync/migrations"
)

const shutdownTimeout = 5 * time.Second

type serveFlags struct {
	port   string
	dbPath string
}

func newServeCmd() *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the timer service",
		Long: `Run the timer HTTP service. Settings come from the environment
(PORT, DB_PATH, MIGRATIONS_DIR, CORS_ORIGINS, PREFERENCES_PATH,
TICK_INTERVAL_MS, LOG_LEVEL); flags override them.

Press Ctrl+C to stop. State is saved on the way out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if flags.port != "" {
				cfg.Port = flags.port
			}
			if flags.dbPath != "" {
				cfg.DBPath = flags.dbPath
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&flags.port, "port", "", "Listen port (overrides PORT)")
	cmd.Flags().StringVar(&flags.dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	return cmd
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runServe(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	logger := newLogger(cfg.LogLevel)

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, db.MigrationSource(cfg.MigrationsDir, migrations.FS)); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	prefsFile := config.NewPreferencesFile(cfg.PreferencesPath, nil)
	prefs, err := prefsFile.Load()
	if err != nil {
		logger.Warn("load preferences, using defaults", "path", cfg.PreferencesPath, "error", err)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	states := repository.NewStateRepository(repository.NewKVRepository(database), logger)
	pomodoroService := service.NewPomodoroService(ctx, service.Dependencies{
		Store:       states,
		Preferences: prefsFile,
		Modes:       prefsFile.Modes,
		Initial:     prefs,
		Logger:      logger,
		NewHeartbeat: func(lane sync.Locker) clock.Heartbeat {
			return clock.NewTicker(cfg.TickInterval, lane)
		},
	})

	engine := router.New(router.Handlers{
		Pomodoro: handler.NewPomodoroHandler(pomodoroService),
		Goals:    handler.NewGoalHandler(pomodoroService),
		Media:    handler.NewMediaHandler(pomodoroService),
	}, cfg.CORSOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("pomosync listening", "addr", server.Addr, "db", cfg.DBPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		runErr = fmt.Errorf("run server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	if err := pomodoroService.Shutdown(shutdownCtx); err != nil {
		logger.Error("final save", "error", err)
		if runErr == nil {
			runErr = fmt.Errorf("final save: %w", err)
		}
	}
	return runErr
}
