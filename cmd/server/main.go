// Package main implements the entry point for the ProManage API server,
// a task-management backend with token-authenticated users, task boards,
// and per-user analytics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/promanage/promanage-api/internal/config"
	"github.com/promanage/promanage-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run database migrations (up|down|status) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run wires the application together: configuration, logging, database,
// migrations, dependency construction, and finally the HTTP listener. The
// teardown order is the reverse: the listener drains before the database
// connection is closed.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database connection", "error", err)
		}
	}()

	if migrateCmd != "" {
		return runMigrationCommand(db, migrateCmd, appLogger)
	}

	// Normal startup applies pending migrations before serving traffic.
	if err := migrateUp(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
