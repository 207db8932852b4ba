package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/promanage/promanage-api/internal/api"
	apiMiddleware "github.com/promanage/promanage-api/internal/api/middleware"
	"github.com/promanage/promanage-api/internal/config"
	"github.com/promanage/promanage-api/internal/platform/postgres"
	"github.com/promanage/promanage-api/internal/service/auth"
	"github.com/promanage/promanage-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure a single wiring point for the HTTP layer.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier

	// HTTP handlers
	userHandler    *api.UserHandler
	taskHandler    *api.TaskHandler
	authMiddleware *apiMiddleware.AuthMiddleware
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hashing
	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewUserStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)

	// Initialize HTTP handlers and middleware
	app.userHandler = api.NewUserHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	app.taskHandler = api.NewTaskHandler(app.taskStore, app.userStore)
	app.authMiddleware = apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	logger.Info("Application initialized successfully")
	return app, nil
}
