package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nevo-app/nevo-api/internal/config"
	"github.com/nevo-app/nevo-api/internal/platform/gemini"
	"github.com/nevo-app/nevo-api/internal/platform/postgres"
	"github.com/nevo-app/nevo-api/internal/service"
	"github.com/nevo-app/nevo-api/internal/service/auth"
	"github.com/nevo-app/nevo-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	lessonStore     store.LessonStore
	assessmentStore store.AssessmentStore

	// Service layer
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	userService       *service.UserService
	lessonService     *service.LessonService
	assessmentService *service.AssessmentService
	dashboardService  *service.DashboardService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger, cfg.Auth.BcryptCost)
	app.lessonStore = postgres.NewPostgresLessonStore(db, logger)
	app.assessmentStore = postgres.NewPostgresAssessmentStore(db, logger)

	// The Gemini generator serves both slide variant generation and
	// parent guidance.
	generator, err := gemini.NewGenerator(
		ctx,
		cfg.LLM,
		logger.With("component", "llm_generator"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized successfully", "model", cfg.LLM.ModelName)

	// Services
	app.userService = service.NewUserService(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		logger,
	)
	app.lessonService = service.NewLessonService(app.lessonStore, generator, logger)
	app.assessmentService = service.NewAssessmentService(
		db,
		app.assessmentStore,
		app.userStore,
		logger,
	)
	app.dashboardService = service.NewDashboardService(
		app.userStore,
		app.lessonStore,
		generator,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
