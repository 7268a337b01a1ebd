package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/realtime"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	authService         service.AuthService
	teamService         service.TeamService
	taskService         service.TaskService
	commentService      service.CommentService
	notificationService service.NotificationService

	eventEmitter *events.InMemoryEventEmitter
	hub          *realtime.Hub

	registry *prometheus.Registry
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
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

	tx := postgres.NewTransactor(db, logger)
	stores := tx.Stores()

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.authService = service.NewAuthService(stores.Users, app.jwtService, auth.NewBcryptVerifier(), logger)
	app.teamService = service.NewTeamService(stores, logger)
	app.taskService = service.NewTaskService(stores.Tasks, tx, app.eventEmitter, logger)
	app.commentService = service.NewCommentService(stores, tx, app.eventEmitter, logger)
	app.notificationService = service.NewNotificationService(stores.Notifications)

	app.hub = realtime.NewHub(app.commentService, cfg.Realtime.SendBuffer, logger)
	app.eventEmitter.RegisterHandler(app.hub)

	app.registry, err = newRegistry()
	if err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newRegistry creates the Prometheus registry served at /metrics.
func newRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("failed to register process collector: %w", err)
	}
	if err := realtime.RegisterMetrics(reg); err != nil {
		return nil, fmt.Errorf("failed to register realtime metrics: %w", err)
	}
	return reg, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.hub != nil {
		app.hub.Close()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
