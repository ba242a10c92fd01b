package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clearlens/camwatch/internal/cache"
	httpapi "github.com/clearlens/camwatch/internal/http"
	"github.com/clearlens/camwatch/internal/objstore"
	"github.com/clearlens/camwatch/internal/service"
	"github.com/clearlens/camwatch/internal/store"
	"github.com/clearlens/camwatch/internal/store/drivers/sqlite"
	"github.com/clearlens/camwatch/pkg/cryptox"
	"github.com/clearlens/camwatch/pkg/jwtx"
	"github.com/clearlens/camwatch/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the camwatch auth service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	sessions cache.Cache
	objects  objstore.Store
	codec    *jwtx.Codec

	// Services
	authService   *service.AuthService
	userService   *service.UserService
	cameraService *service.CameraService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "camwatch",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initObjectStore(); err != nil {
		_ = app.sessions.Close()
		_ = app.db.Close()
		return nil, err
	}

	codec, err := jwtx.NewCodec([]byte(cfg.JWTSecret), cfg.Issuer, []string{cfg.Audience})
	if err != nil {
		_ = app.sessions.Close()
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("camwatch service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down camwatch service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Close the session cache connection
	if err := app.sessions.Close(); err != nil {
		app.logger.Error("error closing session cache", "error", err)
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("camwatch service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initCache connects the Redis-backed session cache
func (app *Application) initCache() error {
	sessions, err := cache.NewRedisCache(cache.Config{
		URL: app.cfg.RedisURL,
		TTL: app.cfg.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session cache: %w", err)
	}
	app.sessions = sessions

	app.logger.Info("session cache connected")
	return nil
}

// initObjectStore connects the S3-compatible object store
func (app *Application) initObjectStore() error {
	objects, err := objstore.NewMinioStore(objstore.Config{
		Endpoint:  app.cfg.S3Endpoint,
		AccessKey: app.cfg.S3AccessKey,
		SecretKey: app.cfg.S3SecretKey,
		UseSSL:    app.cfg.S3UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object store: %w", err)
	}
	app.objects = objects
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Codec:      app.codec,
		Store:      app.db,
		Cache:      app.sessions,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}

	app.userService = &service.UserService{
		Store:  app.db,
		Auth:   app.authService,
		Sender: service.NopCodeSender{},
	}

	app.cameraService = &service.CameraService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.AuthService = app.authService
	router.UserService = app.userService
	router.CameraService = app.cameraService
	router.ObjectStore = app.objects
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
