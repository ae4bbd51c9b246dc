package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/rendezvous/internal/members/http"
	"github.com/aussiebroadwan/rendezvous/internal/members/media"
	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/internal/members/store/drivers/sqlite"
	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/cryptox"
	"github.com/aussiebroadwan/rendezvous/pkg/jwtx"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application holds the members service and all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	blobs  *media.LocalStore
	signer *jwtx.HS512
	hasher *cryptox.PasswordHasher

	// Services
	credentialService   *service.CredentialService
	roleService         *service.RoleService
	authService         *service.AuthService
	userService         *service.UserService
	photoService        *service.PhotoService
	moderationService   *service.ModerationService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server  *http.Server
	router  *httpapi.Router
	running bool
}

// New creates an Application with every dependency initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "members-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSecurity(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	blobs, err := media.NewLocalStore(cfg.BlobDir, cfg.BlobBaseURL)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.blobs = blobs

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler is the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()
	app.running = true

	app.logger.Info("members service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops housekeeping and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down members service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.running {
		app.housekeepingService.Stop()
		app.running = false
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("members service stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
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

// initSecurity loads the pepper and the token signing secret.
func (app *Application) initSecurity() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	secret, err := LoadSigningSecret(app.cfg, app.logger)
	if err != nil {
		return fmt.Errorf("failed to load signing secret: %w", err)
	}
	app.signer, err = jwtx.NewHS512(secret, app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.credentialService = &service.CredentialService{Store: app.db, Hasher: app.hasher}
	app.roleService = &service.RoleService{Store: app.db}
	app.authService = &service.AuthService{
		Credentials: app.credentialService,
		Roles:       app.roleService,
		Tokens: &service.TokenService{
			Signer: app.signer,
			Issuer: app.cfg.Issuer,
			TTL:    jwtx.AccessTokenTTL,
		},
	}
	app.userService = &service.UserService{Store: app.db}
	app.photoService = &service.PhotoService{Store: app.db, Blobs: app.blobs}
	app.moderationService = &service.ModerationService{
		Store:       app.db,
		Blobs:       app.blobs,
		BlobTimeout: app.cfg.BlobDeleteTimeout,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:       app.db,
		Credentials: app.credentialService,
		Token:       app.cfg.BootstrapToken,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.moderationService,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.RejectedRetention,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		authz.New(app.signer),
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.CredentialService = app.credentialService
	router.RoleService = app.roleService
	router.UserService = app.userService
	router.PhotoService = app.photoService
	router.ModerationService = app.moderationService
	router.BootstrapService = app.bootstrapService
	router.Media = app.blobs.Handler()
	router.MaxUploadBytes = app.cfg.MaxUploadBytes
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
