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

	httpapi "github.com/verdant-events/guestlist/internal/guestlist/http"
	"github.com/verdant-events/guestlist/internal/guestlist/notify"
	"github.com/verdant-events/guestlist/internal/guestlist/service"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/verdant-events/guestlist/internal/guestlist/store/drivers/sqlite"
	"github.com/verdant-events/guestlist/pkg/cryptox"
	"github.com/verdant-events/guestlist/pkg/jwtx"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

const (
	// BuildVersion identifies the running build in logs and health output.
	BuildVersion = "v0.1.0"

	readHeaderTimeout = 3 * time.Second
)

// Application encapsulates the guestlist service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	tokens *jwtx.HS256

	// Services
	authService      *service.AuthService
	guestService     *service.GuestService
	claimService     *service.ClaimService
	rsvpService      *service.RSVPService
	broadcastService *service.BroadcastService
	bootstrapService *service.BootstrapService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "guestlist",
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

	if err := app.initTokenSigner(); err != nil {
		return nil, err
	}

	app.initServices()

	if err := app.bootstrapAdmin(); err != nil {
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("guestlist service starting",
		"port", app.cfg.Port,
		"root_path", app.cfg.RootPath,
		"version", BuildVersion,
	)

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

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down guestlist service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("guestlist service stopped")
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

// initTokenSigner sets up the HS256 signer. Outside dev an explicit secret
// is required, otherwise issued tokens would be invalidated by any restart.
func (app *Application) initTokenSigner() error {
	secret := app.cfg.TokenSecret
	if secret == "" {
		if app.cfg.Env != "dev" {
			return errors.New("AUTH_TOKEN_SECRET is required outside dev")
		}
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate token secret: %w", err)
		}
		secret = generated
		app.logger.Warn("AUTH_TOKEN_SECRET not set; generated an ephemeral secret, tokens will not survive restarts")
	}

	app.tokens = jwtx.NewHS256([]byte(secret), app.cfg.TokenIssuer)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:    app.db,
		Tokens:   app.tokens,
		TokenTTL: app.cfg.TokenTTL,
	}

	app.guestService = &service.GuestService{Store: app.db}
	app.claimService = &service.ClaimService{Store: app.db}
	app.rsvpService = &service.RSVPService{Store: app.db}

	messenger := notify.NewWhatsAppClient(app.cfg.WhatsAppPhoneID, app.cfg.WhatsAppAccessToken)
	if !messenger.Enabled() {
		app.logger.Warn("whatsapp credentials missing; broadcast sends will fail and be counted as such")
	}
	app.broadcastService = &service.BroadcastService{
		Store:     app.db,
		Messenger: messenger,
	}

	app.bootstrapService = &service.BootstrapService{
		Store:    app.db,
		Username: app.cfg.AdminUsername,
		Password: app.cfg.AdminPassword,
	}
}

// bootstrapAdmin seeds the first admin on an empty database. When no
// password is configured one is generated and logged exactly once so the
// operator can log in and rotate it.
func (app *Application) bootstrapAdmin() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	created, generated, err := app.bootstrapService.EnsureAdmin(ctx)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	if created && generated != "" {
		app.logger.Warn("bootstrap admin password generated; rotate after first login",
			"username", app.cfg.AdminUsername,
			"password", generated,
		)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.tokens, BuildVersion, app.db, app.logger)

	// Wire services to router
	router.AuthService = app.authService
	router.GuestService = app.guestService
	router.ClaimService = app.claimService
	router.RSVPService = app.rsvpService
	router.BroadcastService = app.broadcastService
	router.ApplyRoutes()

	app.router = router

	// Mount under the deployment root path prefix when configured
	var handler http.Handler = router
	if app.cfg.RootPath != "" {
		outer := http.NewServeMux()
		outer.Handle(app.cfg.RootPath+"/", http.StripPrefix(app.cfg.RootPath, router))
		handler = outer
	}

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
