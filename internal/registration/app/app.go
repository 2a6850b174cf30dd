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

	httpapi "github.com/aussiebroadwan/quizbank/internal/registration/http"
	"github.com/aussiebroadwan/quizbank/internal/registration/ledger"
	"github.com/aussiebroadwan/quizbank/internal/registration/notify"
	"github.com/aussiebroadwan/quizbank/internal/registration/service"
	"github.com/aussiebroadwan/quizbank/internal/registration/store"
	"github.com/aussiebroadwan/quizbank/internal/registration/store/drivers/postgres"
	"github.com/aussiebroadwan/quizbank/internal/registration/store/drivers/sqlite"
	"github.com/aussiebroadwan/quizbank/pkg/cryptox"
	"github.com/aussiebroadwan/quizbank/pkg/slogx"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/quizbank/internal/registration/app.BuildVersion=..."
var BuildVersion = "v0.1.0"

const serviceName = "quizbank-registration"

// newTracing is swapped out in tests.
var newTracing = setupTracing

// Application encapsulates the registration service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	ledger   service.Ledger
	notifier service.Notifier

	shutdownTracing func(context.Context) error

	// Services
	registrationService *service.RegistrationService
	authService         *service.AuthService
	accountService      *service.AccountService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Load the pepper now so a bad pepper file fails startup, not the first registration.
	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.ReloadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	ctx := context.Background()

	shutdownTracing, err := newTracing(ctx, cfg.OTelEndpoint, serviceName, BuildVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.shutdownTracing = shutdownTracing

	if err := app.initDatabase(ctx); err != nil {
		_ = app.shutdownTracing(ctx)
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		_ = app.shutdownTracing(ctx)
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("quizbank registration service starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.String("database", app.cfg.DatabaseStatus()),
		slog.String("database_driver", app.cfg.DatabaseDriver),
		slog.String("ledger", app.cfg.LedgerBackend),
		slog.String("mail", app.cfg.MailStatus()),
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
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down quizbank registration service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	app.housekeepingService.Stop()

	if err := app.shutdownTracing(ctx); err != nil {
		app.logger.Warn("error flushing traces", slog.Any("error", err))
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("quizbank registration service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", slog.String("driver", app.cfg.DatabaseDriver))
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	switch app.cfg.LedgerBackend {
	case "store":
		app.ledger = store.NewLedgerAdapter(app.db)
	default:
		app.ledger = ledger.NewMemory()
	}

	switch app.cfg.Notifier {
	case "smtp":
		app.notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:       app.cfg.SMTP.Host,
			Port:       app.cfg.SMTP.Port,
			Username:   app.cfg.SMTP.Username,
			Password:   app.cfg.SMTP.Password,
			From:       app.cfg.SMTP.From,
			SenderName: app.cfg.SMTP.SenderName,
			TLS:        app.cfg.SMTP.TLS,
			Timeout:    app.cfg.SMTP.Timeout,
			CodeTTL:    app.cfg.OTPTTL,
		})
	default:
		app.logger.Warn("using log notifier: one-time codes are written to the log")
		app.notifier = notify.LogNotifier{}
	}

	codes, err := cryptox.NewCodeGenerator(app.cfg.OTPDigits)
	if err != nil {
		return fmt.Errorf("failed to initialize code generator: %w", err)
	}

	hasher := cryptox.Argon2Hasher{}

	app.registrationService = &service.RegistrationService{
		Accounts: app.db.Accounts(),
		Ledger:   app.ledger,
		Hasher:   hasher,
		Notifier: app.notifier,
		Codes:    codes,
		Clock:    time.Now,
		OTPTTL:   app.cfg.OTPTTL,
	}
	app.authService = &service.AuthService{
		Accounts: app.db.Accounts(),
		Hasher:   hasher,
	}
	if app.cfg.StudentListEnabled {
		app.accountService = &service.AccountService{Accounts: app.db.Accounts()}
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.ledger,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.PendingRetention,
	)

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.ledger,
		app.cfg.AllowedOrigins(),
		app.logger,
	)

	// Wire services to router
	router.RegistrationService = app.registrationService
	router.AuthService = app.authService
	router.AccountService = app.accountService // nil when the listing is disabled
	router.Limits = app.cfg.RateLimits
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
