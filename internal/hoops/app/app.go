package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/hoops/internal/hoops/authn"
	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	httpapi "github.com/aussiebroadwan/hoops/internal/hoops/http"
	"github.com/aussiebroadwan/hoops/internal/hoops/identity"
	"github.com/aussiebroadwan/hoops/internal/hoops/service"
	"github.com/aussiebroadwan/hoops/internal/hoops/store"
	"github.com/aussiebroadwan/hoops/internal/hoops/store/drivers/postgres"
	"github.com/aussiebroadwan/hoops/internal/hoops/store/drivers/sqlite"
	"github.com/aussiebroadwan/hoops/pkg/cryptox"
	"github.com/aussiebroadwan/hoops/pkg/jwtx"
	"github.com/aussiebroadwan/hoops/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// ephemeralSecretSize is the byte length of a generated SECRET_KEY.
const ephemeralSecretSize = 32

// Application wires the leaderboard service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	hasher   *cryptox.Hasher
	codec    *jwtx.Codec // nil unless the session strategy is enabled
	identity *identity.Provider
	registry *authn.Registry

	// Services
	accountService     *service.AccountService
	leaderboardService *service.LeaderboardService

	// HTTP server
	server *http.Server
	router *httpapi.Router

	// cancel stops background work scoped to the process, such as JWKS
	// refreshes.
	cancel context.CancelFunc
}

// New creates an Application with all dependencies initialised. The admin
// account is seeded before New returns.
func New(cfg Config) (*Application, error) {
	return NewWithLogger(cfg, slogx.New(slogx.Config{
		Service: "hoops",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

// NewWithLogger is New with a caller supplied logger.
func NewWithLogger(cfg Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{cfg: cfg, logger: logger, cancel: cancel}

	if err := app.init(ctx); err != nil {
		cancel()
		if app.db != nil {
			_ = app.db.Close()
		}
		return nil, err
	}
	return app, nil
}

func (app *Application) init(ctx context.Context) error {
	if err := app.initDatabase(ctx); err != nil {
		return err
	}
	if err := app.initCrypto(); err != nil {
		return err
	}
	if err := app.initStrategies(ctx); err != nil {
		return err
	}

	app.initServices()
	if err := app.seedAdmin(ctx); err != nil {
		return err
	}

	app.initHTTP()
	return nil
}

// Handler is the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return app.Serve(ln)
}

// Serve accepts connections on ln until SIGINT or SIGTERM, then shuts down.
func (app *Application) Serve(ln net.Listener) error {
	app.logger.Info("hoops service starting",
		"addr", ln.Addr().String(),
		"version", BuildVersion,
		"strategies", app.registry.Names(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.Serve(ln)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down hoops service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.cancel()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("hoops service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// OpenStore opens the configured database and applies migrations. Shared
// with hoopsctl.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(cfg.DatabaseFile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// NewHasher builds the password hasher, creating the pepper file on first
// use.
func NewHasher(cfg Config) (*cryptox.Hasher, error) {
	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, err
	}
	return cryptox.NewHasher(cfg.PasswordHashAlgorithm, cfg.PasswordHashCost, pepper)
}

func (app *Application) initCrypto() error {
	hasher, err := NewHasher(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	app.hasher = hasher

	if !app.cfg.Enabled(domain.StrategySession) {
		return nil
	}

	secret := app.cfg.SecretKey
	if secret == "" {
		secret, err = cryptox.GenerateToken(ephemeralSecretSize)
		if err != nil {
			return err
		}
		app.logger.Warn("SECRET_KEY not set, using an ephemeral key; session tokens will not survive a restart")
	}

	app.codec, err = jwtx.NewCodec(jwtx.CodecConfig{
		Alg:    app.cfg.Algorithm,
		Secret: []byte(secret),
		Issuer: app.cfg.TokenIssuer,
		TTL:    app.cfg.AccessTokenTTL(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	return nil
}

// initStrategies builds one verifier per enabled strategy, in the configured
// order.
func (app *Application) initStrategies(ctx context.Context) error {
	var strategies []authn.Strategy

	for _, name := range app.cfg.Strategies {
		switch name {
		case domain.StrategyStatic:
			static := authn.NewStaticToken(app.cfg.APIToken)
			app.logger.Info("static token strategy enabled", "token_fingerprint", static.Fingerprint())
			strategies = append(strategies, static)

		case domain.StrategySession:
			strategies = append(strategies, authn.NewSessionToken(app.codec))
			app.logger.Info("session token strategy enabled", "ttl", app.codec.TTL().String())

		case domain.StrategyExternal:
			provider, err := identity.New(ctx, identity.Config{
				ProjectID:       app.cfg.FirebaseProjectID,
				JWKSURL:         app.cfg.FirebaseJWKSURL,
				DirectoryURL:    app.cfg.FirebaseDirectoryURL,
				CredentialsFile: app.cfg.FirebaseCredentialsPath,
				Timeout:         app.cfg.IdentityTimeout,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize identity provider: %w", err)
			}
			app.identity = provider
			strategies = append(strategies, authn.NewExternalIdentity(provider))
			app.logger.Info("external identity strategy enabled", "project_id", app.cfg.FirebaseProjectID)
		}
	}

	registry, err := authn.NewRegistry(strategies...)
	if err != nil {
		return err
	}
	app.registry = registry
	return nil
}

func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:  app.db,
		Hasher: app.hasher,
		Codec:  app.codec,
	}
	app.leaderboardService = &service.LeaderboardService{Store: app.db}
}

// seedAdmin creates the default admin account when logins are possible.
// A generated password is written to AdminPasswordFile, never to the log.
func (app *Application) seedAdmin(ctx context.Context) error {
	if !app.cfg.Enabled(domain.StrategySession) {
		return nil
	}

	password := app.cfg.DefaultAdminPassword
	generated := password == ""
	if generated {
		var err error
		if password, err = cryptox.GeneratePassword(); err != nil {
			return err
		}
	}

	created, err := app.accountService.EnsureAccount(ctx, app.cfg.DefaultAdminEmail, password)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	switch {
	case !created:
		app.logger.Info("default admin account already exists", "email", app.cfg.DefaultAdminEmail)
	case generated:
		if err := os.WriteFile(app.cfg.AdminPasswordFile, []byte(password+"\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write admin password file: %w", err)
		}
		app.logger.Warn("default admin account created with a generated password",
			"email", app.cfg.DefaultAdminEmail,
			"password_file", app.cfg.AdminPasswordFile,
		)
	default:
		app.logger.Info("default admin account created", "email", app.cfg.DefaultAdminEmail)
	}
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		httpapi.Options{
			Prefix:      app.cfg.APIPrefix,
			CORSOrigins: app.cfg.Origins,
			RateLimits:  app.cfg.RateLimits,
			StaticToken: app.cfg.APIToken,
		},
		BuildVersion,
		app.db,
		app.registry,
		app.logger,
	)

	router.AccountService = app.accountService
	router.LeaderboardService = app.leaderboardService
	if app.identity != nil {
		router.Identity = app.identity
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
