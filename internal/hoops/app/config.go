package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"

	"github.com/aussiebroadwan/hoops/internal/hoops/authn"
	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/pkg/cryptox"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultCORSOrigins = "http://localhost:5173,http://localhost:3000"
)

type Config struct {
	Env                 string        `env:"ENV,default=dev"`                          // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL,default=info"`                   // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT,default=json"`                  // json, text
	Port                int           `env:"PORT,default=8000"`                        // HTTP server port
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD,default=10s"`        // Graceful shutdown timeout
	APIPrefix           string        `env:"API_PREFIX,default=/api"`                  // Prefix for every API route
	CORSOrigins         string        `env:"CORS_ORIGINS"`                             // Comma separated allow-list
	DatabaseDriver      string        `env:"DATABASE_DRIVER,default=sqlite"`           // sqlite, postgres
	DatabaseFile        string        `env:"DATABASE_FILE,default=hoops.db"`           // SQLite file
	DatabaseURL         string        `env:"DATABASE_URL"`                             // Postgres connection string
	AuthStrategies      string        `env:"AUTH_STRATEGIES,default=static"`           // Comma separated: static, session, external
	IdentityTimeout     time.Duration `env:"IDENTITY_TIMEOUT,default=5s"`              // Per-call bound on the identity provider
	PepperFile          string        `env:"PEPPER_FILE,default=pepper"`               // Empty disables the password pepper
	TokenIssuer         string        `env:"TOKEN_ISSUER,default=hoops"`               // iss claim of session tokens
	Algorithm           string        `env:"ALGORITHM,default=HS256"`                  // HS256, HS384, HS512
	AccessTokenMinutes  int           `env:"ACCESS_TOKEN_EXPIRE_MINUTES,default=1440"` // Session token lifetime

	// APIToken is the shared secret of the static strategy.
	APIToken string `env:"API_TOKEN,default=shooting-game-api-token-2024"`

	// SecretKey signs session tokens. Empty means an ephemeral key.
	SecretKey string `env:"SECRET_KEY"`

	PasswordHashAlgorithm string `env:"PASSWORD_HASH_ALGORITHM,default=bcrypt"`
	PasswordHashCost      int    `env:"PASSWORD_HASH_COST"`

	// The admin account is seeded at startup when the session strategy is
	// enabled. An empty password is generated and written to
	// AdminPasswordFile, readable by the owner only.
	DefaultAdminEmail    string `env:"DEFAULT_ADMIN_EMAIL,default=admin@example.com"`
	DefaultAdminPassword string `env:"DEFAULT_ADMIN_PASSWORD"`
	AdminPasswordFile    string `env:"ADMIN_PASSWORD_FILE,default=admin-password"`

	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	FirebaseJWKSURL         string `env:"FIREBASE_JWKS_URL"`
	FirebaseDirectoryURL    string `env:"FIREBASE_DIRECTORY_URL"`

	// Filled in by LoadConfig.
	Strategies []string
	Origins    []string
	RateLimits httpx.RateLimitProfiles
}

// LoadConfig reads the environment. Malformed values are reported rather
// than silently replaced with defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	cfg.RateLimits = httpx.RateLimitProfilesFromEnv()

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.CORSOrigins == "" {
		c.CORSOrigins = defaultCORSOrigins
	}
	c.Origins = splitList(c.CORSOrigins)

	strategies, err := authn.ParseStrategies(c.AuthStrategies)
	if err != nil {
		return err
	}
	c.Strategies = strategies

	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	c.PasswordHashAlgorithm = strings.ToLower(strings.TrimSpace(c.PasswordHashAlgorithm))
	c.Algorithm = strings.ToUpper(strings.TrimSpace(c.Algorithm))
	c.APIPrefix = "/" + strings.Trim(strings.TrimSpace(c.APIPrefix), "/")
	if c.APIPrefix == "/" {
		c.APIPrefix = ""
	}
	return c.Validate()
}

// Validate checks the combinations the environment decoder cannot.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if c.ShutdownGracePeriod <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_GRACE_PERIOD must be positive"))
	}

	switch cryptox.Algorithm(c.PasswordHashAlgorithm) {
	case cryptox.AlgorithmBcrypt, cryptox.AlgorithmArgon2id:
	default:
		errs = append(errs, fmt.Errorf("unknown PASSWORD_HASH_ALGORITHM %q", c.PasswordHashAlgorithm))
	}

	if c.Enabled(domain.StrategyStatic) && c.APIToken == "" {
		errs = append(errs, errors.New("API_TOKEN is required for the static strategy"))
	}
	if c.Enabled(domain.StrategySession) {
		if c.AccessTokenMinutes <= 0 {
			errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
		}
		if c.DefaultAdminEmail == "" {
			errs = append(errs, errors.New("DEFAULT_ADMIN_EMAIL is required for the session strategy"))
		}
		if c.DefaultAdminPassword == "" && c.AdminPasswordFile == "" {
			errs = append(errs, errors.New("ADMIN_PASSWORD_FILE is required when DEFAULT_ADMIN_PASSWORD is empty"))
		}
	}
	if c.Enabled(domain.StrategyExternal) && c.FirebaseProjectID == "" {
		errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required for the external strategy"))
	}

	return errors.Join(errs...)
}

// Enabled reports whether the named strategy was configured.
func (c Config) Enabled(strategy string) bool {
	return slices.Contains(c.Strategies, strategy)
}

// AccessTokenTTL is the configured session token lifetime.
func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenMinutes) * time.Minute
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
