// Package config handles configuration for the opsapi server: defaults,
// JSON file overlay, environment overlay and command-line flags, applied in
// that order.
package config

import (
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DevSecretKey is the signing secret used when none is configured.
// It is public knowledge: tokens signed with it can be forged by anyone, so
// it must never be used outside local development.
const DevSecretKey = "dev-secret-key-change-me"

// Database drivers understood by the repository manager.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Config holds runtime settings for the opsapi server.
//
// Fields:
//   - HTTPAddr: bind address of the REST API.
//   - GRPCHealthAddr: bind address of the gRPC health endpoint; empty disables it.
//   - DatabaseDriver / DatabaseDSN: "pgx" (PostgreSQL) or "sqlite" and its DSN.
//   - SecretKey: HMAC secret for signing tokens (HS256).
//   - TokenValidityDuration: lifetime of issued tokens.
//   - BcryptCost: work factor for password hashes.
//   - DefaultListLimit / MaxListLimit: operation listing bounds; MaxListLimit 0 means no cap.
//   - LogBackend / LogLevel: "slog" or "logrus", and the minimum level.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	HTTPAddr              string        `env:"HTTP_ADDR"`
	GRPCHealthAddr        string        `env:"GRPC_HEALTH_ADDR"`
	DatabaseDriver        string        `env:"DATABASE_DRIVER"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	SecretKey             string        `env:"SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"TOKEN_VALIDITY_DURATION"`
	BcryptCost            int           `env:"BCRYPT_COST"`
	DefaultListLimit      int           `env:"DEFAULT_LIST_LIMIT"`
	MaxListLimit          int           `env:"MAX_LIST_LIMIT"`
	LogBackend            string        `env:"LOG_BACKEND"`
	LogLevel              string        `env:"LOG_LEVEL"`
	ShutdownTimeout       time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the default secret is insecure; override it in every real deployment.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":5000"
	c.GRPCHealthAddr = ":50051"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "api_system.db"
	c.SecretKey = DevSecretKey
	c.TokenValidityDuration = 24 * time.Hour
	c.BcryptCost = bcrypt.DefaultCost
	c.DefaultListLimit = 10
	c.MaxListLimit = 1000
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
}

// UsesDevSecret reports whether tokens are signed with DevSecretKey.
func (c *Config) UsesDevSecret() bool {
	return c.SecretKey == "" || c.SecretKey == DevSecretKey
}

// LoadConfig builds a Config from defaults, then overlays the optional JSON
// file (-c/-config), environment variables and command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if cfg.SecretKey == "" {
		cfg.SecretKey = DevSecretKey
	}

	return cfg, nil
}
