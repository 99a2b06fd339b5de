// Package config loads runtime settings from the environment.
//
// Variables use the PROJECTMGR_ prefix and a double underscore for nesting,
// so PROJECTMGR_STORE__MAX_OPEN_CONNS maps to Config.Store.MaxOpenConns.
// A .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every recognised environment variable carries.
const EnvPrefix = "PROJECTMGR_"

// Supported store drivers.
const (
	DriverSQLite     = "sqlite3" // github.com/mattn/go-sqlite3
	DriverSQLitePure = "sqlite"  // modernc.org/sqlite
	DriverPostgres   = "pgx"     // github.com/jackc/pgx/v5/stdlib
)

// Config is the root configuration object.
type Config struct {
	Env     string        `koanf:"env" validate:"required"`
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Store   StoreConfig   `koanf:"store" validate:"required"`
	Logging LoggingConfig `koanf:"logging" validate:"required"`
}

// ServerConfig groups settings for the HTTP API.
type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"min=1s"`
}

// StoreConfig describes how the repository reaches its relational store:
// the driver, where the store lives, the credentials and the pool size.
//
// Path is used by the SQLite drivers; Host, Port, User, Password, Name and
// SSLMode by PostgreSQL.
type StoreConfig struct {
	Driver          string        `koanf:"driver" validate:"required,oneof=sqlite3 sqlite pgx"`
	Path            string        `koanf:"path" validate:"required_unless=Driver pgx"`
	Host            string        `koanf:"host" validate:"required_if=Driver pgx"`
	Port            int           `koanf:"port" validate:"required_if=Driver pgx"`
	User            string        `koanf:"user" validate:"required_if=Driver pgx"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required_if=Driver pgx"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=json console"`
}

// Default returns the configuration used when no variables are set: a local
// SQLite file and console logging.
func Default() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Store: StoreConfig{
			Driver:          DriverSQLite,
			Path:            "./data/projectmgr.db",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads PROJECTMGR_* variables over the defaults and validates the
// result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tag rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// IsProduction reports whether the application runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN builds the data source name handed to sql.Open for the configured
// driver.
func (s StoreConfig) DSN() string {
	if s.Driver != DriverPostgres {
		return s.Path
	}

	hostPort := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.User, s.Password),
		Host:     hostPort,
		Path:     "/" + s.Name,
		RawQuery: "sslmode=" + url.QueryEscape(s.SSLMode),
	}
	return u.String()
}

// IsSQLite reports whether the store is one of the SQLite drivers.
func (s StoreConfig) IsSQLite() bool {
	return s.Driver == DriverSQLite || s.Driver == DriverSQLitePure
}
