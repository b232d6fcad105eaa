package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"

	"github.com/joho/godotenv"
)

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
	DriverSQLite   = "sqlite"
)

const (
	DefaultHost       = "localhost"
	DefaultPort       = 5432
	DefaultSSLMode    = "disable"
	DefaultSQLitePath = "./emptrack.db"
	DefaultHTTPPort   = 3001
)

// Config is the runtime configuration of emptrack.
type Config struct {
	Driver       string
	DatabaseURL  string
	User         string
	Password     string
	Name         string
	Host         string
	Port         int
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	Timeouts     TimeoutConfig

	// DotEnvLoaded reports whether a .env file contributed to this Config.
	DotEnvLoaded bool

	LogLevel string
	LogFile  string
	Log      LogRotation

	HTTPPort int
}

// LogRotation holds lumberjack rotation settings.
type LogRotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already present in the environment.
// A missing file is not an error and reports loaded=false.
func LoadDotEnv(filenames ...string) (loaded bool, err error) {
	if err := godotenv.Load(filenames...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load .env: %w", err)
	}
	return true, nil
}

// Load builds a Config from the loader's settings, applying defaults.
func Load(l *Loader) Config {
	defaults := DefaultTimeoutConfig()
	return Config{
		Driver:       l.String("DB_DRIVER", DriverPostgres),
		DatabaseURL:  l.String("DATABASE_URL", ""),
		User:         l.String("DB_USER", ""),
		Password:     l.String("DB_PASSWORD", ""),
		Name:         l.String("DB_NAME", ""),
		Host:         l.String("DB_HOST", DefaultHost),
		Port:         l.Int("DB_PORT", DefaultPort),
		SSLMode:      l.String("DB_SSLMODE", DefaultSSLMode),
		SQLitePath:   l.String("DB_PATH", DefaultSQLitePath),
		MaxOpenConns: l.Int("DB_MAX_OPEN_CONNS", 5),
		Timeouts: TimeoutConfig{
			Connect: l.Duration("DB_CONNECT_TIMEOUT", defaults.Connect),
			Query:   l.Duration("DB_QUERY_TIMEOUT", defaults.Query),
		},
		LogLevel: l.String("LOG_LEVEL", "info"),
		LogFile:  l.String("LOG_FILE", ""),
		Log: LogRotation{
			MaxSizeMB:  l.Int("LOG_MAX_SIZE_MB", 50),
			MaxBackups: l.Int("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: l.Int("LOG_MAX_AGE_DAYS", 30),
			Compress:   l.Bool("LOG_COMPRESS", true),
		},
		HTTPPort: l.Int("PORT", DefaultHTTPPort),
	}
}

// FromEnv loads .env and reads the process environment. It does not log,
// since logging is configured from the result.
func FromEnv() (Config, error) {
	loaded, err := LoadDotEnv()
	if err != nil {
		return Config{}, err
	}
	cfg := Load(NewLoader(EnvSettings{}))
	cfg.DotEnvLoaded = loaded
	return cfg, nil
}

// Validate checks that the configuration can reach a store.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverPGX:
		if c.DatabaseURL != "" {
			return nil
		}
		if c.User == "" {
			return fmt.Errorf("DB_USER is required for driver %q", c.Driver)
		}
		if c.Name == "" {
			return fmt.Errorf("DB_NAME is required for driver %q", c.Driver)
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("invalid DB_PORT %d", c.Port)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("DB_PATH is required for driver %q", c.Driver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres, pgx or sqlite)", c.Driver)
	}
	if c.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Redacted returns the DSN with the password masked, for logging.
func (c Config) Redacted() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	u, err := url.Parse(c.DSN())
	if err != nil {
		return "<invalid dsn>"
	}
	return u.Redacted()
}
