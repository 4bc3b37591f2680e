// Package config resolves the server settings from, in increasing priority,
// built-in defaults, an optional TOML file, environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ericksjp703/moviesapi/internal/jsonlog"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// storage drivers understood by the server
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

type Config struct {
	Port            int     `toml:"port"`
	Env             string  `toml:"env"`
	LogLevel        string  `toml:"log_level"`
	MaxBodyBytes    int64   `toml:"max_body_bytes"`
	SerializeWrites bool    `toml:"serialize_writes"`
	Storage         Storage `toml:"storage"`
	Limiter         Limiter `toml:"limiter"`
	CORS            CORS    `toml:"cors"`
	Metrics         Metrics `toml:"metrics"`
}

// Storage selects the backing store and where it lives.
type Storage struct {
	Driver string `toml:"driver"`
	// json file for the file driver
	Path string `toml:"path"`
	// connection string for postgres, database file for sqlite
	DSN string `toml:"dsn"`
	// row name (sql) or key (redis) holding the collection
	Document string `toml:"document"`
	DB       DB     `toml:"db"`
	Redis    Redis  `toml:"redis"`
}

type DB struct {
	MaxOpenConns int           `toml:"max_open_conns"`
	MaxIdleConns int           `toml:"max_idle_conns"`
	MaxIdleTime  time.Duration `toml:"max_idle_time"`
	MaxLifetime  time.Duration `toml:"max_lifetime"`
}

type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type Limiter struct {
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	Enabled bool    `toml:"enabled"`
}

type CORS struct {
	TrustedOrigins []string `toml:"trusted_origins"`
}

type Metrics struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Port:            4000,
		Env:             "development",
		LogLevel:        "info",
		MaxBodyBytes:    1_048_576,
		SerializeWrites: true,
		Storage: Storage{
			Driver:   DriverFile,
			Path:     "data/movies.json",
			Document: "movies",
			DB: DB{
				MaxOpenConns: 25,
				MaxIdleConns: 25,
				MaxIdleTime:  15 * time.Minute,
			},
			Redis: Redis{Addr: "localhost:6379"},
		},
		Limiter: Limiter{RPS: 2, Burst: 4, Enabled: true},
		Metrics: Metrics{Enabled: true},
	}
}

// LoadFile decodes the TOML file at path over cfg. Keys missing from the file
// keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	return nil
}

// LoadDotenv exports the variables of a dotenv file without overriding the
// ones already set. An empty path means ".env", which may be absent.
func LoadDotenv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}

	err := godotenv.Load(path)
	if err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Port > 0 && c.Port <= 65535, "port must be between 1 and 65535")
	check(c.MaxBodyBytes > 0, "max body bytes must be positive")

	_, ok := jsonlog.ParseLevel(c.LogLevel)
	check(ok, "unknown log level %q", c.LogLevel)

	switch c.Storage.Driver {
	case DriverFile:
		check(c.Storage.Path != "", "the file driver needs a storage path")
	case DriverPostgres, DriverSQLite:
		check(c.Storage.DSN != "", "the %s driver needs a dsn", c.Storage.Driver)
		check(c.Storage.Document != "", "document name must not be empty")
	case DriverRedis:
		check(c.Storage.Redis.Addr != "", "the redis driver needs an address")
		check(c.Storage.Document != "", "document name must not be empty")
	default:
		check(false, "unknown storage driver %q", c.Storage.Driver)
	}

	if c.Limiter.Enabled {
		check(c.Limiter.RPS > 0, "limiter rps must be positive")
		check(c.Limiter.Burst > 0, "limiter burst must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
