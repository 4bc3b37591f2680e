package config

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"
)

// Command builds the server command. run receives the resolved, validated
// configuration.
func Command(version string, run func(ctx context.Context, cfg Config) error) *cli.Command {
	def := Default()

	return &cli.Command{
		Name:    "moviesapi",
		Usage:   "Serve the movies collection over HTTP",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a TOML configuration file", Sources: cli.EnvVars("MOVIES_CONFIG")},

			&cli.IntFlag{Name: "port", Value: def.Port, Usage: "api port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "env", Value: def.Env, Usage: "api env (development|staging|production)", Sources: cli.EnvVars("ENV")},
			&cli.StringFlag{Name: "log-level", Value: def.LogLevel, Usage: "minimum log level (info|error|fatal|off)", Sources: cli.EnvVars("LOG_LEVEL")},
			&cli.IntFlag{Name: "max-body-bytes", Value: int(def.MaxBodyBytes), Usage: "largest accepted request body", Sources: cli.EnvVars("MAX_BODY_BYTES")},
			&cli.BoolFlag{Name: "serialize-writes", Value: def.SerializeWrites, Usage: "run create/update/delete one at a time", Sources: cli.EnvVars("SERIALIZE_WRITES")},

			&cli.StringFlag{Name: "storage-driver", Value: def.Storage.Driver, Usage: "backing store (file|postgres|sqlite|redis)", Sources: cli.EnvVars("STORAGE_DRIVER")},
			&cli.StringFlag{Name: "storage-path", Value: def.Storage.Path, Usage: "json file used by the file driver", Sources: cli.EnvVars("STORAGE_PATH")},
			&cli.StringFlag{Name: "document", Value: def.Storage.Document, Usage: "row name or redis key holding the collection", Sources: cli.EnvVars("STORAGE_DOCUMENT")},

			&cli.StringFlag{Name: "db-dsn", Usage: "postgres dsn or sqlite file", Sources: cli.EnvVars("DB_DSN")},
			&cli.IntFlag{Name: "db-max-open-conns", Value: def.Storage.DB.MaxOpenConns, Usage: "max open connections", Sources: cli.EnvVars("DB_MAX_OPEN_CONNS")},
			&cli.IntFlag{Name: "db-max-idle-conns", Value: def.Storage.DB.MaxIdleConns, Usage: "max idle connections", Sources: cli.EnvVars("DB_MAX_IDLE_CONNS")},
			&cli.DurationFlag{Name: "db-max-idle-time", Value: def.Storage.DB.MaxIdleTime, Usage: "max connection idle time", Sources: cli.EnvVars("DB_MAX_IDLE_TIME")},
			&cli.DurationFlag{Name: "db-max-lifetime", Value: def.Storage.DB.MaxLifetime, Usage: "max connection lifetime", Sources: cli.EnvVars("DB_MAX_LIFETIME")},

			&cli.StringFlag{Name: "redis-addr", Value: def.Storage.Redis.Addr, Usage: "redis address", Sources: cli.EnvVars("REDIS_ADDR")},
			&cli.StringFlag{Name: "redis-password", Usage: "redis password", Sources: cli.EnvVars("REDIS_PASSWORD")},
			&cli.IntFlag{Name: "redis-db", Usage: "redis database number", Sources: cli.EnvVars("REDIS_DB")},

			&cli.FloatFlag{Name: "limiter-rps", Value: def.Limiter.RPS, Usage: "rate limiter requests per second", Sources: cli.EnvVars("LIMITER_RPS")},
			&cli.IntFlag{Name: "limiter-burst", Value: def.Limiter.Burst, Usage: "rate limiter burst capacity", Sources: cli.EnvVars("LIMITER_BURST")},
			&cli.BoolFlag{Name: "limiter-enabled", Value: def.Limiter.Enabled, Usage: "enable or disable the rate limiter", Sources: cli.EnvVars("LIMITER_ENABLED")},

			&cli.StringSliceFlag{Name: "cors-trusted-origins", Usage: "trusted CORS origins", Sources: cli.EnvVars("CORS_TRUSTED_ORIGINS")},
			&cli.BoolFlag{Name: "metrics-enabled", Value: def.Metrics.Enabled, Usage: "expose GET /metrics", Sources: cli.EnvVars("METRICS_ENABLED")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := Resolve(cmd)
			if err != nil {
				return err
			}
			return run(ctx, cfg)
		},
	}
}

// Resolve layers the config file (when given) over the defaults and the
// flags or environment variables that were actually set over both.
func Resolve(cmd *cli.Command) (Config, error) {
	cfg := Default()

	if path := cmd.String("config"); path != "" {
		err := LoadFile(path, &cfg)
		if err != nil {
			return Config{}, err
		}
	}

	setInt(cmd, "port", &cfg.Port)
	setString(cmd, "env", &cfg.Env)
	setString(cmd, "log-level", &cfg.LogLevel)
	if cmd.IsSet("max-body-bytes") {
		cfg.MaxBodyBytes = int64(cmd.Int("max-body-bytes"))
	}
	setBool(cmd, "serialize-writes", &cfg.SerializeWrites)

	setString(cmd, "storage-driver", &cfg.Storage.Driver)
	setString(cmd, "storage-path", &cfg.Storage.Path)
	setString(cmd, "document", &cfg.Storage.Document)

	setString(cmd, "db-dsn", &cfg.Storage.DSN)
	setInt(cmd, "db-max-open-conns", &cfg.Storage.DB.MaxOpenConns)
	setInt(cmd, "db-max-idle-conns", &cfg.Storage.DB.MaxIdleConns)
	setDuration(cmd, "db-max-idle-time", &cfg.Storage.DB.MaxIdleTime)
	setDuration(cmd, "db-max-lifetime", &cfg.Storage.DB.MaxLifetime)

	setString(cmd, "redis-addr", &cfg.Storage.Redis.Addr)
	setString(cmd, "redis-password", &cfg.Storage.Redis.Password)
	setInt(cmd, "redis-db", &cfg.Storage.Redis.DB)

	if cmd.IsSet("limiter-rps") {
		cfg.Limiter.RPS = cmd.Float("limiter-rps")
	}
	setInt(cmd, "limiter-burst", &cfg.Limiter.Burst)
	setBool(cmd, "limiter-enabled", &cfg.Limiter.Enabled)

	if cmd.IsSet("cors-trusted-origins") {
		cfg.CORS.TrustedOrigins = cmd.StringSlice("cors-trusted-origins")
	}
	setBool(cmd, "metrics-enabled", &cfg.Metrics.Enabled)

	return cfg, cfg.Validate()
}

func setString(cmd *cli.Command, name string, dst *string) {
	if cmd.IsSet(name) {
		*dst = cmd.String(name)
	}
}

func setInt(cmd *cli.Command, name string, dst *int) {
	if cmd.IsSet(name) {
		*dst = cmd.Int(name)
	}
}

func setBool(cmd *cli.Command, name string, dst *bool) {
	if cmd.IsSet(name) {
		*dst = cmd.Bool(name)
	}
}

func setDuration(cmd *cli.Command, name string, dst *time.Duration) {
	if cmd.IsSet(name) {
		*dst = cmd.Duration(name)
	}
}
