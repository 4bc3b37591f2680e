package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/ericksjp703/moviesapi/internal/config"
	"github.com/ericksjp703/moviesapi/internal/data"
	"github.com/ericksjp703/moviesapi/internal/store"
)

// opens the backing store picked by the configuration. close releases
// whatever connection the store holds
func openStore(ctx context.Context, cfg config.Storage) (data.DocumentStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverFile:
		fs, err := store.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil

	case config.DriverPostgres, config.DriverSQLite:
		// both drivers register under the same name as the config value
		db, err := store.OpenDB(cfg.Driver, cfg.DSN, store.PoolConfig{
			MaxOpenConns: cfg.DB.MaxOpenConns,
			MaxIdleConns: cfg.DB.MaxIdleConns,
			MaxIdleTime:  cfg.DB.MaxIdleTime,
			MaxLifetime:  cfg.DB.MaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}

		ss, err := store.NewSQLStore(ctx, db, cfg.Driver, cfg.Document)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return ss, db.Close, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		rs, err := store.NewRedisStore(ctx, client, cfg.Document)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return rs, client.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Driver)
}
