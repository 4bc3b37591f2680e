package main

import (
	"context"
	"fmt"
	"os"

	// the sql drivers register themselves with database/sql in their init
	// functions, the store only refers to them by name
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/ericksjp703/moviesapi/internal/config"
	"github.com/ericksjp703/moviesapi/internal/data"
	"github.com/ericksjp703/moviesapi/internal/jsonlog"
)

const version = "1.0.0"

type application struct {
	config config.Config
	logger *jsonlog.Logger
	models data.Models
}

func main() {
	// anything that fails before or after run is logged here, run has
	// already released its resources when it returns
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// the dotenv file has to be exported before the flags read their env sources
	err := config.LoadDotenv(os.Getenv("MOVIES_ENV_FILE"))
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	cmd := config.Command(version, run)

	err = cmd.Run(context.Background(), os.Args)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// Validate already rejected unknown levels
	level, _ := jsonlog.ParseLevel(cfg.LogLevel)
	logger := jsonlog.New(os.Stdout, level)
	defer logger.Sync()

	doc, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	// ensure the store connection is closed before the process exits
	defer closeStore()

	logger.PrintInfo("storage ready", map[string]string{
		"driver": cfg.Storage.Driver,
	})

	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(doc, cfg.SerializeWrites),
	}

	return app.serve(ctx)
}
