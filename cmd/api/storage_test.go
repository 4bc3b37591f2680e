package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericksjp703/moviesapi/internal/config"
	"github.com/ericksjp703/moviesapi/internal/data"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  func(*config.Storage)
	}{
		{"file", func(s *config.Storage) { s.Path = filepath.Join(dir, "movies.json") }},
		{"sqlite", func(s *config.Storage) { s.Driver = config.DriverSQLite; s.DSN = filepath.Join(dir, "movies.db") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Storage
			tt.cfg(&cfg)

			doc, closeStore, err := openStore(ctx, cfg)
			require.NoError(t, err)
			t.Cleanup(func() { closeStore() })

			// every store starts as an empty collection that the models can use
			models := data.NewModels(doc, true)
			_, err = models.Movies.List(ctx, data.Filter{})
			assert.ErrorIs(t, err, data.ErrNoRecords)

			title, year, genre := "Alien", 1979, "Horror"
			movie, err := models.Movies.Insert(ctx, data.MovieInput{Title: &title, Year: &year, Genre: &genre})
			require.NoError(t, err)
			assert.Equal(t, int64(1), movie.ID)
		})
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	cfg := config.Default().Storage
	cfg.Driver = "mongo"

	_, _, err := openStore(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
