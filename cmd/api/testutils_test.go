package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericksjp703/moviesapi/internal/config"
	"github.com/ericksjp703/moviesapi/internal/data"
	"github.com/ericksjp703/moviesapi/internal/jsonlog"
	"github.com/ericksjp703/moviesapi/internal/store"
)

// application backed by a json file in a temp dir, limiter off
func newTestApplication(t *testing.T, movies ...data.Movie) (*application, *bytes.Buffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "movies.json")
	if movies != nil {
		doc, err := json.Marshal(movies)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, doc, 0o644))
	}

	fs, err := store.NewFileStore(path)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Storage.Path = path

	return newApplicationWithStore(cfg, fs)
}

// defaults with the limiter off
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Env = "testing"
	cfg.Limiter.Enabled = false
	return cfg
}

func newApplicationWithStore(cfg config.Config, doc data.DocumentStore) (*application, *bytes.Buffer) {
	logs := new(bytes.Buffer)

	return &application{
		config: cfg,
		logger: jsonlog.New(logs, jsonlog.LevelInfo),
		models: data.NewModels(doc, cfg.SerializeWrites),
	}, logs
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return &testServer{ts}
}

type response struct {
	status int
	header http.Header
	body   string
}

// sends one request, extra headers come as name/value pairs
func (ts *testServer) do(t *testing.T, method, path, body string, headers ...string) response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+path, reader)
	require.NoError(t, err)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rs, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer rs.Body.Close()

	raw, err := io.ReadAll(rs.Body)
	require.NoError(t, err)

	return response{status: rs.StatusCode, header: rs.Header, body: string(raw)}
}

// a store whose every call fails
type brokenStore struct{}

func (brokenStore) Load(context.Context) ([]byte, error) {
	return nil, errors.New("open /var/lib/movies.json: permission denied")
}

func (brokenStore) Save(context.Context, []byte) error {
	return errors.New("write /var/lib/movies.json: no space left on device")
}

func sampleMovies() []data.Movie {
	return []data.Movie{
		{ID: 1, Title: "The Shawshank Redemption", Year: 1994, Genre: "Drama"},
		{ID: 2, Title: "Inception", Year: 2010, Genre: "Action"},
		{ID: 3, Title: "The Dark Knight", Year: 2008, Genre: "Action"},
		{ID: 4, Title: "Pulp Fiction", Year: 1994, Genre: "Crime"},
	}
}
