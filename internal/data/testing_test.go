package data

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// memoryStore is a DocumentStore kept in a byte slice, with errors that can
// be queued per operation.
type memoryStore struct {
	mu      sync.Mutex
	doc     []byte
	saves   int
	nextErr map[string]error
}

func newMemoryStore(t *testing.T, movies ...Movie) *memoryStore {
	t.Helper()

	if movies == nil {
		movies = []Movie{}
	}
	doc, err := json.Marshal(movies)
	require.NoError(t, err)

	return &memoryStore{doc: doc, nextErr: make(map[string]error)}
}

func (s *memoryStore) setErr(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextErr[op] = err
}

func (s *memoryStore) takeErr(op string) error {
	if err, ok := s.nextErr[op]; ok {
		delete(s.nextErr, op)
		return err
	}
	return nil
}

func (s *memoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr("Load"); err != nil {
		return nil, err
	}
	return append([]byte(nil), s.doc...), nil
}

func (s *memoryStore) Save(_ context.Context, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr("Save"); err != nil {
		return err
	}
	s.doc = append([]byte(nil), doc...)
	s.saves++
	return nil
}

func (s *memoryStore) movies(t *testing.T) []Movie {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	var movies []Movie
	require.NoError(t, json.Unmarshal(s.doc, &movies))
	return movies
}

func ptr[T any](v T) *T {
	return &v
}

func draft(title string, year int, genre string) MovieInput {
	return MovieInput{Title: ptr(title), Year: ptr(year), Genre: ptr(genre)}
}

func seedMovies() []Movie {
	return []Movie{
		{ID: 1, Title: "The Shawshank Redemption", Year: 1994, Genre: "Drama"},
		{ID: 2, Title: "Inception", Year: 2010, Genre: "Action"},
		{ID: 3, Title: "The Dark Knight", Year: 2008, Genre: "Action"},
		{ID: 4, Title: "Pulp Fiction", Year: 1994, Genre: "Crime"},
	}
}
