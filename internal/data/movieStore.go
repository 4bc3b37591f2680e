package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/ericksjp703/moviesapi/internal/validator"
)

// MovieModel keeps no state between calls: every operation reads the whole
// collection from Store, changes it and writes it back.
type MovieModel struct {
	Store DocumentStore

	// when set, load-modify-save cycles of writers never overlap in this process
	SerializeWrites bool
	mu              sync.Mutex
}

func (m *MovieModel) List(ctx context.Context, filter Filter) ([]Movie, error) {
	movies, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	if len(movies) == 0 {
		return nil, ErrNoRecords
	}

	if !filter.Empty() {
		movies = filter.Apply(movies)
	}

	if len(movies) == 0 {
		return nil, ErrNoMatches
	}

	return movies, nil
}

func (m *MovieModel) Get(ctx context.Context, id int64) (*Movie, error) {
	movies, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(movies, id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	return &movies[i], nil
}

// Insert assigns the next id (highest existing id plus one) and appends the movie.
func (m *MovieModel) Insert(ctx context.Context, input MovieInput) (*Movie, error) {
	v := validator.New()
	input.Validate(v, false)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMovie, v.Errors)
	}

	unlock := m.lock()
	defer unlock()

	movies, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	if titleTaken(movies, *input.Title, -1) {
		return nil, ErrDuplicateTitle
	}

	movie := Movie{ID: nextID(movies)}
	input.ApplyUpdates(&movie)
	movies = append(movies, movie)

	err = m.save(ctx, movies)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// Update merges the fields present in input over the stored movie.
func (m *MovieModel) Update(ctx context.Context, id int64, input MovieInput) (*Movie, error) {
	v := validator.New()
	input.Validate(v, true)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMovie, v.Errors)
	}

	unlock := m.lock()
	defer unlock()

	movies, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(movies, id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	if input.Title != nil && *input.Title != movies[i].Title && titleTaken(movies, *input.Title, i) {
		return nil, ErrDuplicateTitle
	}

	movie := movies[i]
	input.ApplyUpdates(&movie)
	movies[i] = movie

	err = m.save(ctx, movies)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// Delete removes the movie and returns it.
func (m *MovieModel) Delete(ctx context.Context, id int64) (*Movie, error) {
	unlock := m.lock()
	defer unlock()

	movies, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(movies, id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	deleted := movies[i]
	movies = slices.Delete(movies, i, i+1)

	err = m.save(ctx, movies)
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}

// ------------------ helpers

func (m *MovieModel) lock() func() {
	if !m.SerializeWrites {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *MovieModel) load(ctx context.Context) ([]Movie, error) {
	doc, err := m.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return decodeMovies(doc)
}

// a started save is never cancelled, so the request context is detached
func (m *MovieModel) save(ctx context.Context, movies []Movie) error {
	doc, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	err = m.Store.Save(context.WithoutCancel(ctx), doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return nil
}

func decodeMovies(doc []byte) ([]Movie, error) {
	movies := []Movie{}
	if len(bytes.TrimSpace(doc)) == 0 {
		return movies, nil
	}

	err := json.Unmarshal(doc, &movies)
	if err != nil {
		return nil, fmt.Errorf("%w: decode collection: %w", ErrStorage, err)
	}

	// "null" decodes to a nil slice
	if movies == nil {
		movies = []Movie{}
	}

	return movies, nil
}

func indexOf(movies []Movie, id int64) int {
	return slices.IndexFunc(movies, func(m Movie) bool { return m.ID == id })
}

func nextID(movies []Movie) int64 {
	var highest int64
	for _, m := range movies {
		highest = max(highest, m.ID)
	}
	return highest + 1
}

// reports whether another movie (any index but skip) already uses the title
func titleTaken(movies []Movie, title string, skip int) bool {
	want := normalizeTitle(title)
	for i, m := range movies {
		if i != skip && normalizeTitle(m.Title) == want {
			return true
		}
	}
	return false
}
