package data

import (
	"context"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoRecords      = errors.New("no records")
	ErrNoMatches      = errors.New("no matches")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrInvalidMovie   = errors.New("invalid movie")
	ErrInvalidID      = errors.New("invalid id")
	// wraps every failure coming from the backing store
	ErrStorage = errors.New("storage failure")
)

// DocumentStore holds the whole collection as a single JSON document.
// Load returns the current document, Save replaces it.
type DocumentStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, doc []byte) error
}

// struct that will hold models of our application
type Models struct {
	Movies interface {
		List(ctx context.Context, filter Filter) ([]Movie, error)
		Get(ctx context.Context, id int64) (*Movie, error)
		Insert(ctx context.Context, input MovieInput) (*Movie, error)
		Update(ctx context.Context, id int64, input MovieInput) (*Movie, error)
		Delete(ctx context.Context, id int64) (*Movie, error)
	}
}

// return a Models struct containing the initialized models. serializeWrites
// makes create/update/delete run one at a time inside this process.
func NewModels(store DocumentStore, serializeWrites bool) Models {
	return Models{
		Movies: &MovieModel{
			Store:           store,
			SerializeWrites: serializeWrites,
		},
	}
}
