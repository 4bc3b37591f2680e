package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// PoolConfig mirrors the connection pool settings of database/sql.
type PoolConfig struct {
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
	MaxLifetime  time.Duration
}

// OpenDB creates a connection pool and verifies if everything is ok. The
// driver has to be registered by the caller.
func OpenDB(driver, dsn string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	// cancel the ping if the connection is not established within 5 seconds
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// SQLStore keeps the document in the body column of one row of the documents
// table. It works with the postgres and sqlite drivers.
type SQLStore struct {
	DB      *sql.DB
	Name    string
	Driver  string
	Timeout time.Duration
}

// NewSQLStore creates the documents table and the named row when missing.
func NewSQLStore(ctx context.Context, db *sql.DB, driver, name string) (*SQLStore, error) {
	s := &SQLStore{DB: db, Name: name, Driver: driver, Timeout: 3 * time.Second}

	switch driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("sql store: unsupported driver %q", driver)
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("sql store: create table: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO documents (name, body)
		VALUES (%s, %s)
		ON CONFLICT (name) DO NOTHING`, s.bind(1), s.bind(2))

	_, err = db.ExecContext(ctx, query, name, string(emptyDocument))
	if err != nil {
		return nil, fmt.Errorf("sql store: seed document: %w", err)
	}

	return s, nil
}

func (s *SQLStore) Load(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`SELECT body FROM documents WHERE name = %s`, s.bind(1))

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var body string
	err := s.DB.QueryRowContext(ctx, query, s.Name).Scan(&body)
	if err != nil {
		// the row is recreated by the next save
		if errors.Is(err, sql.ErrNoRows) {
			return emptyDocument, nil
		}
		return nil, err
	}

	return []byte(body), nil
}

func (s *SQLStore) Save(ctx context.Context, doc []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO documents (name, body)
		VALUES (%s, %s)
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body`, s.bind(1), s.bind(2))

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	_, err := s.DB.ExecContext(ctx, query, s.Name, string(doc))
	return err
}

// placeholder for the nth argument in the driver's dialect
func (s *SQLStore) bind(n int) string {
	if s.Driver == "postgres" {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}
