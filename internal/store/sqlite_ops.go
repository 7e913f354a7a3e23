// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// This is the only file that registers the SQLite driver.
//
// WAL mode lets readers proceed during writes, which matters when the MCP
// server answers queries while the CLI imports. The 5-second busy timeout
// prevents "database is locked" errors without waiting forever.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	// Register sqlite driver
	_ "modernc.org/sqlite"

	"github.com/jpl-au/docq/query"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
type SQLiteStore struct {
	db *sql.DB

	mu   sync.RWMutex
	exec *query.Executor
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at path. The caller should call Close
// on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []struct{ name, stmt string }{
		{"WAL mode", `PRAGMA journal_mode=WAL`},
		{"busy timeout", `PRAGMA busy_timeout=5000`},
		// With WAL, NORMAL is safe against corruption; only the last
		// transaction can be lost on an OS crash.
		{"synchronous mode", `PRAGMA synchronous=NORMAL`},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting %s: %w", p.name, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// SetExecutor implements Querier.
func (s *SQLiteStore) SetExecutor(e *query.Executor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exec = e
}

func (s *SQLiteStore) executor() *query.Executor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exec
}

// Tx executes fn within a database transaction, committing when fn returns
// nil and rolling back otherwise.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `UPDATE ...`); err != nil {
//	        return err  // triggers rollback
//	    }
//	    return nil  // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDoc(sc scanner) (*Document, error) {
	var (
		d    Document
		body string
	)
	if err := sc.Scan(&d.ID, &body, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	b, err := decode([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", d.ID, err)
	}
	d.Body = b
	return &d, nil
}
