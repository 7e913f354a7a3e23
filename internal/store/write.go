// write.go implements document creation and removal for the SQLite store.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jpl-au/docq/query"
)

// Put stores body under id. The created_at of an existing document is kept.
func (s *SQLiteStore) Put(ctx context.Context, id string, body query.Document, opts PutOptions) (string, error) {
	id, data, err := encode(id, body, opts)
	if err != nil {
		return "", err
	}

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE id = ?)`, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check %s: %w", id, err)
		}
		if exists && opts.Create {
			return wrapExists(id)
		}

		now := time.Now().Unix()
		_, err = tx.ExecContext(ctx, `INSERT INTO documents (id, body, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
			id, string(data), now, now)
		if err != nil {
			return fmt.Errorf("put %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a document. Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if rows == 0 {
		return wrapNotFound(id)
	}
	return nil
}
