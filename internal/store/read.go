// read.go implements document retrieval operations for the SQLite store.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Get returns the document with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, body, created_at, updated_at FROM documents WHERE id = ?`, id)
	d, err := scanDoc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return d, nil
}

// List returns metadata for documents whose id starts with prefix.
func (s *SQLiteStore) List(ctx context.Context, prefix string) ([]Meta, error) {
	q := `SELECT id, length(body), created_at, updated_at FROM documents`
	var args []any
	if prefix != "" {
		q += ` WHERE id LIKE ? ESCAPE '\'`
		args = append(args, likePrefix(prefix))
	}
	q += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []Meta
	for rows.Next() {
		var (
			m                Meta
			created, updated int64
		)
		if err := rows.Scan(&m.ID, &m.Size, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		m.CreatedAt, m.UpdatedAt = timestamp(created), timestamp(updated)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Count returns the number of stored documents.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// likePrefix escapes LIKE metacharacters so prefix matches literally.
func likePrefix(p string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(p) + "%"
}
