// alldocs.go implements AllDocs for both stores. The stores only supply the
// decoded documents; filtering, ordering and projection are the query
// engine's.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/docq/query"
)

func allDocs(ctx context.Context, exec *query.Executor, q query.Query, opts query.Options, docs []*Document) ([]Row, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	in := make([]query.Document, len(docs))
	for i, d := range docs {
		d.Body[IDField] = d.ID
		in[i] = d.Body
	}

	// Project after the rows have taken their ids, so a select_list without
	// IDField still yields identified rows.
	shape := opts
	shape.SelectList = nil
	var (
		out []query.Document
		err error
	)
	if exec != nil {
		out, err = exec.Exec(ctx, q, in, shape)
	} else {
		out, err = query.Exec(ctx, q, in, shape)
	}
	if err != nil {
		return nil, err
	}

	values := query.Select(out, opts.SelectList)
	rows := make([]Row, len(out))
	for i, d := range out {
		id, _ := d[IDField].(string)
		if len(opts.SelectList) == 0 {
			delete(values[i], IDField)
		}
		rows[i] = Row{ID: id, Value: values[i]}
	}
	return rows, nil
}

// AllDocs implements Querier.
func (s *SQLiteStore) AllDocs(ctx context.Context, q query.Query, opts query.Options) ([]Row, error) {
	docs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return allDocs(ctx, s.executor(), q, opts, docs)
}

func (s *SQLiteStore) load(ctx context.Context) ([]*Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, body, created_at, updated_at FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	defer rows.Close()
	return scanAll(rows)
}

func scanAll(rows *sql.Rows) ([]*Document, error) {
	var docs []*Document
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
