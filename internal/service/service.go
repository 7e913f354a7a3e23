// Package service defines the shared interface for document and query
// operations. Commands, the shell and the MCP server depend on this interface
// rather than on the SQLite-backed implementation in package document.
package service

import (
	"context"

	"github.com/jpl-au/docq/internal/store"
	"github.com/jpl-au/docq/query"
)

// Service defines all document operations.
//
// Extensions obtain the shared Service from their extension.Context. Code
// that creates its own must Close it:
//
//	svc, err := document.New("", "")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	rows, err := svc.Query(ctx, `title: "Report%"`, query.Options{})
type Service interface {
	// Close releases the executor pool and the database.
	Close() error

	// Put stores body under id and returns the id actually used. An empty id
	// takes the body's _id, or a generated uuid. With create set, an existing
	// id fails with store.ErrExists.
	Put(ctx context.Context, id string, body query.Document, create bool) (string, error)

	// Get returns a document. Returns store.ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*store.Document, error)

	// Delete removes a document. Returns store.ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// List returns document metadata for ids starting with prefix.
	List(ctx context.Context, prefix string) ([]store.Meta, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int64, error)

	// Query compiles spec (a query string or its JSON form) against the
	// configured key schema and runs it over every document. opts.Schema
	// defaults to the same key schema so sort keys see casts.
	Query(ctx context.Context, spec any, opts query.Options) ([]store.Row, error)

	// Parse compiles spec without running it.
	Parse(spec any) (query.Query, error)

	// Schema returns the configured key schema. Never nil.
	Schema() *query.KeySchema

	// Dir returns the path to the .docq directory, or "" for a service not
	// backed by a repository.
	Dir() string
}
