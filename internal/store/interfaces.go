// interfaces.go defines the storage abstraction for document persistence.
//
// The interfaces are granular so consumers depend only on the capabilities
// they need: the MCP read tools take a Reader, the importer a Writer.

package store

import (
	"context"

	"github.com/jpl-au/docq/query"
)

// Reader defines read-only operations.
type Reader interface {
	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns metadata for documents whose id starts with prefix,
	// ordered by id.
	List(ctx context.Context, prefix string) ([]Meta, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int64, error)
}

// Writer defines operations that modify documents.
type Writer interface {
	// Put stores body under id and returns the id. An empty id is replaced
	// by a generated one.
	Put(ctx context.Context, id string, body query.Document, opts PutOptions) (string, error)

	// Delete removes a document. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// Querier runs engine queries over the whole store.
type Querier interface {
	// AllDocs filters, sorts, limits and projects every document. Each
	// document carries its id in IDField while it is matched and sorted.
	AllDocs(ctx context.Context, q query.Query, opts query.Options) ([]Row, error)

	// SetExecutor makes AllDocs match on e's pool. A nil executor matches
	// on the calling goroutine.
	SetExecutor(e *query.Executor)
}

// Store is the full persistence interface.
type Store interface {
	Reader
	Writer
	Querier

	// Init prepares the backing storage. Safe to call more than once.
	Init() error
	Close() error
}
