// documents.go implements document CRUD for the Service. Limits come from the
// configuration and are passed down so the store validates every write.

package document

import (
	"context"

	"github.com/jpl-au/docq/internal/store"
	"github.com/jpl-au/docq/query"
)

// Put stores a document.
func (s *Service) Put(ctx context.Context, id string, body query.Document, create bool) (string, error) {
	return s.store.Put(ctx, id, body, store.PutOptions{
		Create:  create,
		MaxID:   s.cfg.MaxID(),
		MaxBody: s.cfg.MaxBody(),
	})
}

// Get retrieves a document by id.
func (s *Service) Get(ctx context.Context, id string) (*store.Document, error) {
	return s.store.Get(ctx, id)
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// List returns document metadata for ids starting with prefix.
func (s *Service) List(ctx context.Context, prefix string) ([]store.Meta, error) {
	return s.store.List(ctx, prefix)
}

// Count returns the number of stored documents.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
