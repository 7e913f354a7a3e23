// query.go runs engine queries for the Service. Query strings are length
// checked before parsing; JSON forms are bounded by the body limit of the
// caller that decoded them.

package document

import (
	"context"

	"github.com/jpl-au/docq/internal/store"
	"github.com/jpl-au/docq/internal/validate"
	"github.com/jpl-au/docq/query"
)

// Parse compiles spec against the service's key schema.
func (s *Service) Parse(spec any) (query.Query, error) {
	if str, ok := spec.(string); ok {
		if err := validate.Query(str, s.cfg.MaxQueryLength()); err != nil {
			return nil, err
		}
	}
	return query.Create(spec, s.schema)
}

// Query compiles spec and runs it over every document.
func (s *Service) Query(ctx context.Context, spec any, opts query.Options) ([]store.Row, error) {
	q, err := s.Parse(spec)
	if err != nil {
		return nil, err
	}
	if opts.Schema == nil {
		opts.Schema = s.schema
	}
	return s.store.AllDocs(ctx, q, opts)
}
