// codec.go converts documents to and from their stored JSON form. Both stores
// keep encoded bytes so a caller can never alias stored state.

package store

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/jpl-au/docq/internal/validate"
	"github.com/jpl-au/docq/query"
)

// encode validates a put and returns the id to store under and the encoded
// body. IDField is never stored: an id given only in the body is used as the
// document id, and a body id that disagrees with id is an error.
func encode(id string, body query.Document, opts PutOptions) (string, []byte, error) {
	if body == nil {
		body = query.Document{}
	}
	if v, ok := body[IDField]; ok {
		bid, isStr := v.(string)
		switch {
		case !isStr:
			return "", nil, fmt.Errorf("%w: %s must be a string", validate.ErrInvalidID, IDField)
		case id == "":
			id = bid
		case bid != id:
			return "", nil, fmt.Errorf("%w: body %s %q does not match %q", validate.ErrInvalidID, IDField, bid, id)
		}
		body = maps.Clone(body)
		delete(body, IDField)
	}
	if id == "" {
		id = uuid.NewString()
	}
	if err := validate.ID(id, opts.MaxID); err != nil {
		return "", nil, err
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", id, err)
	}
	if err := validate.Body(data, opts.MaxBody); err != nil {
		return "", nil, err
	}
	return id, data, nil
}

func decode(data []byte) (query.Document, error) {
	var d query.Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if d == nil {
		d = query.Document{}
	}
	return d, nil
}

func wrapNotFound(id string) error { return fmt.Errorf("%w: %s", ErrNotFound, id) }
func wrapExists(id string) error   { return fmt.Errorf("%w: %s", ErrExists, id) }
