// Package store defines document persistence types and the Store interface.
// Implementations handle the actual storage while consumers depend only on
// this interface, so the query path can be tested against the in-memory
// store and run against SQLite unchanged.
package store

import (
	"encoding/json"
	"time"

	"github.com/jpl-au/docq/query"
)

// IDField is the reserved field AllDocs sets on every document before
// matching, so queries and sort keys can refer to the document id.
const IDField = "_id"

// Document is a stored JSON object and its bookkeeping.
type Document struct {
	ID        string
	Body      query.Document
	CreatedAt int64 // Unix timestamp of the first put
	UpdatedAt int64 // Unix timestamp of the latest put
}

// Meta describes a document without decoding its body.
type Meta struct {
	ID        string `json:"id"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Row is one result of AllDocs.
type Row struct {
	ID    string         `json:"id"`
	Value query.Document `json:"value"`
}

// DocJSON is the API-friendly representation of a Document with RFC3339
// timestamps.
type DocJSON struct {
	ID        string         `json:"id"`
	Body      query.Document `json:"body"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

// ToJSON converts a Document to its API representation.
func (d *Document) ToJSON() DocJSON {
	return DocJSON{
		ID:        d.ID,
		Body:      d.Body,
		CreatedAt: timestamp(d.CreatedAt),
		UpdatedAt: timestamp(d.UpdatedAt),
	}
}

func timestamp(t int64) string {
	return time.Unix(t, 0).UTC().Format(time.RFC3339)
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// PutOptions configures a put operation.
type PutOptions struct {
	Create  bool  // fail with ErrExists instead of replacing
	MaxID   int   // 0 means no limit
	MaxBody int64 // 0 means no limit
}
