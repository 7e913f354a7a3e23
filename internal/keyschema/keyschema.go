// Package keyschema loads key schemas from YAML or JSON files.
//
// A schema file declares the key_set only. Cast and match functions cannot be
// written in a file, so descriptors refer to them by name and the names are
// resolved against the builtin lookups in builtins.go:
//
//	key_set:
//	  title: dc_title
//	  day:
//	    read_from: date
//	    cast_to: date
//	    equal_match: sameDay
//
// The file is checked against a JSON Schema before it is converted, so shape
// errors are reported with their location in the document.
package keyschema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/jpl-au/docq/query"
)

// ErrInvalid is returned when a schema file is malformed.
var ErrInvalid = errors.New("invalid key schema file")

const fileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["key_set"],
  "properties": {
    "key_set": {
      "type": "object",
      "additionalProperties": {
        "oneOf": [
          {"type": "string", "minLength": 1},
          {
            "type": "object",
            "additionalProperties": false,
            "required": ["read_from"],
            "properties": {
              "read_from": {"type": "string", "minLength": 1},
              "cast_to": {"type": "string", "minLength": 1},
              "equal_match": {"type": "string", "minLength": 1}
            }
          }
        ]
      }
    }
  }
}`

var validator = mustCompile(fileSchema)

func mustCompile(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic("keyschema: compile file schema: " + err.Error())
	}
	return schema
}

// Load reads and converts the schema file at path.
func Load(path string) (*query.KeySchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key schema: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse converts a YAML or JSON schema document. JSON is accepted because it
// is valid YAML.
func Parse(data []byte) (*query.KeySchema, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalid)
	}

	res, err := validator.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	s, err := query.ParseKeySchema(map[string]any{
		"key_set":      doc["key_set"],
		"cast_lookup":  Casts(),
		"match_lookup": Matchers(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return s, nil
}

// Default returns a schema with no keys and the builtin lookups, for binding
// inline key descriptors when no schema file is configured.
func Default() *query.KeySchema {
	return &query.KeySchema{
		KeySet:      map[string]query.KeyDescriptor{},
		CastLookup:  Casts(),
		MatchLookup: Matchers(),
	}
}
