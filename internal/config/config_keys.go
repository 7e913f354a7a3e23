// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go so that config.go deals with YAML structure and
// loading while this file serves the CLI and MCP surfaces, where settings are
// addressed by dotted string keys such as "query.workers".
//
// Optional numeric fields are pointers: nil means "use the default", which
// keeps an explicit value distinct from an unset one.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name",
		"query.workers", "query.batch_size", "query.max_length", "query.schema",
		"limits.max_id", "limits.max_body",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "query.workers":
		return strconv.Itoa(c.Workers()), nil
	case "query.batch_size":
		return strconv.Itoa(c.BatchSize()), nil
	case "query.max_length":
		return strconv.Itoa(c.MaxQueryLength()), nil
	case "query.schema":
		return c.Query.Schema, nil
	case "limits.max_id":
		return strconv.Itoa(c.MaxID()), nil
	case "limits.max_body":
		return strconv.FormatInt(c.MaxBody(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key. Numeric values are checked
// against the same bounds as Validate.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
		return nil
	case "query.schema":
		c.Query.Schema = value
		return nil
	case "limits.max_body":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
		}
		if err := checkRange(key, &n, MinMaxBody, MaxMaxBody); err != nil {
			return err
		}
		c.Limits.MaxBody = &n
		return nil
	}

	var (
		dst    **int
		lo, hi int
	)
	switch key {
	case "query.workers":
		dst, lo, hi = &c.Query.Workers, MinWorkers, MaxWorkers
	case "query.batch_size":
		dst, lo, hi = &c.Query.BatchSize, MinBatchSize, MaxBatchSize
	case "query.max_length":
		dst, lo, hi = &c.Query.MaxLength, MinMaxLength, MaxMaxLength
	case "limits.max_id":
		dst, lo, hi = &c.Limits.MaxID, MinMaxID, MaxMaxID
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
	}
	if err := checkRange(key, &n, lo, hi); err != nil {
		return err
	}
	*dst = &n
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "query.workers":
		return c.Query.Workers != nil
	case "query.batch_size":
		return c.Query.BatchSize != nil
	case "query.max_length":
		return c.Query.MaxLength != nil
	case "query.schema":
		return c.Query.Schema != ""
	case "limits.max_id":
		return c.Limits.MaxID != nil
	case "limits.max_body":
		return c.Limits.MaxBody != nil
	default:
		return false
	}
}
