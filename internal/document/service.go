// Package document provides the Service implementation. It wraps a
// store.Store with the repository's configuration: size limits, the key
// schema and the matching pool.
package document

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/docq/internal/config"
	"github.com/jpl-au/docq/internal/keyschema"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/repo"
	"github.com/jpl-au/docq/internal/service"
	"github.com/jpl-au/docq/internal/store"
	"github.com/jpl-au/docq/query"
)

// Service provides document and query operations backed by a Store.
type Service struct {
	store  store.Store
	dir    string
	cfg    *config.Config
	schema *query.KeySchema
	exec   *query.Executor
}

var _ service.Service = (*Service)(nil)

// checkpointer is implemented by stores with a write-ahead log.
type checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// New creates a Service over the repository database. The db parameter
// selects a named database (empty for the default). An explicit dir skips
// discovery. Returns repo.ErrNotInitialised if no database is found.
func New(db, dir string) (*Service, error) {
	var (
		dbPath string
		err    error
	)
	if dir != "" {
		dbPath, err = repo.At(dir, db)
	} else {
		dbPath, err = repo.Discover(db)
	}
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	svc, err := newService(s, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	svc.dir = filepath.Dir(dbPath)
	return svc, nil
}

// NewMemory creates a Service over an empty in-memory store, for querying
// documents that are never persisted.
func NewMemory(cfg *config.Config) (*Service, error) {
	return newService(store.NewMemoryStore(), cfg)
}

// LoadSchema returns the key schema named by cfg, or the built-in one.
func LoadSchema(cfg *config.Config) (*query.KeySchema, error) {
	p := cfg.SchemaPath()
	if p == "" {
		return keyschema.Default(), nil
	}
	schema, err := keyschema.Load(p)
	if err != nil {
		return nil, fmt.Errorf("load key schema: %w", err)
	}
	return schema, nil
}

func newService(s store.Store, cfg *config.Config) (*Service, error) {
	schema, err := LoadSchema(cfg)
	if err != nil {
		return nil, err
	}

	exec, err := query.NewExecutor(cfg.Workers(), cfg.BatchSize())
	if err != nil {
		return nil, fmt.Errorf("start query executor: %w", err)
	}
	s.SetExecutor(exec)

	return &Service{store: s, cfg: cfg, schema: schema, exec: exec}, nil
}

// Init initialises a new docq repository.
// If dir is empty, uses current directory; otherwise uses dir.
// The db parameter specifies which database to create (empty for default).
// If local is true, the database is added to .gitignore (not committed).
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

// Close releases the executor, checkpoints the WAL and closes the store.
func (s *Service) Close() error {
	s.exec.Release()
	if c, ok := s.store.(checkpointer); ok {
		if err := c.Checkpoint(context.Background()); err != nil {
			log.Event("service:close", "checkpoint").Write(err)
		}
	}
	return s.store.Close()
}

// Dir returns the path to the .docq directory.
func (s *Service) Dir() string {
	return s.dir
}

// Schema returns the key schema queries are compiled against.
func (s *Service) Schema() *query.KeySchema {
	return s.schema
}

// Config returns the configuration the service was created with.
func (s *Service) Config() *config.Config {
	return s.cfg
}
