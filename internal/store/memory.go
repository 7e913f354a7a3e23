// memory.go implements Store in memory, for tests and for one-off queries
// over files that are never persisted ("docq query --file").

package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jpl-au/docq/query"
)

type memEntry struct {
	body      []byte
	createdAt int64
	updatedAt int64
}

// MemoryStore implements Store with a map guarded by a sync.RWMutex. Bodies
// are kept encoded, so every read returns a fresh copy.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memEntry
	exec *query.Executor
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]memEntry)}
}

// Init implements Store. There is nothing to prepare.
func (m *MemoryStore) Init() error { return nil }

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }

// SetExecutor implements Querier.
func (m *MemoryStore) SetExecutor(e *query.Executor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exec = e
}

// Get implements Reader.
func (m *MemoryStore) Get(_ context.Context, id string) (*Document, error) {
	m.mu.RLock()
	e, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return nil, wrapNotFound(id)
	}
	return e.document(id)
}

// List implements Reader.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]Meta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Meta
	for id, e := range m.data {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		out = append(out, Meta{
			ID:        id,
			Size:      int64(len(e.body)),
			CreatedAt: timestamp(e.createdAt),
			UpdatedAt: timestamp(e.updatedAt),
		})
	}
	slices.SortFunc(out, func(a, b Meta) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

// Count implements Reader.
func (m *MemoryStore) Count(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.data)), nil
}

// Put implements Writer.
func (m *MemoryStore) Put(_ context.Context, id string, body query.Document, opts PutOptions) (string, error) {
	id, data, err := encode(id, body, opts)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().Unix()
	e, exists := m.data[id]
	if exists && opts.Create {
		return "", wrapExists(id)
	}
	if !exists {
		e.createdAt = now
	}
	e.body, e.updatedAt = data, now
	m.data[id] = e
	return id, nil
}

// Delete implements Writer.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[id]; !ok {
		return wrapNotFound(id)
	}
	delete(m.data, id)
	return nil
}

// AllDocs implements Querier. Documents are matched in id order, the same
// order the SQLite store loads them in.
func (m *MemoryStore) AllDocs(ctx context.Context, q query.Query, opts query.Options) ([]Row, error) {
	m.mu.RLock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	docs := make([]*Document, 0, len(ids))
	var err error
	for _, id := range ids {
		var d *Document
		if d, err = m.data[id].document(id); err != nil {
			break
		}
		docs = append(docs, d)
	}
	exec := m.exec
	m.mu.RUnlock()

	if err != nil {
		return nil, err
	}
	return allDocs(ctx, exec, q, opts, docs)
}

func (e memEntry) document(id string) (*Document, error) {
	body, err := decode(e.body)
	if err != nil {
		return nil, err
	}
	return &Document{ID: id, Body: body, CreatedAt: e.createdAt, UpdatedAt: e.updatedAt}, nil
}
