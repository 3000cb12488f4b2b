package store

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MemStore is an in-memory Store used by tests and local development.
// It mimics the backend's visible behavior: not-found mapping on Get and
// Update, merge semantics, and, when enabled, the missing-index rejection
// of ordered queries.
type MemStore struct {
	mu             sync.RWMutex
	collections    map[string]map[string]map[string]any
	missingIndexes bool
}

func NewMem() *MemStore {
	return &MemStore{collections: make(map[string]map[string]map[string]any)}
}

// SimulateMissingIndexes makes every ordered query fail the way the backend
// does before its composite indexes are provisioned.
func (m *MemStore) SimulateMissingIndexes(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missingIndexes = on
}

func (m *MemStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{ID: id, Data: maps.Clone(fields)}, nil
}

func (m *MemStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.collection(collection)[id] = maps.Clone(fields)
	return nil
}

func (m *MemStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.collection(collection)[id] = maps.Clone(fields)
	return id, nil
}

func (m *MemStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

func (m *MemStore) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)
	return nil
}

func (m *MemStore) Run(ctx context.Context, q Query) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if q.OrderBy != "" && m.missingIndexes {
		return nil, status.Error(codes.FailedPrecondition,
			"The query requires an index. That index is currently building and cannot be used yet.")
	}

	var docs []Document
	for id, fields := range m.collections[q.Collection] {
		if matchesAll(fields, q.Filters) {
			docs = append(docs, Document{ID: id, Data: maps.Clone(fields)})
		}
	}

	if q.OrderBy != "" {
		SortByTimestamp(docs, q.OrderBy, q.Desc)
	}
	return docs, nil
}

func (m *MemStore) Close() error {
	return nil
}

func (m *MemStore) collection(name string) map[string]map[string]any {
	col, ok := m.collections[name]
	if !ok {
		col = make(map[string]map[string]any)
		m.collections[name] = col
	}
	return col
}

func matchesAll(fields map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !matches(fields, f) {
			return false
		}
	}
	return true
}

func matches(fields map[string]any, f Filter) bool {
	v, ok := fields[f.Field]
	if !ok {
		return false
	}

	switch f.Op {
	case "==":
		return equalValues(v, f.Value)
	case "!=":
		return !equalValues(v, f.Value)
	case "<":
		return compareValues(v, f.Value) < 0
	case "<=":
		return compareValues(v, f.Value) <= 0
	case ">":
		return compareValues(v, f.Value) > 0
	case ">=":
		return compareValues(v, f.Value) >= 0
	}
	return false
}

func equalValues(a, b any) bool {
	if na, ok := asFloat(a); ok {
		nb, ok := asFloat(b)
		return ok && na == nb
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func compareValues(a, b any) int {
	if na, ok := asFloat(a); ok {
		if nb, ok := asFloat(b); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
