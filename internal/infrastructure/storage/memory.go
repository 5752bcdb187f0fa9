package storage

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"NewsPlatter/internal/ports"
)

// MemoryStore keeps documents in process memory. Merge writes replace
// top-level fields only, like the Postgres store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]ports.Document
}

var _ ports.DocumentStore = (*MemoryStore)(nil)

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string]map[string]ports.Document{}}
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (ports.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (s *MemoryStore) Exists(_ context.Context, collection string, ids []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.collections[collection][id]; ok {
			result[id] = true
		}
	}
	return result, nil
}

func (s *MemoryStore) Set(_ context.Context, collection, id string, doc ports.Document, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = map[string]ports.Document{}
		s.collections[collection] = docs
	}

	existing, ok := docs[id]
	if !merge || !ok {
		docs[id] = cloneDocument(doc)
		return nil
	}
	for k, v := range doc {
		existing[k] = cloneValue(v)
	}
	return nil
}

func (s *MemoryStore) Query(_ context.Context, collection string, q ports.Query) ([]ports.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ports.Document
	for _, doc := range s.collections[collection] {
		if matches(doc, q) {
			out = append(out, cloneDocument(doc))
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c, _ := compare(out[i][q.OrderBy], out[j][q.OrderBy])
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

func matches(doc ports.Document, q ports.Query) bool {
	if q.RangeField != "" {
		v, ok := doc[q.RangeField]
		if !ok {
			return false
		}
		if q.From != nil {
			if c, ok := compare(v, q.From); !ok || c < 0 {
				return false
			}
		}
		if q.To != nil {
			if c, ok := compare(v, q.To); !ok || c > 0 {
				return false
			}
		}
	}
	if q.MinField != "" {
		v, ok := doc[q.MinField]
		if !ok {
			return false
		}
		if c, ok := compare(v, q.Above); !ok || c <= 0 {
			return false
		}
	}
	return true
}

// compare orders two scalar values of the same kind. ok is false when the
// values are not comparable.
func compare(a, b any) (int, bool) {
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return at.Compare(bt), true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func cloneDocument(doc ports.Document) ports.Document {
	out := make(ports.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case ports.Document:
		return map[string]any(cloneDocument(t))
	case map[string]any:
		return map[string]any(cloneDocument(t))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}
