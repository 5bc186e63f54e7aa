package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemStore keeps the catalog in a map. All mutations take the write lock so
// that check-then-reduce on stock stays atomic under concurrent requests.
type MemStore struct {
	mu sync.RWMutex
	m  map[int]Product
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[int]Product{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Upsert(ctx context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.ID] = p
	return nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) ReduceStock(ctx context.Context, id, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.m[id]
	if !ok {
		return false, nil
	}
	if !p.ReduceStock(qty) {
		return false, nil
	}
	s.m[id] = p
	return true, nil
}

func (s *MemStore) ListSortedByID(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
