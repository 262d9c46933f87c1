package bloommap

import (
	"context"
	"sync"

	"github.com/mirkobrombin/go-bloommap/pkg/mask"
)

// Safe is a thread-safe wrapper around a Map. A Set's store write and mask
// update are applied under one lock, so a concurrent Get never sees the bits
// of a key before its value is in the store.
type Safe[V any] struct {
	mu sync.RWMutex
	m  *Map[V]
}

// NewSafe wraps m. m must not be used directly afterwards.
func NewSafe[V any](m *Map[V]) *Safe[V] {
	return &Safe[V]{m: m}
}

func (s *Safe[V]) Get(ctx context.Context, key string) (V, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Get(ctx, key)
}

func (s *Safe[V]) Set(ctx context.Context, key string, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Set(ctx, key, value)
}

func (s *Safe[V]) MayContain(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.MayContain(key)
}

func (s *Safe[V]) Mask() *mask.Mask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Mask()
}

func (s *Safe[V]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Stats()
}
