package store

import (
	"context"
	"sync"

	"github.com/mirkobrombin/go-warp/v1/adapter"
)

// Memory is a map-backed Store, safe for concurrent use.
type Memory[V any] struct {
	mu   sync.RWMutex
	data map[string]V
}

func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{
		data: make(map[string]V),
	}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Len returns the number of stored keys.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Keys implements adapter.Store.Keys.
func (m *Memory[V]) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ adapter.Store[any] = (*Memory[any])(nil)
