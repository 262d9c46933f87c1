// Package store defines the backing key-value capability a Bloom-filtered
// map forwards to, plus in-process implementations of it.
package store

import (
	"context"

	"github.com/mirkobrombin/go-warp/v1/adapter"
)

// Store is the minimal contract a backing store must satisfy. Get reports a
// missing key with ok == false and a nil error.
type Store[V any] interface {
	Get(ctx context.Context, key string) (V, bool, error)
	Set(ctx context.Context, key string, value V) error
}

// FromWarp returns a go-warp store as a Store. Keys and batching stay
// reachable through s.
func FromWarp[V any](s adapter.Store[V]) Store[V] {
	return s
}
