// Package bloommap implements a key-value map whose lookups are guarded by a
// Bloom filter. A key whose bits are not all set is reported absent without
// touching the backing store; inserted keys are never reported absent.
package bloommap

import (
	"context"
	"fmt"

	"github.com/mirkobrombin/go-bloommap/pkg/hashfamily"
	"github.com/mirkobrombin/go-bloommap/pkg/mask"
	"github.com/mirkobrombin/go-bloommap/pkg/store"
	"github.com/mirkobrombin/go-foundation/pkg/options"
)

var (
	ErrInvalidConfiguration = hashfamily.ErrInvalidConfiguration
	ErrInvalidMaskLength    = fmt.Errorf("bloommap: invalid mask length")
)

// Map is a Bloom-filtered view over a Store. It is not safe for concurrent
// use; wrap it with NewSafe when sharing it across goroutines.
//
// There is no Delete: a bit may be shared by several keys, so clearing it
// could hide keys that are still present.
type Map[V any] struct {
	info  Info
	mask  *mask.Mask
	store store.Store[V]
}

// New builds a map over st. The store is borrowed: the map never closes it.
func New[V any](info Info, st store.Store[V], opts ...Option[V]) (*Map[V], error) {
	if err := info.validate(); err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: store is nil", ErrInvalidConfiguration)
	}

	m := &Map[V]{
		info:  info,
		store: st,
	}
	options.Apply(m, opts...)

	if m.mask == nil {
		m.mask = mask.New(info.m)
	} else if m.mask.Len() != info.m {
		return nil, fmt.Errorf("%w: mask has %d bits, filter expects %d", ErrInvalidMaskLength, m.mask.Len(), info.m)
	}
	return m, nil
}

// Set writes value to the store, then marks every bit of key. A failed store
// write leaves the mask untouched.
func (m *Map[V]) Set(ctx context.Context, key string, value V) error {
	if err := m.store.Set(ctx, key, value); err != nil {
		return err
	}
	for p := range m.info.hashes.Locations(key) {
		m.mask.Set(p)
	}
	return nil
}

// Get returns the stored value for key. ok is false when the mask rules the
// key out, and also when the mask lets a never-inserted key through but the
// store has nothing for it.
func (m *Map[V]) Get(ctx context.Context, key string) (V, bool, error) {
	if !m.MayContain(key) {
		var zero V
		return zero, false, nil
	}
	return m.store.Get(ctx, key)
}

// MayContain reports whether every bit of key is set. It stops at the first
// clear bit.
func (m *Map[V]) MayContain(key string) bool {
	for p := range m.info.hashes.Locations(key) {
		if !m.mask.Test(p) {
			return false
		}
	}
	return true
}

func (m *Map[V]) Info() Info {
	return m.info
}

// Mask returns a copy of the current mask.
func (m *Map[V]) Mask() *mask.Mask {
	return m.mask.Clone()
}

// Stats returns the fill state of the mask.
func (m *Map[V]) Stats() Stats {
	return newStats(m.info, m.mask.Count())
}
