package bloommap

import (
	"github.com/mirkobrombin/go-bloommap/pkg/mask"
	"github.com/mirkobrombin/go-foundation/pkg/options"
)

// Option defines a functional configuration for the Map.
type Option[V any] = options.Option[Map[V]]

// WithMask starts the map from an existing mask instead of an empty one. The
// mask must already agree with the store's contents; New only checks its
// length.
func WithMask[V any](mk *mask.Mask) Option[V] {
	return func(m *Map[V]) {
		m.mask = mk
	}
}
