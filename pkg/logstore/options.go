package logstore

import (
	"log/slog"

	"github.com/mirkobrombin/go-foundation/pkg/options"
)

// Option defines a functional configuration for the Store.
type Option[V any] = options.Option[Store[V]]

// WithMaxSegmentSize sets the size at which the active segment is sealed and
// a new one started.
func WithMaxSegmentSize[V any](size int64) Option[V] {
	return func(s *Store[V]) {
		s.maxSize = size
	}
}

// WithLogger sets the logger used for recovery and compaction messages.
func WithLogger[V any](l *slog.Logger) Option[V] {
	return func(s *Store[V]) {
		s.log = l
	}
}
