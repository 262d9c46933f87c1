package logstore

import (
	"context"
	"time"
)

// StartCompactor runs Compact every interval until ctx is done.
func (s *Store[V]) StartCompactor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Compact(); err != nil {
					s.log.Error("logstore: compaction failed", "err", err)
				}
			}
		}
	}()
}

// Compact copies the live records of every sealed segment into the active
// one and deletes the sealed files.
func (s *Store[V]) Compact() error {
	s.mu.RLock()
	sealed := make([]*segment, len(s.sealed))
	copy(sealed, s.sealed)
	s.mu.RUnlock()

	for _, seg := range sealed {
		if err := s.compactSegment(seg); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store[V]) compactSegment(seg *segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	pos := -1
	for i, sg := range s.sealed {
		if sg == seg {
			pos = i
			break
		}
	}
	if pos == -1 {
		// Already compacted by a concurrent run.
		return nil
	}

	moved := 0
	_, err := seg.iterate(func(r record, offset int64) error {
		if current, ok := s.index.get(r.Key); !ok || current != offset {
			return nil
		}

		newOffset, err := s.append(r)
		if err != nil {
			return err
		}
		if s.index.compareAndSwap(r.Key, offset, newOffset) {
			moved++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.active.sync(); err != nil {
		return err
	}

	// append may have rotated and grown s.sealed, but never before pos.
	s.sealed = append(s.sealed[:pos], s.sealed[pos+1:]...)
	s.log.Debug("logstore: compacted segment", "segment", seg.id, "moved", moved)
	return seg.remove()
}
