// Package logstore is a durable key-value store kept as an append-only log of
// segment files. Values are encoded by a caller codec, zstd-compressed and
// checksummed; an in-memory index points every key at its latest record.
package logstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/mirkobrombin/go-foundation/pkg/options"
	"github.com/mirkobrombin/go-warp/v1/adapter"
)

// Store is safe for concurrent use.
type Store[V any] struct {
	mu      sync.RWMutex
	dir     string
	active  *segment
	sealed  []*segment
	index   *keyIndex
	maxSize int64
	closed  bool
	log     *slog.Logger

	codec   func(V) ([]byte, error)
	decoder func([]byte) (V, error)
	encPool *sync.Pool
	decPool *sync.Pool
}

// Open opens or creates the store in dir and replays its segments. A torn
// record at the tail of the newest segment is dropped; damage anywhere else
// fails with ErrCorrupt and leaves the files as they are.
func Open[V any](dir string, codec func(V) ([]byte, error), decoder func([]byte) (V, error), opts ...Option[V]) (*Store[V], error) {
	if codec == nil || decoder == nil {
		return nil, fmt.Errorf("logstore: codec and decoder are required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	s := &Store[V]{
		dir:     dir,
		index:   newKeyIndex(),
		maxSize: DefaultSegmentSize,
		log:     slog.Default(),
		codec:   codec,
		decoder: decoder,
		encPool: &sync.Pool{
			New: func() any {
				enc, _ := zstd.NewWriter(nil)
				return enc
			},
		},
		decPool: &sync.Pool{
			New: func() any {
				dec, _ := zstd.NewReader(nil)
				return dec
			},
		},
	}
	options.Apply(s, opts...)

	if s.maxSize <= headerSize || s.maxSize > offsetMask {
		return nil, fmt.Errorf("logstore: segment size %d out of range", s.maxSize)
	}

	if err := s.loadSegments(); err != nil {
		s.closeSegments()
		return nil, err
	}
	return s, nil
}

func (s *Store[V]) loadSegments() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	var ids []uint64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		id, err := strconv.ParseUint(strings.TrimSuffix(e.Name(), ".log"), 16, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for i, id := range ids {
		seg, err := openSegment(s.dir, id)
		if err != nil {
			return err
		}
		last := i == len(ids)-1
		if last {
			s.active = seg
		} else {
			s.sealed = append(s.sealed, seg)
		}
		if err := s.replay(seg, last); err != nil {
			return err
		}
	}

	if s.active == nil {
		seg, err := openSegment(s.dir, 0)
		if err != nil {
			return err
		}
		s.active = seg
	}
	return nil
}

func (s *Store[V]) replay(seg *segment, tail bool) error {
	stop, err := seg.iterate(func(r record, offset int64) error {
		s.index.put(r.Key, offset)
		return nil
	})
	if err == nil {
		return nil
	}
	if !tail || !errors.Is(err, errTorn) {
		return fmt.Errorf("logstore: replay segment %d at %d: %w", seg.id, stop, err)
	}

	s.log.Warn("logstore: dropping torn tail", "segment", seg.id, "offset", stop, "size", seg.size)
	return seg.truncate(stop)
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool, error) {
	var zero V

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return zero, false, ErrClosed
	}

	packed, ok := s.index.get(key)
	if !ok {
		return zero, false, nil
	}

	rec, err := s.readAt(packed)
	if err != nil {
		return zero, false, err
	}
	if rec.Key != key {
		return zero, false, fmt.Errorf("%w: index for %q points at %q", ErrCorrupt, key, rec.Key)
	}

	dec := s.decPool.Get().(*zstd.Decoder)
	data, err := dec.DecodeAll(rec.Value, nil)
	s.decPool.Put(dec)
	if err != nil {
		return zero, false, err
	}

	val, err := s.decoder(data)
	if err != nil {
		return zero, false, err
	}
	return val, true, nil
}

func (s *Store[V]) Set(_ context.Context, key string, value V) error {
	data, err := s.codec(value)
	if err != nil {
		return err
	}

	enc := s.encPool.Get().(*zstd.Encoder)
	compressed := enc.EncodeAll(data, nil)
	s.encPool.Put(enc)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	offset, err := s.append(record{Key: key, Value: compressed})
	if err != nil {
		return err
	}
	s.index.put(key, offset)
	return nil
}

// append writes r to the active segment, rotating first if it would not fit.
func (s *Store[V]) append(r record) (int64, error) {
	data := encodeRecord(r)
	if int64(len(data)) > s.maxSize {
		return 0, fmt.Errorf("%w: %d bytes, segment size %d", ErrSegmentFull, len(data), s.maxSize)
	}

	if s.active.size+int64(len(data)) > s.maxSize {
		if err := s.rotate(); err != nil {
			return 0, err
		}
	}

	offset, err := s.active.write(data)
	if err != nil {
		return 0, err
	}
	return packOffset(s.active.id, offset), nil
}

func (s *Store[V]) rotate() error {
	if err := s.active.sync(); err != nil {
		return err
	}
	seg, err := openSegment(s.dir, s.active.id+1)
	if err != nil {
		return err
	}
	s.sealed = append(s.sealed, s.active)
	s.active = seg
	return nil
}

func (s *Store[V]) readAt(packed int64) (record, error) {
	id, offset := unpackOffset(packed)
	seg := s.segment(id)
	if seg == nil {
		return record{}, fmt.Errorf("%w: segment %d missing", ErrCorrupt, id)
	}
	rec, _, err := seg.readRecord(offset)
	return rec, err
}

func (s *Store[V]) segment(id uint64) *segment {
	if s.active.id == id {
		return s.active
	}
	for _, seg := range s.sealed {
		if seg.id == id {
			return seg
		}
	}
	return nil
}

// Keys implements adapter.Store.Keys.
func (s *Store[V]) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.index.keys(), nil
}

// Len returns the number of live keys.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.len()
}

// Segments returns the number of segment files, active one included.
func (s *Store[V]) Segments() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sealed) + 1
}

// Sync flushes the active segment to disk.
func (s *Store[V]) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return s.active.sync()
}

func (s *Store[V]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := s.active.sync()
	return errors.Join(err, s.closeSegments())
}

func (s *Store[V]) closeSegments() error {
	var errs []error
	for _, seg := range s.sealed {
		errs = append(errs, seg.close())
	}
	if s.active != nil {
		errs = append(errs, s.active.close())
	}
	return errors.Join(errs...)
}

var _ adapter.Store[any] = (*Store[any])(nil)
