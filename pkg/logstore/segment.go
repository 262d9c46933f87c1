package logstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// segment is one append-only file of the log. Callers serialize writes.
type segment struct {
	id   uint64
	path string
	file *os.File
	size int64
}

func segmentPath(dir string, id uint64) string {
	return filepath.Join(dir, fmt.Sprintf("%016x.log", id))
}

func openSegment(dir string, id uint64) (*segment, error) {
	path := segmentPath(dir, id)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("logstore: open segment %d: %w", id, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	return &segment{
		id:   id,
		path: path,
		file: f,
		size: stat.Size(),
	}, nil
}

// write appends data and returns the offset it was written at.
func (s *segment) write(data []byte) (int64, error) {
	n, err := s.file.Write(data)
	if err != nil {
		return 0, err
	}
	offset := s.size
	s.size += int64(n)
	return offset, nil
}

func (s *segment) readAt(offset int64, size int64) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := s.file.ReadAt(buf, offset); err != nil {
		return nil, err
	}
	return buf, nil
}

// readRecord reads and verifies the record at offset. It returns the offset
// of the next record. Damage confined to the end of the file is reported as
// errTorn; a bad record followed by more data is plain ErrCorrupt.
func (s *segment) readRecord(offset int64) (record, int64, error) {
	if offset+headerSize > s.size {
		return record{}, 0, errTorn
	}
	hb, err := s.readAt(offset, headerSize)
	if err != nil {
		return record{}, 0, err
	}
	h := decodeHeader(hb)

	end := offset + headerSize + h.bodySize()
	if end > s.size {
		return record{}, 0, errTorn
	}
	body, err := s.readAt(offset+headerSize, h.bodySize())
	if err != nil {
		return record{}, 0, err
	}
	rec, err := decodeBody(h, body)
	if err != nil {
		if end == s.size {
			return record{}, 0, errTorn
		}
		return record{}, 0, err
	}
	return rec, end, nil
}

// iterate calls fn for every record in order. It stops at the first record
// that cannot be read and returns its offset alongside the error.
func (s *segment) iterate(fn func(r record, offset int64) error) (int64, error) {
	offset := int64(0)
	for offset < s.size {
		rec, next, err := s.readRecord(offset)
		if err != nil {
			return offset, err
		}
		if err := fn(rec, packOffset(s.id, offset)); err != nil {
			return offset, err
		}
		offset = next
	}
	return offset, nil
}

// truncate drops everything from offset on.
func (s *segment) truncate(offset int64) error {
	if err := s.file.Truncate(offset); err != nil {
		return err
	}
	s.size = offset
	return nil
}

func (s *segment) sync() error {
	return s.file.Sync()
}

func (s *segment) close() error {
	return s.file.Close()
}

func (s *segment) remove() error {
	if err := s.close(); err != nil {
		return err
	}
	return os.Remove(s.path)
}
