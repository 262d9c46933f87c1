package logstore

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrClosed      = fmt.Errorf("logstore: store is closed")
	ErrCorrupt     = fmt.Errorf("logstore: corrupt record")
	ErrSegmentFull = fmt.Errorf("logstore: record larger than segment")

	// errTorn marks a record cut short by a crash: it runs past the end of
	// the file, or it is the last record and fails its checksum.
	errTorn = fmt.Errorf("%w: torn record", ErrCorrupt)
)

const (
	// DefaultSegmentSize is the default max size for segments.
	DefaultSegmentSize = 64 * 1024 * 1024

	// [Checksum:8][KeyLen:4][ValueLen:4]
	headerSize = 16

	segmentShift = 32
	offsetMask   = (1 << segmentShift) - 1
)

// packOffset combines segment ID and file offset into a single int64.
func packOffset(segmentID uint64, offset int64) int64 {
	return int64((segmentID << segmentShift) | uint64(offset))
}

func unpackOffset(packed int64) (uint64, int64) {
	return uint64(packed) >> segmentShift, packed & offsetMask
}

type record struct {
	Key   string
	Value []byte
}

func checksum(key string, value []byte) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(key)
	_, _ = d.Write(value)
	return d.Sum64()
}

// encodeRecord lays out a record as
// [Checksum:8][KeyLen:4][ValueLen:4][Key:N][Value:M].
func encodeRecord(r record) []byte {
	buf := make([]byte, headerSize+len(r.Key)+len(r.Value))
	binary.BigEndian.PutUint64(buf[0:], checksum(r.Key, r.Value))
	binary.BigEndian.PutUint32(buf[8:], uint32(len(r.Key)))
	binary.BigEndian.PutUint32(buf[12:], uint32(len(r.Value)))
	copy(buf[headerSize:], r.Key)
	copy(buf[headerSize+len(r.Key):], r.Value)
	return buf
}

type header struct {
	sum    uint64
	keyLen uint32
	valLen uint32
}

func decodeHeader(b []byte) header {
	return header{
		sum:    binary.BigEndian.Uint64(b[0:]),
		keyLen: binary.BigEndian.Uint32(b[8:]),
		valLen: binary.BigEndian.Uint32(b[12:]),
	}
}

func (h header) bodySize() int64 {
	return int64(h.keyLen) + int64(h.valLen)
}

// decodeBody splits body into key and value and verifies the checksum.
func decodeBody(h header, body []byte) (record, error) {
	key := string(body[:h.keyLen])
	val := body[h.keyLen:]
	if checksum(key, val) != h.sum {
		return record{}, ErrCorrupt
	}
	return record{Key: key, Value: val}, nil
}
