// Package mask holds the bit array of a Bloom filter. Bits can only be set,
// never cleared: a bit may be shared by many keys.
package mask

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/mirkobrombin/go-bloommap/pkg/hashfamily"
)

// Mask is a fixed-length, set-only bit array. It is not safe for concurrent
// mutation.
type Mask struct {
	bits *bitset.BitSet
	m    uint
}

// New returns an all-false mask of m bits.
func New(m uint) *Mask {
	return &Mask{bits: bitset.New(m), m: m}
}

// FromBools copies bools into a new mask of len(bools) bits.
func FromBools(bools []bool) *Mask {
	mk := New(uint(len(bools)))
	for i, b := range bools {
		if b {
			mk.bits.Set(uint(i))
		}
	}
	return mk
}

// FromBitSet wraps bs. The mask takes ownership and its length is bs.Len().
// A nil bs yields an empty mask.
func FromBitSet(bs *bitset.BitSet) *Mask {
	if bs == nil {
		return New(0)
	}
	return &Mask{bits: bs, m: bs.Len()}
}

// Build returns a mask of fam.M() bits with every position of every key set.
func Build(fam hashfamily.Family, keys ...string) *Mask {
	mk := New(fam.M())
	for _, key := range keys {
		for p := range fam.Locations(key) {
			mk.Set(p)
		}
	}
	return mk
}

func (mk *Mask) Len() uint {
	return mk.m
}

// Set marks bit i. Setting an already set bit is a no-op.
func (mk *Mask) Set(i uint) {
	mk.check(i)
	mk.bits.Set(i)
}

func (mk *Mask) Test(i uint) bool {
	mk.check(i)
	return mk.bits.Test(i)
}

// Count returns the number of bits set.
func (mk *Mask) Count() uint {
	return mk.bits.Count()
}

// Bools returns a copy of the mask as a bool slice.
func (mk *Mask) Bools() []bool {
	out := make([]bool, mk.m)
	for i, ok := mk.bits.NextSet(0); ok && i < mk.m; i, ok = mk.bits.NextSet(i + 1) {
		out[i] = true
	}
	return out
}

func (mk *Mask) Clone() *Mask {
	return &Mask{bits: mk.bits.Clone(), m: mk.m}
}

// BitSet exposes the underlying bit set for callers persisting the mask.
func (mk *Mask) BitSet() *bitset.BitSet {
	return mk.bits
}

// bitset grows silently on out-of-range writes; a mask must not.
func (mk *Mask) check(i uint) {
	if i >= mk.m {
		panic(fmt.Sprintf("mask: index %d out of range [0,%d)", i, mk.m))
	}
}
