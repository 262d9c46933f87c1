// Package hashfamily derives families of deterministic string hash functions
// that map keys onto the bit positions of a Bloom filter.
package hashfamily

import (
	"fmt"
	"iter"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/mirkobrombin/go-foundation/pkg/options"
	"github.com/spaolacci/murmur3"
)

var ErrInvalidConfiguration = fmt.Errorf("hashfamily: invalid configuration")

// Scheme selects how the k functions of a family are derived.
type Scheme int

const (
	// DoubleHashing derives position i as h1 + i*h2 (Kirsch and Mitzenmacher).
	DoubleHashing Scheme = iota
	// Salted hashes key+decimal(i) independently for every function.
	Salted
)

func (s Scheme) String() string {
	switch s {
	case DoubleHashing:
		return "double-hashing"
	case Salted:
		return "salted"
	default:
		return "scheme(" + strconv.Itoa(int(s)) + ")"
	}
}

// DefaultSeed is the murmur3 seed used for the second base hash.
const DefaultSeed uint32 = 0x9e3779b9

// Func maps a key onto a position in [0, m).
type Func func(key string) uint

// Family is an ordered set of hash functions sharing the same m. The zero
// Family has no functions and is rejected wherever a family is required.
type Family struct {
	m      uint
	scheme Scheme
	seed   uint32
	funcs  []Func
}

// M returns the number of positions the functions map onto.
func (f Family) M() uint {
	return f.m
}

// K returns the number of functions.
func (f Family) K() uint {
	return uint(len(f.funcs))
}

func (f Family) Scheme() Scheme {
	return f.scheme
}

// Funcs returns the functions in order.
func (f Family) Funcs() []Func {
	return slices.Clone(f.funcs)
}

// Locations yields the position of key under every function, in order.
// Under DoubleHashing the two base hashes are computed once per call.
func (f Family) Locations(key string) iter.Seq[uint] {
	return func(yield func(uint) bool) {
		if f.scheme == DoubleHashing {
			h1, h2 := baseHashes(key, f.seed)
			mod := uint64(f.m)
			for i := range uint64(len(f.funcs)) {
				if !yield(uint((h1 + i*h2) % mod)) {
					return
				}
			}
			return
		}
		for _, h := range f.funcs {
			if !yield(h(key)) {
				return
			}
		}
	}
}

// Positions returns the position of key under every function, in order.
func (f Family) Positions(key string) []uint {
	return slices.Collect(f.Locations(key))
}

type config struct {
	scheme Scheme
	seed   uint32
}

// Option configures Generate.
type Option = options.Option[config]

// WithScheme selects the derivation scheme. Defaults to DoubleHashing.
func WithScheme(s Scheme) Option {
	return func(c *config) {
		c.scheme = s
	}
}

// WithSeed sets the seed of the second base hash used by DoubleHashing.
func WithSeed(seed uint32) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// Generate returns k hash functions over [0, m). The result depends only on
// m, k and the options, so the same family can be rebuilt in another process.
func Generate(m, k uint, opts ...Option) (Family, error) {
	if m < 1 {
		return Family{}, fmt.Errorf("%w: m must be at least 1, got %d", ErrInvalidConfiguration, m)
	}
	if k < 1 {
		return Family{}, fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalidConfiguration, k)
	}

	cfg := config{scheme: DoubleHashing, seed: DefaultSeed}
	options.Apply(&cfg, opts...)

	funcs := make([]Func, k)
	for i := range k {
		switch cfg.scheme {
		case DoubleHashing:
			funcs[i] = doubleHash(m, uint64(i), cfg.seed)
		case Salted:
			funcs[i] = saltedHash(m, strconv.FormatUint(uint64(i), 10))
		default:
			return Family{}, fmt.Errorf("%w: unknown scheme %s", ErrInvalidConfiguration, cfg.scheme)
		}
	}
	return Family{m: m, scheme: cfg.scheme, seed: cfg.seed, funcs: funcs}, nil
}

func doubleHash(m uint, i uint64, seed uint32) Func {
	mod := uint64(m)
	return func(key string) uint {
		h1, h2 := baseHashes(key, seed)
		return uint((h1 + i*h2) % mod)
	}
}

func saltedHash(m uint, salt string) Func {
	mod := uint64(m)
	return func(key string) uint {
		return uint(xxhash.Sum64String(key+salt) % mod)
	}
}

// baseHashes returns the two independent hashes of key. h2 is forced odd so
// that consecutive positions never collapse onto h1 when m is a power of two.
func baseHashes(key string, seed uint32) (uint64, uint64) {
	h1 := xxhash.Sum64String(key)
	h2 := murmur3.Sum64WithSeed([]byte(key), seed) | 1
	return h1, h2
}
