package bloommap

import (
	"fmt"

	"github.com/mirkobrombin/go-bloommap/pkg/hashfamily"
)

// Info holds the filter parameters shared by a map. It can only be built by
// NewInfo and is not mutated afterwards.
type Info struct {
	m      uint
	hashes hashfamily.Family
}

// NewInfo validates m against hashes. The family must have been generated
// for exactly m positions.
func NewInfo(m uint, hashes hashfamily.Family) (Info, error) {
	info := Info{m: m, hashes: hashes}
	if err := info.validate(); err != nil {
		return Info{}, err
	}
	return info, nil
}

func (i Info) validate() error {
	if i.m < 1 {
		return fmt.Errorf("%w: m must be at least 1, got %d", ErrInvalidConfiguration, i.m)
	}
	if i.hashes.K() == 0 {
		return fmt.Errorf("%w: at least one hash function is required", ErrInvalidConfiguration)
	}
	if i.hashes.M() != i.m {
		return fmt.Errorf("%w: hash family maps onto %d positions, filter has %d", ErrInvalidConfiguration, i.hashes.M(), i.m)
	}
	return nil
}

// M returns the number of bits in the mask.
func (i Info) M() uint {
	return i.m
}

func (i Info) Hashes() hashfamily.Family {
	return i.hashes
}

// K returns the number of hash functions.
func (i Info) K() uint {
	return i.hashes.K()
}
