package bloommap

import (
	"fmt"
	"math"
)

const ln2Squared = math.Ln2 * math.Ln2

// Estimate returns the bit count m and hash count k that keep the false
// positive rate near fp once n keys have been inserted.
func Estimate(n uint, fp float64) (m, k uint, err error) {
	if n == 0 {
		return 0, 0, fmt.Errorf("%w: n must be positive", ErrInvalidConfiguration)
	}
	if fp <= 0 || fp >= 1 || math.IsNaN(fp) {
		return 0, 0, fmt.Errorf("%w: fp must be in (0, 1), got %v", ErrInvalidConfiguration, fp)
	}

	m = uint(math.Ceil(-float64(n) * math.Log(fp) / ln2Squared))
	if m < 1 {
		m = 1
	}
	k = uint(math.Round(float64(m) / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return m, k, nil
}
