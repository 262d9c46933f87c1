package bloommap

import "math"

// Stats describes how full a map's mask is.
type Stats struct {
	Bits      uint
	Hashes    uint
	BitsSet   uint
	FillRatio float64
	// EstimatedFalsePositiveRate is FillRatio^Hashes, the probability that a
	// random never-inserted key passes the mask.
	EstimatedFalsePositiveRate float64
}

func newStats(info Info, set uint) Stats {
	fill := float64(set) / float64(info.m)
	return Stats{
		Bits:                       info.m,
		Hashes:                     info.K(),
		BitsSet:                    set,
		FillRatio:                  fill,
		EstimatedFalsePositiveRate: math.Pow(fill, float64(info.K())),
	}
}
