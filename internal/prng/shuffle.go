package prng

import (
	"math"
	"math/bits"
)

// Shuffle permutes n elements with Fisher-Yates, walking from the last index
// down to 1 and swapping i with Index(src, i+1).
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, Index(src, i+1))
	}
}

// Index returns a uniform integer in [0, n). Bounds that fit in 32 bits draw
// 32-bit words; larger bounds draw 64-bit values. n must be positive.
func Index(src Source, n int) int {
	if n <= 0 {
		panic("prng: Index called with non-positive bound")
	}
	if uint64(n) <= math.MaxUint32 {
		return int(Uint32n(src, uint32(n)))
	}
	return int(Uint64n(src, uint64(n)))
}

// Uint32n samples [0, n) by widening multiplication. The acceptance zone is
// the conservative (n << lz(n)) - 1, so the number of words consumed for a
// given stream is fixed.
func Uint32n(src Source, n uint32) uint32 {
	zone := (n << bits.LeadingZeros32(n)) - 1
	for {
		hi, lo := bits.Mul32(src.Uint32(), n)
		if lo <= zone {
			return hi
		}
	}
}

// Uint64n is Uint32n over 64-bit values.
func Uint64n(src Source, n uint64) uint64 {
	zone := (n << bits.LeadingZeros64(n)) - 1
	for {
		hi, lo := bits.Mul64(src.Uint64(), n)
		if lo <= zone {
			return hi
		}
	}
}
