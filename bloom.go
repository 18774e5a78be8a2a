package ipfilter

import (
	"math"

	"github.com/bgpbloom/ipfilter/internal/bitset"
	"github.com/bgpbloom/ipfilter/internal/fnv64"
)

// BloomFilter is a parameterized Bloom filter with double-hashing derived
// from a single 64-bit FNV-1a value: h_i(key) = (H_lo + i*H_hi) mod m.
//
// Both the linear and guided lookup schemes share this one representation;
// what differs is which hash indices each scheme touches and how it
// interprets the bits it finds there (see Insert, InsertPattern,
// ContainsAll and ReadBits).
type BloomFilter struct {
	k   int
	m   int
	fpp float64 // informational only when K/M were supplied directly

	ba *bitset.Bitarray
}

// NewBloomFilter sizes and allocates a Bloom filter for n expected
// insertions, following §4.2 of the design:
//
//   - k == 0 && m == 0: both are derived from the target fpp.
//   - k != 0 && m == 0: m is derived from k and fpp.
//   - k != 0 && m != 0: both are used as given; fpp is stored only for
//     informational reporting.
//
// NewBloomFilter panics if the resulting k is not >= 1 (a contract
// violation: an unusable filter is never built).
func NewBloomFilter(n int, fpp float64, k, m int) *BloomFilter {
	switch {
	case k > 0 && m > 0:
		// both supplied directly, use as-is.
	case k > 0:
		m = int(math.Ceil(-float64(k*n) / math.Log(1-math.Pow(fpp, 1/float64(k)))))
	default:
		m = int(math.Ceil(-float64(n) * math.Log(fpp) / (math.Ln2 * math.Ln2)))
		k = int(math.Ceil(float64(m) * math.Ln2 / float64(n)))
	}

	if k < 1 {
		panic("ipfilter: BloomFilter requires k >= 1")
	}
	if m < k {
		panic("ipfilter: BloomFilter requires m >= k")
	}

	return &BloomFilter{
		k:   k,
		m:   m,
		fpp: fpp,
		ba:  bitset.New(m),
	}
}

// K returns the number of hash functions.
func (bf *BloomFilter) K() int { return bf.k }

// M returns the number of bits in the underlying array.
func (bf *BloomFilter) M() int { return bf.m }

// FPP returns the target false-positive probability used (or supplied) at
// construction time.
func (bf *BloomFilter) FPP() float64 { return bf.fpp }

// FillRatio returns the current fraction of set bits, a live estimate of
// how close empirical behavior is tracking the target fpp.
func (bf *BloomFilter) FillRatio() float64 {
	return float64(bf.ba.Popcount()) / float64(bf.m)
}

// hashIndex computes h_i(key) for a single i. i is not limited to [0, k):
// InsertPattern and ReadBits pass start+j, which may reach k or beyond.
func (bf *BloomFilter) hashIndex(key []byte, i int) int {
	h := fnv64.Hash(key)
	lo, hi := fnv64.Split(h)
	return int((uint64(lo) + uint64(i)*uint64(hi)) % uint64(bf.m))
}

// Insert sets ba[h_i(key)] for every i in the half-open range [start, end).
// This is range mode: plain presence bits, or a full k-wide membership
// insertion when called with (0, k).
func (bf *BloomFilter) Insert(key []byte, start, end int) {
	for i := start; i < end; i++ {
		bf.ba.Set(bf.hashIndex(key, i))
	}
}

// InsertPattern sets ba[h_(start+j)(key)] for every bit j of pattern that is
// 1. This writes exactly popcount(pattern) bits, none if pattern is 0.
func (bf *BloomFilter) InsertPattern(key []byte, start int, pattern int) {
	for j := 0; pattern != 0; j++ {
		if pattern&1 == 1 {
			bf.ba.Set(bf.hashIndex(key, start+j))
		}
		pattern >>= 1
	}
}

// ContainsAll reports whether ba[h_i(key)] is 1 for every i in the
// half-open range [start, end). It short-circuits on the first miss.
func (bf *BloomFilter) ContainsAll(key []byte, start, end int) bool {
	for i := start; i < end; i++ {
		if !bf.ba.Test(bf.hashIndex(key, i)) {
			return false
		}
	}
	return true
}

// ReadBits visits every i in [start, end) regardless of whether earlier
// probes missed, and returns the decoded integer
// V = sum_{i in range} ba[h_i(key)] * 2^(i-start). Writing with
// InsertPattern(key, start, pattern) and reading with
// ReadBits(key, start, start+E) returns pattern back, absent collisions.
func (bf *BloomFilter) ReadBits(key []byte, start, end int) int {
	v := 0
	for i := start; i < end; i++ {
		if bf.ba.Test(bf.hashIndex(key, i)) {
			v |= 1 << uint(i-start)
		}
	}
	return v
}
