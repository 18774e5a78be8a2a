// Package bitset implements a fixed-size bit array, the storage backing
// the Bloom filter's bit vector.
//
// Unlike github.com/gaissmai/bart's internal bitset (which grows and shrinks
// to back a popcount-compressed sparse trie), this variant has a size fixed
// at construction: m is decided once when the filter is sized and never
// changes again, and bits only ever transition from 0 to 1.
package bitset

import "math/bits"

const wordSize = 64

// Bitarray is a bit vector of fixed length m, indexed 0..m-1.
type Bitarray struct {
	words []uint64
	m     int
}

// New allocates a Bitarray with m bits, all zero.
//
// New panics if m <= 0; callers must size the filter before building it.
func New(m int) *Bitarray {
	if m <= 0 {
		panic("bitset: m must be positive")
	}
	return &Bitarray{
		words: make([]uint64, (m+wordSize-1)/wordSize),
		m:     m,
	}
}

// Len returns m, the fixed number of bits in the array.
func (b *Bitarray) Len() int {
	return b.m
}

// Set sets bit i to 1.
//
// Set panics if i is out of range; an out-of-range index is a contract
// violation, never a routine condition.
func (b *Bitarray) Set(i int) {
	b.checkRange(i)
	b.words[i/wordSize] |= 1 << uint(i%wordSize)
}

// Test reports whether bit i is set.
//
// Test panics if i is out of range.
func (b *Bitarray) Test(i int) bool {
	b.checkRange(i)
	return b.words[i/wordSize]&(1<<uint(i%wordSize)) != 0
}

// Popcount returns the number of bits currently set to 1.
func (b *Bitarray) Popcount() int {
	cnt := 0
	for _, w := range b.words {
		cnt += bits.OnesCount64(w)
	}
	return cnt
}

func (b *Bitarray) checkRange(i int) {
	if i < 0 || i >= b.m {
		panic("bitset: index out of range")
	}
}
