// Package fnv64 computes the 64-bit FNV-1a hash used to derive the Bloom
// filter's pair of hash functions from a single pass over a packed key.
package fnv64

const (
	offsetBasis uint64 = 0xcbf29ce484222325
	prime       uint64 = 0x100000001b3
)

// Hash returns the FNV-1a hash of key, consuming key byte by byte in the
// order given. Callers are expected to pass the little-endian byte
// representation of the packed prefix key (see ipfilter.PackedKey), so that
// a given key hashes identically regardless of platform.
func Hash(key []byte) uint64 {
	h := offsetBasis
	for _, b := range key {
		h ^= uint64(b)
		h *= prime
	}
	return h
}

// Split breaks a 64-bit hash into its lower and upper 32-bit halves, used by
// the Bloom filter as the two seeds of its double-hashing scheme.
func Split(h uint64) (lo, hi uint32) {
	return uint32(h & 0xFFFFFFFF), uint32(h >> 32)
}
