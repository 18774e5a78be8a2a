package ipfilter

import "net/netip"

// FIB is the forwarding information base: an exact-match dictionary from a
// packed (prefix, length) key to an opaque next-hop value. It is the
// authoritative source consulted to confirm or refute a Bloom filter hit.
//
// A FIB is built once and read concurrently thereafter; Insert must not be
// called once lookups have started.
type FIB struct {
	entries map[string]string
}

// NewFIB returns an empty FIB.
func NewFIB() *FIB {
	return &FIB{entries: make(map[string]string)}
}

// Insert adds the next-hop for prefix (addr, length). Insert overwrites any
// existing entry for the same (addr, length) pair.
func (f *FIB) Insert(addr netip.Addr, length int, nextHop string) {
	f.entries[fibKey(addr, length)] = nextHop
}

// Lookup returns the next hop stored for the exact prefix (addr, length),
// or false if no such entry exists.
func (f *FIB) Lookup(addr netip.Addr, length int) (string, bool) {
	nh, ok := f.entries[fibKey(addr, length)]
	return nh, ok
}

// Len returns the number of entries in the FIB.
func (f *FIB) Len() int {
	return len(f.entries)
}
