package ipfilter

import "net/netip"

// LinearFilter is the reference lookup scheme (component I): it probes
// every prefix length present in the table, from longest to shortest,
// confirming each Bloom hit against the FIB.
type LinearFilter struct {
	cfg   Config
	bf    *BloomFilter
	fib   *FIB
	stats PrefixStats
}

// BuildLinear builds a LinearFilter over entries, inserting every prefix's
// packed key under the full range of k hash functions.
func BuildLinear(cfg Config, entries []Entry, fib *FIB) *LinearFilter {
	stats := NewPrefixStats(lengthsOf(entries))
	bf := NewBloomFilter(len(entries), cfg.FPP, cfg.K, cfg.M)

	for _, e := range sortedByLength(entries) {
		key := PackedKey(e.Addr, e.Length)
		bf.Insert(key, 0, bf.K())
	}

	return &LinearFilter{cfg: cfg, bf: bf, fib: fib, stats: stats}
}

// Lookup performs the longest-prefix match for ip, returning the next hop
// and true on a match, or ("", false) if no prefix covers ip.
func (lf *LinearFilter) Lookup(ip netip.Addr) (string, bool) {
	return linearScan(lf.bf, lf.fib, ip, lf.stats.Maxx, lf.stats.Minn)
}

// Stats returns the PrefixStats this filter was built over.
func (lf *LinearFilter) Stats() PrefixStats { return lf.stats }

// BloomFilter returns the underlying Bloom filter, for reporting
// diagnostics such as fill ratio; lookups should go through Lookup, never
// directly against this filter.
func (lf *LinearFilter) BloomFilter() *BloomFilter { return lf.bf }

// linearScan probes prefix lengths from upper down to lower (both
// inclusive), each time masking ip to that length and checking the full
// k-wide Bloom membership before consulting the FIB. It is shared by
// LinearFilter.Lookup and the guided filter's Fallback state, since both
// ultimately perform the same scan, possibly over the same Bloom filter.
func linearScan(bf *BloomFilter, fib *FIB, ip netip.Addr, upper, lower int) (string, bool) {
	for l := upper; l >= lower; l-- {
		masked := MaskedAddr(ip, l)
		key := PackedKey(masked, l)
		if !bf.ContainsAll(key, 0, bf.K()) {
			continue
		}
		if nh, ok := fib.Lookup(masked, l); ok {
			return nh, true
		}
	}
	return "", false
}
