package ipfilter

import (
	"net/netip"

	"github.com/bgpbloom/ipfilter/internal/obst"
)

// GuidedFilter is the guided lookup scheme (components F and G): a single
// Bloom filter built around an optimal binary search tree over prefix
// lengths, where every ancestor length visited while inserting a prefix
// gets a presence marker plus a fingerprint of that prefix's own
// best-matching-prefix (BMP) length, so that a lookup which hits a marker
// can jump straight to the likely BMP instead of scanning every length.
type GuidedFilter struct {
	cfg   Config
	bf    *BloomFilter
	fib   *FIB
	stats PrefixStats
	root  *obst.Node
}

// BuildGuided builds a GuidedFilter over entries.
//
// fib must already contain every entry (the ordering guarantee in §5 of
// the design: the FIB is fully populated before any BMP computation), and
// entries are processed in ascending length order regardless of the order
// passed in, so that each prefix's BMP is computed against only the
// already-meaningful, shorter prefixes.
func BuildGuided(cfg Config, entries []Entry, fib *FIB) *GuidedFilter {
	stats := NewPrefixStats(lengthsOf(entries))

	weights := computeWeights(cfg.Weighting, stats, countByLength(entries), cfg.Width())
	root := obst.Build(weights, stats.Lengths)

	bf := NewBloomFilter(len(entries), cfg.FPP, cfg.K, cfg.M)

	E := cfg.EncodingWidth()
	if cardinality := stats.Cardinality(); cardinality > 1<<uint(E) {
		panic("ipfilter: too many distinct prefix lengths to encode in E bits")
	}

	for _, e := range sortedByLength(entries) {
		installPrefix(bf, fib, stats, root, e.Addr, e.Length)
	}

	return &GuidedFilter{cfg: cfg, bf: bf, fib: fib, stats: stats, root: root}
}

// Stats returns the PrefixStats this filter was built over.
func (gf *GuidedFilter) Stats() PrefixStats { return gf.stats }

// BloomFilter returns the underlying Bloom filter, for reporting
// diagnostics such as fill ratio; lookups should go through Lookup, never
// directly against this filter.
func (gf *GuidedFilter) BloomFilter() *BloomFilter { return gf.bf }

// installPrefix walks the tree from root for a single prefix (addr,
// length), installing a presence marker and BMP fingerprint at every
// ancestor length strictly shorter than length, and finally the prefix's
// own full-range membership insert at the tree node matching length.
func installPrefix(bf *BloomFilter, fib *FIB, stats PrefixStats, root *obst.Node, addr netip.Addr, length int) {
	bmpIx := findBMP(fib, stats, addr, length)

	current := root
	hits := 0
	for current != nil {
		switch {
		case length < current.Value:
			current = current.Left

		case length == current.Value:
			key := PackedKey(addr, length)
			bf.Insert(key, 0, bf.K())
			return

		default: // length > current.Value: current.Value is a marker length
			markerKey := PackedKey(addr, current.Value)
			bf.Insert(markerKey, 0, 1) // presence bit, h_0 only
			hits++
			bf.InsertPattern(markerKey, hits, bmpIx)
			current = current.Right
		}
	}
}

// findBMP returns the index (per stats.Len2Ix) of the longest prefix
// length strictly shorter than length for which (addr masked to that
// length) is present in fib, or the default-route index 0 if none exists.
func findBMP(fib *FIB, stats PrefixStats, addr netip.Addr, length int) int {
	for i := len(stats.Lengths) - 1; i >= 0; i-- {
		l := stats.Lengths[i]
		if l >= length {
			continue
		}
		masked := MaskedAddr(addr, l)
		if _, ok := fib.Lookup(masked, l); ok {
			return i
		}
	}
	return 0
}
