package ipfilter

import (
	"net/netip"
	"sort"
)

// Entry is a single FIB row: a prefix and the next hop it resolves to. It
// is the in-memory shape the build entry points consume, decoupled from
// whatever external format (see package ingest) produced it.
type Entry struct {
	Addr    netip.Addr
	Length  int
	NextHop string
}

// sortedByLength returns entries sorted by ascending prefix length, a copy
// left untouched from the input order otherwise. The guided builder
// requires this order (§5 of the design: the FIB must be fully populated
// and the BMP lookup for a prefix of length L must only see prefixes
// shorter than L already installed).
func sortedByLength(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Length < out[j].Length
	})
	return out
}

func lengthsOf(entries []Entry) []int {
	lengths := make([]int, len(entries))
	for i, e := range entries {
		lengths[i] = e.Length
	}
	return lengths
}

func countByLength(entries []Entry) map[int]int {
	counts := make(map[int]int)
	for _, e := range entries {
		counts[e.Length]++
	}
	return counts
}
