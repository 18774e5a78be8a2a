package ipfilter

import "sort"

// PrefixStats summarizes the set of prefix lengths actually present in a
// FIB: the shortest and longest, the sorted list of distinct lengths (with
// a synthetic 0 "default route" slot prepended if no explicit default
// exists), and the index<->length lookup tables the guided filter uses to
// encode and decode a best-matching-prefix length as a small integer.
type PrefixStats struct {
	Minn, Maxx int
	Lengths    []int // ix2len: Lengths[i] is the i-th distinct length

	len2ix map[int]int
}

// NewPrefixStats computes PrefixStats from the prefix lengths present in a
// FIB (duplicates allowed, order irrelevant). It panics if lengths is
// empty: a filter must be built over at least one prefix.
func NewPrefixStats(lengths []int) PrefixStats {
	if len(lengths) == 0 {
		panic("ipfilter: NewPrefixStats requires at least one prefix length")
	}

	seen := make(map[int]bool, len(lengths))
	var distinct []int
	for _, l := range lengths {
		if !seen[l] {
			seen[l] = true
			distinct = append(distinct, l)
		}
	}
	sort.Ints(distinct)

	minn, maxx := distinct[0], distinct[len(distinct)-1]

	full := distinct
	if full[0] != 0 {
		full = append([]int{0}, full...)
	}

	len2ix := make(map[int]int, len(full))
	for ix, l := range full {
		len2ix[l] = ix
	}

	return PrefixStats{
		Minn:    minn,
		Maxx:    maxx,
		Lengths: full,
		len2ix:  len2ix,
	}
}

// Ix2Len returns the prefix length stored at index ix. Ix2Len panics if ix
// is out of range.
func (s PrefixStats) Ix2Len(ix int) int {
	return s.Lengths[ix]
}

// Len2Ix returns the index of length l among the distinct represented
// lengths, or false if l is not among them. The default-route slot 0 is
// always present, even when no length-0 prefix was observed.
func (s PrefixStats) Len2Ix(l int) (int, bool) {
	ix, ok := s.len2ix[l]
	return ix, ok
}

// Cardinality returns the number of distinct represented lengths,
// including the default-route sentinel.
func (s PrefixStats) Cardinality() int {
	return len(s.Lengths)
}
