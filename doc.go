// Package ipfilter performs IP longest-prefix match over a BGP forwarding
// table using a Bloom filter as the primary index, instead of the
// popcount-compressed multibit trie used by github.com/gaissmai/bart.
//
// Two lookup disciplines share one Bloom filter representation:
//
//   - Linear: probes every prefix length present in the table, from
//     longest to shortest, and checks each Bloom hit against the FIB.
//   - Guided: walks a precomputed optimal binary search tree over prefix
//     lengths, using a second group of hash bits at each positive probe to
//     recover the best-matching prefix length of the inserted prefix and
//     jump straight to it, falling back to Linear when the decode looks
//     untrustworthy.
//
// Both disciplines are built once, from an already-populated FIB, and are
// read-only and safe for concurrent lookups thereafter.
package ipfilter
