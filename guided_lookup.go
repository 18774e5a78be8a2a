package ipfilter

import "net/netip"

// Lookup performs the guided longest-prefix match for ip: it descends the
// optimal binary search tree one presence bit at a time, then tries to
// decode the best-matching-prefix length from the second group of hash
// bits at the deepest hit, verifying the decode against the remaining hash
// functions and the FIB before trusting it. A decode that looks
// untrustworthy falls back to a bounded linear scan instead of ever
// returning a wrong answer.
func (gf *GuidedFilter) Lookup(ip netip.Addr) (string, bool) {
	lastHitLen, hits := gf.descend(ip)
	if hits == 0 {
		return "", false
	}
	return gf.decode(ip, lastHitLen, hits)
}

// descend walks the tree from the root, probing only the presence bit
// (h_0) of the masked key at each node. It returns the deepest node length
// at which the presence bit fired, and how many such hits occurred along
// the path (used as the starting hash index for decoding).
func (gf *GuidedFilter) descend(ip netip.Addr) (lastHitLen, hits int) {
	current := gf.root
	for current != nil {
		masked := MaskedAddr(ip, current.Value)
		key := PackedKey(masked, current.Value)

		if gf.bf.ContainsAll(key, 0, 1) {
			hits++
			lastHitLen = current.Value
			current = current.Right
		} else {
			current = current.Left
		}
	}
	return lastHitLen, hits
}

// decode interprets the hash bits beyond the presence bit at the deepest
// descent hit (lastHitLen, having accumulated hits markers so far) per the
// Decode state of §4.6 of the design.
func (gf *GuidedFilter) decode(ip netip.Addr, lastHitLen, hits int) (string, bool) {
	E := gf.cfg.EncodingWidth()
	k := gf.bf.K()
	start := hits

	maskedLast := MaskedAddr(ip, lastHitLen)
	keyLast := PackedKey(maskedLast, lastHitLen)

	c := gf.bf.ReadBits(keyLast, start, start+E)
	maxC := (1 << uint(E)) - 1

	switch {
	case c == maxC:
		// A full-range insert (the prefix's own exact match) sets h_0
		// through h_(k-1), so a window inside [0, k) decodes to all-ones
		// here: verify against the remaining hash functions before
		// trusting it. Unconfirmed, lastHitLen itself is still a
		// candidate, so the fallback scan starts there.
		if start+E < k && gf.bf.ContainsAll(keyLast, start+E, k) {
			if nh, ok := gf.fib.Lookup(maskedLast, lastHitLen); ok {
				return nh, true
			}
		}
		return gf.fallback(ip, lastHitLen)

	case c >= gf.stats.Cardinality():
		// Decoded index doesn't name a real length: a false positive
		// corrupted the fingerprint.
		return gf.fallback(ip, lastHitLen-1)

	case c == 0:
		// Nothing decoded: the marker's BMP is the default-route slot,
		// which matches only if a default route is stored.
		return gf.fib.Lookup(MaskedAddr(ip, 0), 0)

	default:
		hypothesized := gf.stats.Ix2Len(c)
		if hypothesized >= lastHitLen {
			// A real BMP is always strictly shorter than the marker
			// that encoded it; this can't be genuine.
			return gf.fallback(ip, lastHitLen-1)
		}

		maskedH := MaskedAddr(ip, hypothesized)
		keyH := PackedKey(maskedH, hypothesized)
		if gf.bf.ContainsAll(keyH, start+E, k) {
			if nh, ok := gf.fib.Lookup(maskedH, hypothesized); ok {
				return nh, true
			}
		}
		return gf.fallback(ip, lastHitLen-1)
	}
}

// fallback defaults to a linear scan of lengths from upper down to the
// shortest represented length, reusing the same Bloom filter the guided
// build populated (it already holds a full-range insert for every
// genuinely stored prefix, which is all a linear scan ever needs).
func (gf *GuidedFilter) fallback(ip netip.Addr, upper int) (string, bool) {
	return linearScan(gf.bf, gf.fib, ip, upper, gf.stats.Minn)
}
