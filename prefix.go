package ipfilter

import "net/netip"

// MaskedAddr returns addr masked down to its leading length bits, the
// address of the ancestor prefix (addr, length) used when installing or
// probing a guided-filter marker. Bits beyond length are zeroed.
func MaskedAddr(addr netip.Addr, length int) netip.Addr {
	return netip.PrefixFrom(addr, length).Masked().Addr()
}

// PackedKey returns the little-endian byte encoding of the packed key
// K(P, L) = (L << W) | P for the prefix (addr, length), suitable as input
// to internal/fnv64.Hash and as an exact-match key into the FIB.
//
// addr is masked to length before packing, so callers never need to
// pre-zero the trailing bits themselves; two prefixes that share a value
// but differ in length pack to different keys because the length occupies
// its own trailing byte.
func PackedKey(addr netip.Addr, length int) []byte {
	masked := MaskedAddr(addr, length)
	raw := masked.AsSlice() // network (big-endian) byte order, W/8 bytes

	buf := make([]byte, len(raw)+1)
	for i, b := range raw {
		buf[len(raw)-1-i] = b // reverse to little-endian
	}
	buf[len(raw)] = byte(length)
	return buf
}

// fibKey is PackedKey rendered as a map key. It is a plain string
// conversion of the packed bytes, not a hash, so it never collides.
func fibKey(addr netip.Addr, length int) string {
	return string(PackedKey(addr, length))
}
