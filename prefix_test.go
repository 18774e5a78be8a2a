package ipfilter

import (
	"net/netip"
	"testing"
)

func TestPackedKeyDiffersByLength(t *testing.T) {
	addr := netip.MustParseAddr("1.0.0.0")
	k24 := PackedKey(addr, 24)
	k16 := PackedKey(addr, 16)
	if string(k24) == string(k16) {
		t.Fatal("packed keys for same value, different length, collided")
	}
}

func TestPackedKeyMasksTrailingBits(t *testing.T) {
	unmasked := netip.MustParseAddr("1.0.0.7") // low 3 bits set, not a valid /24
	masked := netip.MustParseAddr("1.0.0.0")

	if string(PackedKey(unmasked, 24)) != string(PackedKey(masked, 24)) {
		t.Fatal("PackedKey did not mask trailing bits before packing")
	}
}

func TestMaskedAddr(t *testing.T) {
	addr := netip.MustParseAddr("192.0.2.137")
	got := MaskedAddr(addr, 9)
	want := netip.MustParseAddr("192.0.0.0")
	if got != want {
		t.Fatalf("MaskedAddr(.../9) = %s, want %s", got, want)
	}
}

func TestPackedKeyLength(t *testing.T) {
	v4 := PackedKey(netip.MustParseAddr("10.0.0.0"), 8)
	if len(v4) != 5 {
		t.Fatalf("v4 packed key length = %d, want 5", len(v4))
	}

	v6 := PackedKey(netip.MustParseAddr("2001:db8::"), 32)
	if len(v6) != 17 {
		t.Fatalf("v6 packed key length = %d, want 17", len(v6))
	}
}
