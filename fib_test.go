package ipfilter

import (
	"net/netip"
	"testing"
)

func TestFIBExactMatchOnly(t *testing.T) {
	fib := NewFIB()
	fib.Insert(netip.MustParseAddr("1.0.0.0"), 24, "1.0.0.0/24")

	if _, ok := fib.Lookup(netip.MustParseAddr("1.0.0.0"), 16); ok {
		t.Fatal("FIB matched a shorter prefix than was inserted")
	}
	if nh, ok := fib.Lookup(netip.MustParseAddr("1.0.0.0"), 24); !ok || nh != "1.0.0.0/24" {
		t.Fatalf("Lookup(/24) = %q, %v, want %q, true", nh, ok, "1.0.0.0/24")
	}
}

func TestFIBOverwrite(t *testing.T) {
	fib := NewFIB()
	addr := netip.MustParseAddr("10.0.0.0")
	fib.Insert(addr, 8, "first")
	fib.Insert(addr, 8, "second")

	if fib.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after overwrite", fib.Len())
	}
	if nh, _ := fib.Lookup(addr, 8); nh != "second" {
		t.Fatalf("Lookup = %q, want %q", nh, "second")
	}
}
