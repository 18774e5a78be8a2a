package bitset

import "testing"

func TestSetTest(t *testing.T) {
	b := New(100)
	for _, i := range []int{0, 1, 63, 64, 65, 99} {
		if b.Test(i) {
			t.Fatalf("bit %d set before any Set call", i)
		}
	}

	b.Set(64)
	if !b.Test(64) {
		t.Fatal("bit 64 not set after Set(64)")
	}
	if b.Test(63) || b.Test(65) {
		t.Fatal("neighboring bits affected by Set(64)")
	}
}

func TestPopcount(t *testing.T) {
	b := New(200)
	if b.Popcount() != 0 {
		t.Fatalf("Popcount of empty array = %d, want 0", b.Popcount())
	}

	for _, i := range []int{0, 5, 63, 64, 127, 199} {
		b.Set(i)
	}
	if got, want := b.Popcount(), 6; got != want {
		t.Fatalf("Popcount = %d, want %d", got, want)
	}

	// setting an already-set bit does not inflate the count.
	b.Set(5)
	if got, want := b.Popcount(), 6; got != want {
		t.Fatalf("Popcount after re-Set = %d, want %d", got, want)
	}
}

func TestLen(t *testing.T) {
	b := New(37)
	if got, want := b.Len(), 37; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	b := New(10)

	mustPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s did not panic", name)
			}
		}()
		f()
	}

	mustPanic("Set(-1)", func() { b.Set(-1) })
	mustPanic("Set(10)", func() { b.Set(10) })
	mustPanic("Test(10)", func() { b.Test(10) })
}
