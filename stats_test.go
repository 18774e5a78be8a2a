package ipfilter

import "testing"

func TestNewPrefixStatsPrependsDefaultSentinel(t *testing.T) {
	s := NewPrefixStats([]int{24, 16, 24, 9})
	want := []int{0, 9, 16, 24}
	if len(s.Lengths) != len(want) {
		t.Fatalf("Lengths = %v, want %v", s.Lengths, want)
	}
	for i, l := range want {
		if s.Lengths[i] != l {
			t.Fatalf("Lengths[%d] = %d, want %d", i, s.Lengths[i], l)
		}
	}
	if s.Minn != 9 || s.Maxx != 24 {
		t.Fatalf("Minn/Maxx = %d/%d, want 9/24", s.Minn, s.Maxx)
	}
}

func TestNewPrefixStatsNoSentinelNeeded(t *testing.T) {
	s := NewPrefixStats([]int{0, 8, 24})
	if s.Lengths[0] != 0 {
		t.Fatalf("did not expect a duplicate sentinel, got %v", s.Lengths)
	}
	if len(s.Lengths) != 3 {
		t.Fatalf("Lengths = %v, want len 3", s.Lengths)
	}
}

func TestLen2IxRoundTrip(t *testing.T) {
	s := NewPrefixStats([]int{9, 24, 32})
	for ix, l := range s.Lengths {
		gotIx, ok := s.Len2Ix(l)
		if !ok || gotIx != ix {
			t.Fatalf("Len2Ix(%d) = %d, %v, want %d, true", l, gotIx, ok, ix)
		}
		if s.Ix2Len(ix) != l {
			t.Fatalf("Ix2Len(%d) = %d, want %d", ix, s.Ix2Len(ix), l)
		}
	}
	if _, ok := s.Len2Ix(17); ok {
		t.Fatal("Len2Ix(17) reported present for an absent length")
	}
}

func TestNewPrefixStatsPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewPrefixStats(nil) did not panic")
		}
	}()
	NewPrefixStats(nil)
}
