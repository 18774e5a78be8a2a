package ingest

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgpbloom/ipfilter"
)

func TestLoadFIBParsesWellFormedLines(t *testing.T) {
	input := "16777216 24 1.0.0.0/24\n3221225472 9 192.0.0.0/9\n"
	fib, err := LoadFIB(strings.NewReader(input), ipfilter.V4)
	require.NoError(t, err)
	require.Equal(t, 2, fib.Len())

	nh, ok := fib.Lookup(mustAddr(t, "1.0.0.0"), 24)
	require.True(t, ok)
	require.Equal(t, "1.0.0.0/24", nh)
}

func TestLoadFIBSkipsMalformedFieldCount(t *testing.T) {
	input := "16777216 24 1.0.0.0/24\nnot a valid line at all here\n3221225472 9 192.0.0.0/9\n"
	fib, err := LoadFIB(strings.NewReader(input), ipfilter.V4)
	require.NoError(t, err)
	require.Equal(t, 2, fib.Len())
}

func TestLoadFIBErrorsOnBadInteger(t *testing.T) {
	_, err := LoadFIB(strings.NewReader("notanumber 24 1.0.0.0/24\n"), ipfilter.V4)
	require.Error(t, err)
}

func TestLoadPrefixesPreservesNextHop(t *testing.T) {
	input := "0 0 0.0.0.0/0\n16777216 24 1.0.0.0/24\n"
	entries, err := LoadPrefixes(strings.NewReader(input), ipfilter.V4)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "0.0.0.0/0", entries[0].NextHop)
	require.Equal(t, 0, entries[0].Length)
	require.Equal(t, 24, entries[1].Length)
}

func TestLoadTrafficIgnoresStringColumn(t *testing.T) {
	input := "134744072 8.8.8.8\n16777216 1.0.0.0\n"
	traffic, err := LoadTraffic(strings.NewReader(input), ipfilter.V4)
	require.NoError(t, err)
	require.Len(t, traffic, 2)
	require.Equal(t, mustAddr(t, "8.8.8.8"), traffic[0])
}

func TestLoadWeightsKeepsOnlyPositiveFractions(t *testing.T) {
	input := "uniform,0,0.1,0,0.4,0.5\n"
	weights, err := LoadWeights(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, map[int]float64{1: 0.1, 3: 0.4, 4: 0.5}, weights)
}

func TestDecodeIntRejectsOverflow(t *testing.T) {
	_, err := decodeInt("99999999999999999999999999999999", ipfilter.V4)
	require.Error(t, err)
}

func TestDecodeIntV6RoundTrips(t *testing.T) {
	addr, err := decodeInt("1", ipfilter.V6)
	require.NoError(t, err)
	require.Equal(t, mustAddr(t, "::1"), addr)
}

func mustAddr(t *testing.T, s string) netip.Addr {
	t.Helper()
	a, err := netip.ParseAddr(s)
	require.NoError(t, err)
	return a
}
