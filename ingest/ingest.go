// Package ingest implements the external interfaces spec.md §6 describes
// as collaborators of the core: loaders for the FIB/prefix file, the
// weight file, and the traffic file. None of this package is imported by
// the core ipfilter packages; it only produces the types (ipfilter.Entry,
// *ipfilter.FIB, netip.Addr) those packages already operate on.
package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math/big"
	"net/netip"
	"strconv"
	"strings"

	"github.com/bgpbloom/ipfilter"
)

// LoadFIB reads the `prefix_int prefix_len cidr_string` format (§6, "FIB
// loader") and returns a fully populated FIB keyed by the decoded
// (address, length) pair, mapping to the cidr_string column verbatim as
// the next hop.
func LoadFIB(r io.Reader, protocol ipfilter.Protocol) (*ipfilter.FIB, error) {
	fib := ipfilter.NewFIB()

	err := scanFields(r, 3, func(lineNo int, fields []string) error {
		addr, length, err := decodePrefix(fields[0], fields[1], protocol)
		if err != nil {
			return fmt.Errorf("ingest: line %d: %w", lineNo, err)
		}
		fib.Insert(addr, length, fields[2])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fib, nil
}

// LoadPrefixes reads the same `prefix_int prefix_len cidr_string` format
// as LoadFIB (§6, "Prefix loader") and returns the parallel Entry slice
// the build entry points (BuildLinear, BuildGuided) consume. Callers do
// not need to presort by length themselves: BuildLinear and BuildGuided
// sort internally before use.
func LoadPrefixes(r io.Reader, protocol ipfilter.Protocol) ([]ipfilter.Entry, error) {
	var entries []ipfilter.Entry

	err := scanFields(r, 3, func(lineNo int, fields []string) error {
		addr, length, err := decodePrefix(fields[0], fields[1], protocol)
		if err != nil {
			return fmt.Errorf("ingest: line %d: %w", lineNo, err)
		}
		entries = append(entries, ipfilter.Entry{Addr: addr, Length: length, NextHop: fields[2]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadTraffic reads the `ip_int ip_str` traffic format (§6, "Traffic
// input"); only ip_int is decoded, ip_str is ignored as the spec
// prescribes.
func LoadTraffic(r io.Reader, protocol ipfilter.Protocol) ([]netip.Addr, error) {
	var traffic []netip.Addr

	err := scanFields(r, 2, func(lineNo int, fields []string) error {
		addr, err := decodeInt(fields[0], protocol)
		if err != nil {
			return fmt.Errorf("ingest: line %d: %w", lineNo, err)
		}
		traffic = append(traffic, addr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return traffic, nil
}

// LoadWeights reads a CSV-style weight file (§6, "Weight input"): the
// first column is a label (ignored), subsequent columns are per-length
// fractions indexed 0..W. Only columns with a value > 0 are kept, each
// remembered under its column index as the represented prefix length.
func LoadWeights(r io.Reader) (map[int]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may have fewer trailing columns than W+1
	cr.TrimLeadingSpace = true

	weights := make(map[int]float64)
	lineNo := 0
	for {
		lineNo++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: weight file line %d: %w", lineNo, err)
		}
		if len(record) < 2 {
			continue // label-only row, nothing to weigh
		}
		for length, field := range record[1:] {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			frac, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("ingest: weight file line %d, column %d: %w", lineNo, length, err)
			}
			if frac > 0 {
				weights[length] = frac
			}
		}
	}
	return weights, nil
}

// scanFields scans r line by line, splitting on whitespace, and invokes fn
// with the 1-based line number and the split fields for every line with
// exactly wantFields fields. Lines with a different field count are
// skipped, matching the reference loader's tolerance for blank or
// short trailing lines; fn's own errors (a malformed numeric field) abort
// the scan.
func scanFields(r io.Reader, wantFields int, fn func(lineNo int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) != wantFields {
			continue
		}
		if err := fn(lineNo, fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("ingest: scan: %w", err)
	}
	return nil
}

// decodePrefix parses a (prefix_int, prefix_len) field pair into a masked
// netip.Addr and its length.
func decodePrefix(intField, lenField string, protocol ipfilter.Protocol) (netip.Addr, int, error) {
	addr, err := decodeInt(intField, protocol)
	if err != nil {
		return netip.Addr{}, 0, err
	}
	length, err := strconv.Atoi(lenField)
	if err != nil {
		return netip.Addr{}, 0, fmt.Errorf("parse prefix length %q: %w", lenField, err)
	}
	if length < 0 || length > protocol.Width() {
		return netip.Addr{}, 0, fmt.Errorf("prefix length %d out of range for %s", length, protocol)
	}
	return ipfilter.MaskedAddr(addr, length), length, nil
}

// decodeInt parses a decimal integer address (the wire format §6
// prescribes, rather than dotted or colon notation) into a netip.Addr of
// the given protocol's width.
func decodeInt(field string, protocol ipfilter.Protocol) (netip.Addr, error) {
	n, ok := new(big.Int).SetString(field, 10)
	if !ok {
		return netip.Addr{}, fmt.Errorf("parse address integer %q", field)
	}
	if n.Sign() < 0 {
		return netip.Addr{}, fmt.Errorf("address integer %q is negative", field)
	}

	width := protocol.Width() / 8
	raw := n.Bytes()
	if len(raw) > width {
		return netip.Addr{}, fmt.Errorf("address integer %q overflows %s", field, protocol)
	}

	buf := make([]byte, width)
	copy(buf[width-len(raw):], raw)

	if protocol == ipfilter.V6 {
		addr, ok := netip.AddrFromSlice(buf)
		if !ok {
			return netip.Addr{}, fmt.Errorf("build v6 address from %q", field)
		}
		return addr, nil
	}
	return netip.AddrFrom4([4]byte(buf)), nil
}
