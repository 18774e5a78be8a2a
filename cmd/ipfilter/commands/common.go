// Package commands provides the cobra command implementations for the
// ipfilter CLI: build, lookup, and benchmark, the verbs spec.md §6 says a
// driver "may expose".
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bgpbloom/ipfilter"
	"github.com/bgpbloom/ipfilter/cmd/ipfilter/internal/cliconfig"
	"github.com/bgpbloom/ipfilter/ingest"
)

// schemes built from one prefix file, shared across commands that need
// both the linear reference scheme and the guided scheme over the same
// FIB.
type schemes struct {
	fib    *ipfilter.FIB
	linear *ipfilter.LinearFilter
	guided *ipfilter.GuidedFilter
}

func buildSchemes(settings cliconfig.Settings, logger *slog.Logger) (*schemes, error) {
	if settings.PrefixFile == "" {
		return nil, fmt.Errorf("--prefixes is required")
	}
	cfg := settings.BuildConfig()

	f, err := os.Open(settings.PrefixFile)
	if err != nil {
		return nil, fmt.Errorf("open prefix file: %w", err)
	}
	defer f.Close()

	entries, err := ingest.LoadPrefixes(f, cfg.Protocol)
	if err != nil {
		return nil, fmt.Errorf("load prefixes: %w", err)
	}
	logger.Info("loaded prefixes", "count", len(entries), "protocol", cfg.Protocol)

	fib := ipfilter.NewFIB()
	for _, e := range entries {
		fib.Insert(e.Addr, e.Length, e.NextHop)
	}

	linear := ipfilter.BuildLinear(cfg, entries, fib)
	guided := ipfilter.BuildGuided(cfg, entries, fib)

	return &schemes{fib: fib, linear: linear, guided: guided}, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
