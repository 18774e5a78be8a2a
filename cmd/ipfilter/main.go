// Command ipfilter is the CLI driver around the ipfilter core: build,
// lookup, and benchmark, the verbs spec.md §6 names as optional for a
// driver to expose. Exit code 0 on success, non-zero on any error
// (contract violation or I/O failure), matching §6's "exit code 0 on
// success, non-zero on contract violation."
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bgpbloom/ipfilter/cmd/ipfilter/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ipfilter",
		Short: "Bloom-filter-backed IP longest-prefix match",
		Long: `ipfilter builds and queries a Bloom-filter-indexed BGP forwarding table.

Commands:
  build      Build both lookup schemes and report their size
  lookup     Resolve a single address
  benchmark  Replay traffic and report accuracy against both schemes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewLookupCommand())
	rootCmd.AddCommand(commands.NewBenchmarkCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
