package commands

import (
	"fmt"
	"net/netip"

	"github.com/spf13/cobra"

	"github.com/bgpbloom/ipfilter/cmd/ipfilter/internal/cliconfig"
)

// LookupCommand holds the flags for the lookup verb.
type LookupCommand struct {
	configPath string
	prefixFile string
	protocol   string
	scheme     string
	verbose    bool
}

// NewLookupCommand creates and configures the lookup command: it resolves
// a single address against the chosen scheme and prints the result.
func NewLookupCommand() *cobra.Command {
	lc := &LookupCommand{}

	cmd := &cobra.Command{
		Use:   "lookup <address>",
		Short: "Resolve one address's longest prefix match",
		Args:  cobra.ExactArgs(1),
		RunE:  lc.Run,
	}

	cmd.Flags().StringVar(&lc.configPath, "config", "", "path to a config file")
	cmd.Flags().StringVar(&lc.prefixFile, "prefixes", "", "prefix file in the prefix_int prefix_len cidr_string format")
	cmd.Flags().StringVar(&lc.protocol, "protocol", "v4", "protocol: v4 or v6")
	cmd.Flags().StringVar(&lc.scheme, "scheme", "guided", "lookup scheme: linear or guided")
	cmd.Flags().BoolVarP(&lc.verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

// Run executes the lookup command.
func (lc *LookupCommand) Run(_ *cobra.Command, args []string) error {
	logger := newLogger(lc.verbose)

	addr, err := netip.ParseAddr(args[0])
	if err != nil {
		return fmt.Errorf("parse address %q: %w", args[0], err)
	}

	settings, err := cliconfig.Load(lc.configPath)
	if err != nil {
		return err
	}
	if lc.prefixFile != "" {
		settings.PrefixFile = lc.prefixFile
	}
	if lc.protocol != "" {
		settings.Protocol = lc.protocol
	}

	fs, err := buildSchemes(settings, logger)
	if err != nil {
		return err
	}

	var nextHop string
	var ok bool
	switch lc.scheme {
	case "linear":
		nextHop, ok = fs.linear.Lookup(addr)
	default:
		nextHop, ok = fs.guided.Lookup(addr)
	}

	if !ok {
		fmt.Println("no match")
		return nil
	}
	fmt.Println(nextHop)
	return nil
}
