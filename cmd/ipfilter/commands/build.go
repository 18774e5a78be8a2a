package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bgpbloom/ipfilter/cmd/ipfilter/internal/cliconfig"
)

// BuildCommand holds the flags for the build verb.
type BuildCommand struct {
	configPath string
	prefixFile string
	protocol   string
	fpp        float64
	weighting  string
	verbose    bool
}

// NewBuildCommand creates and configures the build command: it loads a
// prefix file and reports the resulting filter sizes for both lookup
// schemes, without performing any lookups.
func NewBuildCommand() *cobra.Command {
	bc := &BuildCommand{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the linear and guided filters over a prefix file and report their size",
		RunE:  bc.Run,
	}

	cmd.Flags().StringVar(&bc.configPath, "config", "", "path to a config file (default: search ./.ipfilter.yaml and $HOME)")
	cmd.Flags().StringVar(&bc.prefixFile, "prefixes", "", "prefix file in the prefix_int prefix_len cidr_string format")
	cmd.Flags().StringVar(&bc.protocol, "protocol", "v4", "protocol: v4 or v6")
	cmd.Flags().Float64Var(&bc.fpp, "fpp", 1e-6, "target false-positive probability")
	cmd.Flags().StringVar(&bc.weighting, "weighting", "equal", "OBST weighting: equal, by-prefix-count, or by-address-space")
	cmd.Flags().BoolVarP(&bc.verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

// Run executes the build command.
func (bc *BuildCommand) Run(_ *cobra.Command, _ []string) error {
	logger := newLogger(bc.verbose)

	settings, err := cliconfig.Load(bc.configPath)
	if err != nil {
		return err
	}
	if bc.prefixFile != "" {
		settings.PrefixFile = bc.prefixFile
	}
	if bc.protocol != "" {
		settings.Protocol = bc.protocol
	}
	if bc.fpp != 0 {
		settings.FPP = bc.fpp
	}
	if bc.weighting != "" {
		settings.Weighting = bc.weighting
	}

	fs, err := buildSchemes(settings, logger)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"scheme", "k", "m (bits)", "m (bytes)", "fill ratio"})
	for _, row := range []struct {
		name string
		bf   interface {
			K() int
			M() int
			FillRatio() float64
		}
	}{
		{"linear", fs.linear.BloomFilter()},
		{"guided", fs.guided.BloomFilter()},
	} {
		t.AppendRow(table.Row{
			row.name,
			row.bf.K(),
			humanize.Comma(int64(row.bf.M())),
			humanize.Bytes(uint64(row.bf.M() / 8)),
			fmt.Sprintf("%.4f", row.bf.FillRatio()),
		})
	}
	t.Render()

	return nil
}
