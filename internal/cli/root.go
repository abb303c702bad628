// Package cli implements the lectionary command-line interface.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/bulletin-lectionary/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"

	// LoadConfig reads the configuration; tests replace it.
	LoadConfig func() (*config.Config, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{LoadConfig: config.Load}

	cmd := &cobra.Command{
		Use:   "lectionary",
		Short: "Liturgical calendar and lectionary lookups",
		Long: `Resolve the liturgical season, day name, color, and lectionary cycles for
any date, and look up its Revised Common Lectionary readings through the
cache, a local Daily Office dataset, a remote lectionary service, and a
built-in Year A table.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewCalendarCommand(opts))
	cmd.AddCommand(NewReadingsCommand(opts))
	cmd.AddCommand(NewWarmCommand(opts))
	cmd.AddCommand(NewCoverageCommand(opts))

	return cmd
}
