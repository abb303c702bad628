package cli

import "github.com/spf13/cobra"

// ReadingsOptions holds flags for the readings command.
type ReadingsOptions struct {
	*RootOptions
	Fields bool
}

// NewReadingsCommand creates the readings command.
func NewReadingsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReadingsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "readings <date|today>",
		Short: "Look up the readings for a date",
		Long: `Look up the readings for a date through the cache, the Daily Office
dataset, the remote lectionary service, and the built-in table, in that
order. A date with no readings anywhere is reported, not treated as an
error.`,
		Example: `  lectionary readings 2026-01-25
  lectionary readings today --fields --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args[0])
			if err != nil {
				return err
			}

			app, err := loadApp(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer closeApp(app)

			day := app.Resolver.Day(cmd.Context(), date)
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Fields {
				fields := day.Fields()
				return out.Success(fields, fieldsText(fields))
			}
			return out.Success(day, readingsText(day))
		},
	}

	cmd.Flags().BoolVar(&opts.Fields, "fields", false, "print bulletin template fields instead")

	return cmd
}
