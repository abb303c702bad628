package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/bulletin-lectionary/internal/calendar"
)

// NewCalendarCommand creates the calendar command.
func NewCalendarCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <date|today>",
		Short: "Show the liturgical calendar entry for a date",
		Example: `  lectionary calendar 2026-01-25
  lectionary calendar today --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args[0])
			if err != nil {
				return err
			}

			app, err := loadApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer closeApp(app)

			info := app.Calendar.Info(cmd.Context(), date)
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(info, calendarText(info))
		},
	}
}

// parseDateArg accepts YYYY-MM-DD or "today".
func parseDateArg(arg string) (time.Time, error) {
	if arg == "today" {
		return calendar.NormalizeToMidnight(time.Now()), nil
	}
	date, err := calendar.ParseDateString(arg)
	if err != nil {
		return time.Time{}, WrapExitError(ExitCommandError, "invalid date, use YYYY-MM-DD", err)
	}
	return date, nil
}
