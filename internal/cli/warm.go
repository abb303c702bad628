package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/bulletin-lectionary/internal/bulletin"
	"github.com/zapponejosh/bulletin-lectionary/internal/calendar"
	"github.com/zapponejosh/bulletin-lectionary/internal/lectionary"
)

// MaxWarmDays bounds one warm run.
const MaxWarmDays = 400

// WarmOptions holds flags for the warm command.
type WarmOptions struct {
	*RootOptions
	Start string
	End   string
}

// WarmSummary reports how each day in a warm run was answered.
type WarmSummary struct {
	Start   string                  `json:"start"`
	End     string                  `json:"end"`
	Days    int                     `json:"days"`
	Sources map[lectionary.Tier]int `json:"sources"`
	Missing []string                `json:"missing,omitempty"`
}

// NewWarmCommand creates the warm command.
func NewWarmCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WarmOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "warm",
		Short:   "Resolve a date range ahead of time to fill the cache",
		Example: `  lectionary warm --start 2026-11-29 --end 2027-01-10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWarm(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.End, "end", "", "last date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runWarm(cmd *cobra.Command, opts *WarmOptions) error {
	start, err := calendar.ParseDateString(opts.Start)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --start", err)
	}
	end, err := calendar.ParseDateString(opts.End)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --end", err)
	}
	if start.After(end) {
		return WrapExitError(ExitCommandError, "invalid range", errors.New("start is after end"))
	}
	if n := bulletin.RangeDays(start, end); n > MaxWarmDays {
		return WrapExitError(ExitCommandError, "invalid range",
			fmt.Errorf("%d days exceeds the limit of %d", n, MaxWarmDays))
	}

	app, err := loadApp(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeApp(app)

	days, err := app.Resolver.Range(cmd.Context(), start, end)
	if err != nil {
		return WrapExitError(ExitFailure, "warm interrupted", err)
	}

	summary := WarmSummary{
		Start:   calendar.FormatDate(start),
		End:     calendar.FormatDate(end),
		Days:    len(days),
		Sources: make(map[lectionary.Tier]int),
	}
	for _, day := range days {
		summary.Sources[day.Readings.Source]++
		if !day.Readings.Found() {
			summary.Missing = append(summary.Missing, day.Date)
		}
	}
	app.Logger.Info("cache warmed", "days", summary.Days, "missing", len(summary.Missing))

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(summary, summary.text())
}

func (s WarmSummary) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Warmed %d days, %s to %s\n", s.Days, s.Start, s.End)
	for _, tier := range tierOrder {
		if n := s.Sources[tier]; n > 0 {
			fmt.Fprintf(&b, "  %-15s %d\n", tier, n)
		}
	}
	return b.String()
}
