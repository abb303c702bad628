package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/bulletin-lectionary/internal/bulletin"
	"github.com/zapponejosh/bulletin-lectionary/internal/calendar"
	"github.com/zapponejosh/bulletin-lectionary/internal/lectionary"
)

// CoverageOptions holds flags for the coverage command.
type CoverageOptions struct {
	*RootOptions
	Year        int
	SundaysOnly bool
	Strict      bool
}

// SeasonStats tracks lookup results for one season.
type SeasonStats struct {
	Season      calendar.Season `json:"season"`
	TotalDays   int             `json:"total_days"`
	FoundDays   int             `json:"found_days"`
	MissingDays []string        `json:"missing_days,omitempty"`
}

// CoverageReport summarizes which tiers answered across a liturgical year.
type CoverageReport struct {
	LiturgicalYear int                     `json:"liturgical_year"`
	SundayCycle    calendar.SundayCycle    `json:"rcl_year"`
	Start          string                  `json:"start"`
	End            string                  `json:"end"`
	TotalDays      int                     `json:"total_days"`
	FoundDays      int                     `json:"found_days"`
	Sources        map[lectionary.Tier]int `json:"sources"`
	Seasons        []*SeasonStats          `json:"seasons"`
}

// Missing returns the number of days no tier could answer.
func (r *CoverageReport) Missing() int {
	return r.TotalDays - r.FoundDays
}

// NewCoverageCommand creates the coverage command.
func NewCoverageCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CoverageOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Report reading coverage across a liturgical year",
		Long: `Look up every day of a liturgical year, Advent to Advent, and report
which tier answered, broken down by season. Lookups fill the cache as a
side effect.`,
		Example: `  lectionary coverage --year 2025 --sundays-only
  lectionary coverage --strict --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoverage(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Year, "year", 0, "liturgical year, named for the year its Advent begins (default: current)")
	cmd.Flags().BoolVar(&opts.SundaysOnly, "sundays-only", false, "only count Sundays")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit non-zero when any day has no readings")

	return cmd
}

func runCoverage(cmd *cobra.Command, opts *CoverageOptions) error {
	year := opts.Year
	if year == 0 {
		year = calendar.LiturgicalYear(time.Now())
	}
	if year < 1583 || year > 9998 {
		return WrapExitError(ExitCommandError, "invalid --year", fmt.Errorf("%d is out of range", year))
	}

	app, err := loadApp(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeApp(app)

	start := calendar.CalculateAdvent(year)
	end := calendar.CalculateAdvent(year+1).AddDate(0, 0, -1)

	days, err := app.Resolver.Range(cmd.Context(), start, end)
	if err != nil {
		return WrapExitError(ExitFailure, "coverage interrupted", err)
	}

	report := analyzeCoverage(year, start, end, days, opts.SundaysOnly)
	app.Logger.Info("coverage complete", "year", year, "days", report.TotalDays, "missing", report.Missing())

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := out.Success(report, report.text()); err != nil {
		return err
	}

	if opts.Strict && report.Missing() > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d days have no readings", report.Missing())}
	}
	return nil
}

// analyzeCoverage groups days by season in calendar order.
func analyzeCoverage(year int, start, end time.Time, days []bulletin.Day, sundaysOnly bool) *CoverageReport {
	report := &CoverageReport{
		LiturgicalYear: year,
		SundayCycle:    calendar.SundayCycleForYear(year),
		Start:          calendar.FormatDate(start),
		End:            calendar.FormatDate(end),
		Sources:        make(map[lectionary.Tier]int),
	}

	bySeason := make(map[calendar.Season]*SeasonStats)
	for _, season := range calendar.ValidSeasons() {
		stats := &SeasonStats{Season: season}
		bySeason[season] = stats
		report.Seasons = append(report.Seasons, stats)
	}

	for _, day := range days {
		if sundaysOnly && !day.Calendar.IsSunday {
			continue
		}
		report.TotalDays++
		report.Sources[day.Readings.Source]++

		stats, ok := bySeason[day.Calendar.Season]
		if !ok {
			continue
		}
		stats.TotalDays++
		if day.Readings.Found() {
			stats.FoundDays++
			report.FoundDays++
		} else {
			stats.MissingDays = append(stats.MissingDays, day.Date)
		}
	}

	return report
}

func (r *CoverageReport) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Liturgical year %d (Year %s), %s to %s\n", r.LiturgicalYear, r.SundayCycle, r.Start, r.End)
	fmt.Fprintf(&b, "Found %d of %d days (%.1f%%)\n", r.FoundDays, r.TotalDays, percent(r.FoundDays, r.TotalDays))

	b.WriteString("\nBy season:\n")
	for _, s := range r.Seasons {
		if s.TotalDays == 0 {
			continue
		}
		status := "✓"
		if len(s.MissingDays) > 0 {
			status = "✗"
		}
		fmt.Fprintf(&b, "  %s %-32s %d/%d\n", status, s.Season.Label(), s.FoundDays, s.TotalDays)
	}

	b.WriteString("\nBy source:\n")
	for _, tier := range tierOrder {
		if n := r.Sources[tier]; n > 0 {
			fmt.Fprintf(&b, "  %-15s %d\n", tier, n)
		}
	}
	return b.String()
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
