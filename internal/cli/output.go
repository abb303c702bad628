package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zapponejosh/bulletin-lectionary/internal/bulletin"
	"github.com/zapponejosh/bulletin-lectionary/internal/calendar"
	"github.com/zapponejosh/bulletin-lectionary/internal/lectionary"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // lookup ran but could not finish
	ExitCommandError = 2 // bad arguments or configuration
)

// ExitError carries an exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// tierOrder lists tiers in lookup order for summaries.
var tierOrder = []lectionary.Tier{
	lectionary.TierCache,
	lectionary.TierDataset,
	lectionary.TierRemote,
	lectionary.TierBuiltin,
	lectionary.TierNone,
}

// OutputFormatter writes command results as JSON or text.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope for command output.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data. In text mode text is written instead.
func (f *OutputFormatter) Success(data any, text string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := io.WriteString(f.Writer, text)
	return err
}

// Error writes an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return err
}

func calendarText(info calendar.LiturgicalDate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", calendar.FormatDate(info.Date), info.DayName)
	fmt.Fprintf(&b, "  Season:     %s\n", info.Season.Label())
	fmt.Fprintf(&b, "  Color:      %s\n", info.Color)
	fmt.Fprintf(&b, "  RCL year:   %s\n", info.SundayCycle)
	fmt.Fprintf(&b, "  Daily:      %s\n", info.DailyCycle.YearLabel())
	fmt.Fprintf(&b, "  Easter:     %s\n", calendar.FormatDate(info.EasterDate))
	return b.String()
}

func readingsText(day bulletin.Day) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", day.Date, day.Calendar.DayName)
	if !day.Readings.Found() {
		b.WriteString("  No readings found\n")
		return b.String()
	}
	readings := day.Readings.Readings.Map()
	for _, slot := range lectionary.Slots() {
		if citation := readings[slot]; citation != "" {
			fmt.Fprintf(&b, "  %-8s %s\n", slot+":", citation)
		}
	}
	fmt.Fprintf(&b, "  (source: %s)\n", day.Readings.Source)
	return b.String()
}

func fieldsText(fields map[string]string) string {
	var b strings.Builder
	for _, key := range bulletin.Keys() {
		fmt.Fprintf(&b, "%s=%s\n", key, fields[key])
	}
	return b.String()
}
