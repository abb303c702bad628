package lectionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Dataset file names, by daily cycle.
const (
	yearOneFile = "year-one.json"
	yearTwoFile = "year-two.json"
)

// DatasetYearFile picks the Daily Office file for a date. The year boundary
// is approximated as November 27; this tier serves weekday office data, so
// the exact First Sunday of Advent is not needed.
func DatasetYearFile(date time.Time) string {
	year := date.Year()
	if date.Before(time.Date(year, time.November, 27, 0, 0, 0, 0, date.Location())) {
		year--
	}
	if year%2 != 0 {
		return yearOneFile
	}
	return yearTwoFile
}

// DatasetDayKeys returns the accepted "day" values for a date, e.g.
// "January 5" and "January 05".
func DatasetDayKeys(date time.Time) []string {
	return []string{date.Format("January 2"), date.Format("January 02")}
}

// DailyOffice reads the two-year Daily Office JSON dataset laid out as
// <root>/json/readings/year-one.json and year-two.json. Parsed files are
// kept in memory until Invalidate is called or Watch sees them change.
type DailyOffice struct {
	dir    string
	logger *slog.Logger

	readFile func(string) ([]byte, error)

	mu    sync.Mutex
	files map[string][]map[string]any
	gen   uint64 // bumped by Invalidate
}

// NewDailyOffice creates a dataset reader rooted at root.
func NewDailyOffice(root string, logger *slog.Logger) *DailyOffice {
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyOffice{
		dir:      filepath.Join(root, "json", "readings"),
		logger:   logger,
		readFile: os.ReadFile,
		files:    make(map[string][]map[string]any),
	}
}

// Dir returns the directory holding the year files.
func (d *DailyOffice) Dir() string {
	return d.dir
}

// Lookup returns the readings recorded for a date's month and day.
// A missing file or a date with no record yields ErrNotFound.
func (d *DailyOffice) Lookup(ctx context.Context, date time.Time) (Readings, error) {
	path := filepath.Join(d.dir, DatasetYearFile(date))

	records, err := d.load(path)
	if err != nil {
		return Readings{}, err
	}

	keys := DatasetDayKeys(date)
	for _, record := range records {
		day, _ := record["day"].(string)
		if day == keys[0] || day == keys[1] {
			return extractReadings(record), nil
		}
	}
	return Readings{}, ErrNotFound
}

func (d *DailyOffice) load(path string) ([]map[string]any, error) {
	d.mu.Lock()
	records, ok := d.files[path]
	gen := d.gen
	d.mu.Unlock()
	if ok {
		return records, nil
	}

	data, err := d.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	// An Invalidate during the read means data may predate the change;
	// serve it once but do not keep it.
	d.mu.Lock()
	if d.gen == gen {
		d.files[path] = records
	}
	d.mu.Unlock()
	return records, nil
}

// Invalidate drops every memoized file.
func (d *DailyOffice) Invalidate() {
	d.mu.Lock()
	clear(d.files)
	d.gen++
	d.mu.Unlock()
}

// Watch invalidates the memoized files whenever the dataset directory
// changes. It blocks until ctx is done.
func (d *DailyOffice) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(d.dir); err != nil {
		return fmt.Errorf("watch %s: %w", d.dir, err)
	}
	d.logger.Info("watching daily office dataset", "dir", d.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			d.logger.Debug("dataset changed", "file", event.Name, "op", event.Op.String())
			d.Invalidate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.Warn("dataset watcher error", "error", err)
		}
	}
}
