// Package corpus drives a single pass of a step over every bump record in
// a set of directories.
//
// Records are processed one at a time in directory order, then file name
// order. A step edits the record in place; the runner writes the record
// back only when its canonical form differs from the file on disk.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
	"github.com/matzehuels/bumpkit/pkg/observability"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// ErrSkip is returned by a [Step] to leave a record untouched and count
// it as skipped.
var ErrSkip = errors.New("skip record")

// Step processes one record.
type Step func(ctx context.Context, r *record.Record) error

// Options configures a [Runner].
type Options struct {
	// Dirs are scanned in order for *.json records (not recursively).
	Dirs []string

	// Strict aborts the pass at the first failing record.
	Strict bool

	// DryRun runs every step but writes nothing.
	DryRun bool
}

// Runner applies steps to the records of a corpus.
type Runner struct {
	Options
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(opts Options, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Options: opts, Logger: logger}
}

// Files lists the record files of every configured directory.
func (r *Runner) Files() ([]string, error) {
	var files []string
	for _, dir := range r.Dirs {
		if err := bkerrors.ValidatePath(dir); err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, bkerrors.Wrap(bkerrors.ErrCodeFileNotFound, err, "record directory %s", dir)
			}
			return nil, fmt.Errorf("read record directory %s: %w", dir, err)
		}
		var names []string
		for _, e := range entries {
			if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".json") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			files = append(files, filepath.Join(dir, n))
		}
	}
	return files, nil
}

// Run applies step to every record and returns the report. In strict mode
// the first failure stops the pass and is returned along with the partial
// report. Cancelling ctx stops the pass between records.
func (r *Runner) Run(ctx context.Context, name string, step Step) (*Report, error) {
	files, err := r.Files()
	if err != nil {
		return nil, err
	}

	report := newReport(name)
	hooks := observability.Corpus()
	hooks.OnRunStart(ctx, name, r.Dirs)
	defer func() {
		report.FinishedAt = time.Now()
		hooks.OnRunComplete(ctx, name, report.Processed(), report.Changed(), report.Failed(), report.Duration())
	}()

	r.Logger.Info("starting pass", "step", name, "records", len(files), "run", report.RunID)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := r.apply(ctx, name, path, step)
		report.add(res)

		switch res.Status {
		case StatusFailed:
			r.Logger.Error("record failed", "path", path, "err", res.Err)
			if r.Strict {
				return report, fmt.Errorf("%s: %w", path, res.Err)
			}
		case StatusChanged:
			r.Logger.Debug("record updated", "path", path)
		}
	}

	r.Logger.Info("pass complete",
		"step", name,
		"processed", report.Processed(),
		"changed", report.Changed(),
		"skipped", report.Skipped(),
		"failed", report.Failed(),
		"duration", report.Duration().Round(time.Millisecond))
	return report, nil
}

func (r *Runner) apply(ctx context.Context, name, path string, step Step) Result {
	hooks := observability.Corpus()
	hooks.OnRecordStart(ctx, name, path)
	start := time.Now()

	res := Result{Path: path}
	defer func() {
		hooks.OnRecordComplete(ctx, name, path, res.Status == StatusChanged, time.Since(start), res.Err)
	}()

	rec, err := record.Load(path)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}

	if err := step(ctx, rec); err != nil {
		if errors.Is(err, ErrSkip) {
			res.Status = StatusSkipped
			return res
		}
		res.Status, res.Err = StatusFailed, err
		return res
	}

	changed, err := rec.Changed()
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}
	if !changed {
		res.Status = StatusUnchanged
		return res
	}
	if !r.DryRun {
		if err := rec.Save(""); err != nil {
			res.Status, res.Err = StatusFailed, err
			return res
		}
	}
	res.Status = StatusChanged
	return res
}

// Scan loads every record read-only and passes it to fn. Records that do
// not parse are logged and skipped. An error from fn stops the scan.
func (r *Runner) Scan(ctx context.Context, fn func(*record.Record) error) error {
	files, err := r.Files()
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := record.Load(path)
		if err != nil {
			r.Logger.Warn("skipping unreadable record", "path", path, "err", err)
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func newReport(step string) *Report {
	return &Report{
		RunID:     uuid.New(),
		Step:      step,
		StartedAt: time.Now(),
	}
}
