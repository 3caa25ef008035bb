package labels

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// Stats counts what a [Labeller] run did with the logs it found.
type Stats struct {
	Logs        int
	Labelled    int
	NoLicense   int // record license is NOASSERTION or "No license found"
	NoFailure   int // no BUILD FAILURE line
	Excluded    int // matched an exclusion rule
	InvalidName int
	ByLabel     map[Label]int
}

// Labeller turns the build logs of a directory into dataset entries.
type Labeller struct {
	logsDir  string
	licenses map[string]string
	logger   *log.Logger
}

// NewLabeller creates a labeller for logsDir. licenses maps a breaking
// commit to the license recorded for it; commits without an entry are
// labelled anyway.
func NewLabeller(logsDir string, licenses map[string]string, logger *log.Logger) *Labeller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Labeller{logsDir: logsDir, licenses: licenses, logger: logger}
}

// Licenses collects the top-level license of every record passed to it.
// Use it as the callback of a corpus scan to build the map for
// [NewLabeller].
func Licenses(into map[string]string) func(*record.Record) error {
	return func(r *record.Record) error {
		if c := r.BreakingCommit(); c != "" {
			into[c] = r.Get(record.PathLicense)
		}
		return nil
	}
}

// Logs lists the *.log files of the directory in name order.
func (l *Labeller) Logs() ([]string, error) {
	if err := bkerrors.ValidatePath(l.logsDir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(l.logsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bkerrors.Wrap(bkerrors.ErrCodeFileNotFound, err, "logs directory %s", l.logsDir)
		}
		return nil, fmt.Errorf("read logs directory %s: %w", l.logsDir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".log") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Run labels every log and writes the entries to sink. A sink error
// stops the run.
func (l *Labeller) Run(ctx context.Context, sink Sink) (*Stats, error) {
	names, err := l.Logs()
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByLabel: make(map[Label]int)}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Logs++

		commit := strings.TrimSuffix(name, ".log")
		if err := bkerrors.ValidateCommitHash(commit); err != nil {
			l.logger.Warn("skipping log", "file", name, "err", err)
			stats.InvalidName++
			continue
		}

		license, known := l.licenses[commit]
		if known && (license == record.NoAssertion || license == record.NoLicenseFound) {
			l.logger.Debug("skipping log without usable license", "commit", commit, "license", license)
			stats.NoLicense++
			continue
		}

		text, err := readFailure(filepath.Join(l.logsDir, name))
		if err != nil {
			return stats, err
		}
		if text == "" {
			stats.NoFailure++
			continue
		}
		label, ok := Classify(text)
		if !ok {
			l.logger.Debug("excluding log", "commit", commit)
			stats.Excluded++
			continue
		}

		entry := NewEntry(commit, text, label, license)
		if err := sink.Put(ctx, entry); err != nil {
			return stats, err
		}
		stats.Labelled++
		stats.ByLabel[label]++
	}
	return stats, nil
}

func readFailure(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open log %s: %w", path, err)
	}
	defer f.Close()

	text, err := ExtractFailure(f)
	if err != nil {
		return "", fmt.Errorf("read log %s: %w", path, err)
	}
	return text, nil
}

// Summary returns a one-line description of the run.
func (s *Stats) Summary() string {
	var parts []string
	for _, l := range Labels {
		if n := s.ByLabel[l]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", l, n))
		}
	}
	return fmt.Sprintf("labels: %d logs, %d labelled (%s), %d without license, %d without failure, %d excluded",
		s.Logs, s.Labelled, strings.Join(parts, " "), s.NoLicense, s.NoFailure, s.Excluded)
}
