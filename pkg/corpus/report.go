package corpus

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of one record.
type Status string

const (
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result is the outcome of one record.
type Result struct {
	Path   string
	Status Status
	Err    error
}

// Report summarizes one pass.
type Report struct {
	RunID      uuid.UUID
	Step       string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result

	counts map[Status]int
}

func (r *Report) add(res Result) {
	if r.counts == nil {
		r.counts = make(map[Status]int)
	}
	r.Results = append(r.Results, res)
	r.counts[res.Status]++
}

// Processed returns the number of records visited.
func (r *Report) Processed() int { return len(r.Results) }

// Changed returns the number of records rewritten (or that would have
// been, in a dry run).
func (r *Report) Changed() int { return r.counts[StatusChanged] }

// Skipped returns the number of records the step declined.
func (r *Report) Skipped() int { return r.counts[StatusSkipped] }

// Failed returns the number of failed records.
func (r *Report) Failed() int { return r.counts[StatusFailed] }

// Failures returns the failed results in processing order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Duration returns the wall time of the pass.
func (r *Report) Duration() time.Duration {
	end := r.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(r.StartedAt)
}

// Summary returns a one-line description of the pass.
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %d processed, %d changed, %d skipped, %d failed in %s (run %s)",
		r.Step, r.Processed(), r.Changed(), r.Skipped(), r.Failed(),
		r.Duration().Round(time.Second), r.RunID)
}
