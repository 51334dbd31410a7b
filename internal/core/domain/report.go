package domain

import (
	"fmt"
	"time"
)

// RunReport aggregates the results of one synchronisation run.
type RunReport struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed.
	FinishedAt time.Time

	// Published counts pages that received a new revision. In dry-run mode
	// it counts pages that would have received one.
	Published int

	// Unchanged counts pages skipped because the remote body already matched.
	Unchanged int

	// Failed counts pages that could not be published.
	Failed int

	// DryRun is true when no writes were issued.
	DryRun bool

	// Failures lists the per-page errors in processing order.
	Failures []PublishFailure
}

// PublishFailure records one failed page publish.
type PublishFailure struct {
	// Title is the page that failed.
	Title string

	// Err is the underlying failure.
	Err error
}

// NewRunReport creates a report for a run identified by runID.
func NewRunReport(runID string, dryRun bool) *RunReport {
	return &RunReport{
		RunID:     runID,
		StartedAt: time.Now(),
		DryRun:    dryRun,
	}
}

// Record tallies one publish result.
func (r *RunReport) Record(res PublishResult) {
	switch res.Outcome {
	case OutcomePublished, OutcomeDryRun:
		r.Published++
	case OutcomeUnchanged:
		r.Unchanged++
	}
}

// RecordFailure tallies one failed page.
func (r *RunReport) RecordFailure(title string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, PublishFailure{Title: title, Err: err})
}

// HasFailures reports whether any page failed.
func (r *RunReport) HasFailures() bool {
	return r.Failed > 0
}

// Summary returns the one-line run summary printed at run end.
func (r *RunReport) Summary() string {
	verb := "published"
	if r.DryRun {
		verb = "would publish"
	}
	return fmt.Sprintf("%s %d, unchanged %d, failed %d", verb, r.Published, r.Unchanged, r.Failed)
}
