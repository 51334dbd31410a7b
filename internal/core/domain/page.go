package domain

// Page is the desired end state of one wiki page.
type Page struct {
	// Title is the full page title, including any user prefix.
	Title string

	// Body is the complete desired page text.
	Body string

	// Summary is the edit summary recorded with the revision.
	Summary string
}

// PublishOutcome classifies what publishing one page did.
type PublishOutcome string

const (
	// OutcomePublished means a new revision was saved.
	OutcomePublished PublishOutcome = "published"

	// OutcomeUnchanged means the remote body already matched and no write
	// call was issued.
	OutcomeUnchanged PublishOutcome = "unchanged"

	// OutcomeDryRun means a write was needed but suppressed by dry-run mode.
	OutcomeDryRun PublishOutcome = "dry-run"
)

// PublishResult reports the outcome of publishing one page.
type PublishResult struct {
	// Title is the page title.
	Title string

	// Outcome classifies what happened.
	Outcome PublishOutcome

	// Created is true when the page did not exist before this run.
	Created bool
}
