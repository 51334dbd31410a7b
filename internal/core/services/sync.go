package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/scriptwiki/gitsync/internal/core/domain"
	"github.com/scriptwiki/gitsync/internal/core/ports/driven"
	"github.com/scriptwiki/gitsync/internal/core/ports/driving"
	"github.com/scriptwiki/gitsync/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator coordinates the publish pipeline: every file the scanner
// yields is transformed, summarised and published strictly in sequence.
// A failure on one page never aborts the run; it is counted and the next
// page is processed.
type SyncOrchestrator struct {
	scanner     driven.RepoScanner
	transformer *Transformer
	summaries   *SummaryBuilder
	publisher   *Publisher
	repoHost    driven.RepoHost
	cfg         *domain.Config

	// branches memoises default-branch lookups for the run.
	branches map[string]string
}

// NewSyncOrchestrator creates a new sync orchestrator.
// repoHost is optional - if nil, source links use the configured fallback
// branch.
func NewSyncOrchestrator(
	scanner driven.RepoScanner,
	transformer *Transformer,
	summaries *SummaryBuilder,
	publisher *Publisher,
	repoHost driven.RepoHost,
	cfg *domain.Config,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		scanner:     scanner,
		transformer: transformer,
		summaries:   summaries,
		publisher:   publisher,
		repoHost:    repoHost,
		cfg:         cfg,
		branches:    make(map[string]string),
	}
}

// Run performs one full pass over every repository, then publishes the
// global page when one is configured. The returned report is valid even
// when the error is non-nil.
func (o *SyncOrchestrator) Run(ctx context.Context) (*domain.RunReport, error) {
	report := domain.NewRunReport(uuid.NewString(), o.publisher.DryRun())

	if err := o.scanner.Validate(ctx); err != nil {
		return report, fmt.Errorf("validate scan root: %w", err)
	}

	logger.Info("Starting run %s", report.RunID)

	filesCh, errsCh := o.scanner.Scan(ctx)
	if err := o.processFiles(ctx, filesCh, errsCh, report); err != nil {
		return report, err
	}

	if o.cfg.GlobalPage != nil {
		o.publishGlobalPage(ctx, report)
	}

	report.FinishedAt = time.Now()
	logger.Info("Run %s complete: %s", report.RunID, report.Summary())

	if report.HasFailures() {
		return report, o.failureError(report)
	}
	return report, nil
}

// Watch republishes files as they change on disk. Failures are logged and
// counted per event; watching continues until ctx is cancelled.
func (o *SyncOrchestrator) Watch(ctx context.Context) error {
	changes, err := o.scanner.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	logger.Info("Watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case file, ok := <-changes:
			if !ok {
				return nil
			}
			report := domain.NewRunReport(uuid.NewString(), o.publisher.DryRun())
			o.processOneFile(ctx, file, report)
		}
	}
}

// processFiles drains the scanner channels, publishing each file in order.
// Both channels must close before the walk counts as complete, so a fatal
// scan error is never lost to channel ordering.
func (o *SyncOrchestrator) processFiles(
	ctx context.Context,
	filesCh <-chan domain.SourceFile,
	errsCh <-chan error,
	report *domain.RunReport,
) error {
	for filesCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}

		case file, ok := <-filesCh:
			if !ok {
				filesCh = nil
				continue
			}
			o.processOneFile(ctx, file, report)
		}
	}
	return nil
}

// processOneFile runs transform, summary and publish for one source file.
func (o *SyncOrchestrator) processOneFile(ctx context.Context, file domain.SourceFile, report *domain.RunReport) {
	title := file.PageTitle(o.cfg.UserPrefix)
	logger.Debug("Processing %s", title)

	page, err := o.buildPage(ctx, file)
	if err != nil {
		report.RecordFailure(title, err)
		logger.Warn("Failed to build %s: %v", title, err)
		return
	}

	result, err := o.publisher.Publish(ctx, page)
	if err != nil {
		report.RecordFailure(title, err)
		logger.Warn("Failed to publish %s: %v", title, err)
		return
	}

	report.Record(result)
	logger.Debug("%s: %s", title, result.Outcome)
}

// buildPage assembles the desired page state for one source file.
func (o *SyncOrchestrator) buildPage(ctx context.Context, file domain.SourceFile) (domain.Page, error) {
	transformed, err := o.transformer.Transform(ctx, file)
	if err != nil {
		return domain.Page{}, err
	}

	branch := o.defaultBranch(ctx, file.Repo.Name)
	summary := o.summaries.Build(
		file.Repo.Name, branch, o.cfg.Paths.SrcDirectoryName, file.RelPath, transformed.Minified)

	return domain.Page{
		Title:   file.PageTitle(o.cfg.UserPrefix),
		Body:    transformed.Body,
		Summary: summary,
	}, nil
}

// defaultBranch resolves the repository default branch once per run,
// falling back to the configured branch when the lookup fails.
func (o *SyncOrchestrator) defaultBranch(ctx context.Context, repo string) string {
	if branch, ok := o.branches[repo]; ok {
		return branch
	}

	branch := o.cfg.GitHub.DefaultBranch
	if o.repoHost != nil {
		resolved, err := o.repoHost.DefaultBranch(ctx, o.cfg.GitHubUser, repo)
		switch {
		case err != nil:
			logger.Warn("Resolve default branch of %s/%s failed, using %q: %v",
				o.cfg.GitHubUser, repo, branch, err)
		case resolved != "":
			branch = resolved
		}
	}

	o.branches[repo] = branch
	return branch
}

// publishGlobalPage publishes the configured global page. The body comes
// from a local file and is published verbatim: it is already wikitext.
func (o *SyncOrchestrator) publishGlobalPage(ctx context.Context, report *domain.RunReport) {
	gp := o.cfg.GlobalPage

	body, err := os.ReadFile(gp.Source)
	if err != nil {
		report.RecordFailure(gp.Title, fmt.Errorf("read global page source: %w", err))
		logger.Warn("Failed to read global page source %s: %v", gp.Source, err)
		return
	}

	summary := gp.Summary
	if summary == "" {
		summary = fmt.Sprintf("Update %s", filepath.Base(gp.Source))
	}

	page := domain.Page{Title: gp.Title, Body: string(body), Summary: summary}
	result, err := o.publisher.Publish(ctx, page)
	if err != nil {
		report.RecordFailure(gp.Title, err)
		logger.Warn("Failed to publish global page %s: %v", gp.Title, err)
		return
	}
	report.Record(result)
}

// failureError aggregates the per-page failures of a run into one error.
func (o *SyncOrchestrator) failureError(report *domain.RunReport) error {
	errs := make([]error, 0, len(report.Failures)+1)
	errs = append(errs, fmt.Errorf("%w: %d page(s)", domain.ErrPartialFailure, report.Failed))
	for _, failure := range report.Failures {
		errs = append(errs, failure.Err)
	}
	return errors.Join(errs...)
}
