package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/scriptwiki/gitsync/internal/core/domain"
	"github.com/scriptwiki/gitsync/internal/core/ports/driven"
)

// Publisher writes desired page state to the wiki. A page revision is
// created only on actual content change: the current content is always
// fetched and compared first, never skipped.
type Publisher struct {
	wiki   driven.WikiClient
	dryRun bool
}

// NewPublisher creates a publisher. With dryRun set, changed pages are
// reported but no save call is ever issued.
func NewPublisher(wiki driven.WikiClient, dryRun bool) *Publisher {
	return &Publisher{wiki: wiki, dryRun: dryRun}
}

// DryRun reports whether the publisher suppresses writes.
func (p *Publisher) DryRun() bool {
	return p.dryRun
}

// Publish fetches the current page content and saves the desired body only
// when it differs. Publishing the same page twice in a row produces at most
// one new revision.
func (p *Publisher) Publish(ctx context.Context, page domain.Page) (domain.PublishResult, error) {
	result := domain.PublishResult{Title: page.Title}

	current, err := p.wiki.GetPage(ctx, page.Title)
	switch {
	case errors.Is(err, domain.ErrPageNotFound):
		result.Created = true
		current = &driven.PageRevision{}
	case err != nil:
		return result, fmt.Errorf("fetch %q: %w", page.Title, err)
	}

	if !result.Created && bodiesEqual(current.Content, page.Body) {
		result.Outcome = domain.OutcomeUnchanged
		return result, nil
	}

	if p.dryRun {
		result.Outcome = domain.OutcomeDryRun
		return result, nil
	}

	if err := p.wiki.SavePage(ctx, page, current.Timestamp); err != nil {
		return result, fmt.Errorf("save %q: %w", page.Title, err)
	}
	result.Outcome = domain.OutcomePublished
	return result, nil
}

// bodiesEqual compares page bodies, tolerating the newline normalisation
// MediaWiki applies on save: CRLF becomes LF and trailing newlines are
// stripped. A body differing only by that normalisation counts as
// unchanged, otherwise it would be re-published on every run.
func bodiesEqual(remote, desired string) bool {
	if remote == desired {
		return true
	}
	return normaliseBody(remote) == normaliseBody(desired)
}

func normaliseBody(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimRight(s, "\n")
}
