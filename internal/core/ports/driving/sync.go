package driving

import (
	"context"

	"github.com/scriptwiki/gitsync/internal/core/domain"
)

// SyncOrchestrator runs the scan, transform, publish pipeline.
type SyncOrchestrator interface {
	// Run performs one full scan-and-publish pass. The report is valid even
	// when the returned error is non-nil; the error aggregates per-page
	// failures and wraps domain.ErrPartialFailure when any page failed.
	Run(ctx context.Context) (*domain.RunReport, error)

	// Watch republishes files as they change on disk until ctx is
	// cancelled.
	Watch(ctx context.Context) error
}
