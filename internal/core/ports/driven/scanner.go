package driven

import (
	"context"

	"github.com/scriptwiki/gitsync/internal/core/domain"
)

// RepoScanner discovers publishable source files in the repository
// checkouts under the configured root directory.
type RepoScanner interface {
	// Validate checks that the scan root exists and is a directory.
	// Returns an error wrapping domain.ErrInvalidConfig otherwise.
	Validate(ctx context.Context) error

	// Scan walks every repository and streams discovered files in
	// deterministic lexicographic order. The file channel is closed when
	// the walk completes; fatal walk errors arrive on the error channel.
	// Unreadable individual files are logged and skipped.
	Scan(ctx context.Context) (<-chan domain.SourceFile, <-chan error)

	// Watch streams files again whenever they change on disk. The channel
	// is closed when ctx is cancelled or the scanner is closed.
	Watch(ctx context.Context) (<-chan domain.SourceFile, error)

	// Close releases watch resources.
	Close() error
}
