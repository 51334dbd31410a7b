package driven

import (
	"context"

	"github.com/scriptwiki/gitsync/internal/core/domain"
)

// PageRevision is the current remote state of a wiki page.
type PageRevision struct {
	// Content is the page wikitext.
	Content string

	// Timestamp is the revision timestamp. Saves pass it back as the base
	// timestamp so an edit made between fetch and save fails instead of
	// being overwritten.
	Timestamp string
}

// WikiClient performs the two remote operations the publisher needs.
type WikiClient interface {
	// Login authenticates the session when credentials are configured.
	// A client without credentials returns nil without a network call.
	Login(ctx context.Context) error

	// GetPage fetches the current content of a page by title.
	// Returns an error wrapping domain.ErrPageNotFound when the page
	// does not exist.
	GetPage(ctx context.Context, title string) (*PageRevision, error)

	// SavePage writes the page body with the given edit summary.
	// baseTimestamp is the fetched revision timestamp, empty for new pages.
	SavePage(ctx context.Context, page domain.Page, baseTimestamp string) error
}
