package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidConfig indicates missing or malformed configuration.
	// Configuration failures are fatal and abort the run before any
	// file is touched.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPageNotFound indicates the wiki page does not exist yet.
	// The publisher treats this as the create path, not a failure.
	ErrPageNotFound = errors.New("page not found")

	// ErrAuthFailed indicates the wiki rejected the configured credentials.
	ErrAuthFailed = errors.New("wiki authentication failed")

	// ErrPartialFailure indicates one or more pages could not be published.
	// The run continues past individual failures; this aggregates them
	// into the final non-zero exit status.
	ErrPartialFailure = errors.New("one or more pages failed to publish")

	// ErrUnsupportedKind indicates a file kind with no wrapping rule.
	ErrUnsupportedKind = errors.New("unsupported file kind")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")
)
