package driven

import "context"

// Minifier shrinks JavaScript source text.
type Minifier interface {
	// MinifyJS returns the minified form of src. A failure is recoverable:
	// the caller falls back to src unchanged.
	MinifyJS(ctx context.Context, src string) (string, error)
}
