// Package jsmin implements the Minifier port with tdewolff/minify.
//
// Minification failures are reported to the caller, which is expected to
// fall back to publishing the original text rather than abort.
package jsmin

import (
	"context"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"

	"github.com/scriptwiki/gitsync/internal/core/ports/driven"
)

const mimeType = "application/javascript"

// Ensure Minifier implements the port.
var _ driven.Minifier = (*Minifier)(nil)

// Minifier minifies JavaScript source text.
type Minifier struct {
	m *minify.M
}

// New creates a JavaScript minifier.
func New() *Minifier {
	m := minify.New()
	m.AddFunc(mimeType, js.Minify)
	return &Minifier{m: m}
}

// MinifyJS returns the minified form of src. Syntax errors in src are
// returned as errors, not silently passed through.
func (f *Minifier) MinifyJS(_ context.Context, src string) (string, error) {
	out, err := f.m.String(mimeType, src)
	if err != nil {
		return "", fmt.Errorf("minify: %w", err)
	}
	return out, nil
}
