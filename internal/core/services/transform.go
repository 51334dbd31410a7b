package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/scriptwiki/gitsync/internal/core/domain"
	"github.com/scriptwiki/gitsync/internal/core/ports/driven"
	"github.com/scriptwiki/gitsync/internal/logger"
	"github.com/scriptwiki/gitsync/internal/wrapping"
)

// Transformer produces the final wikitext body for a source file.
type Transformer struct {
	minifier driven.Minifier
	wrappers *wrapping.Registry
	cfg      *domain.Config
}

// NewTransformer creates a transformer. minifier may be nil, in which case
// files are published unminified.
func NewTransformer(minifier driven.Minifier, wrappers *wrapping.Registry, cfg *domain.Config) *Transformer {
	return &Transformer{
		minifier: minifier,
		wrappers: wrappers,
		cfg:      cfg,
	}
}

// TransformResult carries the built page body and what was done to it.
type TransformResult struct {
	// Body is the complete desired page text.
	Body string

	// Minified is true when minification was applied. The edit summary
	// mentions it so reviewers know the page text differs from the
	// repository text.
	Minified bool
}

// Transform builds the page body for file: optional JavaScript
// minification, the non-parsed wrap, and the optional tracking line.
// A minification failure falls back to the original text and never
// fails the transform.
func (t *Transformer) Transform(ctx context.Context, file domain.SourceFile) (TransformResult, error) {
	text := string(file.Content)
	minified := false

	if file.Kind == domain.KindJS && t.cfg.Minify.Enabled && t.minifier != nil {
		shrunk, err := t.minifier.MinifyJS(ctx, text)
		if err != nil {
			logger.Warn("Minify %s/%s failed, publishing unminified: %v", file.Repo.Name, file.RelPath, err)
		} else {
			text = shrunk
			minified = true
		}
	}

	wrapper, err := t.wrappers.ForKind(file.Kind)
	if err != nil {
		return TransformResult{}, fmt.Errorf("wrap %s: %w", file.RelPath, err)
	}
	body := wrapper.Wrap(text)

	if t.cfg.TrackingTemplate != "" {
		marker := renderTracking(t.cfg.TrackingTemplate, file, t.cfg.UserPrefix)
		body = wrapper.Comment(marker) + "\n" + body
	}

	return TransformResult{Body: body, Minified: minified}, nil
}

// renderTracking substitutes the file's placeholders into the template.
// The marker sits outside the non-parsed block, so it stays parseable
// wiki syntax.
func renderTracking(template string, file domain.SourceFile, prefix string) string {
	return strings.NewReplacer(
		"{title}", file.PageTitle(prefix),
		"{repo}", file.Repo.Name,
		"{path}", file.RelPath,
	).Replace(template)
}
