package wrapping

import (
	"fmt"

	"github.com/scriptwiki/gitsync/internal/core/domain"
)

// Default comment tokens per file kind.
const (
	jsCommentOpen   = "// "
	cssCommentOpen  = "/* "
	cssCommentClose = " */"
)

// Registry maps file kinds to their wrappers.
type Registry struct {
	wrappers map[domain.FileKind]*Wrapper
}

// NewRegistry builds a registry from per-kind config overrides. Kinds absent
// from overrides use the built-in comment tokens. Unknown kinds in overrides
// are ignored; config validation rejects them before this point.
func NewRegistry(overrides map[string]domain.WrapStyle) *Registry {
	wrappers := map[domain.FileKind]*Wrapper{
		domain.KindJS:  New(jsCommentOpen, ""),
		domain.KindCSS: New(cssCommentOpen, cssCommentClose),
	}
	for kind, style := range overrides {
		k := domain.FileKind(kind)
		if _, ok := wrappers[k]; !ok {
			continue
		}
		wrappers[k] = New(style.CommentOpen, style.CommentClose)
	}
	return &Registry{wrappers: wrappers}
}

// ForKind returns the wrapper for the given file kind.
func (r *Registry) ForKind(kind domain.FileKind) (*Wrapper, error) {
	wrapper, ok := r.wrappers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, kind)
	}
	return wrapper, nil
}
