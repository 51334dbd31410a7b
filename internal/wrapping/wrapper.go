// Package wrapping builds non-parsed page bodies: the wiki must render the
// published source literally, so the text is framed by nowiki delimiters
// written as comment lines in the file's own syntax. The page stays loadable
// as code and the wiki never interprets markup inside it.
package wrapping

// Non-parsed block delimiters.
const (
	openTag  = "<nowiki>"
	closeTag = "</nowiki>"
)

// Wrapper frames source text for one comment syntax.
type Wrapper struct {
	commentOpen  string
	commentClose string
}

// New returns a Wrapper using the given comment tokens. commentClose is
// empty for line-comment syntaxes.
func New(commentOpen, commentClose string) *Wrapper {
	return &Wrapper{commentOpen: commentOpen, commentClose: commentClose}
}

// Wrap surrounds text with delimiter lines. text passes through byte for
// byte between the delimiters; nothing is re-encoded or trimmed.
func (w *Wrapper) Wrap(text string) string {
	return w.Comment(openTag) + "\n" + text + "\n" + w.Comment(closeTag)
}

// Comment renders s as a single comment line in the wrapped file's syntax.
func (w *Wrapper) Comment(s string) string {
	return w.commentOpen + s + w.commentClose
}
