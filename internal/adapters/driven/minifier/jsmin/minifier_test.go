package jsmin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinifier_MinifyJS(t *testing.T) {
	m := New()

	src := "var answer = 1;\n\n// a comment\nvar other  =  answer + 1;\n"
	out, err := m.MinifyJS(context.Background(), src)

	require.NoError(t, err)
	assert.Less(t, len(out), len(src))
	assert.NotContains(t, out, "a comment")
	assert.Contains(t, out, "answer")
}

func TestMinifier_MinifyJS_Invalid(t *testing.T) {
	m := New()

	_, err := m.MinifyJS(context.Background(), "var s = 'unterminated")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "minify")
}
