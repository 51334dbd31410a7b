package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindForPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantKind FileKind
		wantOK   bool
	}{
		{
			name:     "javascript file",
			path:     "src/a.js",
			wantKind: KindJS,
			wantOK:   true,
		},
		{
			name:     "css file",
			path:     "src/style.css",
			wantKind: KindCSS,
			wantOK:   true,
		},
		{
			name:     "uppercase extension",
			path:     "src/LEGACY.JS",
			wantKind: KindJS,
			wantOK:   true,
		},
		{
			name:   "markdown file",
			path:   "README.md",
			wantOK: false,
		},
		{
			name:   "no extension",
			path:   "Makefile",
			wantOK: false,
		},
		{
			name:   "dotfile",
			path:   ".gitignore",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindForPath(tt.path)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}

func TestValidKind(t *testing.T) {
	assert.True(t, ValidKind(KindJS))
	assert.True(t, ValidKind(KindCSS))
	assert.False(t, ValidKind(FileKind("lua")))
	assert.False(t, ValidKind(FileKind("")))
}

func TestSourceFile_PageTitle(t *testing.T) {
	file := SourceFile{
		Repo:    Repository{Name: "repoA"},
		RelPath: "a.js",
	}

	assert.Equal(t, "User:AliceBot/repoA/a.js", file.PageTitle("User:AliceBot/"))
}

func TestSourceFile_PageTitle_NestedPath(t *testing.T) {
	file := SourceFile{
		Repo:    Repository{Name: "gadgets"},
		RelPath: "ui/panel.js",
	}

	assert.Equal(t, "User:AliceBot/gadgets/ui/panel.js", file.PageTitle("User:AliceBot/"))
}

func TestSourceFile_PageTitle_RepoDisambiguates(t *testing.T) {
	a := SourceFile{Repo: Repository{Name: "repoA"}, RelPath: "common.js"}
	b := SourceFile{Repo: Repository{Name: "repoB"}, RelPath: "common.js"}

	// Same relative path in two repositories must never map to one title.
	assert.NotEqual(t, a.PageTitle("User:Bot/"), b.PageTitle("User:Bot/"))
}
