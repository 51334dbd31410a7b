package domain

import (
	"path/filepath"
	"strings"
)

// FileKind identifies the source language of a publishable file.
type FileKind string

const (
	// KindJS is JavaScript.
	KindJS FileKind = "js"

	// KindCSS is CSS.
	KindCSS FileKind = "css"
)

// ValidKind reports whether kind is a publishable file kind.
func ValidKind(kind FileKind) bool {
	return kind == KindJS || kind == KindCSS
}

// KindForPath returns the file kind for a path based on its extension.
// The match is case-insensitive; ok is false for every other extension.
func KindForPath(path string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js":
		return KindJS, true
	case ".css":
		return KindCSS, true
	}
	return "", false
}

// Repository is one checked-out Git repository under the scan root.
// Created by the scan; immutable.
type Repository struct {
	// Name is the repository directory name, e.g. "repoA".
	Name string

	// Path is the absolute path of the repository checkout.
	Path string

	// SourceDir is the absolute path of the publishable source subdirectory.
	SourceDir string
}

// SourceFile is one publishable file discovered by the scan. Read-only.
type SourceFile struct {
	// Repo is the repository the file belongs to.
	Repo Repository

	// RelPath is the file path relative to the repository's source
	// subdirectory, always slash-separated.
	RelPath string

	// Kind is the source language, derived from the file extension.
	Kind FileKind

	// Content is the raw file content, byte for byte.
	Content []byte
}

// PageTitle returns the wiki page title for the file. The repository name
// is always a path segment of the title, so files with the same relative
// path in two repositories can never collide.
func (f SourceFile) PageTitle(prefix string) string {
	return prefix + f.Repo.Name + "/" + f.RelPath
}
