package domain

import (
	"fmt"
	"time"
)

// Configuration defaults.
const (
	// DefaultSrcDirectoryName is the repository subdirectory that holds
	// publishable files.
	DefaultSrcDirectoryName = "src"

	// DefaultBranch is used in source links when the repository's default
	// branch cannot be resolved.
	DefaultBranch = "main"

	// DefaultUserAgent identifies the tool to the wiki, per API etiquette.
	DefaultUserAgent = "gitsync (https://github.com/scriptwiki/gitsync)"

	// DefaultWikiTimeout bounds a single wiki API call.
	DefaultWikiTimeout = 30 * time.Second

	// DefaultWikiRateLimit is the outbound request rate in requests/second.
	DefaultWikiRateLimit = 1.0
)

// Config is the complete runtime configuration. It is constructed once at
// process start and passed explicitly to every component.
type Config struct {
	// GitHubUser is the GitHub account hosting the repositories.
	GitHubUser string `yaml:"github_user" toml:"github_user"`

	// UserPrefix is prepended to every page title, e.g. "User:AliceBot/".
	UserPrefix string `yaml:"user_prefix" toml:"user_prefix"`

	// RootDir is the directory containing the repository checkouts.
	// Environment variables are expanded, e.g. "$HOME/wikirepos".
	RootDir string `yaml:"root_dir" toml:"root_dir"`

	// RepoFilter limits the scan to files whose repository-relative path
	// contains this substring. Empty matches everything.
	RepoFilter string `yaml:"repo_filter" toml:"repo_filter"`

	// TrackingTemplate, when set, is rendered per file and prepended to the
	// page body as a comment line before the non-parsed block. Supports the
	// placeholders {title}, {repo} and {path}.
	TrackingTemplate string `yaml:"tracking_template" toml:"tracking_template"`

	// Minify controls JavaScript minification.
	Minify MinifyConfig `yaml:"minify" toml:"minify"`

	// Wrapping overrides the comment tokens used for the non-parsed block
	// delimiters, keyed by file kind ("js", "css"). Kinds cannot be added.
	Wrapping map[string]WrapStyle `yaml:"wrapping" toml:"wrapping"`

	// GlobalPage, when set, is published after every full run.
	GlobalPage *GlobalPageConfig `yaml:"global_page" toml:"global_page"`

	// Paths holds repository layout settings.
	Paths PathsConfig `yaml:"paths" toml:"paths"`

	// Wiki holds the target wiki connection settings.
	Wiki WikiConfig `yaml:"wiki" toml:"wiki"`

	// GitHub holds GitHub API settings for source links.
	GitHub GitHubConfig `yaml:"github" toml:"github"`
}

// MinifyConfig controls JavaScript minification.
type MinifyConfig struct {
	// Enabled turns minification on. A minification failure falls back to
	// the unminified text and never fails the run.
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// WrapStyle describes how delimiter lines are written as comments in the
// wrapped file's own syntax.
type WrapStyle struct {
	// CommentOpen starts a comment line, e.g. "// " or "/* ".
	CommentOpen string `yaml:"comment_open" toml:"comment_open"`

	// CommentClose ends a comment line, e.g. " */". Empty for line comments.
	CommentClose string `yaml:"comment_close" toml:"comment_close"`
}

// GlobalPageConfig describes the optional page published after each run.
type GlobalPageConfig struct {
	// Title is the wiki page title.
	Title string `yaml:"title" toml:"title"`

	// Source is the local file whose content becomes the page body,
	// published verbatim. Environment variables are expanded.
	Source string `yaml:"source" toml:"source"`

	// Summary is the edit summary. Defaults to "Update <source basename>".
	Summary string `yaml:"summary" toml:"summary"`
}

// PathsConfig holds repository layout settings.
type PathsConfig struct {
	// SrcDirectoryName is the subdirectory of each repository that holds
	// publishable files. A repository without it is skipped.
	SrcDirectoryName string `yaml:"src_directory_name" toml:"src_directory_name"`
}

// WikiConfig holds the target wiki connection settings.
type WikiConfig struct {
	// APIURL is the Action API endpoint, e.g.
	// "https://en.wikipedia.org/w/api.php".
	APIURL string `yaml:"api_url" toml:"api_url"`

	// Username is the wiki account to edit as. Empty edits anonymously.
	Username string `yaml:"username" toml:"username"`

	// Password is the account password. When empty it is taken from the
	// GITSYNC_WIKI_PASSWORD environment variable or prompted for.
	Password string `yaml:"password" toml:"password"`

	// UserAgent is sent with every API request.
	UserAgent string `yaml:"user_agent" toml:"user_agent"`

	// Timeout bounds a single API call.
	Timeout Duration `yaml:"timeout" toml:"timeout"`

	// RateLimit is the outbound request rate in requests/second.
	RateLimit float64 `yaml:"rate_limit" toml:"rate_limit"`
}

// GitHubConfig holds GitHub API settings.
type GitHubConfig struct {
	// Token authenticates default-branch lookups. Optional; unauthenticated
	// requests work for public repositories at a lower rate limit. When
	// empty it is taken from the GITSYNC_GITHUB_TOKEN environment variable.
	Token string `yaml:"token" toml:"token"`

	// DefaultBranch is used in source links when the repository's default
	// branch cannot be resolved.
	DefaultBranch string `yaml:"default_branch" toml:"default_branch"`
}

// DefaultConfig returns a Config with every default applied. File loading
// decodes on top of it so omitted fields keep their defaults.
func DefaultConfig() *Config {
	return &Config{
		Minify: MinifyConfig{Enabled: true},
		Paths:  PathsConfig{SrcDirectoryName: DefaultSrcDirectoryName},
		Wiki: WikiConfig{
			UserAgent: DefaultUserAgent,
			Timeout:   Duration(DefaultWikiTimeout),
			RateLimit: DefaultWikiRateLimit,
		},
		GitHub: GitHubConfig{DefaultBranch: DefaultBranch},
	}
}

// Validate checks that every required field is present and consistent.
// All validation failures wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.GitHubUser == "" {
		return fmt.Errorf("%w: github_user is required", ErrInvalidConfig)
	}
	if c.UserPrefix == "" {
		return fmt.Errorf("%w: user_prefix is required", ErrInvalidConfig)
	}
	if c.RootDir == "" {
		return fmt.Errorf("%w: root_dir is required", ErrInvalidConfig)
	}
	if c.Paths.SrcDirectoryName == "" {
		return fmt.Errorf("%w: paths.src_directory_name is required", ErrInvalidConfig)
	}
	if c.Wiki.APIURL == "" {
		return fmt.Errorf("%w: wiki.api_url is required", ErrInvalidConfig)
	}
	if c.Wiki.Timeout <= 0 {
		return fmt.Errorf("%w: wiki.timeout must be positive", ErrInvalidConfig)
	}
	if c.Wiki.RateLimit <= 0 {
		return fmt.Errorf("%w: wiki.rate_limit must be positive", ErrInvalidConfig)
	}
	for kind := range c.Wrapping {
		if !ValidKind(FileKind(kind)) {
			return fmt.Errorf("%w: wrapping has unknown file kind %q", ErrInvalidConfig, kind)
		}
	}
	if c.GlobalPage != nil {
		if c.GlobalPage.Title == "" {
			return fmt.Errorf("%w: global_page.title is required", ErrInvalidConfig)
		}
		if c.GlobalPage.Source == "" {
			return fmt.Errorf("%w: global_page.source is required", ErrInvalidConfig)
		}
	}
	return nil
}
