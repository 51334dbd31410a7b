package services

import "fmt"

// hostBaseURL is the web URL of the hosting platform.
const hostBaseURL = "https://github.com"

// SummaryBuilder constructs edit summaries that link back to the source
// file on the hosting platform.
type SummaryBuilder struct {
	user string
}

// NewSummaryBuilder creates a builder for the given GitHub account.
func NewSummaryBuilder(githubUser string) *SummaryBuilder {
	return &SummaryBuilder{user: githubUser}
}

// FileURL returns the web URL of the file at the given branch.
func (b *SummaryBuilder) FileURL(repo, branch, srcDir, relPath string) string {
	return fmt.Sprintf("%s/%s/%s/blob/%s/%s/%s", hostBaseURL, b.user, repo, branch, srcDir, relPath)
}

// Build returns the one-line edit summary for a published file, e.g.
//
//	Update [https://github.com/alice/repoA/blob/main/src/a.js a.js] from alice/repoA
//
// with "; minified" appended when minification was applied.
func (b *SummaryBuilder) Build(repo, branch, srcDir, relPath string, minified bool) string {
	summary := fmt.Sprintf("Update [%s %s] from %s/%s",
		b.FileURL(repo, branch, srcDir, relPath), relPath, b.user, repo)
	if minified {
		summary += "; minified"
	}
	return summary
}
