package driven

import "context"

// RepoHost answers repository metadata questions about the remote hosting
// platform.
type RepoHost interface {
	// DefaultBranch returns the default branch name of owner/repo.
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)
}
