// Package github resolves repository metadata through the GitHub API.
//
// The sync pipeline only needs one piece of metadata, the default branch
// name used to build stable file links in edit summaries. Everything else
// about the repositories is read from the local checkouts.
package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/scriptwiki/gitsync/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the port.
var _ driven.RepoHost = (*Client)(nil)

// repositoriesService is the slice of the go-github repositories API the
// adapter uses, extracted so tests can substitute a fake.
type repositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*gh.Repository, *gh.Response, error)
}

var _ repositoriesService = (*gh.RepositoriesService)(nil)

// Client queries the GitHub API for repository metadata.
type Client struct {
	repos repositoriesService
}

// New creates a client. With a token the client authenticates, which
// raises the API rate limit and lets lookups work for private
// repositories; without one it uses anonymous access.
func New(ctx context.Context, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = DefaultTimeout

	return &Client{
		repos: gh.NewClient(httpClient).Repositories,
	}
}

// DefaultBranch returns the default branch name of owner/repo.
func (c *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	repository, _, err := c.repos.Get(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("get repository %s/%s: %w", owner, repo, err)
	}
	return repository.GetDefaultBranch(), nil
}
