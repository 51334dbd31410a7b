package mediawiki

import (
	"context"
	"errors"
	"fmt"
	"time"

	mwclient "cgt.name/pkg/go-mwclient"
	"cgt.name/pkg/go-mwclient/params"
	"golang.org/x/time/rate"

	"github.com/scriptwiki/gitsync/internal/core/domain"
	"github.com/scriptwiki/gitsync/internal/core/ports/driven"
	"github.com/scriptwiki/gitsync/internal/logger"
)

// Ensure Client implements the port.
var _ driven.WikiClient = (*Client)(nil)

// api is the slice of *mwclient.Client the adapter uses, extracted so
// tests can substitute a fake wiki.
type api interface {
	Login(username, password string) error
	GetPageByName(pageName string) (content string, timestamp string, err error)
	Edit(p params.Values) error
}

var _ api = (*mwclient.Client)(nil)

// Client talks to one MediaWiki installation.
type Client struct {
	api      api
	username string
	password string
	limiter  *rate.Limiter
	timeout  time.Duration
}

// New creates a client for the wiki described by cfg. The API URL must be
// the full api.php endpoint.
func New(cfg domain.WikiConfig) (*Client, error) {
	w, err := mwclient.New(cfg.APIURL, cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("%w: wiki.api_url %q: %w", domain.ErrInvalidConfig, cfg.APIURL, err)
	}

	return &Client{
		api:      w,
		username: cfg.Username,
		password: cfg.Password,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		timeout:  cfg.Timeout.Std(),
	}, nil
}

// Login authenticates the session. Without a configured username the
// client stays anonymous and no request is made.
func (c *Client) Login(ctx context.Context) error {
	if c.username == "" {
		logger.Debug("No wiki username configured, editing anonymously")
		return nil
	}

	err := c.call(ctx, func() error {
		return c.api.Login(c.username, c.password)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}
	logger.Debug("Logged in to wiki as %s", c.username)
	return nil
}

// GetPage fetches the current wikitext and revision timestamp of a page.
func (c *Client) GetPage(ctx context.Context, title string) (*driven.PageRevision, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var rev driven.PageRevision
	err := c.call(ctx, func() error {
		content, timestamp, err := c.api.GetPageByName(title)
		if err != nil {
			return err
		}
		rev = driven.PageRevision{Content: content, Timestamp: timestamp}
		return nil
	})
	if err != nil {
		if errors.Is(err, mwclient.ErrPageNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, title)
		}
		return nil, err
	}
	return &rev, nil
}

// SavePage writes the page. baseTimestamp, when non-empty, makes the API
// reject the edit if someone else saved the page after our fetch.
func (c *Client) SavePage(ctx context.Context, page domain.Page, baseTimestamp string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	p := params.Values{
		"title":   page.Title,
		"text":    page.Body,
		"summary": page.Summary,
	}
	if baseTimestamp != "" {
		p["basetimestamp"] = baseTimestamp
	}

	err := c.call(ctx, func() error {
		return c.api.Edit(p)
	})
	if errors.Is(err, mwclient.ErrEditNoChange) {
		// The server agreed with our comparison: nothing to change.
		logger.Debug("Edit to %s was a no-op", page.Title)
		return nil
	}
	return err
}

// call runs fn bounded by the configured timeout and the context. The
// library does not take contexts, so on timeout the request keeps running
// in the background and its result is discarded.
func (c *Client) call(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("wiki request timed out after %s", c.timeout)
	case err := <-done:
		return err
	}
}
