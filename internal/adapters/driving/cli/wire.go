package cli

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scriptwiki/gitsync/internal/adapters/driven/config/file"
	"github.com/scriptwiki/gitsync/internal/adapters/driven/minifier/jsmin"
	"github.com/scriptwiki/gitsync/internal/adapters/driven/repohost/github"
	"github.com/scriptwiki/gitsync/internal/adapters/driven/wiki/mediawiki"
	"github.com/scriptwiki/gitsync/internal/connectors/gitdir"
	"github.com/scriptwiki/gitsync/internal/core/domain"
	"github.com/scriptwiki/gitsync/internal/core/ports/driving"
	"github.com/scriptwiki/gitsync/internal/core/services"
	"github.com/scriptwiki/gitsync/internal/logger"
	"github.com/scriptwiki/gitsync/internal/wrapping"
)

// syncService returns the injected orchestrator when one is set, and
// otherwise wires the full pipeline from configuration.
func syncService(ctx context.Context, cmd *cobra.Command, dryRun bool) (driving.SyncOrchestrator, func(), error) {
	if syncOrchestrator != nil {
		return syncOrchestrator, func() {}, nil
	}
	return buildPipeline(ctx, cmd, dryRun)
}

// buildPipeline constructs the production pipeline: config file, wiki
// client, repository scanner, transformer and publisher.
func buildPipeline(ctx context.Context, cmd *cobra.Command, dryRun bool) (driving.SyncOrchestrator, func(), error) {
	cfg, path, err := loadConfig(cmd, !dryRun)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Using config file %s", path)

	wiki, err := mediawiki.New(cfg.Wiki)
	if err != nil {
		return nil, nil, err
	}
	if !dryRun {
		if err := wiki.Login(ctx); err != nil {
			return nil, nil, err
		}
	}

	connector := gitdir.New(cfg.RootDir, cfg.Paths.SrcDirectoryName, cfg.RepoFilter)
	host := github.New(ctx, cfg.GitHub.Token)

	transformer := services.NewTransformer(jsmin.New(), wrapping.NewRegistry(cfg.Wrapping), cfg)
	summaries := services.NewSummaryBuilder(cfg.GitHubUser)
	publisher := services.NewPublisher(wiki, dryRun)

	service := services.NewSyncOrchestrator(connector, transformer, summaries, publisher, host, cfg)
	cleanup := func() {
		if err := connector.Close(); err != nil {
			logger.Warn("Close scanner: %v", err)
		}
	}
	return service, cleanup, nil
}

// loadConfig resolves and loads the configuration file. With promptPassword
// set, a missing wiki password is read interactively when a username is
// configured.
func loadConfig(cmd *cobra.Command, promptPassword bool) (*domain.Config, string, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = file.FindConfigFile()
		if err != nil {
			return nil, "", err
		}
	}

	cfg, err := file.Load(path)
	if err != nil {
		return nil, "", err
	}

	if promptPassword && cfg.Wiki.Username != "" && cfg.Wiki.Password == "" {
		cmd.Printf("Wiki password for %s: ", cfg.Wiki.Username)
		cfg.Wiki.Password = readPassword()
		cmd.Println()
	}

	return cfg, path, nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
