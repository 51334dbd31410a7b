package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/scriptwiki/gitsync/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gitsync",
	Short: "Publish scripts from Git checkouts to a MediaWiki site",
	Long: `gitsync publishes JavaScript and CSS files from local Git repository
checkouts to pages on a MediaWiki installation. The local files are the
source of truth: pages are overwritten when they differ and left alone
when they already match.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command with the build information injected.
func Execute(ctx context.Context, buildVersion, buildCommit, buildDate string) error {
	version = buildVersion
	commit = buildCommit
	date = buildDate
	return rootCmd.ExecuteContext(ctx)
}
