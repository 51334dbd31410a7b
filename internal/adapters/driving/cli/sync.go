package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scriptwiki/gitsync/internal/core/ports/driving"
)

// syncOrchestrator is the service used by the sync and watch commands.
// When nil, the commands wire the full pipeline from configuration.
// Tests inject a mock here.
var syncOrchestrator driving.SyncOrchestrator

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Publish changed files to the wiki",
	Long: `Scans every repository under the configured root directory and
publishes changed JavaScript and CSS files to the wiki. Pages whose
content already matches the local file are left untouched, so repeated
runs create no new revisions.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run",
		false, "report what would be published without editing the wiki")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	service, cleanup, err := syncService(ctx, cmd, syncDryRun)
	if err != nil {
		return err
	}
	defer cleanup()

	cmd.Println("Synchronising repositories...")

	report, runErr := service.Run(ctx)
	if report != nil {
		for _, failure := range report.Failures {
			cmd.PrintErrf("Failed: %s: %v\n", failure.Title, failure.Err)
		}
		cmd.Println(report.Summary())
	}

	if runErr != nil {
		return fmt.Errorf("sync failed: %w", runErr)
	}
	return nil
}
