package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scriptwiki/gitsync/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Publish files continuously as they change",
	Long: `Performs one full sync, then keeps watching the repositories and
republishes files as they change on disk. Stops when interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	service, cleanup, err := syncService(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	cmd.Println("Performing initial sync...")

	report, runErr := service.Run(ctx)
	if report != nil {
		for _, failure := range report.Failures {
			cmd.PrintErrf("Failed: %s: %v\n", failure.Title, failure.Err)
		}
		cmd.Println(report.Summary())
	}
	if runErr != nil && !errors.Is(runErr, domain.ErrPartialFailure) {
		// Per-page failures do not stop the watch, a broken setup does.
		return fmt.Errorf("initial sync failed: %w", runErr)
	}

	cmd.Println("Watching for changes. Press Ctrl-C to stop.")
	if err := service.Watch(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
