package cli

import (
	"github.com/spf13/cobra"

	"github.com/scriptwiki/gitsync/internal/connectors/gitdir"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and list repositories",
	Long: `Loads the configuration, verifies the scan root and reports the
repositories that would be synchronised. No wiki requests are made.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}
	cmd.Printf("Config file: %s\n", path)

	connector := gitdir.New(cfg.RootDir, cfg.Paths.SrcDirectoryName, cfg.RepoFilter)
	if err := connector.Validate(cmd.Context()); err != nil {
		return err
	}

	repos, err := connector.Repositories()
	if err != nil {
		return err
	}
	for _, repo := range repos {
		cmd.Printf("  %s\n", repo.Name)
	}
	cmd.Printf("Configuration OK: %d repositories under %s\n", len(repos), cfg.RootDir)
	return nil
}
