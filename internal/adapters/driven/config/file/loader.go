package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/scriptwiki/gitsync/internal/core/domain"
)

const (
	// PasswordEnvVar supplies the wiki password when the config file
	// omits it.
	PasswordEnvVar = "GITSYNC_WIKI_PASSWORD"

	// TokenEnvVar supplies the GitHub API token when the config file
	// omits it.
	TokenEnvVar = "GITSYNC_GITHUB_TOKEN"
)

// Load reads, decodes and validates the configuration at path.
// The decoder is picked by extension: .toml uses TOML, everything else
// uses YAML.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := domain.DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidConfig, filepath.Base(path), err)
	}

	expandPaths(cfg)
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile locates the configuration file, checking the working
// directory first and the user config directory second.
func FindConfigFile() (string, error) {
	candidates := []string{"gitsync.yaml", "gitsync.toml"}

	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(dir, "gitsync", "config.yaml"),
			filepath.Join(dir, "gitsync", "config.toml"),
		)
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: no config file found (tried %s)",
		domain.ErrInvalidConfig, strings.Join(candidates, ", "))
}

// expandPaths expands environment references such as $HOME in the path
// settings, so configs stay portable across machines.
func expandPaths(cfg *domain.Config) {
	cfg.RootDir = os.ExpandEnv(cfg.RootDir)
	if cfg.GlobalPage != nil {
		cfg.GlobalPage.Source = os.ExpandEnv(cfg.GlobalPage.Source)
	}
}

// applyEnv fills credentials from the environment. File values win so a
// config checked into a dotfiles repo can still be overridden locally by
// leaving the fields empty.
func applyEnv(cfg *domain.Config) {
	if cfg.Wiki.Password == "" {
		cfg.Wiki.Password = os.Getenv(PasswordEnvVar)
	}
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv(TokenEnvVar)
	}
}
