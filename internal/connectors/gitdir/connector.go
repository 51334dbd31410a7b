// Package gitdir discovers publishable files in the Git repository
// checkouts under a root directory. A child directory of the root is a
// repository when it contains the configured source subdirectory; children
// without it are skipped, heterogeneous layouts are expected.
package gitdir

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/scriptwiki/gitsync/internal/core/domain"
	"github.com/scriptwiki/gitsync/internal/core/ports/driven"
	"github.com/scriptwiki/gitsync/internal/logger"
)

// Ensure Connector implements the port.
var _ driven.RepoScanner = (*Connector)(nil)

// Connector scans and watches the repository checkouts under a root
// directory.
type Connector struct {
	root    string
	srcName string
	filter  string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a connector for the given scan root. srcDirName is the
// repository subdirectory holding publishable files; filter is an optional
// substring applied to repository-relative paths.
func New(root, srcDirName, filter string) *Connector {
	return &Connector{
		root:    root,
		srcName: srcDirName,
		filter:  filter,
	}
}

// Validate checks that the scan root exists and is a directory.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.root)
	if err != nil {
		return fmt.Errorf("%w: root_dir %q: %w", domain.ErrInvalidConfig, c.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: root_dir %q is not a directory", domain.ErrInvalidConfig, c.root)
	}
	return nil
}

// Scan walks every repository and streams discovered files.
// Returns channels for files and errors.
func (c *Connector) Scan(ctx context.Context) (<-chan domain.SourceFile, <-chan error) {
	files := make(chan domain.SourceFile)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)

		if err := c.Validate(ctx); err != nil {
			errs <- err
			return
		}

		repos, err := c.Repositories()
		if err != nil {
			errs <- err
			return
		}

		for _, repo := range repos {
			if err := c.walkRepo(ctx, repo, files); err != nil {
				errs <- err
				return
			}
		}
	}()

	return files, errs
}

// Repositories lists the child directories of root that contain the source
// subdirectory, in lexicographic order.
func (c *Connector) Repositories() ([]domain.Repository, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, fmt.Errorf("read root_dir: %w", err)
	}

	var repos []domain.Repository
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		repoPath := filepath.Join(c.root, entry.Name())
		srcDir := filepath.Join(repoPath, c.srcName)
		info, err := os.Stat(srcDir)
		if err != nil || !info.IsDir() {
			logger.Debug("Skipping %s: no %s directory", entry.Name(), c.srcName)
			continue
		}
		repos = append(repos, domain.Repository{
			Name:      entry.Name(),
			Path:      repoPath,
			SourceDir: srcDir,
		})
	}
	return repos, nil
}

// walkRepo streams every matching file under the repository's source
// directory. Walk order is lexical, so two scans of an unmodified tree
// yield identical sequences.
func (c *Connector) walkRepo(ctx context.Context, repo domain.Repository, files chan<- domain.SourceFile) error {
	return filepath.WalkDir(repo.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", repo.Name, err)
		}
		if d.IsDir() {
			return nil
		}

		file, ok, err := c.loadFile(repo, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}
		if !ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case files <- file:
		}
		return nil
	})
}

// loadFile builds the SourceFile for path if it is publishable: the
// extension must be a known kind and the scan path must pass the filter.
func (c *Connector) loadFile(repo domain.Repository, path string) (domain.SourceFile, bool, error) {
	kind, ok := domain.KindForPath(path)
	if !ok {
		return domain.SourceFile{}, false, nil
	}

	rel, err := filepath.Rel(repo.SourceDir, path)
	if err != nil {
		return domain.SourceFile{}, false, fmt.Errorf("relative path: %w", err)
	}
	rel = filepath.ToSlash(rel)

	if !c.matches(repo.Name + "/" + c.srcName + "/" + rel) {
		return domain.SourceFile{}, false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceFile{}, false, fmt.Errorf("read file: %w", err)
	}

	return domain.SourceFile{
		Repo:    repo,
		RelPath: rel,
		Kind:    kind,
		Content: content,
	}, true, nil
}

// matches applies the configured substring filter to a scan path such as
// "repoA/src/ui/panel.js".
func (c *Connector) matches(scanPath string) bool {
	return c.filter == "" || strings.Contains(scanPath, c.filter)
}

// Watch streams files again whenever they change on disk. Every source
// directory and its subdirectories are watched; directories created later
// are added as they appear. Removals are ignored, sync is one-directional.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.SourceFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, domain.ErrConnectorClosed
	}
	if c.watcher != nil {
		return nil, fmt.Errorf("watch already running")
	}

	repos, err := c.Repositories()
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	for _, repo := range repos {
		if err := addRecursive(watcher, repo.SourceDir); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	c.watcher = watcher

	changes := make(chan domain.SourceFile)
	go c.forwardEvents(ctx, watcher, repos, changes)
	return changes, nil
}

// Close releases watch resources.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

// addRecursive watches dir and every directory below it.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// forwardEvents turns filesystem events into SourceFile emissions.
// Duplicate events for one save are expected; the publisher's no-op-edit
// check absorbs them.
func (c *Connector) forwardEvents(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	repos []domain.Repository,
	changes chan<- domain.SourceFile,
) {
	defer close(changes)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					if err := addRecursive(watcher, event.Name); err != nil {
						logger.Warn("Watch new directory %s: %v", event.Name, err)
					}
				}
				continue
			}

			repo, ok := repoFor(repos, event.Name)
			if !ok {
				continue
			}
			file, match, err := c.loadFile(repo, event.Name)
			if err != nil {
				logger.Warn("Skipping %s: %v", event.Name, err)
				continue
			}
			if !match {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case changes <- file:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// repoFor finds the repository whose source directory contains path.
func repoFor(repos []domain.Repository, path string) (domain.Repository, bool) {
	for _, repo := range repos {
		if strings.HasPrefix(path, repo.SourceDir+string(filepath.Separator)) {
			return repo, true
		}
	}
	return domain.Repository{}, false
}
