package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptwiki/gitsync/internal/core/domain"
	"github.com/scriptwiki/gitsync/internal/core/ports/driven"
	"github.com/scriptwiki/gitsync/internal/wrapping"
)

// --- Mock implementations for orchestrator testing ---
// Note: These are prefixed with "sync" to avoid conflicts with the other
// service test mocks. The wiki fake lives in publisher_test.go.

// syncMockScanner implements driven.RepoScanner for testing.
type syncMockScanner struct {
	files       []domain.SourceFile
	scanErr     error
	validateErr error
	watchCh     chan domain.SourceFile
	watchErr    error
	closed      bool
}

func (m *syncMockScanner) Validate(_ context.Context) error {
	return m.validateErr
}

func (m *syncMockScanner) Scan(ctx context.Context) (<-chan domain.SourceFile, <-chan error) {
	files := make(chan domain.SourceFile)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)

		for _, f := range m.files {
			select {
			case <-ctx.Done():
				return
			case files <- f:
			}
		}
		if m.scanErr != nil {
			errs <- m.scanErr
		}
	}()

	return files, errs
}

func (m *syncMockScanner) Watch(_ context.Context) (<-chan domain.SourceFile, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	return m.watchCh, nil
}

func (m *syncMockScanner) Close() error {
	m.closed = true
	return nil
}

// syncMockHost implements driven.RepoHost for testing.
type syncMockHost struct {
	branches map[string]string
	err      error
	calls    int
}

func (m *syncMockHost) DefaultBranch(_ context.Context, _, repo string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.branches[repo], nil
}

func syncTestConfig() *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.GitHubUser = "alice"
	cfg.UserPrefix = "User:Bot/"
	cfg.RootDir = "/tmp/repos"
	cfg.Wiki.APIURL = "https://wiki.example.org/w/api.php"
	return cfg
}

func sourceFile(repo, relPath, content string) domain.SourceFile {
	kind, _ := domain.KindForPath(relPath)
	return domain.SourceFile{
		Repo: domain.Repository{
			Name:      repo,
			Path:      "/tmp/repos/" + repo,
			SourceDir: "/tmp/repos/" + repo + "/src",
		},
		RelPath: relPath,
		Kind:    kind,
		Content: []byte(content),
	}
}

func newTestOrchestrator(
	scanner driven.RepoScanner,
	wiki driven.WikiClient,
	host driven.RepoHost,
	cfg *domain.Config,
	dryRun bool,
) *SyncOrchestrator {
	return NewSyncOrchestrator(
		scanner,
		NewTransformer(nil, wrapping.NewRegistry(cfg.Wrapping), cfg),
		NewSummaryBuilder(cfg.GitHubUser),
		NewPublisher(wiki, dryRun),
		host,
		cfg,
	)
}

// --- Tests ---

func TestSyncOrchestrator_Run_PublishesWrappedFile(t *testing.T) {
	scanner := &syncMockScanner{
		files: []domain.SourceFile{sourceFile("repoA", "a.js", "var x = {{evil}};")},
	}
	wiki := newFakeWiki()
	orch := newTestOrchestrator(scanner, wiki, nil, syncTestConfig(), false)

	report, err := orch.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Published)
	assert.Equal(t, 0, report.Unchanged)
	assert.Equal(t, 0, report.Failed)

	require.Len(t, wiki.saveCalls, 1)
	saved := wiki.saveCalls[0].page
	assert.Equal(t, "User:Bot/repoA/a.js", saved.Title)
	// Template syntax in the file must land inside the non-parsed block.
	assert.Equal(t, "// <nowiki>\nvar x = {{evil}};\n// </nowiki>", saved.Body)
	assert.Equal(t,
		"Update [https://github.com/alice/repoA/blob/main/src/a.js a.js] from alice/repoA",
		saved.Summary)
}

func TestSyncOrchestrator_Run_SecondRunCreatesNoRevisions(t *testing.T) {
	scanner := &syncMockScanner{
		files: []domain.SourceFile{sourceFile("repoA", "a.js", "var x = 1;")},
	}
	wiki := newFakeWiki()
	cfg := syncTestConfig()

	_, err := newTestOrchestrator(scanner, wiki, nil, cfg, false).Run(context.Background())
	require.NoError(t, err)
	report, err := newTestOrchestrator(scanner, wiki, nil, cfg, false).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Published)
	assert.Equal(t, 1, report.Unchanged)
	assert.Len(t, wiki.saveCalls, 1, "an unchanged second run must not create a new revision")
}

func TestSyncOrchestrator_Run_ContinueOnError(t *testing.T) {
	scanner := &syncMockScanner{
		files: []domain.SourceFile{
			sourceFile("repoA", "a.js", "var a = 1;"),
			sourceFile("repoA", "b.js", "var b = 2;"),
		},
	}
	wiki := newFakeWiki()
	wiki.saveErr["User:Bot/repoA/a.js"] = errors.New("edit conflict")
	orch := newTestOrchestrator(scanner, wiki, nil, syncTestConfig(), false)

	report, err := orch.Run(context.Background())

	// One page failing must not stop the others.
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPartialFailure)
	assert.Contains(t, err.Error(), "edit conflict")

	assert.Equal(t, 1, report.Published)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "User:Bot/repoA/a.js", report.Failures[0].Title)

	require.Len(t, wiki.saveCalls, 1)
	assert.Equal(t, "User:Bot/repoA/b.js", wiki.saveCalls[0].page.Title)
}

func TestSyncOrchestrator_Run_ValidateError(t *testing.T) {
	scanner := &syncMockScanner{
		validateErr: domain.ErrInvalidConfig,
	}
	wiki := newFakeWiki()
	orch := newTestOrchestrator(scanner, wiki, nil, syncTestConfig(), false)

	report, err := orch.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "validate scan root")
	assert.Equal(t, 0, report.Published)
	assert.Empty(t, wiki.saveCalls)
}

func TestSyncOrchestrator_Run_ScanError(t *testing.T) {
	scanner := &syncMockScanner{
		files:   []domain.SourceFile{sourceFile("repoA", "a.js", "var a = 1;")},
		scanErr: errors.New("walk failed"),
	}
	wiki := newFakeWiki()
	orch := newTestOrchestrator(scanner, wiki, nil, syncTestConfig(), false)

	_, err := orch.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan")
	assert.Contains(t, err.Error(), "walk failed")
}

func TestSyncOrchestrator_Run_GlobalPage(t *testing.T) {
	source := filepath.Join(t.TempDir(), "global.wiki")
	body := "Scripts maintained at [[GitHub]]:\n{{UserScriptTable}}\n"
	require.NoError(t, os.WriteFile(source, []byte(body), 0o644))

	cfg := syncTestConfig()
	cfg.GlobalPage = &domain.GlobalPageConfig{
		Title:  "User:Bot/scripts",
		Source: source,
	}
	scanner := &syncMockScanner{}
	wiki := newFakeWiki()
	orch := newTestOrchestrator(scanner, wiki, nil, cfg, false)

	report, err := orch.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Published)

	require.Len(t, wiki.saveCalls, 1)
	saved := wiki.saveCalls[0].page
	assert.Equal(t, "User:Bot/scripts", saved.Title)
	// The global page is wikitext already: published verbatim, unwrapped.
	assert.Equal(t, body, saved.Body)
	assert.Equal(t, "Update global.wiki", saved.Summary)
}

func TestSyncOrchestrator_Run_GlobalPage_CustomSummary(t *testing.T) {
	source := filepath.Join(t.TempDir(), "global.wiki")
	require.NoError(t, os.WriteFile(source, []byte("index"), 0o644))

	cfg := syncTestConfig()
	cfg.GlobalPage = &domain.GlobalPageConfig{
		Title:   "User:Bot/scripts",
		Source:  source,
		Summary: "Refresh script index",
	}
	wiki := newFakeWiki()
	orch := newTestOrchestrator(&syncMockScanner{}, wiki, nil, cfg, false)

	_, err := orch.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, wiki.saveCalls, 1)
	assert.Equal(t, "Refresh script index", wiki.saveCalls[0].page.Summary)
}

func TestSyncOrchestrator_Run_GlobalPage_MissingSource(t *testing.T) {
	cfg := syncTestConfig()
	cfg.GlobalPage = &domain.GlobalPageConfig{
		Title:  "User:Bot/scripts",
		Source: filepath.Join(t.TempDir(), "missing.wiki"),
	}
	wiki := newFakeWiki()
	orch := newTestOrchestrator(&syncMockScanner{}, wiki, nil, cfg, false)

	report, err := orch.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPartialFailure)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "User:Bot/scripts", report.Failures[0].Title)
	assert.Contains(t, report.Failures[0].Err.Error(), "read global page source")
}

func TestSyncOrchestrator_Run_DefaultBranchFromHost(t *testing.T) {
	scanner := &syncMockScanner{
		files: []domain.SourceFile{
			sourceFile("repoA", "a.js", "var a = 1;"),
			sourceFile("repoA", "b.js", "var b = 2;"),
		},
	}
	wiki := newFakeWiki()
	host := &syncMockHost{branches: map[string]string{"repoA": "trunk"}}
	orch := newTestOrchestrator(scanner, wiki, host, syncTestConfig(), false)

	_, err := orch.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, wiki.saveCalls, 2)
	assert.Contains(t, wiki.saveCalls[0].page.Summary, "/blob/trunk/")
	assert.Contains(t, wiki.saveCalls[1].page.Summary, "/blob/trunk/")
	// One lookup per repository per run; the result is memoised.
	assert.Equal(t, 1, host.calls)
}

func TestSyncOrchestrator_Run_DefaultBranchFallback(t *testing.T) {
	scanner := &syncMockScanner{
		files: []domain.SourceFile{sourceFile("repoA", "a.js", "var a = 1;")},
	}
	wiki := newFakeWiki()
	host := &syncMockHost{err: errors.New("api rate limited")}
	orch := newTestOrchestrator(scanner, wiki, host, syncTestConfig(), false)

	report, err := orch.Run(context.Background())

	// A failed branch lookup degrades the summary link, never the publish.
	require.NoError(t, err)
	assert.Equal(t, 1, report.Published)
	require.Len(t, wiki.saveCalls, 1)
	assert.Contains(t, wiki.saveCalls[0].page.Summary, "/blob/main/")
}

func TestSyncOrchestrator_Run_NilHostUsesConfiguredBranch(t *testing.T) {
	scanner := &syncMockScanner{
		files: []domain.SourceFile{sourceFile("repoA", "a.js", "var a = 1;")},
	}
	wiki := newFakeWiki()
	cfg := syncTestConfig()
	cfg.GitHub.DefaultBranch = "master"
	orch := newTestOrchestrator(scanner, wiki, nil, cfg, false)

	_, err := orch.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, wiki.saveCalls, 1)
	assert.Contains(t, wiki.saveCalls[0].page.Summary, "/blob/master/")
}

func TestSyncOrchestrator_Run_DryRun(t *testing.T) {
	scanner := &syncMockScanner{
		files: []domain.SourceFile{sourceFile("repoA", "a.js", "var a = 1;")},
	}
	wiki := newFakeWiki()
	orch := newTestOrchestrator(scanner, wiki, nil, syncTestConfig(), true)

	report, err := orch.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Published)
	assert.Equal(t, "would publish 1, unchanged 0, failed 0", report.Summary())
	assert.Empty(t, wiki.saveCalls)
}

func TestSyncOrchestrator_Watch_PublishesChange(t *testing.T) {
	scanner := &syncMockScanner{watchCh: make(chan domain.SourceFile, 1)}
	scanner.watchCh <- sourceFile("repoA", "a.js", "var x = 2;")
	close(scanner.watchCh)

	wiki := newFakeWiki()
	orch := newTestOrchestrator(scanner, wiki, nil, syncTestConfig(), false)

	err := orch.Watch(context.Background())

	require.NoError(t, err)
	require.Len(t, wiki.saveCalls, 1)
	assert.Equal(t, "User:Bot/repoA/a.js", wiki.saveCalls[0].page.Title)
}

func TestSyncOrchestrator_Watch_Error(t *testing.T) {
	scanner := &syncMockScanner{watchErr: errors.New("watcher limit reached")}
	orch := newTestOrchestrator(scanner, newFakeWiki(), nil, syncTestConfig(), false)

	err := orch.Watch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch")
}

func TestSyncOrchestrator_Watch_ContextCancelled(t *testing.T) {
	scanner := &syncMockScanner{watchCh: make(chan domain.SourceFile)}
	orch := newTestOrchestrator(scanner, newFakeWiki(), nil, syncTestConfig(), false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, orch.Watch(ctx))
}
