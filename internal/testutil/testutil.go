// Package testutil provides test utilities shared across packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/homeplay/homeplay/internal/app"
	"github.com/homeplay/homeplay/internal/config"
	"github.com/homeplay/homeplay/internal/system"
	"github.com/homeplay/homeplay/internal/vcs"
)

// TestEnv holds an isolated homeplay environment backed by a temp dir.
type TestEnv struct {
	T          *testing.T
	TmpDir     string
	Home       string
	Paths      *config.Paths
	HostConfig *config.HostConfig
	Git        *vcs.MockClient
	Exec       *system.MockExecutor
	App        *app.App
}

// NewTestEnv creates a test environment with a mock git client and mock
// executor, and a real home/sandbox tree under t.TempDir().
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	home := filepath.Join(tmpDir, "home")

	cfg := &config.HostConfig{
		SandboxRoot: filepath.Join(tmpDir, "sandboxes"),
		ScriptDir:   filepath.Join(tmpDir, "bin"),
		HostApp:     "emacs",
		CheckoutDir: ".emacs.d",
		Inherited:   []string{".gnupg"},
	}

	paths := config.NewPaths(home, cfg)

	for _, dir := range []string{home, cfg.SandboxRoot, cfg.ScriptDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	git := vcs.NewMockClient()
	exec := system.NewMockExecutor()
	exec.NextPid = 999000000

	a, err := app.New(
		app.WithPaths(paths),
		app.WithConfig(cfg),
		app.WithExecutor(exec),
		app.WithGit(git),
	)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	a.Launcher.SetEnvCheck(func() bool { return true })

	return &TestEnv{
		T:          t,
		TmpDir:     tmpDir,
		Home:       home,
		Paths:      paths,
		HostConfig: cfg,
		Git:        git,
		Exec:       exec,
		App:        a,
	}
}

// AddInheritedSource creates a path inside the real home so the symlink
// engine has something to inherit.
func (e *TestEnv) AddInheritedSource(rel string) string {
	e.T.Helper()
	path := filepath.Join(e.Home, rel)
	if err := os.MkdirAll(path, 0700); err != nil {
		e.T.Fatal(err)
	}
	return path
}

// AddSandbox creates a bare sandbox directory, as if provisioned earlier.
func (e *TestEnv) AddSandbox(name string) string {
	e.T.Helper()
	dir := e.Paths.SandboxDir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.T.Fatal(err)
	}
	return dir
}

// AddNamedConfig appends a suggested configuration.
func (e *TestEnv) AddNamedConfig(name, repo string) {
	e.HostConfig.Configs = append(e.HostConfig.Configs, config.NamedConfig{Name: name, Repo: repo})
}
