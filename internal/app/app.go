// Package app wires homeplay's components together and exposes the
// operations the front ends call. It allows dependency injection for
// testing.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/homeplay/homeplay/internal/config"
	"github.com/homeplay/homeplay/internal/inherit"
	"github.com/homeplay/homeplay/internal/launcher"
	"github.com/homeplay/homeplay/internal/persist"
	"github.com/homeplay/homeplay/internal/sandbox"
	"github.com/homeplay/homeplay/internal/system"
	"github.com/homeplay/homeplay/internal/vcs"
)

// App holds the application dependencies.
type App struct {
	Paths  *config.Paths
	Config *config.HostConfig

	FS   system.FileSystem
	Exec system.CommandExecutor
	Git  vcs.Client

	Linker      *inherit.Linker
	Initializer *sandbox.Initializer
	Launcher    *launcher.Launcher
	Persister   *persist.Manager
}

// Option is a function that configures the App.
type Option func(*App)

// WithPaths sets custom paths.
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithConfig sets a pre-loaded host config.
func WithConfig(cfg *config.HostConfig) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithFS sets a custom file system.
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor.
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Exec = exec
	}
}

// WithGit sets a custom version-control client.
func WithGit(client vcs.Client) Option {
	return func(a *App) {
		a.Git = client
	}
}

// New creates an App with the given options. Anything not injected is
// built from the user's real configuration.
func New(opts ...Option) (*App, error) {
	a := &App{}

	for _, opt := range opts {
		opt(a)
	}

	if a.Config == nil || a.Paths == nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		if a.Config == nil {
			cfg, err := config.LoadHostConfig(config.DefaultConfigPath(home), home)
			if err != nil {
				return nil, err
			}
			a.Config = cfg
		}
		if a.Paths == nil {
			a.Paths = config.NewPaths(home, a.Config)
		}
	}

	if a.FS == nil {
		a.FS = system.DefaultFS()
	}
	if a.Exec == nil {
		a.Exec = system.DefaultExecutor()
	}
	if a.Git == nil {
		a.Git = vcs.NewGitClient(a.Exec)
	}

	a.Linker = inherit.NewLinker(a.FS, a.Paths.RealHome, a.Config.Inherited)
	a.Initializer = sandbox.NewInitializer(a.Paths, a.FS, a.Git, a.Linker)
	a.Launcher = launcher.New(a.Paths, a.FS, a.Exec)
	a.Persister = persist.New(a.Paths, a.FS, a.Launcher.LaunchRecord())

	return a, nil
}

// StartLast relaunches the most recently launched sandbox.
func (a *App) StartLast(ctx context.Context, confirm launcher.Confirm) error {
	return a.Launcher.StartLast(ctx, confirm)
}

// Persist makes the last-launched sandbox the default environment.
func (a *App) Persist(confirm launcher.Confirm) error {
	return a.Persister.Persist(confirm)
}

// Unpersist removes the wrapper scripts.
func (a *App) Unpersist(confirm launcher.Confirm) error {
	return a.Persister.Unpersist(confirm)
}

// Repair re-runs symlink inheritance across all sandboxes.
func (a *App) Repair() error {
	return a.Linker.RepairAll(a.Paths.SandboxRoot)
}

// List enumerates installed sandboxes.
func (a *App) List() ([]*config.Sandbox, error) {
	return config.ListSandboxes(a.Paths.SandboxRoot)
}

// Checkout resolves input to a launch plan, provisions if needed, and
// starts a session against the sandbox.
func (a *App) Checkout(ctx context.Context, input string, opts vcs.CloneOptions) error {
	names, err := a.installedNames()
	if err != nil {
		return err
	}

	plan, err := Resolve(input, names, a.Config.Configs)
	if err != nil {
		return err
	}
	return a.launch(ctx, plan, opts)
}

// CheckoutConfig checks out an explicitly named suggested configuration,
// bypassing repository-reference interpretation of the argument.
func (a *App) CheckoutConfig(ctx context.Context, name string, opts vcs.CloneOptions) error {
	names, err := a.installedNames()
	if err != nil {
		return err
	}

	plan, err := ResolveConfig(name, names, a.Config.Configs)
	if err != nil {
		return err
	}
	return a.launch(ctx, plan, opts)
}

func (a *App) installedNames() ([]string, error) {
	installed, err := a.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(installed))
	for i, sb := range installed {
		names[i] = sb.Name
	}
	return names, nil
}

// launch executes a resolved plan: provision when required, then start a
// session against the sandbox.
func (a *App) launch(ctx context.Context, plan LaunchPlan, opts vcs.CloneOptions) error {
	dir := a.Paths.SandboxDir(plan.Name)
	if plan.Provision {
		var err error
		dir, err = a.Initializer.Initialize(ctx, plan.Name, plan.CloneURL, opts)
		if err != nil {
			return err
		}
	}

	return a.Launcher.Start(plan.Name, dir)
}
