package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/homeplay/homeplay/internal/config"
	"github.com/homeplay/homeplay/internal/errors"
	"github.com/homeplay/homeplay/internal/inherit"
	"github.com/homeplay/homeplay/internal/logging"
	"github.com/homeplay/homeplay/internal/system"
	"github.com/homeplay/homeplay/internal/vcs"
)

// Initializer provisions sandboxes.
type Initializer struct {
	paths  *config.Paths
	fs     system.FileSystem
	client vcs.Client
	linker *inherit.Linker
}

// NewInitializer creates an Initializer. A nil fs uses the OS default.
func NewInitializer(paths *config.Paths, fs system.FileSystem, client vcs.Client, linker *inherit.Linker) *Initializer {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Initializer{
		paths:  paths,
		fs:     fs,
		client: client,
		linker: linker,
	}
}

// Initialize provisions the named sandbox from cloneURL and returns its
// directory.
//
// Steps: create the sandbox directory, clone the configuration repository
// into the fixed checkout subdirectory, record metadata, and wire up
// inherited symlinks. Any failure after the directory is created removes
// it recursively and returns ProvisioningFailed.
//
// Re-provisioning an existing sandbox is unsupported: if the directory
// already exists, Initialize fails immediately and does not touch it.
func (i *Initializer) Initialize(ctx context.Context, name, cloneURL string, opts vcs.CloneOptions) (string, error) {
	if err := config.ValidateSandboxName(name); err != nil {
		return "", errors.ValidationError(err.Error())
	}
	if cloneURL == "" {
		return "", errors.MissingRequiredOption("repository reference")
	}

	dir, err := i.paths.SafeSandboxDir(name)
	if err != nil {
		return "", errors.ValidationError(err.Error())
	}

	// Fail fast before creating anything; the existing directory is not
	// ours to roll back. This also serializes concurrent provisioning of
	// the same name.
	if i.fs.Exists(dir) {
		return "", errors.ProvisioningFailed(name, fmt.Errorf("sandbox directory already exists: %s", dir))
	}

	logging.Debug("provisioning sandbox", "name", name, "url", cloneURL)

	if err := i.fs.MkdirAll(dir, 0755); err != nil {
		return "", errors.ProvisioningFailed(name, fmt.Errorf("failed to create sandbox directory: %w", err))
	}

	if err := i.client.Clone(ctx, cloneURL, i.paths.CheckoutPath(name), opts); err != nil {
		i.rollback(name, dir)
		return "", errors.ProvisioningFailed(name, err)
	}

	metadata := &config.SandboxMetadata{
		Name:      name,
		RepoURL:   cloneURL,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := config.SaveSandboxMetadata(i.paths.SandboxRoot, metadata); err != nil {
		i.rollback(name, dir)
		return "", errors.ProvisioningFailed(name, err)
	}

	if err := i.linker.EnsureLinks(dir); err != nil {
		i.rollback(name, dir)
		return "", errors.ProvisioningFailed(name, err)
	}

	logging.Debug("sandbox provisioned", "name", name, "dir", dir)
	return dir, nil
}

// rollback removes everything a failed provisioning attempt left behind.
func (i *Initializer) rollback(name, dir string) {
	logging.Debug("rolling back failed provisioning", "name", name, "dir", dir)

	if err := i.fs.RemoveAll(dir); err != nil {
		logging.Warn("failed to remove sandbox directory during rollback", "dir", dir, "error", err)
	}
	if err := config.DeleteSandboxMetadata(i.paths.SandboxRoot, name); err != nil {
		logging.Warn("failed to remove metadata during rollback", "name", name, "error", err)
	}
}
