// Package inherit wires curated paths from the real home directory into
// sandboxes as symlinks, so shared state (credential stores, keys) is not
// duplicated per sandbox.
package inherit

import (
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/homeplay/homeplay/internal/config"
	"github.com/homeplay/homeplay/internal/logging"
	"github.com/homeplay/homeplay/internal/system"
)

// Linker creates inherited symlinks inside sandbox directories. The set of
// inherited relative paths is fixed for the lifetime of the Linker.
type Linker struct {
	fs       system.FileSystem
	realHome string
	paths    []string
}

// NewLinker creates a Linker for the given real home and inherited path set.
func NewLinker(fs system.FileSystem, realHome string, paths []string) *Linker {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Linker{fs: fs, realHome: realHome, paths: paths}
}

// EnsureLinks fills in missing inherited symlinks inside sandboxDir.
//
// For each configured relative path, a symlink pointing at the
// corresponding real-home path is created unless something already exists
// at the target, in which case it is left untouched regardless of what it
// is or where it points. Sources that do not exist in the real home are
// skipped silently. Re-running is always safe.
func (l *Linker) EnsureLinks(sandboxDir string) error {
	for _, rel := range l.paths {
		src := filepath.Join(l.realHome, rel)
		if !l.fs.Exists(src) {
			logging.Debug("inherited source missing, skipping", "path", src)
			continue
		}

		// The relative path comes from configuration; join it so it cannot
		// escape the sandbox.
		dst, err := securejoin.SecureJoin(sandboxDir, rel)
		if err != nil {
			return fmt.Errorf("invalid inherited path %q: %w", rel, err)
		}

		// Lstat, not Stat: a dangling symlink still counts as occupied.
		if _, err := l.fs.Lstat(dst); err == nil {
			logging.Debug("inherited target already present", "path", dst)
			continue
		}

		if err := l.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fmt.Errorf("failed to create parent for %q: %w", rel, err)
		}
		if err := l.fs.Symlink(src, dst); err != nil {
			return fmt.Errorf("failed to link %q: %w", rel, err)
		}
		logging.Debug("inherited link created", "from", dst, "to", src)
	}
	return nil
}

// RepairAll runs EnsureLinks across every sandbox under the root. Used as a
// standalone maintenance operation, independent of provisioning.
func (l *Linker) RepairAll(sandboxRoot string) error {
	sandboxes, err := config.ListSandboxes(sandboxRoot)
	if err != nil {
		return err
	}

	for _, sb := range sandboxes {
		logging.Debug("repairing inherited links", "sandbox", sb.Name)
		if err := l.EnsureLinks(sb.Directory); err != nil {
			return fmt.Errorf("sandbox %s: %w", sb.Name, err)
		}
	}
	return nil
}
