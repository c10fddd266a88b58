// Package persist generates the wrapper scripts that make a sandbox the
// default launch target for the host application.
package persist

import (
	"fmt"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/homeplay/homeplay/internal/config"
	"github.com/homeplay/homeplay/internal/errors"
	"github.com/homeplay/homeplay/internal/launcher"
	"github.com/homeplay/homeplay/internal/logging"
	"github.com/homeplay/homeplay/internal/system"
)

// scriptMode makes the wrappers executable by everyone, writable by owner.
const scriptMode = 0o744

// Manager writes and removes the wrapper script pair.
type Manager struct {
	paths  *config.Paths
	fs     system.FileSystem
	record *launcher.Record
}

// New creates a Manager reading the given launch record. A nil fs uses the
// OS default.
func New(paths *config.Paths, fs system.FileSystem, record *launcher.Record) *Manager {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Manager{paths: paths, fs: fs, record: record}
}

// Persist writes the wrapper script pair for the most recently launched
// sandbox: one script launching the host application with HOME set to the
// sandbox, one restoring the real home. Requires a prior launch and the
// caller's confirmation.
func (m *Manager) Persist(confirm launcher.Confirm) error {
	name, home, ok := m.record.Get()
	if !ok {
		return errors.NoPriorLaunch()
	}

	play, noPlay := m.paths.ScriptPaths()
	if !confirm(fmt.Sprintf("Make sandbox %q the default %s environment? This writes %s and %s.", name, m.paths.HostExe(), play, noPlay)) {
		logging.Debug("persist cancelled", "name", name)
		return nil
	}

	if err := m.fs.MkdirAll(m.paths.ScriptDir, 0755); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to create script directory", err)
	}

	if err := m.writeScript(play, home); err != nil {
		return err
	}
	if err := m.writeScript(noPlay, m.paths.RealHome); err != nil {
		return err
	}

	logging.Debug("wrapper scripts written", "play", play, "noPlay", noPlay, "home", home)
	return nil
}

// Unpersist removes whichever wrapper scripts exist, after confirmation.
// Absence of either script is not an error.
func (m *Manager) Unpersist(confirm launcher.Confirm) error {
	play, noPlay := m.paths.ScriptPaths()

	if !confirm(fmt.Sprintf("Remove the %s wrapper scripts?", m.paths.HostExe())) {
		logging.Debug("unpersist cancelled")
		return nil
	}

	for _, path := range []string{play, noPlay} {
		if !m.fs.Exists(path) {
			continue
		}
		if err := m.fs.Remove(path); err != nil {
			return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to remove %s", path), err)
		}
		logging.Debug("wrapper script removed", "path", path)
	}
	return nil
}

// writeScript writes one two-line POSIX shell wrapper.
func (m *Manager) writeScript(path, home string) error {
	content := fmt.Sprintf("#!/bin/sh\nHOME=%s exec %s \"$@\"\n",
		shellquote.Join(home), shellquote.Join(m.paths.HostApp))

	if err := m.fs.WriteFile(path, []byte(content), scriptMode); err != nil {
		return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
