// Package launcher starts the host application against sandbox home
// directories and tracks the most recent launch.
package launcher

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/homeplay/homeplay/internal/config"
	"github.com/homeplay/homeplay/internal/errors"
	"github.com/homeplay/homeplay/internal/logging"
	"github.com/homeplay/homeplay/internal/system"
)

// Record is the single-slot launch record: the sandbox name and home
// directory of the most recent launch. Safe for concurrent use.
type Record struct {
	mu   sync.Mutex
	name string
	home string
	set  bool
}

// Set overwrites the record.
func (r *Record) Set(name, home string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name, r.home, r.set = name, home, true
}

// Get returns the recorded launch, if any.
func (r *Record) Get() (name, home string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.home, r.set
}

// Confirm is a yes/no confirmation capability supplied by the front end.
type Confirm func(message string) bool

// Launcher spawns host-application sessions with HOME overridden.
type Launcher struct {
	paths  *config.Paths
	fs     system.FileSystem
	exec   system.CommandExecutor
	record *Record

	// envAvailable reports whether a graphical session can be spawned.
	// Injectable for tests.
	envAvailable func() bool

	// pollInterval and killTimeout tune the termination wait loop.
	pollInterval time.Duration
	killTimeout  time.Duration
}

// New creates a Launcher. Nil fs/exec use the OS defaults.
func New(paths *config.Paths, fs system.FileSystem, exec system.CommandExecutor) *Launcher {
	if fs == nil {
		fs = system.DefaultFS()
	}
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	l := &Launcher{
		paths:        paths,
		fs:           fs,
		exec:         exec,
		record:       &Record{},
		envAvailable: graphicalSessionAvailable,
		pollInterval: 200 * time.Millisecond,
		killTimeout:  10 * time.Second,
	}
	l.restoreLast()
	return l
}

// LaunchRecord returns the launcher's launch record. The persistence
// manager reads it; nothing else mutates it.
func (l *Launcher) LaunchRecord() *Record {
	return l.record
}

// SetEnvCheck overrides the graphical-session check (testing).
func (l *Launcher) SetEnvCheck(check func() bool) {
	l.envAvailable = check
}

// graphicalSessionAvailable reports whether the host application can be
// spawned as a graphical session. Sandboxes replace the home directory of
// a GUI process; a pure-terminal context is rejected.
func graphicalSessionAvailable() bool {
	if runtime.GOOS == "darwin" {
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// Start launches the host application with HOME set to home and records
// the launch. The session is tagged by name via a pid file so a later
// relaunch can find it.
func (l *Launcher) Start(name, home string) error {
	if !l.envAvailable() {
		return errors.EnvironmentUnavailable()
	}

	pid, err := l.exec.StartDetached(envWithHome(home), l.paths.HostApp)
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to start %s", l.paths.HostExe()), err)
	}

	logging.Debug("session started", "name", name, "home", home, "pid", pid)

	if err := l.writeSession(name, pid); err != nil {
		logging.Warn("failed to record session pid", "name", name, "error", err)
	}

	l.record.Set(name, home)
	if err := l.writeLastLaunch(name, home); err != nil {
		logging.Warn("failed to record last launch", "name", name, "error", err)
	}
	return nil
}

// StartLast relaunches the most recently launched sandbox.
//
// If a live session for that sandbox exists, the caller is asked to
// confirm; on confirmation the session is terminated and the replacement
// is started only after the old process has fully exited. Without a live
// session the replacement starts immediately.
func (l *Launcher) StartLast(ctx context.Context, confirm Confirm) error {
	name, home, ok := l.record.Get()
	if !ok {
		return errors.NoPriorLaunch()
	}

	pid, live := l.liveSession(name)
	if !live {
		return l.Start(name, home)
	}

	if !confirm(fmt.Sprintf("%s session for sandbox %q is still running. Kill it and relaunch?", l.paths.HostExe(), name)) {
		logging.Debug("relaunch cancelled", "name", name)
		return nil
	}

	if err := l.terminate(ctx, pid); err != nil {
		return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to stop session for %s", name), err)
	}

	// The old process has fully exited; only now is the sandbox directory
	// free for the replacement.
	return l.Start(name, home)
}

// liveSession looks up the pid file tagged with name and checks whether
// that process is still alive. Stale pid files are removed.
func (l *Launcher) liveSession(name string) (int, bool) {
	data, err := l.fs.ReadFile(l.paths.SessionFile(name))
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}

	if !processAlive(pid) {
		_ = l.fs.Remove(l.paths.SessionFile(name))
		return 0, false
	}
	return pid, true
}

// terminate sends SIGTERM and waits for the process to exit, escalating to
// SIGKILL after the kill timeout. Returns once the process is gone.
func (l *Launcher) terminate(ctx context.Context, pid int) error {
	logging.Debug("terminating session", "pid", pid)

	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}

	if l.waitForExit(ctx, pid, l.killTimeout) {
		return nil
	}

	logging.Warn("session ignored SIGTERM, escalating", "pid", pid)
	if err := syscall.Kill(pid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return fmt.Errorf("kill pid %d: %w", pid, err)
	}

	if !l.waitForExit(ctx, pid, l.killTimeout) {
		return fmt.Errorf("pid %d did not exit", pid)
	}
	return nil
}

// waitForExit polls until the process disappears or the timeout elapses.
func (l *Launcher) waitForExit(ctx context.Context, pid int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(l.pollInterval):
		}
	}
	return !processAlive(pid)
}

// writeLastLaunch records the launch next to the session pid files so
// relaunch and persist keep working in later invocations.
func (l *Launcher) writeLastLaunch(name, home string) error {
	if err := l.fs.MkdirAll(l.paths.SessionDir(), 0755); err != nil {
		return err
	}
	return l.fs.WriteFile(l.paths.LastLaunchFile(), []byte(name+"\n"+home+"\n"), 0644)
}

// restoreLast hydrates the launch record from the last-launch file. A
// record pointing at a sandbox directory that no longer exists is stale
// and removed; the record then stays empty, as if nothing was launched.
func (l *Launcher) restoreLast() {
	data, err := l.fs.ReadFile(l.paths.LastLaunchFile())
	if err != nil {
		return
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 || lines[0] == "" || lines[1] == "" {
		return
	}
	name, home := lines[0], lines[1]

	if !l.fs.Exists(home) {
		_ = l.fs.Remove(l.paths.LastLaunchFile())
		return
	}
	l.record.Set(name, home)
}

// writeSession records the session pid tagged by sandbox name.
func (l *Launcher) writeSession(name string, pid int) error {
	if err := l.fs.MkdirAll(l.paths.SessionDir(), 0755); err != nil {
		return err
	}
	return l.fs.WriteFile(l.paths.SessionFile(name), []byte(strconv.Itoa(pid)+"\n"), 0644)
}

// processAlive checks liveness with signal 0. EPERM still means alive.
func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || err == syscall.EPERM
}

// envWithHome returns the current environment with HOME replaced.
func envWithHome(home string) []string {
	env := os.Environ()
	out := env[:0]
	for _, kv := range env {
		if !strings.HasPrefix(kv, "HOME=") {
			out = append(out, kv)
		}
	}
	return append(out, "HOME="+home)
}
