package persist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/homeplay/homeplay/internal/config"
	"github.com/homeplay/homeplay/internal/errors"
	"github.com/homeplay/homeplay/internal/launcher"
)

func yes(string) bool { return true }

func newTestManager(t *testing.T) (*Manager, *launcher.Record, *config.Paths) {
	t.Helper()
	tmp := t.TempDir()

	paths := &config.Paths{
		RealHome:    filepath.Join(tmp, "home"),
		SandboxRoot: filepath.Join(tmp, "sandboxes"),
		ScriptDir:   filepath.Join(tmp, "bin"),
		HostApp:     "/usr/bin/emacs",
		CheckoutDir: ".emacs.d",
	}

	record := &launcher.Record{}
	return New(paths, nil, record), record, paths
}

func TestPersist_NoPriorLaunch(t *testing.T) {
	m, _, _ := newTestManager(t)

	err := m.Persist(func(string) bool {
		t.Fatal("confirm should not be reached without a launch record")
		return false
	})
	if !errors.IsKind(err, errors.ExitNoPriorLaunch) {
		t.Errorf("error = %v, want no prior launch", err)
	}
}

func TestPersist_WritesScriptPair(t *testing.T) {
	m, record, paths := newTestManager(t)
	record.Set("prelude", paths.SandboxRoot+"/prelude")

	if err := m.Persist(yes); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}

	play, noPlay := paths.ScriptPaths()

	playContent, err := os.ReadFile(play)
	if err != nil {
		t.Fatalf("play script missing: %v", err)
	}
	want := "#!/bin/sh\nHOME=" + paths.SandboxRoot + "/prelude exec /usr/bin/emacs \"$@\"\n"
	if string(playContent) != want {
		t.Errorf("play script = %q, want %q", playContent, want)
	}

	noPlayContent, err := os.ReadFile(noPlay)
	if err != nil {
		t.Fatalf("no-play script missing: %v", err)
	}
	if !strings.Contains(string(noPlayContent), "HOME="+paths.RealHome+" ") {
		t.Errorf("no-play script does not restore real home: %q", noPlayContent)
	}

	info, err := os.Stat(play)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o744 {
		t.Errorf("script mode = %o, want 744", info.Mode().Perm())
	}
}

func TestPersist_QuotesAwkwardPaths(t *testing.T) {
	m, record, paths := newTestManager(t)
	record.Set("odd", "/tmp/sand box")

	if err := m.Persist(yes); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}

	play, _ := paths.ScriptPaths()
	content, err := os.ReadFile(play)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "'/tmp/sand box'") {
		t.Errorf("path with spaces not quoted: %q", content)
	}
}

func TestPersist_Declined(t *testing.T) {
	m, record, paths := newTestManager(t)
	record.Set("prelude", "/tmp/prelude")

	if err := m.Persist(func(string) bool { return false }); err != nil {
		t.Fatalf("declined persist should not error: %v", err)
	}

	play, _ := paths.ScriptPaths()
	if _, err := os.Stat(play); !os.IsNotExist(err) {
		t.Error("script written despite declined confirmation")
	}
}

func TestPersistUnpersist_RoundTrip(t *testing.T) {
	m, record, paths := newTestManager(t)
	record.Set("prelude", "/tmp/prelude")

	if err := m.Persist(yes); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}
	if err := m.Unpersist(yes); err != nil {
		t.Fatalf("Unpersist() failed: %v", err)
	}

	play, noPlay := paths.ScriptPaths()
	for _, path := range []string{play, noPlay} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s still exists after unpersist", path)
		}
	}
}

func TestUnpersist_ToleratesAbsence(t *testing.T) {
	m, _, _ := newTestManager(t)

	if err := m.Unpersist(yes); err != nil {
		t.Errorf("Unpersist() with no scripts should be a no-op, got %v", err)
	}
}
