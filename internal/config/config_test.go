package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateSandboxName(t *testing.T) {
	valid := []string{"prelude", "my-config", "a", "config.d", "Spacemacs", "x_1"}
	for _, name := range valid {
		if err := ValidateSandboxName(name); err != nil {
			t.Errorf("ValidateSandboxName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{
		"",
		"../escape",
		"has spaces",
		"-leading-dash",
		".leading-dot",
		"slash/inside",
		"has;semicolon",
	}
	for _, name := range invalid {
		if err := ValidateSandboxName(name); err == nil {
			t.Errorf("ValidateSandboxName(%q) should have failed", name)
		}
	}
}

func TestSafePath_Traversal(t *testing.T) {
	if _, err := safePath("/var/lib/homeplay", "../etc", ".json"); err == nil {
		t.Error("safePath should reject path separators")
	}
	if _, err := safePath("/var/lib/homeplay", "/etc/passwd", ""); err == nil {
		t.Error("safePath should reject absolute names")
	}
}

func TestLoadHostConfig_Defaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := LoadHostConfig(filepath.Join(home, "nonexistent.toml"), home)
	if err != nil {
		t.Fatalf("LoadHostConfig() failed: %v", err)
	}

	if cfg.SandboxRoot != filepath.Join(home, DefaultSandboxDirName) {
		t.Errorf("SandboxRoot = %s", cfg.SandboxRoot)
	}
	if cfg.HostApp != DefaultHostApp {
		t.Errorf("HostApp = %s, want %s", cfg.HostApp, DefaultHostApp)
	}
	if cfg.CheckoutDir != DefaultCheckoutDir {
		t.Errorf("CheckoutDir = %s, want %s", cfg.CheckoutDir, DefaultCheckoutDir)
	}
	if len(cfg.Inherited) != len(DefaultInherited) {
		t.Errorf("Inherited = %v, want %v", cfg.Inherited, DefaultInherited)
	}
}

func TestLoadHostConfig_File(t *testing.T) {
	home := t.TempDir()
	configPath := filepath.Join(home, "config.toml")

	content := `
sandbox_root = "~/sandboxes"
host_app = "/usr/bin/emacs"
inherited = [".gnupg", ".ssh/config"]

[[configs]]
name = "prelude"
repo = "bbatsov/prelude"

[[configs]]
name = "spacemacs"
repo = "https://github.com/syl20bnr/spacemacs.git"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadHostConfig(configPath, home)
	if err != nil {
		t.Fatalf("LoadHostConfig() failed: %v", err)
	}

	if cfg.SandboxRoot != filepath.Join(home, "sandboxes") {
		t.Errorf("SandboxRoot = %s, ~ was not expanded", cfg.SandboxRoot)
	}
	if cfg.HostApp != "/usr/bin/emacs" {
		t.Errorf("HostApp = %s", cfg.HostApp)
	}

	nc, ok := cfg.FindConfig("prelude")
	if !ok || nc.Repo != "bbatsov/prelude" {
		t.Errorf("FindConfig(prelude) = %+v, %v", nc, ok)
	}
	if _, ok := cfg.FindConfig("doom"); ok {
		t.Error("FindConfig(doom) should not exist")
	}
}

func TestLoadHostConfig_Malformed(t *testing.T) {
	home := t.TempDir()
	configPath := filepath.Join(home, "config.toml")
	if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadHostConfig(configPath, home); err == nil {
		t.Error("LoadHostConfig() should fail on malformed toml")
	}
}

func TestPaths_SandboxDir(t *testing.T) {
	p := &Paths{RealHome: "/home/u", SandboxRoot: "/home/u/.homeplay"}

	a := p.SandboxDir("prelude")
	b := p.SandboxDir("spacemacs")
	if a == b {
		t.Error("distinct names must map to distinct directories")
	}
	if a != "/home/u/.homeplay/prelude" {
		t.Errorf("SandboxDir = %s", a)
	}
}

func TestPaths_ScriptPaths(t *testing.T) {
	p := &Paths{
		ScriptDir: "/home/u/.local/bin",
		HostApp:   "/usr/local/bin/emacs",
	}

	play, noPlay := p.ScriptPaths()
	if play != "/home/u/.local/bin/emacs" {
		t.Errorf("play = %s", play)
	}
	if noPlay != "/home/u/.local/bin/no-emacs" {
		t.Errorf("noPlay = %s", noPlay)
	}
}

func TestMetadata_RoundTrip(t *testing.T) {
	root := t.TempDir()

	meta := &SandboxMetadata{
		Name:      "prelude",
		RepoURL:   "https://github.com/bbatsov/prelude.git",
		CreatedAt: "2026-01-02T15:04:05Z",
	}
	if err := SaveSandboxMetadata(root, meta); err != nil {
		t.Fatalf("SaveSandboxMetadata() failed: %v", err)
	}

	loaded, err := LoadSandboxMetadata(root, "prelude")
	if err != nil {
		t.Fatalf("LoadSandboxMetadata() failed: %v", err)
	}
	if loaded == nil || loaded.RepoURL != meta.RepoURL {
		t.Errorf("loaded = %+v", loaded)
	}

	if err := DeleteSandboxMetadata(root, "prelude"); err != nil {
		t.Fatalf("DeleteSandboxMetadata() failed: %v", err)
	}
	if err := DeleteSandboxMetadata(root, "prelude"); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}

func TestListSandboxes(t *testing.T) {
	root := t.TempDir()

	for _, name := range []string{"prelude", "doom"} {
		if err := os.MkdirAll(filepath.Join(root, name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	// Hidden and file entries are skipped.
	if err := os.MkdirAll(filepath.Join(root, ".run"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "stray.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	sandboxes, err := ListSandboxes(root)
	if err != nil {
		t.Fatalf("ListSandboxes() failed: %v", err)
	}
	if len(sandboxes) != 2 {
		t.Fatalf("len = %d, want 2", len(sandboxes))
	}
	if sandboxes[0].Name != "doom" || sandboxes[1].Name != "prelude" {
		t.Errorf("order = %s, %s", sandboxes[0].Name, sandboxes[1].Name)
	}

	if !SandboxExists(root, "prelude") {
		t.Error("SandboxExists(prelude) = false")
	}
	if SandboxExists(root, "missing") {
		t.Error("SandboxExists(missing) = true")
	}
}

func TestListSandboxes_MissingRoot(t *testing.T) {
	sandboxes, err := ListSandboxes(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing root should not error: %v", err)
	}
	if sandboxes != nil {
		t.Errorf("sandboxes = %v, want nil", sandboxes)
	}
}
