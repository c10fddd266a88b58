package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// sandboxNameRegex validates sandbox names.
// Names must start with a letter or digit, followed by letters, digits,
// underscores, dots, or hyphens. Maximum length is 63 characters.
var sandboxNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,62}$`)

// ValidateSandboxName checks if a sandbox name is valid.
// Valid names:
//   - Start with a letter or digit
//   - Contain only letters, digits, underscores, dots, or hyphens
//   - Are between 1 and 63 characters long
//   - Do not contain path separators or special characters
func ValidateSandboxName(name string) error {
	if name == "" {
		return fmt.Errorf("sandbox name cannot be empty")
	}

	if !sandboxNameRegex.MatchString(name) {
		return fmt.Errorf("invalid sandbox name %q: must start with a letter or digit, contain only letters, digits, underscores, dots, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

// safePath validates that a constructed path stays within the base directory.
// This prevents path traversal where names like "../../../etc/passwd" could
// escape the intended directory.
func safePath(baseDir, name, suffix string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("name cannot be an absolute path")
	}

	if filepath.Dir(name) != "." {
		return "", fmt.Errorf("name cannot contain path separators")
	}

	path := filepath.Join(baseDir, name+suffix)

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("invalid base directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return "", fmt.Errorf("path escapes base directory")
	}

	return path, nil
}

// Defaults applied when the config file omits a field.
const (
	DefaultSandboxDirName = ".homeplay"
	DefaultScriptDirName  = ".local/bin"
	DefaultHostApp        = "emacs"
	DefaultCheckoutDir    = ".emacs.d"
)

// DefaultInherited is the default set of paths symlinked from the real home
// into every sandbox.
var DefaultInherited = []string{".gnupg", ".ssh"}

// NamedConfig is a suggested configuration the user can check out by name.
type NamedConfig struct {
	Name string `toml:"name"`
	Repo string `toml:"repo"`
}

// HostConfig is the static configuration from config.toml.
type HostConfig struct {
	SandboxRoot string        `toml:"sandbox_root"`
	ScriptDir   string        `toml:"script_dir"`
	HostApp     string        `toml:"host_app"`
	CheckoutDir string        `toml:"checkout_dir"`
	Inherited   []string      `toml:"inherited"`
	Configs     []NamedConfig `toml:"configs"`
}

// Validate checks that the HostConfig is valid.
func (c *HostConfig) Validate() error {
	if c.HostApp == "" {
		return fmt.Errorf("host_app is required")
	}
	if strings.Contains(c.CheckoutDir, "..") {
		return fmt.Errorf("checkout_dir must not contain \"..\"")
	}
	for _, rel := range c.Inherited {
		if filepath.IsAbs(rel) {
			return fmt.Errorf("inherited path %q must be relative", rel)
		}
	}
	for i, nc := range c.Configs {
		if nc.Repo == "" {
			return fmt.Errorf("configs[%d]: repo is required", i)
		}
	}
	return nil
}

// FindConfig returns the suggested configuration with the given name.
func (c *HostConfig) FindConfig(name string) (NamedConfig, bool) {
	for _, nc := range c.Configs {
		if nc.Name == name {
			return nc, true
		}
	}
	return NamedConfig{}, false
}

// applyDefaults fills in any omitted fields relative to home.
func (c *HostConfig) applyDefaults(home string) {
	if c.SandboxRoot == "" {
		c.SandboxRoot = filepath.Join(home, DefaultSandboxDirName)
	}
	if c.ScriptDir == "" {
		c.ScriptDir = filepath.Join(home, DefaultScriptDirName)
	}
	if c.HostApp == "" {
		c.HostApp = DefaultHostApp
	}
	if c.CheckoutDir == "" {
		c.CheckoutDir = DefaultCheckoutDir
	}
	if c.Inherited == nil {
		c.Inherited = append([]string(nil), DefaultInherited...)
	}
	c.SandboxRoot = expandHome(c.SandboxRoot, home)
	c.ScriptDir = expandHome(c.ScriptDir, home)
}

// expandHome rewrites a leading "~/" to the real home directory.
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// LoadHostConfig reads config.toml from configPath. A missing file yields
// the defaults; a malformed file is an error.
func LoadHostConfig(configPath, home string) (*HostConfig, error) {
	var cfg HostConfig

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults(home)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath returns the standard location of config.toml.
func DefaultConfigPath(home string) string {
	return filepath.Join(home, ".config", "homeplay", "config.toml")
}

// Paths holds the resolved filesystem locations. All methods are pure path
// construction; no I/O happens here.
type Paths struct {
	// RealHome is the user's actual home directory.
	RealHome string

	// SandboxRoot is the directory holding all sandbox directories.
	SandboxRoot string

	// ScriptDir is where wrapper scripts are written.
	ScriptDir string

	// HostApp is the host application executable (name or path).
	HostApp string

	// CheckoutDir is the fixed subdirectory name for the configuration
	// checkout inside each sandbox.
	CheckoutDir string
}

// NewPaths builds a Paths from a loaded host config.
func NewPaths(home string, cfg *HostConfig) *Paths {
	return &Paths{
		RealHome:    home,
		SandboxRoot: cfg.SandboxRoot,
		ScriptDir:   cfg.ScriptDir,
		HostApp:     cfg.HostApp,
		CheckoutDir: cfg.CheckoutDir,
	}
}

// SandboxDir returns the directory for a named sandbox. Distinct valid
// names never collide: names contain no path separators, so the mapping is
// a plain join under SandboxRoot.
func (p *Paths) SandboxDir(name string) string {
	return filepath.Join(p.SandboxRoot, name)
}

// SafeSandboxDir is SandboxDir with path-traversal validation.
func (p *Paths) SafeSandboxDir(name string) (string, error) {
	return safePath(p.SandboxRoot, name, "")
}

// CheckoutPath returns the configuration checkout directory inside a sandbox.
func (p *Paths) CheckoutPath(name string) string {
	return filepath.Join(p.SandboxDir(name), p.CheckoutDir)
}

// SessionDir returns the directory holding launch session files.
func (p *Paths) SessionDir() string {
	return filepath.Join(p.SandboxRoot, ".run")
}

// SessionFile returns the pid file recording a sandbox's live session.
func (p *Paths) SessionFile(name string) string {
	return filepath.Join(p.SessionDir(), name+".pid")
}

// LastLaunchFile returns the file recording the most recent launch.
// Sandbox names never start with a dot, so ".last" cannot collide with a
// session pid file.
func (p *Paths) LastLaunchFile() string {
	return filepath.Join(p.SessionDir(), ".last")
}

// MetadataFile returns the sidecar metadata file for a sandbox.
func (p *Paths) MetadataFile(name string) (string, error) {
	return safePath(p.SandboxRoot, name, ".json")
}

// HostExe returns the bare executable name of the host application.
func (p *Paths) HostExe() string {
	return filepath.Base(p.HostApp)
}

// ScriptPaths returns the wrapper script pair: the "play" script that
// launches the host app against a sandbox home, and the "no-play" script
// that restores the real home. Both derive from the host executable name.
func (p *Paths) ScriptPaths() (play string, noPlay string) {
	exe := p.HostExe()
	return filepath.Join(p.ScriptDir, exe), filepath.Join(p.ScriptDir, "no-"+exe)
}
