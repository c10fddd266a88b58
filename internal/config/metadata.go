package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SandboxMetadata is the sidecar record written when a sandbox is
// provisioned. Pre-existing sandbox directories without a sidecar are
// still valid sandboxes; their origin is simply unknown.
type SandboxMetadata struct {
	Name      string `json:"name"`
	RepoURL   string `json:"repoUrl,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Validate checks that the SandboxMetadata is valid.
func (m *SandboxMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// SaveSandboxMetadata writes the sidecar file for a sandbox.
func SaveSandboxMetadata(sandboxRoot string, metadata *SandboxMetadata) error {
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid metadata: %w", err)
	}

	if err := os.MkdirAll(sandboxRoot, 0755); err != nil {
		return fmt.Errorf("failed to create sandbox root: %w", err)
	}

	metaPath, err := safePath(sandboxRoot, metadata.Name, ".json")
	if err != nil {
		return fmt.Errorf("invalid sandbox name: %w", err)
	}

	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(metaPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}

// LoadSandboxMetadata reads the sidecar file for a sandbox. Returns nil
// (no error) when the sandbox has no sidecar.
func LoadSandboxMetadata(sandboxRoot, name string) (*SandboxMetadata, error) {
	metaPath, err := safePath(sandboxRoot, name, ".json")
	if err != nil {
		return nil, fmt.Errorf("invalid sandbox name: %w", err)
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata SandboxMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return &metadata, nil
}

// DeleteSandboxMetadata removes the sidecar file for a sandbox, ignoring
// its absence.
func DeleteSandboxMetadata(sandboxRoot, name string) error {
	metaPath, err := safePath(sandboxRoot, name, ".json")
	if err != nil {
		return fmt.Errorf("invalid sandbox name: %w", err)
	}
	if err := os.Remove(metaPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Sandbox describes an installed sandbox directory.
type Sandbox struct {
	Name      string
	Directory string
	Metadata  *SandboxMetadata
}

// ListSandboxes enumerates sandbox directories under the root, attaching
// sidecar metadata where present. Hidden directories are skipped.
func ListSandboxes(sandboxRoot string) ([]*Sandbox, error) {
	entries, err := os.ReadDir(sandboxRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sandbox root: %w", err)
	}

	var sandboxes []*Sandbox
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		sb := &Sandbox{
			Name:      entry.Name(),
			Directory: filepath.Join(sandboxRoot, entry.Name()),
		}
		if meta, err := LoadSandboxMetadata(sandboxRoot, entry.Name()); err == nil {
			sb.Metadata = meta
		}
		sandboxes = append(sandboxes, sb)
	}

	sort.Slice(sandboxes, func(i, j int) bool {
		return sandboxes[i].Name < sandboxes[j].Name
	})

	return sandboxes, nil
}

// SandboxExists checks whether a sandbox directory exists.
func SandboxExists(sandboxRoot, name string) bool {
	dir, err := safePath(sandboxRoot, name, "")
	if err != nil {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
