// Package vcs abstracts the version-control client used to populate
// sandbox configuration checkouts. The real implementation shells out to
// git; a mock is provided for tests.
package vcs

import (
	"context"
	"fmt"
	"strconv"

	"github.com/homeplay/homeplay/internal/logging"
	"github.com/homeplay/homeplay/internal/system"
)

// CloneOptions holds the supported clone flags. Unknown options do not
// exist by construction.
type CloneOptions struct {
	// Recursive fetches submodules.
	Recursive bool

	// Depth is the shallow-clone depth; 0 means a full clone.
	Depth int
}

// Client performs clone operations.
type Client interface {
	// Clone clones url into dir. Any failure, including dir already being
	// populated, is returned uniformly as an error.
	Clone(ctx context.Context, url, dir string, opts CloneOptions) error
}

// GitClient implements Client by invoking the git executable.
type GitClient struct {
	exec system.CommandExecutor
}

// NewGitClient creates a GitClient. A nil executor uses the OS default.
func NewGitClient(exec system.CommandExecutor) *GitClient {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &GitClient{exec: exec}
}

func (c *GitClient) Clone(ctx context.Context, url, dir string, opts CloneOptions) error {
	args := []string{"clone"}
	if opts.Recursive {
		args = append(args, "--recursive")
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(opts.Depth))
	}
	args = append(args, url, dir)

	logging.Debug("cloning repository", "url", url, "dir", dir, "recursive", opts.Recursive, "depth", opts.Depth)

	output, err := c.exec.Execute(ctx, "git", args...)
	if err != nil {
		return fmt.Errorf("git clone failed: %s: %w", string(output), err)
	}
	return nil
}
