// Package logging provides logging utilities for homeplay.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("cloning configuration", "url", url, "dir", dir)
//	logging.Warn("symlink source missing", "path", src)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Provisioning sandbox %s...", name)
//	logging.UserSuccess("Sandbox %s ready", name)
//	logging.UserWarning("Session %s is still running", name)
//	logging.UserError("Checkout failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
