// Package config holds homeplay's path resolution and static configuration.
//
// Configuration is read from ~/.config/homeplay/config.toml:
//
//	sandbox_root = "~/.homeplay"
//	script_dir   = "~/.local/bin"
//	host_app     = "emacs"
//	checkout_dir = ".emacs.d"
//	inherited    = [".gnupg", ".ssh"]
//
//	[[configs]]
//	name = "prelude"
//	repo = "bbatsov/prelude"
//
// Every field is optional; defaults are applied for anything omitted. The
// Paths type is the single source of truth for where sandboxes, wrapper
// scripts, and session files live.
package config
