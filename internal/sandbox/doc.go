// Package sandbox provides high-level sandbox provisioning.
//
// A sandbox is a directory under the sandbox root acting as a substitute
// home directory: it holds a cloned configuration repository (the
// configuration checkout) plus symlinks back to inherited paths in the
// real home.
//
// Provisioning is all-or-nothing: if any step fails after the sandbox
// directory is created, the directory is removed recursively before the
// error is returned. A sandbox is never left half-built on disk.
package sandbox
