package logging

import (
	"fmt"
	"os"
)

// User-facing output for the homeplay commands, separate from the
// structured slog channel. Checkout, start and friends report progress
// here; slog carries the diagnostic detail behind --verbose.
//
// Info and success go to stdout. Warnings and errors go to stderr so
// they survive when command output is piped.

// UserInfo prints an informational message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}
