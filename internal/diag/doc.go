// Package diag holds the compile-time diagnostics reported by idlc: codes,
// severities, a bounded Bag and the renderers used by the CLI.
package diag
