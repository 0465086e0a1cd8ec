// Package logs provides file tailing and offset helpers for the CLI.
//
// It streams the burn log with bounded memory usage, supports negative
// offsets for "tail last N lines" operations, and powers follow-mode updates
// for `singe logs --follow`. Callers supply context deadlines so polling
// shuts down cleanly when the CLI exits.
package logs
