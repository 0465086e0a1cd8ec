// Package queue models burn jobs, their lifecycle, the in-memory batch, and
// the SQLite-backed store that lets separate CLI invocations share one queue.
package queue
