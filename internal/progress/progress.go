// Package progress tracks completed work units and renders elapsed time for
// burn status output.
package progress

import (
	"fmt"
	"strings"
)

// Tracker accumulates progress toward a fixed total. It is a plain value
// holder for single-threaded reporting; rendering happens in the CLI.
type Tracker struct {
	current int
	total   int
	suffix  string
}

// NewTracker creates a tracker for the given number of units. Totals below
// zero are treated as zero.
func NewTracker(total int) *Tracker {
	if total < 0 {
		total = 0
	}
	return &Tracker{total: total}
}

// Update mutates tracker state. When Current is set it overrides the running
// value directly; otherwise Increment is added (an unset Increment counts one
// unit). A non-empty Suffix replaces the previous label. Current is clamped
// to [0, total].
type Update struct {
	Increment int
	Current   *int
	Suffix    string
}

// Apply performs an update.
func (t *Tracker) Apply(update Update) {
	switch {
	case update.Current != nil:
		t.current = *update.Current
	case update.Increment != 0:
		t.current += update.Increment
	default:
		t.current++
	}

	if t.current < 0 {
		t.current = 0
	}
	if t.current > t.total {
		t.current = t.total
	}

	if update.Suffix != "" {
		t.suffix = update.Suffix
	}
}

// Advance adds one completed unit.
func (t *Tracker) Advance() {
	t.Apply(Update{Increment: 1})
}

// SetCurrent positions the tracker at an absolute value.
func (t *Tracker) SetCurrent(current int) {
	t.Apply(Update{Current: &current})
}

// Finish forces the tracker to completion.
func (t *Tracker) Finish() {
	t.SetCurrent(t.total)
}

func (t *Tracker) Current() int   { return t.current }
func (t *Tracker) Total() int     { return t.total }
func (t *Tracker) Suffix() string { return t.suffix }

// Fraction reports completion in [0, 1]. A zero-total tracker reads complete.
func (t *Tracker) Fraction() float64 {
	if t.total == 0 {
		return 1
	}
	return float64(t.current) / float64(t.total)
}

// Done reports whether the tracker has reached its total.
func (t *Tracker) Done() bool {
	return t.current >= t.total
}

// String renders "current/total suffix" for log lines.
func (t *Tracker) String() string {
	base := fmt.Sprintf("%d/%d", t.current, t.total)
	if s := strings.TrimSpace(t.suffix); s != "" {
		return base + " " + s
	}
	return base
}

// FormatElapsed renders whole seconds as MM:SS. Minutes are not wrapped to
// hours: 3661 seconds renders "61:01". Negative input is rejected.
func FormatElapsed(seconds int) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("elapsed seconds must be non-negative, got %d", seconds)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60), nil
}
