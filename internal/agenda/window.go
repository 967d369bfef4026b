package agenda

import (
	"math"
	"time"
)

// Window is the date range already fetched from the data source for a
// scrollable calendar. Half-open: To is exclusive.
type Window struct {
	From time.Time
	To   time.Time
}

// Key returns the window's idempotency key
func (w Window) Key() string {
	return w.From.Format(DateLayout) + "|" + w.To.Format(DateLayout)
}

// Defaults for how close the viewport may get to a window edge before
// more data is requested, and how far the window grows per request.
const (
	DefaultBufferDays    = 30
	DefaultExpansionDays = 90
)

// Expander decides when a calendar's fetch window should widen. It
// performs no I/O; it only proposes a larger window for the caller's
// fetch collaborator. The proposal is deduplicated so re-entrant
// recomputation (the same scroll event observed twice) cannot queue a
// redundant fetch.
type Expander struct {
	BufferDays    int
	ExpansionDays int
	lastKey       string
}

// NewExpander creates an Expander, substituting defaults for
// non-positive thresholds
func NewExpander(bufferDays, expansionDays int) *Expander {
	if bufferDays <= 0 {
		bufferDays = DefaultBufferDays
	}
	if expansionDays <= 0 {
		expansionDays = DefaultExpansionDays
	}
	return &Expander{BufferDays: bufferDays, ExpansionDays: expansionDays}
}

// MaybeExpand returns a widened window when the viewport is within
// BufferDays of either edge of current, or nil when no expansion is
// needed. The common case is nil and costs two date subtractions.
//
// A viewport already outside the window (negative distance) does not
// trigger incremental expansion; that happens on a mode change, where
// the caller rebuilds the initial window and calls Reset.
func (e *Expander) MaybeExpand(current Window, viewport Interval) *Window {
	proposed := current
	expanded := false

	if d := daysBetween(current.From, viewport.Start); d >= 0 && d < e.BufferDays {
		proposed.From = current.From.AddDate(0, 0, -e.ExpansionDays)
		expanded = true
	}
	if d := daysBetween(viewport.End, current.To); d >= 0 && d < e.BufferDays {
		proposed.To = current.To.AddDate(0, 0, e.ExpansionDays)
		expanded = true
	}

	if !expanded {
		return nil
	}

	key := proposed.Key()
	if key == e.lastKey {
		return nil
	}
	e.lastKey = key
	return &proposed
}

// Reset clears the idempotency key. Call when the calendar switches
// modes and the initial window is recomputed from scratch.
func (e *Expander) Reset() {
	e.lastKey = ""
}

// daysBetween returns the whole days from a to b, negative when b is
// before a. Rounding absorbs DST-shortened or -lengthened days.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
