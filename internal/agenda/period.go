package agenda

import (
	"time"
)

// DateLayout is the calendar-day format used throughout the agenda pipeline
const DateLayout = "2006-01-02"

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Preset names a relative time window resolved against "now"
type Preset string

const (
	PresetToday      Preset = "today"
	PresetNext7Days  Preset = "next7days"
	PresetThisWeek   Preset = "thisweek"
	PresetThisMonth  Preset = "thismonth"
	PresetYearToDate Preset = "yeartodate"
	PresetAll        Preset = "all"
	PresetCustom     Preset = "custom"
)

// Period selects a time window: either a named preset or custom bounds.
// CustomStart/CustomEnd are YYYY-MM-DD strings and only consulted when
// Preset is PresetCustom.
type Period struct {
	Preset      Preset
	CustomStart string
	CustomEnd   string
}

// Resolver turns a Period into a concrete Interval. WeekStart controls
// where "this week" begins.
type Resolver struct {
	WeekStart time.Weekday
}

// DefaultResolver is used by Resolve and Group. Weeks start on Monday
// unless reconfigured at startup.
var DefaultResolver = Resolver{WeekStart: time.Monday}

// Resolve resolves sel against now using the DefaultResolver
func Resolve(sel Period, now time.Time) *Interval {
	return DefaultResolver.Resolve(sel, now)
}

// Resolve returns the half-open interval for sel, or nil when no date
// constraint applies. "all" resolves to nil, and custom bounds that are
// missing or unparseable degrade to nil rather than erroring, so a bad
// user input shows everything instead of silently hiding data.
func (r Resolver) Resolve(sel Period, now time.Time) *Interval {
	switch sel.Preset {
	case PresetToday:
		start := midnight(now)
		return &Interval{Start: start, End: start.AddDate(0, 0, 1)}
	case PresetNext7Days:
		start := midnight(now)
		return &Interval{Start: start, End: start.AddDate(0, 0, 7)}
	case PresetThisWeek:
		start := r.startOfWeek(now)
		return &Interval{Start: start, End: start.AddDate(0, 0, 7)}
	case PresetThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &Interval{Start: start, End: start.AddDate(0, 1, 0)}
	case PresetYearToDate:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return &Interval{Start: start, End: midnight(now).AddDate(0, 0, 1)}
	case PresetCustom:
		return resolveCustom(sel, now.Location())
	default:
		// "all" and anything unrecognized mean no date constraint
		return nil
	}
}

// resolveCustom returns [midnight(start), midnight(end)+1d) so the chosen
// end day is included. Either bound failing to parse degrades to nil.
func resolveCustom(sel Period, loc *time.Location) *Interval {
	start, err := time.ParseInLocation(DateLayout, sel.CustomStart, loc)
	if err != nil {
		return nil
	}
	end, err := time.ParseInLocation(DateLayout, sel.CustomEnd, loc)
	if err != nil {
		return nil
	}
	return &Interval{Start: start, End: end.AddDate(0, 0, 1)}
}

func (r Resolver) startOfWeek(now time.Time) time.Time {
	day := midnight(now)
	offset := (int(now.Weekday()) - int(r.WeekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// midnight returns the start of t's calendar day in t's location
func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParsePreset maps a user-supplied period name to a Preset, accepting a
// few command-line friendly spellings. Unrecognized input falls back to
// "all" (no date filter).
func ParsePreset(s string) Preset {
	switch s {
	case "today":
		return PresetToday
	case "next7days", "next-7-days", "week-ahead":
		return PresetNext7Days
	case "thisweek", "this-week":
		return PresetThisWeek
	case "thismonth", "this-month":
		return PresetThisMonth
	case "yeartodate", "year-to-date", "ytd":
		return PresetYearToDate
	case "custom":
		return PresetCustom
	default:
		return PresetAll
	}
}
