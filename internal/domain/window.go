package domain

import "time"

// Window is an inclusive creation-date range used to bound task listings.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DayWindow returns the calendar day containing now, midnight to the last
// instant before the next midnight, in now's location.
func DayWindow(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

// WeekWindow returns the calendar week containing now. Weeks start on Sunday.
func WeekWindow(now time.Time) Window {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := dayStart.AddDate(0, 0, -int(now.Weekday()))
	return Window{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
}

// MonthWindow returns the calendar month containing now.
func MonthWindow(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// WindowForFilter maps a list filter name to its calendar window. The second
// return value is false for an empty or unrecognized filter, in which case
// the listing is unbounded.
func WindowForFilter(filter string, now time.Time) (Window, bool) {
	switch filter {
	case "today":
		return DayWindow(now), true
	case "week":
		return WeekWindow(now), true
	case "month":
		return MonthWindow(now), true
	default:
		return Window{}, false
	}
}
