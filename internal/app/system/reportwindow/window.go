// Package reportwindow computes the time windows and percentage math
// used by the report generator. All windows are half-open [Start, End)
// in UTC.
package reportwindow

import (
	"fmt"
	"math"
	"time"
)

// Report types.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

// Window is a half-open [Start, End) interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration returns End - Start.
func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }

// Compute returns the reporting window containing target plus the
// immediately preceding window of the same length.
//
//   - daily: the calendar day containing target
//   - weekly: the Monday–Sunday week containing target
//   - monthly: the 1st of target's month through the end of target's
//     day. This is month-TO-DATE, not the full calendar month: a report
//     for the 10th covers ten days and compares against the ten days
//     before the 1st.
func Compute(reportType string, target time.Time) (current, previous Window, err error) {
	day := startOfDay(target.UTC())

	switch reportType {
	case Daily:
		current = Window{Start: day, End: day.AddDate(0, 0, 1)}
	case Weekly:
		start := weekStart(day)
		current = Window{Start: start, End: start.AddDate(0, 0, 7)}
	case Monthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		current = Window{Start: start, End: day.AddDate(0, 0, 1)}
	default:
		return Window{}, Window{}, fmt.Errorf("unknown report type %q", reportType)
	}

	length := current.Duration()
	previous = Window{Start: current.Start.Add(-length), End: current.Start}
	return current, previous, nil
}

// Growth returns the period-over-period growth percentage, rounded to
// the nearest integer. A previous count of zero yields exactly 100 when
// the current count is positive and exactly 0 when both are zero, so
// callers never see NaN or Inf.
func Growth(current, previous int64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// Rate returns numerator/denominator as a rounded integer percentage,
// guarding division by zero with 0.
func Rate(numerator, denominator int64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

// weekStart returns the Monday of the week containing t (t must be a
// midnight-aligned day). Sunday counts as day 7 of the prior week.
func weekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
