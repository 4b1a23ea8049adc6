package taskflow

import "time"

// Pattern names match the values the clients send; "Daily" really is
// capitalized on the wire while the others are not.
type Pattern string

const (
	PatternDaily  Pattern = "Daily"
	PatternWeekly Pattern = "weekly"
	PatternCustom Pattern = "custom"
)

type Frequency string

const (
	FrequencyDays   Frequency = "days"
	FrequencyWeeks  Frequency = "weeks"
	FrequencyMonths Frequency = "months"
)

// CustomRecurrence drives the custom pattern's step function.
type CustomRecurrence struct {
	Frequency Frequency
	Interval  int
}

// MaxOccurrenceCeiling caps every generated series regardless of pattern.
const MaxOccurrenceCeiling = 365

// DefaultOccurrences is the per-pattern occurrence count callers use when a
// task creation request doesn't specify one.
func DefaultOccurrences(p Pattern) int {
	switch p {
	case PatternWeekly:
		return 5
	case PatternCustom:
		return 10
	default:
		return 30
	}
}

// Occurrences expands a recurrence into the ordered due dates of a series,
// starting with start itself. Generation stops when the sequence reaches
// maxOccurrences or when the next computed date would pass end (that date is
// discarded). An unknown pattern, or a custom pattern with no recurrence
// parameters, silently falls back to stepping by interval days.
func Occurrences(start time.Time, p Pattern, interval, maxOccurrences int, end *time.Time, custom *CustomRecurrence) []time.Time {
	if maxOccurrences <= 0 {
		return []time.Time{}
	}
	if maxOccurrences > MaxOccurrenceCeiling {
		maxOccurrences = MaxOccurrenceCeiling
	}
	if interval <= 0 {
		interval = 1
	}
	if end != nil && start.After(*end) {
		return []time.Time{}
	}
	dates := make([]time.Time, 0, maxOccurrences)
	current := start
	dates = append(dates, current)
	for len(dates) < maxOccurrences {
		next := step(current, p, interval, custom)
		if end != nil && next.After(*end) {
			break
		}
		dates = append(dates, next)
		current = next
	}
	return dates
}

func step(current time.Time, p Pattern, interval int, custom *CustomRecurrence) time.Time {
	switch p {
	case PatternWeekly:
		return current.AddDate(0, 0, interval*7)
	case PatternCustom:
		if custom == nil || custom.Interval <= 0 {
			return current.AddDate(0, 0, interval)
		}
		switch custom.Frequency {
		case FrequencyWeeks:
			return current.AddDate(0, 0, custom.Interval*7)
		case FrequencyMonths:
			return addMonthsClamped(current, custom.Interval)
		default:
			return current.AddDate(0, 0, custom.Interval)
		}
	default:
		return current.AddDate(0, 0, interval)
	}
}

// addMonthsClamped advances by whole calendar months, clamping to the last
// day of the target month instead of letting the date roll over (Jan 31 + 1
// month is Feb 28, not Mar 3).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	shifted := first.AddDate(0, months, 0)
	lastDay := daysIn(shifted.Year(), shifted.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(shifted.Year(), shifted.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
