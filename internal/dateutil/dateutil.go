// Package dateutil provides date and time parsing utilities.
package dateutil

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted on the command line and in import files.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
	ClockLayout    = "15:04"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD or YYYY-MM-DD HH:MM format")
	ErrInvalidDuration    = errors.New("duration must look like 90m, 24h, 3d or 2w")
	ErrEndDateBeforeStart = errors.New("end must be on or after start")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Range is a validated [Start, End] time range.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange parses both ends with ParseDateTime and validates their order.
// An empty end defaults to the end of the start day.
func NewRange(start, end string, relativeTo time.Time) (*Range, error) {
	s, err := ParseDateTime(start, relativeTo)
	if err != nil {
		return nil, err
	}

	var e time.Time
	if strings.TrimSpace(end) == "" {
		e = EndOfDay(s)
	} else {
		e, err = ParseDateTime(end, relativeTo)
		if err != nil {
			return nil, err
		}
	}

	if e.Before(s) {
		return nil, ErrEndDateBeforeStart
	}
	return &Range{Start: s, End: e}, nil
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseDateTime parses a point in time in the location of relativeTo.
// Accepted forms (case-insensitive):
//   - "now", or empty: relativeTo
//   - "today", "tomorrow": midnight of that day
//   - weekday names: midnight of the next occurrence
//   - "HH:MM": that time today
//   - "YYYY-MM-DD", "YYYY-MM-DD HH:MM", "YYYY-MM-DDTHH:MM"
//   - "+DURATION": relativeTo plus a duration accepted by ParseDuration
func ParseDateTime(s string, relativeTo time.Time) (time.Time, error) {
	input := strings.ToLower(strings.TrimSpace(s))
	today := TruncateToDay(relativeTo)
	loc := relativeTo.Location()

	switch input {
	case "", "now":
		return relativeTo, nil
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	if strings.HasPrefix(input, "+") {
		d, err := ParseDuration(input[1:])
		if err != nil {
			return time.Time{}, err
		}
		return relativeTo.Add(d), nil
	}

	if clock, err := time.ParseInLocation(ClockLayout, input, loc); err == nil && len(input) == 5 {
		return today.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
	}

	input = strings.Replace(input, "t", " ", 1)
	for _, layout := range []string{DateTimeLayout, DateLayout} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}

// ParseDuration extends time.ParseDuration with day ("d") and week ("w")
// units, e.g. "3d" or "1w2d". Negative durations are rejected.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalidDuration
	}

	var total time.Duration
	rest := s
	for _, unit := range []struct {
		suffix string
		size   time.Duration
	}{{"w", 7 * 24 * time.Hour}, {"d", 24 * time.Hour}} {
		i := strings.Index(rest, unit.suffix)
		if i < 0 {
			continue
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil || n < 0 {
			return 0, ErrInvalidDuration
		}
		total += time.Duration(n) * unit.size
		rest = rest[i+1:]
	}

	if rest != "" {
		d, err := time.ParseDuration(rest)
		if err != nil || d < 0 {
			return 0, ErrInvalidDuration
		}
		total += d
	}
	return total, nil
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last minute of t's day.
func EndOfDay(t time.Time) time.Time {
	return TruncateToDay(t).AddDate(0, 0, 1).Add(-time.Minute)
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
