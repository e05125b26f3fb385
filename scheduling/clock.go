package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The business runs in one fixed civil timezone. Every date comparison in
// this package goes through these helpers with an explicit *time.Location;
// nothing here ever consults server-local time.

// CivilDate truncates t to midnight of its calendar day in loc.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayWindow returns the half-open interval [00:00, 24:00) covering the
// civil day of date in loc.
func DayWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := CivilDate(date, loc)
	return start, start.AddDate(0, 0, 1)
}

// ParseDate parses a YYYY-MM-DD string as a civil date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// SameCivilDay reports whether a and b fall on the same calendar day in loc.
func SameCivilDay(a, b time.Time, loc *time.Location) bool {
	return CivilDate(a, loc).Equal(CivilDate(b, loc))
}
