package domain

import (
	"fmt"
	"time"
)

// NormalizeTime converts caller-supplied local date/time components into a
// UTC instant. A nil loc means the local system zone at call time. Components
// that do not form a calendar-valid date/time (month 13, day 32, hour 24)
// fail with ErrInvalidTime.
//
// Pure: no side effects, and normalizing then reading the result back in the
// same zone reproduces the input components.
func NormalizeTime(year int, month, day, hour, min int, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	t := time.Date(year, time.Month(month), day, hour, min, 0, 0, loc)

	// time.Date silently normalizes overflow (month 13 becomes January of
	// the next year), so a round-trip comparison is the validity check.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != min {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d %02d:%02d",
			ErrInvalidTime, year, month, day, hour, min)
	}

	return t.UTC(), nil
}
