package cmos

import (
	"fmt"
	"time"
)

// DateTime is one consistent clock snapshot: every field sampled from the
// same hardware update cycle. Hours are 0-23, the year is four digits.
// Plain data, owned by the caller once produced.
type DateTime struct {
	Year    int
	Month   byte
	Day     byte
	Weekday byte // 1=Sunday..7=Saturday; 0 when not sampled
	Hour    byte
	Minute  byte
	Second  byte
}

// String formats the snapshot per ISO 8601 at seconds precision.
func (dt DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ",
		dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

// IsValid reports whether the fields form a real calendar date and time,
// accounting for month lengths and leap years. A chip with a dead battery
// can hand back in-format garbage that the reader has no way to reject;
// this is the caller's sanity check.
func (dt DateTime) IsValid() bool {
	if dt.Month < 1 || dt.Month > 12 {
		return false
	}
	if dt.Hour > 23 || dt.Minute > 59 || dt.Second > 59 {
		return false
	}
	return dt.Day >= 1 && dt.Day <= daysIn(dt.Year, dt.Month)
}

func daysIn(year int, month byte) byte {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	}
}

// Compare orders two snapshots chronologically, returning -1, 0 or +1.
func (dt DateTime) Compare(other DateTime) int {
	a := [6]int{dt.Year, int(dt.Month), int(dt.Day), int(dt.Hour), int(dt.Minute), int(dt.Second)}
	b := [6]int{other.Year, int(other.Month), int(other.Day), int(other.Hour), int(other.Minute), int(other.Second)}
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// Time converts the snapshot to a time.Time in UTC. The hardware knows
// nothing of timezones; reinterpreting the clock as local time is up to
// the caller.
func (dt DateTime) Time() time.Time {
	return time.Date(dt.Year, time.Month(dt.Month), int(dt.Day),
		int(dt.Hour), int(dt.Minute), int(dt.Second), 0, time.UTC)
}

// FromTime builds a DateTime from t, truncated to seconds, in t's location.
func FromTime(t time.Time) DateTime {
	return DateTime{
		Year:    t.Year(),
		Month:   byte(t.Month()),
		Day:     byte(t.Day()),
		Weekday: byte(t.Weekday()) + 1,
		Hour:    byte(t.Hour()),
		Minute:  byte(t.Minute()),
		Second:  byte(t.Second()),
	}
}
