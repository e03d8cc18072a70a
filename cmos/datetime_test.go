package cmos_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"example.com/cmosdrv/cmos"
)

func TestDateTimeIsValid(t *testing.T) {
	c := qt.New(t)
	for _, tt := range []struct {
		name string
		dt   cmos.DateTime
		want bool
	}{
		{"ordinary date", cmos.DateTime{Year: 2023, Month: 6, Day: 15, Hour: 13, Minute: 37, Second: 42}, true},
		{"leap day on leap year", cmos.DateTime{Year: 2024, Month: 2, Day: 29}, true},
		{"leap day off leap year", cmos.DateTime{Year: 2023, Month: 2, Day: 29}, false},
		{"century non-leap", cmos.DateTime{Year: 1900, Month: 2, Day: 29}, false},
		{"quadricentennial leap", cmos.DateTime{Year: 2000, Month: 2, Day: 29}, true},
		{"month 13", cmos.DateTime{Year: 2023, Month: 13, Day: 1}, false},
		{"month 0", cmos.DateTime{Year: 2023, Month: 0, Day: 1}, false},
		{"day 31 in april", cmos.DateTime{Year: 2023, Month: 4, Day: 31}, false},
		{"day 0", cmos.DateTime{Year: 2023, Month: 4, Day: 0}, false},
		{"hour 24", cmos.DateTime{Year: 2023, Month: 4, Day: 1, Hour: 24}, false},
		{"second 60", cmos.DateTime{Year: 2023, Month: 4, Day: 1, Second: 60}, false},
	} {
		c.Run(tt.name, func(c *qt.C) {
			c.Assert(tt.dt.IsValid(), qt.Equals, tt.want)
		})
	}
}

func TestDateTimeString(t *testing.T) {
	c := qt.New(t)
	dt := cmos.DateTime{Year: 2023, Month: 6, Day: 5, Hour: 8, Minute: 4, Second: 9}
	c.Assert(dt.String(), qt.Equals, "2023-06-05T08:04:09Z")
}

func TestDateTimeCompare(t *testing.T) {
	c := qt.New(t)
	a := cmos.DateTime{Year: 2023, Month: 6, Day: 15, Hour: 13, Minute: 37, Second: 42}
	b := a
	c.Assert(a.Compare(b), qt.Equals, 0)
	b.Second = 43
	c.Assert(a.Compare(b), qt.Equals, -1)
	c.Assert(b.Compare(a), qt.Equals, 1)
	b = a
	b.Year = 1999
	c.Assert(a.Compare(b), qt.Equals, 1)
}

func TestDateTimeTimeRoundTrip(t *testing.T) {
	c := qt.New(t)
	in := time.Date(2024, 2, 29, 23, 59, 58, 0, time.UTC)
	dt := cmos.FromTime(in)
	c.Assert(dt.Weekday, qt.Equals, byte(5)) // 2024-02-29 was a Thursday
	c.Assert(dt.Time(), qt.Equals, in)
}
