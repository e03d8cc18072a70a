package cmos_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"example.com/cmosdrv/cmos"
)

func TestBCDRoundTrip(t *testing.T) {
	c := qt.New(t)
	for n := byte(0); n <= 99; n++ {
		c.Assert(cmos.DecodeBCD(cmos.EncodeBCD(n)), qt.Equals, n)
	}
}

func TestBCDKnownValues(t *testing.T) {
	c := qt.New(t)
	c.Assert(cmos.DecodeBCD(0x59), qt.Equals, byte(59))
	c.Assert(cmos.DecodeBCD(0x00), qt.Equals, byte(0))
	c.Assert(cmos.DecodeBCD(0x23), qt.Equals, byte(23))
	c.Assert(cmos.EncodeBCD(7), qt.Equals, byte(0x07))
	c.Assert(cmos.EncodeBCD(99), qt.Equals, byte(0x99))
}
