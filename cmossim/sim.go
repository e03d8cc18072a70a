// Package cmossim emulates a legacy CMOS/RTC chip behind the port.IO
// interface: a 128-byte register file addressed through the 0x70/0x71
// index/data pair, with the status-register quirks the driver depends on.
// It backs the driver tests and lets cmosctl run without hardware.
package cmossim

import (
	"fmt"
	"sync"
	"time"

	"example.com/cmosdrv/cmos"
	"example.com/cmosdrv/port"
)

// Chip is the emulated device. The zero value is unusable; call New.
type Chip struct {
	mu sync.Mutex

	registers [cmos.CMOS_SIZE]byte
	index     byte // latched by writes to the index port
	nmiOff    bool // last index write carried the NMI-disable bit

	// uip supplies the update-in-progress bit per status-A read. When the
	// script is exhausted its last value repeats; when both are unset the
	// bit reads as clear.
	uipScript []bool
	uipPos    int
	uipFunc   func(read int) bool
	uipReads  int
}

var _ port.IO = (*Chip)(nil)

// New returns a chip with sane power-on defaults: 24-hour BCD mode,
// valid-RAM bit set, update flag clear.
func New() *Chip {
	c := &Chip{}
	c.registers[cmos.RTC_REG_A] = 0x26 // divider on, 1024 Hz rate
	c.registers[cmos.RTC_REG_B] = cmos.RTC_B_2412
	c.registers[cmos.RTC_REG_D] = cmos.RTC_D_VRT
	return c
}

// In models a byte read from one of the two device ports.
func (c *Chip) In(p uint16) (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch p {
	case cmos.CMOS_PORT_INDEX:
		// Reading the index back is legal on most chips.
		return c.index, nil
	case cmos.CMOS_PORT_DATA:
		return c.readData(), nil
	default:
		return 0, fmt.Errorf("cmossim: no device at port 0x%02x", p)
	}
}

// Out models a byte write to one of the two device ports.
func (c *Chip) Out(p uint16, v byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch p {
	case cmos.CMOS_PORT_INDEX:
		c.index = v & cmos.CMOS_INDEX_MASK
		c.nmiOff = v&cmos.CMOS_NMI_DISABLE != 0
		return nil
	case cmos.CMOS_PORT_DATA:
		c.writeData(v)
		return nil
	default:
		return fmt.Errorf("cmossim: no device at port 0x%02x", p)
	}
}

func (c *Chip) readData() byte {
	switch c.index {
	case cmos.RTC_REG_A:
		v := c.registers[cmos.RTC_REG_A] &^ cmos.RTC_A_UIP
		if c.nextUIP() {
			v |= cmos.RTC_A_UIP
		}
		return v
	case cmos.RTC_REG_C:
		// Interrupt flags clear on read.
		v := c.registers[cmos.RTC_REG_C]
		c.registers[cmos.RTC_REG_C] = 0
		return v
	case cmos.RTC_REG_D:
		return c.registers[cmos.RTC_REG_D] | cmos.RTC_D_VRT
	default:
		return c.registers[c.index]
	}
}

func (c *Chip) writeData(v byte) {
	switch c.index {
	case cmos.RTC_REG_A:
		c.registers[c.index] = v &^ cmos.RTC_A_UIP // UIP is read-only
	case cmos.RTC_REG_C, cmos.RTC_REG_D:
		// Read-only registers; writes are dropped.
	default:
		c.registers[c.index] = v
	}
}

func (c *Chip) nextUIP() bool {
	n := c.uipReads
	c.uipReads++
	if c.uipFunc != nil {
		return c.uipFunc(n)
	}
	if len(c.uipScript) == 0 {
		return false
	}
	v := c.uipScript[c.uipPos]
	if c.uipPos < len(c.uipScript)-1 {
		c.uipPos++
	}
	return v
}

// ScriptUIP programs the update-in-progress bit for successive status-A
// reads; the final value repeats once the script is consumed.
func (c *Chip) ScriptUIP(vals ...bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uipScript = vals
	c.uipPos = 0
	c.uipFunc = nil
	c.uipReads = 0
}

// SetUIPFunc supplies the update-in-progress bit as a function of the
// status-A read ordinal, for patterns a finite script cannot express.
func (c *Chip) SetUIPFunc(f func(read int) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uipFunc = f
	c.uipReads = 0
}

// SetModes flips the data-mode and hour-format bits of status register B.
func (c *Chip) SetModes(bcd, hour24 bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.registers[cmos.RTC_REG_B]
	if bcd {
		b &^= cmos.RTC_B_DM
	} else {
		b |= cmos.RTC_B_DM
	}
	if hour24 {
		b |= cmos.RTC_B_2412
	} else {
		b &^= cmos.RTC_B_2412
	}
	c.registers[cmos.RTC_REG_B] = b
}

// LoadTime stores t into the time registers, encoded per the modes
// currently selected in status register B, and puts the century digits at
// the conventional 0x32 register.
func (c *Chip) LoadTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := c.registers[cmos.RTC_REG_B]
	bcd := b&cmos.RTC_B_DM == 0
	hour24 := b&cmos.RTC_B_2412 != 0

	enc := func(v int) byte {
		if bcd {
			return cmos.EncodeBCD(byte(v))
		}
		return byte(v)
	}
	hour := t.Hour()
	var pm byte
	if !hour24 {
		switch {
		case hour == 0:
			hour = 12
		case hour == 12:
			pm = cmos.RTC_HOUR_PM_BIT
		case hour > 12:
			hour -= 12
			pm = cmos.RTC_HOUR_PM_BIT
		}
	}

	c.registers[cmos.RTC_REG_SECONDS] = enc(t.Second())
	c.registers[cmos.RTC_REG_MINUTES] = enc(t.Minute())
	c.registers[cmos.RTC_REG_HOURS] = enc(hour) | pm
	c.registers[cmos.RTC_REG_DAY_OF_WEEK] = enc(int(t.Weekday()) + 1)
	c.registers[cmos.RTC_REG_DAY_OF_MONTH] = enc(t.Day())
	c.registers[cmos.RTC_REG_MONTH] = enc(int(t.Month()))
	c.registers[cmos.RTC_REG_YEAR] = enc(t.Year() % 100)
	c.registers[cmos.CMOS_REG_CENTURY] = enc(t.Year() / 100)
}

// Poke stores a raw byte directly into the register file, bypassing the
// data-port write rules.
func (c *Chip) Poke(reg, v byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registers[reg&cmos.CMOS_INDEX_MASK] = v
}

// Peek reads a raw byte directly from the register file.
func (c *Chip) Peek(reg byte) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registers[reg&cmos.CMOS_INDEX_MASK]
}

// NMIDisabled reports whether the most recent index write carried the
// NMI-disable bit.
func (c *Chip) NMIDisabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nmiOff
}
