// Package cmos drives the legacy CMOS/RTC chip behind the 0x70/0x71
// index/data port pair: a consistent-snapshot clock reader and writer plus
// raw access to the general CMOS bytes.
package cmos

import (
	"fmt"

	"example.com/cmosdrv/port"
)

// Spin and retry budgets for the clock reader. All waiting is busy-polling
// with a bounded iteration count - no OS timer is assumed available - so a
// timeout is purely exhausting the budget.
const (
	DefaultSpinBudget  = 200000
	DefaultRetryBudget = 8
)

// Chip drives one CMOS/RTC device through its IO capability, which it owns
// exclusively for ports 0x70/0x71.
//
// Access is single-context by contract: no mutual exclusion is provided
// here, and a clock snapshot is only consistent if no other accessor
// activity interleaves on the same device. The embedding system guarantees
// that (one Chip per device, externally lock-guarded if shared), mirroring
// the trust model of direct hardware access.
type Chip struct {
	io         port.IO
	disableNMI bool
	spins      int
	retries    int
}

// New returns a Chip with default budgets that raises the NMI-disable bit
// on every index write, the conventional behavior for clock access.
func New(io port.IO) *Chip {
	return &Chip{
		io:         io,
		disableNMI: true,
		spins:      DefaultSpinBudget,
		retries:    DefaultRetryBudget,
	}
}

// SetNMIMask controls whether Select raises the NMI-disable bit on the
// index port. Leaving NMI enabled mid-transaction is legal but means an
// NMI handler touching CMOS can clobber the selected index.
func (c *Chip) SetNMIMask(disable bool) {
	c.disableNMI = disable
}

// SetBudgets overrides the update-guard spin budget and the torn-read
// retry budget. Non-positive values keep the current setting.
func (c *Chip) SetBudgets(spins, retries int) {
	if spins > 0 {
		c.spins = spins
	}
	if retries > 0 {
		c.retries = retries
	}
}

// Select latches register index reg on the index port. The top bit of the
// written byte carries the NMI-disable flag and is not part of the address.
// reg must be 0x00-0x7F; this layer trusts the caller and does not check,
// mirroring direct hardware access. No retries: one immediate port write.
func (c *Chip) Select(reg byte) error {
	v := reg & CMOS_INDEX_MASK
	if c.disableNMI {
		v |= CMOS_NMI_DISABLE
	}
	if err := c.io.Out(CMOS_PORT_INDEX, v); err != nil {
		return fmt.Errorf("select register 0x%02x: %w", reg, err)
	}
	return nil
}

// ReadSelected transfers one byte from the data port for the register most
// recently latched by Select.
func (c *Chip) ReadSelected() (byte, error) {
	return c.io.In(CMOS_PORT_DATA)
}

// WriteSelected transfers one byte to the data port for the register most
// recently latched by Select.
func (c *Chip) WriteSelected(v byte) error {
	return c.io.Out(CMOS_PORT_DATA, v)
}

func (c *Chip) readReg(reg byte) (byte, error) {
	if err := c.Select(reg); err != nil {
		return 0, err
	}
	return c.ReadSelected()
}

func (c *Chip) writeReg(reg, v byte) error {
	if err := c.Select(reg); err != nil {
		return err
	}
	return c.WriteSelected(v)
}

// ReadByte returns one byte of CMOS memory. Straight passthrough, no
// consistency logic: RTC fields read this way can be torn by an update
// cycle - use ReadClock for those.
func (c *Chip) ReadByte(addr byte) (byte, error) {
	if addr > CMOS_INDEX_MASK {
		return 0, fmt.Errorf("read 0x%02x: %w", addr, ErrInvalidRegister)
	}
	return c.readReg(addr)
}

// WriteByte stores one byte of CMOS memory. Same trust model as ReadByte.
func (c *Chip) WriteByte(addr, v byte) error {
	if addr > CMOS_INDEX_MASK {
		return fmt.Errorf("write 0x%02x: %w", addr, ErrInvalidRegister)
	}
	return c.writeReg(addr, v)
}

// Dump copies the whole 128-byte CMOS image.
func (c *Chip) Dump() ([CMOS_SIZE]byte, error) {
	var img [CMOS_SIZE]byte
	for i := 0; i < CMOS_SIZE; i++ {
		v, err := c.readReg(byte(i))
		if err != nil {
			return img, fmt.Errorf("dump at 0x%02x: %w", i, err)
		}
		img[i] = v
	}
	return img, nil
}

// Restore writes a full 128-byte image back. The clock keeps running
// underneath; time fields restored mid-update can tear, so prefer
// WriteClock for those.
func (c *Chip) Restore(img *[CMOS_SIZE]byte) error {
	for i := 0; i < CMOS_SIZE; i++ {
		if err := c.writeReg(byte(i), img[i]); err != nil {
			return fmt.Errorf("restore at 0x%02x: %w", i, err)
		}
	}
	return nil
}

// Checksum computes the standard ISA configuration checksum: the 16-bit
// sum of bytes 0x10-0x2D.
func (c *Chip) Checksum() (uint16, error) {
	var sum uint16
	for reg := CMOS_CHECKSUM_FROM; reg <= CMOS_CHECKSUM_TO; reg++ {
		v, err := c.readReg(reg)
		if err != nil {
			return 0, err
		}
		sum += uint16(v)
	}
	return sum, nil
}

// StoredChecksum reads the checksum recorded at 0x2E/0x2F (big-endian).
func (c *Chip) StoredChecksum() (uint16, error) {
	hi, err := c.readReg(CMOS_CHECKSUM_HIGH)
	if err != nil {
		return 0, err
	}
	lo, err := c.readReg(CMOS_CHECKSUM_LOW)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// UpdateChecksum recomputes the configuration checksum and stores it.
func (c *Chip) UpdateChecksum() error {
	sum, err := c.Checksum()
	if err != nil {
		return err
	}
	if err := c.writeReg(CMOS_CHECKSUM_HIGH, byte(sum>>8)); err != nil {
		return err
	}
	return c.writeReg(CMOS_CHECKSUM_LOW, byte(sum))
}
