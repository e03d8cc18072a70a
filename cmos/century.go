package cmos

import "fmt"

// CenturyPolicy tells the reader how to turn the hardware's two-digit year
// into four digits. Legacy chips have no architecturally fixed century
// register; when the platform exposes one (the ACPI FADT names its address,
// CMOS_REG_CENTURY by convention) use CenturyRegister, otherwise AssumeYear.
//
// A policy is immutable and passed per call, never stored in the Chip.
type CenturyPolicy struct {
	register byte
	refYear  int
	fromReg  bool
}

// CenturyRegister reads the century digits from CMOS register idx during
// the snapshot, inside the same consistency window as the time fields.
func CenturyRegister(idx byte) CenturyPolicy {
	return CenturyPolicy{register: idx, fromReg: true}
}

// AssumeYear borrows the century component of refYear and splices in the
// hardware's two-digit year: year = 100*(refYear/100) + yy. A stale refYear
// across a century rollover yields the wrong century silently; keeping the
// reference recent is the caller's responsibility.
func AssumeYear(refYear int) CenturyPolicy {
	return CenturyPolicy{refYear: refYear}
}

func (p CenturyPolicy) validate() error {
	if p.fromReg && p.register > CMOS_INDEX_MASK {
		return fmt.Errorf("century register 0x%02x: %w", p.register, ErrInvalidRegister)
	}
	return nil
}

// fullYear combines a decoded two-digit year and decoded century value
// (ignored unless the policy reads a register) into a four-digit year.
func (p CenturyPolicy) fullYear(twoDigit, century byte) int {
	if p.fromReg {
		return 100*int(century) + int(twoDigit)
	}
	return 100*(p.refYear/100) + int(twoDigit)
}
