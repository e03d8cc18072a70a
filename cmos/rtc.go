package cmos

import "fmt"

// statusFormat captures the encoding bits of status register B for one
// snapshot attempt. Read once per attempt and never re-read mid-snapshot,
// for consistency with the one frozen staging window.
type statusFormat struct {
	binary bool // data-mode bit set: raw binary rather than packed BCD
	hour24 bool
}

func formatFromStatusB(b byte) statusFormat {
	return statusFormat{
		binary: b&RTC_B_DM != 0,
		hour24: b&RTC_B_2412 != 0,
	}
}

// rawClock holds the undecoded register bytes of one field batch.
type rawClock struct {
	second  byte
	minute  byte
	hour    byte
	day     byte
	month   byte
	year    byte
	century byte
}

// UpdateInProgress reports whether the clock is inside its once-per-second
// register refresh. The chip freezes register contents into a consistent
// staging area at each second boundary but signals the transition window
// via this single status-A bit; time registers read while it is set may be
// torn across the constituent bytes.
func (c *Chip) UpdateInProgress() (bool, error) {
	v, err := c.readReg(RTC_REG_A)
	if err != nil {
		return false, err
	}
	return v&RTC_A_UIP != 0, nil
}

// waitUntilStable busy-polls the update flag until it clears or the spin
// budget runs out.
func (c *Chip) waitUntilStable() error {
	for i := 0; i < c.spins; i++ {
		busy, err := c.UpdateInProgress()
		if err != nil {
			return err
		}
		if !busy {
			return nil
		}
	}
	return fmt.Errorf("update flag stuck after %d polls: %w", c.spins, ErrUnstableRead)
}

// ReadClock produces one consistent snapshot of the clock.
//
// Each attempt waits for the update window to close, reads status register
// B and then the time fields in fixed order, and re-checks the update flag
// afterwards: if an update began during the reads the batch may mix pre-
// and post-tick values and is discarded. Attempts are bounded; exhausting
// either budget surfaces ErrUnstableRead. A misconfigured CenturyRegister
// policy surfaces ErrInvalidRegister before any port traffic.
func (c *Chip) ReadClock(policy CenturyPolicy) (DateTime, error) {
	if err := policy.validate(); err != nil {
		return DateTime{}, err
	}
	for attempt := 0; attempt < c.retries; attempt++ {
		if err := c.waitUntilStable(); err != nil {
			return DateTime{}, err
		}
		raw, format, err := c.readClockFields(policy)
		if err != nil {
			return DateTime{}, err
		}
		busy, err := c.UpdateInProgress()
		if err != nil {
			return DateTime{}, err
		}
		if busy {
			// An update started mid-batch; the fields may be torn.
			continue
		}
		return normalize(raw, format, policy), nil
	}
	return DateTime{}, fmt.Errorf("field batch torn %d times: %w", c.retries, ErrUnstableRead)
}

// readClockFields reads status B and the raw field batch in fixed order.
// The century register, when the policy names one, is read inside the same
// window so torn-read detection covers it too.
func (c *Chip) readClockFields(policy CenturyPolicy) (rawClock, statusFormat, error) {
	b, err := c.readReg(RTC_REG_B)
	if err != nil {
		return rawClock{}, statusFormat{}, err
	}
	format := formatFromStatusB(b)

	var raw rawClock
	for _, f := range []struct {
		reg byte
		dst *byte
	}{
		{RTC_REG_SECONDS, &raw.second},
		{RTC_REG_MINUTES, &raw.minute},
		{RTC_REG_HOURS, &raw.hour},
		{RTC_REG_DAY_OF_MONTH, &raw.day},
		{RTC_REG_MONTH, &raw.month},
		{RTC_REG_YEAR, &raw.year},
	} {
		v, err := c.readReg(f.reg)
		if err != nil {
			return rawClock{}, statusFormat{}, err
		}
		*f.dst = v
	}
	if policy.fromReg {
		v, err := c.readReg(policy.register)
		if err != nil {
			return rawClock{}, statusFormat{}, err
		}
		raw.century = v
	}
	return raw, format, nil
}

// normalize decodes one raw batch into a DateTime: BCD decode when the
// format says so (with the PM flag masked out of the hours byte first),
// 12-to-24-hour conversion, then century resolution.
func normalize(raw rawClock, format statusFormat, policy CenturyPolicy) DateTime {
	pm := raw.hour&RTC_HOUR_PM_BIT != 0
	hour := raw.hour
	if !format.hour24 {
		hour &= RTC_HOUR_MASK // the PM flag is not a value nibble
	}
	if !format.binary {
		raw.second = DecodeBCD(raw.second)
		raw.minute = DecodeBCD(raw.minute)
		hour = DecodeBCD(hour)
		raw.day = DecodeBCD(raw.day)
		raw.month = DecodeBCD(raw.month)
		raw.year = DecodeBCD(raw.year)
		raw.century = DecodeBCD(raw.century)
	}
	if !format.hour24 {
		// 12 AM is midnight, 12 PM stays noon, PM otherwise adds 12,
		// AM 1-11 pass through.
		switch {
		case pm && hour != 12:
			hour += 12
		case !pm && hour == 12:
			hour = 0
		}
	}
	return DateTime{
		Year:   policy.fullYear(raw.year, raw.century),
		Month:  raw.month,
		Day:    raw.day,
		Hour:   hour,
		Minute: raw.minute,
		Second: raw.second,
	}
}

// WriteClock sets the clock to dt, encoding the fields per the chip's
// current status-B format. The SET bit of status B is raised around the
// field writes so the divider chain cannot commit a half-written time,
// and dropped again afterwards even if a write fails. When the policy is
// CenturyRegister the century byte is written too; the weekday register is
// written only when dt carries one.
func (c *Chip) WriteClock(dt DateTime, policy CenturyPolicy) error {
	if err := policy.validate(); err != nil {
		return err
	}
	b, err := c.readReg(RTC_REG_B)
	if err != nil {
		return err
	}
	format := formatFromStatusB(b)
	if err := c.writeReg(RTC_REG_B, b|RTC_B_SET); err != nil {
		return err
	}

	encode := func(v byte) byte {
		if format.binary {
			return v
		}
		return EncodeBCD(v)
	}
	hour := dt.Hour
	var pmBit byte
	if !format.hour24 {
		// Fold 0-23 into 1-12 plus the PM flag.
		switch {
		case hour == 0:
			hour = 12
		case hour == 12:
			pmBit = RTC_HOUR_PM_BIT
		case hour > 12:
			hour -= 12
			pmBit = RTC_HOUR_PM_BIT
		}
	}

	writes := [][2]byte{
		{RTC_REG_SECONDS, encode(dt.Second)},
		{RTC_REG_MINUTES, encode(dt.Minute)},
		{RTC_REG_HOURS, encode(hour) | pmBit},
		{RTC_REG_DAY_OF_MONTH, encode(dt.Day)},
		{RTC_REG_MONTH, encode(dt.Month)},
		{RTC_REG_YEAR, encode(byte(dt.Year % 100))},
	}
	if dt.Weekday != 0 {
		writes = append(writes, [2]byte{RTC_REG_DAY_OF_WEEK, encode(dt.Weekday)})
	}
	if policy.fromReg {
		writes = append(writes, [2]byte{policy.register, encode(byte(dt.Year / 100))})
	}

	var firstErr error
	for _, w := range writes {
		if err := c.writeReg(w[0], w[1]); err != nil {
			firstErr = err
			break
		}
	}
	// Restart the update cycle regardless of how the writes went.
	if err := c.writeReg(RTC_REG_B, b&^RTC_B_SET); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
