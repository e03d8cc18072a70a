package cmos

import "errors"

var (
	// ErrUnstableRead means the clock's update-in-progress flag never
	// cleared, or kept reappearing mid-read, within the configured
	// spin and retry budgets.
	ErrUnstableRead = errors.New("cmos: rtc update never settled within budget")

	// ErrInvalidRegister means a caller-supplied register index lies
	// outside the 0x00-0x7F CMOS address space.
	ErrInvalidRegister = errors.New("cmos: register index out of range")
)
