package cmos

// Legacy CMOS/RTC I/O Port Addresses (uint16 for compatibility with port argument)
const (
	CMOS_PORT_INDEX uint16 = 0x70 // Index/Address Register (bit 7 doubles as NMI disable)
	CMOS_PORT_DATA  uint16 = 0x71 // Data Register
)

// RTC register indices within the CMOS address space
const (
	RTC_REG_SECONDS       byte = 0x00
	RTC_REG_ALARM_SECONDS byte = 0x01
	RTC_REG_MINUTES       byte = 0x02
	RTC_REG_ALARM_MINUTES byte = 0x03
	RTC_REG_HOURS         byte = 0x04
	RTC_REG_ALARM_HOURS   byte = 0x05
	RTC_REG_DAY_OF_WEEK   byte = 0x06
	RTC_REG_DAY_OF_MONTH  byte = 0x07
	RTC_REG_MONTH         byte = 0x08
	RTC_REG_YEAR          byte = 0x09

	RTC_REG_A byte = 0x0A // Status Register A
	RTC_REG_B byte = 0x0B // Status Register B
	RTC_REG_C byte = 0x0C // Status Register C (flags, cleared on read)
	RTC_REG_D byte = 0x0D // Status Register D
)

// RTC_REG_A bits
const (
	RTC_A_UIP byte = 0x80 // Update In Progress (Read-Only)
	// DV2-DV0 divider and RS3-RS0 rate-selection bits occupy the rest
)

// RTC_REG_B bits
const (
	RTC_B_SET  byte = 0x80 // SET bit - inhibits the update cycle while 1
	RTC_B_PIE  byte = 0x40 // Periodic Interrupt Enable
	RTC_B_AIE  byte = 0x20 // Alarm Interrupt Enable
	RTC_B_UIE  byte = 0x10 // Update Ended Interrupt Enable
	RTC_B_SQWE byte = 0x08 // Square Wave Enable
	RTC_B_DM   byte = 0x04 // Data Mode (0=BCD, 1=Binary)
	RTC_B_2412 byte = 0x02 // 24/12 Hour Mode (0=12hr, 1=24hr)
	RTC_B_DSE  byte = 0x01 // Daylight Savings Enable
)

// RTC_REG_C bits (read to clear)
const (
	RTC_C_IRQF byte = 0x80 // Interrupt Request Flag
	RTC_C_PF   byte = 0x40 // Periodic Interrupt Flag
	RTC_C_AF   byte = 0x20 // Alarm Interrupt Flag
	RTC_C_UF   byte = 0x10 // Update Ended Interrupt Flag
)

// RTC_REG_D bits
const (
	RTC_D_VRT byte = 0x80 // Valid RAM and Time (battery good)
)

// Hours-register format bits, meaningful in 12-hour mode only
const (
	RTC_HOUR_PM_BIT byte = 0x80 // AM/PM flag; not part of the BCD value
	RTC_HOUR_MASK   byte = 0x7F
)

// Index-port bits
const (
	CMOS_NMI_DISABLE byte = 0x80 // shares the index port's top bit
	CMOS_INDEX_MASK  byte = 0x7F
)

// Conventional addresses outside the clock proper
const (
	CMOS_REG_CENTURY byte = 0x32 // common but not universal; the ACPI FADT names the real one

	CMOS_CHECKSUM_HIGH byte = 0x2E // standard ISA checksum, stored big-endian
	CMOS_CHECKSUM_LOW  byte = 0x2F
	CMOS_CHECKSUM_FROM byte = 0x10 // first byte covered by the checksum
	CMOS_CHECKSUM_TO   byte = 0x2D // last byte covered (inclusive)

	CMOS_SIZE = 128 // bytes reachable through the legacy index port
)
