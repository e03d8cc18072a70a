// Package port defines the privileged byte-wide port I/O capability and a
// Linux implementation of it. Everything above this package is plain logic;
// constructing an IO is the unsafe act.
package port

// IO performs single-byte transfers on x86 I/O ports.
//
// An IO value stands for exclusive logical ownership of the ports it
// reaches. The embedding system must guarantee it is never used from two
// execution contexts at once (one instance per core, or externally
// lock-guarded); nothing here enforces that.
type IO interface {
	In(port uint16) (byte, error)
	Out(port uint16, value byte) error
}
