//go:build linux

package port

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DevPort implements IO over the Linux /dev/port character device, where
// the file offset is the port address. Opening it requires CAP_SYS_RAWIO.
type DevPort struct {
	fd   int
	path string
}

// OpenDevPort opens the default /dev/port node.
func OpenDevPort() (*DevPort, error) {
	return OpenDevPortPath("/dev/port")
}

// OpenDevPortPath opens a specific port device node.
func OpenDevPortPath(path string) (*DevPort, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &DevPort{fd: fd, path: path}, nil
}

// In reads one byte from port.
func (d *DevPort) In(port uint16) (byte, error) {
	var buf [1]byte
	n, err := unix.Pread(d.fd, buf[:], int64(port))
	if err != nil {
		return 0, fmt.Errorf("inb 0x%02x via %s: %w", port, d.path, err)
	}
	if n != 1 {
		return 0, fmt.Errorf("inb 0x%02x via %s: short read (%d bytes)", port, d.path, n)
	}
	return buf[0], nil
}

// Out writes one byte to port.
func (d *DevPort) Out(port uint16, value byte) error {
	buf := [1]byte{value}
	n, err := unix.Pwrite(d.fd, buf[:], int64(port))
	if err != nil {
		return fmt.Errorf("outb 0x%02x via %s: %w", port, d.path, err)
	}
	if n != 1 {
		return fmt.Errorf("outb 0x%02x via %s: short write (%d bytes)", port, d.path, n)
	}
	return nil
}

// Close releases the device node. The DevPort must not be used afterwards.
func (d *DevPort) Close() error {
	return unix.Close(d.fd)
}
