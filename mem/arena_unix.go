//go:build unix

package mem

import (
	"errors"

	"golang.org/x/sys/unix"
)

// mapRegion maps size bytes of zeroed anonymous memory.
func mapRegion(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
}

// unmapRegion releases a region obtained from mapRegion.
func unmapRegion(region []byte) error {
	if region == nil {
		return nil
	}
	err := unix.Munmap(region)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
