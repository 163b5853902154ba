//go:build !unix

package mem

// mapRegion falls back to a heap slice when mmap is not available.
func mapRegion(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// unmapRegion lets the garbage collector reclaim the fallback region.
func unmapRegion([]byte) error {
	return nil
}
