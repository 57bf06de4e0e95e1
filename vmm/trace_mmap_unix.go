//go:build linux || darwin

package vmm

import (
	"os"

	"golang.org/x/sys/unix"
)

// readFileMapped reads a plain trace file through a read-only memory mapping.
// Trace files can run to hundreds of megabytes; mapping avoids double
// buffering through the page cache. The bytes are copied out before unmapping
// so the returned slice owns its memory.
func readFileMapped(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrTraceNotFound("readFileMapped", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, ErrTraceNotFound("readFileMapped", path, err)
	}

	size := info.Size()
	if size == 0 {
		return nil, nil
	}

	mapped, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		// Mapping can fail on exotic filesystems; fall back to a plain read
		return os.ReadFile(path)
	}
	defer unix.Munmap(mapped)

	data := make([]byte, size)
	copy(data, mapped)
	return data, nil
}
