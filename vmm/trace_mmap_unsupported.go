//go:build !linux && !darwin

package vmm

import (
	"os"
)

// readFileMapped falls back to a plain read on platforms without unix mmap
func readFileMapped(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrTraceNotFound("readFileMapped", path, err)
	}
	return data, nil
}
