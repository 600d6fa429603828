//go:build !linux

package devsize

import "os"

// Sectors returns the size of the file at path in 512-byte sectors.
// Probing block devices is only implemented on Linux.
func Sectors(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size() / 512, nil
}
