package devsize

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Sectors returns the size of the block device at path in 512-byte
// sectors. Regular files are measured with stat, so image files can stand
// in for devices.
func Sectors(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if fi.Mode().IsRegular() {
		return fi.Size() / 512, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	size, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKGETSIZE64)
	if err != nil {
		return 0, fmt.Errorf("BLKGETSIZE64 %s: %v", path, err)
	}
	return int64(size) / 512, nil
}
