// Package devsize determines, read-only, the geometry a FAT32 layout
// computation needs from an actual device: the volume size in sectors and
// the erase-block size the kernel exposes for the underlying flash medium.
package devsize

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var partitionRe = regexp.MustCompile(`^(/dev/(?:mmcblk|nvme\d+n|loop)\d+)p\d+$|^(/dev/(?:sd|hd|vd|xvd)[a-z])\d+$`)

// ParentDevice returns the whole-device path for a partition device node,
// e.g. /dev/mmcblk0p2 → /dev/mmcblk0 and /dev/sda2 → /dev/sda. Paths
// without a recognized partition suffix are returned unchanged.
func ParentDevice(dev string) string {
	matches := partitionRe.FindStringSubmatch(dev)
	if matches == nil {
		return dev
	}
	if matches[1] != "" {
		return matches[1]
	}
	return matches[2]
}

// overridden in tests
var sysBlock = "/sys/block"

// EraseBlockSize returns the erase-block size in bytes which the kernel
// exposes for the medium holding dev (a whole device or a partition).
// MMC/SD media report it as preferred_erase_size; for other media the
// discard granularity is the closest available figure.
func EraseBlockSize(dev string) (int64, error) {
	base := filepath.Base(ParentDevice(dev))
	for _, attr := range []string{
		filepath.Join(sysBlock, base, "device", "preferred_erase_size"),
		filepath.Join(sysBlock, base, "queue", "discard_granularity"),
	} {
		b, err := os.ReadFile(attr)
		if err != nil {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		return n, nil
	}
	return 0, fmt.Errorf("no erase block size exposed for %s under %s", dev, sysBlock)
}
