package devsize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParentDevice(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		dev  string
		want string
	}{
		{"/dev/mmcblk0p2", "/dev/mmcblk0"},
		{"/dev/mmcblk1p12", "/dev/mmcblk1"},
		{"/dev/sda2", "/dev/sda"},
		{"/dev/loop0p3", "/dev/loop0"},
		{"/dev/nvme0n1p2", "/dev/nvme0n1"},
		{"/dev/vdb1", "/dev/vdb"},
		{"/dev/mmcblk0", "/dev/mmcblk0"},
		{"/dev/sda", "/dev/sda"},
		{"/dev/nvme0n1", "/dev/nvme0n1"},
	} {
		tt := tt // copy
		t.Run(tt.dev, func(t *testing.T) {
			if got := ParentDevice(tt.dev); got != tt.want {
				t.Errorf("ParentDevice(%q) = %q, want %q", tt.dev, got, tt.want)
			}
		})
	}
}

func writeSysfsAttr(t *testing.T, dir, name, value string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(value), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestEraseBlockSize(t *testing.T) {
	tmp := t.TempDir()
	old := sysBlock
	sysBlock = tmp
	t.Cleanup(func() { sysBlock = old })

	writeSysfsAttr(t, tmp, "mmcblk0/device/preferred_erase_size", "4194304\n")
	writeSysfsAttr(t, tmp, "sda/queue/discard_granularity", "2097152\n")
	writeSysfsAttr(t, tmp, "sdb/queue/discard_granularity", "0\n")

	for _, tt := range []struct {
		dev     string
		want    int64
		wantErr bool
	}{
		// MMC exposes preferred_erase_size; partitions resolve to the
		// parent device.
		{dev: "/dev/mmcblk0p2", want: 4194304},
		{dev: "/dev/mmcblk0", want: 4194304},
		// Fallback to the discard granularity.
		{dev: "/dev/sda1", want: 2097152},
		// Zero granularity means the kernel does not know.
		{dev: "/dev/sdb1", wantErr: true},
		{dev: "/dev/sdz1", wantErr: true},
	} {
		tt := tt // copy
		t.Run(tt.dev, func(t *testing.T) {
			got, err := EraseBlockSize(tt.dev)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("EraseBlockSize(%q) = %v, wantErr %v", tt.dev, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("EraseBlockSize(%q) = %d, want %d", tt.dev, got, tt.want)
			}
		})
	}
}
