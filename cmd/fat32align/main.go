// fat32align computes FAT32 formatting parameters which place the file
// system's data area on an erase-block boundary of the flash medium, and
// prints the matching mkdosfs invocation.
//
// The volume size is taken from --size, or probed (read-only) from the
// device given with --device; the erase block size from --media,
// --erase-block-size, or the kernel. Nothing is written anywhere.
//
// Example:
//
//	fat32align --device=/dev/mmcblk0p2 --media=sdhc
//	fat32align --size=32g --erase-block-size=4m
package main

import (
	"fmt"
	"log"

	"github.com/spf13/pflag"

	"github.com/steven676/encore-sdcard-setup/devsize"
	"github.com/steven676/encore-sdcard-setup/fat32"
	"github.com/steven676/encore-sdcard-setup/humanize"
	"github.com/steven676/encore-sdcard-setup/sizeflag"
)

func volumeSectors(device string) (int64, error) {
	sizeBytes, err := sizeflag.Size()
	if err != nil {
		return 0, err
	}
	if sizeBytes > 0 {
		return sizeBytes / fat32.SectorSize, nil
	}
	if device == "" {
		return 0, fmt.Errorf("one of --size or --device is required")
	}
	return devsize.Sectors(device)
}

func eraseBlockSize(device string, flagSet bool) (int64, error) {
	// The kernel's own figure is only a fallback: --media and an explicit
	// --erase-block-size both win.
	if sizeflag.Media() == "" && !flagSet && device != "" {
		if ebs, err := devsize.EraseBlockSize(device); err == nil {
			return ebs, nil
		}
		log.Printf("%s does not expose an erase block size, assuming the --erase-block-size default", device)
	}
	return sizeflag.EraseBlockSize()
}

func run(device string, ebsFlagSet bool) error {
	sectors, err := volumeSectors(device)
	if err != nil {
		return err
	}
	ebs, err := eraseBlockSize(device, ebsFlagSet)
	if err != nil {
		return err
	}
	if err := fat32.CheckGeometry(sectors, ebs); err != nil {
		return err
	}

	clusterAlign := sizeflag.ClusterAlign()
	clusterSize, err := sizeflag.ClusterSize()
	if err != nil {
		return err
	}
	if clusterSize == 0 {
		clusterSize = fat32.SelectClusterSize(sectors, ebs, clusterAlign)
	} else if err := fat32.CheckClusterSize(clusterSize); err != nil {
		return err
	}

	a := fat32.AlignReservedSectors(sectors, ebs, clusterSize, clusterAlign)
	if a.DataClusters <= 0 {
		return fmt.Errorf("volume of %d sectors (%s) leaves no room for data with %s erase blocks",
			sectors, humanize.Sectors(uint64(sectors)), humanize.Bytes(uint64(ebs)))
	}
	if a.DataClusters < fat32.MinClusters {
		log.Printf("warning: only %d clusters fit (FAT32 tools commonly expect at least %d); some tools may refuse to format this volume",
			a.DataClusters, fat32.MinClusters)
	}

	fmt.Printf("volume:           %d sectors (%s)\n", sectors, humanize.Sectors(uint64(sectors)))
	fmt.Printf("erase block size: %s\n", humanize.Bytes(uint64(ebs)))
	fmt.Printf("cluster size:     %s (%d sectors)\n", humanize.Bytes(uint64(clusterSize)), clusterSize/fat32.SectorSize)
	fmt.Printf("reserved sectors: %d\n", a.ReservedSectors)
	fmt.Printf("FAT size:         %d sectors x 2\n", a.FATSectors)
	fmt.Printf("data area offset: %d erase blocks\n", a.DataOffsetEraseBlocks)

	target := device
	if target == "" {
		target = "<device>"
	}
	fmt.Printf("\nmkdosfs -F 32 -f 2 -s %d -R %d %s\n",
		clusterSize/fat32.SectorSize, a.ReservedSectors, target)
	return nil
}

func main() {
	sizeflag.RegisterPflags(pflag.CommandLine)
	device := pflag.String("device", "", "block device (or image file) the volume will live on; read-only")
	pflag.Parse()

	if err := run(*device, pflag.CommandLine.Changed("erase-block-size")); err != nil {
		log.Fatal(err)
	}
}
