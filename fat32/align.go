package fat32

import "fmt"

const (
	// SectorSize is the fixed sector size in bytes.
	SectorSize = 512

	// MinClusters is the smallest data-area cluster count most FAT32
	// tooling accepts; below it, tools assume FAT16 or refuse outright.
	MinClusters = 65529

	// numFATs is the number of FAT copies kept for redundancy.
	numFATs = 2

	// minReservedSectors is the smallest reserved area common boot
	// sector layouts require (boot sector, FSInfo, backup boot sector
	// and slack).
	minReservedSectors = 12

	// maxClusterSize and minClusterSize bound the cluster size search.
	// 32 KiB is the largest cluster size ordinary FAT32 readers handle.
	maxClusterSize = 32768
	minClusterSize = 512
)

// divCeil returns the number of size-d units needed to cover n.
func divCeil(n, d int64) int64 {
	return (n + d - 1) / d
}

// divFloor returns the largest count of size-d units not exceeding n.
func divFloor(n, d int64) int64 {
	return n / d
}

// roundUp rounds n up to the next multiple of m.
func roundUp(n, m int64) int64 {
	return divCeil(n, m) * m
}

// SelectClusterSize returns the largest cluster size in bytes, a power of
// two in [512, 32768], at which a FAT32 file system spanning volumeSectors
// 512-byte sectors still reaches MinClusters data clusters.
// eraseBlockSize is the erase-block size of the medium in bytes; with
// clusterAlign set, the reserved area is assumed padded to whole clusters,
// matching AlignReservedSectors.
//
// If not even 512-byte clusters reach MinClusters, 512 is returned rather
// than an error; the caller decides whether an undersized file system is
// acceptable (check Alignment.DataClusters).
func SelectClusterSize(volumeSectors, eraseBlockSize int64, clusterAlign bool) int64 {
	sectorsPerEraseBlock := eraseBlockSize / SectorSize
	for clusterSize := int64(maxClusterSize); ; clusterSize /= 2 {
		sectorsPerCluster := clusterSize / SectorSize
		reservedSectors := int64(minReservedSectors)
		if clusterAlign {
			reservedSectors = roundUp(reservedSectors, sectorsPerCluster)
		}
		// Erase blocks in front of the data area when both FATs are
		// as small as they can get; a lower bound is enough here, the
		// exact offset comes from AlignReservedSectors.
		dataOffsetEraseBlocks := divCeil(reservedSectors+numFATs*SectorSize, sectorsPerEraseBlock)
		minVolumeSectors := MinClusters*sectorsPerCluster + dataOffsetEraseBlocks*sectorsPerEraseBlock
		if volumeSectors >= minVolumeSectors || clusterSize == minClusterSize {
			return clusterSize
		}
	}
}

// Alignment is the front-of-volume layout computed by AlignReservedSectors.
type Alignment struct {
	// ReservedSectors is the reserved-sector count which places the data
	// area on an erase-block boundary.
	ReservedSectors int64

	// DataOffsetEraseBlocks is the offset of the data area from the
	// start of the volume, in erase blocks. Reserved area and both FAT
	// copies fit exactly into these blocks.
	DataOffsetEraseBlocks int64

	// FATSizeBytes and FATSectors give the size of one FAT copy.
	FATSizeBytes int64
	FATSectors   int64

	// DataClusters is the cluster count left for the data area. Zero or
	// negative means the volume cannot hold any data at this geometry;
	// below MinClusters means some tools will refuse the result. Callers
	// must check before trusting the layout.
	DataClusters int64
}

// AlignReservedSectors computes the reserved-sector count which makes the
// data area of a FAT32 file system start exactly on an erase-block
// boundary. volumeSectors is the volume size in 512-byte sectors,
// eraseBlockSize the erase-block size in bytes, clusterSize the cluster
// size in bytes (normally the result of SelectClusterSize). With
// clusterAlign set, the FAT size is padded to whole clusters and the
// reserved area to an even number of whole clusters.
//
// The function is a pure computation and does not reject degenerate
// input; see CheckGeometry and Alignment.DataClusters.
func AlignReservedSectors(volumeSectors, eraseBlockSize, clusterSize int64, clusterAlign bool) Alignment {
	sectorsPerCluster := clusterSize / SectorSize
	sectorsPerEraseBlock := eraseBlockSize / SectorSize
	clustersPerEraseBlock := sectorsPerEraseBlock / sectorsPerCluster

	// Sectors past the last whole cluster are not addressable and do not
	// need FAT entries.
	volumeClusters := divFloor(volumeSectors, sectorsPerCluster)

	reservedSectors := int64(minReservedSectors)
	if clusterAlign {
		// Must be an even multiple of the cluster size so that
		// reserved area plus two equal FATs can tile whole erase
		// blocks.
		reservedSectors = roundUp(reservedSectors, 2*sectorsPerCluster)
	}

	// First pass: an upper bound on the FAT size, as if everything past
	// the reserved area were data. Each cluster costs its own bytes plus
	// one 4-byte entry per FAT copy; each FAT starts with 8 bytes of
	// reserved entries.
	fatSizeBytes := 4*divCeil((volumeClusters*sectorsPerCluster-reservedSectors)*SectorSize-8*numFATs, clusterSize+numFATs*4) + 8
	fatSectors := divCeil(fatSizeBytes, SectorSize)
	if clusterAlign {
		fatSectors = roundUp(fatSectors, sectorsPerCluster)
	}

	// Erase blocks needed in front of the data area at that bound.
	dataOffsetEraseBlocks := divCeil(numFATs*fatSectors+reservedSectors, sectorsPerEraseBlock)

	// Second pass: with dataOffsetEraseBlocks erase blocks set aside,
	// fewer clusters remain to be tracked, so the FAT can only shrink.
	fatSizeBytes = (volumeClusters-dataOffsetEraseBlocks*clustersPerEraseBlock)*4 + 8
	fatSectors = divCeil(fatSizeBytes, SectorSize)
	if clusterAlign {
		fatSectors = roundUp(fatSectors, sectorsPerCluster)
	}

	// Whatever the FATs leave unused in the reserved erase blocks
	// becomes reserved sectors.
	reservedSectors = dataOffsetEraseBlocks*sectorsPerEraseBlock - numFATs*fatSectors

	return Alignment{
		ReservedSectors:       reservedSectors,
		DataOffsetEraseBlocks: dataOffsetEraseBlocks,
		FATSizeBytes:          fatSizeBytes,
		FATSectors:            fatSectors,
		DataClusters:          volumeClusters - dataOffsetEraseBlocks*clustersPerEraseBlock,
	}
}

// CheckGeometry reports whether volumeSectors and eraseBlockSize satisfy
// the preconditions of SelectClusterSize and AlignReservedSectors; neither
// function guards against invalid geometry itself.
func CheckGeometry(volumeSectors, eraseBlockSize int64) error {
	if volumeSectors <= 0 {
		return fmt.Errorf("volume size %d sectors: must be positive", volumeSectors)
	}
	if eraseBlockSize <= 0 || eraseBlockSize%SectorSize != 0 {
		return fmt.Errorf("erase block size %d: must be a positive multiple of %d", eraseBlockSize, SectorSize)
	}
	return nil
}

// CheckClusterSize reports whether clusterSize is usable with
// AlignReservedSectors: a power of two between 512 and 32768 bytes.
func CheckClusterSize(clusterSize int64) error {
	if clusterSize < minClusterSize || clusterSize > maxClusterSize || clusterSize&(clusterSize-1) != 0 {
		return fmt.Errorf("cluster size %d: must be a power of two between %d and %d", clusterSize, minClusterSize, maxClusterSize)
	}
	return nil
}
