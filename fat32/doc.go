// Package fat32 computes FAT32 volume geometry for flash media: the
// largest cluster size that still yields enough clusters for common
// FAT32 tooling, and the reserved-sector count which places the data
// area exactly on an erase-block boundary, so that cluster writes
// never straddle two erase blocks.
//
// The package performs no I/O and keeps no state; both entry points
// are pure functions over the volume size (in 512-byte sectors) and
// the erase-block size (in bytes). Callers pass the results to an
// external FAT32 formatter (e.g. mkdosfs -s/-R).
package fat32
