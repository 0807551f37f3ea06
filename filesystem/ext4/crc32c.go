package ext4

import "hash/crc32"

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// crc32c computes the standard CRC-32C (Castagnoli) checksum of buf. ext4's
// on-disk metadata checksums store the complement of this value.
func crc32c(buf []byte) uint32 {
	return crc32.Checksum(buf, crc32cTable)
}
