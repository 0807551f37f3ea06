package ext4

import (
	"fmt"
	"io"
)

// GroupDescSize32 and GroupDescSize64 are the two on-disk widths a group
// descriptor may have, selected by the superblock's BIT64 incompat feature.
const (
	GroupDescSize32 = 32
	GroupDescSize64 = 64
)

// GroupDesc is the fully-typed view of one block group's descriptor. Every
// counter is reunified to host width regardless of which on-disk width
// (32 or 64 byte) it was decoded from.
type GroupDesc struct {
	BlockBitmap     uint64
	InodeBitmap     uint64
	InodeTable      uint64
	FreeBlocksCount uint32
	FreeInodesCount uint32
	UsedDirsCount   uint32
	Flags           GroupDescFlags
	ExcludeBitmap   uint64
	BlockBitmapCsum uint32
	InodeBitmapCsum uint32
	ItableUnused    uint32
	Checksum        uint16
}

// DecodeGroupDesc reads 32 or 64 bytes from r at off (per is64Bit) and
// produces a typed GroupDesc.
func DecodeGroupDesc(r io.ReaderAt, off int64, is64Bit bool) (*GroupDesc, error) {
	size := GroupDescSize32
	if is64Bit {
		size = GroupDescSize64
	}
	c, err := readExact(r, off, size)
	if err != nil {
		return nil, fmt.Errorf("ext4: decoding group descriptor at %d: %w", off, err)
	}

	gd := &GroupDesc{}

	blockBitmapLo := c.u32(0)
	inodeBitmapLo := c.u32(4)
	inodeTableLo := c.u32(8)
	freeBlocksLo := c.u16(12)
	freeInodesLo := c.u16(14)
	usedDirsLo := c.u16(16)
	gd.Flags = newGroupDescFlags(c.u16(18))
	excludeBitmapLo := c.u32(20)
	blockBitmapCsumLo := c.u16(24)
	inodeBitmapCsumLo := c.u16(26)
	itableUnusedLo := c.u16(28)
	gd.Checksum = c.u16(30)

	if !is64Bit {
		gd.BlockBitmap = uint64(blockBitmapLo)
		gd.InodeBitmap = uint64(inodeBitmapLo)
		gd.InodeTable = uint64(inodeTableLo)
		gd.FreeBlocksCount = uint32(freeBlocksLo)
		gd.FreeInodesCount = uint32(freeInodesLo)
		gd.UsedDirsCount = uint32(usedDirsLo)
		gd.ExcludeBitmap = uint64(excludeBitmapLo)
		gd.BlockBitmapCsum = uint32(blockBitmapCsumLo)
		gd.InodeBitmapCsum = uint32(inodeBitmapCsumLo)
		gd.ItableUnused = uint32(itableUnusedLo)
		return gd, nil
	}

	blockBitmapHi := c.u32(32)
	inodeBitmapHi := c.u32(36)
	inodeTableHi := c.u32(40)
	freeBlocksHi := c.u16(44)
	freeInodesHi := c.u16(46)
	usedDirsHi := c.u16(48)
	itableUnusedHi := c.u16(50)
	excludeBitmapHi := c.u32(52)
	blockBitmapCsumHi := c.u16(56)
	inodeBitmapCsumHi := c.u16(58)

	gd.BlockBitmap = concatLoHi(uint64(blockBitmapLo), uint64(blockBitmapHi), 32)
	gd.InodeBitmap = concatLoHi(uint64(inodeBitmapLo), uint64(inodeBitmapHi), 32)
	gd.InodeTable = concatLoHi(uint64(inodeTableLo), uint64(inodeTableHi), 32)
	gd.FreeBlocksCount = uint32(concatLoHi(uint64(freeBlocksLo), uint64(freeBlocksHi), 16))
	gd.FreeInodesCount = uint32(concatLoHi(uint64(freeInodesLo), uint64(freeInodesHi), 16))
	gd.UsedDirsCount = uint32(concatLoHi(uint64(usedDirsLo), uint64(usedDirsHi), 16))
	gd.ItableUnused = uint32(concatLoHi(uint64(itableUnusedLo), uint64(itableUnusedHi), 16))
	gd.ExcludeBitmap = concatLoHi(uint64(excludeBitmapLo), uint64(excludeBitmapHi), 32)
	gd.BlockBitmapCsum = uint32(concatLoHi(uint64(blockBitmapCsumLo), uint64(blockBitmapCsumHi), 16))
	gd.InodeBitmapCsum = uint32(concatLoHi(uint64(inodeBitmapCsumLo), uint64(inodeBitmapCsumHi), 16))

	return gd, nil
}
