package ext4

import (
	"fmt"
	"io"
	"time"
)

// InodeSizeClassic and InodeSizeLarge are the two on-disk inode widths.
const (
	InodeSizeClassic = 128
	InodeSizeLarge   = 160
)

const inodeBlockPointers = 15

// Osd1 is the OS-tagged 4-byte region at inode offset 36.
type Osd1 struct {
	Creator        Creator
	LinuxVersion   uint32
	HurdTranslator uint32
	MasixReserved  uint32
	UnknownRaw     uint32
}

func decodeOsd1(raw uint32, creator Creator) Osd1 {
	o := Osd1{Creator: creator}
	switch creator {
	case CreatorLinux:
		o.LinuxVersion = raw
	case CreatorHurd:
		o.HurdTranslator = raw
	case CreatorMasix:
		o.MasixReserved = raw
	default:
		o.UnknownRaw = raw
	}
	return o
}

// Osd2 is the OS-tagged 12-byte region at inode offset 116.
type Osd2 struct {
	Creator Creator

	// Linux
	BlocksHigh  uint16
	FileACLHigh uint16
	UIDHigh     uint16
	GIDHigh     uint16
	ChecksumLo  uint16

	// Hurd
	ModeHigh uint16
	Author   uint32

	// Masix reuses FileACLHigh.

	UnknownRaw [12]byte
}

func decodeOsd2(c cursor, off int, creator Creator) Osd2 {
	o := Osd2{Creator: creator}
	switch creator {
	case CreatorLinux:
		o.BlocksHigh = c.u16(off + 0)
		o.FileACLHigh = c.u16(off + 2)
		o.UIDHigh = c.u16(off + 4)
		o.GIDHigh = c.u16(off + 6)
		o.ChecksumLo = c.u16(off + 8)
	case CreatorHurd:
		o.ModeHigh = c.u16(off + 2)
		o.UIDHigh = c.u16(off + 4)
		o.GIDHigh = c.u16(off + 6)
		o.Author = c.u32(off + 8)
	case CreatorMasix:
		o.FileACLHigh = c.u16(off + 2)
	default:
		copy(o.UnknownRaw[:], c.bytes(off, 12))
	}
	return o
}

// Inode is the fully-typed view of one inode-table record, 128 (classic) or
// 160 ("large") bytes.
type Inode struct {
	Mode       Mode
	UID        uint32
	Size       uint64
	Atime      time.Time
	Ctime      time.Time
	Mtime      time.Time
	Dtime      time.Time
	GID        uint32
	LinksCount uint16
	BlocksLo   uint32
	Flags      InodeFlags
	Osd1       Osd1
	Block      [inodeBlockPointers]uint32
	Generation uint32
	FileACL    uint64
	ObsoFaddr  uint32
	Osd2       Osd2

	// Large-inode-only fields; zero on the classic 128-byte form.
	ExtraIsize uint16
	Checksum   uint32
	Crtime     time.Time
	Projid     uint32
}

// DecodeInode reads 128 or 160 bytes from r at off (per isLarge) and decodes
// an Inode. The OS-specific Osd1/Osd2 regions are interpreted according to
// creator.
func DecodeInode(r io.ReaderAt, off int64, isLarge bool, creator Creator) (*Inode, error) {
	size := InodeSizeClassic
	if isLarge {
		size = InodeSizeLarge
	}
	c, err := readExact(r, off, size)
	if err != nil {
		return nil, fmt.Errorf("ext4: decoding inode at %d: %w", off, err)
	}

	in := &Inode{}

	in.Mode = Mode(c.u16(0))
	uidLo16 := c.u16(2)
	sizeLo := c.u32(4)
	atime := c.i32(8)
	ctime := c.i32(12)
	mtime := c.i32(16)
	dtime := c.i32(20)
	gidLo16 := c.u16(24)
	in.LinksCount = c.u16(26)
	in.BlocksLo = c.u32(28)
	in.Flags = newInodeFlags(c.u32(32))
	in.Osd1 = decodeOsd1(c.u32(36), creator)
	for i := 0; i < inodeBlockPointers; i++ {
		in.Block[i] = c.u32(40 + i*4)
	}
	in.Generation = c.u32(100)
	fileACLLo := c.u32(104)
	sizeHigh := c.u32(108)
	in.ObsoFaddr = c.u32(112)
	in.Osd2 = decodeOsd2(c, 116, creator)

	in.Atime = time.Unix(int64(atime), 0).UTC()
	in.Ctime = time.Unix(int64(ctime), 0).UTC()
	in.Mtime = time.Unix(int64(mtime), 0).UTC()
	in.Dtime = time.Unix(int64(dtime), 0).UTC()

	in.UID = uint32(concatLoHi(uint64(uidLo16), uint64(in.Osd2.UIDHigh), 16))
	in.GID = uint32(concatLoHi(uint64(gidLo16), uint64(in.Osd2.GIDHigh), 16))
	in.Size = concatLoHi(uint64(sizeLo), uint64(sizeHigh), 32)
	in.FileACL = concatLoHi(uint64(fileACLLo), uint64(in.Osd2.FileACLHigh), 32)

	if isLarge {
		in.ExtraIsize = c.u16(128)
		checksumHi := c.u16(130)
		in.Checksum = uint32(concatLoHi(uint64(in.Osd2.ChecksumLo), uint64(checksumHi), 16))
		ctimeExtra := c.u32(132)
		mtimeExtra := c.u32(136)
		atimeExtra := c.u32(140)
		crtime := c.i32(144)
		crtimeExtra := c.u32(148)
		in.Crtime = extraTime(crtime, crtimeExtra)
		in.Atime = extraTime(atime, atimeExtra)
		in.Ctime = extraTime(ctime, ctimeExtra)
		in.Mtime = extraTime(mtime, mtimeExtra)
		in.Projid = c.u32(156)
	}

	return in, nil
}

// extraTime applies the large-inode extra-timestamp convention: the low 2
// bits of the extra field extend the epoch seconds to 34 bits (fixing the
// year-2038 rollover until 2446), and the remaining 30 bits are nanoseconds.
func extraTime(epochSec int32, extra uint32) time.Time {
	sec := int64(epochSec) + (int64(extra&0x3) << 32)
	nsec := int64(extra >> 2)
	return time.Unix(sec, nsec).UTC()
}
