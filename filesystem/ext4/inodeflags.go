package ext4

import "fmt"

// FileType is the high nibble of an inode's mode field (mode & 0xF000).
type FileType uint16

const (
	FileTypeFIFO      FileType = 0x1000
	FileTypeCharDev   FileType = 0x2000
	FileTypeDirectory FileType = 0x4000
	FileTypeBlockDev  FileType = 0x6000
	FileTypeRegular   FileType = 0x8000
	FileTypeSymlink   FileType = 0xA000
	FileTypeSocket    FileType = 0xC000

	modeFileTypeMask uint16 = 0xF000
)

func (t FileType) String() string {
	switch t {
	case FileTypeFIFO:
		return "fifo"
	case FileTypeCharDev:
		return "character_device"
	case FileTypeDirectory:
		return "directory"
	case FileTypeBlockDev:
		return "block_device"
	case FileTypeRegular:
		return "regular_file"
	case FileTypeSymlink:
		return "symbolic_link"
	case FileTypeSocket:
		return "socket"
	default:
		return fmt.Sprintf("unknown(%#x)", uint16(t))
	}
}

// Mode is an inode's i_mode field: POSIX permission bits in the low 12 bits,
// plus a mutually-exclusive file-type nibble in the high 4 bits.
type Mode uint16

const (
	ModeOtherExecute Mode = 0x1
	ModeOtherWrite   Mode = 0x2
	ModeOtherRead    Mode = 0x4
	ModeGroupExecute Mode = 0x8
	ModeGroupWrite   Mode = 0x10
	ModeGroupRead    Mode = 0x20
	ModeOwnerExecute Mode = 0x40
	ModeOwnerWrite   Mode = 0x80
	ModeOwnerRead    Mode = 0x100
	ModeSticky       Mode = 0x200
	ModeSGID         Mode = 0x400
	ModeSUID         Mode = 0x800
)

// Contains reports whether the given permission bit is set.
func (m Mode) Contains(bit Mode) bool { return m&bit != 0 }

// FileTypeFlags returns the masked-off file-type nibble.
func (m Mode) FileTypeFlags() FileType {
	return FileType(uint16(m) & modeFileTypeMask)
}

// Perm returns just the low 12 POSIX permission bits.
func (m Mode) Perm() Mode {
	return m &^ Mode(modeFileTypeMask)
}

// DirEntFileType is the small-integer file-type encoding used in the
// directory-entry on-disk format; distinct from the FileType nibble of Mode.
type DirEntFileType uint8

const (
	DirEntUnknown  DirEntFileType = 0
	DirEntRegular  DirEntFileType = 1
	DirEntDir      DirEntFileType = 2
	DirEntCharDev  DirEntFileType = 3
	DirEntBlockDev DirEntFileType = 4
	DirEntFIFO     DirEntFileType = 5
	DirEntSocket   DirEntFileType = 6
	DirEntSymlink  DirEntFileType = 7
)

var inodeFlagNames = []namedBit{
	{0x1, "secrm"},
	{0x2, "unrm"},
	{0x4, "compr"},
	{0x8, "sync"},
	{0x10, "immutable"},
	{0x20, "append"},
	{0x40, "nodump"},
	{0x80, "noatime"},
	{0x100, "dirty"},
	{0x200, "comprblk"},
	{0x400, "nocompr"},
	{0x800, "encrypt"},
	{0x1000, "index"},
	{0x2000, "imagic"},
	{0x4000, "journal_data"},
	{0x8000, "notail"},
	{0x10000, "dirsync"},
	{0x20000, "topdir"},
	{0x40000, "huge_file"},
	{0x80000, "extents"},
	{0x100000, "verity"},
	{0x200000, "ea_inode"},
	{0x400000, "eofblocks"},
	{0x1000000, "snapfile"},
	{0x2000000, "dax"},
	{0x4000000, "snapfile_deleted"},
	{0x8000000, "snapfile_shrunk"},
	{0x10000000, "inline_data"},
	{0x20000000, "projinherit"},
	{0x40000000, "casefold"},
	{0x80000000, "reserved"},
}

const (
	inodeFlagsUserVisible   uint32 = 0x705BDFFF
	inodeFlagsUserModifiable uint32 = 0x604BC0FF
)

// InodeFlags is the inode's i_flags field (§4.3; full linux/ext4 set, plus
// the USER_VISIBLE/USER_MODIFIABLE aggregate masks).
type InodeFlags struct{ bitFlags }

func newInodeFlags(raw uint32) InodeFlags {
	return InodeFlags{newBitFlags(raw, inodeFlagNames)}
}

func (f InodeFlags) Contains(bit uint32) bool { return f.contains(bit) }
func (f InodeFlags) UnknownBits() bool        { return f.unknownBits() }
func (f InodeFlags) FlagsList() []string      { return f.namesList() }
func (f InodeFlags) UserVisible() uint32      { return f.raw & inodeFlagsUserVisible }
func (f InodeFlags) UserModifiable() uint32   { return f.raw & inodeFlagsUserModifiable }
func (f InodeFlags) UsesExtents() bool        { return f.contains(0x80000) }
