package ext4

var superblockFlagNames = []namedBit{
	{0x1, "signed_directory_hash"},
	{0x2, "unsigned_directory_hash"},
	{0x4, "test_filesystem"},
}

// Flags is the superblock's s_flags field (offset 0x160).
type Flags struct{ bitFlags }

func newFlags(raw uint32) Flags {
	return Flags{newBitFlags(raw, superblockFlagNames)}
}

func (f Flags) Contains(bit uint32) bool { return f.contains(bit) }
func (f Flags) UnknownBits() bool        { return f.unknownBits() }
func (f Flags) FlagsList() []string      { return f.namesList() }

var defaultMountOptionNames = []namedBit{
	{0x1, "debug"},
	{0x2, "bsdgroups"},
	{0x4, "xattr_user"},
	{0x8, "acl"},
	{0x10, "uid16"},
	{0x20, "jmode_data"},
	{0x40, "jmode_ordered"},
	{0x60, "jmode_wback"},
	{0x100, "nobarrier"},
	{0x200, "block_validity"},
	{0x400, "discard"},
	{0x800, "nodealloc"},
}

// DefaultMountOptions is the superblock's s_default_mount_opts field.
type DefaultMountOptions struct{ bitFlags }

func newDefaultMountOptions(raw uint32) DefaultMountOptions {
	return DefaultMountOptions{newBitFlags(raw, defaultMountOptionNames)}
}

func (d DefaultMountOptions) Contains(bit uint32) bool { return d.contains(bit) }
func (d DefaultMountOptions) UnknownBits() bool        { return d.unknownBits() }
func (d DefaultMountOptions) FlagsList() []string      { return d.namesList() }
