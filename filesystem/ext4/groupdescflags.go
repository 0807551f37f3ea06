package ext4

var groupDescFlagNames = []namedBit{
	{0x1, "inode_uninit"},
	{0x2, "block_uninit"},
	{0x4, "inode_zeroed"},
}

// GroupDescFlags is a group descriptor's bg_flags field (16 bits on disk,
// stored here widened to 32 for the shared bitFlags machinery).
type GroupDescFlags struct{ bitFlags }

func newGroupDescFlags(raw uint16) GroupDescFlags {
	return GroupDescFlags{newBitFlags(uint32(raw), groupDescFlagNames)}
}

func (f GroupDescFlags) Contains(bit uint32) bool { return f.contains(bit) }
func (f GroupDescFlags) UnknownBits() bool        { return f.unknownBits() }
func (f GroupDescFlags) FlagsList() []string      { return f.namesList() }
func (f GroupDescFlags) InodeUninit() bool        { return f.contains(0x1) }
func (f GroupDescFlags) BlockUninit() bool        { return f.contains(0x2) }
func (f GroupDescFlags) InodeZeroed() bool        { return f.contains(0x4) }
