package ext4

// Reserved inode numbers, per the ext4 special-inode table.
const (
	InodeBadBlocks   uint32 = 1
	InodeRoot        uint32 = 2
	InodeUserQuota   uint32 = 3
	InodeGroupQuota  uint32 = 4
	InodeBootLoader  uint32 = 5
	InodeUndeleteDir uint32 = 6
	InodeResize      uint32 = 7
	InodeJournal     uint32 = 8
	InodeExclude     uint32 = 9
	InodeReplica     uint32 = 10

	firstReservedInode uint32 = InodeBadBlocks
	lastReservedInode  uint32 = InodeReplica
	defaultFirstIno    uint32 = 11
)

// IsReservedInode reports whether n names one of the ten reserved inodes.
func IsReservedInode(n uint32) bool {
	return n >= firstReservedInode && n <= lastReservedInode
}
