package ext4

import (
	"fmt"
	"io"
	"time"
)

// SuperblockSize is the fixed on-disk size of the primary superblock.
const SuperblockSize = 1024

// superblockMagic is the expected value of the magic field at offset 0x38.
const superblockMagic uint16 = 0xEF53

// Superblock is the fully-typed view of the 1024-byte primary superblock.
// It is immutable after Decode and owns all of its decoded data.
type Superblock struct {
	InodesCount          uint32
	blocksCountLo        uint32
	blocksCountHi        uint32
	rBlocksCountLo       uint32
	rBlocksCountHi       uint32
	freeBlocksCountLo    uint32
	freeBlocksCountHi    uint32
	FreeInodesCount      uint32
	FirstDataBlock       uint32
	LogBlockSize         uint32
	LogClusterSize       uint32
	BlocksPerGroup       uint32
	ClustersPerGroup     uint32
	InodesPerGroup       uint32
	MountTime            time.Time
	WriteTime            time.Time
	MountCount           uint16
	MaxMountCount        uint16
	Magic                uint16
	State                State
	Errors               ErrorPolicy
	MinorRevLevel        uint16
	LastCheck            time.Time
	CheckInterval        uint32
	CreatorOS            Creator
	RevLevel             RevisionLevel
	DefResUID            uint16
	DefResGID            uint16
	FirstIno             uint32
	InodeSize            uint16
	BlockGroupNr         uint16
	FeatureCompat        FeatureCompat
	FeatureIncompat      FeatureIncompat
	FeatureRoCompat      FeatureRoCompat
	UUID                 UUID
	VolumeName           string
	LastMounted          string
	AlgorithmUsageBitmap uint32
	PreallocBlocks       uint8
	PreallocDirBlocks    uint8
	ReservedGDTBlocks    uint16
	JournalUUID          UUID
	JournalInum          uint32
	JournalDev           uint32
	LastOrphan           uint32
	HashSeed             [4]uint32
	DefHashVersion       HashVersion
	JnlBackupType        uint8
	DescSize             uint16
	DefaultMountOpts     DefaultMountOptions
	FirstMetaBg          uint32
	MkfsTime             time.Time
	JnlBlocks            [17]uint32
	MinExtraIsize        uint16
	WantExtraIsize       uint16
	Flags                Flags
	RaidStride           uint16
	MmpInterval          uint16
	MmpBlock             uint64
	RaidStripeWidth      uint32
	LogGroupsPerFlex     uint8
	ChecksumType         ChecksumType
	KbytesWritten        uint64
	SnapshotInum         uint32
	SnapshotID           uint32
	SnapshotRBlocksCount uint64
	SnapshotList         uint32
	ErrorCount           uint32
	FirstErrorTime       time.Time
	FirstErrorIno        uint32
	FirstErrorBlock      uint64
	FirstErrorFunc       string
	FirstErrorLine       uint32
	LastErrorTime        time.Time
	LastErrorIno         uint32
	LastErrorLine        uint32
	LastErrorBlock       uint64
	LastErrorFunc        string
	MountOpts            string
	UsrQuotaInum         uint32
	GrpQuotaInum         uint32
	OverheadBlocks       uint32
	BackupBgs            [2]uint32
	EncryptAlgos         [4]EncryptionMode
	EncryptPwSalt        [16]byte
	LpfIno               uint32
	PrjQuotaInum         uint32
	ChecksumSeed         uint32
	Encoding             uint16
	EncodingFlags        uint16
	Checksum             uint32
}

// DecodeSuperblock reads exactly 1024 bytes from r at off and constructs a
// typed Superblock. Every field is decoded at its fixed little-endian
// offset (Table S); decode succeeds even when the magic does not match
// 0xEF53 — use CheckSignature separately to find out.
func DecodeSuperblock(r io.ReaderAt, off int64) (*Superblock, error) {
	c, err := readExact(r, off, SuperblockSize)
	if err != nil {
		return nil, fmt.Errorf("ext4: decoding superblock: %w", err)
	}

	sb := &Superblock{}

	sb.InodesCount = c.u32(0)
	sb.blocksCountLo = c.u32(4)
	sb.rBlocksCountLo = c.u32(8)
	sb.freeBlocksCountLo = c.u32(12)
	sb.FreeInodesCount = c.u32(16)
	sb.FirstDataBlock = c.u32(20)
	sb.LogBlockSize = c.u32(24)
	sb.LogClusterSize = c.u32(28)
	sb.BlocksPerGroup = c.u32(32)
	sb.ClustersPerGroup = c.u32(36)
	sb.InodesPerGroup = c.u32(40)
	sb.MountTime = time.Unix(int64(c.u32(44)), 0).UTC()
	sb.WriteTime = time.Unix(int64(c.u32(48)), 0).UTC()
	sb.MountCount = c.u16(52)
	sb.MaxMountCount = c.u16(54)
	sb.Magic = c.u16(56)
	sb.State = State(c.u16(58))
	sb.Errors = ErrorPolicy(c.u16(60))
	sb.MinorRevLevel = c.u16(62)
	sb.LastCheck = time.Unix(int64(c.u32(64)), 0).UTC()
	sb.CheckInterval = c.u32(68)
	sb.CreatorOS = Creator(c.u32(72))
	sb.RevLevel = RevisionLevel(c.u32(76))
	sb.DefResUID = c.u16(80)
	sb.DefResGID = c.u16(82)
	sb.FirstIno = c.u32(84)
	sb.InodeSize = c.u16(88)
	sb.BlockGroupNr = c.u16(90)
	sb.FeatureCompat = newFeatureCompat(c.u32(92))
	sb.FeatureIncompat = newFeatureIncompat(c.u32(96))
	sb.FeatureRoCompat = newFeatureRoCompat(c.u32(100))

	uuid, err := uuidFromBytes(c.bytes(104, 16))
	if err != nil {
		return nil, fmt.Errorf("ext4: decoding superblock volume uuid: %w", err)
	}
	sb.UUID = uuid

	if sb.VolumeName, err = c.str(120, 16); err != nil {
		return nil, fmt.Errorf("ext4: decoding volume_name: %w", err)
	}
	if sb.LastMounted, err = c.str(136, 64); err != nil {
		return nil, fmt.Errorf("ext4: decoding last_mounted: %w", err)
	}

	sb.AlgorithmUsageBitmap = c.u32(200)
	sb.PreallocBlocks = c.u8(204)
	sb.PreallocDirBlocks = c.u8(205)
	sb.ReservedGDTBlocks = c.u16(206)

	journalUUID, err := uuidFromBytes(c.bytes(208, 16))
	if err != nil {
		return nil, fmt.Errorf("ext4: decoding journal uuid: %w", err)
	}
	sb.JournalUUID = journalUUID

	sb.JournalInum = c.u32(224)
	sb.JournalDev = c.u32(228)
	sb.LastOrphan = c.u32(232)
	for i := 0; i < 4; i++ {
		sb.HashSeed[i] = c.u32(236 + i*4)
	}
	sb.DefHashVersion = HashVersion(c.u8(252))
	sb.JnlBackupType = c.u8(253)
	sb.DescSize = c.u16(254)
	sb.DefaultMountOpts = newDefaultMountOptions(c.u32(256))
	sb.FirstMetaBg = c.u32(260)
	sb.MkfsTime = time.Unix(int64(c.u32(264)), 0).UTC()
	for i := 0; i < 17; i++ {
		sb.JnlBlocks[i] = c.u32(268 + i*4)
	}

	sb.blocksCountHi = c.u32(336)
	sb.rBlocksCountHi = c.u32(340)
	sb.freeBlocksCountHi = c.u32(344)
	sb.MinExtraIsize = c.u16(348)
	sb.WantExtraIsize = c.u16(350)
	sb.Flags = newFlags(c.u32(352))
	sb.RaidStride = c.u16(356)
	sb.MmpInterval = c.u16(358)
	sb.MmpBlock = c.u64(360)
	sb.RaidStripeWidth = c.u32(368)
	sb.LogGroupsPerFlex = c.u8(372)
	sb.ChecksumType = ChecksumType(c.u8(373))
	sb.KbytesWritten = c.u64(376)
	sb.SnapshotInum = c.u32(384)
	sb.SnapshotID = c.u32(388)
	sb.SnapshotRBlocksCount = c.u64(392)
	sb.SnapshotList = c.u32(400)
	sb.ErrorCount = c.u32(404)
	sb.FirstErrorTime = time.Unix(int64(c.u32(408)), 0).UTC()
	sb.FirstErrorIno = c.u32(412)
	sb.FirstErrorBlock = c.u64(416)
	if sb.FirstErrorFunc, err = c.str(424, 32); err != nil {
		return nil, fmt.Errorf("ext4: decoding first_error_func: %w", err)
	}
	sb.FirstErrorLine = c.u32(456)
	sb.LastErrorTime = time.Unix(int64(c.u32(460)), 0).UTC()
	sb.LastErrorIno = c.u32(464)
	sb.LastErrorLine = c.u32(468)
	sb.LastErrorBlock = c.u64(472)
	if sb.LastErrorFunc, err = c.str(480, 32); err != nil {
		return nil, fmt.Errorf("ext4: decoding last_error_func: %w", err)
	}
	if sb.MountOpts, err = c.str(512, 64); err != nil {
		return nil, fmt.Errorf("ext4: decoding mount_opts: %w", err)
	}
	sb.UsrQuotaInum = c.u32(576)
	sb.GrpQuotaInum = c.u32(580)
	sb.OverheadBlocks = c.u32(584)
	sb.BackupBgs[0] = c.u32(588)
	sb.BackupBgs[1] = c.u32(592)
	for i := 0; i < 4; i++ {
		sb.EncryptAlgos[i] = decodeEncryptionMode(c.u8(596 + i))
	}
	copy(sb.EncryptPwSalt[:], c.bytes(600, 16))
	sb.LpfIno = c.u32(616)
	sb.PrjQuotaInum = c.u32(620)
	sb.ChecksumSeed = c.u32(624)
	sb.Encoding = c.u16(636)
	sb.EncodingFlags = c.u16(638)
	sb.Checksum = c.u32(1020)

	return sb, nil
}

// CheckSignature reports whether the magic field matched 0xEF53. It is a
// non-fatal check: decode always succeeds regardless of its result.
func (sb *Superblock) CheckSignature() *SignatureError {
	if sb.Magic == superblockMagic {
		return nil
	}
	return &SignatureError{Magic: sb.Magic}
}

// VerifyChecksum recomputes the CRC-32C of the first 1020 bytes of raw (the
// superblock's on-disk bytes) and reports whether it matches the stored
// checksum. ext4 stores the CRC register seeded with ~0 without the final
// inversion, i.e. the complement of the standard CRC-32C. Like
// CheckSignature, this never fails decode; it does not look at ChecksumType
// and is meaningful only when FeatureRoCompat.MetadataChecksum() is set,
// which the caller checks first.
func (sb *Superblock) VerifyChecksum(raw []byte) bool {
	if len(raw) < SuperblockSize {
		return false
	}
	return ^crc32c(raw[:1020]) == sb.Checksum
}

// GetBlockSize returns 2^(10+log_block_size).
func (sb *Superblock) GetBlockSize() uint32 {
	return 1 << (10 + sb.LogBlockSize)
}

// GetClusterSize returns 2^(10+log_cluster_size) when bigalloc is set, and
// GetBlockSize() otherwise (log_cluster_size == log_block_size in that
// case).
func (sb *Superblock) GetClusterSize() uint32 {
	if sb.FeatureRoCompat.Bigalloc() {
		return 1 << (10 + sb.LogClusterSize)
	}
	return sb.GetBlockSize()
}

// GetClustersPerGroup mirrors GetClusterSize's bigalloc gating for the
// per-group cluster count.
func (sb *Superblock) GetClustersPerGroup() uint32 {
	if sb.FeatureRoCompat.Bigalloc() {
		return sb.ClustersPerGroup
	}
	return sb.BlocksPerGroup
}

// GetInodeSize returns 128 for the Original revision, else the recorded
// inode_size (even if that recorded value happens to also be 128).
func (sb *Superblock) GetInodeSize() uint16 {
	if sb.RevLevel == RevisionLevelOriginal {
		return 128
	}
	return sb.InodeSize
}

// GetBlocksCount reunifies blocks_count_lo/hi, gated on the BIT64 feature.
func (sb *Superblock) GetBlocksCount() uint64 {
	if !sb.FeatureIncompat.Is64Bit() {
		return uint64(sb.blocksCountLo)
	}
	return concatLoHi(uint64(sb.blocksCountLo), uint64(sb.blocksCountHi), 32)
}

// GetReservedBlocksCount reunifies r_blocks_count_lo/hi, gated on BIT64.
func (sb *Superblock) GetReservedBlocksCount() uint64 {
	if !sb.FeatureIncompat.Is64Bit() {
		return uint64(sb.rBlocksCountLo)
	}
	return concatLoHi(uint64(sb.rBlocksCountLo), uint64(sb.rBlocksCountHi), 32)
}

// GetFreeBlocksCount reunifies free_blocks_count_lo/hi, gated on BIT64.
func (sb *Superblock) GetFreeBlocksCount() uint64 {
	if !sb.FeatureIncompat.Is64Bit() {
		return uint64(sb.freeBlocksCountLo)
	}
	return concatLoHi(uint64(sb.freeBlocksCountLo), uint64(sb.freeBlocksCountHi), 32)
}

// GetFeatures concatenates the three feature sets' name lists, appending
// "(unknown_bits)" if any of them carries bits outside its declared set.
func (sb *Superblock) GetFeatures() []string {
	return Features{sb.FeatureCompat, sb.FeatureIncompat, sb.FeatureRoCompat}.List()
}

// FirstNonReservedInode returns 11 for Original-revision filesystems, else
// the recorded first_ino.
func (sb *Superblock) FirstNonReservedInode() uint32 {
	if sb.RevLevel == RevisionLevelOriginal {
		return defaultFirstIno
	}
	return sb.FirstIno
}

// groupDescStride returns 64 when the BIT64 feature is set, else 32.
func (sb *Superblock) groupDescStride() int64 {
	if sb.FeatureIncompat.Is64Bit() {
		return 64
	}
	return 32
}

// firstGroupDescOffset returns the byte offset, within the filesystem, of
// the block immediately following the block containing the superblock.
func (sb *Superblock) firstGroupDescOffset() int64 {
	blockSize := int64(sb.GetBlockSize())
	return ((SuperblockSize/blockSize)+1)*blockSize
}

// groupCount is ceil(blocks_count / blocks_per_group) — the corrected
// formula; see DESIGN.md for the departure from a naive
// inodes_count/inodes_per_group integer division, which undercounts groups
// whenever the inode ratio is sparser than the block ratio.
func (sb *Superblock) groupCount() uint64 {
	blocksCount := sb.GetBlocksCount()
	bpg := uint64(sb.BlocksPerGroup)
	if bpg == 0 {
		return 0
	}
	return (blocksCount + bpg - 1) / bpg
}
