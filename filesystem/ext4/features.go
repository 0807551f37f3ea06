package ext4

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// namedBit pairs a declared flag value with its dumpe2fs-style lowercase
// name, in the declaration order the feature list is expected to render in.
type namedBit struct {
	bit  uint32
	name string
}

// bitFlags is the shared representation behind every closed-set bitfield
// type in this package (feature triplet, superblock Flags, default mount
// options, inode Flags, group-descriptor Flags), so that Contains/UnknownBits/
// FlagsList behave the same across every flag taxonomy. It keeps a
// bitset.BitSet copy of the raw bits alongside raw; the queries themselves
// are mask tests against raw.
type bitFlags struct {
	raw   uint32
	set   *bitset.BitSet
	known []namedBit
}

func newBitFlags(raw uint32, known []namedBit) bitFlags {
	bs := bitset.New(32)
	for i := uint(0); i < 32; i++ {
		if raw&(1<<i) != 0 {
			bs.Set(i)
		}
	}
	return bitFlags{raw: raw, set: bs, known: known}
}

func (f bitFlags) contains(bit uint32) bool {
	return f.raw&bit != 0
}

func (f bitFlags) unknownBits() bool {
	var mask uint32
	for _, nb := range f.known {
		mask |= nb.bit
	}
	return f.raw&^mask != 0
}

func (f bitFlags) namesList() []string {
	names := make([]string, 0, len(f.known))
	for _, nb := range f.known {
		if f.contains(nb.bit) {
			names = append(names, nb.name)
		}
	}
	return names
}

func (f bitFlags) String() string {
	s := strings.Join(f.namesList(), ",")
	if f.unknownBits() {
		if s != "" {
			s += ","
		}
		s += "(unknown_bits)"
	}
	return s
}

var compatFeatureNames = []namedBit{
	{0x1, "dir_prealloc"},
	{0x2, "imagic_inode"},
	{0x4, "has_journal"},
	{0x8, "ext_attr"},
	{0x10, "resize_inode"},
	{0x20, "dir_index"},
	{0x40, "lazy_bg"},
	{0x80, "exclude_inode"},
	{0x100, "exclude_bitmap"},
	{0x200, "sparse_super2"},
}

var incompatFeatureNames = []namedBit{
	{0x1, "compression"},
	{0x2, "filetype"},
	{0x4, "recover"},
	{0x8, "journal_dev"},
	{0x10, "meta_bg"},
	{0x40, "extent"},
	{0x80, "64bit"},
	{0x100, "mmp"},
	{0x200, "flex_bg"},
	{0x400, "ea_inode"},
	{0x1000, "dirdata"},
	{0x2000, "csum_seed"},
	{0x4000, "largedir"},
	{0x8000, "inline_data"},
	{0x10000, "encrypt"},
	{0x20000, "casefold"},
}

var roCompatFeatureNames = []namedBit{
	{0x1, "sparse_super"},
	{0x2, "large_file"},
	{0x4, "btree_dir"},
	{0x8, "huge_file"},
	{0x10, "gdt_csum"},
	{0x20, "dir_nlink"},
	{0x40, "extra_isize"},
	{0x80, "has_snapshot"},
	{0x100, "quota"},
	{0x200, "bigalloc"},
	{0x400, "metadata_csum"},
	{0x800, "replica"},
	{0x1000, "readonly"},
	{0x2000, "project"},
	{0x8000, "verity"},
}

// FeatureCompat is the s_feature_compat bitfield: unknown bits never prevent
// mounting or reading.
type FeatureCompat struct{ bitFlags }

func newFeatureCompat(raw uint32) FeatureCompat {
	return FeatureCompat{newBitFlags(raw, compatFeatureNames)}
}

func (f FeatureCompat) HasJournal() bool    { return f.contains(0x4) }
func (f FeatureCompat) DirIndex() bool      { return f.contains(0x20) }
func (f FeatureCompat) Contains(bit uint32) bool { return f.contains(bit) }
func (f FeatureCompat) UnknownBits() bool   { return f.unknownBits() }
func (f FeatureCompat) FlagsList() []string { return f.namesList() }

// FeatureIncompat is the s_feature_incompat bitfield: an unsupported bit
// here means the filesystem cannot be safely read or written at all.
type FeatureIncompat struct{ bitFlags }

func newFeatureIncompat(raw uint32) FeatureIncompat {
	return FeatureIncompat{newBitFlags(raw, incompatFeatureNames)}
}

const incompatBit64 uint32 = 0x80

func (f FeatureIncompat) Is64Bit() bool         { return f.contains(incompatBit64) }
func (f FeatureIncompat) Extent() bool          { return f.contains(0x40) }
func (f FeatureIncompat) FileType() bool        { return f.contains(0x2) }
func (f FeatureIncompat) Contains(bit uint32) bool { return f.contains(bit) }
func (f FeatureIncompat) UnknownBits() bool     { return f.unknownBits() }
func (f FeatureIncompat) FlagsList() []string   { return f.namesList() }

// FeatureRoCompat is the s_feature_ro_compat bitfield: an unsupported bit
// here means the filesystem must be mounted (or, here, decoded) read-only.
type FeatureRoCompat struct{ bitFlags }

func newFeatureRoCompat(raw uint32) FeatureRoCompat {
	return FeatureRoCompat{newBitFlags(raw, roCompatFeatureNames)}
}

const roCompatBigalloc uint32 = 0x200
const roCompatMetadataCsum uint32 = 0x400

func (f FeatureRoCompat) Bigalloc() bool          { return f.contains(roCompatBigalloc) }
func (f FeatureRoCompat) MetadataChecksum() bool  { return f.contains(roCompatMetadataCsum) }
func (f FeatureRoCompat) Contains(bit uint32) bool { return f.contains(bit) }
func (f FeatureRoCompat) UnknownBits() bool       { return f.unknownBits() }
func (f FeatureRoCompat) FlagsList() []string     { return f.namesList() }

// Features is the concatenation of the three feature sets' name lists, per
// Superblock.GetFeatures().
type Features struct {
	Compat    FeatureCompat
	Incompat  FeatureIncompat
	RoCompat  FeatureRoCompat
}

func (f Features) List() []string {
	out := make([]string, 0)
	out = append(out, f.Compat.FlagsList()...)
	out = append(out, f.Incompat.FlagsList()...)
	out = append(out, f.RoCompat.FlagsList()...)
	if f.Compat.UnknownBits() || f.Incompat.UnknownBits() || f.RoCompat.UnknownBits() {
		out = append(out, "(unknown_bits)")
	}
	return out
}

func (f Features) String() string {
	return strings.Join(f.List(), ",")
}
