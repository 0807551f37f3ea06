// Package dump renders a decoded ext4 superblock in the dumpe2fs-style
// field-listing format, for the recover CLI's dump subcommand.
package dump

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/byhowe/recover/filesystem/ext4"
)

var zeroTime = time.Unix(0, 0).UTC()

// Superblock writes a dumpe2fs-style listing of sb to w.
func Superblock(w io.Writer, sb *ext4.Superblock) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)

	line := func(label string, args ...interface{}) {
		fmt.Fprintf(tw, "%s:\t%s\n", label, fmt.Sprint(args...))
	}

	line("Filesystem volume name", trimNul(sb.VolumeName))
	line("Last mounted on", trimNul(sb.LastMounted))
	line("Filesystem UUID", sb.UUID.String())
	line("Filesystem magic number", fmt.Sprintf("%#X", sb.Magic))
	line("Filesystem revision #", sb.RevLevel.String())
	line("Filesystem features", strings.Join(sb.GetFeatures(), " "))
	line("Filesystem flags", strings.Join(sb.Flags.FlagsList(), ","))
	line("Default mount options", strings.Join(sb.DefaultMountOpts.FlagsList(), ","))
	line("Mount options", trimNul(sb.MountOpts))
	line("Filesystem state", sb.State.String())
	line("Errors behaviour", sb.Errors.String())
	line("Filesystem OS type", sb.CreatorOS.String())
	line("Inode count", sb.InodesCount)
	line("Block count", sb.GetBlocksCount())
	line("Reserved block count", sb.GetReservedBlocksCount())

	if sb.OverheadBlocks != 0 {
		line("Overhead clusters", sb.OverheadBlocks)
	}

	line("Free blocks", sb.GetFreeBlocksCount())
	line("Free inodes", sb.FreeInodesCount)
	line("First block", sb.FirstDataBlock)
	line("Block size", sb.GetBlockSize())

	if sb.FeatureRoCompat.Bigalloc() {
		line("Cluster size", sb.GetClusterSize())
	} else {
		line("Fragment size", sb.GetClusterSize())
	}

	if sb.FeatureIncompat.Is64Bit() {
		line("Group descriptor size", sb.DescSize)
	}

	if sb.ReservedGDTBlocks != 0 {
		line("Reserved GDT blocks", sb.ReservedGDTBlocks)
	}

	line("Blocks per group", sb.BlocksPerGroup)

	if sb.FeatureRoCompat.Bigalloc() {
		line("Clusters per group", sb.GetClustersPerGroup())
	} else {
		line("Fragments per group", sb.GetClustersPerGroup())
	}

	line("Inodes per group", sb.InodesPerGroup)

	if sb.RaidStride != 0 {
		line("RAID stride", sb.RaidStride)
	}
	if sb.RaidStripeWidth != 0 {
		line("RAID stripe width", sb.RaidStripeWidth)
	}
	if sb.FirstMetaBg != 0 {
		line("First meta block group", sb.FirstMetaBg)
	}

	line("Filesystem created", sb.MkfsTime.Format(time.RFC1123))
	line("Last mount time", sb.MountTime.Format(time.RFC1123))
	line("Last write time", sb.WriteTime.Format(time.RFC1123))
	line("Mount count", sb.MountCount)
	line("Maximum mount count", int16(sb.MaxMountCount))
	line("Last checked", sb.LastCheck.Format(time.RFC1123))

	if sb.KbytesWritten != 0 {
		line("Lifetime writes", humanizeKbytes(sb.KbytesWritten))
	}

	line("Reserved blocks uid", sb.DefResUID)
	line("Reserved blocks gid", sb.DefResGID)

	if sb.RevLevel == ext4.RevisionLevelDynamic {
		line("First inode", sb.FirstIno)
		line("Inode size", sb.GetInodeSize())
		if sb.MinExtraIsize != 0 {
			line("Required extra isize", sb.MinExtraIsize)
		}
		if sb.WantExtraIsize != 0 {
			line("Desired extra isize", sb.WantExtraIsize)
		}
	}

	if !sb.JournalUUID.IsNull() {
		line("Journal UUID", sb.JournalUUID.String())
	}
	if sb.JournalInum != 0 {
		line("Journal inode", sb.JournalInum)
	}
	if sb.JournalDev != 0 {
		line("Journal device", fmt.Sprintf("%#06X", sb.JournalDev))
	}
	if sb.LastOrphan != 0 {
		line("First orphan inode", sb.LastOrphan)
	}

	if sb.FeatureCompat.DirIndex() || sb.DefHashVersion != ext4.HashVersionLegacy {
		line("Default directory hash", sb.DefHashVersion.String())
	}

	if sb.JnlBackupType != 0 {
		backup := fmt.Sprintf("type %d", sb.JnlBackupType)
		if sb.JnlBackupType == 1 {
			backup = "inode blocks"
		}
		line("Journal backup", backup)
	}

	if sb.BackupBgs[0] != 0 || sb.BackupBgs[1] != 0 {
		var groups []string
		for _, g := range sb.BackupBgs {
			if g != 0 {
				groups = append(groups, fmt.Sprint(g))
			}
		}
		line("Backup block groups", strings.Join(groups, " "))
	}

	if sb.SnapshotInum != 0 {
		line("Snapshot inode", sb.SnapshotInum)
		line("Snapshot ID", sb.SnapshotID)
		line("Snapshot reserved blocks", sb.SnapshotRBlocksCount)
	}
	if sb.SnapshotList != 0 {
		line("Snapshot list head", sb.SnapshotList)
	}

	if sb.ErrorCount != 0 {
		line("FS Error count", sb.ErrorCount)
	}
	if sb.FirstErrorTime.After(zeroTime) {
		line("First error time", sb.FirstErrorTime.Format(time.RFC1123))
		line("First error function", trimNul(sb.FirstErrorFunc))
		line("First error line #", sb.FirstErrorLine)
		line("First error inode #", sb.FirstErrorIno)
		line("First error block #", sb.FirstErrorBlock)
	}
	if sb.LastErrorTime.After(zeroTime) {
		line("Last error time", sb.LastErrorTime.Format(time.RFC1123))
		line("Last error function", trimNul(sb.LastErrorFunc))
		line("Last error line #", sb.LastErrorLine)
		line("Last error inode #", sb.LastErrorIno)
		line("Last error block #", sb.LastErrorBlock)
	}

	if sb.FeatureRoCompat.MetadataChecksum() {
		line("Checksum type", sb.ChecksumType.String())
		line("Checksum", fmt.Sprintf("%#010X", sb.Checksum))
	}

	return tw.Flush()
}

// trimNul drops the trailing NUL padding of a fixed-width string field,
// which the decoder keeps.
func trimNul(s string) string {
	return strings.TrimRight(s, "\x00")
}

func humanizeKbytes(kb uint64) string {
	const unit = 1024
	if kb < unit {
		return fmt.Sprintf("%dk", kb)
	}
	div, exp := uint64(unit), 0
	for n := kb / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(kb)/float64(div), "MGTPE"[exp])
}
