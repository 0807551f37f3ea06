// Package ext4 decodes the on-disk metadata of an ext2/3/4 filesystem image:
// the primary superblock, the block-group descriptor table, and inode
// records. It never writes, never walks directories, never resolves extent
// trees or block pointers to file content, and never replays the journal —
// it only exposes a typed, host-endian view of what the kernel's own
// on-disk structures contain.
package ext4

import (
	"fmt"

	"github.com/byhowe/recover/backend"
)

// superblockOffset is the fixed byte offset of the primary superblock within
// the filesystem, before any partition_offset is applied.
const superblockOffset = 1024

// FileSystem binds a byte source to its decoded superblock. Open seeks past
// the boot/reserved area and reads the primary superblock; the returned
// FileSystem exclusively borrows source for the rest of its lifetime — no
// concurrent use of source is permitted while a FileSystem or any iterator
// derived from it is alive.
type FileSystem struct {
	source     backend.Storage
	Superblock *Superblock
}

// Open decodes the primary superblock of the image behind source, offset by
// partitionOffset bytes (e.g. to skip a partition table / preceding
// partitions on a whole-disk image). Decode succeeds even when the magic
// signature does not match; check fs.Superblock.CheckSignature() separately.
func Open(source backend.Storage, partitionOffset int64) (*FileSystem, error) {
	view := backend.Sub(source, partitionOffset, 0)

	sb, err := DecodeSuperblock(view, superblockOffset)
	if err != nil {
		return nil, fmt.Errorf("ext4: opening filesystem: %w", err)
	}

	return &FileSystem{source: view, Superblock: sb}, nil
}

// ReadInode decodes the inode numbered n (1-based, per the on-disk
// convention) from the inode table of the block group it falls in.
func (fs *FileSystem) ReadInode(n uint32) (*Inode, error) {
	if n == 0 {
		return nil, fmt.Errorf("ext4: inode 0 does not exist")
	}

	sb := fs.Superblock
	group := (n - 1) / sb.InodesPerGroup
	indexInGroup := (n - 1) % sb.InodesPerGroup

	gd, err := fs.groupDescriptorAt(uint64(group))
	if err != nil {
		return nil, fmt.Errorf("ext4: reading inode %d: %w", n, err)
	}

	inodeSize := int64(sb.GetInodeSize())
	offset := int64(gd.InodeTable)*int64(sb.GetBlockSize()) + int64(indexInGroup)*inodeSize

	return DecodeInode(fs.source, offset, inodeSize > InodeSizeClassic, sb.CreatorOS)
}

// groupDescriptorAt decodes the group descriptor at index i directly,
// without going through the iterator — used by ReadInode so a single
// lookup does not have to walk the whole table.
func (fs *FileSystem) groupDescriptorAt(i uint64) (*GroupDesc, error) {
	sb := fs.Superblock
	stride := sb.groupDescStride()
	off := sb.firstGroupDescOffset() + int64(i)*stride
	return DecodeGroupDesc(fs.source, off, sb.FeatureIncompat.Is64Bit())
}

// GroupDescriptors returns a lazy, finite, single-pass, non-restartable
// iterator over the block-group descriptor table. Its reported length is
// ceil(blocks_count / blocks_per_group) — the corrected formula; see
// DESIGN.md for the discrepancy with the original inodes_count-based count.
func (fs *FileSystem) GroupDescriptors() *GroupDescIterator {
	sb := fs.Superblock
	return &GroupDescIterator{
		fs:     fs,
		count:  sb.groupCount(),
		stride: sb.groupDescStride(),
		base:   sb.firstGroupDescOffset(),
	}
}

// GroupDescIterator walks the group-descriptor table one entry at a time.
// It holds an exclusive borrow of its FileSystem's byte source for its
// entire lifetime, per the single-threaded, strictly sequential concurrency
// model: no concurrent use of the source is safe while iterating.
type GroupDescIterator struct {
	fs     *FileSystem
	count  uint64
	stride int64
	base   int64
	index  uint64
	done   bool
}

// Len reports the sequence's total length hint, independent of how far
// iteration has progressed.
func (it *GroupDescIterator) Len() uint64 {
	return it.count
}

// Next decodes and returns the next group descriptor, or (nil, false) once
// the sequence is exhausted. On I/O failure the sequence terminates early
// rather than raising: subsequent calls also return (nil, false).
func (it *GroupDescIterator) Next() (*GroupDesc, bool) {
	if it.done || it.index >= it.count {
		it.done = true
		return nil, false
	}

	off := it.base + int64(it.index)*it.stride
	gd, err := DecodeGroupDesc(it.fs.source, off, it.stride == GroupDescSize64)
	if err != nil {
		it.done = true
		return nil, false
	}

	it.index++
	return gd, true
}
