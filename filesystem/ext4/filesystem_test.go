package ext4

import (
	"bytes"
	"encoding/binary"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/byhowe/recover/backend"
)

// memStorage is an in-memory backend.Storage over a fixed byte slice, for
// exercising FileSystem without touching the filesystem.
type memStorage struct {
	*bytes.Reader
}

func newMemStorage(b []byte) memStorage {
	return memStorage{bytes.NewReader(b)}
}

func (memStorage) Stat() (fs.FileInfo, error) { return nil, backend.ErrNotSuitable }
func (memStorage) Close() error               { return nil }
func (memStorage) Sys() (*os.File, error)     { return nil, backend.ErrNotSuitable }

// buildSyntheticImage assembles a minimal two-group ext4 image: a valid
// superblock at offset 1024, a 32-bit group descriptor table immediately
// after it, and an inode table containing one populated inode in group 0.
func buildSyntheticImage(t *testing.T) []byte {
	t.Helper()

	const imageSize = 16 * 1024
	img := make([]byte, imageSize)

	sbBuf := newSuperblockBuf() // blocks_count=64, blocks_per_group=32, inodes_per_group=8
	copy(img[1024:1024+SuperblockSize], sbBuf)

	const gdOffset = 2048 // ((1024/1024)+1)*1024
	const inodeTableBlock = 5
	gd0 := make([]byte, GroupDescSize32)
	binary.LittleEndian.PutUint32(gd0[8:12], inodeTableBlock) // inode_table
	copy(img[gdOffset:gdOffset+GroupDescSize32], gd0)

	gd1 := make([]byte, GroupDescSize32)
	binary.LittleEndian.PutUint32(gd1[8:12], inodeTableBlock+1)
	copy(img[gdOffset+GroupDescSize32:gdOffset+2*GroupDescSize32], gd1)

	inodeTableOffset := inodeTableBlock * 1024 // block_size
	rootInode := make([]byte, InodeSizeClassic)
	binary.LittleEndian.PutUint32(rootInode[4:8], 7) // i_size_lo
	copy(img[inodeTableOffset+InodeSizeClassic:inodeTableOffset+2*InodeSizeClassic], rootInode) // inode #2 (index 1)

	return img
}

func TestOpenAndReadInode(t *testing.T) {
	img := buildSyntheticImage(t)
	src := newMemStorage(img)

	fs, err := Open(src, 0)
	require.NoError(t, err)
	require.Nil(t, fs.Superblock.CheckSignature(), "expected valid signature")

	in, err := fs.ReadInode(InodeRoot)
	require.NoError(t, err)
	require.Equal(t, uint64(7), in.Size)
}

func TestOpenWithPartitionOffset(t *testing.T) {
	img := buildSyntheticImage(t)
	padded := append(make([]byte, 512), img...)
	src := newMemStorage(padded)

	fs, err := Open(src, 512)
	if err != nil {
		t.Fatal(err)
	}
	if fs.Superblock.CheckSignature() != nil {
		t.Fatal("expected valid signature with partition offset applied")
	}
}

func TestGroupDescIteratorWalksAllGroups(t *testing.T) {
	img := buildSyntheticImage(t)
	src := newMemStorage(img)

	fs, err := Open(src, 0)
	if err != nil {
		t.Fatal(err)
	}

	it := fs.GroupDescriptors()
	if got := it.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	var count int
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Errorf("iterated %d group descriptors, want 2", count)
	}

	if _, ok := it.Next(); ok {
		t.Error("expected iterator to stay exhausted after completion")
	}
}

func TestGroupDescIteratorTerminatesEarlyOnShortRead(t *testing.T) {
	img := buildSyntheticImage(t)
	truncated := img[:2048+GroupDescSize32+1] // only room for one full descriptor
	src := newMemStorage(truncated)

	fs, err := Open(src, 0)
	if err != nil {
		t.Fatal(err)
	}

	it := fs.GroupDescriptors()
	if _, ok := it.Next(); !ok {
		t.Fatal("expected first group descriptor to decode")
	}
	if _, ok := it.Next(); ok {
		t.Error("expected second descriptor read to fail and terminate the sequence")
	}
	if _, ok := it.Next(); ok {
		t.Error("expected iterator to remain exhausted after early termination")
	}
}
