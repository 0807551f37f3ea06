package ext4

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestDecodeGroupDesc32(t *testing.T) {
	b := make([]byte, GroupDescSize32)
	binary.LittleEndian.PutUint32(b[0:4], 100)  // block_bitmap
	binary.LittleEndian.PutUint32(b[4:8], 101)  // inode_bitmap
	binary.LittleEndian.PutUint32(b[8:12], 102) // inode_table
	binary.LittleEndian.PutUint16(b[12:14], 10) // free_blocks_count
	binary.LittleEndian.PutUint16(b[14:16], 5)  // free_inodes_count
	binary.LittleEndian.PutUint16(b[16:18], 2)  // used_dirs_count
	binary.LittleEndian.PutUint16(b[18:20], 0x1) // flags: inode_uninit

	gd, err := DecodeGroupDesc(bytes.NewReader(b), 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if gd.BlockBitmap != 100 || gd.InodeBitmap != 101 || gd.InodeTable != 102 {
		t.Errorf("bitmap/table locations wrong: %+v", gd)
	}
	if gd.FreeBlocksCount != 10 || gd.FreeInodesCount != 5 || gd.UsedDirsCount != 2 {
		t.Errorf("counters wrong: %+v", gd)
	}
	if !gd.Flags.InodeUninit() {
		t.Error("expected inode_uninit flag")
	}
}

func TestDecodeGroupDesc64ReunifiesHi(t *testing.T) {
	b := make([]byte, GroupDescSize64)
	binary.LittleEndian.PutUint32(b[0:4], 0x1)    // block_bitmap_lo
	binary.LittleEndian.PutUint32(b[32:36], 0x1)  // block_bitmap_hi
	binary.LittleEndian.PutUint16(b[12:14], 0xFFFF) // free_blocks_count_lo
	binary.LittleEndian.PutUint16(b[44:46], 0x1)    // free_blocks_count_hi

	gd, err := DecodeGroupDesc(bytes.NewReader(b), 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if want := uint64(1)<<32 | 1; gd.BlockBitmap != want {
		t.Errorf("BlockBitmap = %#x, want %#x", gd.BlockBitmap, want)
	}
	if want := uint32(1)<<16 | 0xFFFF; gd.FreeBlocksCount != want {
		t.Errorf("FreeBlocksCount = %#x, want %#x", gd.FreeBlocksCount, want)
	}
}

func TestDecodeGroupDescShortRead(t *testing.T) {
	b := make([]byte, GroupDescSize32-1)
	if _, err := DecodeGroupDesc(bytes.NewReader(b), 0, false); err == nil {
		t.Error("expected short-read error")
	}
}
