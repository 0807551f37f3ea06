package ext4

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func TestDecodeInodeClassicLinux(t *testing.T) {
	b := make([]byte, InodeSizeClassic)
	binary.LittleEndian.PutUint16(b[0:2], uint16(FileTypeRegular)|uint16(ModeOwnerRead)|uint16(ModeOwnerWrite))
	binary.LittleEndian.PutUint32(b[4:8], 42) // i_size_lo
	binary.LittleEndian.PutUint32(b[16:20], 1_700_000_000) // i_mtime
	binary.LittleEndian.PutUint32(b[36:40], 7) // i_osd1 (linux version)

	in, err := DecodeInode(bytes.NewReader(b), 0, false, CreatorLinux)
	if err != nil {
		t.Fatal(err)
	}

	if in.Size != 42 {
		t.Errorf("Size = %d, want 42", in.Size)
	}
	wantMtime := time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)
	if !in.Mtime.Equal(wantMtime) {
		t.Errorf("Mtime = %v, want %v", in.Mtime, wantMtime)
	}
	if in.Osd1.Creator != CreatorLinux || in.Osd1.LinuxVersion != 7 {
		t.Errorf("Osd1 = %+v, want Linux{version=7}", in.Osd1)
	}
	if in.Mode.FileTypeFlags() != FileTypeRegular {
		t.Errorf("FileTypeFlags() = %v, want regular_file", in.Mode.FileTypeFlags())
	}
}

func TestDecodeInodeUnknownCreator(t *testing.T) {
	b := make([]byte, InodeSizeClassic)
	binary.LittleEndian.PutUint32(b[36:40], 0xABCDEF01)

	in, err := DecodeInode(bytes.NewReader(b), 0, false, Creator(99))
	if err != nil {
		t.Fatal(err)
	}
	if in.Osd1.UnknownRaw != 0xABCDEF01 {
		t.Errorf("Osd1.UnknownRaw = %#x, want 0xabcdef01", in.Osd1.UnknownRaw)
	}
}

func TestDecodeInodeLargeUidGidReunification(t *testing.T) {
	b := make([]byte, InodeSizeLarge)
	binary.LittleEndian.PutUint16(b[2:4], 0x1234)   // i_uid lo
	binary.LittleEndian.PutUint16(b[24:26], 0x5678) // i_gid lo
	// osd2 linux region starts at 116: file_acl_high at +2, uid_high at +4, gid_high at +6
	binary.LittleEndian.PutUint16(b[118:120], 0x0001) // file_acl_high (unused here)
	binary.LittleEndian.PutUint16(b[120:122], 0x0002) // uid_high
	binary.LittleEndian.PutUint16(b[122:124], 0x0003) // gid_high

	in, err := DecodeInode(bytes.NewReader(b), 0, true, CreatorLinux)
	if err != nil {
		t.Fatal(err)
	}
	if want := uint32(0x0002)<<16 | 0x1234; in.UID != want {
		t.Errorf("UID = %#x, want %#x", in.UID, want)
	}
	if want := uint32(0x0003)<<16 | 0x5678; in.GID != want {
		t.Errorf("GID = %#x, want %#x", in.GID, want)
	}
}

func TestDecodeInodeShortRead(t *testing.T) {
	b := make([]byte, InodeSizeClassic-1)
	if _, err := DecodeInode(bytes.NewReader(b), 0, false, CreatorLinux); err == nil {
		t.Error("expected short-read error")
	}
}

func TestIsReservedInode(t *testing.T) {
	if !IsReservedInode(InodeRoot) {
		t.Error("root inode should be reserved")
	}
	if IsReservedInode(11) {
		t.Error("inode 11 should not be reserved")
	}
}
