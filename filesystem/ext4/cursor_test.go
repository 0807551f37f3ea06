package ext4

import (
	"bytes"
	"testing"
)

func TestReadExactShort(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3})
	if _, err := readExact(r, 0, 10); err == nil {
		t.Fatal("expected short-read error, got nil")
	}
}

func TestCursorPrimitives(t *testing.T) {
	buf := []byte{
		0xEF, 0xBE, // u16 at 0 -> 0xBEEF
		0x78, 0x56, 0x34, 0x12, // u32 at 2 -> 0x12345678
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80, // u64 at 6 -> 0x8000000000000001
	}
	r := bytes.NewReader(buf)
	c, err := readExact(r, 0, len(buf))
	if err != nil {
		t.Fatal(err)
	}

	if got := c.u16(0); got != 0xBEEF {
		t.Errorf("u16(0) = %#x, want 0xBEEF", got)
	}
	if got := c.u32(2); got != 0x12345678 {
		t.Errorf("u32(2) = %#x, want 0x12345678", got)
	}
	if got := c.u64(6); got != 0x8000000000000001 {
		t.Errorf("u64(6) = %#x, want 0x8000000000000001", got)
	}
}

func TestConcatLoHi(t *testing.T) {
	got := concatLoHi(0, 1, 32)
	if got != 0x1_0000_0000 {
		t.Errorf("concatLoHi(0, 1, 32) = %#x, want 0x100000000", got)
	}
	if got := concatLoHi(0xFFFF, 0, 16); got != 0xFFFF {
		t.Errorf("concatLoHi(0xFFFF, 0, 16) = %#x, want 0xFFFF", got)
	}
}

func TestCursorStrInvalidUTF8(t *testing.T) {
	buf := []byte{0xFF, 0xFE, 0xFD}
	r := bytes.NewReader(buf)
	c, err := readExact(r, 0, len(buf))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.str(0, 3); err != ErrInvalidUTF8 {
		t.Errorf("str() error = %v, want ErrInvalidUTF8", err)
	}
}
