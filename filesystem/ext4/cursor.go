package ext4

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/byhowe/recover/backend"
)

// ErrShortRead is returned when a decode operation could not read as many
// bytes as the on-disk structure requires.
var ErrShortRead = fmt.Errorf("ext4: short read while decoding on-disk structure")

// cursor reads fixed-layout little-endian structures out of a backend.Storage
// positioned at an absolute offset. On-disk integers are always
// little-endian regardless of the host, so every multi-byte field is decoded
// field-by-field through binary.LittleEndian rather than by overlaying the
// raw buffer onto a Go struct.
type cursor struct {
	buf []byte
}

// readExact reads exactly size bytes from r starting at off into a new
// cursor. Returns ErrShortRead (wrapping the underlying error, if any) when
// fewer bytes are available.
func readExact(r io.ReaderAt, off int64, size int) (cursor, error) {
	buf := make([]byte, size)
	n, err := r.ReadAt(buf, off)
	if n < size {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return cursor{}, fmt.Errorf("%w: %v", ErrShortRead, err)
	}
	return cursor{buf: buf}, nil
}

func (c cursor) u8(off int) uint8 {
	return c.buf[off]
}

func (c cursor) u16(off int) uint16 {
	return binary.LittleEndian.Uint16(c.buf[off : off+2])
}

func (c cursor) u32(off int) uint32 {
	return binary.LittleEndian.Uint32(c.buf[off : off+4])
}

func (c cursor) u64(off int) uint64 {
	return binary.LittleEndian.Uint64(c.buf[off : off+8])
}

func (c cursor) i32(off int) int32 {
	return int32(c.u32(off))
}

func (c cursor) bytes(off, n int) []byte {
	out := make([]byte, n)
	copy(out, c.buf[off:off+n])
	return out
}

// str returns the raw bytes of a fixed-width field as a string, including any
// trailing NUL padding. Trimming is a presentation concern and is
// deliberately left to callers outside the decoder. Fails with
// ErrInvalidUTF8 if the buffer is not valid UTF-8.
func (c cursor) str(off, n int) (string, error) {
	b := c.bytes(off, n)
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// concatLoHi computes (hi << loWidthBits) | lo at 64-bit width. This is the
// sole place lo/hi field reunification happens so that revision- and
// feature-gated widening logic (block counts, inode uid/gid/size, group
// descriptor counters) stays in one spot.
func concatLoHi(lo, hi uint64, loWidthBits uint) uint64 {
	return (hi << loWidthBits) | lo
}

// backend.Storage is an io.ReaderAt; readExact accepts any such source.
var _ io.ReaderAt = (backend.Storage)(nil)
