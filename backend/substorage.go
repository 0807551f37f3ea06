package backend

import (
	"io"
	"io/fs"
	"os"
)

// SubStorage is a view over an underlying Storage shifted by a fixed byte
// offset. This is how a partition offset (or a boot-sector skip) is applied:
// the decoder always seeks and reads as though position 0 were the start of
// the filesystem, and SubStorage translates that into absolute offsets on
// the real image or device.
type SubStorage struct {
	underlying Storage
	offset     int64
	size       int64
}

// Sub returns a Storage that reads the region of u starting at offset and
// extending for size bytes (size is informational; used by io.SeekEnd).
func Sub(u Storage, offset, size int64) Storage {
	return SubStorage{
		underlying: u,
		offset:     offset,
		size:       size,
	}
}

func (s SubStorage) Stat() (fs.FileInfo, error) {
	return s.underlying.Stat()
}

func (s SubStorage) Read(p []byte) (int, error) {
	return s.underlying.Read(p)
}

func (s SubStorage) Close() error {
	return s.underlying.Close()
}

func (s SubStorage) ReadAt(p []byte, off int64) (n int, err error) {
	return s.underlying.ReadAt(p, s.offset+off)
}

func (s SubStorage) Seek(offset int64, whence int) (int64, error) {
	var (
		pos int64
		err error
	)

	switch whence {
	case io.SeekStart:
		pos, err = s.underlying.Seek(offset+s.offset, io.SeekStart)
	case io.SeekCurrent:
		pos, err = s.underlying.Seek(offset, io.SeekCurrent)
	case io.SeekEnd:
		pos, err = s.underlying.Seek(s.offset+s.size+offset, io.SeekStart)
	default:
		return -1, ErrNotSuitable
	}

	if err != nil {
		return -1, err
	}

	return pos - s.offset, nil
}

func (s SubStorage) Sys() (*os.File, error) {
	return s.underlying.Sys()
}
