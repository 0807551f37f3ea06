package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/byhowe/recover/backend"
)

type rawBackend struct {
	storage fs.File
}

// New creates a backend.Storage from a provided fs.File.
func New(f fs.File) backend.Storage {
	return rawBackend{storage: f}
}

// OpenFromPath creates a backend.Storage from a path to a device or image
// file. Should pass a path to a block device e.g. /dev/sda or a path to a
// file /tmp/foo.img. The decoder never writes, so the file is always opened
// O_RDONLY regardless of the caller's own permissions on it.
func OpenFromPath(pathName string) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass device or file name")
	}

	if _, err := os.Stat(pathName); os.IsNotExist(err) {
		return nil, fmt.Errorf("provided device/file %s does not exist", pathName)
	}

	f, err := os.OpenFile(pathName, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open device %s read-only: %w", pathName, err)
	}

	return rawBackend{storage: f}, nil
}

// backend.Storage interface guard
var _ backend.Storage = (*rawBackend)(nil)

// Sys returns the OS-specific file backing this storage, for ioctl calls.
func (f rawBackend) Sys() (*os.File, error) {
	if osFile, ok := f.storage.(*os.File); ok {
		return osFile, nil
	}
	return nil, backend.ErrNotSuitable
}

func (f rawBackend) Stat() (fs.FileInfo, error) {
	return f.storage.Stat()
}

func (f rawBackend) Read(b []byte) (int, error) {
	return f.storage.Read(b)
}

func (f rawBackend) Close() error {
	return f.storage.Close()
}

func (f rawBackend) ReadAt(p []byte, off int64) (n int, err error) {
	if readerAt, ok := f.storage.(io.ReaderAt); ok {
		return readerAt.ReadAt(p, off)
	}
	return -1, backend.ErrNotSuitable
}

func (f rawBackend) Seek(offset int64, whence int) (int64, error) {
	if seeker, ok := f.storage.(io.Seeker); ok {
		return seeker.Seek(offset, whence)
	}
	return -1, backend.ErrNotSuitable
}

// Size reports the byte size of the backing storage. For a regular file this
// is its stat size; for a block device, stat size is usually zero, so the
// real size is fetched with BLKGETSIZE64 via ioctl on the underlying fd.
func Size(s backend.Storage) (int64, error) {
	info, err := s.Stat()
	if err != nil {
		return 0, err
	}

	if info.Mode()&os.ModeDevice == 0 {
		return info.Size(), nil
	}

	osFile, err := s.Sys()
	if err != nil {
		return 0, err
	}

	return blockDeviceSize(osFile)
}
