//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package file

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// blockDeviceSize queries the kernel for the size of a block device via the
// BLKGETSIZE64 ioctl. Stat on a block device node reports 0, so this is the
// only reliable way to find out how far the device actually extends.
func blockDeviceSize(f *os.File) (int64, error) {
	size, err := unix.IoctlGetUint64(int(f.Fd()), unix.BLKGETSIZE64)
	if err != nil {
		return 0, fmt.Errorf("unable to determine block device size via ioctl: %w", err)
	}
	return int64(size), nil
}
