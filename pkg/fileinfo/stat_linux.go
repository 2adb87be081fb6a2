//go:build linux

package fileinfo

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// platformAttributes uses statx, which reports birth time on file systems
// that record it.
func platformAttributes(path string, _ fs.FileInfo) (time.Time, string) {
	var stx unix.Statx_t
	mask := unix.STATX_BTIME | unix.STATX_UID
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, mask, &stx); err != nil {
		return time.Time{}, ""
	}

	var created time.Time
	if stx.Mask&unix.STATX_BTIME != 0 {
		created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}

	owner := ""
	if stx.Mask&unix.STATX_UID != 0 {
		owner = ownerName(stx.Uid)
	}
	return created, owner
}
