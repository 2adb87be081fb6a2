//go:build unix && !linux

package fileinfo

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// platformAttributes reports the owner only; birth time field names differ
// across the BSDs, so creation time stays unknown here.
func platformAttributes(path string, _ fs.FileInfo) (time.Time, string) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, ""
	}
	return time.Time{}, ownerName(st.Uid)
}
