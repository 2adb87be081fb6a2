//go:build !unix

package fileinfo

import (
	"io/fs"
	"time"
)

func platformAttributes(string, fs.FileInfo) (time.Time, string) {
	return time.Time{}, ""
}
