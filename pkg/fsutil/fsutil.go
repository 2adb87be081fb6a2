// Package fsutil reads documents from disk and writes files atomically.
package fsutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Sentinel errors for errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrExists           = errors.New("file already exists")
)

// Stamp identifies one observed version of a file.
type Stamp struct {
	Path    string
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// SameContent reports whether both stamps hash the same bytes.
func (s Stamp) SameContent(other Stamp) bool {
	return s.Hash == other.Hash
}

// ReadFile returns the raw content at path and a Stamp describing it.
func ReadFile(ctx context.Context, path string) ([]byte, Stamp, error) {
	if err := ctx.Err(); err != nil {
		return nil, Stamp{}, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, Stamp{}, classify(path, err)
	}
	if stat.IsDir() {
		return nil, Stamp{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, Stamp{}, classify(path, err)
	}

	return content, Stamp{
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Changed reports whether the file behind s differs from s. A missing file
// counts as changed. Size and mtime are compared first; the content is only
// re-hashed when both match.
func Changed(ctx context.Context, s Stamp) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check changed: %w", err)
	}

	stat, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, classify(s.Path, err)
	}
	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, classify(s.Path, err)
	}
	sum := sha256.Sum256(content)
	return !bytes.Equal(sum[:], s.Hash[:]), nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
