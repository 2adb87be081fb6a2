// Package fileinfo relays file-system attributes of a document location as
// display-ready text. Attribute retrieval sits behind Source so hosts can
// inject their own; any retrieval failure degrades to absent fields.
package fileinfo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is. All of them wrap
// ErrUnavailable.
var (
	// ErrUnavailable is the umbrella for every attribute retrieval failure.
	ErrUnavailable = errors.New("attributes unavailable")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = fmt.Errorf("%w: file not found", ErrUnavailable)

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = fmt.Errorf("%w: permission denied", ErrUnavailable)
)

// Attributes are raw attribute values for one file.
type Attributes struct {
	// Created is the birth time; zero when the platform does not report it.
	Created time.Time

	// Modified is the last content modification time.
	Modified time.Time

	// Size is the file size in bytes.
	Size int64

	// Owner is the owning user name (or numeric id); empty when unknown.
	Owner string

	// Mode holds the permission and type bits.
	Mode fs.FileMode
}

// Source fetches attributes for a location. Implementations may block on
// I/O; callers run them off the edit path.
type Source interface {
	FetchAttributes(ctx context.Context, location string) (*Attributes, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, location string) (*Attributes, error)

// FetchAttributes implements Source.
func (f SourceFunc) FetchAttributes(ctx context.Context, location string) (*Attributes, error) {
	return f(ctx, location)
}

// OSSource reads attributes from the local file system.
type OSSource struct{}

var _ Source = OSSource{}

// FetchAttributes implements Source.
func (OSSource) FetchAttributes(ctx context.Context, location string) (*Attributes, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch attributes: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, location, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, location, err)
		}
		return nil, fmt.Errorf("%w: stat %s: %w", ErrUnavailable, location, err)
	}

	attrs := &Attributes{
		Modified: stat.ModTime(),
		Size:     stat.Size(),
		Mode:     stat.Mode(),
	}
	attrs.Created, attrs.Owner = platformAttributes(location, stat)

	return attrs, nil
}
