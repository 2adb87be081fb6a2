package fileinfo

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// SizeUnits selects decimal (kB, MB) or binary (KiB, MiB) size prefixes.
type SizeUnits string

const (
	SizeUnitsSI  SizeUnits = "si"
	SizeUnitsIEC SizeUnits = "iec"
)

// IsValid reports whether u is a known unit system.
func (u SizeUnits) IsValid() bool {
	switch u {
	case SizeUnitsSI, SizeUnitsIEC:
		return true
	default:
		return false
	}
}

// FormatOptions controls how attribute values become text.
type FormatOptions struct {
	// TimeLayout is a time.Format layout. Defaults to time.DateTime.
	TimeLayout string

	// SizeUnits defaults to SizeUnitsSI.
	SizeUnits SizeUnits

	// Zone is the display time zone. Defaults to time.Local.
	Zone *time.Location
}

// DefaultFormatOptions returns FormatOptions with sensible defaults.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		TimeLayout: time.DateTime,
		SizeUnits:  SizeUnitsSI,
		Zone:       time.Local,
	}
}

// Snapshot is the display form of a file's attributes. An empty field means
// the value is unavailable. Snapshot is a plain value, so copies share no
// state.
type Snapshot struct {
	Path       string
	Created    string
	Modified   string
	Size       string
	Owner      string
	Permission string
}

// IsEmpty reports whether every field is absent.
func (s Snapshot) IsEmpty() bool {
	return s == Snapshot{}
}

// Format converts fetched attributes into a Snapshot. A non-nil fetchErr,
// nil attrs or an empty location yields an empty Snapshot.
func Format(location string, attrs *Attributes, fetchErr error, opts FormatOptions) Snapshot {
	if location == "" || fetchErr != nil || attrs == nil {
		return Snapshot{}
	}
	opts = opts.withDefaults()

	snap := Snapshot{
		Path:       location,
		Size:       formatSize(attrs.Size, opts.SizeUnits),
		Permission: fmt.Sprintf("%s (%04o)", attrs.Mode.String(), uint32(attrs.Mode.Perm())),
		Owner:      attrs.Owner,
	}
	if !attrs.Created.IsZero() {
		snap.Created = attrs.Created.In(opts.Zone).Format(opts.TimeLayout)
	}
	if !attrs.Modified.IsZero() {
		snap.Modified = attrs.Modified.In(opts.Zone).Format(opts.TimeLayout)
	}
	return snap
}

// Load fetches and formats attributes for location. The Snapshot is always
// usable; the error is returned only so callers can log why fields are
// absent.
func Load(ctx context.Context, src Source, location string, opts FormatOptions) (Snapshot, error) {
	if location == "" || src == nil {
		return Snapshot{}, nil
	}
	attrs, err := src.FetchAttributes(ctx, location)
	return Format(location, attrs, err, opts), err
}

func formatSize(size int64, units SizeUnits) string {
	if size < 0 {
		size = 0
	}
	human := humanize.Bytes(uint64(size))
	if units == SizeUnitsIEC {
		human = humanize.IBytes(uint64(size))
	}
	return fmt.Sprintf("%s (%s bytes)", human, humanize.Comma(size))
}

func (o FormatOptions) withDefaults() FormatOptions {
	def := DefaultFormatOptions()
	if o.TimeLayout == "" {
		o.TimeLayout = def.TimeLayout
	}
	if !o.SizeUnits.IsValid() {
		o.SizeUnits = def.SizeUnits
	}
	if o.Zone == nil {
		o.Zone = def.Zone
	}
	return o
}
