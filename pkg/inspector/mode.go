package inspector

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned by ParseMode for unknown names.
var ErrInvalidMode = errors.New("invalid activation mode")

// Mode is the activation state of an Inspector.
type Mode uint8

const (
	// Inactive runs no computation and holds no document subscription.
	Inactive Mode = iota

	// ActivePartial maintains the metrics stream only.
	ActivePartial

	// ActiveFull maintains metrics plus the file info and format streams.
	ActiveFull
)

func (m Mode) String() string {
	switch m {
	case Inactive:
		return "inactive"
	case ActivePartial:
		return "partial"
	case ActiveFull:
		return "full"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode accepts "inactive", "partial" and "full".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inactive", "off":
		return Inactive, nil
	case "partial":
		return ActivePartial, nil
	case "full", "":
		return ActiveFull, nil
	default:
		return Inactive, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m Mode) includesAttributes() bool {
	return m == ActiveFull
}
