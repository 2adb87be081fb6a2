package inspector

import (
	"context"
	"errors"
	"time"

	"github.com/yaklabco/docinspect/pkg/fileinfo"
)

// Stream names used in logs and by Recorder.
const (
	StreamMetrics  = "metrics"
	StreamFileInfo = "fileinfo"
	StreamFormat   = "format"
)

// Reasons a computed or pending result was not published.
const (
	ReasonStale            = "stale"
	ReasonCoalesced        = "coalesced"
	ReasonInvalidSelection = "invalid_selection"
)

// Attribute fetch outcomes.
const (
	FetchOK               = "ok"
	FetchNotFound         = "not_found"
	FetchPermissionDenied = "permission_denied"
	FetchCancelled        = "cancelled"
	FetchError            = "error"
)

// Recorder receives engine instrumentation. Implementations must be safe
// for concurrent use.
type Recorder interface {
	ObserveCompute(stream string, d time.Duration)
	Published(stream string)
	Discarded(stream, reason string)
	AttributeFetch(result string)
}

// NopRecorder discards all instrumentation.
type NopRecorder struct{}

func (NopRecorder) ObserveCompute(string, time.Duration) {}
func (NopRecorder) Published(string)                     {}
func (NopRecorder) Discarded(string, string)             {}
func (NopRecorder) AttributeFetch(string)                {}

func fetchResult(err error) string {
	switch {
	case err == nil:
		return FetchOK
	case errors.Is(err, context.Canceled):
		return FetchCancelled
	case errors.Is(err, fileinfo.ErrNotFound):
		return FetchNotFound
	case errors.Is(err, fileinfo.ErrPermissionDenied):
		return FetchPermissionDenied
	default:
		return FetchError
	}
}
