package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/yaklabco/docinspect/internal/configloader"
	"github.com/yaklabco/docinspect/pkg/fsutil"
)

// Exit codes for docinspect, following sysexits.h where one applies.
const (
	ExitSuccess       = 0
	ExitFailure       = 1
	ExitInvalidUsage  = 64
	ExitConfigError   = 65
	ExitNoInput       = 66
	ExitInternalError = 70
	ExitIOError       = 74
	ExitTimeout       = 75
)

// ErrUsage marks errors caused by bad arguments or flags.
var ErrUsage = errors.New("invalid usage")

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var verr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.As(err, &verr), errors.Is(err, errConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrIsDirectory), errors.Is(err, fs.ErrNotExist):
		return ExitNoInput
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeout
	default:
		return ExitFailure
	}
}
