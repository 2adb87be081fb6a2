package inspector

import "errors"

// ErrNilDocument is returned by New when no document is given.
var ErrNilDocument = errors.New("document is nil")
