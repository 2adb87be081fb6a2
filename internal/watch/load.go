package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/docinspect/pkg/document"
	"github.com/yaklabco/docinspect/pkg/fsutil"
)

// Load reads the file at path into a new Buffer whose Location is the
// absolute path. The returned Stamp seeds a Watcher.
func Load(ctx context.Context, path string) (*document.Buffer, fsutil.Stamp, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fsutil.Stamp{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	content, stamp, err := fsutil.ReadFile(ctx, abs)
	if err != nil {
		return nil, fsutil.Stamp{}, err
	}
	text, enc, err := fsutil.Decode(content)
	if err != nil {
		return nil, fsutil.Stamp{}, fmt.Errorf("%s: %w", abs, err)
	}

	buf := document.New(text, document.Options{
		Encoding:   enc,
		LineEnding: document.DetectLineEnding(text),
		Location:   abs,
	})
	return buf, stamp, nil
}
