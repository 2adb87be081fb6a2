package inspector

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/docinspect/internal/logging"
	"github.com/yaklabco/docinspect/pkg/broadcast"
	"github.com/yaklabco/docinspect/pkg/fileinfo"
	"github.com/yaklabco/docinspect/pkg/textstats"
)

// Options configures an Inspector. Zero fields take the values from
// DefaultOptions.
type Options struct {
	// Executor delivers results on the consumer's execution context.
	Executor broadcast.Executor

	// Source fetches file attributes for the file info stream.
	Source fileinfo.Source

	// FileInfo controls how attributes are rendered.
	FileInfo fileinfo.FormatOptions

	// Logger receives debug diagnostics.
	Logger *log.Logger

	// Recorder receives instrumentation.
	Recorder Recorder

	// CacheSize bounds the content count cache.
	CacheSize int
}

// DefaultOptions delivers inline, reads attributes from the OS and logs to
// the default logger.
func DefaultOptions() Options {
	return Options{
		Executor:  broadcast.Inline{},
		Source:    fileinfo.OSSource{},
		FileInfo:  fileinfo.DefaultFormatOptions(),
		Logger:    logging.Default(),
		Recorder:  NopRecorder{},
		CacheSize: textstats.DefaultCacheSize,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Executor == nil {
		o.Executor = def.Executor
	}
	if o.Source == nil {
		o.Source = def.Source
	}
	if o.Logger == nil {
		o.Logger = def.Logger
	}
	if o.Recorder == nil {
		o.Recorder = def.Recorder
	}
	if o.CacheSize <= 0 {
		o.CacheSize = def.CacheSize
	}
	return o
}
