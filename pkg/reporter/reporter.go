// Package reporter renders inspector snapshots as styled text or JSON.
package reporter

import (
	"context"
	"fmt"
)

// Reporter writes reports, one per call, and batch totals.
type Reporter interface {
	Report(ctx context.Context, report *Report) error
	Summarize(ctx context.Context, summary *Summary) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	selected, err := SelectFields(opts.Fields)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return newJSONReporter(opts, selected), nil
	default:
		return newTextReporter(opts, selected), nil
	}
}
