package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

// JSONOutput is the top-level JSON structure. Sections are omitted when their
// stream has not published; absent fields inside a section are null.
type JSONOutput struct {
	Document string         `json:"document,omitempty"`
	Metrics  map[string]any `json:"metrics,omitempty"`
	File     map[string]any `json:"file,omitempty"`
	Format   map[string]any `json:"format,omitempty"`
}

// JSONReporter formats reports as JSON.
type JSONReporter struct {
	opts   Options
	fields []Field
}

func newJSONReporter(opts Options, selected []Field) *JSONReporter {
	return &JSONReporter{opts: opts, fields: selected}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, report *Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil {
		return nil
	}

	output := JSONOutput{Document: report.Document}
	for _, f := range r.fields {
		target := r.section(&output, report, f.Section)
		if target == nil {
			continue
		}
		value, ok := f.Value(report)
		if !ok {
			value = nil
		}
		(*target)[f.ID] = value
	}

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (r *JSONReporter) section(out *JSONOutput, report *Report, section string) *map[string]any {
	var target *map[string]any
	switch section {
	case SectionMetrics:
		if report.Metrics == nil {
			return nil
		}
		target = &out.Metrics
	case SectionFile:
		if report.FileInfo == nil {
			return nil
		}
		target = &out.File
	case SectionFormat:
		if report.Format == nil {
			return nil
		}
		target = &out.Format
	default:
		return nil
	}
	if *target == nil {
		*target = map[string]any{}
	}
	return target
}
