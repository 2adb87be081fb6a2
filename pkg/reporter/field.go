package reporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/docinspect/pkg/fileinfo"
	"github.com/yaklabco/docinspect/pkg/inspector"
	"github.com/yaklabco/docinspect/pkg/textstats"
)

// ErrUnknownField is returned when a field identifier is not in the table.
var ErrUnknownField = errors.New("unknown field")

// Section names group fields in output.
const (
	SectionMetrics = "metrics"
	SectionFile    = "file"
	SectionFormat  = "format"
)

// Report is everything known about one document at one point in time.
// Nil snapshots mean the stream has not published.
type Report struct {
	Document string
	Metrics  *textstats.Snapshot
	FileInfo *fileinfo.Snapshot
	Format   *inspector.FormatSnapshot
}

// Field is one displayable value, identified by a stable ID.
type Field struct {
	ID      string
	Label   string
	Section string

	// value returns the field's value (int or string) and whether it is
	// present.
	value func(r *Report) (any, bool)
}

// Value extracts the field from r.
func (f Field) Value(r *Report) (any, bool) {
	if r == nil {
		return nil, false
	}
	return f.value(r)
}

// Text is Value rendered as display text.
func (f Field) Text(r *Report) (string, bool) {
	v, ok := f.Value(r)
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

func metricInt(get func(s *textstats.Snapshot) int) func(*Report) (any, bool) {
	return func(r *Report) (any, bool) {
		if r.Metrics == nil {
			return nil, false
		}
		return get(r.Metrics), true
	}
}

// cursorInt reads a cursor field, present only when the snapshot has a
// cursor.
func cursorInt(get func(s *textstats.Snapshot) int) func(*Report) (any, bool) {
	return func(r *Report) (any, bool) {
		if r.Metrics == nil || !r.Metrics.HasCursor {
			return nil, false
		}
		return get(r.Metrics), true
	}
}

func fileText(get func(s *fileinfo.Snapshot) string) func(*Report) (any, bool) {
	return func(r *Report) (any, bool) {
		if r.FileInfo == nil || get(r.FileInfo) == "" {
			return nil, false
		}
		return get(r.FileInfo), true
	}
}

func formatText(get func(s *inspector.FormatSnapshot) string) func(*Report) (any, bool) {
	return func(r *Report) (any, bool) {
		if r.Format == nil || get(r.Format) == "" {
			return nil, false
		}
		return get(r.Format), true
	}
}

// fields is the field table in display order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fields = []Field{
	{"characters", "Characters", SectionMetrics, metricInt(func(s *textstats.Snapshot) int { return s.Characters })},
	{"words", "Words", SectionMetrics, metricInt(func(s *textstats.Snapshot) int { return s.Words })},
	{"lines", "Lines", SectionMetrics, metricInt(func(s *textstats.Snapshot) int { return s.Lines })},
	{"location", "Location", SectionMetrics, cursorInt(func(s *textstats.Snapshot) int { return s.CursorLocation })},
	{"line", "Line", SectionMetrics, cursorInt(func(s *textstats.Snapshot) int { return s.CurrentLine })},
	{"column", "Column", SectionMetrics, cursorInt(func(s *textstats.Snapshot) int { return s.ColumnInLine })},
	{"code_point", "Code point", SectionMetrics, func(r *Report) (any, bool) {
		if r.Metrics == nil || !r.Metrics.HasCodePoint() {
			return nil, false
		}
		return r.Metrics.SelectedCodePoint, true
	}},
	{"path", "Path", SectionFile, fileText(func(s *fileinfo.Snapshot) string { return s.Path })},
	{"created", "Created", SectionFile, fileText(func(s *fileinfo.Snapshot) string { return s.Created })},
	{"modified", "Modified", SectionFile, fileText(func(s *fileinfo.Snapshot) string { return s.Modified })},
	{"size", "Size", SectionFile, fileText(func(s *fileinfo.Snapshot) string { return s.Size })},
	{"owner", "Owner", SectionFile, fileText(func(s *fileinfo.Snapshot) string { return s.Owner })},
	{"permission", "Permission", SectionFile, fileText(func(s *fileinfo.Snapshot) string { return s.Permission })},
	{"encoding", "Encoding", SectionFormat, formatText(func(s *inspector.FormatSnapshot) string { return s.Encoding })},
	{"line_ending", "Line ending", SectionFormat, formatText(func(s *inspector.FormatSnapshot) string { return s.LineEnding })},
	{"language", "Language", SectionFormat, formatText(func(s *inspector.FormatSnapshot) string { return s.Language })},
}

//nolint:gochecknoglobals // Built once from fields.
var fieldsByID = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.ID] = f
	}
	return m
}()

// LookupField returns the field registered under id.
func LookupField(id string) (Field, bool) {
	f, ok := fieldsByID[strings.ToLower(strings.TrimSpace(id))]
	return f, ok
}

// FieldIDs lists every field ID in display order.
func FieldIDs() []string {
	ids := make([]string, len(fields))
	for i, f := range fields {
		ids[i] = f.ID
	}
	return ids
}

// SelectFields resolves ids into fields, keeping their order. An empty list
// selects every field.
func SelectFields(ids []string) ([]Field, error) {
	if len(ids) == 0 {
		return append([]Field(nil), fields...), nil
	}
	out := make([]Field, 0, len(ids))
	for _, id := range ids {
		f, ok := LookupField(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownField, id, strings.Join(FieldIDs(), ", "))
		}
		out = append(out, f)
	}
	return out, nil
}
