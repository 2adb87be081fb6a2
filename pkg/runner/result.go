package runner

import (
	"cmp"
	"maps"
	"slices"

	"github.com/yaklabco/docinspect/pkg/reporter"
)

// FileOutcome is the result of inspecting one file.
type FileOutcome struct {
	Path string

	// Report is nil when Error is set.
	Report *reporter.Report

	Error error
}

// Stats aggregates metrics over every successfully inspected file.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	Characters int
	Words      int
	Lines      int

	// ByLanguage counts files per detected language. Files inspected
	// without a format snapshot are not counted.
	ByLanguage map[string]int
}

// Languages returns the keys of ByLanguage, most frequent first and then by
// name.
func (s Stats) Languages() []string {
	langs := slices.Collect(maps.Keys(s.ByLanguage))
	slices.SortFunc(langs, func(a, b string) int {
		if d := cmp.Compare(s.ByLanguage[b], s.ByLanguage[a]); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})
	return langs
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any file failed to be inspected.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{ByLanguage: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Report == nil {
		return
	}

	r.Stats.FilesProcessed++

	if m := outcome.Report.Metrics; m != nil {
		r.Stats.Characters += m.Characters
		r.Stats.Words += m.Words
		r.Stats.Lines += m.Lines
	}
	if f := outcome.Report.Format; f != nil && f.Language != "" {
		r.Stats.ByLanguage[f.Language]++
	}
}
