package reporter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docinspect/pkg/reporter"
	"github.com/yaklabco/docinspect/pkg/textstats"
)

func TestLookupField(t *testing.T) {
	t.Parallel()

	f, ok := reporter.LookupField(" Code_Point ")
	require.True(t, ok)
	assert.Equal(t, "code_point", f.ID)
	assert.Equal(t, reporter.SectionMetrics, f.Section)

	_, ok = reporter.LookupField("mood")
	assert.False(t, ok)
}

func TestFieldIDsAreUniqueAndResolvable(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, id := range reporter.FieldIDs() {
		assert.False(t, seen[id], "duplicate field %s", id)
		seen[id] = true
		_, ok := reporter.LookupField(id)
		assert.True(t, ok, id)
	}
	assert.Len(t, seen, 16)
}

func TestSelectFieldsEmptySelectsAll(t *testing.T) {
	t.Parallel()

	all, err := reporter.SelectFields(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(reporter.FieldIDs()))
}

func TestFieldValueAbsence(t *testing.T) {
	t.Parallel()

	words, _ := reporter.LookupField("words")
	_, ok := words.Value(nil)
	assert.False(t, ok)
	_, ok = words.Value(&reporter.Report{})
	assert.False(t, ok, "metrics not yet published")

	snap := textstats.Snapshot{Words: 3, SelectedCodePoint: "U+1F600"}
	text, ok := words.Text(&reporter.Report{Metrics: &snap})
	require.True(t, ok)
	assert.Equal(t, "3", text)

	line, _ := reporter.LookupField("line")
	_, ok = line.Value(&reporter.Report{Metrics: &snap})
	assert.False(t, ok, "cursor fields are optional")

	cp, _ := reporter.LookupField("code_point")
	text, ok = cp.Text(&reporter.Report{Metrics: &snap})
	require.True(t, ok)
	assert.Equal(t, "U+1F600", text)
}
