package inspector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docinspect/pkg/inspector"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want inspector.Mode
	}{
		{"full", inspector.ActiveFull},
		{"", inspector.ActiveFull},
		{"Partial", inspector.ActivePartial},
		{"inactive", inspector.Inactive},
		{"off", inspector.Inactive},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, err := inspector.ParseMode(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := inspector.ParseMode("sometimes")
	require.ErrorIs(t, err, inspector.ErrInvalidMode)
}

func TestModeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "full", inspector.ActiveFull.String())
	assert.Equal(t, "partial", inspector.ActivePartial.String())
	assert.Equal(t, "inactive", inspector.Inactive.String())
	assert.Equal(t, "Mode(9)", inspector.Mode(9).String())
}

func TestEncodingName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"utf-8", "UTF-8"},
		{"UTF-8", "UTF-8"},
		{"", ""},
		{"x-not-a-charset", "x-not-a-charset"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, inspector.EncodingName(tc.in))
		})
	}
}
