package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docinspect/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	content, stamp, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "hello world", string(content))
	assert.Equal(t, path, stamp.Path)
	assert.Equal(t, int64(11), stamp.Size)
	assert.NotEqual(t, [32]byte{}, stamp.Hash)
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(context.Background(), dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = fsutil.ReadFile(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o600))

	_, stamp, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	changed, err := fsutil.Changed(ctx, stamp)
	require.NoError(t, err)
	assert.False(t, changed)

	// Same size, same mtime, different bytes.
	require.NoError(t, os.WriteFile(path, []byte("two"), 0o600))
	require.NoError(t, os.Chtimes(path, stamp.ModTime, stamp.ModTime))
	changed, err = fsutil.Changed(ctx, stamp)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, os.Chtimes(path, time.Now(), time.Now().Add(time.Hour)))
	_, restamped, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.False(t, stamp.SameContent(restamped))

	require.NoError(t, os.Remove(path))
	changed, err = fsutil.Changed(ctx, restamped)
	require.NoError(t, err)
	assert.True(t, changed, "removal counts as a change")
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  []byte
		text     string
		encoding string
	}{
		{"empty", nil, "", fsutil.EncodingUTF8},
		{"plain utf-8", []byte("caf\xc3\xa9"), "caf\u00e9", fsutil.EncodingUTF8},
		{"utf-8 bom", []byte("\xef\xbb\xbfhi"), "hi", fsutil.EncodingUTF8},
		{"utf-16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", fsutil.EncodingUTF16LE},
		{"utf-16be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", fsutil.EncodingUTF16BE},
		{"latin fallback", []byte("caf\xe9 \x93q\x94"), "caf\u00e9 \u201cq\u201d", fsutil.EncodingLatin},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			text, enc, err := fsutil.Decode(tc.content)
			require.NoError(t, err)
			assert.Equal(t, tc.text, text)
			assert.Equal(t, tc.encoding, enc)
		})
	}
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("first"), 0))
	require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("second"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteAtomicMissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope", "config.yaml")
	require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
}

func TestCreateAtomicRefusesExisting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, fsutil.CreateAtomic(ctx, path, []byte("first"), 0))
	require.ErrorIs(t, fsutil.CreateAtomic(ctx, path, []byte("second"), 0), fsutil.ErrExists)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
}
