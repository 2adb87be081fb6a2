package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docinspect/pkg/config"
)

// isolatedOptions loads from dir only; a .git marker stops the upward search.
func isolatedOptions(t *testing.T, dir string) LoadOptions {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t, t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoadProjectConfigFromParent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeFile(t, filepath.Join(root, ".docinspect.yml"), "mode: partial\nsize_units: iec\n")

	nested := filepath.Join(root, "docs", "guides")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	opts.WorkingDir = nested

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.ModePartial, result.Config.Mode)
	assert.Equal(t, config.SizeUnitsIEC, result.Config.SizeUnits)
	assert.Equal(t, config.DefaultDebounce, result.Config.Debounce, "unset keys keep defaults")
	assert.Equal(t, []string{filepath.Join(root, ".docinspect.yml")}, result.LoadedFrom)
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeFile(t, filepath.Join(root, ".docinspect.yml"), "mode: partial\ncache_size: 4\ndebounce: 1s\n")

	explicit := filepath.Join(root, "custom.yaml")
	writeFile(t, explicit, "cache_size: 8\nfields: [words]\n")
	opts.ExplicitPath = explicit

	cli := &config.Config{Debounce: 10 * time.Millisecond, Format: config.FormatJSON}
	opts.CLIConfig = cli

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.ModePartial, result.Config.Mode, "project")
	assert.Equal(t, 8, result.Config.CacheSize, "explicit over project")
	assert.Equal(t, []string{"words"}, result.Config.Fields, "explicit")
	assert.Equal(t, 10*time.Millisecond, result.Config.Debounce, "cli over files")
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoadEnvOverridesFiles(t *testing.T) {
	root := t.TempDir()
	opts := isolatedOptions(t, root)
	opts.IgnoreEnv = false
	writeFile(t, filepath.Join(root, ".docinspect.yml"), "mode: partial\n")

	t.Setenv("DOCINSPECT_MODE", "full")
	t.Setenv("DOCINSPECT_FIELDS", "lines, words ,")

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.ModeFull, result.Config.Mode)
	assert.Equal(t, []string{"lines", "words"}, result.Config.Fields)
}

func TestLoadInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad mode", "mode: sometimes\n", "mode"},
		{"bad units", "size_units: metric\n", "size_units"},
		{"bad level", "log_level: loud\n", "log_level"},
		{"negative cache", "cache_size: -1\n", "cache_size"},
		{"bad addr", "metrics_addr: nine-thousand\n", "metrics_addr"},
		{"unknown field", "fields: [words, mood]\n", "fields[1]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			opts := isolatedOptions(t, root)
			path := filepath.Join(root, ".docinspect.yml")
			writeFile(t, path, tc.content)

			_, err := Load(context.Background(), opts)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, path, verr.FilePath)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeFile(t, filepath.Join(root, ".docinspect.yml"), "mode: [unclosed\n")

	_, err := Load(context.Background(), opts)
	require.ErrorContains(t, err, "load project config")
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	opts.ExplicitPath = filepath.Join(root, "nope.yaml")

	_, err := Load(context.Background(), opts)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWarnsOnLiteralTimeLayout(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeFile(t, filepath.Join(root, ".docinspect.yml"), "time_layout: yesterday\n")

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "time_layout")
}

func TestLoadContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t, t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestUserConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "docinspect"), UserConfigDir())
}
