package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/docinspect/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/docinspect/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.docinspect.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// appName names the config directories.
const appName = "docinspect"

// projectConfigFiles are the project config names, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".docinspect.yml",
	".docinspect.yaml",
	"docinspect.yml",
	"docinspect.yaml",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations:
//   - system: SystemConfigDir()/config.{yaml,yml}
//   - user: UserConfigDir()/config.{yaml,yml}
//   - project: .docinspect.{yml,yaml} searched upward from workDir
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		System:  findConfigInDir(SystemConfigDir()),
		Project: project,
	}
	if dir := UserConfigDir(); dir != "" {
		paths.User = findConfigInDir(dir)
	}
	return paths, nil
}

// SystemConfigDir is /etc/docinspect, or %ProgramData%\docinspect on Windows.
func SystemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, appName)
	}
	return filepath.Join("/etc", appName)
}

// UserConfigDir is $XDG_CONFIG_HOME/docinspect, falling back to
// ~/.config/docinspect. It returns "" when no home directory is known.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName)
}

func findConfigInDir(dir string) string {
	return firstFile(dir, "config.yaml", "config.yml")
}

// FindProjectConfig walks from startDir toward the filesystem root and
// returns the first project config found, or "" when the walk reaches a VCS
// root, the home directory or the root without one.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := resolveStartDir(startDir)
	if err != nil {
		return "", err
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if found := firstFile(dir, projectConfigFiles...); found != "" {
			return found, nil
		}
		if stopsSearch(dir, home) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func resolveStartDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func stopsSearch(dir, home string) bool {
	if home != "" && dir == home {
		return true
	}
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// firstFile returns the first name in dir that exists as a non-directory.
func firstFile(dir string, names ...string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
