// Package runner inspects many documents concurrently.
package runner

// Options controls file discovery and concurrency for a batch run.
type Options struct {
	// Paths are the user-specified files or directories to inspect.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match ExcludeGlobs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions restricts directory walks to these extensions (lowercase,
	// with leading dot). Empty means every regular file. Paths named
	// explicitly are always inspected.
	Extensions []string

	// ExcludeGlobs skip files or directories whose path relative to
	// WorkingDir, or whose base name, matches. "**" crosses directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent inspections.
	// 0 or negative means runtime.NumCPU().
	Jobs int
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
