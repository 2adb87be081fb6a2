package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docinspect/internal/logging"
	"github.com/yaklabco/docinspect/internal/watch"
	"github.com/yaklabco/docinspect/pkg/config"
	"github.com/yaklabco/docinspect/pkg/document"
	"github.com/yaklabco/docinspect/pkg/inspector"
	"github.com/yaklabco/docinspect/pkg/reporter"
	"github.com/yaklabco/docinspect/pkg/runner"
)

const defaultInspectTimeout = 5 * time.Second

type inspectFlags struct {
	offset     int
	length     int
	mode       string
	format     string
	fields     []string
	compact    bool
	timeout    time.Duration
	jobs       int
	exclude    []string
	extensions []string
}

func newInspectCommand(global *globalFlags) *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect <path>...",
		Short: "Print metrics and file details for documents",
		Long: `Load files, compute their metrics and attributes once, and print a report.

The selection is given in UTF-16 code units, like the offsets an editor
reports. A range selection reports the position of its start.

With a directory or more than one path, every file found is inspected
concurrently and a summary with totals follows the per-file reports.
Hidden files and directories are skipped while walking.`,
		Example: `  docinspect inspect notes.txt
  docinspect inspect main.go --offset 120 --length 8
  docinspect inspect README.md --mode partial --fields words,lines
  docinspect inspect README.md --format json
  docinspect inspect docs --ext .md --exclude 'drafts/**'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, global, flags, args)
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.offset, "offset", 0, "selection start in UTF-16 code units")
	f.IntVar(&flags.length, "length", 0, "selection length in UTF-16 code units")
	f.StringVar(&flags.mode, "mode", "", "activation mode: full, partial")
	f.StringVar(&flags.format, "format", "", "output format: text, json")
	f.StringSliceVar(&flags.fields, "fields", nil, "fields to report, in order (see 'docinspect fields')")
	f.BoolVar(&flags.compact, "compact", false, "write single-line JSON")
	f.DurationVar(&flags.timeout, "timeout", defaultInspectTimeout, "how long to wait for each file's results")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "files inspected concurrently (0 = number of CPUs)")
	f.StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns of paths to skip while walking directories")
	f.StringSliceVar(&flags.extensions, "ext", nil, "only inspect these extensions while walking directories (e.g. .md,.txt)")

	return cmd
}

func runInspect(cmd *cobra.Command, global *globalFlags, flags *inspectFlags, args []string) error {
	if flags.offset < 0 || flags.length < 0 {
		return fmt.Errorf("%w: offset and length must not be negative", ErrUsage)
	}
	if flags.jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative", ErrUsage)
	}

	loaded, err := loadConfig(cmd, global, &config.Config{
		Mode:   flags.mode,
		Format: config.OutputFormat(flags.format),
		Fields: flags.fields,
	})
	if err != nil {
		return err
	}
	cfg := loaded.Config

	mode, err := parseMode(cfg.Mode)
	if err != nil {
		return err
	}
	rep, err := newReporter(cmd, global, cfg, flags.compact)
	if err != nil {
		return err
	}

	job := &inspectJob{
		selection: document.Selection{Location: flags.offset, Length: flags.length},
		mode:      mode,
		opts:      inspectorOptions(cfg),
		timeout:   flags.timeout,
	}
	ctx := commandContext(cmd)

	if len(args) == 1 && !isDir(args[0]) {
		job.warnClamped = true
		report, err := job.inspect(ctx, args[0])
		if err != nil {
			return err
		}
		report.Document = args[0]
		if err := rep.Report(ctx, report); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		return nil
	}

	return runBatch(ctx, rep, job, runner.Options{
		Paths:        args,
		Extensions:   flags.extensions,
		ExcludeGlobs: flags.exclude,
		Jobs:         flags.jobs,
	})
}

// runBatch inspects every discovered file, reports each in path order and
// closes with the totals.
func runBatch(ctx context.Context, rep reporter.Reporter, job *inspectJob, opts runner.Options) error {
	logger := logging.Default()

	result, err := runner.New(job.inspect).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("inspect files: %w", err)
	}

	wd, _ := os.Getwd()
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("inspect failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			continue
		}
		outcome.Report.Document = displayPath(wd, outcome.Path)
		if err := rep.Report(ctx, outcome.Report); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	stats := result.Stats
	summary := &reporter.Summary{
		Files:      stats.FilesDiscovered,
		Failed:     stats.FilesErrored,
		Characters: stats.Characters,
		Words:      stats.Words,
		Lines:      stats.Lines,
	}
	for _, lang := range stats.Languages() {
		summary.Languages = append(summary.Languages, reporter.LanguageCount{Language: lang, Files: stats.ByLanguage[lang]})
	}
	if err := rep.Summarize(ctx, summary); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if result.HasErrors() {
		return fmt.Errorf("%d of %d files could not be inspected", stats.FilesErrored, stats.FilesDiscovered)
	}
	return nil
}

// inspectJob loads and inspects one file with shared settings.
type inspectJob struct {
	selection   document.Selection
	mode        inspector.Mode
	opts        inspector.Options
	timeout     time.Duration
	warnClamped bool
}

func (j *inspectJob) inspect(ctx context.Context, path string) (*reporter.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	buf, _, err := watch.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	buf.SetSelection(j.selection)
	if got := buf.Selection(); j.warnClamped && got != j.selection {
		logging.Default().Warn("selection clamped to document",
			"requested", j.selection.String(), logging.FieldSelection, got.String())
	}

	report, err := inspectOnce(ctx, buf, j.mode, j.opts)
	if err != nil {
		return nil, err
	}
	report.Document = path
	return report, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func displayPath(wd, path string) string {
	if wd == "" {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// inspectOnce activates an inspector on doc and waits for the first value
// of every stream the mode maintains.
func inspectOnce(ctx context.Context, doc document.Handle, mode inspector.Mode, opts inspector.Options) (*reporter.Report, error) {
	ins, err := inspector.New(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("create inspector: %w", err)
	}
	defer ins.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metrics := ins.Metrics().Updates(ctx)
	fileInfo := ins.FileInfo().Updates(ctx)
	format := ins.Format().Updates(ctx)

	ins.Activate(mode)

	report := &reporter.Report{}
	m, err := first(ctx, inspector.StreamMetrics, metrics)
	if err != nil {
		return nil, err
	}
	report.Metrics = &m

	if mode == inspector.ActiveFull {
		fi, err := first(ctx, inspector.StreamFileInfo, fileInfo)
		if err != nil {
			return nil, err
		}
		report.FileInfo = &fi

		f, err := first(ctx, inspector.StreamFormat, format)
		if err != nil {
			return nil, err
		}
		report.Format = &f
	}
	return report, nil
}

func first[T any](ctx context.Context, stream string, updates <-chan T) (T, error) {
	select {
	case v, ok := <-updates:
		if ok {
			return v, nil
		}
	case <-ctx.Done():
	}
	var zero T
	return zero, fmt.Errorf("waiting for %s: %w", stream, context.Cause(ctx))
}
