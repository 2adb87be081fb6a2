package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/yaklabco/docinspect/internal/logging"
	"github.com/yaklabco/docinspect/internal/metrics"
	"github.com/yaklabco/docinspect/internal/watch"
	"github.com/yaklabco/docinspect/pkg/broadcast"
	"github.com/yaklabco/docinspect/pkg/config"
	"github.com/yaklabco/docinspect/pkg/document"
	"github.com/yaklabco/docinspect/pkg/fileinfo"
	"github.com/yaklabco/docinspect/pkg/inspector"
	"github.com/yaklabco/docinspect/pkg/reporter"
	"github.com/yaklabco/docinspect/pkg/textstats"
)

const shutdownTimeout = 5 * time.Second

type watchFlags struct {
	offset      int
	length      int
	mode        string
	format      string
	fields      []string
	debounce    time.Duration
	metricsAddr string
}

func newWatchCommand(global *globalFlags) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Keep reporting while a document changes on disk",
		Long: `Load a file and print a fresh report whenever its content, format or
attributes change. Removing the file turns the document into an unsaved
one; recreating it picks the file up again.

JSON output is written as one object per line. With --metrics-addr the
engine's counters are served for Prometheus at /metrics.`,
		Example: `  docinspect watch notes.txt
  docinspect watch notes.txt --format json --fields words,lines
  docinspect watch notes.txt --metrics-addr 127.0.0.1:9464`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, global, flags, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.offset, "offset", 0, "selection start in UTF-16 code units")
	f.IntVar(&flags.length, "length", 0, "selection length in UTF-16 code units")
	f.StringVar(&flags.mode, "mode", "", "activation mode: full, partial")
	f.StringVar(&flags.format, "format", "", "output format: text, json")
	f.StringSliceVar(&flags.fields, "fields", nil, "fields to report, in order (see 'docinspect fields')")
	f.DurationVar(&flags.debounce, "debounce", 0, "delay before reloading after a file event (default from config)")
	f.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func runWatch(cmd *cobra.Command, global *globalFlags, flags *watchFlags, path string) error {
	if flags.offset < 0 || flags.length < 0 {
		return fmt.Errorf("%w: offset and length must not be negative", ErrUsage)
	}

	loaded, err := loadConfig(cmd, global, &config.Config{
		Mode:        flags.mode,
		Format:      config.OutputFormat(flags.format),
		Fields:      flags.fields,
		Debounce:    flags.debounce,
		MetricsAddr: flags.metricsAddr,
	})
	if err != nil {
		return err
	}
	cfg := loaded.Config
	logger := logging.Default()

	mode, err := parseMode(cfg.Mode)
	if err != nil {
		return err
	}
	rep, err := newReporter(cmd, global, cfg, true)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	buf, stamp, err := watch.Load(ctx, path)
	if err != nil {
		return err
	}
	buf.SetSelection(document.Selection{Location: flags.offset, Length: flags.length})

	opts := inspectorOptions(cfg)
	exec := broadcast.NewSerial()
	defer exec.Close()
	opts.Executor = exec

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts.Recorder = metrics.NewPrometheusRecorder(reg)

		shutdown, err := serveMetrics(cfg.MetricsAddr, reg)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	ins, err := inspector.New(buf, opts)
	if err != nil {
		return fmt.Errorf("create inspector: %w", err)
	}
	defer ins.Close()

	w, err := watch.New(buf, stamp, watch.Options{Debounce: cfg.Debounce, Logger: logger})
	if err != nil {
		return err
	}
	defer w.Close()

	live := &liveReport{ctx: ctx, rep: rep, report: reporter.Report{Document: path}, logger: logger}
	ins.Metrics().Subscribe(live.setMetrics)
	ins.FileInfo().Subscribe(live.setFileInfo)
	ins.Format().Subscribe(live.setFormat)

	if err := w.Start(ctx); err != nil {
		return err
	}
	ins.Activate(mode)
	logger.Info("watching", logging.FieldPath, buf.Location(), logging.FieldMode, mode)

	<-ctx.Done()
	logger.Debug("stopping")
	return nil
}

// liveReport re-renders the combined report after every delivery.
type liveReport struct {
	ctx    context.Context
	rep    reporter.Reporter
	logger *log.Logger

	mu     sync.Mutex
	report reporter.Report
}

func (l *liveReport) setMetrics(s textstats.Snapshot) {
	l.update(func(r *reporter.Report) { r.Metrics = &s })
}

func (l *liveReport) setFileInfo(s fileinfo.Snapshot) {
	l.update(func(r *reporter.Report) { r.FileInfo = &s })
}

func (l *liveReport) setFormat(s inspector.FormatSnapshot) {
	l.update(func(r *reporter.Report) { r.Format = &s })
}

func (l *liveReport) update(apply func(*reporter.Report)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	apply(&l.report)
	snapshot := l.report
	if err := l.rep.Report(l.ctx, &snapshot); err != nil {
		l.logger.Warn("report failed", logging.FieldError, err)
	}
}

// serveMetrics listens on addr and serves /metrics until the returned
// function is called.
func serveMetrics(addr string, reg *prometheus.Registry) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: shutdownTimeout}

	logger := logging.Default().With(logging.FieldAddr, ln.Addr().String())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", logging.FieldError, err)
		}
	}()
	logger.Info("serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
