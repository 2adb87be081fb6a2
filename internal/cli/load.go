package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docinspect/internal/configloader"
	"github.com/yaklabco/docinspect/internal/logging"
	"github.com/yaklabco/docinspect/pkg/config"
	"github.com/yaklabco/docinspect/pkg/fileinfo"
	"github.com/yaklabco/docinspect/pkg/inspector"
	"github.com/yaklabco/docinspect/pkg/reporter"
)

var errConfig = errors.New("failed to load configuration")

// loadConfig resolves the layered configuration with cli on top and applies
// the resulting log level.
func loadConfig(cmd *cobra.Command, flags *globalFlags, cli *config.Config) (*configloader.LoadResult, error) {
	ctx := commandContext(cmd)
	logger := logging.Default()

	if cli == nil {
		cli = &config.Config{}
	}
	cli.LogLevel = flags.logLevel
	if flags.color == "never" {
		cli.NoColor = true
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: flags.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(errConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", "files", result.LoadedFrom)
	}
	if !flags.debug {
		logging.SetLevel(result.Config.LogLevel)
	}
	return result, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// colorMode folds NoColor into the --color flag value.
func colorMode(flags *globalFlags, cfg *config.Config) string {
	if cfg.NoColor {
		return "never"
	}
	return flags.color
}

// inspectorOptions derives engine options from a resolved configuration.
func inspectorOptions(cfg *config.Config) inspector.Options {
	opts := inspector.DefaultOptions()
	opts.CacheSize = cfg.CacheSize
	opts.FileInfo = fileinfo.FormatOptions{
		TimeLayout: cfg.TimeLayout,
		SizeUnits:  fileinfo.SizeUnits(cfg.SizeUnits),
		Zone:       time.Local,
	}
	return opts
}

func newReporter(cmd *cobra.Command, flags *globalFlags, cfg *config.Config, compact bool) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	rep, err := reporter.New(reporter.Options{
		Writer:  cmd.OutOrStdout(),
		Format:  format,
		Color:   colorMode(flags, cfg),
		Fields:  cfg.Fields,
		Compact: compact,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

// parseMode maps the configured mode to an activation mode. The config
// layer has already validated it.
func parseMode(mode string) (inspector.Mode, error) {
	m, err := inspector.ParseMode(mode)
	if err != nil {
		return inspector.Inactive, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if m == inspector.Inactive {
		return inspector.Inactive, fmt.Errorf("%w: mode must be %s or %s", ErrUsage, config.ModeFull, config.ModePartial)
	}
	return m, nil
}
