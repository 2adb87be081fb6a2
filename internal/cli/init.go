package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docinspect/internal/logging"
	"github.com/yaklabco/docinspect/pkg/config"
	"github.com/yaklabco/docinspect/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigFile is the project config name written by init.
const defaultConfigFile = ".docinspect.yml"

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented .docinspect.yml",
		Long: `Write a project configuration file listing every option with its
default value. Edit the file to change only what you need.`,
		Example: `  docinspect init
  docinspect init --output ~/.config/docinspect/config.yaml
  docinspect init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	ctx := commandContext(cmd)
	content := []byte(config.Template())

	if flags.force {
		err = fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions)
	} else {
		err = fsutil.CreateAtomic(ctx, absPath, content, configFilePermissions)
	}
	if errors.Is(err, fsutil.ErrExists) {
		return fmt.Errorf("%w: %s already exists; use --force to overwrite", ErrUsage, flags.output)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	logger.Info("created configuration file", logging.FieldPath, absPath)
	return nil
}
