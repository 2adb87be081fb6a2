// Package cli provides the Cobra command structure for docinspect.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docinspect/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	logLevel   string
}

// NewRootCommand creates the root docinspect command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "docinspect",
		Short: "Live text metrics and file details for a document",
		Long: `docinspect reports statistics about a text document: characters, words,
lines, cursor position and the code point under the cursor, plus file
attributes (path, timestamps, size, owner, permissions) and format details
(encoding, line ending, language).

"inspect" prints a one-shot report. "watch" keeps the report current while
the file changes on disk.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			switch {
			case flags.debug:
				logging.SetLevel("debug")
			case flags.logLevel != "":
				logging.SetLevel(flags.logLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "path to config file")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newInspectCommand(flags))
	rootCmd.AddCommand(newWatchCommand(flags))
	rootCmd.AddCommand(newFieldsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(flags.color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
