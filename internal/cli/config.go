package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docinspect/internal/configloader"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration resolution",
		Long: `Show the configuration docinspect would run with, where it looks for
config files, and which environment variables it reads.

Sources, lowest precedence first: defaults, system config, user config,
project config, --config, DOCINSPECT_* variables, command-line flags.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadConfig(cmd, global, nil)
			if err != nil {
				return err
			}
			header := "# resolved from defaults"
			if len(loaded.LoadedFrom) > 0 {
				header = "# resolved from defaults, " + strings.Join(loaded.LoadedFrom, ", ")
			}
			out, err := loaded.Config.ToYAMLWithHeader(header)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "paths",
		Short: "List config file locations and which ones exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := configloader.DiscoverPaths(commandContext(cmd), "")
			if err != nil {
				return err
			}
			paths.Explicit = global.configPath

			out := cmd.OutOrStdout()
			row := func(name, found, searched string) {
				if found == "" {
					found = "(none)"
				}
				fmt.Fprintf(out, "%-9s %s\n", name, found)
				if searched != "" {
					fmt.Fprintf(out, "%-9s   searched %s\n", "", searched)
				}
			}
			row("system", paths.System, configloader.SystemConfigDir())
			row("user", paths.User, configloader.UserConfigDir())
			row("project", paths.Project, "")
			row("explicit", paths.Explicit, "")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			vars := configloader.ListEnvVars()
			names := slices.Sorted(maps.Keys(vars))
			width := 0
			for _, name := range names {
				width = max(width, len(name))
			}
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, name, vars[name])
			}
		},
	})

	return cmd
}
