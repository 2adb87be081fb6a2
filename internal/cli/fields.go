package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docinspect/internal/ui/pretty"
	"github.com/yaklabco/docinspect/pkg/reporter"
)

const formatJSON = "json"

// fieldInfo represents a report field in JSON output.
type fieldInfo struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Section string `json:"section"`
}

func newFieldsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the fields a report can contain",
		Long: `List every report field with its stable ID, label and section. The IDs
are what --fields and the "fields" config key accept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids := reporter.FieldIDs()
			infos := make([]fieldInfo, 0, len(ids))
			for _, id := range ids {
				f, _ := reporter.LookupField(id)
				infos = append(infos, fieldInfo{ID: f.ID, Label: f.Label, Section: f.Section})
			}

			switch format {
			case formatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding fields: %w", err)
				}
				return nil
			case "text", "":
				writeFieldTable(cmd, infos)
				return nil
			default:
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func writeFieldTable(cmd *cobra.Command, infos []fieldInfo) {
	color, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, cmd.OutOrStdout()))

	width := 0
	for _, info := range infos {
		width = max(width, len(info.ID))
	}

	var b strings.Builder
	section := ""
	for _, info := range infos {
		if info.Section != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = info.Section
			b.WriteString(styles.Section.Render(section) + "\n")
		}
		id := info.ID + strings.Repeat(" ", width-len(info.ID))
		b.WriteString("  " + styles.Accent.Render(id) + "  " + styles.Dim.Render(info.Label) + "\n")
	}
	fmt.Fprint(cmd.OutOrStdout(), b.String())
}
