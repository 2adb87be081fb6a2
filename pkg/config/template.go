package config

import (
	"fmt"
	"strings"
)

// Template returns a commented configuration file holding the defaults.
func Template() string {
	def := NewConfig()

	var b strings.Builder
	b.WriteString("# docinspect configuration\n\n")
	writeEntry(&b, "Activation mode: full (metrics, file info, format) or partial (metrics only).",
		"mode", def.Mode)
	writeEntry(&b, "Log level: debug, info, warn or error.", "log_level", def.LogLevel)
	writeEntry(&b, "Go time layout for created/modified timestamps.",
		"time_layout", fmt.Sprintf("%q", def.TimeLayout))
	writeEntry(&b, "File size prefixes: si (kB, MB) or iec (KiB, MiB).", "size_units", def.SizeUnits)
	writeEntry(&b, "Number of distinct texts whose counts are cached.",
		"cache_size", fmt.Sprint(def.CacheSize))
	writeEntry(&b, "Delay between a file change and the reload in watch mode.",
		"debounce", def.Debounce.String())
	writeEntry(&b, "Address for the Prometheus endpoint in watch mode, e.g. \":9090\".",
		"metrics_addr", `""`)
	b.WriteString("# Report fields to show, in order. Omit to show all.\n")
	b.WriteString("# fields: [characters, words, lines, line, column, code_point]\n")

	return b.String()
}

func writeEntry(b *strings.Builder, comment, key, value string) {
	fmt.Fprintf(b, "# %s\n%s: %s\n\n", comment, key, value)
}
