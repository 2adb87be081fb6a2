package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/docinspect/pkg/config"
)

// envVarPrefix is the prefix for all docinspect environment variables.
const envVarPrefix = "DOCINSPECT_"

// envSetter parses one environment value into the configuration.
type envSetter func(cfg *config.Config, value string) error

type envMapping struct {
	description string
	set         envSetter
}

// envMappings maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MODE": {"Activation mode: full or partial", func(cfg *config.Config, v string) error {
		cfg.Mode = v
		return nil
	}},
	"LOG_LEVEL": {"Log level: debug, info, warn or error", func(cfg *config.Config, v string) error {
		cfg.LogLevel = v
		return nil
	}},
	"TIME_LAYOUT": {"Go time layout for file timestamps", func(cfg *config.Config, v string) error {
		cfg.TimeLayout = v
		return nil
	}},
	"SIZE_UNITS": {"File size prefixes: si or iec", func(cfg *config.Config, v string) error {
		cfg.SizeUnits = v
		return nil
	}},
	"CACHE_SIZE": {"Number of cached content counts", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.CacheSize = n
		return nil
	}},
	"DEBOUNCE": {"Reload delay in watch mode, e.g. 250ms", func(cfg *config.Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q", v)
		}
		cfg.Debounce = d
		return nil
	}},
	"METRICS_ADDR": {"Prometheus listen address in watch mode", func(cfg *config.Config, v string) error {
		cfg.MetricsAddr = v
		return nil
	}},
	"FIELDS": {"Comma-separated report fields", func(cfg *config.Config, v string) error {
		cfg.Fields = parseSliceValue(v)
		return nil
	}},
	"FORMAT": {"Output format: text or json", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	"NO_COLOR": {"Disable styled output: true or false", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		cfg.NoColor = b
		return nil
	}},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with DOCINSPECT_ (e.g., DOCINSPECT_MODE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := envMappings[suffix].set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.description
	}
	return out
}

func sortedEnvSuffixes() []string {
	keys := make([]string, 0, len(envMappings))
	for k := range envMappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
