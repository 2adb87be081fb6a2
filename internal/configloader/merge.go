package configloader

import (
	"slices"

	"github.com/yaklabco/docinspect/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - NoColor can only be switched on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	mergeString(&result.Mode, override.Mode)
	mergeString(&result.LogLevel, override.LogLevel)
	mergeString(&result.TimeLayout, override.TimeLayout)
	mergeString(&result.SizeUnits, override.SizeUnits)
	mergeString(&result.MetricsAddr, override.MetricsAddr)

	if override.CacheSize != 0 {
		result.CacheSize = override.CacheSize
	}
	if override.Debounce != 0 {
		result.Debounce = override.Debounce
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.NoColor {
		result.NoColor = true
	}
	if override.Fields != nil {
		result.Fields = slices.Clone(override.Fields)
	}

	return result
}

func mergeString(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
