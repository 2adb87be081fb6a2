// Package config defines configuration types for docinspect.
// These types are pure data structures; discovery and validation live in
// internal/configloader.
package config

import "time"

// Activation modes accepted in Config.Mode.
const (
	ModeFull    = "full"
	ModePartial = "partial"
)

// Size unit systems accepted in Config.SizeUnits.
const (
	SizeUnitsSI  = "si"
	SizeUnitsIEC = "iec"
)

// Defaults.
const (
	DefaultTimeLayout = time.DateTime
	DefaultCacheSize  = 16
	DefaultDebounce   = 100 * time.Millisecond
)

// Config is the root configuration structure.
type Config struct {
	// Mode is the activation mode: "full" or "partial".
	Mode string `mapstructure:"mode" yaml:"mode"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// TimeLayout is a Go reference-time layout for file timestamps.
	TimeLayout string `mapstructure:"time_layout" yaml:"time_layout"`

	// SizeUnits selects decimal ("si") or binary ("iec") size prefixes.
	SizeUnits string `mapstructure:"size_units" yaml:"size_units"`

	// CacheSize bounds the content count cache.
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size"`

	// Debounce delays reloads after file system events in watch mode.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`

	// MetricsAddr serves Prometheus metrics in watch mode when set.
	MetricsAddr string `mapstructure:"metrics_addr" yaml:"metrics_addr"`

	// Fields lists the report fields to show, in order. Empty means all.
	Fields []string `mapstructure:"fields" yaml:"fields,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// NoColor disables styled output.
	NoColor bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Mode:       ModeFull,
		LogLevel:   "info",
		TimeLayout: DefaultTimeLayout,
		SizeUnits:  SizeUnitsSI,
		CacheSize:  DefaultCacheSize,
		Debounce:   DefaultDebounce,
		Format:     FormatText,
	}
}
