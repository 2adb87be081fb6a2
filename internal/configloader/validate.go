package configloader

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/yaklabco/docinspect/internal/logging"
	"github.com/yaklabco/docinspect/pkg/config"
	"github.com/yaklabco/docinspect/pkg/fileinfo"
	"github.com/yaklabco/docinspect/pkg/reporter"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "size_units").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// layoutProbe is formatted with a configured time layout to detect layouts
// without any reference-time element.
//
//nolint:gochecknoglobals // Constant value.
var layoutProbe = time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings. Empty values are
// left to defaults and never fail.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	switch cfg.Mode {
	case "", config.ModeFull, config.ModePartial:
	default:
		result.fail("mode", cfg.Mode, "invalid mode %q; must be one of: full, partial", cfg.Mode)
	}

	if cfg.LogLevel != "" {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			result.fail("log_level", cfg.LogLevel, "invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
		}
	}

	if cfg.SizeUnits != "" && !fileinfo.SizeUnits(cfg.SizeUnits).IsValid() {
		result.fail("size_units", cfg.SizeUnits, "invalid size units %q; must be one of: si, iec", cfg.SizeUnits)
	}

	if cfg.TimeLayout != "" && layoutProbe.Format(cfg.TimeLayout) == cfg.TimeLayout {
		result.warn("time_layout", cfg.TimeLayout, "layout %q contains no date or time elements", cfg.TimeLayout)
	}

	if cfg.CacheSize < 0 {
		result.fail("cache_size", cfg.CacheSize, "cache_size must be >= 0 (0 means default)")
	}

	if cfg.Debounce < 0 {
		result.fail("debounce", cfg.Debounce, "debounce must not be negative")
	}

	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			result.fail("metrics_addr", cfg.MetricsAddr, "invalid listen address: %v", err)
		}
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json", cfg.Format)
	}

	for i, id := range cfg.Fields {
		if _, ok := reporter.LookupField(id); !ok {
			result.fail(fmt.Sprintf("fields[%d]", i), id, "unknown field %q; valid fields: %s",
				id, strings.Join(reporter.FieldIDs(), ", "))
		}
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
