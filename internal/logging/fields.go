// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldConfig     = "config"
	FieldWorkingDir = "working_dir"
	FieldAddr       = "addr"

	// Engine fields.
	FieldInspector  = "inspector"
	FieldMode       = "mode"
	FieldStream     = "stream"
	FieldGeneration = "generation"
	FieldChange     = "change"
	FieldSelection  = "selection"
	FieldReason     = "reason"
	FieldDuration   = "duration"

	FieldVersion = "version"

	// Watch fields.
	FieldEvent    = "event"
	FieldDebounce = "debounce"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
