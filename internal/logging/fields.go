package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldFormat     = "format"
	FieldWorkingDir = "working_dir"

	// Session fields.
	FieldSession   = "session"
	FieldKey       = "key"
	FieldBackend   = "backend"
	FieldCommand   = "command"
	FieldSelection = "selection"
	FieldChanged   = "changed"
	FieldElements  = "elements"
	FieldLeaves    = "leaves"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Command fields.
	FieldName   = "name"
	FieldHotkey = "hotkey"
)
