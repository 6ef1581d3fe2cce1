package export

import "fmt"

// Format represents an export format.
type Format string

// Export formats.
const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat parses a format string, returning an error for unknown formats.
// The empty string selects JSON, the persisted form.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: json, yaml, markdown, text", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatMarkdown, FormatText:
		return true
	default:
		return false
	}
}

// Formats returns every export format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatText}
}
