package formatters

import "fmt"

// FormatOptions contains optional parameters for formatting a dependency list.
type FormatOptions struct {
	// Target is the rule target written by the make formatter
	Target string
}

// Formatter is the interface that all dependency list formatters must implement.
type Formatter interface {
	// Format converts sorted dependency paths to their output representation,
	// including any trailing newline.
	Format(paths []string, opts FormatOptions) (string, error)
}

// NewFormatter creates a Formatter for the specified format type.
func NewFormatter(format string) (Formatter, error) {
	f, ok := ParseOutputFormat(format)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, SupportedFormats())
	}

	switch f {
	case OutputFormatJSON:
		return &JSONFormatter{}, nil
	case OutputFormatMake:
		return &MakeFormatter{}, nil
	default:
		return &ListFormatter{}, nil
	}
}
