package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatList OutputFormat = "list"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatMake OutputFormat = "make"
)

var outputFormats = []OutputFormat{
	OutputFormatList,
	OutputFormatJSON,
	OutputFormatMake,
}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat returns the OutputFormat named by s.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	for _, f := range outputFormats {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats lists the accepted format names, comma separated.
func SupportedFormats() string {
	names := make([]string, 0, len(outputFormats))
	for _, f := range outputFormats {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
