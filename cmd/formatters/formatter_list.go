package formatters

import "strings"

// ListFormatter writes one path per line.
type ListFormatter struct{}

// Format joins paths with newlines and always appends a final newline, so an
// empty list is a single blank line.
func (f *ListFormatter) Format(paths []string, _ FormatOptions) (string, error) {
	return strings.Join(paths, "\n") + "\n", nil
}
