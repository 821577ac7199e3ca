package formatters

import (
	"encoding/json"
)

// JSONFormatter formats the dependency list as a JSON array.
type JSONFormatter struct{}

// Format converts the paths to an indented JSON array.
// The opts parameter is accepted for interface compatibility but not used.
func (f *JSONFormatter) Format(paths []string, _ FormatOptions) (string, error) {
	if paths == nil {
		paths = []string{}
	}
	data, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
