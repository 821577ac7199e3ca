package formatters

import (
	"errors"
	"strings"
)

// MakeFormatter writes a Makefile dependency rule.
type MakeFormatter struct{}

// Format writes "target: dep dep ...". Spaces in paths are escaped the way
// make expects.
func (f *MakeFormatter) Format(paths []string, opts FormatOptions) (string, error) {
	if opts.Target == "" {
		return "", errors.New("make format requires a target (--target)")
	}

	var sb strings.Builder
	sb.WriteString(escapeMakePath(opts.Target))
	sb.WriteString(":")
	for _, p := range paths {
		sb.WriteString(" \\\n  ")
		sb.WriteString(escapeMakePath(p))
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

func escapeMakePath(p string) string {
	return strings.ReplaceAll(p, " ", "\\ ")
}
