// Package includes extracts include-directive targets from source text.
package includes

import (
	"fmt"
	"regexp"
	"strings"
)

// Extractor returns the ordered include targets found in content.
type Extractor interface {
	Extract(content []byte) ([]string, error)
}

// ExtractorKind names an Extractor implementation.
type ExtractorKind string

const (
	ExtractorRegex      ExtractorKind = "regex"
	ExtractorTreeSitter ExtractorKind = "tree-sitter"
)

// String returns the string representation of the kind
func (k ExtractorKind) String() string {
	return string(k)
}

// SupportedExtractors returns the accepted extractor names, comma separated.
func SupportedExtractors() string {
	return strings.Join([]string{ExtractorRegex.String(), ExtractorTreeSitter.String()}, ", ")
}

// NewExtractor returns the Extractor registered under name.
func NewExtractor(name string) (Extractor, error) {
	switch ExtractorKind(name) {
	case ExtractorRegex, "":
		return RegexExtractor{}, nil
	case ExtractorTreeSitter:
		return TreeSitterExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown parser: %s (valid options: %s)", name, SupportedExtractors())
	}
}

// includePattern matches one directive per line: optional leading
// whitespace, '#', optional blanks, "include", optional blanks, then a
// target between <...> or "...".
var includePattern = regexp.MustCompile(`(?m)^\s*#[ \t]*include[ \t]*[<"]([^>^"]+)[>"]`)

// RegexExtractor recognizes include directives line by line with a single
// pattern. It does not understand comments or conditional compilation.
type RegexExtractor struct{}

// Extract returns the include targets in the order they appear.
func (RegexExtractor) Extract(content []byte) ([]string, error) {
	matches := includePattern.FindAllSubmatch(content, -1)
	targets := make([]string, 0, len(matches))
	for _, m := range matches {
		targets = append(targets, string(m[1]))
	}
	return targets, nil
}
