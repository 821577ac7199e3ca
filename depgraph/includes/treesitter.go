package includes

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// TreeSitterExtractor parses content with the C grammar and returns the
// targets of every preproc_include node, including those nested in
// conditional blocks. Macro-expanded includes are skipped.
type TreeSitterExtractor struct{}

// Extract returns the include targets in source order.
func (TreeSitterExtractor) Extract(content []byte) ([]string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse C code: %w", err)
	}
	defer tree.Close()

	return collectIncludes(tree.RootNode(), content, []string{}), nil
}

// collectIncludes appends the target of every include directive under node.
// Directives nested in #if/#ifdef blocks are named children of those blocks.
func collectIncludes(node *sitter.Node, content []byte, targets []string) []string {
	if node == nil {
		return targets
	}
	if node.Type() == "preproc_include" {
		if target := includePath(node.ChildByFieldName("path"), content); target != "" {
			targets = append(targets, target)
		}
		return targets
	}

	for i := range int(node.NamedChildCount()) {
		targets = collectIncludes(node.NamedChild(i), content, targets)
	}
	return targets
}

// includePath strips the quotes or angle brackets from a literal include
// path. Identifiers and macro calls yield "".
func includePath(path *sitter.Node, content []byte) string {
	if path == nil {
		return ""
	}
	switch path.Type() {
	case "string_literal", "system_lib_string":
		raw := path.Content(content)
		if len(raw) < 2 {
			return ""
		}
		return strings.TrimSpace(raw[1 : len(raw)-1])
	default:
		return ""
	}
}
