package depgraph

import (
	"fmt"

	"github.com/LegacyCodeHQ/headerscan/depgraph/includes"
	"github.com/LegacyCodeHQ/headerscan/depgraph/pathview"
	"github.com/LegacyCodeHQ/headerscan/depgraph/searchpath"
	"github.com/LegacyCodeHQ/headerscan/internal/diag"

	"github.com/charmbracelet/log"
)

// ScanOptions configures a single Scan.
type ScanOptions struct {
	// Root anchors relative paths. Empty means the process working directory.
	Root string
	// IncludeDirs are added to the search path in order. Each entry may be
	// a space separated list.
	IncludeDirs []string
	// Extractor recognizes include directives. Nil selects the regex extractor.
	Extractor includes.Extractor
	// Loader supplies file content. Nil reads from disk.
	Loader includes.Loader
	Logger *log.Logger
}

// ScanResult is the outcome of a Scan.
type ScanResult struct {
	// Files are the discovered files relative to Root, sorted.
	Files []string
	// SearchDirectories are the canonical configured search directories.
	SearchDirectories []string
	// Root is the canonical directory Files are relative to.
	Root string
}

// Scan configures the search path, primes the walker with seeds and runs
// it to completion. An invalid include directory aborts the scan before any
// file is read; the error wraps searchpath.ErrNotDirectory.
func Scan(seeds []string, opts ScanOptions) (ScanResult, error) {
	logger := diag.OrDiscard(opts.Logger)

	view, err := newView(opts.Root)
	if err != nil {
		return ScanResult{}, err
	}

	resolver := searchpath.NewResolver(view, searchpath.WithLogger(logger))
	if err := resolver.AddDirectories(opts.IncludeDirs); err != nil {
		return ScanResult{}, fmt.Errorf("invalid include path: %w", err)
	}

	loader := opts.Loader
	if loader == nil {
		loader = includes.FileLoader{View: view, Logger: logger}
	}
	scanner := includes.NewScanner(loader,
		includes.WithExtractor(opts.Extractor),
		includes.WithLogger(logger))

	walker := NewWalker(resolver, scanner, WithLogger(logger))
	for _, seed := range seeds {
		walker.Push(seed)
	}

	files, err := walker.Run()
	if err != nil {
		return ScanResult{}, err
	}

	return ScanResult{
		Files:             files,
		SearchDirectories: resolver.Directories(),
		Root:              resolver.WorkingDirectory(),
	}, nil
}

func newView(root string) (pathview.View, error) {
	if root == "" {
		return pathview.OS()
	}
	return pathview.New(root)
}
