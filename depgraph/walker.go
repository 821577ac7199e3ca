// Package depgraph computes the transitive closure of include directives
// starting from a set of seed files.
package depgraph

import (
	"path"
	"sort"

	"github.com/LegacyCodeHQ/headerscan/internal/diag"

	"github.com/charmbracelet/log"
)

// Resolver resolves include targets and scopes extra search directories.
type Resolver interface {
	FindFile(filename string) (string, bool)
	PushDirectory(pathname string) (release func(), err error)
}

// FileScanner returns the include targets of a file.
type FileScanner interface {
	ScanFile(filename string) ([]string, error)
}

// Walker drains a worklist of resolved files, scanning each one for
// includes and queueing every newly resolved include.
//
// The worklist is popped last-in-first-out, so traversal is depth-first.
// While a file's includes are resolved its own directory is on the search
// path, after every configured directory; it is removed again before the
// next file is popped.
type Walker struct {
	resolver   Resolver
	scanner    FileScanner
	discovered map[string]struct{}
	worklist   []string
	logger     *log.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Walker) {
		w.logger = diag.OrDiscard(logger)
	}
}

// NewWalker returns a Walker with an empty worklist.
func NewWalker(resolver Resolver, scanner FileScanner, opts ...Option) *Walker {
	w := &Walker{
		resolver:   resolver,
		scanner:    scanner,
		discovered: make(map[string]struct{}),
		logger:     diag.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Push resolves filename and queues it unless it was already discovered.
// Names that do not resolve are dropped.
func (w *Walker) Push(filename string) {
	w.logger.Debug("Adding", "file", filename)

	resolved, ok := w.resolver.FindFile(filename)
	if !ok {
		w.logger.Debug("Failed to resolve", "file", filename)
		return
	}
	w.logger.Debug("Resolved", "file", filename, "as", resolved)

	if _, seen := w.discovered[resolved]; seen {
		return
	}
	w.discovered[resolved] = struct{}{}
	w.worklist = append(w.worklist, resolved)
}

// Run processes the worklist until it is empty and returns every
// discovered file sorted lexicographically. Seeds must be pushed first; an
// empty worklist yields an empty result.
func (w *Walker) Run() ([]string, error) {
	for {
		filename, ok := w.pop()
		if !ok {
			break
		}
		if err := w.scan(filename); err != nil {
			return nil, err
		}
	}

	return w.Discovered(), nil
}

// Discovered returns the files discovered so far, sorted.
func (w *Walker) Discovered() []string {
	files := make([]string, 0, len(w.discovered))
	for f := range w.discovered {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

func (w *Walker) pop() (string, bool) {
	if len(w.worklist) == 0 {
		return "", false
	}
	last := len(w.worklist) - 1
	filename := w.worklist[last]
	w.worklist = w.worklist[:last]
	return filename, true
}

func (w *Walker) scan(filename string) error {
	includes, err := w.scanner.ScanFile(filename)
	if err != nil {
		return err
	}

	dir := path.Dir(filename)
	release, err := w.resolver.PushDirectory(dir)
	if err != nil {
		w.logger.Warn("Cannot search source directory", "dir", dir, "err", err)
	}
	if release != nil {
		defer release()
	}

	for _, include := range includes {
		w.Push(include)
	}
	return nil
}
