package includes

import (
	"fmt"
	"io"

	"github.com/LegacyCodeHQ/headerscan/depgraph/pathview"
	"github.com/LegacyCodeHQ/headerscan/internal/diag"

	"github.com/charmbracelet/log"
)

// Loader returns the raw content of a file.
type Loader interface {
	Load(path string) ([]byte, error)
}

// LoaderFunc adapts a plain function to a Loader.
type LoaderFunc func(path string) ([]byte, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) ([]byte, error) {
	return f(path)
}

// FileLoader reads files from disk through a path view.
//
// A file that cannot be opened (missing, permission denied) loads as empty
// content and is only traced. This is a deliberate soft failure that keeps a
// scan going past unreadable files. A failure while reading an opened file is
// returned.
type FileLoader struct {
	View   pathview.View
	Logger *log.Logger
}

// Load reads path, returning empty content when it cannot be opened.
func (l FileLoader) Load(path string) ([]byte, error) {
	f, err := l.View.Open(path)
	if err != nil {
		diag.OrDiscard(l.Logger).Debug("Exception on file", "file", path, "err", err)
		return nil, nil
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// MapLoader serves content from memory, keyed by path. Unknown paths load
// as empty content, like unreadable files on disk.
type MapLoader map[string]string

// Load returns the content registered for path.
func (m MapLoader) Load(path string) ([]byte, error) {
	return []byte(m[path]), nil
}
