// Package searchpath resolves include targets against an ordered list of
// search directories and reports them relative to a working directory.
//
// All paths use forward slashes.
package searchpath

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/LegacyCodeHQ/headerscan/internal/diag"

	"github.com/charmbracelet/log"
)

// ErrNotDirectory is returned when a search directory does not exist or is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Paths is the filesystem view the resolver works through.
type Paths interface {
	WorkingDirectory() string
	Canonicalize(pathname string) string
	IsDirectory(pathname string) bool
	IsAbsolute(pathname string) bool
	Exists(pathname string) bool
}

// Resolver finds files across search directories and converts them to
// paths relative to the working directory captured at construction.
type Resolver struct {
	paths  Paths
	cwd    string
	dirs   []string
	logger *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		r.logger = diag.OrDiscard(logger)
	}
}

// NewResolver returns a Resolver with an empty search path.
func NewResolver(paths Paths, opts ...Option) *Resolver {
	r := &Resolver{
		paths:  paths,
		cwd:    paths.Canonicalize(paths.WorkingDirectory()),
		logger: diag.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddDirectory appends pathname to the search path. Adding a directory that
// is already present is a no-op. The search path is left untouched when
// pathname is not a directory.
func (r *Resolver) AddDirectory(pathname string) error {
	_, err := r.addDirectory(pathname)
	return err
}

func (r *Resolver) addDirectory(pathname string) (string, error) {
	canonical := r.paths.Canonicalize(pathname)
	r.logger.Debug("Adding DIR", "dir", canonical)

	if slices.Contains(r.dirs, canonical) {
		return "", nil
	}
	if !r.paths.IsDirectory(canonical) {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, canonical)
	}

	r.dirs = append(r.dirs, canonical)
	return canonical, nil
}

// RemoveDirectory removes pathname from the search path if present.
func (r *Resolver) RemoveDirectory(pathname string) {
	canonical := r.paths.Canonicalize(pathname)
	r.logger.Debug("Removing DIR", "dir", canonical)
	r.removeCanonical(canonical)
}

func (r *Resolver) removeCanonical(canonical string) {
	if i := slices.Index(r.dirs, canonical); i >= 0 {
		r.dirs = slices.Delete(r.dirs, i, i+1)
	}
}

// AddDirectories adds every directory in pathlist. Each entry may itself
// hold several space separated directories. All entries are attempted; the
// returned error joins every failure.
func (r *Resolver) AddDirectories(pathlist []string) error {
	var errs []error
	for _, dirname := range strings.Fields(strings.Join(pathlist, " ")) {
		if err := r.AddDirectory(dirname); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PushDirectory makes pathname searchable until release is called. Release
// only removes the directory if this call added it, so a directory that was
// already on the search path stays there.
func (r *Resolver) PushDirectory(pathname string) (release func(), err error) {
	added, err := r.addDirectory(pathname)
	if err != nil {
		return func() {}, err
	}
	if added == "" {
		return func() {}, nil
	}

	return func() {
		r.logger.Debug("Removing DIR", "dir", added)
		r.removeCanonical(added)
	}, nil
}

// Directories returns a copy of the search path in priority order.
func (r *Resolver) Directories() []string {
	return slices.Clone(r.dirs)
}

// WorkingDirectory returns the canonical base used for relative paths.
func (r *Resolver) WorkingDirectory() string {
	return r.cwd
}

// FindFile resolves filename to a path relative to the working directory.
// Absolute names resolve only if they exist. Relative names are joined to
// each search directory in order and the first existing file wins. The
// boolean is false when nothing matches.
func (r *Resolver) FindFile(filename string) (string, bool) {
	if r.paths.IsAbsolute(filename) {
		if r.paths.Exists(filename) {
			return r.FilenameToRelative(filename), true
		}
		return "", false
	}

	for _, dir := range r.dirs {
		fullname := dir + "/" + filename
		if r.paths.Exists(fullname) {
			return r.FilenameToRelative(fullname), true
		}
	}
	return "", false
}

// FilenameToRelative returns the path from the working directory to filename.
func (r *Resolver) FilenameToRelative(filename string) string {
	return RealToRelative(r.paths.Canonicalize(filename), r.cwd)
}

// RealToRelative returns the relative path from basepath to filepath. Both
// must be canonical absolute paths. The common leading segments are
// stripped, one ".." is emitted per remaining base segment, and the
// remaining target segments follow.
func RealToRelative(filepath, basepath string) string {
	pathParts := segments(filepath)
	baseParts := segments(basepath)

	for len(pathParts) > 0 && len(baseParts) > 0 && pathParts[0] == baseParts[0] {
		pathParts = pathParts[1:]
		baseParts = baseParts[1:]
	}

	relParts := make([]string, 0, len(baseParts)+len(pathParts))
	for range baseParts {
		relParts = append(relParts, "..")
	}
	relParts = append(relParts, pathParts...)

	if len(relParts) == 0 {
		return "."
	}
	return strings.Join(relParts, "/")
}

func segments(pathname string) []string {
	return strings.FieldsFunc(pathname, func(r rune) bool { return r == '/' })
}
