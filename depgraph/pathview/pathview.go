// Package pathview converts between the forward-slash paths used by the
// scanner and the host's native paths, and answers filesystem queries.
//
// Every path accepted or returned by a View uses '/' as the separator,
// regardless of the host platform. Relative paths are interpreted against
// the View's root rather than the process working directory.
package pathview

import (
	"fmt"
	"os"
	"path/filepath"
)

// View answers filesystem queries for forward-slash paths anchored at a root directory.
type View struct {
	root string
}

// OS returns a View anchored at the process working directory.
func OS() (View, error) {
	wd, err := os.Getwd()
	if err != nil {
		return View{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return New(filepath.ToSlash(wd))
}

// New returns a View anchored at root. A relative root is resolved against
// the process working directory. The root is canonicalized so relative paths
// computed against it are stable across symlinked temp dirs.
func New(root string) (View, error) {
	if root == "" {
		root = "."
	}

	absRoot, err := filepath.Abs(ToNative(root))
	if err != nil {
		return View{}, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	return View{root: ToSlash(resolveSymlinks(absRoot))}, nil
}

// ToNative converts a forward-slash path to the host's separators.
func ToNative(pathname string) string {
	return filepath.FromSlash(pathname)
}

// ToSlash converts a native path to forward slashes.
func ToSlash(pathname string) string {
	return filepath.ToSlash(pathname)
}

// WorkingDirectory returns the canonical root of the view.
func (v View) WorkingDirectory() string {
	return v.root
}

// Native returns the absolute native path for pathname. ".." segments are
// kept so the filesystem resolves them after any symlink before them.
func (v View) Native(pathname string) string {
	native := ToNative(pathname)
	if filepath.IsAbs(native) {
		return native
	}
	return ToNative(v.root) + string(filepath.Separator) + native
}

// Exists reports whether pathname names a regular file. Directories and
// missing entries report false.
func (v View) Exists(pathname string) bool {
	info, err := os.Stat(v.Native(pathname))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsDirectory reports whether pathname names a directory.
func (v View) IsDirectory(pathname string) bool {
	info, err := os.Stat(v.Native(pathname))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsAbsolute reports whether pathname is absolute on the host.
func (v View) IsAbsolute(pathname string) bool {
	return filepath.IsAbs(ToNative(pathname))
}

// Canonicalize returns the absolute, symlink-free form of pathname.
// Symlinks are followed before ".." is applied, so "link/../x.h" names the
// sibling of the link target. Paths that cannot be resolved (e.g. missing
// entries) are only made absolute and cleaned.
func (v View) Canonicalize(pathname string) string {
	native := v.Native(pathname)
	if resolved, err := filepath.EvalSymlinks(native); err == nil {
		return ToSlash(resolved)
	}
	return ToSlash(filepath.Clean(native))
}

// DirectoryOf returns the parent directory of pathname. A bare filename
// yields ".", which the view resolves to its root.
func (v View) DirectoryOf(pathname string) string {
	return ToSlash(filepath.Dir(ToNative(pathname)))
}

// Open opens pathname for reading.
func (v View) Open(pathname string) (*os.File, error) {
	return os.Open(v.Native(pathname))
}

func resolveSymlinks(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
