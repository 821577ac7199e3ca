package depgraph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/headerscan/depgraph/includes"
	"github.com/LegacyCodeHQ/headerscan/depgraph/pathview"
	"github.com/LegacyCodeHQ/headerscan/depgraph/searchpath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newTestWalker(t *testing.T, root string, dirs ...string) (*Walker, *searchpath.Resolver) {
	t.Helper()

	view, err := pathview.New(root)
	require.NoError(t, err)

	resolver := searchpath.NewResolver(view)
	require.NoError(t, resolver.AddDirectories(dirs))

	scanner := includes.NewScanner(includes.FileLoader{View: view})
	return NewWalker(resolver, scanner), resolver
}

func TestWalker_IndexWithSearchRoot(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.h":     "#include \"a.h\"\n#include <b.h>\n",
		"include/a.h": "",
		"include/b.h": "",
	})
	walker, _ := newTestWalker(t, root, ".", "include")

	walker.Push("index.h")
	files, err := walker.Run()

	require.NoError(t, err)
	assert.Equal(t, []string{"include/a.h", "include/b.h", "index.h"}, files)
}

func TestWalker_MissingIncludeIsDropped(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/index.h": "#include \"a.h\"\n",
		"src/a.h":     "#include \"c.h\"\n#include <stdio.h>\n",
	})
	walker, _ := newTestWalker(t, root, "src")

	walker.Push("index.h")
	files, err := walker.Run()

	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.h", "src/index.h"}, files)
}

func TestWalker_PushIsIdempotent(t *testing.T) {
	root := writeTree(t, map[string]string{
		"include/a.h": "",
	})
	walker, _ := newTestWalker(t, root, "include")

	walker.Push("a.h")
	walker.Push("a.h")
	walker.Push("../include/a.h")
	files, err := walker.Run()

	require.NoError(t, err)
	assert.Equal(t, []string{"include/a.h"}, files)
}

func TestWalker_UnresolvedSeedIsDropped(t *testing.T) {
	root := writeTree(t, map[string]string{"include/a.h": ""})
	walker, _ := newTestWalker(t, root, "include")

	walker.Push("missing.h")
	files, err := walker.Run()

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalker_EmptyWorklist(t *testing.T) {
	walker, _ := newTestWalker(t, t.TempDir())

	files, err := walker.Run()

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalker_CyclesTerminate(t *testing.T) {
	root := writeTree(t, map[string]string{
		"inc/a.h": "#include \"b.h\"\n",
		"inc/b.h": "#include \"a.h\"\n",
	})
	walker, _ := newTestWalker(t, root, "inc")

	walker.Push("a.h")
	files, err := walker.Run()

	require.NoError(t, err)
	assert.Equal(t, []string{"inc/a.h", "inc/b.h"}, files)
}

func TestWalker_SiblingsResolveFromIncludingDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.c":             "#include \"lib/public.h\"\n",
		"lib/public.h":       "#include \"detail.h\"\n#include \"sub/deep.h\"\n",
		"lib/detail.h":       "",
		"lib/sub/deep.h":     "#include \"leaf.h\"\n",
		"lib/sub/leaf.h":     "",
		"lib/unreferenced.h": "",
	})
	walker, _ := newTestWalker(t, root, ".")

	walker.Push("main.c")
	files, err := walker.Run()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"lib/detail.h",
		"lib/public.h",
		"lib/sub/deep.h",
		"lib/sub/leaf.h",
		"main.c",
	}, files)
}

func TestWalker_SourceDirectoryIsScopedToItsFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"x/one.h":  "#include \"sib.h\"\n",
		"x/sib.h":  "",
		"x/sib2.h": "",
		"y/two.h":  "#include \"sib2.h\"\n",
	})
	walker, resolver := newTestWalker(t, root)

	// LIFO: x/one.h (and its include) are processed before y/two.h.
	walker.Push(filepath.ToSlash(filepath.Join(resolver.WorkingDirectory(), "y/two.h")))
	walker.Push(filepath.ToSlash(filepath.Join(resolver.WorkingDirectory(), "x/one.h")))
	files, err := walker.Run()

	require.NoError(t, err)
	assert.Equal(t, []string{"x/one.h", "x/sib.h", "y/two.h"}, files)
	assert.Empty(t, resolver.Directories())
}

func TestWalker_ConfiguredRootSurvivesScoping(t *testing.T) {
	root := writeTree(t, map[string]string{
		"x/one.h":  "#include \"sib.h\"\n",
		"x/sib.h":  "",
		"x/sib2.h": "",
		"y/two.h":  "#include \"sib2.h\"\n",
	})
	walker, resolver := newTestWalker(t, root, "x", "y")

	walker.Push("two.h")
	walker.Push("one.h")
	files, err := walker.Run()

	require.NoError(t, err)
	assert.Equal(t, []string{"x/one.h", "x/sib.h", "x/sib2.h", "y/two.h"}, files)
	assert.Len(t, resolver.Directories(), 2)
}

func TestWalker_ResultIndependentOfSeedOrder(t *testing.T) {
	root := writeTree(t, map[string]string{
		"inc/a.h":      "#include \"common.h\"\n",
		"inc/b.h":      "#include \"common.h\"\n#include \"only_b.h\"\n",
		"inc/common.h": "",
		"inc/only_b.h": "",
	})

	first, _ := newTestWalker(t, root, "inc")
	first.Push("a.h")
	first.Push("b.h")
	firstFiles, err := first.Run()
	require.NoError(t, err)

	second, _ := newTestWalker(t, root, "inc")
	second.Push("b.h")
	second.Push("a.h")
	secondFiles, err := second.Run()
	require.NoError(t, err)

	assert.Equal(t, firstFiles, secondFiles)
}

func TestWalker_DepthFirstOrder(t *testing.T) {
	var scanned []string
	loader := includes.MapLoader{
		"a.h": "#include \"b.h\"\n#include \"c.h\"\n",
		"b.h": "#include \"d.h\"\n",
	}
	resolver := &fakeResolver{known: map[string]bool{"a.h": true, "b.h": true, "c.h": true, "d.h": true}}
	scanner := recordingScanner{inner: includes.NewScanner(loader), scanned: &scanned}
	walker := NewWalker(resolver, scanner)

	walker.Push("a.h")
	files, err := walker.Run()

	require.NoError(t, err)
	assert.Equal(t, []string{"a.h", "b.h", "c.h", "d.h"}, files)
	assert.Equal(t, []string{"a.h", "c.h", "b.h", "d.h"}, scanned)
	assert.Zero(t, resolver.depth, "every pushed directory is released")
	assert.Equal(t, 4, resolver.pushes)
}

func TestWalker_ReleasesDirectoryWhenScanFindsNothing(t *testing.T) {
	resolver := &fakeResolver{known: map[string]bool{"empty.h": true}}
	walker := NewWalker(resolver, includes.NewScanner(includes.MapLoader{}))

	walker.Push("empty.h")
	_, err := walker.Run()

	require.NoError(t, err)
	assert.Equal(t, 1, resolver.pushes)
	assert.Zero(t, resolver.depth)
}

func TestWalker_ReadErrorStopsRun(t *testing.T) {
	readErr := errors.New("read failed")
	resolver := &fakeResolver{known: map[string]bool{"a.h": true}}
	walker := NewWalker(resolver, includes.NewScanner(includes.LoaderFunc(func(string) ([]byte, error) {
		return nil, readErr
	})))

	walker.Push("a.h")
	files, err := walker.Run()

	require.ErrorIs(t, err, readErr)
	assert.Nil(t, files)
	assert.Zero(t, resolver.depth)
}

// fakeResolver resolves names it knows to themselves and tracks scoped directories.
type fakeResolver struct {
	known  map[string]bool
	depth  int
	pushes int
}

func (r *fakeResolver) FindFile(filename string) (string, bool) {
	return filename, r.known[filename]
}

func (r *fakeResolver) PushDirectory(string) (func(), error) {
	r.depth++
	r.pushes++
	return func() { r.depth-- }, nil
}

type recordingScanner struct {
	inner   FileScanner
	scanned *[]string
}

func (s recordingScanner) ScanFile(filename string) ([]string, error) {
	*s.scanned = append(*s.scanned, filename)
	return s.inner.ScanFile(filename)
}
