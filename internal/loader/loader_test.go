package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// TestLoadPackageAliasReexport covers spec scenario 2: `pkg/_impl.py`
// defines f, `pkg/__init__.py` re-exports it as g. After resolution
// pkg.members["g"] is an Alias resolving through pkg._impl.f.
func TestLoadPackageAliasReexport(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"pkg/__init__.py": "from pkg._impl import f as g\n",
		"pkg/_impl.py":     "def f():\n    pass\n",
	})

	l := New(Config{SearchPaths: []string{dir}, ResolveAliases: true, ResolveImplicit: true})
	root, err := l.LoadPackage("pkg")
	require.NoError(t, err)

	member, ok := root.Members().Get("g")
	require.True(t, ok, "pkg.g should be present")
	alias, ok := member.(*objects.Alias)
	require.True(t, ok, "pkg.g should be an Alias, got %T", member)
	require.Equal(t, "pkg._impl.f", alias.TargetPath())
	require.Equal(t, "pkg.g", alias.Path())

	l.Resolver.Ensure(alias)
	require.NoError(t, alias.Err())
	require.Equal(t, "pkg._impl.f", alias.Target().Path())
}

// TestLoadPackageWildcardAllFilters covers spec scenario 3: wildcard
// import honors the source module's __all__, excluding names left out
// of it.
func TestLoadPackageWildcardAllFilters(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"pkg/__init__.py": "from pkg.a import *\n",
		"pkg/a.py":         "__all__ = [\"x\"]\nx = 1\ny = 2\n",
	})

	l := New(Config{SearchPaths: []string{dir}, ResolveAliases: true})
	root, err := l.LoadPackage("pkg")
	require.NoError(t, err)

	_, ok := root.Members().Get("x")
	require.True(t, ok, "pkg.x should be imported via wildcard")
	_, ok = root.Members().Get("y")
	require.False(t, ok, "pkg.y is not in __all__ and must not be imported")
}

// TestLoadPackageObjectTreeShape uses go-cmp to assert the declaration
// order of a simple module's members is preserved end to end, rather
// than re-deriving the field-by-field assertions TestLoadPackage*
// above already cover.
func TestLoadPackageObjectTreeShape(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"pkg/__init__.py": "def greet():\n    pass\n\nclass Greeter:\n    pass\n\nVALUE = 1\n",
	})

	l := New(Config{SearchPaths: []string{dir}})
	root, err := l.LoadPackage("pkg")
	require.NoError(t, err)

	got := root.Members().Keys()
	want := []string{"greet", "Greeter", "VALUE"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("member order mismatch (-want +got):\n%s", diff)
	}
}
