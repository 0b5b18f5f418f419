package loader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkdocstrings/griffe-sub003/internal/docstring"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

// TestLoadFullPackageFixture loads testdata/fullpkg end to end: a
// package re-exporting names from a submodule and a nested
// subpackage, a concrete module merged with its .pyi stub, and
// Google-style docstrings on both a function and a method.
func TestLoadFullPackageFixture(t *testing.T) {
	l := New(Config{
		SearchPaths:     []string{"../../testdata"},
		ResolveAliases:  true,
		ResolveImplicit: true,
	})
	root, err := l.LoadPackage("fullpkg")
	require.NoError(t, err)

	for _, name := range []string{"Greeter", "greet", "helper"} {
		_, ok := root.Members().Get(name)
		require.Truef(t, ok, "fullpkg.%s should be re-exported", name)
	}

	greeterMember, ok := root.Members().Get("Greeter")
	require.True(t, ok)
	greeterAlias, ok := greeterMember.(*objects.Alias)
	require.True(t, ok, "fullpkg.Greeter should be an Alias, got %T", greeterMember)
	l.Resolver.Ensure(greeterAlias)
	require.NoError(t, greeterAlias.Err())

	greeter, ok := greeterAlias.Target().(*objects.Class)
	require.True(t, ok, "fullpkg.Greeter should resolve to a Class, got %T", greeterAlias.Target())

	// core.pyi adds the DEFAULT_NAME annotation and return types the
	// .py source alone doesn't carry; the merge should keep both.
	_, ok = greeter.Members().Get("DEFAULT_NAME")
	require.True(t, ok, "Greeter.DEFAULT_NAME should survive stub merge")

	methodMember, ok := greeter.Members().Get("greet")
	require.True(t, ok)
	method, ok := methodMember.(*objects.Function)
	require.True(t, ok, "Greeter.greet should be a Function, got %T", methodMember)

	doc := method.Docstring()
	require.NotNil(t, doc, "Greeter.greet should have a docstring")
	_, sections, warnings := docstring.Parse(doc.Value, docstring.StyleAuto)
	require.Empty(t, warnings)
	var sawReturns bool
	for _, s := range sections {
		if s.Kind == docstring.SectionReturns {
			sawReturns = true
			require.Len(t, s.Returns, 1)
		}
	}
	require.True(t, sawReturns, "Greeter.greet docstring should parse a Returns section")
}
