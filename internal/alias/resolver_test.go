package alias

import (
	"testing"

	"github.com/mkdocstrings/griffe-sub003/internal/errors"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

// TestResolveAliasThroughReexport covers an
// alias re-exporting a name from a private submodule resolves to the
// concrete function, with the expected canonical/lookup path split.
func TestResolveAliasThroughReexport(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	impl := objects.NewModule("_impl", root)
	objects.AddMember(root, impl)
	f := objects.NewFunction("f", impl)
	objects.AddMember(impl, f)

	g := objects.NewAlias("g", root, "pkg._impl.f")
	objects.AddMember(root, g)

	c := New()
	c.Add(root)
	r := NewResolver(c, errors.NewWarnings())
	r.ResolveImplicit = true
	r.Run(root)

	if !g.Resolved() || g.Err() != nil {
		t.Fatalf("alias did not resolve: resolved=%v err=%v", g.Resolved(), g.Err())
	}
	if got, want := g.Target(), objects.Object(f); got != want {
		t.Fatalf("Target() = %v, want %v", got, want)
	}
	if got, want := g.CanonicalPath(), "pkg._impl.f"; got != want {
		t.Errorf("CanonicalPath() = %q, want %q", got, want)
	}
	if got, want := g.Path(), "pkg.g"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

// TestWildcardExpansionWithAll covers a wildcard import combined with __all__.
func TestWildcardExpansionWithAll(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	a := objects.NewModule("a", root)
	objects.AddMember(root, a)
	a.Exports = []objects.Export{{ExprKind: objects.ExportLiteral, Name: "x"}}
	x := objects.NewAttribute("x", a)
	objects.AddMember(a, x)
	y := objects.NewAttribute("y", a)
	objects.AddMember(a, y)

	wildcard := objects.NewAlias("*", root, "pkg.a.*")
	objects.AddMember(root, wildcard)

	c := New()
	c.Add(root)
	r := NewResolver(c, errors.NewWarnings())
	r.ResolveImplicit = true
	r.Run(root)

	if _, ok := root.Members().Get("y"); ok {
		t.Error("wildcard expansion should not import names outside __all__")
	}
	xAlias, ok := root.Members().Get("x")
	if !ok {
		t.Fatal("expected wildcard-expanded alias x")
	}
	alias, ok := xAlias.(*objects.Alias)
	if !ok {
		t.Fatalf("x is a %T, want *objects.Alias", xAlias)
	}
	if !alias.Resolved() || alias.Target() != objects.Object(x) {
		t.Fatalf("x alias resolved=%v target=%v, want resolved to %v", alias.Resolved(), alias.Target(), x)
	}
}

// TestCyclicAliasDetected covers two aliases that point at each other.
func TestCyclicAliasDetected(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	x := objects.NewAlias("x", root, "pkg.y")
	y := objects.NewAlias("y", root, "pkg.x")
	objects.AddMember(root, x)
	objects.AddMember(root, y)

	c := New()
	c.Add(root)
	r := NewResolver(c, errors.NewWarnings())
	r.ResolveImplicit = true
	r.Run(root)

	if x.Err() == nil {
		t.Error("expected x to carry a cyclic alias error")
	}
	if y.Err() == nil {
		t.Error("expected y to carry a cyclic alias error")
	}
	if _, ok := x.Err().(*CyclicAliasError); !ok {
		t.Errorf("x.Err() = %T, want *CyclicAliasError", x.Err())
	}
}

func TestResolveAliasDangling(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	a := objects.NewAlias("missing", root, "pkg.nope")
	objects.AddMember(root, a)

	c := New()
	c.Add(root)
	r := NewResolver(c, errors.NewWarnings())
	r.ResolveImplicit = true
	r.Run(root)

	if a.Err() == nil {
		t.Fatal("expected a dangling alias to carry an AliasResolutionError")
	}
	if _, ok := a.Err().(*AliasResolutionError); !ok {
		t.Errorf("Err() = %T, want *AliasResolutionError", a.Err())
	}
}

func TestExpandExportsConcatenation(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	root.Exports = []objects.Export{
		{ExprKind: objects.ExportLiteral, Name: "a"},
		{ExprKind: objects.ExportLiteral, Name: "a"},
		{ExprKind: objects.ExportLiteral, Name: "b"},
	}

	c := New()
	c.Add(root)
	r := NewResolver(c, errors.NewWarnings())

	got := r.ExpandExports(root)
	want := []string{"a", "b"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ExpandExports() = %v, want %v (deduped, order preserved)", got, want)
	}
	if !root.ExportsExpanded() {
		t.Error("ExportsExpanded() should be true after ExpandExports")
	}
}

func TestResolverIsIdempotent(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	impl := objects.NewModule("_impl", root)
	objects.AddMember(root, impl)
	f := objects.NewFunction("f", impl)
	objects.AddMember(impl, f)
	g := objects.NewAlias("g", root, "pkg._impl.f")
	objects.AddMember(root, g)

	c := New()
	c.Add(root)
	r := NewResolver(c, errors.NewWarnings())
	r.ResolveImplicit = true
	r.Run(root)
	firstTarget := g.Target()
	r.ResolveAliases(root)
	if g.Target() != firstTarget {
		t.Error("resolving twice should be a no-op")
	}
}
