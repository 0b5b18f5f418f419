package alias

import (
	"testing"

	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

func TestCollectionGetWalksMembers(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	sub := objects.NewModule("sub", root)
	objects.AddMember(root, sub)

	c := New()
	c.Add(root)

	obj, ok := c.Get("pkg.sub")
	if !ok || obj != objects.Object(sub) {
		t.Fatalf("Get(%q) = %v, %v; want sub module", "pkg.sub", obj, ok)
	}
}

func TestCollectionGetMissing(t *testing.T) {
	c := New()
	if _, ok := c.Get("nope.sub"); ok {
		t.Fatal("expected Get to fail for an unregistered root")
	}
}

func TestCollectionGetFollowsResolvedAlias(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	impl := objects.NewModule("_impl", root)
	objects.AddMember(root, impl)
	fn := objects.NewFunction("f", impl)
	objects.AddMember(impl, fn)

	a := objects.NewAlias("g", root, "pkg._impl.f")
	a.SetTarget(fn)
	objects.AddMember(root, a)

	c := New()
	c.Add(root)

	obj, ok := c.Get("pkg.g")
	if !ok || obj != objects.Object(fn) {
		t.Fatalf("Get(%q) = %v, %v; want the resolved alias target", "pkg.g", obj, ok)
	}
}
