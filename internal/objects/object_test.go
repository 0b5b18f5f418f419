package objects

import "testing"

func TestReciprocalMembership(t *testing.T) {
	root := NewModule("pkg", nil)
	fn := NewFunction("greet", root)
	AddMember(root, fn)

	got, ok := root.Members().Get("greet")
	if !ok || got != Object(fn) {
		t.Fatal("parent.members[name] should be the child")
	}
	if fn.Parent() != Object(root) {
		t.Fatal("child.Parent() should be the parent")
	}
}

func TestCanonicalPath(t *testing.T) {
	root := NewModule("pkg", nil)
	sub := NewModule("sub", root)
	AddMember(root, sub)
	cls := NewClass("Widget", sub)
	AddMember(sub, cls)
	method := NewFunction("render", cls)
	AddMember(cls, method)

	if got, want := method.CanonicalPath(), "pkg.sub.Widget.render"; got != want {
		t.Errorf("CanonicalPath() = %q, want %q", got, want)
	}
	if got, want := root.CanonicalPath(), "pkg"; got != want {
		t.Errorf("root CanonicalPath() = %q, want %q", got, want)
	}
}

func TestResolveWalksUpScopes(t *testing.T) {
	root := NewModule("pkg", nil)
	helper := NewFunction("helper", root)
	AddMember(root, helper)

	cls := NewClass("Widget", root)
	AddMember(root, cls)
	method := NewFunction("render", cls)
	AddMember(cls, method)

	resolved, err := method.Resolve("helper")
	if err != nil {
		t.Fatalf("Resolve(helper) error: %v", err)
	}
	if resolved.Path() != "pkg.helper" {
		t.Errorf("resolved path = %q, want pkg.helper", resolved.Path())
	}
}

func TestResolveFailsAtRoot(t *testing.T) {
	root := NewModule("pkg", nil)
	_, err := root.Resolve("nope")
	if err == nil {
		t.Fatal("expected a NameResolutionError")
	}
	var nre *NameResolutionError
	if !asNameResolutionError(err, &nre) {
		t.Fatalf("expected *NameResolutionError, got %T", err)
	}
}

func asNameResolutionError(err error, target **NameResolutionError) bool {
	if e, ok := err.(*NameResolutionError); ok {
		*target = e
		return true
	}
	return false
}

func TestModuleOfAndPackageOf(t *testing.T) {
	root := NewModule("pkg", nil)
	sub := NewModule("sub", root)
	AddMember(root, sub)
	cls := NewClass("Widget", sub)
	AddMember(sub, cls)

	if ModuleOf(cls) != sub {
		t.Error("ModuleOf should return the nearest ancestor Module")
	}
	if PackageOf(cls) != root {
		t.Error("PackageOf should return the root Module")
	}
}

func TestClassWithNoBasesHasEmptyMRONotYetComputed(t *testing.T) {
	cls := NewClass("Widget", nil)
	if cls.MRO != nil {
		t.Error("MRO should be nil until the alias resolver computes it")
	}
}

func TestMembersOrderingPreservesInsertion(t *testing.T) {
	root := NewModule("pkg", nil)
	for _, name := range []string{"c", "a", "b"} {
		AddMember(root, NewAttribute(name, root))
	}
	got := root.Members().Keys()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMembersRedefinitionReplacesInPlace(t *testing.T) {
	root := NewModule("pkg", nil)
	first := NewAttribute("x", root)
	second := NewFunction("x", root)
	AddMember(root, first)
	AddMember(root, second)

	if root.Members().Len() != 1 {
		t.Fatalf("redefinition should not grow Members, got len %d", root.Members().Len())
	}
	got, _ := root.Members().Get("x")
	if got != Object(second) {
		t.Error("redefinition should replace the binding")
	}
}
