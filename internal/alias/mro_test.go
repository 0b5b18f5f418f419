package alias

import (
	"testing"

	"github.com/mkdocstrings/griffe-sub003/internal/errors"
	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

func nameBase(scope expr.Scope, value string) expr.Expr {
	return &expr.Name{Value: value, ScopeRef: scope}
}

// TestMRODiamond covers the classic diamond inheritance shape:
// class A; class B(A); class C(A); class D(B, C) -> D.mro() == [D, B, C, A].
func TestMRODiamond(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	a := objects.NewClass("A", root)
	objects.AddMember(root, a)
	b := objects.NewClass("B", root)
	b.Bases = []expr.Expr{nameBase(root, "A")}
	objects.AddMember(root, b)
	c := objects.NewClass("C", root)
	c.Bases = []expr.Expr{nameBase(root, "A")}
	objects.AddMember(root, c)
	d := objects.NewClass("D", root)
	d.Bases = []expr.Expr{nameBase(root, "B"), nameBase(root, "C")}
	objects.AddMember(root, d)

	coll := New()
	coll.Add(root)
	r := NewResolver(coll, errors.NewWarnings())

	mro, err := r.MRO(d)
	if err != nil {
		t.Fatalf("MRO() error: %v", err)
	}
	want := []objects.Object{d, b, c, a}
	if len(mro) != len(want) {
		t.Fatalf("MRO() = %v, want %v", mro, want)
	}
	for i := range want {
		if mro[i] != want[i] {
			t.Errorf("MRO()[%d] = %v, want %v", i, mro[i], want[i])
		}
	}
}

func TestMRONoBases(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	a := objects.NewClass("A", root)
	objects.AddMember(root, a)

	r := NewResolver(New(), errors.NewWarnings())
	mro, err := r.MRO(a)
	if err != nil {
		t.Fatalf("MRO() error: %v", err)
	}
	if len(mro) != 1 || mro[0] != objects.Object(a) {
		t.Errorf("MRO() = %v, want [A]", mro)
	}
}

func TestInheritedMembers(t *testing.T) {
	root := objects.NewModule("pkg", nil)
	a := objects.NewClass("A", root)
	objects.AddMember(root, a)
	greet := objects.NewFunction("greet", a)
	objects.AddMember(a, greet)

	b := objects.NewClass("B", root)
	b.Bases = []expr.Expr{nameBase(root, "A")}
	objects.AddMember(root, b)

	coll := New()
	coll.Add(root)
	r := NewResolver(coll, errors.NewWarnings())

	members, err := r.InheritedMembers(b)
	if err != nil {
		t.Fatalf("InheritedMembers() error: %v", err)
	}
	obj, ok := members.Get("greet")
	if !ok {
		t.Fatal("expected B to inherit greet from A")
	}
	alias, ok := obj.(*objects.Alias)
	if !ok || !alias.Inherited() {
		t.Fatalf("greet = %v, want an Alias with Inherited() == true", obj)
	}
	if alias.Target() != objects.Object(greet) {
		t.Errorf("inherited alias target = %v, want %v", alias.Target(), greet)
	}
}
