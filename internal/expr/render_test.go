package expr

import (
	"testing"

	"github.com/mkdocstrings/griffe-sub003/internal/pos"
)

func TestRenderSubscript(t *testing.T) {
	value := NewName("Dict", pos.Pos{})
	slice := &Tuple{Elts: []Expr{NewName("str", pos.Pos{}), NewName("int", pos.Pos{})}}
	sub := &Subscript{Value: value, Slice: slice}

	got := Render(sub)
	want := "Dict[str, int]"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderAttributeChain(t *testing.T) {
	base := NewName("os", pos.Pos{})
	attr := NewAttribute(base, "path", pos.Pos{})
	attr2 := NewAttribute(attr, "join", pos.Pos{})

	if got, want := Render(attr2), "os.path.join"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if got, want := attr2.CanonicalPath(), "os.path.join"; got != want {
		t.Errorf("CanonicalPath() = %q, want %q", got, want)
	}
}

func TestRenderBinOpSpacing(t *testing.T) {
	b := &BinOp{Left: NewName("a", pos.Pos{}), Op: "|", Right: NewName("b", pos.Pos{})}
	if got, want := Render(b), "a | b"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

// fakeScope implements Scope for testing Name.CanonicalPath without a
// real object tree.
type fakeScope struct {
	path    string
	members map[string]Scope
}

func (f *fakeScope) Resolve(name string) (Scope, error) {
	if s, ok := f.members[name]; ok {
		return s, nil
	}
	return nil, errNotFound{name}
}

func (f *fakeScope) Path() string { return f.path }

type errNotFound struct{ name string }

func (e errNotFound) Error() string { return "not found: " + e.name }

func TestNameCanonicalPathResolves(t *testing.T) {
	target := &fakeScope{path: "pkg._impl.f"}
	scope := &fakeScope{path: "pkg", members: map[string]Scope{"f": target}}

	n := NewName("f", pos.Pos{})
	n.ScopeRef = scope

	if got, want := n.CanonicalPath(), "pkg._impl.f"; got != want {
		t.Errorf("CanonicalPath() = %q, want %q", got, want)
	}
}

func TestNameCanonicalPathFallsBackOnFailure(t *testing.T) {
	scope := &fakeScope{path: "pkg", members: map[string]Scope{}}
	n := NewName("missing", pos.Pos{})
	n.ScopeRef = scope

	if got, want := n.CanonicalPath(), "missing"; got != want {
		t.Errorf("CanonicalPath() = %q, want %q", got, want)
	}
}

func TestWalkVisitsNestedNames(t *testing.T) {
	call := &Call{
		Func: NewName("f", pos.Pos{}),
		Args: []Expr{NewName("a", pos.Pos{}), NewName("b", pos.Pos{})},
	}
	var seen []string
	Walk(call, func(e Expr) {
		if n, ok := e.(*Name); ok {
			seen = append(seen, n.Value)
		}
	})
	if len(seen) != 3 {
		t.Fatalf("expected 3 names visited (f, a, b), got %v", seen)
	}
}
