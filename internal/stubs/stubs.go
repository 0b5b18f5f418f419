// Package stubs implements the Stub Merger: combining a
// concrete module's object tree with its .pyi counterpart, preferring
// stub type information while keeping concrete docstrings, values, and
// members. Grounded on internal/link/module_linker.go,
// which resolves a module's final bindings by walking two candidate
// sources and picking a winner per name with the same recursive,
// kind-dispatched merge shape used here.
package stubs

import (
	"github.com/mkdocstrings/griffe-sub003/internal/errors"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
	"github.com/mkdocstrings/griffe-sub003/internal/pos"
)

// Merger tracks which (concrete, stub) module pairs have already been
// merged, so a reassignment attempt can be reported instead of
// silently re-run.
type Merger struct {
	done map[mergeKey]bool
}

type mergeKey struct{ concrete, stub *objects.Module }

// New returns a ready-to-use Merger.
func New() *Merger {
	return &Merger{done: make(map[mergeKey]bool)}
}

// Merge combines stub into concrete in place, returning concrete.
// Calling Merge twice for the same pair is a no-op that logs STB001.
func (m *Merger) Merge(concrete, stub *objects.Module) (*objects.Module, []*errors.Report) {
	key := mergeKey{concrete, stub}
	if m.done[key] {
		span := &pos.Span{}
		return concrete, []*errors.Report{errors.New(errors.STB001, "module already merged with this stub", span).WithData("module", concrete.CanonicalPath())}
	}
	m.done[key] = true

	var reports []*errors.Report
	mergeModule(concrete, stub, &reports)
	return concrete, reports
}

func mergeModule(concrete, stub *objects.Module, reports *[]*errors.Report) {
	if concrete.Docstring() == nil && stub.Docstring() != nil {
		d := stub.Docstring()
		concrete.SetDocstring(d.Value, d.Lineno)
	}
	if len(stub.Exports) > 0 {
		concrete.Exports = stub.Exports
	}
	mergeMembers(concrete, concrete.Members(), stub.Members(), reports)
}

// mergeMembers applies the per-member merge rules to
// every name present in either side, writing the result into parent's
// own Members (which is concreteMembers, mutated in place).
func mergeMembers(parent objects.Object, concreteMembers, stubMembers *objects.Members, reports *[]*errors.Report) {
	stubMembers.Each(func(name string, stubObj objects.Object) {
		concreteObj, ok := concreteMembers.Get(name)
		if !ok {
			concreteMembers.Set(name, stubObj)
			return
		}
		merged := mergeOne(concreteObj, stubObj, reports)
		concreteMembers.Set(name, merged)
	})
}

// mergeOne merges one (concrete, stub) member pair per the
// kind-dispatch table. A kind mismatch hands the win to the stub.
func mergeOne(concrete, stub objects.Object, reports *[]*errors.Report) objects.Object {
	if concrete.Kind() != stub.Kind() {
		span := &pos.Span{}
		*reports = append(*reports, errors.New(errors.STB002, "stub/concrete kind mismatch, stub wins", span).
			WithData("name", concrete.Name()).
			WithData("concrete_kind", string(concrete.Kind())).
			WithData("stub_kind", string(stub.Kind())))
		return stub
	}

	switch c := concrete.(type) {
	case *objects.Function:
		s := stub.(*objects.Function)
		c.Parameters = s.Parameters
		c.Returns = s.Returns
		c.TypeParameters = s.TypeParameters
		if c.Docstring() == nil && s.Docstring() != nil {
			d := s.Docstring()
			c.SetDocstring(d.Value, d.Lineno)
		}
		if c.Labels() == nil {
			for l := range s.Labels() {
				c.AddLabel(l)
			}
		}
		return c
	case *objects.Attribute:
		s := stub.(*objects.Attribute)
		c.Annotation = s.Annotation
		if c.Docstring() == nil && s.Docstring() != nil {
			d := s.Docstring()
			c.SetDocstring(d.Value, d.Lineno)
		}
		return c
	case *objects.Class:
		s := stub.(*objects.Class)
		c.Bases = s.Bases
		c.KeywordBases = s.KeywordBases
		mergeMembers(c, c.Members(), s.Members(), reports)
		if c.Docstring() == nil && s.Docstring() != nil {
			d := s.Docstring()
			c.SetDocstring(d.Value, d.Lineno)
		}
		return c
	case *objects.Module:
		s := stub.(*objects.Module)
		mergeModule(c, s, reports)
		return c
	default:
		return concrete
	}
}
