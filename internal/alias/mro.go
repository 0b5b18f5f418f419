package alias

import (
	"fmt"

	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

// MRO computes cls's method resolution order via C3 linearization
// and memoizes it onto cls.MRO. A class with no resolvable bases
// returns [cls].
func (r *Resolver) MRO(cls *objects.Class) ([]objects.Object, error) {
	if cls.MRO != nil {
		return cls.MRO, nil
	}

	bases := r.resolveBases(cls)
	if len(bases) == 0 {
		cls.MRO = []objects.Object{cls}
		return cls.MRO, nil
	}

	sequences := make([][]objects.Object, 0, len(bases)+1)
	for _, base := range bases {
		baseMRO, err := r.MRO(base)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, append([]objects.Object(nil), baseMRO...))
	}
	baseObjs := make([]objects.Object, len(bases))
	for i, b := range bases {
		baseObjs[i] = b
	}
	sequences = append(sequences, baseObjs)

	merged, err := c3Merge(sequences)
	if err != nil {
		return nil, fmt.Errorf("computing MRO for %q: %w", cls.CanonicalPath(), err)
	}
	cls.MRO = append([]objects.Object{cls}, merged...)
	return cls.MRO, nil
}

// resolveBases maps cls.Bases expressions to already-loaded Class
// objects, silently skipping a base whose name does not resolve to a
// Class.
func (r *Resolver) resolveBases(cls *objects.Class) []*objects.Class {
	var out []*objects.Class
	for _, base := range cls.Bases {
		if resolved, ok := r.resolveBaseExpr(base); ok {
			out = append(out, resolved)
		}
	}
	return out
}

func (r *Resolver) resolveBaseExpr(base expr.Expr) (*objects.Class, bool) {
	name, ok := base.(*expr.Name)
	if !ok {
		if attr, isAttr := base.(*expr.Attribute); isAttr {
			return r.resolveAttributeBase(attr)
		}
		return nil, false
	}
	if name.ScopeRef == nil {
		return nil, false
	}
	scope, err := name.ScopeRef.Resolve(name.Value)
	if err != nil {
		return nil, false
	}
	return r.unwrapToClass(scope)
}

func (r *Resolver) resolveAttributeBase(attr *expr.Attribute) (*objects.Class, bool) {
	return r.Collection.LookupClass(attr.CanonicalPath())
}

func (r *Resolver) unwrapToClass(scope expr.Scope) (*objects.Class, bool) {
	switch v := scope.(type) {
	case *objects.Class:
		return v, true
	case *objects.Alias:
		if !v.Resolved() {
			r.resolveAlias(v, map[*objects.Alias]bool{})
		}
		if v.Target() == nil {
			return nil, false
		}
		return r.unwrapToClass(v.Target())
	default:
		return nil, false
	}
}

// c3Merge implements the C3 linearization merge step over a list of
// sequences (each base's own MRO, plus the direct-bases list itself).
func c3Merge(sequences [][]objects.Object) ([]objects.Object, error) {
	var result []objects.Object
	for {
		sequences = dropEmpty(sequences)
		if len(sequences) == 0 {
			return result, nil
		}

		var head objects.Object
		for _, seq := range sequences {
			candidate := seq[0]
			if !appearsInTail(candidate, sequences) {
				head = candidate
				break
			}
		}
		if head == nil {
			return nil, fmt.Errorf("inconsistent hierarchy: cannot linearize")
		}

		result = append(result, head)
		for i, seq := range sequences {
			sequences[i] = removeFirstOccurrence(seq, head)
		}
	}
}

func dropEmpty(sequences [][]objects.Object) [][]objects.Object {
	out := sequences[:0]
	for _, seq := range sequences {
		if len(seq) > 0 {
			out = append(out, seq)
		}
	}
	return out
}

func appearsInTail(candidate objects.Object, sequences [][]objects.Object) bool {
	for _, seq := range sequences {
		for _, o := range seq[1:] {
			if o == candidate {
				return true
			}
		}
	}
	return false
}

func removeFirstOccurrence(seq []objects.Object, o objects.Object) []objects.Object {
	if len(seq) > 0 && seq[0] == o {
		return seq[1:]
	}
	return seq
}

// InheritedMembers materializes, on first access, the union of
// ancestors' members cls does not redeclare, each wrapped as an Alias
// with Inherited=true.
func (r *Resolver) InheritedMembers(cls *objects.Class) (*objects.Members, error) {
	if cls.InheritedMembers != nil {
		return cls.InheritedMembers, nil
	}
	mro, err := r.MRO(cls)
	if err != nil {
		return nil, err
	}

	members := objects.NewMembers()
	for _, ancestor := range mro[1:] {
		ancestor.Members().Each(func(name string, obj objects.Object) {
			if _, redeclared := members.Get(name); redeclared {
				return
			}
			if _, ownMember := cls.Members().Get(name); ownMember {
				return
			}
			a := objects.NewAlias(name, cls, ancestor.CanonicalPath()+"."+name)
			a.SetInherited(true)
			a.SetTarget(obj)
			members.Set(name, a)
		})
	}
	cls.InheritedMembers = members
	return members, nil
}
