package objects

import "github.com/mkdocstrings/griffe-sub003/internal/expr"

// Class is the object kind for a class definition.
type Class struct {
	common

	Bases         []expr.Expr    // positional base-class expressions
	KeywordBases  []*expr.Keyword // e.g. metaclass=...
	Decorators    []expr.Expr
	TypeParameters []string

	// Overloads maps a method name to its @overload-decorated sibling
	// signatures, populated by the Source Visitor.
	Overloads map[string][]*Function

	// MRO is computed by the Alias Resolver via C3 linearization
	// once bases are resolvable; nil until then.
	MRO []Object

	// InheritedMembers is materialized lazily by the Alias Resolver on
	// first access: the union of ancestors' members the subclass does
	// not redeclare, each wrapped as an Alias with Inherited=true.
	InheritedMembers *Members
}

// NewClass creates a Class object.
func NewClass(name string, parent Object) *Class {
	return &Class{common: newCommon(name, parent), Overloads: make(map[string][]*Function)}
}

func (c *Class) Kind() Kind { return KindClass }

// TypeParamNames exposes the class's own PEP 695 type parameters to
// Object.resolve.
func (c *Class) TypeParamNames() []string { return c.TypeParameters }

func (c *Class) Resolve(name string) (expr.Scope, error) {
	return c.common.resolve(c, name)
}
