package objects

import "github.com/mkdocstrings/griffe-sub003/internal/expr"

// TypeAlias is the object kind for a PEP 695 `type X = ...` statement
// or an `X: TypeAlias = ...` annotated assignment.
type TypeAlias struct {
	common

	Value          expr.Expr
	TypeParameters []string
}

// NewTypeAlias creates a TypeAlias object.
func NewTypeAlias(name string, parent Object) *TypeAlias {
	return &TypeAlias{common: newCommon(name, parent)}
}

func (t *TypeAlias) Kind() Kind { return KindTypeAlias }

// TypeParamNames exposes the type alias's own PEP 695 type parameters
// to Object.resolve.
func (t *TypeAlias) TypeParamNames() []string { return t.TypeParameters }

func (t *TypeAlias) Resolve(name string) (expr.Scope, error) {
	return t.common.resolve(t, name)
}
