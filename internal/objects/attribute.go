package objects

import "github.com/mkdocstrings/griffe-sub003/internal/expr"

// Attribute is the object kind for a module/class-level variable or
// instance attribute.
type Attribute struct {
	common

	Value      expr.Expr // the right-hand-side expression, if any
	Annotation expr.Expr
}

// NewAttribute creates an Attribute object.
func NewAttribute(name string, parent Object) *Attribute {
	return &Attribute{common: newCommon(name, parent)}
}

func (a *Attribute) Kind() Kind { return KindAttribute }

func (a *Attribute) Resolve(name string) (expr.Scope, error) {
	return a.common.resolve(a, name)
}
