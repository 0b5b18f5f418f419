package objects

import "github.com/mkdocstrings/griffe-sub003/internal/expr"

// Function is the object kind for a function or method definition.
type Function struct {
	common

	Parameters     []*expr.Parameter // in declaration order
	Returns        expr.Expr
	Decorators     []expr.Expr
	TypeParameters []string

	// Overloads lists sibling @overload-decorated signatures sharing
	// this function's name within the enclosing scope. The implementation itself (the non-overload definition)
	// is not included in its own Overloads slice.
	Overloads []*Function
}

// NewFunction creates a Function object.
func NewFunction(name string, parent Object) *Function {
	return &Function{common: newCommon(name, parent)}
}

func (f *Function) Kind() Kind { return KindFunction }

// TypeParamNames exposes the function's own PEP 695 type parameters to
// Object.resolve.
func (f *Function) TypeParamNames() []string { return f.TypeParameters }

func (f *Function) Resolve(name string) (expr.Scope, error) {
	return f.common.resolve(f, name)
}

// Parameter looks up a parameter by name.
func (f *Function) Parameter(name string) (*expr.Parameter, bool) {
	for _, p := range f.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}
