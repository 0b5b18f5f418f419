package extensions

import (
	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

// UnpackTypedDict expands a `**kwargs: Unpack[TD]` parameter into one
// keyword-only parameter per field of the referenced TypedDict class,
// the way the real extension reads the TypedDict's `__annotations__`
// at runtime — here done statically by resolving TD through the
// parameter's own scope and reading its class members.
type UnpackTypedDict struct{}

func (UnpackTypedDict) Name() string  { return "unpack-typeddict" }
func (UnpackTypedDict) Priority() int { return 10 }

func (u UnpackTypedDict) OnFunctionMembers(fn *objects.Function, ctx *Context) error {
	for i, p := range fn.Parameters {
		if p.ParamKind != expr.VarKeywordKind {
			continue
		}
		td, ok := unpackTarget(p.Annotation)
		if !ok {
			continue
		}
		fields := typedDictFields(td)
		if len(fields) == 0 {
			continue
		}
		expanded := make([]*expr.Parameter, 0, len(fields))
		for _, f := range fields {
			expanded = append(expanded, &expr.Parameter{
				Name:       f.Name(),
				ParamKind:  expr.KeywordOnly,
				Annotation: f.Annotation,
			})
		}
		fn.Parameters = append(append(append([]*expr.Parameter{}, fn.Parameters[:i]...), expanded...), fn.Parameters[i+1:]...)
		break
	}
	return nil
}

// unpackTarget reports whether annotation is `Unpack[TD]`, returning
// TD's expression.
func unpackTarget(annotation expr.Expr) (expr.Expr, bool) {
	sub, ok := annotation.(*expr.Subscript)
	if !ok {
		return nil, false
	}
	name, ok := sub.Value.(*expr.Name)
	if !ok || name.Value != "Unpack" {
		if attr, ok := sub.Value.(*expr.Attribute); !ok || attr.Name != "Unpack" {
			return nil, false
		}
	}
	return sub.Slice, true
}

// typedDictFields resolves td (a Name referencing a TypedDict class)
// through its ScopeRef and returns its annotated attribute members in
// declaration order. An Attribute reference is not resolved and yields
// no fields.
func typedDictFields(td expr.Expr) []*objects.Attribute {
	name, ok := td.(*expr.Name)
	if !ok || name.ScopeRef == nil {
		return nil
	}
	scope, err := name.ScopeRef.Resolve(name.Value)
	if err != nil {
		return nil
	}
	cls, ok := scope.(*objects.Class)
	if !ok {
		return nil
	}
	var fields []*objects.Attribute
	cls.Members().Each(func(_ string, member objects.Object) {
		if attr, ok := member.(*objects.Attribute); ok && attr.Annotation != nil {
			fields = append(fields, attr)
		}
	})
	return fields
}
