package extensions

import (
	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

// Dataclasses synthesizes a `__init__` for a `@dataclass`-decorated
// class from its annotated class-body attributes, the way the real
// extension of the same name inspects `__dataclass_fields__` at
// runtime — here done statically from the Annotation/Value already
// captured on each Attribute member.
type Dataclasses struct{}

func (Dataclasses) Name() string { return "dataclasses" }
func (Dataclasses) Priority() int { return 0 }

func (d Dataclasses) OnClassMembers(cls *objects.Class, ctx *Context) error {
	if !isDataclassDecorated(cls) {
		return nil
	}
	if _, ok := cls.Members().Get("__init__"); ok {
		return nil
	}

	init := objects.NewFunction("__init__", cls)
	self := &expr.Parameter{Name: "self", ParamKind: expr.PositionalOrKeyword}
	init.Parameters = append(init.Parameters, self)

	cls.Members().Each(func(name string, member objects.Object) {
		attr, ok := member.(*objects.Attribute)
		if !ok || attr.Annotation == nil {
			return
		}
		if name == "__init__" {
			return
		}
		p := &expr.Parameter{
			Name:       name,
			ParamKind:  expr.PositionalOrKeyword,
			Annotation: attr.Annotation,
			Default:    attr.Value,
		}
		init.Parameters = append(init.Parameters, p)
	})

	objects.AddMember(cls, init)
	return nil
}

// isDataclassDecorated reports whether cls carries a bare `@dataclass`
// or a called `@dataclass(...)` decorator, by name or by
// `dataclasses.dataclass` attribute access.
func isDataclassDecorated(cls *objects.Class) bool {
	for _, dec := range cls.Decorators {
		if decoratorNamed(dec, "dataclass") {
			return true
		}
	}
	return false
}

func decoratorNamed(e expr.Expr, want string) bool {
	switch d := e.(type) {
	case *expr.Name:
		return d.Value == want
	case *expr.Attribute:
		return d.Name == want
	case *expr.Call:
		return decoratorNamed(d.Func, want)
	default:
		return false
	}
}
