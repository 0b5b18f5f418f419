package expr

// Reparser re-parses the inner text of a String expression into a
// fresh Expr, for string-quoted ("forward reference") annotations.
// internal/pyparse supplies the concrete implementation; expr only
// depends on the function shape to avoid an import cycle (pyparse
// already depends on expr to build expression nodes).
type Reparser func(source string, scope Scope) (Expr, error)

// ResolveForwardRef replaces a String annotation with the expression it
// textually contains ("string-quoted annotations are
// re-parsed on access and the resulting expression replaces the opaque
// string"). Call sites that only ever see an Expr field should prefer
// this over inspecting *String directly, since any annotation field may
// be wrapped if the source used quotes.
func ResolveForwardRef(e Expr, scope Scope, reparse Reparser) (Expr, error) {
	s, ok := e.(*String)
	if !ok {
		return e, nil
	}
	if reparse == nil {
		return e, nil
	}
	return reparse(s.Value, scope)
}

// Walk visits e and every expression reachable from it, depth-first,
// calling visit on each non-nil node. Used by docstring type-filling
// and by serialization traversal.
func Walk(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch n := e.(type) {
	case *Attribute:
		Walk(n.Parent, visit)
	case *Subscript:
		Walk(n.Value, visit)
		Walk(n.Slice, visit)
	case *Tuple:
		for _, el := range n.Elts {
			Walk(el, visit)
		}
	case *List:
		for _, el := range n.Elts {
			Walk(el, visit)
		}
	case *Set:
		for _, el := range n.Elts {
			Walk(el, visit)
		}
	case *Dict:
		for _, entry := range n.Entries {
			Walk(entry.Key, visit)
			Walk(entry.Value, visit)
		}
	case *Keyword:
		Walk(n.Value, visit)
	case *Call:
		Walk(n.Func, visit)
		for _, a := range n.Args {
			Walk(a, visit)
		}
		for _, kw := range n.Keywords {
			Walk(kw, visit)
		}
	case *BinOp:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *UnaryOp:
		Walk(n.Operand, visit)
	case *BoolOp:
		for _, v := range n.Values {
			Walk(v, visit)
		}
	case *Compare:
		Walk(n.Left, visit)
		for _, c := range n.Comparators {
			Walk(c, visit)
		}
	case *Lambda:
		for _, p := range n.Parameters {
			Walk(p, visit)
		}
		Walk(n.Body, visit)
	case *Slice:
		Walk(n.Lower, visit)
		Walk(n.Upper, visit)
		Walk(n.Step, visit)
	case *Starred:
		Walk(n.Value, visit)
	case *Generator:
		Walk(n.Element, visit)
		Walk(n.KeyElement, visit)
		for _, c := range n.Generators {
			Walk(c.Target, visit)
			Walk(c.Iter, visit)
			for _, cond := range c.Ifs {
				Walk(cond, visit)
			}
		}
	case *IfExp:
		Walk(n.Test, visit)
		Walk(n.Body, visit)
		Walk(n.OrElse, visit)
	case *NamedExpr:
		Walk(n.Target, visit)
		Walk(n.Value, visit)
	case *VarPositional:
		Walk(n.Value, visit)
	case *VarKeyword:
		Walk(n.Value, visit)
	case *Parameter:
		Walk(n.Annotation, visit)
		Walk(n.Default, visit)
	}
}
