package expr

import "strings"

// Render produces the textual form of an expression, following the
// fixed joining rules: Subscript -> "value[slice]",
// a Tuple inside a subscript joins with ", ", BinOp renders with
// surrounding spaces, Attribute joins with ".".
func Render(e Expr) string {
	var sb strings.Builder
	write(&sb, e)
	return sb.String()
}

func write(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case nil:
		return
	case *Name:
		sb.WriteString(n.Value)
	case *Attribute:
		write(sb, n.Parent)
		sb.WriteByte('.')
		sb.WriteString(n.Name)
	case *Subscript:
		write(sb, n.Value)
		sb.WriteByte('[')
		write(sb, n.Slice)
		sb.WriteByte(']')
	case *Tuple:
		writeJoined(sb, n.Elts, ", ")
	case *List:
		sb.WriteByte('[')
		writeJoined(sb, n.Elts, ", ")
		sb.WriteByte(']')
	case *Set:
		sb.WriteByte('{')
		writeJoined(sb, n.Elts, ", ")
		sb.WriteByte('}')
	case *Dict:
		sb.WriteByte('{')
		for i, entry := range n.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			if entry.Key == nil {
				sb.WriteString("**")
				write(sb, entry.Value)
				continue
			}
			write(sb, entry.Key)
			sb.WriteString(": ")
			write(sb, entry.Value)
		}
		sb.WriteByte('}')
	case *Keyword:
		if n.Name == "" {
			sb.WriteString("**")
			write(sb, n.Value)
			return
		}
		sb.WriteString(n.Name)
		sb.WriteByte('=')
		write(sb, n.Value)
	case *Call:
		write(sb, n.Func)
		sb.WriteByte('(')
		first := true
		for _, a := range n.Args {
			if !first {
				sb.WriteString(", ")
			}
			write(sb, a)
			first = false
		}
		for _, kw := range n.Keywords {
			if !first {
				sb.WriteString(", ")
			}
			write(sb, kw)
			first = false
		}
		sb.WriteByte(')')
	case *BinOp:
		write(sb, n.Left)
		sb.WriteByte(' ')
		sb.WriteString(n.Op)
		sb.WriteByte(' ')
		write(sb, n.Right)
	case *UnaryOp:
		sb.WriteString(n.Op)
		write(sb, n.Operand)
	case *BoolOp:
		writeJoinedOp(sb, n.Values, " "+n.Op+" ")
	case *Compare:
		write(sb, n.Left)
		for i, op := range n.Ops {
			sb.WriteByte(' ')
			sb.WriteString(op)
			sb.WriteByte(' ')
			write(sb, n.Comparators[i])
		}
	case *Constant:
		sb.WriteString(n.Raw)
	case *String:
		sb.WriteString(n.Quoted)
	case *Lambda:
		sb.WriteString("lambda ")
		for i, p := range n.Parameters {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
		}
		sb.WriteString(": ")
		write(sb, n.Body)
	case *Slice:
		if n.Lower != nil {
			write(sb, n.Lower)
		}
		sb.WriteByte(':')
		if n.Upper != nil {
			write(sb, n.Upper)
		}
		if n.Step != nil {
			sb.WriteByte(':')
			write(sb, n.Step)
		}
	case *Starred:
		sb.WriteByte('*')
		write(sb, n.Value)
	case *Generator:
		writeGenerator(sb, n)
	case *IfExp:
		write(sb, n.Body)
		sb.WriteString(" if ")
		write(sb, n.Test)
		sb.WriteString(" else ")
		write(sb, n.OrElse)
	case *NamedExpr:
		write(sb, n.Target)
		sb.WriteString(" := ")
		write(sb, n.Value)
	case *VarPositional:
		sb.WriteByte('*')
		write(sb, n.Value)
	case *VarKeyword:
		sb.WriteString("**")
		write(sb, n.Value)
	case *Parameter:
		sb.WriteString(n.Name)
		if n.Annotation != nil {
			sb.WriteString(": ")
			write(sb, n.Annotation)
		}
		if n.Default != nil {
			sb.WriteString(" = ")
			write(sb, n.Default)
		}
	default:
		sb.WriteString("<?>")
	}
}

func writeGenerator(sb *strings.Builder, g *Generator) {
	open, close := "(", ")"
	switch g.GenKind {
	case GenListComp:
		open, close = "[", "]"
	case GenSetComp, GenDictComp:
		open, close = "{", "}"
	}
	sb.WriteString(open)
	if g.GenKind == GenDictComp {
		write(sb, g.KeyElement)
		sb.WriteString(": ")
		write(sb, g.Element)
	} else {
		write(sb, g.Element)
	}
	for _, c := range g.Generators {
		if c.IsAsync {
			sb.WriteString(" async for ")
		} else {
			sb.WriteString(" for ")
		}
		write(sb, c.Target)
		sb.WriteString(" in ")
		write(sb, c.Iter)
		for _, cond := range c.Ifs {
			sb.WriteString(" if ")
			write(sb, cond)
		}
	}
	sb.WriteString(close)
}

func writeJoined(sb *strings.Builder, elts []Expr, sep string) {
	for i, e := range elts {
		if i > 0 {
			sb.WriteString(sep)
		}
		write(sb, e)
	}
}

func writeJoinedOp(sb *strings.Builder, elts []Expr, sep string) {
	for i, e := range elts {
		if i > 0 {
			sb.WriteString(sep)
		}
		write(sb, e)
	}
}
