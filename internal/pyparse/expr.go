package pyparse

import (
	"strconv"
	"strings"

	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/pos"
	"github.com/mkdocstrings/griffe-sub003/internal/pylex"
)

// Precedence levels, lowest to highest, mirroring Python's grammar.
const (
	LOWEST int = iota
	ASSIGNEXPR // walrus :=
	TERNARY    // x if c else y
	LOGICAL_OR
	LOGICAL_AND
	LOGICAL_NOT
	COMPARISON // ==, !=, <, >, in, is, ...
	BITOR
	BITXOR
	BITAND
	SHIFT
	ADDSUB
	MULDIV
	UNARY
	POWER
	CALL_OR_SUBSCRIPT
)

func (p *Parser) registerExprParsers() {
	p.prefixFns = map[pylex.TokenType]prefixParseFn{
		pylex.IDENT:      p.parseName,
		pylex.INT:        p.parseIntLit,
		pylex.FLOAT:      p.parseFloatLit,
		pylex.STRING:     p.parseStringLit,
		pylex.TRUE:       p.parseBoolLit,
		pylex.FALSE:      p.parseBoolLit,
		pylex.NONE:       p.parseNoneLit,
		pylex.ELLIPSIS:   p.parseEllipsisLit,
		pylex.LPAREN:     p.parseParenOrTuple,
		pylex.LBRACKET:   p.parseListOrListComp,
		pylex.LBRACE:     p.parseDictOrSetOrComp,
		pylex.MINUS:      p.parseUnary,
		pylex.PLUS:       p.parseUnary,
		pylex.TILDE:      p.parseUnary,
		pylex.NOT:        p.parseUnary,
		pylex.STAR:       p.parseStarred,
		pylex.DOUBLESTAR: p.parseStarred,
		pylex.AWAIT:      p.parseAwait,
		pylex.LAMBDA:     p.parseLambda,
		pylex.YIELD:      p.parseYield,
	}

	p.infixFns = map[pylex.TokenType]infixParseFn{
		pylex.PLUS: p.parseBinOp, pylex.MINUS: p.parseBinOp,
		pylex.STAR: p.parseBinOp, pylex.SLASH: p.parseBinOp,
		pylex.DOUBLESLASH: p.parseBinOp, pylex.PERCENT: p.parseBinOp,
		pylex.DOUBLESTAR: p.parseBinOp, pylex.AT: p.parseBinOp,
		pylex.LSHIFT: p.parseBinOp, pylex.RSHIFT: p.parseBinOp,
		pylex.AMP: p.parseBinOp, pylex.PIPE: p.parseBinOp, pylex.CARET: p.parseBinOp,
		pylex.EQ: p.parseCompare, pylex.NEQ: p.parseCompare,
		pylex.LT: p.parseCompare, pylex.GT: p.parseCompare,
		pylex.LTE: p.parseCompare, pylex.GTE: p.parseCompare,
		pylex.IN: p.parseCompare, pylex.IS: p.parseCompare,
		pylex.AND: p.parseBoolOp, pylex.OR: p.parseBoolOp,
		pylex.IF:       p.parseIfExp,
		pylex.LPAREN:   p.parseCall,
		pylex.LBRACKET: p.parseSubscript,
		pylex.DOT:      p.parseAttribute,
		pylex.WALRUS:   p.parseNamedExpr,
	}
}

func (p *Parser) precedence(tt pylex.TokenType) int {
	switch tt {
	case pylex.IF:
		return TERNARY
	case pylex.OR:
		return LOGICAL_OR
	case pylex.AND:
		return LOGICAL_AND
	case pylex.EQ, pylex.NEQ, pylex.LT, pylex.GT, pylex.LTE, pylex.GTE, pylex.IN, pylex.IS:
		return COMPARISON
	case pylex.PIPE:
		return BITOR
	case pylex.CARET:
		return BITXOR
	case pylex.AMP:
		return BITAND
	case pylex.LSHIFT, pylex.RSHIFT:
		return SHIFT
	case pylex.PLUS, pylex.MINUS:
		return ADDSUB
	case pylex.STAR, pylex.SLASH, pylex.DOUBLESLASH, pylex.PERCENT, pylex.AT:
		return MULDIV
	case pylex.DOUBLESTAR:
		return POWER
	case pylex.LPAREN, pylex.LBRACKET, pylex.DOT:
		return CALL_OR_SUBSCRIPT
	case pylex.WALRUS:
		return ASSIGNEXPR
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int { return p.precedence(p.peekToken.Type) }

// parseExpr is the Pratt loop: parse a prefix expression, then keep
// pulling in infix operators bound more tightly than precedence.
func (p *Parser) parseExpr(precedence int) expr.Expr {
	prefix, ok := p.prefixFns[p.curToken.Type]
	if !ok {
		p.errorf("no prefix parse function for %s %q", p.curToken.Type, p.curToken.Literal)
		p.nextToken()
		return nil
	}
	left := prefix()

	for !p.curIs(pylex.NEWLINE) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) epos() pos.Pos {
	return pos.Pos{Line: p.curToken.Line, Column: p.curToken.Column, File: p.file}
}

func (p *Parser) parseName() expr.Expr {
	n := expr.NewName(p.curToken.Literal, p.epos())
	p.nextToken()
	return n
}

func (p *Parser) parseIntLit() expr.Expr {
	raw := p.curToken.Literal
	at := p.epos()
	p.nextToken()
	v, _ := strconv.ParseInt(strings.ReplaceAll(raw, "_", ""), 0, 64)
	return &expr.Constant{Base: baseAt(at), ConstKind: expr.ConstInt, Value: v, Raw: raw}
}

func (p *Parser) parseFloatLit() expr.Expr {
	raw := p.curToken.Literal
	at := p.epos()
	p.nextToken()
	clean := strings.ReplaceAll(raw, "_", "")
	if strings.HasSuffix(clean, "j") || strings.HasSuffix(clean, "J") {
		return &expr.Constant{Base: baseAt(at), ConstKind: expr.ConstComplex, Value: clean, Raw: raw}
	}
	v, _ := strconv.ParseFloat(clean, 64)
	return &expr.Constant{Base: baseAt(at), ConstKind: expr.ConstFloat, Value: v, Raw: raw}
}

func (p *Parser) parseStringLit() expr.Expr {
	raw := p.curToken.Literal
	at := p.epos()
	p.nextToken()
	// Adjacent string literal concatenation, e.g. "a" "b".
	for p.curIs(pylex.STRING) {
		raw += " " + p.curToken.Literal
		p.nextToken()
	}
	return expr.NewString(unquotePythonString(raw), raw, at)
}

func (p *Parser) parseBoolLit() expr.Expr {
	at := p.epos()
	v := p.curIs(pylex.TRUE)
	p.nextToken()
	return &expr.Constant{Base: baseAt(at), ConstKind: expr.ConstBool, Value: v}
}

func (p *Parser) parseNoneLit() expr.Expr {
	at := p.epos()
	p.nextToken()
	return &expr.Constant{Base: baseAt(at), ConstKind: expr.ConstNone}
}

func (p *Parser) parseEllipsisLit() expr.Expr {
	at := p.epos()
	p.nextToken()
	return &expr.Constant{Base: baseAt(at), ConstKind: expr.ConstEllipsis}
}

func (p *Parser) parseUnary() expr.Expr {
	at := p.epos()
	op := p.curToken.Literal
	if p.curIs(pylex.NOT) {
		op = "not"
	}
	p.nextToken()
	operand := p.parseExpr(UNARY)
	return &expr.UnaryOp{Base: baseAt(at), Op: op, Operand: operand}
}

func (p *Parser) parseStarred() expr.Expr {
	at := p.epos()
	isDouble := p.curIs(pylex.DOUBLESTAR)
	p.nextToken()
	value := p.parseExpr(UNARY)
	if isDouble {
		return &expr.VarKeyword{Base: baseAt(at), Value: value}
	}
	return &expr.Starred{Base: baseAt(at), Value: value}
}

func (p *Parser) parseAwait() expr.Expr {
	p.nextToken()
	return p.parseExpr(UNARY)
}

func (p *Parser) parseYield() expr.Expr {
	at := p.epos()
	p.nextToken()
	if p.curIs(pylex.FROM) {
		p.nextToken()
	}
	if p.curIs(pylex.NEWLINE) || p.curIs(pylex.RPAREN) || p.curIs(pylex.EOF) {
		return &expr.Constant{Base: baseAt(at), ConstKind: expr.ConstNone}
	}
	return p.parseExpr(LOWEST)
}

func (p *Parser) parseLambda() expr.Expr {
	at := p.epos()
	p.nextToken() // 'lambda'
	var params []*expr.Parameter
	kind := expr.PositionalOrKeyword
	for !p.curIs(pylex.COLON) && !p.curIs(pylex.EOF) {
		switch {
		case p.curIs(pylex.STAR):
			p.nextToken()
			params = append(params, p.parseOneParameter(expr.VarPositionalKind))
			kind = expr.KeywordOnly
		case p.curIs(pylex.DOUBLESTAR):
			p.nextToken()
			params = append(params, p.parseOneParameter(expr.VarKeywordKind))
		default:
			params = append(params, p.parseOneParameter(kind))
		}
		if p.curIs(pylex.COMMA) {
			p.nextToken()
		}
	}
	p.expect(pylex.COLON)
	body := p.parseExpr(LOWEST)
	return &expr.Lambda{Base: baseAt(at), Parameters: params, Body: body}
}

func (p *Parser) parseBinOp(left expr.Expr) expr.Expr {
	at := p.epos()
	op := p.curToken.Literal
	prec := p.precedence(p.curToken.Type)
	p.nextToken()
	right := p.parseExpr(prec)
	return &expr.BinOp{Base: baseAt(at), Left: left, Op: op, Right: right}
}

func (p *Parser) parseCompare(left expr.Expr) expr.Expr {
	at := p.epos()
	op := p.curToken.Literal
	if p.curIs(pylex.NOT) { // not reached: NOT is not an infix operator, so `not in` is not parsed
		op = "not"
	}
	if p.curIs(pylex.IS) && p.peekIs(pylex.NOT) {
		p.nextToken()
		op = "is not"
	} else if p.curIs(pylex.IN) {
		op = "in"
	}
	prec := p.precedence(p.curToken.Type)
	p.nextToken()
	right := p.parseExpr(prec)

	if c, ok := left.(*expr.Compare); ok {
		c.Ops = append(c.Ops, op)
		c.Comparators = append(c.Comparators, right)
		return c
	}
	return &expr.Compare{Base: baseAt(at), Left: left, Ops: []string{op}, Comparators: []expr.Expr{right}}
}

func (p *Parser) parseBoolOp(left expr.Expr) expr.Expr {
	at := p.epos()
	op := p.curToken.Literal
	prec := p.precedence(p.curToken.Type)
	p.nextToken()
	right := p.parseExpr(prec)

	if b, ok := left.(*expr.BoolOp); ok && b.Op == op {
		b.Values = append(b.Values, right)
		return b
	}
	return &expr.BoolOp{Base: baseAt(at), Op: op, Values: []expr.Expr{left, right}}
}

func (p *Parser) parseIfExp(body expr.Expr) expr.Expr {
	at := p.epos()
	p.nextToken() // 'if'
	test := p.parseExpr(TERNARY)
	p.expect(pylex.ELSE)
	orelse := p.parseExpr(TERNARY)
	return &expr.IfExp{Base: baseAt(at), Test: test, Body: body, OrElse: orelse}
}

func (p *Parser) parseNamedExpr(target expr.Expr) expr.Expr {
	at := p.epos()
	p.nextToken() // ':='
	value := p.parseExpr(ASSIGNEXPR)
	return &expr.NamedExpr{Base: baseAt(at), Target: target, Value: value}
}

func (p *Parser) parseAttribute(left expr.Expr) expr.Expr {
	at := p.epos()
	p.nextToken() // '.'
	name := p.curToken.Literal
	p.nextToken()
	return &expr.Attribute{Base: baseAt(at), Parent: left, Name: name}
}

func (p *Parser) parseCall(fn expr.Expr) expr.Expr {
	at := p.epos()
	p.nextToken() // '('
	var args []expr.Expr
	var kwargs []*expr.Keyword
	for !p.curIs(pylex.RPAREN) && !p.curIs(pylex.EOF) {
		if p.curIs(pylex.IDENT) && p.peekIs(pylex.ASSIGN) {
			name := p.curToken.Literal
			p.nextToken()
			p.nextToken()
			kwargs = append(kwargs, &expr.Keyword{Name: name, Value: p.parseExpr(LOWEST)})
		} else {
			args = append(args, p.parseExpr(LOWEST))
		}
		if p.curIs(pylex.COMMA) {
			p.nextToken()
		}
	}
	p.expect(pylex.RPAREN)
	return &expr.Call{Base: baseAt(at), Func: fn, Args: args, Keywords: kwargs}
}

func (p *Parser) parseSubscript(value expr.Expr) expr.Expr {
	at := p.epos()
	p.nextToken() // '['
	slice := p.parseSliceOrIndex()
	p.expect(pylex.RBRACKET)
	return &expr.Subscript{Base: baseAt(at), Value: value, Slice: slice}
}

func (p *Parser) parseSliceOrIndex() expr.Expr {
	var lower, upper, step expr.Expr
	isSlice := false
	if !p.curIs(pylex.COLON) && !p.curIs(pylex.RBRACKET) {
		lower = p.parseExpr(LOWEST)
	}
	if p.curIs(pylex.COLON) {
		isSlice = true
		p.nextToken()
		if !p.curIs(pylex.COLON) && !p.curIs(pylex.RBRACKET) {
			upper = p.parseExpr(LOWEST)
		}
		if p.curIs(pylex.COLON) {
			p.nextToken()
			if !p.curIs(pylex.RBRACKET) {
				step = p.parseExpr(LOWEST)
			}
		}
	}
	if isSlice {
		return &expr.Slice{Lower: lower, Upper: upper, Step: step}
	}
	if p.curIs(pylex.COMMA) {
		elts := []expr.Expr{lower}
		for p.curIs(pylex.COMMA) {
			p.nextToken()
			if p.curIs(pylex.RBRACKET) {
				break
			}
			elts = append(elts, p.parseExpr(LOWEST))
		}
		return &expr.Tuple{Elts: elts}
	}
	return lower
}

func (p *Parser) parseParenOrTuple() expr.Expr {
	at := p.epos()
	p.nextToken() // '('
	if p.curIs(pylex.RPAREN) {
		p.nextToken()
		return &expr.Tuple{Base: baseAt(at)}
	}
	first := p.parseExpr(LOWEST)
	if genExprs := p.tryParseComprehensionTail(first, expr.GenGenerator); genExprs != nil {
		p.expect(pylex.RPAREN)
		return genExprs
	}
	if !p.curIs(pylex.COMMA) {
		p.expect(pylex.RPAREN)
		return first
	}
	elts := []expr.Expr{first}
	for p.curIs(pylex.COMMA) {
		p.nextToken()
		if p.curIs(pylex.RPAREN) {
			break
		}
		elts = append(elts, p.parseExpr(LOWEST))
	}
	p.expect(pylex.RPAREN)
	return &expr.Tuple{Base: baseAt(at), Elts: elts}
}

func (p *Parser) parseListOrListComp() expr.Expr {
	at := p.epos()
	p.nextToken() // '['
	if p.curIs(pylex.RBRACKET) {
		p.nextToken()
		return &expr.List{Base: baseAt(at)}
	}
	first := p.parseExpr(LOWEST)
	if comp := p.tryParseComprehensionTail(first, expr.GenListComp); comp != nil {
		p.expect(pylex.RBRACKET)
		return comp
	}
	elts := []expr.Expr{first}
	for p.curIs(pylex.COMMA) {
		p.nextToken()
		if p.curIs(pylex.RBRACKET) {
			break
		}
		elts = append(elts, p.parseExpr(LOWEST))
	}
	p.expect(pylex.RBRACKET)
	return &expr.List{Base: baseAt(at), Elts: elts}
}

func (p *Parser) parseDictOrSetOrComp() expr.Expr {
	at := p.epos()
	p.nextToken() // '{'
	if p.curIs(pylex.RBRACE) {
		p.nextToken()
		return &expr.Dict{Base: baseAt(at)}
	}

	if p.curIs(pylex.DOUBLESTAR) {
		p.nextToken()
		firstVal := p.parseExpr(LOWEST)
		entries := []expr.DictEntry{{Key: nil, Value: firstVal}}
		return p.finishDict(at, entries)
	}

	firstKeyOrElt := p.parseExpr(LOWEST)
	if p.curIs(pylex.COLON) {
		p.nextToken()
		firstVal := p.parseExpr(LOWEST)
		if comp := p.tryParseComprehensionTail(nil, expr.GenDictComp); comp != nil {
			if g, ok := comp.(*expr.Generator); ok {
				g.KeyElement = firstKeyOrElt
				g.Element = firstVal
			}
			p.expect(pylex.RBRACE)
			return comp
		}
		entries := []expr.DictEntry{{Key: firstKeyOrElt, Value: firstVal}}
		return p.finishDict(at, entries)
	}

	if comp := p.tryParseComprehensionTail(firstKeyOrElt, expr.GenSetComp); comp != nil {
		p.expect(pylex.RBRACE)
		return comp
	}

	elts := []expr.Expr{firstKeyOrElt}
	for p.curIs(pylex.COMMA) {
		p.nextToken()
		if p.curIs(pylex.RBRACE) {
			break
		}
		elts = append(elts, p.parseExpr(LOWEST))
	}
	p.expect(pylex.RBRACE)
	return &expr.Set{Base: baseAt(at), Elts: elts}
}

func (p *Parser) finishDict(at pos.Pos, entries []expr.DictEntry) expr.Expr {
	for p.curIs(pylex.COMMA) {
		p.nextToken()
		if p.curIs(pylex.RBRACE) {
			break
		}
		if p.curIs(pylex.DOUBLESTAR) {
			p.nextToken()
			entries = append(entries, expr.DictEntry{Key: nil, Value: p.parseExpr(LOWEST)})
			continue
		}
		k := p.parseExpr(LOWEST)
		p.expect(pylex.COLON)
		v := p.parseExpr(LOWEST)
		entries = append(entries, expr.DictEntry{Key: k, Value: v})
	}
	p.expect(pylex.RBRACE)
	return &expr.Dict{Base: baseAt(at), Entries: entries}
}

// tryParseComprehensionTail looks for a `for ... in ... [if ...]` tail
// immediately following an already-parsed element expression. Returns
// nil (no mutation beyond normal token consumption) if no `for`
// follows, so the caller falls back to literal/collection parsing.
func (p *Parser) tryParseComprehensionTail(element expr.Expr, kind expr.GeneratorKind) expr.Expr {
	if !p.curIs(pylex.FOR) && !p.curIs(pylex.ASYNC) {
		return nil
	}
	at := p.epos()
	var gens []expr.Comprehension
	for p.curIs(pylex.FOR) || p.curIs(pylex.ASYNC) {
		isAsync := false
		if p.curIs(pylex.ASYNC) {
			isAsync = true
			p.nextToken()
		}
		p.expect(pylex.FOR)
		target := p.parseExpr(COMPARISON)
		p.expect(pylex.IN)
		iter := p.parseExpr(TERNARY)
		comp := expr.Comprehension{Target: target, Iter: iter, IsAsync: isAsync}
		for p.curIs(pylex.IF) {
			p.nextToken()
			comp.Ifs = append(comp.Ifs, p.parseExpr(TERNARY))
		}
		gens = append(gens, comp)
	}
	return &expr.Generator{Base: baseAt(at), GenKind: kind, Element: element, Generators: gens}
}

func baseAt(p pos.Pos) expr.Base { return expr.Base{Pos: p} }

func unquotePythonString(raw string) string {
	i := 0
	for i < len(raw) {
		c := raw[i] | 0x20
		if c == 'r' || c == 'b' || c == 'u' || c == 'f' {
			i++
			continue
		}
		break
	}
	body := raw[i:]
	if len(body) >= 6 && (strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, "'''")) {
		return body[3 : len(body)-3]
	}
	if len(body) >= 2 {
		return body[1 : len(body)-1]
	}
	return body
}
