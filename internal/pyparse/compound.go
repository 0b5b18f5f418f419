package pyparse

import (
	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/pyast"
	"github.com/mkdocstrings/griffe-sub003/internal/pylex"
)

func (p *Parser) parseTypeParams() []string {
	if !p.curIs(pylex.LBRACKET) {
		return nil
	}
	p.nextToken()
	var names []string
	for !p.curIs(pylex.RBRACKET) && !p.curIs(pylex.EOF) {
		if p.curIs(pylex.STAR) || p.curIs(pylex.DOUBLESTAR) {
			p.nextToken()
		}
		if p.curIs(pylex.IDENT) {
			names = append(names, p.curToken.Literal)
			p.nextToken()
		}
		if p.curIs(pylex.COLON) { // bound: `T: int`
			p.nextToken()
			p.parseExpr(LOWEST)
		}
		if p.curIs(pylex.COMMA) {
			p.nextToken()
		}
	}
	if p.curIs(pylex.RBRACKET) {
		p.nextToken()
	}
	return names
}

func (p *Parser) parseFunctionDef(async bool, decorators []expr.Expr) pyast.Stmt {
	start := p.pos()
	p.nextToken() // consume 'def'
	if !p.curIs(pylex.IDENT) {
		p.errorf("expected function name")
		p.skipToNextLogicalLine()
		return nil
	}
	name := p.curToken.Literal
	p.nextToken()

	typeParams := p.parseTypeParams()

	if !p.expect(pylex.LPAREN) {
		p.skipToNextLogicalLine()
		return nil
	}
	params := p.parseParameters()
	if !p.expect(pylex.RPAREN) {
		p.skipToNextLogicalLine()
		return nil
	}

	var returns expr.Expr
	if p.curIs(pylex.ARROW) {
		p.nextToken()
		returns = p.parseExpr(LOWEST)
	}
	if !p.expect(pylex.COLON) {
		p.skipToNextLogicalLine()
		return nil
	}

	body := p.parseBlock()
	fn := &pyast.FunctionDef{
		Name: name, Parameters: params, Returns: returns,
		Decorators: decorators, TypeParams: typeParams, Body: body, Async: async,
	}
	fn.Pos = start
	fn.Docstring = leadingDocstring(body)
	return fn
}

// parseParameters parses a `(self, a, b: int = 1, *args, c, **kw)` list
// into expr.Parameter nodes, classifying each by ParameterKind.
func (p *Parser) parseParameters() []*expr.Parameter {
	var params []*expr.Parameter
	kind := expr.PositionalOrKeyword
	for !p.curIs(pylex.RPAREN) && !p.curIs(pylex.EOF) {
		before := p.curToken
		switch {
		case p.curIs(pylex.STAR) && p.peekIs(pylex.COMMA):
			// bare `*` marker: everything after is keyword-only
			p.nextToken()
			kind = expr.KeywordOnly
		case p.curIs(pylex.STAR):
			p.nextToken()
			param := p.parseOneParameter(expr.VarPositionalKind)
			params = append(params, param)
			kind = expr.KeywordOnly
		case p.curIs(pylex.DOUBLESTAR):
			p.nextToken()
			param := p.parseOneParameter(expr.VarKeywordKind)
			params = append(params, param)
		case p.curIs(pylex.SLASH):
			// positional-only marker; params before this point are retagged
			p.nextToken()
			for _, pr := range params {
				if pr.ParamKind == expr.PositionalOrKeyword {
					pr.ParamKind = expr.PositionalOnly
				}
			}
		default:
			param := p.parseOneParameter(kind)
			params = append(params, param)
		}
		if p.curIs(pylex.COMMA) {
			p.nextToken()
		}
		if p.curToken == before {
			// No branch consumed a token (e.g. a stray ':' where a name was
			// expected); force progress so malformed input can't hang the parser.
			p.errorf("unexpected token %s in parameter list", p.curToken.Type)
			p.nextToken()
		}
	}
	return params
}

func (p *Parser) parseOneParameter(kind expr.ParameterKind) *expr.Parameter {
	param := &expr.Parameter{ParamKind: kind}
	if p.curIs(pylex.IDENT) {
		param.Name = p.curToken.Literal
		p.nextToken()
	}
	if p.curIs(pylex.COLON) {
		p.nextToken()
		param.Annotation = p.parseExpr(LOWEST)
	}
	if p.curIs(pylex.ASSIGN) {
		p.nextToken()
		param.Default = p.parseExpr(LOWEST)
	}
	return param
}

func (p *Parser) parseClassDef(decorators []expr.Expr) pyast.Stmt {
	start := p.pos()
	p.nextToken() // consume 'class'
	if !p.curIs(pylex.IDENT) {
		p.errorf("expected class name")
		p.skipToNextLogicalLine()
		return nil
	}
	name := p.curToken.Literal
	p.nextToken()

	typeParams := p.parseTypeParams()

	var bases []expr.Expr
	var keywordBases []*expr.Keyword
	if p.curIs(pylex.LPAREN) {
		p.nextToken()
		for !p.curIs(pylex.RPAREN) && !p.curIs(pylex.EOF) {
			if p.curIs(pylex.IDENT) && p.peekIs(pylex.ASSIGN) {
				kwName := p.curToken.Literal
				p.nextToken()
				p.nextToken()
				keywordBases = append(keywordBases, &expr.Keyword{Name: kwName, Value: p.parseExpr(LOWEST)})
			} else if p.curIs(pylex.DOUBLESTAR) {
				p.nextToken()
				p.parseExpr(LOWEST)
			} else {
				bases = append(bases, p.parseExpr(LOWEST))
			}
			if p.curIs(pylex.COMMA) {
				p.nextToken()
			}
		}
		p.expect(pylex.RPAREN)
	}
	if !p.expect(pylex.COLON) {
		p.skipToNextLogicalLine()
		return nil
	}
	body := p.parseBlock()
	cls := &pyast.ClassDef{
		Name: name, Bases: bases, KeywordBases: keywordBases,
		Decorators: decorators, TypeParams: typeParams, Body: body,
	}
	cls.Pos = start
	cls.Docstring = leadingDocstring(body)
	return cls
}

func leadingDocstring(body []pyast.Stmt) string {
	if len(body) == 0 {
		return ""
	}
	es, ok := body[0].(*pyast.ExprStmt)
	if !ok || es.Value == nil {
		return ""
	}
	if s, ok := es.Value.(*expr.String); ok {
		return s.Value
	}
	return ""
}

func (p *Parser) parseIf() pyast.Stmt {
	start := p.pos()
	p.nextToken() // 'if'
	test := p.parseExpr(LOWEST)
	p.expect(pylex.COLON)
	body := p.parseBlock()

	node := &pyast.If{Test: test, Body: body}
	node.Pos = start

	if p.curIs(pylex.ELIF) {
		node.Orelse = []pyast.Stmt{p.parseElif()}
	} else if p.curIs(pylex.ELSE) {
		p.nextToken()
		p.expect(pylex.COLON)
		node.Orelse = p.parseBlock()
	}
	return node
}

func (p *Parser) parseElif() pyast.Stmt {
	start := p.pos()
	p.nextToken() // 'elif'
	test := p.parseExpr(LOWEST)
	p.expect(pylex.COLON)
	body := p.parseBlock()
	node := &pyast.If{Test: test, Body: body}
	node.Pos = start
	if p.curIs(pylex.ELIF) {
		node.Orelse = []pyast.Stmt{p.parseElif()}
	} else if p.curIs(pylex.ELSE) {
		p.nextToken()
		p.expect(pylex.COLON)
		node.Orelse = p.parseBlock()
	}
	return node
}

func (p *Parser) parseFor(async bool) pyast.Stmt {
	start := p.pos()
	p.nextToken() // 'for'
	target := p.parseExpr(LOWEST)
	p.expect(pylex.IN)
	iter := p.parseExpr(LOWEST)
	p.expect(pylex.COLON)
	body := p.parseBlock()
	node := &pyast.For{Target: target, Iter: iter, Body: body, IsAsync: async}
	node.Pos = start
	if p.curIs(pylex.ELSE) {
		p.nextToken()
		p.expect(pylex.COLON)
		node.Orelse = p.parseBlock()
	}
	return node
}

func (p *Parser) parseWhile() pyast.Stmt {
	start := p.pos()
	p.nextToken() // 'while'
	test := p.parseExpr(LOWEST)
	p.expect(pylex.COLON)
	body := p.parseBlock()
	node := &pyast.While{Test: test, Body: body}
	node.Pos = start
	if p.curIs(pylex.ELSE) {
		p.nextToken()
		p.expect(pylex.COLON)
		node.Orelse = p.parseBlock()
	}
	return node
}

func (p *Parser) parseWith(async bool) pyast.Stmt {
	start := p.pos()
	p.nextToken() // 'with'
	hasParen := p.curIs(pylex.LPAREN)
	if hasParen {
		p.nextToken()
	}
	var items []pyast.WithItem
	for {
		ctx := p.parseExpr(LOWEST)
		item := pyast.WithItem{ContextExpr: ctx}
		if p.curIs(pylex.AS) {
			p.nextToken()
			item.OptionalVar = p.parseExpr(LOWEST)
		}
		items = append(items, item)
		if p.curIs(pylex.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if hasParen && p.curIs(pylex.RPAREN) {
		p.nextToken()
	}
	p.expect(pylex.COLON)
	body := p.parseBlock()
	node := &pyast.With{Items: items, Body: body, IsAsync: async}
	node.Pos = start
	return node
}

func (p *Parser) parseTry() pyast.Stmt {
	start := p.pos()
	p.nextToken() // 'try'
	p.expect(pylex.COLON)
	body := p.parseBlock()

	node := &pyast.Try{Body: body}
	node.Pos = start

	for p.curIs(pylex.EXCEPT) {
		p.nextToken()
		isStar := false
		if p.curIs(pylex.STAR) {
			isStar = true
			p.nextToken()
		}
		var typeExpr expr.Expr
		var name string
		if !p.curIs(pylex.COLON) {
			typeExpr = p.parseExpr(LOWEST)
			if p.curIs(pylex.AS) {
				p.nextToken()
				if p.curIs(pylex.IDENT) {
					name = p.curToken.Literal
					p.nextToken()
				}
			}
		}
		p.expect(pylex.COLON)
		handlerBody := p.parseBlock()
		node.Handlers = append(node.Handlers, pyast.ExceptHandler{TypeExpr: typeExpr, Name: name, Body: handlerBody})
		node.IsStar = node.IsStar || isStar
	}
	if p.curIs(pylex.ELSE) {
		p.nextToken()
		p.expect(pylex.COLON)
		node.Orelse = p.parseBlock()
	}
	if p.curIs(pylex.FINALLY) {
		p.nextToken()
		p.expect(pylex.COLON)
		node.Finalbody = p.parseBlock()
	}
	return node
}
