package pyparse

import (
	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/pyast"
	"github.com/mkdocstrings/griffe-sub003/internal/pylex"
)

func (p *Parser) parseSimpleStatement() pyast.Stmt {
	switch p.curToken.Type {
	case pylex.RETURN:
		return p.parseReturn()
	case pylex.IMPORT:
		return p.parseImport()
	case pylex.FROM:
		return p.parseImportFrom()
	case pylex.PASS:
		n := &pyast.Pass{}
		n.Pos = p.pos()
		p.nextToken()
		return n
	case pylex.BREAK:
		n := &pyast.Break{}
		n.Pos = p.pos()
		p.nextToken()
		return n
	case pylex.CONTINUE:
		n := &pyast.Continue{}
		n.Pos = p.pos()
		p.nextToken()
		return n
	case pylex.RAISE:
		return p.parseRaise()
	case pylex.ASSERT:
		return p.parseAssert()
	case pylex.DEL:
		return p.parseDelete()
	case pylex.GLOBAL:
		return p.parseGlobal()
	case pylex.NONLOCAL:
		return p.parseNonlocal()
	case pylex.TYPE:
		if p.peekIs(pylex.IDENT) {
			return p.parseTypeAliasStmt()
		}
		return p.parseExprOrAssign()
	default:
		// `type` is lexed as an identifier; `type Name ...` at the start
		// of a statement is a type alias statement.
		if p.curIs(pylex.IDENT) && p.curToken.Literal == "type" && p.peekIs(pylex.IDENT) {
			return p.parseTypeAliasStmt()
		}
		return p.parseExprOrAssign()
	}
}

func (p *Parser) parseReturn() pyast.Stmt {
	start := p.pos()
	p.nextToken()
	n := &pyast.Return{}
	n.Pos = start
	if !p.curIs(pylex.NEWLINE) && !p.curIs(pylex.SEMICOLON) && !p.curIs(pylex.EOF) {
		n.Value = p.parseExpr(LOWEST)
	}
	return n
}

func (p *Parser) parseRaise() pyast.Stmt {
	start := p.pos()
	p.nextToken()
	n := &pyast.Raise{}
	n.Pos = start
	if !p.curIs(pylex.NEWLINE) && !p.curIs(pylex.SEMICOLON) && !p.curIs(pylex.EOF) {
		n.Exc = p.parseExpr(LOWEST)
		if p.curIs(pylex.FROM) {
			p.nextToken()
			n.Cause = p.parseExpr(LOWEST)
		}
	}
	return n
}

func (p *Parser) parseAssert() pyast.Stmt {
	start := p.pos()
	p.nextToken()
	n := &pyast.Assert{Test: p.parseExpr(LOWEST)}
	n.Pos = start
	if p.curIs(pylex.COMMA) {
		p.nextToken()
		n.Msg = p.parseExpr(LOWEST)
	}
	return n
}

func (p *Parser) parseDelete() pyast.Stmt {
	start := p.pos()
	p.nextToken()
	n := &pyast.Delete{}
	n.Pos = start
	n.Targets = append(n.Targets, p.parseExpr(LOWEST))
	for p.curIs(pylex.COMMA) {
		p.nextToken()
		n.Targets = append(n.Targets, p.parseExpr(LOWEST))
	}
	return n
}

func (p *Parser) parseGlobal() pyast.Stmt {
	start := p.pos()
	p.nextToken()
	n := &pyast.Global{}
	n.Pos = start
	n.Names = p.parseNameList()
	return n
}

func (p *Parser) parseNonlocal() pyast.Stmt {
	start := p.pos()
	p.nextToken()
	n := &pyast.Nonlocal{}
	n.Pos = start
	n.Names = p.parseNameList()
	return n
}

func (p *Parser) parseNameList() []string {
	var names []string
	for p.curIs(pylex.IDENT) {
		names = append(names, p.curToken.Literal)
		p.nextToken()
		if p.curIs(pylex.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	return names
}

func (p *Parser) parseTypeAliasStmt() pyast.Stmt {
	start := p.pos()
	p.nextToken() // 'type'
	name := p.curToken.Literal
	p.nextToken()
	typeParams := p.parseTypeParams()
	p.expect(pylex.ASSIGN)
	value := p.parseExpr(LOWEST)
	n := &pyast.TypeAliasStmt{Name: name, TypeParams: typeParams, Value: value}
	n.Pos = start
	return n
}

func (p *Parser) parseImport() pyast.Stmt {
	start := p.pos()
	p.nextToken() // 'import'
	n := &pyast.Import{}
	n.Pos = start
	for {
		name := p.parseDottedName()
		alias := pyast.ImportAlias{Name: name, Lineno: start.Line}
		if p.curIs(pylex.AS) {
			p.nextToken()
			alias.AsName = p.curToken.Literal
			p.nextToken()
		}
		n.Names = append(n.Names, alias)
		if p.curIs(pylex.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	return n
}

func (p *Parser) parseDottedName() string {
	name := p.curToken.Literal
	p.nextToken()
	for p.curIs(pylex.DOT) {
		p.nextToken()
		name += "." + p.curToken.Literal
		p.nextToken()
	}
	return name
}

func (p *Parser) parseImportFrom() pyast.Stmt {
	start := p.pos()
	p.nextToken() // 'from'

	level := 0
	for p.curIs(pylex.DOT) || p.curIs(pylex.ELLIPSIS) {
		if p.curIs(pylex.ELLIPSIS) {
			level += 3
		} else {
			level++
		}
		p.nextToken()
	}

	module := ""
	if p.curIs(pylex.IDENT) {
		module = p.parseDottedName()
	}

	p.expect(pylex.IMPORT)

	n := &pyast.ImportFrom{Module: module, Level: level}
	n.Pos = start

	if p.curIs(pylex.STAR) {
		n.IsWildcard = true
		p.nextToken()
		return n
	}

	hasParen := p.curIs(pylex.LPAREN)
	if hasParen {
		p.nextToken()
	}
	for {
		if p.curIs(pylex.RPAREN) || p.curIs(pylex.NEWLINE) || p.curIs(pylex.EOF) {
			break
		}
		name := p.curToken.Literal
		p.nextToken()
		alias := pyast.ImportAlias{Name: name, Lineno: start.Line}
		if p.curIs(pylex.AS) {
			p.nextToken()
			alias.AsName = p.curToken.Literal
			p.nextToken()
		}
		n.Names = append(n.Names, alias)
		if p.curIs(pylex.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if hasParen && p.curIs(pylex.RPAREN) {
		p.nextToken()
	}
	return n
}

// parseExprOrAssign parses a bare expression statement, an assignment
// (possibly chained: `a = b = value`), an annotated assignment, or an
// augmented assignment.
func (p *Parser) parseExprOrAssign() pyast.Stmt {
	start := p.pos()
	first := p.parseExpr(LOWEST)

	if p.curIs(pylex.COLON) {
		p.nextToken()
		annotation := p.parseExpr(LOWEST)
		n := &pyast.AnnAssign{Target: first, Annotation: annotation}
		n.Pos = start
		if p.curIs(pylex.ASSIGN) {
			p.nextToken()
			n.Value = p.parseExpr(LOWEST)
		}
		return n
	}

	if op, ok := augOp(p.curToken.Type); ok {
		p.nextToken()
		value := p.parseExpr(LOWEST)
		n := &pyast.AugAssign{Target: first, Op: op, Value: value}
		n.Pos = start
		return n
	}

	if p.curIs(pylex.ASSIGN) {
		targets := []expr.Expr{first}
		var value expr.Expr
		for p.curIs(pylex.ASSIGN) {
			p.nextToken()
			value = p.parseExpr(LOWEST)
			if p.curIs(pylex.ASSIGN) {
				targets = append(targets, value)
			}
		}
		n := &pyast.Assign{Targets: targets, Value: value}
		n.Pos = start
		return n
	}

	n := &pyast.ExprStmt{Value: first}
	n.Pos = start
	return n
}

func augOp(tt pylex.TokenType) (string, bool) {
	switch tt {
	case pylex.PLUSEQ:
		return "+=", true
	case pylex.MINUSEQ:
		return "-=", true
	case pylex.STAREQ:
		return "*=", true
	case pylex.SLASHEQ:
		return "/=", true
	case pylex.DOUBLESLASHEQ:
		return "//=", true
	case pylex.PERCENTEQ:
		return "%=", true
	case pylex.DOUBLESTAREQ:
		return "**=", true
	case pylex.AMPEQ:
		return "&=", true
	case pylex.PIPEEQ:
		return "|=", true
	case pylex.CARETEQ:
		return "^=", true
	case pylex.LSHIFTEQ:
		return "<<=", true
	case pylex.RSHIFTEQ:
		return ">>=", true
	case pylex.ATEQ:
		return "@=", true
	}
	return "", false
}
