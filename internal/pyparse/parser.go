// Package pyparse turns a pylex token stream into a pyast.File, using
// recursive descent for statements and a Pratt parser for expressions.
// It models enough of Python's grammar to recover API surface (defs,
// classes, assignments, imports, control flow for narrowing) without
// attempting to execute or fully type the language.
package pyparse

import (
	"fmt"

	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/pos"
	"github.com/mkdocstrings/griffe-sub003/internal/pyast"
	"github.com/mkdocstrings/griffe-sub003/internal/pylex"
)

// SyntaxError reports a recoverable parse failure.
type SyntaxError struct {
	Message string
	Pos     pos.Pos
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parser holds the token cursor and accumulated recoverable errors.
type Parser struct {
	l         *pylex.Lexer
	file      string
	curToken  pylex.Token
	peekToken pylex.Token
	errors    []*SyntaxError

	prefixFns map[pylex.TokenType]prefixParseFn
	infixFns  map[pylex.TokenType]infixParseFn
}

type (
	prefixParseFn func() expr.Expr
	infixParseFn  func(expr.Expr) expr.Expr
)

// New creates a Parser over already-lexed source.
func New(l *pylex.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file}
	p.registerExprParsers()
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns all syntax errors recovered from during parsing.
func (p *Parser) Errors() []*SyntaxError { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(tt pylex.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt pylex.TokenType) bool { return p.peekToken.Type == tt }

func (p *Parser) pos() pos.Pos {
	return pos.Pos{Line: p.curToken.Line, Column: p.curToken.Column, File: p.file}
}

func (p *Parser) expect(tt pylex.TokenType) bool {
	if p.curIs(tt) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s %q", tt, p.curToken.Type, p.curToken.Literal)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: p.pos()})
}

// skipToNextLogicalLine recovers from a syntax error by discarding
// tokens until the next NEWLINE/DEDENT/EOF at the current nesting
// level, matching the "skip the offending statement" recovery policy.
func (p *Parser) skipToNextLogicalLine() {
	depth := 0
	for {
		switch p.curToken.Type {
		case pylex.EOF:
			return
		case pylex.INDENT:
			depth++
		case pylex.DEDENT:
			if depth == 0 {
				return
			}
			depth--
		case pylex.NEWLINE:
			if depth == 0 {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
}

// ParseFile parses a complete module body.
func ParseFile(source, filePath string) (*pyast.File, []*SyntaxError) {
	l := pylex.New(source, filePath)
	p := New(l, filePath)

	f := &pyast.File{FilePath: filePath}
	f.Pos = pos.Pos{File: filePath, Line: 1, Column: 1}
	f.Body = p.parseStatements(func() bool { return p.curIs(pylex.EOF) })
	return f, p.errors
}

// parseStatements parses statements until stop() holds, skipping blank
// NEWLINEs between them.
func (p *Parser) parseStatements(stop func() bool) []pyast.Stmt {
	var stmts []pyast.Stmt
	for !stop() {
		if p.curIs(pylex.NEWLINE) {
			p.nextToken()
			continue
		}
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// parseBlock parses an indented suite: NEWLINE INDENT stmt+ DEDENT, or
// a simple-statement list on the same line after ':'.
func (p *Parser) parseBlock() []pyast.Stmt {
	if p.curIs(pylex.NEWLINE) {
		p.nextToken()
		if !p.expect(pylex.INDENT) {
			return nil
		}
		body := p.parseStatements(func() bool { return p.curIs(pylex.DEDENT) || p.curIs(pylex.EOF) })
		if p.curIs(pylex.DEDENT) {
			p.nextToken()
		}
		return body
	}
	// Simple statements on the header line: `if x: pass`
	return p.parseSimpleStatementLine()
}

func (p *Parser) parseSimpleStatementLine() []pyast.Stmt {
	var stmts []pyast.Stmt
	for {
		s := p.parseSimpleStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		if p.curIs(pylex.SEMICOLON) {
			p.nextToken()
			continue
		}
		break
	}
	if p.curIs(pylex.NEWLINE) {
		p.nextToken()
	}
	return stmts
}

func (p *Parser) parseStatement() pyast.Stmt {
	switch p.curToken.Type {
	case pylex.DEF:
		return p.parseFunctionDef(false, nil)
	case pylex.ASYNC:
		p.nextToken()
		if p.curIs(pylex.DEF) {
			return p.parseFunctionDef(true, nil)
		}
		if p.curIs(pylex.FOR) {
			return p.parseFor(true)
		}
		if p.curIs(pylex.WITH) {
			return p.parseWith(true)
		}
		p.errorf("expected def/for/with after async")
		p.skipToNextLogicalLine()
		return nil
	case pylex.CLASS:
		return p.parseClassDef(nil)
	case pylex.AT:
		return p.parseDecorated()
	case pylex.IF:
		return p.parseIf()
	case pylex.FOR:
		return p.parseFor(false)
	case pylex.WHILE:
		return p.parseWhile()
	case pylex.WITH:
		return p.parseWith(false)
	case pylex.TRY:
		return p.parseTry()
	default:
		stmts := p.parseSimpleStatementLine()
		if len(stmts) == 0 {
			return nil
		}
		if len(stmts) == 1 {
			return stmts[0]
		}
		// Multiple simple statements sharing a line; visitor flattens them.
		return &pyast.ExprStmt{Value: nil}
	}
}

func (p *Parser) parseDecorated() pyast.Stmt {
	var decorators []expr.Expr
	for p.curIs(pylex.AT) {
		p.nextToken()
		decorators = append(decorators, p.parseExpr(LOWEST))
		if p.curIs(pylex.NEWLINE) {
			p.nextToken()
		}
	}
	switch p.curToken.Type {
	case pylex.DEF:
		return p.parseFunctionDef(false, decorators)
	case pylex.ASYNC:
		p.nextToken()
		p.expect(pylex.DEF)
		return p.parseFunctionDef(true, decorators)
	case pylex.CLASS:
		return p.parseClassDef(decorators)
	default:
		p.errorf("expected def/class after decorator")
		p.skipToNextLogicalLine()
		return nil
	}
}
