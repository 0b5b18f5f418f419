// Package pyast defines the statement-level syntax tree produced by
// internal/pyparse. Expression nodes live in internal/expr and are
// reused unchanged; pyast only adds the statement shapes a module body
// is built from.
package pyast

import (
	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/pos"
)

// Node is the base interface for every pyast node.
type Node interface {
	Position() pos.Pos
}

// Stmt is any statement-level node.
type Stmt interface {
	Node
	stmtNode()
}

type base struct{ Pos pos.Pos }

func (b base) Position() pos.Pos { return b.Pos }

// File is a parsed module's top-level statement list.
type File struct {
	base
	Body     []Stmt
	FilePath string
}

// FunctionDef covers both `def` and `async def` (Async distinguishes).
type FunctionDef struct {
	base
	Name       string
	Parameters []*expr.Parameter
	Returns    expr.Expr
	Decorators []expr.Expr
	TypeParams []string
	Body       []Stmt
	Async      bool
	Docstring  string // extracted from Body[0] if it is a bare string expression
	EndLine    int
}

func (*FunctionDef) stmtNode() {}

// ClassDef covers `class Name(Bases, kw=...): body`.
type ClassDef struct {
	base
	Name         string
	Bases        []expr.Expr
	KeywordBases []*expr.Keyword
	Decorators   []expr.Expr
	TypeParams   []string
	Body         []Stmt
	Docstring    string
	EndLine      int
}

func (*ClassDef) stmtNode() {}

// Target is the left-hand side of an assignment: a Name, Attribute,
// Subscript, or a Tuple/List of further targets (for unpacking).
type Assign struct {
	base
	Targets []expr.Expr
	Value   expr.Expr
}

func (*Assign) stmtNode() {}

// AnnAssign is `target: annotation = value` (value optional).
type AnnAssign struct {
	base
	Target     expr.Expr
	Annotation expr.Expr
	Value      expr.Expr // nil when unset, e.g. `x: int`
}

func (*AnnAssign) stmtNode() {}

// AugAssign is `target OP= value`, e.g. `__all__ += [...]`.
type AugAssign struct {
	base
	Target expr.Expr
	Op     string
	Value  expr.Expr
}

func (*AugAssign) stmtNode() {}

// TypeAliasStmt is the PEP 695 `type X[T] = ...` statement.
type TypeAliasStmt struct {
	base
	Name       string
	TypeParams []string
	Value      expr.Expr
}

func (*TypeAliasStmt) stmtNode() {}

// ImportAlias is one `name as asname` entry in an import statement.
type ImportAlias struct {
	Name    string
	AsName  string // empty when no `as` clause
	Lineno  int
}

// Import is `import a.b.c as d, e.f`.
type Import struct {
	base
	Names []ImportAlias
}

func (*Import) stmtNode() {}

// ImportFrom is `from .pkg import a, b as c` / `from .pkg import *`.
type ImportFrom struct {
	base
	Module     string // dotted module name, possibly empty for pure relative imports
	Level      int    // number of leading dots
	Names      []ImportAlias
	IsWildcard bool
}

func (*ImportFrom) stmtNode() {}

// Return is `return value` (value nil for bare `return`).
type Return struct {
	base
	Value expr.Expr
}

func (*Return) stmtNode() {}

// If covers `if`/`elif`/`else`; Orelse holds the next branch's body
// (a single nested If for `elif`, or the else body).
type If struct {
	base
	Test   expr.Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*If) stmtNode() {}

// For is `for target in iter: body else: orelse`.
type For struct {
	base
	Target  expr.Expr
	Iter    expr.Expr
	Body    []Stmt
	Orelse  []Stmt
	IsAsync bool
}

func (*For) stmtNode() {}

// While is `while test: body else: orelse`.
type While struct {
	base
	Test   expr.Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*While) stmtNode() {}

// WithItem is one `ctx as name` clause of a with-statement.
type WithItem struct {
	ContextExpr expr.Expr
	OptionalVar expr.Expr // nil when no `as` clause
}

// With is `with a as b, c: body`.
type With struct {
	base
	Items   []WithItem
	Body    []Stmt
	IsAsync bool
}

func (*With) stmtNode() {}

// ExceptHandler is one `except Type as name: body` clause.
type ExceptHandler struct {
	base
	TypeExpr expr.Expr // nil for bare `except:`
	Name     string
	Body     []Stmt
}

// Try is `try: body except ...: handlers else: orelse finally: finalbody`.
type Try struct {
	base
	Body      []Stmt
	Handlers  []ExceptHandler
	Orelse    []Stmt
	Finalbody []Stmt
	IsStar    bool // except* (PEP 654)
}

func (*Try) stmtNode() {}

// Raise is `raise exc from cause` (both optional).
type Raise struct {
	base
	Exc   expr.Expr
	Cause expr.Expr
}

func (*Raise) stmtNode() {}

// Assert is `assert test, msg`.
type Assert struct {
	base
	Test expr.Expr
	Msg  expr.Expr
}

func (*Assert) stmtNode() {}

// Delete is `del targets...`.
type Delete struct {
	base
	Targets []expr.Expr
}

func (*Delete) stmtNode() {}

// Global/Nonlocal declare names as bound outside the current scope.
type Global struct {
	base
	Names []string
}

func (*Global) stmtNode() {}

type Nonlocal struct {
	base
	Names []string
}

func (*Nonlocal) stmtNode() {}

// Pass/Break/Continue are no-op control statements.
type Pass struct{ base }

func (*Pass) stmtNode() {}

type Break struct{ base }

func (*Break) stmtNode() {}

type Continue struct{ base }

func (*Continue) stmtNode() {}

// ExprStmt wraps a bare expression statement (docstrings, calls for
// side effect, `...`).
type ExprStmt struct {
	base
	Value expr.Expr
}

func (*ExprStmt) stmtNode() {}

// MatchCase is one `case pattern if guard: body` arm.
type MatchCase struct {
	PatternSrc string // raw pattern source; structural pattern matching is not modeled in depth
	Guard      expr.Expr
	Body       []Stmt
}

// Match is `match subject: case ...`.
type Match struct {
	base
	Subject expr.Expr
	Cases   []MatchCase
}

func (*Match) stmtNode() {}
