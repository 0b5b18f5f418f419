// Package expr implements the expression graph used to represent
// Python annotations, defaults, decorators, and base classes as
// resolvable name graphs. Expressions are sum-typed
// trees mirroring the Python expression grammar; every leaf Name keeps
// a weak back-reference to the scope it was parsed in so its canonical
// path can be computed lazily, the same way internal/core/elaborate
// split lowers surface syntax into a small structural representation
// without evaluating it.
package expr

import "github.com/mkdocstrings/griffe-sub003/internal/pos"

// Scope is the capability an expression's Name leaves need from the
// object tree: look a local identifier up through enclosing scopes and
// report the scope's own dotted path. Defined here (the lower-level
// package) and implemented by internal/objects.Object, so expr never
// imports objects and no import cycle exists.
type Scope interface {
	Resolve(name string) (Scope, error)
	Path() string
}

// Kind tags every expression node variant.
type Kind string

const (
	KindName         Kind = "ExprName"
	KindAttribute    Kind = "ExprAttribute"
	KindSubscript    Kind = "ExprSubscript"
	KindTuple        Kind = "ExprTuple"
	KindList         Kind = "ExprList"
	KindDict         Kind = "ExprDict"
	KindSet          Kind = "ExprSet"
	KindCall         Kind = "ExprCall"
	KindBinOp        Kind = "ExprBinOp"
	KindUnaryOp      Kind = "ExprUnaryOp"
	KindBoolOp       Kind = "ExprBoolOp"
	KindCompare      Kind = "ExprCompare"
	KindConstant     Kind = "ExprConstant"
	KindLambda       Kind = "ExprLambda"
	KindSlice        Kind = "ExprSlice"
	KindStarred      Kind = "ExprStarred"
	KindGenerator    Kind = "ExprGenerator"
	KindIfExp        Kind = "ExprIfExp"
	KindNamedExpr    Kind = "ExprNamedExpr"
	KindString       Kind = "ExprString"
	KindVarPositional Kind = "ExprVarPositional"
	KindVarKeyword   Kind = "ExprVarKeyword"
	KindParameter    Kind = "ExprParameter"
	KindKeyword      Kind = "ExprKeyword"
)

// Expr is any node in the expression graph.
type Expr interface {
	Kind() Kind
	Position() pos.Pos
	// CanonicalPath renders a best-effort dotted path for the
	// expression: exact for a Name/Attribute chain rooted at a
	// resolvable name, a textual rendering otherwise.
	CanonicalPath() string
}

type Base struct {
	Pos pos.Pos
}

func (b Base) Position() pos.Pos { return b.Pos }

// Name is a bare identifier. ScopeRef is the (weak) scope the name was
// parsed in; it is nil for names synthesized outside any parse (tests,
// extensions).
type Name struct {
	Base
	Value    string
	ScopeRef Scope
}

func (n *Name) Kind() Kind { return KindName }
func (n *Name) CanonicalPath() string {
	if n.ScopeRef == nil {
		return n.Value
	}
	target, err := n.ScopeRef.Resolve(n.Value)
	if err != nil || target == nil {
		return n.Value
	}
	return target.Path()
}

// Attribute is `Parent.Name`.
type Attribute struct {
	Base
	Parent Expr
	Name   string
}

func (a *Attribute) Kind() Kind { return KindAttribute }
func (a *Attribute) CanonicalPath() string {
	return a.Parent.CanonicalPath() + "." + a.Name
}

// Subscript is `Value[Slice]`.
type Subscript struct {
	Base
	Value Expr
	Slice Expr
}

func (s *Subscript) Kind() Kind           { return KindSubscript }
func (s *Subscript) CanonicalPath() string { return Render(s) }

// Tuple is `(Elts...)`; when it is a subscript slice its rendering
// joins elements with ", ".
type Tuple struct {
	Base
	Elts []Expr
}

func (t *Tuple) Kind() Kind           { return KindTuple }
func (t *Tuple) CanonicalPath() string { return Render(t) }

type List struct {
	Base
	Elts []Expr
}

func (l *List) Kind() Kind           { return KindList }
func (l *List) CanonicalPath() string { return Render(l) }

type Set struct {
	Base
	Elts []Expr
}

func (s *Set) Kind() Kind           { return KindSet }
func (s *Set) CanonicalPath() string { return Render(s) }

type DictEntry struct {
	Key   Expr // nil for a `**expand` entry
	Value Expr
}

type Dict struct {
	Base
	Entries []DictEntry
}

func (d *Dict) Kind() Kind           { return KindDict }
func (d *Dict) CanonicalPath() string { return Render(d) }

// Keyword is a `name=value` call argument.
type Keyword struct {
	Base
	Name  string // empty for **kwargs expansion
	Value Expr
}

func (k *Keyword) Kind() Kind           { return KindKeyword }
func (k *Keyword) CanonicalPath() string { return Render(k) }

type Call struct {
	Base
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

func (c *Call) Kind() Kind           { return KindCall }
func (c *Call) CanonicalPath() string { return Render(c) }

type BinOp struct {
	Base
	Left  Expr
	Op    string
	Right Expr
}

func (b *BinOp) Kind() Kind           { return KindBinOp }
func (b *BinOp) CanonicalPath() string { return Render(b) }

type UnaryOp struct {
	Base
	Op      string
	Operand Expr
}

func (u *UnaryOp) Kind() Kind           { return KindUnaryOp }
func (u *UnaryOp) CanonicalPath() string { return Render(u) }

type BoolOp struct {
	Base
	Op     string // "and" | "or"
	Values []Expr
}

func (b *BoolOp) Kind() Kind           { return KindBoolOp }
func (b *BoolOp) CanonicalPath() string { return Render(b) }

type Compare struct {
	Base
	Left        Expr
	Ops         []string
	Comparators []Expr
}

func (c *Compare) Kind() Kind           { return KindCompare }
func (c *Compare) CanonicalPath() string { return Render(c) }

// ConstKind distinguishes constant literal payloads.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstNone
	ConstEllipsis
	ConstComplex
)

type Constant struct {
	Base
	ConstKind ConstKind
	Value     any
	Raw       string // original source text, for faithful rendering
}

func (c *Constant) Kind() Kind           { return KindConstant }
func (c *Constant) CanonicalPath() string { return c.Raw }

// String is a quoted string literal. Annotation strings ("forward
// references") are kept opaque until first access, at which point a
// consumer re-parses Value and the resulting expression replaces this
// node in the owning field.
type String struct {
	Base
	Value  string
	Quoted string // the original, quote-included text
}

func (s *String) Kind() Kind           { return KindString }
func (s *String) CanonicalPath() string { return s.Quoted }

type Lambda struct {
	Base
	Parameters []*Parameter
	Body       Expr
}

func (l *Lambda) Kind() Kind           { return KindLambda }
func (l *Lambda) CanonicalPath() string { return Render(l) }

type Slice struct {
	Base
	Lower Expr
	Upper Expr
	Step  Expr
}

func (s *Slice) Kind() Kind           { return KindSlice }
func (s *Slice) CanonicalPath() string { return Render(s) }

// Starred is `*value` (unpacking in a call/tuple/assignment target).
type Starred struct {
	Base
	Value Expr
}

func (s *Starred) Kind() Kind           { return KindStarred }
func (s *Starred) CanonicalPath() string { return Render(s) }

// GeneratorKind distinguishes the four comprehension forms, which all
// share the same (element, generators) shape.
type GeneratorKind int

const (
	GenGenerator GeneratorKind = iota
	GenListComp
	GenSetComp
	GenDictComp
)

type Comprehension struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
	IsAsync bool
}

type Generator struct {
	Base
	GenKind    GeneratorKind
	Element    Expr
	KeyElement Expr // only for GenDictComp
	Generators []Comprehension
}

func (g *Generator) Kind() Kind           { return KindGenerator }
func (g *Generator) CanonicalPath() string { return Render(g) }

type IfExp struct {
	Base
	Test   Expr
	Body   Expr
	OrElse Expr
}

func (i *IfExp) Kind() Kind           { return KindIfExp }
func (i *IfExp) CanonicalPath() string { return Render(i) }

// NamedExpr is the walrus operator `target := value`.
type NamedExpr struct {
	Base
	Target Expr
	Value  Expr
}

func (n *NamedExpr) Kind() Kind           { return KindNamedExpr }
func (n *NamedExpr) CanonicalPath() string { return Render(n) }

// VarPositional/VarKeyword render a parameter's `*args`/`**kwargs`
// shape when it appears inside a Call as `*expr`/`**expr`.
type VarPositional struct {
	Base
	Value Expr
}

func (v *VarPositional) Kind() Kind           { return KindVarPositional }
func (v *VarPositional) CanonicalPath() string { return Render(v) }

type VarKeyword struct {
	Base
	Value Expr
}

func (v *VarKeyword) Kind() Kind           { return KindVarKeyword }
func (v *VarKeyword) CanonicalPath() string { return Render(v) }

// ParameterKind mirrors Python's parameter-kind enumeration.
type ParameterKind string

const (
	PositionalOnly       ParameterKind = "positional-only"
	PositionalOrKeyword  ParameterKind = "positional-or-keyword"
	VarPositionalKind    ParameterKind = "var-positional"
	KeywordOnly          ParameterKind = "keyword-only"
	VarKeywordKind       ParameterKind = "var-keyword"
)

// Parameter is a function parameter. It is kept in the expression
// package (rather than objects) because Lambda bodies need it too and
// objects.Function embeds a slice of these directly.
type Parameter struct {
	Base
	Name       string
	ParamKind  ParameterKind
	Annotation Expr
	Default    Expr
	Docstring  string // set later by the docstring parser, if documented
}

func (p *Parameter) Kind() Kind           { return KindParameter }
func (p *Parameter) CanonicalPath() string { return Render(p) }

// NewName, NewAttribute, etc. are thin constructors used by the parser
// so call sites read as `expr.NewName(...)` instead of a raw struct
// literal.

func NewName(value string, p pos.Pos) *Name { return &Name{Base: Base{p}, Value: value} }

func NewAttribute(parent Expr, name string, p pos.Pos) *Attribute {
	return &Attribute{Base: Base{p}, Parent: parent, Name: name}
}

func NewConstant(kind ConstKind, value any, raw string, p pos.Pos) *Constant {
	return &Constant{Base: Base{p}, ConstKind: kind, Value: value, Raw: raw}
}

func NewString(value, quoted string, p pos.Pos) *String {
	return &String{Base: Base{p}, Value: value, Quoted: quoted}
}
