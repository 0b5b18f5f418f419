// Package visitor implements the Source Visitor: it
// walks a parsed pyast.File and populates an objects.Module tree,
// maintaining a current-parent stack the way
// internal/elaborate lowers internal/ast into internal/core by walking
// a statement list with an explicit enclosing-scope argument threaded
// through each recursive call, rather than a mutable visitor-wide
// stack field.
package visitor

import (
	"strings"

	"github.com/mkdocstrings/griffe-sub003/internal/errors"
	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/lines"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
	"github.com/mkdocstrings/griffe-sub003/internal/pos"
	"github.com/mkdocstrings/griffe-sub003/internal/pyast"
)

// TargetVersion is the (major, minor) Python version statically
// evaluated sys.version_info guards are checked against.
type TargetVersion struct {
	Major, Minor int
}

// Visitor walks one module's syntax tree into its object tree.
type Visitor struct {
	Lines   *lines.Collection
	Target  TargetVersion
	Reports []*errors.Report
}

// New creates a Visitor targeting the given Python version for
// sys.version_info guard evaluation.
func New(lc *lines.Collection, target TargetVersion) *Visitor {
	return &Visitor{Lines: lc, Target: target}
}

// VisitModule populates mod's members from file's top-level body.
func (v *Visitor) VisitModule(file *pyast.File, mod *objects.Module) {
	if summary, lineno := leadingDocstring(file.Body); summary != "" {
		mod.SetDocstring(summary, lineno)
	}
	v.visitBody(file.Body, mod, nil, "", true)
}

// report appends a Report built from code/message/pos to v.Reports.
func (v *Visitor) report(code, message string, p pos.Pos) {
	span := &pos.Span{Start: p, End: p}
	v.Reports = append(v.Reports, errors.New(code, message, span))
}

// visitBody walks one statement list. parent is the object new members
// are attached to (a Module, Class, or Function). enclosingClass and
// selfName are non-empty only while walking a method body, enabling
// `self.x = ...` to be modeled as an instance attribute on the class
// rather than a local variable of the function.
func (v *Visitor) visitBody(body []pyast.Stmt, parent objects.Object, enclosingClass *objects.Class, selfName string, runtime bool) {
	for _, stmt := range body {
		v.visitStmt(stmt, parent, enclosingClass, selfName, runtime, false)
	}
}

// visitStmt dispatches one statement. preferExisting, when true, skips
// creating a member that already exists in parent.
func (v *Visitor) visitStmt(stmt pyast.Stmt, parent objects.Object, enclosingClass *objects.Class, selfName string, runtime bool, preferExisting bool) {
	switch s := stmt.(type) {
	case *pyast.FunctionDef:
		v.visitFunctionDef(s, parent, runtime, preferExisting)
	case *pyast.ClassDef:
		v.visitClassDef(s, parent, runtime, preferExisting)
	case *pyast.Assign:
		v.visitAssign(s, parent, enclosingClass, selfName, runtime)
	case *pyast.AnnAssign:
		v.visitAnnAssign(s, parent, enclosingClass, selfName, runtime)
	case *pyast.AugAssign:
		v.visitAugAssign(s, parent)
	case *pyast.TypeAliasStmt:
		v.visitTypeAlias(s, parent, runtime, preferExisting)
	case *pyast.Import:
		v.visitImport(s, parent, preferExisting)
	case *pyast.ImportFrom:
		v.visitImportFrom(s, parent, preferExisting)
	case *pyast.If:
		v.visitIf(s, parent, enclosingClass, selfName, runtime)
	case *pyast.Try:
		v.visitTry(s, parent, enclosingClass, selfName, runtime)
	case *pyast.For:
		v.visitBody(s.Body, parent, enclosingClass, selfName, runtime)
		v.visitBody(s.Orelse, parent, enclosingClass, selfName, runtime)
	case *pyast.While:
		v.visitBody(s.Body, parent, enclosingClass, selfName, runtime)
		v.visitBody(s.Orelse, parent, enclosingClass, selfName, runtime)
	case *pyast.With:
		v.visitBody(s.Body, parent, enclosingClass, selfName, runtime)
	case *pyast.Match:
		for _, c := range s.Cases {
			v.visitBody(c.Body, parent, enclosingClass, selfName, runtime)
		}
	default:
		// Return/Raise/Assert/Delete/Global/Nonlocal/Pass/Break/Continue/
		// ExprStmt contribute nothing to the object model.
	}
}

func (v *Visitor) visitFunctionDef(s *pyast.FunctionDef, parent objects.Object, runtime bool, preferExisting bool) {
	if preferExisting {
		if _, ok := parent.Members().Get(s.Name); ok {
			return
		}
	}
	fn := objects.NewFunction(s.Name, parent)
	fn.SetPosition(s.Pos.Line, s.EndLine)
	fn.SetRuntime(runtime)
	fn.Parameters = s.Parameters
	fn.Returns = s.Returns
	fn.Decorators = s.Decorators
	fn.TypeParameters = s.TypeParams
	if s.Docstring != "" {
		fn.SetDocstring(s.Docstring, s.Pos.Line+1)
	}
	if s.Async {
		fn.AddLabel("async")
	}
	isOverload := false
	for _, d := range s.Decorators {
		label, overload := decoratorLabel(d)
		if label != "" {
			fn.AddLabel(label)
		}
		if overload {
			isOverload = true
		}
	}

	bindScope(parent, fn.Decorators...)
	for _, p := range fn.Parameters {
		bindScope(parent, p.Annotation, p.Default)
	}
	bindScope(parent, fn.Returns)

	objects.AddMember(parent, fn)

	if isOverload {
		registerOverload(parent, s.Name, fn)
	}

	// Determine the self/cls binding for method bodies: only functions
	// defined directly in a class body get self-attribute modeling.
	var nestedClass *objects.Class
	var nestedSelf string
	if cls, ok := parent.(*objects.Class); ok {
		isStatic := fn.HasLabel("staticmethod")
		if !isStatic && len(fn.Parameters) > 0 {
			nestedClass = cls
			nestedSelf = fn.Parameters[0].Name
		}
	}
	v.visitBody(s.Body, fn, nestedClass, nestedSelf, runtime)
}

func (v *Visitor) visitClassDef(s *pyast.ClassDef, parent objects.Object, runtime bool, preferExisting bool) {
	if preferExisting {
		if _, ok := parent.Members().Get(s.Name); ok {
			return
		}
	}
	cls := objects.NewClass(s.Name, parent)
	cls.SetPosition(s.Pos.Line, s.EndLine)
	cls.SetRuntime(runtime)
	cls.Bases = s.Bases
	cls.KeywordBases = s.KeywordBases
	cls.Decorators = s.Decorators
	cls.TypeParameters = s.TypeParams
	if s.Docstring != "" {
		cls.SetDocstring(s.Docstring, s.Pos.Line+1)
	}
	for _, d := range s.Decorators {
		if isDataclassDecorator(d) {
			cls.AddLabel("dataclass")
		}
	}
	bindScope(parent, cls.Bases...)
	for _, kw := range cls.KeywordBases {
		bindScope(parent, kw)
	}
	bindScope(parent, cls.Decorators...)

	objects.AddMember(parent, cls)
	v.visitBody(s.Body, cls, nil, "", runtime)
}

func (v *Visitor) visitAssign(s *pyast.Assign, parent objects.Object, enclosingClass *objects.Class, selfName string, runtime bool) {
	if isDunderAllTarget(s.Targets) {
		mod, ok := parent.(*objects.Module)
		if ok {
			mod.Exports = exportsFromValue(s.Value)
			bindScope(parent, s.Value)
		}
		return
	}
	for _, t := range s.Targets {
		v.modelAssignTarget(t, s.Value, nil, parent, enclosingClass, selfName, s.Pos.Line, runtime)
	}
}

func (v *Visitor) visitAnnAssign(s *pyast.AnnAssign, parent objects.Object, enclosingClass *objects.Class, selfName string, runtime bool) {
	v.modelAssignTarget(s.Target, s.Value, s.Annotation, parent, enclosingClass, selfName, s.Pos.Line, runtime)
}

func (v *Visitor) visitAugAssign(s *pyast.AugAssign, parent objects.Object) {
	name, ok := s.Target.(*expr.Name)
	if !ok || name.Value != "__all__" || s.Op != "+=" {
		return
	}
	mod, ok := parent.(*objects.Module)
	if !ok {
		return
	}
	mod.Exports = append(mod.Exports, exportsFromValue(s.Value)...)
	bindScope(parent, s.Value)
}

// modelAssignTarget attaches a simple-name or self-attribute target as
// an Attribute object, recursing through tuple/list unpacking targets.
func (v *Visitor) modelAssignTarget(target, value, annotation expr.Expr, parent objects.Object, enclosingClass *objects.Class, selfName string, lineno int, runtime bool) {
	switch t := target.(type) {
	case *expr.Name:
		switch parent.(type) {
		case *objects.Module, *objects.Class:
			attr := existingOrNewAttribute(parent, t.Value)
			attr.SetPosition(lineno, lineno)
			attr.SetRuntime(runtime)
			attr.Value = value
			if annotation != nil {
				attr.Annotation = annotation
			}
			bindScope(parent, value, annotation)
		}
	case *expr.Attribute:
		if enclosingClass == nil || selfName == "" {
			return
		}
		if root, ok := t.Parent.(*expr.Name); !ok || root.Value != selfName {
			return
		}
		attr := existingOrNewAttribute(enclosingClass, t.Name)
		attr.SetPosition(lineno, lineno)
		attr.SetRuntime(runtime)
		attr.Value = value
		if annotation != nil {
			attr.Annotation = annotation
		}
		bindScope(enclosingClass, value, annotation)
	case *expr.Tuple:
		for _, elt := range t.Elts {
			v.modelAssignTarget(elt, nil, nil, parent, enclosingClass, selfName, lineno, runtime)
		}
	case *expr.List:
		for _, elt := range t.Elts {
			v.modelAssignTarget(elt, nil, nil, parent, enclosingClass, selfName, lineno, runtime)
		}
	}
}

func existingOrNewAttribute(parent objects.Object, name string) *objects.Attribute {
	if existing, ok := parent.Members().Get(name); ok {
		if attr, ok := existing.(*objects.Attribute); ok {
			return attr
		}
	}
	attr := objects.NewAttribute(name, parent)
	objects.AddMember(parent, attr)
	return attr
}

func (v *Visitor) visitTypeAlias(s *pyast.TypeAliasStmt, parent objects.Object, runtime bool, preferExisting bool) {
	if preferExisting {
		if _, ok := parent.Members().Get(s.Name); ok {
			return
		}
	}
	ta := objects.NewTypeAlias(s.Name, parent)
	ta.SetPosition(s.Pos.Line, s.Pos.Line)
	ta.SetRuntime(runtime)
	ta.Value = s.Value
	ta.TypeParameters = s.TypeParams
	bindScope(parent, ta.Value)
	objects.AddMember(parent, ta)
}

func (v *Visitor) visitImport(s *pyast.Import, parent objects.Object, preferExisting bool) {
	for _, name := range s.Names {
		bound := name.AsName
		target := name.Name
		if bound == "" {
			// `import a.b.c` binds the top-level name `a` in scope.
			bound = strings.SplitN(name.Name, ".", 2)[0]
			target = bound
		}
		if preferExisting {
			if _, ok := parent.Members().Get(bound); ok {
				continue
			}
		}
		alias := objects.NewAlias(bound, parent, target)
		if name.AsName != "" {
			alias.SetAliasLineno(name.Lineno)
		}
		objects.AddMember(parent, alias)
		recordImport(parent, bound, target)
	}
}

func (v *Visitor) visitImportFrom(s *pyast.ImportFrom, parent objects.Object, preferExisting bool) {
	modPath := relativeModulePath(parent, s.Level, s.Module)
	if s.IsWildcard {
		alias := objects.NewAlias("*", parent, modPath+".*")
		objects.AddMember(parent, alias)
		return
	}
	for _, name := range s.Names {
		bound := name.AsName
		if bound == "" {
			bound = name.Name
		}
		if preferExisting {
			if _, ok := parent.Members().Get(bound); ok {
				continue
			}
		}
		targetPath := name.Name
		if modPath != "" {
			targetPath = modPath + "." + name.Name
		}
		alias := objects.NewAlias(bound, parent, targetPath)
		if name.AsName != "" {
			alias.SetAliasLineno(name.Lineno)
		}
		objects.AddMember(parent, alias)
		recordImport(parent, bound, targetPath)
	}
}

// relativeModulePath resolves a `from .pkg import x` level/module pair
// against the enclosing module's own dotted path.
func relativeModulePath(parent objects.Object, level int, module string) string {
	if level == 0 {
		return module
	}
	mod := objects.ModuleOf(parent)
	if mod == nil {
		return module
	}
	parts := strings.Split(mod.CanonicalPath(), ".")
	// One leading dot means "this package": the module itself for a
	// package, its parent for a plain module. Each further dot climbs
	// one more ancestor.
	climb := level - 1
	if !mod.IsPackage() {
		climb++
	}
	if climb > len(parts) {
		climb = len(parts)
	}
	base := strings.Join(parts[:len(parts)-climb], ".")
	if module == "" {
		return base
	}
	if base == "" {
		return module
	}
	return base + "." + module
}

func (v *Visitor) visitIf(s *pyast.If, parent objects.Object, enclosingClass *objects.Class, selfName string, runtime bool) {
	if isTypeChecking(s.Test) {
		v.visitBody(s.Body, parent, enclosingClass, selfName, false)
		v.visitBody(s.Orelse, parent, enclosingClass, selfName, runtime)
		return
	}
	if matched, ok := evalVersionGuard(s.Test, v.Target); ok {
		if matched {
			v.visitBody(s.Body, parent, enclosingClass, selfName, runtime)
		} else {
			v.visitBody(s.Orelse, parent, enclosingClass, selfName, runtime)
		}
		return
	}
	// Unrecognized condition: merge both branches, last-wins.
	v.visitBody(s.Body, parent, enclosingClass, selfName, runtime)
	v.visitBody(s.Orelse, parent, enclosingClass, selfName, runtime)
}

func (v *Visitor) visitTry(s *pyast.Try, parent objects.Object, enclosingClass *objects.Class, selfName string, runtime bool) {
	// The try body is the first branch; it always "succeeds" at this
	// static stage, so functions, classes, type aliases and imports in
	// handler bodies only fill in names the try body didn't already
	// define. Assignments in handler bodies are modelled as usual and
	// overwrite an existing attribute's value.
	v.visitBody(s.Body, parent, enclosingClass, selfName, runtime)
	for _, h := range s.Handlers {
		for _, stmt := range h.Body {
			v.visitStmt(stmt, parent, enclosingClass, selfName, runtime, true)
		}
	}
	v.visitBody(s.Orelse, parent, enclosingClass, selfName, runtime)
	v.visitBody(s.Finalbody, parent, enclosingClass, selfName, runtime)
}

func isTypeChecking(test expr.Expr) bool {
	switch t := test.(type) {
	case *expr.Name:
		return t.Value == "TYPE_CHECKING"
	case *expr.Attribute:
		return t.Name == "TYPE_CHECKING"
	}
	return false
}

// evalVersionGuard statically evaluates `sys.version_info <op> (maj,
// min, ...)`-shaped comparisons against target. ok is false when the
// shape isn't one of the recognized statically-evaluable forms.
func evalVersionGuard(test expr.Expr, target TargetVersion) (matched bool, ok bool) {
	cmp, isCompare := test.(*expr.Compare)
	if !isCompare || len(cmp.Ops) != 1 || len(cmp.Comparators) != 1 {
		return false, false
	}
	if !isSysVersionInfo(cmp.Left) {
		return false, false
	}
	tuple, isTuple := cmp.Comparators[0].(*expr.Tuple)
	if !isTuple || len(tuple.Elts) == 0 {
		return false, false
	}
	other := make([]int, 0, len(tuple.Elts))
	for _, e := range tuple.Elts {
		c, isConst := e.(*expr.Constant)
		if !isConst || c.ConstKind != expr.ConstInt {
			return false, false
		}
		n, isInt := c.Value.(int64)
		if !isInt {
			return false, false
		}
		other = append(other, int(n))
	}
	mine := []int{target.Major, target.Minor}
	cmpResult := compareIntSlices(mine, other)
	switch cmp.Ops[0] {
	case ">=":
		return cmpResult >= 0, true
	case ">":
		return cmpResult > 0, true
	case "<=":
		return cmpResult <= 0, true
	case "<":
		return cmpResult < 0, true
	case "==":
		return cmpResult == 0, true
	case "!=":
		return cmpResult != 0, true
	}
	return false, false
}

func isSysVersionInfo(e expr.Expr) bool {
	attr, ok := e.(*expr.Attribute)
	if !ok || attr.Name != "version_info" {
		return false
	}
	name, ok := attr.Parent.(*expr.Name)
	return ok && name.Value == "sys"
}

func compareIntSlices(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

func isDunderAllTarget(targets []expr.Expr) bool {
	if len(targets) != 1 {
		return false
	}
	name, ok := targets[0].(*expr.Name)
	return ok && name.Value == "__all__"
}

// exportsFromValue reads a `[...]`/`(...)` literal of string names, or
// names referring to other modules' own __all__, into Export entries.
func exportsFromValue(value expr.Expr) []objects.Export {
	var elts []expr.Expr
	switch v := value.(type) {
	case *expr.List:
		elts = v.Elts
	case *expr.Tuple:
		elts = v.Elts
	case *expr.BinOp:
		// `__all__ = base.__all__ + ["extra"]` style concatenation.
		return append(exportsFromValue(v.Left), exportsFromValue(v.Right)...)
	default:
		return []objects.Export{{ExprKind: objects.ExportModuleAll, ModuleRef: value}}
	}
	exports := make([]objects.Export, 0, len(elts))
	for _, e := range elts {
		if s, ok := e.(*expr.String); ok {
			exports = append(exports, objects.Export{ExprKind: objects.ExportLiteral, Name: s.Value})
			continue
		}
		exports = append(exports, objects.Export{ExprKind: objects.ExportModuleAll, ModuleRef: e})
	}
	return exports
}

func registerOverload(parent objects.Object, name string, fn *objects.Function) {
	switch p := parent.(type) {
	case *objects.Class:
		p.Overloads[name] = append(p.Overloads[name], fn)
	case *objects.Module:
		p.Overloads[name] = append(p.Overloads[name], fn)
	}
}

var decoratorLabels = map[string]string{
	"property":        "property",
	"staticmethod":    "staticmethod",
	"classmethod":     "classmethod",
	"abstractmethod":  "abstractmethod",
	"cached_property": "cached_property",
}

// decoratorLabel returns the label a known decorator name implies, and
// whether the decorator marks an @overload signature.
func decoratorLabel(d expr.Expr) (label string, overload bool) {
	name := decoratorName(d)
	if name == "overload" {
		return "typing-overload", true
	}
	return decoratorLabels[name], false
}

func isDataclassDecorator(d expr.Expr) bool {
	return decoratorName(d) == "dataclass"
}

// decoratorName extracts the trailing identifier of a decorator
// expression, unwrapping a Call (`@decorator(...)`) to its callee.
func decoratorName(d expr.Expr) string {
	if call, ok := d.(*expr.Call); ok {
		d = call.Func
	}
	switch e := d.(type) {
	case *expr.Name:
		return e.Value
	case *expr.Attribute:
		return e.Name
	}
	return ""
}

func leadingDocstring(body []pyast.Stmt) (string, int) {
	if len(body) == 0 {
		return "", 0
	}
	es, ok := body[0].(*pyast.ExprStmt)
	if !ok {
		return "", 0
	}
	s, ok := es.Value.(*expr.String)
	if !ok {
		return "", 0
	}
	return s.Value, es.Pos.Line
}

// bindScope sets ScopeRef on every Name reachable from exprs to scope,
// so Name.CanonicalPath (internal/expr) can later resolve through
// Object.Resolve without the parser needing any knowledge of the
// object tree. Names that already carry a ScopeRef (re-walked via a
// shared subtree) are left untouched. A nil scope (e.g. an enclosing
// class not yet wired for a self-attribute) is a no-op.
func bindScope(scope objects.Object, exprs ...expr.Expr) {
	if scope == nil {
		return
	}
	for _, e := range exprs {
		if e == nil {
			continue
		}
		expr.Walk(e, func(n expr.Expr) {
			if name, ok := n.(*expr.Name); ok && name.ScopeRef == nil {
				name.ScopeRef = scope
			}
		})
	}
}

// recordImport notes, in scope's own Imports() map, that local now resolves to canonical within that scope.
// Only concrete objects track imports; Alias has no scope of its own.
func recordImport(scope objects.Object, local, canonical string) {
	if importer, ok := scope.(objects.Importer); ok {
		importer.AddImport(local, canonical)
	}
}
