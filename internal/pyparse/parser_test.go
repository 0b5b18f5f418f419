package pyparse

import (
	"testing"

	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/pyast"
)

func TestParseFunctionDef(t *testing.T) {
	src := "def greet(name: str, *, loud: bool = False) -> str:\n" +
		"    \"\"\"Say hello.\"\"\"\n" +
		"    return name\n"
	f, errs := ParseFile(src, "m.py")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(f.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(f.Body))
	}
	fn, ok := f.Body[0].(*pyast.FunctionDef)
	if !ok {
		t.Fatalf("expected *FunctionDef, got %T", f.Body[0])
	}
	if fn.Name != "greet" {
		t.Errorf("name = %q", fn.Name)
	}
	if fn.Docstring != "Say hello." {
		t.Errorf("docstring = %q", fn.Docstring)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	if fn.Parameters[0].ParamKind != expr.PositionalOrKeyword {
		t.Errorf("param[0] kind = %v", fn.Parameters[0].ParamKind)
	}
	if fn.Parameters[1].ParamKind != expr.KeywordOnly {
		t.Errorf("param[1] kind = %v", fn.Parameters[1].ParamKind)
	}
	if fn.Returns == nil || fn.Returns.CanonicalPath() != "str" {
		t.Errorf("returns = %v", fn.Returns)
	}
}

func TestParseClassWithBases(t *testing.T) {
	src := "class Widget(Base, metaclass=Meta):\n    x: int = 1\n"
	f, errs := ParseFile(src, "m.py")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	cls, ok := f.Body[0].(*pyast.ClassDef)
	if !ok {
		t.Fatalf("expected *ClassDef, got %T", f.Body[0])
	}
	if len(cls.Bases) != 1 || cls.Bases[0].CanonicalPath() != "Base" {
		t.Errorf("bases = %v", cls.Bases)
	}
	if len(cls.KeywordBases) != 1 || cls.KeywordBases[0].Name != "metaclass" {
		t.Errorf("keyword bases = %v", cls.KeywordBases)
	}
	ann, ok := cls.Body[0].(*pyast.AnnAssign)
	if !ok {
		t.Fatalf("expected *AnnAssign, got %T", cls.Body[0])
	}
	if ann.Annotation.CanonicalPath() != "int" {
		t.Errorf("annotation = %v", ann.Annotation)
	}
}

func TestParseImportFrom(t *testing.T) {
	src := "from .sub import a, b as c\n"
	f, errs := ParseFile(src, "m.py")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	imp, ok := f.Body[0].(*pyast.ImportFrom)
	if !ok {
		t.Fatalf("expected *ImportFrom, got %T", f.Body[0])
	}
	if imp.Level != 1 || imp.Module != "sub" {
		t.Errorf("level/module = %d/%q", imp.Level, imp.Module)
	}
	if len(imp.Names) != 2 || imp.Names[1].AsName != "c" {
		t.Errorf("names = %+v", imp.Names)
	}
}

func TestParseAttributeAndCallChain(t *testing.T) {
	src := "x = a.b.c(1, key=2)\n"
	f, _ := ParseFile(src, "m.py")
	assign, ok := f.Body[0].(*pyast.Assign)
	if !ok {
		t.Fatalf("expected *Assign, got %T", f.Body[0])
	}
	call, ok := assign.Value.(*expr.Call)
	if !ok {
		t.Fatalf("expected *Call, got %T", assign.Value)
	}
	if call.Func.CanonicalPath() != "a.b.c" {
		t.Errorf("call func = %v", call.Func.CanonicalPath())
	}
	if len(call.Args) != 1 || len(call.Keywords) != 1 {
		t.Errorf("args/keywords = %d/%d", len(call.Args), len(call.Keywords))
	}
}

func TestParseListComprehension(t *testing.T) {
	src := "x = [i for i in range(10) if i > 2]\n"
	f, _ := ParseFile(src, "m.py")
	assign := f.Body[0].(*pyast.Assign)
	gen, ok := assign.Value.(*expr.Generator)
	if !ok {
		t.Fatalf("expected *Generator, got %T", assign.Value)
	}
	if gen.GenKind != expr.GenListComp {
		t.Errorf("gen kind = %v", gen.GenKind)
	}
	if len(gen.Generators) != 1 || len(gen.Generators[0].Ifs) != 1 {
		t.Errorf("generators = %+v", gen.Generators)
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n"
	f, errs := ParseFile(src, "m.py")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	top, ok := f.Body[0].(*pyast.If)
	if !ok {
		t.Fatalf("expected *If, got %T", f.Body[0])
	}
	if len(top.Orelse) != 1 {
		t.Fatalf("expected elif nested as 1 stmt, got %d", len(top.Orelse))
	}
	elif, ok := top.Orelse[0].(*pyast.If)
	if !ok {
		t.Fatalf("expected nested *If, got %T", top.Orelse[0])
	}
	if len(elif.Orelse) != 1 {
		t.Errorf("expected else body, got %d stmts", len(elif.Orelse))
	}
}

func TestRecoverableSyntaxErrorKeepsParsing(t *testing.T) {
	src := "x = 1\ny = @\nz = 2\n"
	f, errs := ParseFile(src, "m.py")
	if len(errs) == 0 {
		t.Fatal("expected a recorded syntax error")
	}
	assigns := 0
	for _, s := range f.Body {
		if _, ok := s.(*pyast.Assign); ok {
			assigns++
		}
	}
	if assigns != 3 {
		t.Errorf("expected parser to recover and see all 3 assignments, got %d statements total: %d assigns", len(f.Body), assigns)
	}
}
