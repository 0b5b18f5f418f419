package pylex

import "testing"

func collect(src string) []Token {
	l := New(src, "test.py")
	var toks []Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == EOF {
			return toks
		}
	}
}

func types(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func assertTypes(t *testing.T, got []TokenType, want []TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d\ngot: %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %s, want %s\ngot: %v", i, got[i], want[i], got)
		}
	}
}

func TestSimpleDefIndent(t *testing.T) {
	src := "def f():\n    return 1\n"
	toks := collect(src)
	assertTypes(t, types(toks), []TokenType{
		DEF, IDENT, LPAREN, RPAREN, COLON, NEWLINE,
		INDENT, RETURN, INT, NEWLINE,
		DEDENT, EOF,
	})
}

func TestDedentToMultipleLevels(t *testing.T) {
	src := "if a:\n    if b:\n        x = 1\ny = 2\n"
	toks := collect(src)
	got := types(toks)
	want := []TokenType{
		IF, IDENT, COLON, NEWLINE,
		INDENT, IF, IDENT, COLON, NEWLINE,
		INDENT, IDENT, ASSIGN, INT, NEWLINE,
		DEDENT, DEDENT, IDENT, ASSIGN, INT, NEWLINE,
		EOF,
	}
	assertTypes(t, got, want)
}

func TestImplicitLineJoiningInsideParens(t *testing.T) {
	src := "x = (1 +\n     2)\n"
	toks := collect(src)
	assertTypes(t, types(toks), []TokenType{
		IDENT, ASSIGN, LPAREN, INT, PLUS, INT, RPAREN, NEWLINE, EOF,
	})
}

func TestBlankAndCommentLinesIgnored(t *testing.T) {
	src := "x = 1\n\n# comment\n\ny = 2\n"
	toks := collect(src)
	assertTypes(t, types(toks), []TokenType{
		IDENT, ASSIGN, INT, NEWLINE,
		IDENT, ASSIGN, INT, NEWLINE,
		EOF,
	})
}

func TestStringPrefixes(t *testing.T) {
	src := `x = rb"raw bytes"` + "\n"
	toks := collect(src)
	if toks[2].Type != STRING {
		t.Fatalf("expected STRING, got %s", toks[2].Type)
	}
	if toks[2].Literal != `rb"raw bytes"` {
		t.Errorf("literal = %q", toks[2].Literal)
	}
}

func TestTripleQuotedString(t *testing.T) {
	src := "x = \"\"\"hello\nworld\"\"\"\n"
	toks := collect(src)
	if toks[2].Type != STRING {
		t.Fatalf("expected STRING, got %s", toks[2].Type)
	}
}

func TestKeywordLookup(t *testing.T) {
	if LookupIdent("class") != CLASS {
		t.Error("class should lex as CLASS")
	}
	if LookupIdent("match") != IDENT {
		t.Error("match is a soft keyword, should lex as IDENT from LookupIdent")
	}
}
