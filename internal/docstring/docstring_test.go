package docstring

import (
	"strings"
	"testing"
)

func TestParseGoogleStyle(t *testing.T) {
	raw := "Summary line.\n\n" +
		"Args:\n" +
		"    name (str): the name to greet.\n" +
		"    loud (bool): whether to shout.\n\n" +
		"Returns:\n" +
		"    str: the greeting.\n"
	summary, sections, _ := Parse(raw, StyleAuto)
	if summary != "Summary line." {
		t.Errorf("summary = %q", summary)
	}
	var params, returns *Section
	for i := range sections {
		switch sections[i].Kind {
		case SectionParams:
			params = &sections[i]
		case SectionReturns:
			returns = &sections[i]
		}
	}
	if params == nil || len(params.Items) != 2 {
		t.Fatalf("params section = %+v", params)
	}
	if params.Items[0].Name != "name" || params.Items[0].Annotation != "str" {
		t.Errorf("param[0] = %+v", params.Items[0])
	}
	if returns == nil || len(returns.Returns) != 1 || returns.Returns[0].Annotation != "str" {
		t.Fatalf("returns section = %+v", returns)
	}
}

func TestParseNumpyStyle(t *testing.T) {
	raw := "Summary line.\n\n" +
		"Parameters\n" +
		"----------\n" +
		"name : str\n" +
		"    the name to greet.\n\n" +
		"Returns\n" +
		"-------\n" +
		"str\n" +
		"    the greeting.\n"
	_, sections, _ := Parse(raw, StyleAuto)
	var params, returns *Section
	for i := range sections {
		switch sections[i].Kind {
		case SectionParams:
			params = &sections[i]
		case SectionReturns:
			returns = &sections[i]
		}
	}
	if params == nil || len(params.Items) != 1 || params.Items[0].Annotation != "str" {
		t.Fatalf("params section = %+v", params)
	}
	if returns == nil || len(returns.Returns) != 1 || returns.Returns[0].Annotation != "str" {
		t.Fatalf("returns section = %+v", returns)
	}
}

func TestParseSphinxStyle(t *testing.T) {
	raw := "Summary line.\n\n" +
		":param name: the name to greet.\n" +
		":type name: str\n" +
		":returns: the greeting.\n" +
		":rtype: str\n" +
		":raises ValueError: if name is empty.\n"
	_, sections, _ := Parse(raw, StyleAuto)
	var params, returns, raises *Section
	for i := range sections {
		switch sections[i].Kind {
		case SectionParams:
			params = &sections[i]
		case SectionReturns:
			returns = &sections[i]
		case SectionRaises:
			raises = &sections[i]
		}
	}
	if params == nil || len(params.Items) != 1 || params.Items[0].Annotation != "str" {
		t.Fatalf("params section = %+v", params)
	}
	if returns == nil || len(returns.Returns) != 1 || returns.Returns[0].Annotation != "str" {
		t.Fatalf("returns section = %+v", returns)
	}
	if raises == nil || len(raises.Items) != 1 || raises.Items[0].Name != "ValueError" {
		t.Fatalf("raises section = %+v", raises)
	}
}

func TestEmptyDocstringYieldsNoSections(t *testing.T) {
	summary, sections, _ := Parse("   \n\n  ", StyleAuto)
	if summary != "" || sections != nil {
		t.Errorf("expected empty result, got summary=%q sections=%v", summary, sections)
	}
}

func TestSniffStylePrefersSphinxFieldMarkers(t *testing.T) {
	raw := "Summary.\n\n:param x: a value\n"
	style := sniffStyle(strings.Split(raw, "\n"))
	if style != StyleSphinx {
		t.Errorf("sniffed style = %v, want sphinx", style)
	}
}

func TestParseGoogleUnknownHeaderBecomesAdmonition(t *testing.T) {
	raw := "Summary line.\n\n" +
		"Todo:\n" +
		"    wire up the retry path.\n\n" +
		"Args:\n" +
		"    name (str): the name to greet.\n"
	_, sections, _ := Parse(raw, StyleGoogle)
	var todo, params *Section
	for i := range sections {
		switch {
		case sections[i].Kind == SectionAdmonition:
			todo = &sections[i]
		case sections[i].Kind == SectionParams:
			params = &sections[i]
		}
	}
	if todo == nil {
		t.Fatalf("expected an Admonition section, got %+v", sections)
	}
	if todo.AdmonitionKind != "todo" {
		t.Errorf("admonition kind = %q, want %q", todo.AdmonitionKind, "todo")
	}
	if todo.Text != "wire up the retry path." {
		t.Errorf("admonition text = %q", todo.Text)
	}
	if params == nil || len(params.Items) != 1 {
		t.Fatalf("params section after admonition = %+v", params)
	}
}

func TestParseGoogleCompletesMissingKinds(t *testing.T) {
	raw := "Summary line.\n\n" +
		"Params:\n" +
		"    x (int): a value.\n\n" +
		"Type Parameters:\n" +
		"    T: a bound type.\n\n" +
		"Keyword Args:\n" +
		"    verbose (bool): be noisy.\n\n" +
		"Exceptions:\n" +
		"    ValueError: if x is negative.\n\n" +
		"Receives:\n" +
		"    int: a streamed value.\n\n" +
		"Functions:\n" +
		"    helper(): a module-level helper.\n\n" +
		"Deprecated:\n" +
		"    use new_thing instead.\n"
	_, sections, _ := Parse(raw, StyleGoogle)

	kinds := map[SectionKind]*Section{}
	for i := range sections {
		kinds[sections[i].Kind] = &sections[i]
	}

	if s := kinds[SectionParams]; s == nil || len(s.Items) != 1 {
		t.Fatalf("params = %+v", s)
	}
	if s := kinds[SectionTypeParams]; s == nil || len(s.Items) != 1 {
		t.Fatalf("type parameters = %+v", s)
	}
	if s := kinds[SectionOtherArgs]; s == nil || len(s.Items) != 1 {
		t.Fatalf("keyword args = %+v", s)
	}
	if s := kinds[SectionRaises]; s == nil || len(s.Items) != 1 {
		t.Fatalf("exceptions = %+v", s)
	}
	if s := kinds[SectionReceives]; s == nil || len(s.Returns) != 1 {
		t.Fatalf("receives = %+v", s)
	}
	if s := kinds[SectionFunctions]; s == nil || len(s.Items) != 1 {
		t.Fatalf("functions = %+v", s)
	}
	if s := kinds[SectionDeprecated]; s == nil || s.Text != "use new_thing instead." {
		t.Fatalf("deprecated = %+v", s)
	}
}

func TestParseNumpyUnknownHeaderBecomesAdmonition(t *testing.T) {
	raw := "Summary line.\n\n" +
		"Danger\n" +
		"------\n" +
		"do not call this twice.\n\n" +
		"Parameters\n" +
		"----------\n" +
		"name : str\n" +
		"    the name to greet.\n"
	_, sections, _ := Parse(raw, StyleNumpy)
	var danger, params *Section
	for i := range sections {
		switch sections[i].Kind {
		case SectionAdmonition:
			danger = &sections[i]
		case SectionParams:
			params = &sections[i]
		}
	}
	if danger == nil || danger.AdmonitionKind != "danger" {
		t.Fatalf("expected a danger admonition, got %+v", sections)
	}
	if params == nil || len(params.Items) != 1 {
		t.Fatalf("params section after admonition = %+v", params)
	}
}
