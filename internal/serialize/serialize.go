// Package serialize renders an object tree to a JSON shape mirroring
// the loader's own object kinds. It is deliberately thin: expressions
// serialize as a `{cls, value}` pair carrying their rendered text
// rather than a fully nested per-field tree, since nothing downstream
// in this module consumes the richer form. Grounded on
// internal/errors.Report's own encoding/json struct-tag style, the
// only JSON format emitted elsewhere in this module.
package serialize

import (
	"encoding/json"

	"github.com/mkdocstrings/griffe-sub003/internal/docstring"
	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

// Options controls how much of an object is emitted.
type Options struct {
	Full     bool
	Docstyle docstring.Style
}

// Marshal serializes obj to JSON per Options.
func Marshal(obj objects.Object, opts Options) ([]byte, error) {
	return json.Marshal(ToMap(obj, opts))
}

// ToMap converts obj to a map shape a documentation tool would want.
// Map key order is not preserved by encoding/json, which
// is acceptable here: ordering is a rendering concern for a real
// documentation tool, not a structural one for this loader.
func ToMap(obj objects.Object, opts Options) map[string]any {
	if alias, ok := obj.(*objects.Alias); ok {
		return aliasMap(alias, opts)
	}

	m := map[string]any{
		"kind": string(obj.Kind()),
		"name": obj.Name(),
		"path": obj.Path(),
	}

	type positioned interface {
		Lineno() int
		Endlineno() int
	}
	type documented interface {
		Docstring() *objects.Docstring
	}
	type labeled interface {
		Labels() map[string]struct{}
	}

	if p, ok := obj.(positioned); ok {
		m["lineno"] = p.Lineno()
		m["endlineno"] = p.Endlineno()
	}
	if d, ok := obj.(documented); ok {
		if ds := d.Docstring(); ds != nil {
			dm := map[string]any{"value": ds.Value}
			if opts.Full {
				dm["parsed"] = structuredSections(ds.Value, opts.Docstyle)
			}
			m["docstring"] = dm
		}
	}
	if l, ok := obj.(labeled); ok {
		labels := make([]string, 0, len(l.Labels()))
		for name := range l.Labels() {
			labels = append(labels, name)
		}
		m["labels"] = labels
	}

	switch o := obj.(type) {
	case *objects.Module:
		m["filepath"] = o.FilePath
		m["members"] = membersMap(o.Members(), opts)
	case *objects.Class:
		m["bases"] = exprSlice(o.Bases)
		m["members"] = membersMap(o.Members(), opts)
	case *objects.Function:
		m["parameters"] = parametersSlice(o.Parameters)
		if o.Returns != nil {
			m["returns"] = exprMap(o.Returns)
		}
	case *objects.Attribute:
		if o.Annotation != nil {
			m["annotation"] = exprMap(o.Annotation)
		}
		if o.Value != nil {
			m["value"] = exprMap(o.Value)
		}
	case *objects.TypeAlias:
		if o.Value != nil {
			m["value"] = exprMap(o.Value)
		}
	}
	return m
}

func aliasMap(a *objects.Alias, opts Options) map[string]any {
	return map[string]any{
		"kind":        string(a.Kind()),
		"name":        a.Name(),
		"path":        a.Path(),
		"target_path": a.TargetPath(),
		"inherited":   a.Inherited(),
	}
}

func membersMap(members *objects.Members, opts Options) map[string]any {
	out := make(map[string]any, members.Len())
	members.Each(func(name string, child objects.Object) {
		out[name] = ToMap(child, opts)
	})
	return out
}

func exprMap(e expr.Expr) map[string]any {
	return map[string]any{
		"cls":   string(e.Kind()),
		"value": expr.Render(e),
	}
}

func exprSlice(es []expr.Expr) []map[string]any {
	out := make([]map[string]any, len(es))
	for i, e := range es {
		out[i] = exprMap(e)
	}
	return out
}

func parametersSlice(ps []*expr.Parameter) []map[string]any {
	out := make([]map[string]any, len(ps))
	for i, p := range ps {
		pm := map[string]any{
			"name": p.Name,
			"kind": string(p.ParamKind),
		}
		if p.Annotation != nil {
			pm["annotation"] = exprMap(p.Annotation)
		}
		if p.Default != nil {
			pm["default"] = exprMap(p.Default)
		}
		out[i] = pm
	}
	return out
}

func structuredSections(value string, style docstring.Style) []map[string]any {
	if style == "" {
		style = docstring.StyleAuto
	}
	_, sections, _ := docstring.Parse(value, style)
	out := make([]map[string]any, len(sections))
	for i, s := range sections {
		out[i] = map[string]any{"kind": string(s.Kind), "title": s.Title, "text": s.Text}
	}
	return out
}
