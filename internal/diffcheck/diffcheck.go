// Package diffcheck implements the API-diff contract behind the
// `check` subcommand: comparing two loaded revisions of a
// package and reporting breaking changes. Depth is intentionally
// limited: this package defines the comparison shape and a handful of
// structural rules (removed public member, kind change, added
// required parameter) rather than the full compatibility matrix a
// real API-diff tool would need.
package diffcheck

import "github.com/mkdocstrings/griffe-sub003/internal/objects"

// Severity classifies a Breakage's impact on callers.
type Severity string

const (
	SeverityBreaking    Severity = "breaking"
	SeverityNonBreaking Severity = "non-breaking"
)

// Breakage is one detected API difference between a base and a
// revision tree.
type Breakage struct {
	Path     string
	Kind     string // "removed", "kind-changed", "parameter-added", ...
	Severity Severity
	Message  string
}

// Compare walks base and against by dotted path and reports breakages.
// It only compares names present in base: additions in against are
// never breaking and are not reported.
func Compare(base, against *objects.Module) []Breakage {
	var out []Breakage
	compareMembers(base, against, &out)
	return out
}

func compareMembers(base, against objects.Object, out *[]Breakage) {
	base.Members().Each(func(name string, baseChild objects.Object) {
		if objects.IsPrivate(name) || objects.IsClassPrivate(name) {
			return
		}
		againstChild, ok := against.Members().Get(name)
		if !ok {
			*out = append(*out, Breakage{
				Path:     baseChild.Path(),
				Kind:     "removed",
				Severity: SeverityBreaking,
				Message:  "public member removed",
			})
			return
		}
		if baseChild.Kind() != againstChild.Kind() {
			*out = append(*out, Breakage{
				Path:     baseChild.Path(),
				Kind:     "kind-changed",
				Severity: SeverityBreaking,
				Message:  string(baseChild.Kind()) + " became " + string(againstChild.Kind()),
			})
			return
		}
		if baseFn, ok := baseChild.(*objects.Function); ok {
			compareFunction(baseFn, againstChild.(*objects.Function), out)
		}
		compareMembers(baseChild, againstChild, out)
	})
}

func compareFunction(base, against *objects.Function, out *[]Breakage) {
	requiredBefore := map[string]bool{}
	for _, p := range base.Parameters {
		if p.Default == nil {
			requiredBefore[p.Name] = true
		}
	}
	for _, p := range against.Parameters {
		if p.Default == nil && !requiredBefore[p.Name] {
			*out = append(*out, Breakage{
				Path:     against.Path(),
				Kind:     "parameter-added",
				Severity: SeverityBreaking,
				Message:  "new required parameter " + p.Name,
			})
		}
	}
}

// HasBreaking reports whether any Breakage in diffs is SeverityBreaking.
func HasBreaking(diffs []Breakage) bool {
	for _, d := range diffs {
		if d.Severity == SeverityBreaking {
			return true
		}
	}
	return false
}
