// Package objects implements the API object tree: the
// rooted, dotted-name-indexed tree of Module/Class/Function/Attribute/
// TypeAlias objects produced by the Source Visitor, plus the Alias
// node used to represent imports and re-exports. The shape is grounded
// on internal/module.Module's identity/filepath/exports shape
// and internal/ast.File (ownership, position tracking), generalized
// from a single-kind "Module" to the tagged-variant object kinds a
// Python API model requires.
package objects

import (
	"fmt"
	"strings"

	"github.com/mkdocstrings/griffe-sub003/internal/expr"
)

// Kind tags every object variant.
type Kind string

const (
	KindModule    Kind = "module"
	KindClass     Kind = "class"
	KindFunction  Kind = "function"
	KindAttribute Kind = "attribute"
	KindTypeAlias Kind = "type-alias"
	KindAlias     Kind = "alias"
)

// Visibility is the tri-state computed-visibility override.
type Visibility int

const (
	VisibilityUnset Visibility = iota
	VisibilityPublic
	VisibilityPrivate
)

// Docstring is the nullable free-text docstring plus its source
// position, before structured parsing (internal/docstring structures
// it into Sections on demand).
type Docstring struct {
	Value  string
	Lineno int
}

// Object is satisfied by every node in the tree, concrete or Alias.
// It embeds expr.Scope so expression Names parsed anywhere in the tree
// can resolve through any Object uniformly.
type Object interface {
	expr.Scope

	Kind() Kind
	Name() string
	Parent() Object
	Members() *Members
	CanonicalPath() string
	Labels() map[string]struct{}
	HasLabel(string) bool
}

// common holds the fields shared by every concrete object kind. Alias
// does not embed common: it carries a deliberately smaller field set.
type common struct {
	name      string
	parent    Object
	members   *Members
	lineno    int
	endlineno int
	docstring *Docstring
	labels    map[string]struct{}
	runtime   bool
	public    Visibility
	deprecated *string
	extra     map[string]map[string]any
	imports   map[string]string
}

func newCommon(name string, parent Object) common {
	return common{
		name:    name,
		parent:  parent,
		members: NewMembers(),
		runtime: true,
		extra:   make(map[string]map[string]any),
		imports: make(map[string]string),
	}
}

func (c *common) Name() string         { return c.name }
func (c *common) Parent() Object       { return c.parent }
func (c *common) Members() *Members    { return c.members }
func (c *common) Labels() map[string]struct{} { return c.labels }

func (c *common) HasLabel(label string) bool {
	_, ok := c.labels[label]
	return ok
}

func (c *common) AddLabel(label string) {
	if c.labels == nil {
		c.labels = make(map[string]struct{})
	}
	c.labels[label] = struct{}{}
}

func (c *common) Lineno() int    { return c.lineno }
func (c *common) Endlineno() int { return c.endlineno }

func (c *common) SetPosition(lineno, endlineno int) {
	c.lineno = lineno
	c.endlineno = endlineno
}

func (c *common) Docstring() *Docstring { return c.docstring }

func (c *common) SetDocstring(value string, lineno int) {
	c.docstring = &Docstring{Value: value, Lineno: lineno}
}

func (c *common) Runtime() bool      { return c.runtime }
func (c *common) SetRuntime(v bool)  { c.runtime = v }
func (c *common) Public() Visibility { return c.public }
func (c *common) SetPublic(v Visibility) { c.public = v }
func (c *common) Deprecated() *string { return c.deprecated }
func (c *common) SetDeprecated(msg string) { c.deprecated = &msg }

// Extra returns the namespaced extension-metadata dict for namespace,
// creating it on first access.
func (c *common) Extra(namespace string) map[string]any {
	if c.extra == nil {
		c.extra = make(map[string]map[string]any)
	}
	ns, ok := c.extra[namespace]
	if !ok {
		ns = make(map[string]any)
		c.extra[namespace] = ns
	}
	return ns
}

func (c *common) Imports() map[string]string { return c.imports }

// AddImport records that local resolves, within this scope, to the
// canonical dotted path of an imported symbol.
func (c *common) AddImport(local, canonical string) {
	if c.imports == nil {
		c.imports = make(map[string]string)
	}
	c.imports[local] = canonical
}

// Importer is satisfied by every concrete object kind (not Alias),
// exposing the write side of Imports().
type Importer interface {
	AddImport(local, canonical string)
}

// CanonicalPath is parent.CanonicalPath() + "." + name, or just name at
// the root.
func (c *common) CanonicalPath() string {
	if c.parent == nil {
		return c.name
	}
	return c.parent.CanonicalPath() + "." + c.name
}

// Path is the lookup path for a concrete object, which coincides with
// its canonical path.
func (c *common) Path() string { return c.CanonicalPath() }

// ModuleOf returns the nearest ancestor Module.
func ModuleOf(o Object) *Module {
	for cur := o; cur != nil; cur = cur.Parent() {
		if m, ok := cur.(*Module); ok {
			return m
		}
	}
	return nil
}

// IsSpecial reports whether name is a "dunder" name (`__x__`).
func IsSpecial(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// IsClassPrivate reports whether name uses the name-mangled
// double-leading-underscore convention (`__x`) without being a dunder.
func IsClassPrivate(name string) bool {
	return strings.HasPrefix(name, "__") && !strings.HasSuffix(name, "__")
}

// IsPrivate reports whether name is private by the single-leading-
// underscore convention (`_x`), excluding dunders and class-private
// names which are reported separately.
func IsPrivate(name string) bool {
	return strings.HasPrefix(name, "_") && !IsSpecial(name) && !IsClassPrivate(name)
}

// PackageOf returns the root ancestor Module.
func PackageOf(o Object) *Module {
	var last *Module
	for cur := o; cur != nil; cur = cur.Parent() {
		if m, ok := cur.(*Module); ok {
			last = m
		}
	}
	return last
}

// typeParameterized is implemented by the object kinds that can
// introduce PEP 695 type parameters into scope (Function, Class,
// TypeAlias).
type typeParameterized interface {
	TypeParamNames() []string
}

// Resolve implements expr.Scope: look up, in order, self's own
// enclosing type parameters, then self's own members, then iteratively
// the parent's (type parameters, then members), terminating at the
// root Module. It does not follow aliases transitively;
// that is the alias resolver's job, invoked separately once the tree
// is built.
func (c *common) resolve(self Object, name string) (expr.Scope, error) {
	if tp, ok := self.(typeParameterized); ok {
		for _, p := range tp.TypeParamNames() {
			if p == name {
				return self, nil
			}
		}
	}
	if obj, ok := c.members.Get(name); ok {
		return obj, nil
	}
	if c.parent != nil {
		return c.parent.Resolve(name)
	}
	return nil, &NameResolutionError{Scope: self.CanonicalPath(), Name: name}
}

// NameResolutionError reports a failed Object.resolve(name).
type NameResolutionError struct {
	Scope string
	Name  string
}

func (e *NameResolutionError) Error() string {
	return fmt.Sprintf("name resolution failed: %q not found from scope %q", e.Name, e.Scope)
}
