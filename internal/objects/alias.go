package objects

import (
	"fmt"

	"github.com/mkdocstrings/griffe-sub003/internal/expr"
)

// Alias is a named reference to another object, resolved lazily. It
// does not embed common: its field set is deliberately smaller than a
// concrete object's, and its member-lookup surface forwards through
// Target rather than owning members of its own.
type Alias struct {
	name        string
	parent      Object
	targetPath  string
	aliasLineno *int
	inherited   bool

	target   Object // memoized once resolved
	resolved bool
	err      error // set when resolution failed or a cycle was detected

	resolving bool // cycle-detection flag, used by the alias resolver
}

// NewAlias creates an unresolved Alias pointing at targetPath.
func NewAlias(name string, parent Object, targetPath string) *Alias {
	return &Alias{name: name, parent: parent, targetPath: targetPath}
}

func (a *Alias) Kind() Kind   { return KindAlias }
func (a *Alias) Name() string { return a.name }
func (a *Alias) Parent() Object { return a.parent }

// TargetPath is the dotted name this alias points at.
func (a *Alias) TargetPath() string { return a.targetPath }

// AliasLineno is the source line of the `as` clause, if any.
func (a *Alias) AliasLineno() *int { return a.aliasLineno }
func (a *Alias) SetAliasLineno(n int) { a.aliasLineno = &n }

// Inherited marks an Alias synthesized for a class's inherited member.
func (a *Alias) Inherited() bool      { return a.inherited }
func (a *Alias) SetInherited(v bool)  { a.inherited = v }

// Path is the *lookup* path: where this alias is bound, not what it
// points to.
func (a *Alias) Path() string {
	if a.parent == nil {
		return a.name
	}
	return a.parent.CanonicalPath() + "." + a.name
}

// CanonicalPath returns the resolved target's canonical path once
// resolution has succeeded; otherwise it falls back to the declared
// target path as a best-effort rendering.
func (a *Alias) CanonicalPath() string {
	if a.resolved && a.target != nil {
		return a.target.CanonicalPath()
	}
	return a.targetPath
}

// Resolved reports whether SetTarget/SetError has been called.
func (a *Alias) Resolved() bool { return a.resolved }

// Target returns the memoized concrete object, or nil if unresolved.
func (a *Alias) Target() Object { return a.target }

// Err returns the resolution error, if resolution failed or a cycle
// was detected.
func (a *Alias) Err() error { return a.err }

// SetTarget memoizes a successful resolution.
func (a *Alias) SetTarget(target Object) {
	a.target = target
	a.resolved = true
	a.err = nil
}

// SetError memoizes a failed resolution.
func (a *Alias) SetError(err error) {
	a.resolved = true
	a.err = err
}

// BeginResolving/EndResolving bracket the in-flight resolution of this
// alias so the resolver's DFS can detect cycles.
func (a *Alias) BeginResolving() bool {
	if a.resolving {
		return false
	}
	a.resolving = true
	return true
}

func (a *Alias) EndResolving() { a.resolving = false }

// Members forwards to the target's members once resolved; an
// unresolved or failed alias reports no members.
func (a *Alias) Members() *Members {
	if a.resolved && a.target != nil {
		return a.target.Members()
	}
	return NewMembers()
}

func (a *Alias) Labels() map[string]struct{} {
	if a.resolved && a.target != nil {
		return a.target.Labels()
	}
	return nil
}

func (a *Alias) HasLabel(label string) bool {
	if a.resolved && a.target != nil {
		return a.target.HasLabel(label)
	}
	return false
}

// Resolve forwards lookups through the target.
func (a *Alias) Resolve(name string) (expr.Scope, error) {
	if a.resolved && a.target != nil {
		return a.target.Resolve(name)
	}
	if a.err != nil {
		return nil, a.err
	}
	return nil, &AliasNotResolvedError{Name: a.name, TargetPath: a.targetPath}
}

// AliasNotResolvedError is returned by Resolve when a lookup is
// attempted before the alias resolver has run.
type AliasNotResolvedError struct {
	Name       string
	TargetPath string
}

func (e *AliasNotResolvedError) Error() string {
	return fmt.Sprintf("alias %q -> %q not yet resolved", e.Name, e.TargetPath)
}

var _ Object = (*Alias)(nil)
