package alias

import (
	"fmt"
	"strings"

	"github.com/mkdocstrings/griffe-sub003/internal/errors"
	"github.com/mkdocstrings/griffe-sub003/internal/expr"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
	"github.com/mkdocstrings/griffe-sub003/internal/pos"
)

// Resolver runs the three alias-resolution phases over a
// populated Collection. It is invoked once every module of the target
// package has been visited and stub-merged.
type Resolver struct {
	Collection *Collection
	Warnings   *errors.Warnings

	// ResolveImplicit, when false, restricts eager resolution to
	// aliases named in their module's own __all__; others stay lazy until first access.
	ResolveImplicit bool

	// ResolveExternal, when set, is consulted to load a module that
	// was referenced but never visited. A nil func behaves as "resolve-external disabled".
	ResolveExternal func(dottedPath string) (*objects.Module, error)
}

// NewResolver returns a Resolver bound to collection.
func NewResolver(collection *Collection, warnings *errors.Warnings) *Resolver {
	return &Resolver{Collection: collection, Warnings: warnings}
}

func (r *Resolver) warn(code, message string) {
	if r.Warnings == nil {
		return
	}
	r.Warnings.Add(errors.New(code, message, &pos.Span{}))
}

// ---------------------------------------------------------------------
// Phase 1: export expansion
// ---------------------------------------------------------------------

// ExpandExports expands mod.Exports into mod.ExpandedExports,
// recursively expanding any module-__all__ reference it contains
// first. It is idempotent: a module whose exports are already expanded
// is left untouched.
func (r *Resolver) ExpandExports(mod *objects.Module) []string {
	return r.expandExports(mod, map[*objects.Module]bool{})
}

func (r *Resolver) expandExports(mod *objects.Module, inFlight map[*objects.Module]bool) []string {
	if mod.ExportsExpanded() {
		return mod.ExpandedExports
	}
	if inFlight[mod] {
		r.warn(errors.ALI003, fmt.Sprintf("cyclic __all__ expansion involving %q; keeping partial result", mod.CanonicalPath()))
		return nil
	}
	inFlight[mod] = true
	defer delete(inFlight, mod)

	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, export := range mod.Exports {
		switch export.ExprKind {
		case objects.ExportLiteral:
			add(export.Name)
		case objects.ExportModuleAll:
			other, ok := r.resolveModuleRef(export.ModuleRef)
			if !ok {
				r.warn(errors.ALI001, fmt.Sprintf("could not resolve __all__ reference %q in %q", export.ModuleRef.CanonicalPath(), mod.CanonicalPath()))
				continue
			}
			for _, name := range r.expandExports(other, inFlight) {
				add(name)
			}
		}
	}

	mod.SetExpandedExports(out)
	return out
}

// resolveModuleRef resolves an expression of the shape `base.__all__`
// (or a bare Name bound to a re-exported __all__) to the Module it
// names, using the Name's ScopeRef the Source Visitor attached
// (internal/visitor bindScope) rather than re-parsing text.
func (r *Resolver) resolveModuleRef(ref expr.Expr) (*objects.Module, bool) {
	attr, ok := ref.(*expr.Attribute)
	if !ok || attr.Name != "__all__" {
		return nil, false
	}
	name, ok := attr.Parent.(*expr.Name)
	if !ok || name.ScopeRef == nil {
		return nil, false
	}
	scope, err := name.ScopeRef.Resolve(name.Value)
	if err != nil {
		return nil, false
	}
	return r.unwrapToModule(scope)
}

// unwrapToModule follows an Alias (resolving it if necessary) down to
// the Module it ultimately names.
func (r *Resolver) unwrapToModule(scope expr.Scope) (*objects.Module, bool) {
	switch v := scope.(type) {
	case *objects.Module:
		return v, true
	case *objects.Alias:
		if !v.Resolved() {
			r.resolveAlias(v, map[*objects.Alias]bool{})
		}
		if v.Target() == nil {
			return nil, false
		}
		return r.unwrapToModule(v.Target())
	default:
		return nil, false
	}
}

// ---------------------------------------------------------------------
// Phase 2: wildcard expansion
// ---------------------------------------------------------------------

// ExpandWildcards walks every Module reachable from root (via Members,
// not via import targets) and replaces any `from M import *` marker
// alias (internal/visitor encodes these as a member literally named
// "*") with one Alias per name M exports.
func (r *Resolver) ExpandWildcards(root *objects.Module) {
	walkModules(root, func(mod *objects.Module) {
		star, ok := mod.Members().Get("*")
		if !ok {
			return
		}
		wildcard, ok := star.(*objects.Alias)
		if !ok {
			return
		}
		mod.Members().Delete("*")
		r.expandWildcard(mod, wildcard)
	})
}

func (r *Resolver) expandWildcard(into *objects.Module, wildcard *objects.Alias) {
	modPath := strings.TrimSuffix(wildcard.TargetPath(), ".*")
	source, ok := r.Collection.Get(modPath)
	if !ok {
		r.warn(errors.ALI001, fmt.Sprintf("wildcard import target %q not found", modPath))
		return
	}
	src, ok := source.(*objects.Module)
	if !ok {
		r.warn(errors.ALI001, fmt.Sprintf("wildcard import target %q is not a module", modPath))
		return
	}

	var names []string
	if len(src.Exports) > 0 || src.ExportsExpanded() {
		names = r.ExpandExports(src)
	} else {
		src.Members().Each(func(name string, obj objects.Object) {
			if name == "*" {
				return
			}
			if strings.HasPrefix(name, "_") && !objects.IsSpecial(name) {
				return
			}
			if _, isSubmodule := obj.(*objects.Module); isSubmodule {
				if _, imported := src.Imports()[name]; !imported {
					return
				}
			}
			names = append(names, name)
		})
	}

	for _, name := range names {
		if _, exists := into.Members().Get(name); exists {
			// "Existing bindings in the current scope win over
			// wildcard-introduced ones".
			continue
		}
		objects.AddMember(into, objects.NewAlias(name, into, modPath+"."+name))
	}
}

func walkModules(mod *objects.Module, visit func(*objects.Module)) {
	visit(mod)
	mod.Members().Each(func(_ string, obj objects.Object) {
		if sub, ok := obj.(*objects.Module); ok {
			walkModules(sub, visit)
		}
	})
}

// ---------------------------------------------------------------------
// Phase 3: alias resolution
// ---------------------------------------------------------------------

// ResolveAliases walks every concrete object reachable from root in
// deterministic depth-first order
// and resolves every Alias it finds.
func (r *Resolver) ResolveAliases(root objects.Object) {
	r.walkAliases(root, map[objects.Object]bool{})
}

// Run performs all three phases against root: expand exports, expand
// wildcards, then resolve aliases. When ResolveImplicit is false,
// eager resolution is restricted to aliases named in their owning
// module's own __all__; the rest stay lazy until Ensure is called on
// them.
func (r *Resolver) Run(root *objects.Module) {
	r.ExpandExports(root)
	r.ExpandWildcards(root)
	if r.ResolveImplicit {
		r.ResolveAliases(root)
		return
	}
	walkModules(root, func(mod *objects.Module) {
		for _, name := range mod.ExpandedExports {
			obj, ok := mod.Members().Get(name)
			if !ok {
				continue
			}
			if a, isAlias := obj.(*objects.Alias); isAlias {
				r.resolveAlias(a, map[*objects.Alias]bool{})
			}
		}
	})
}

// Ensure resolves a a lazily, on first access, when eager resolution
// (ResolveImplicit == false) left it untouched.
func (r *Resolver) Ensure(a *objects.Alias) {
	r.resolveAlias(a, map[*objects.Alias]bool{})
}

func (r *Resolver) walkAliases(o objects.Object, visited map[objects.Object]bool) {
	if visited[o] {
		return
	}
	visited[o] = true
	if a, ok := o.(*objects.Alias); ok {
		r.resolveAlias(a, map[*objects.Alias]bool{})
		return
	}
	o.Members().Each(func(_ string, child objects.Object) {
		r.walkAliases(child, visited)
	})
}

// resolveAlias resolves a single Alias, idempotently, with
// inPath tracking the current DFS chain for cycle detection.
func (r *Resolver) resolveAlias(a *objects.Alias, inPath map[*objects.Alias]bool) {
	if a.Resolved() {
		return
	}
	if inPath[a] {
		err := &CyclicAliasError{Path: a.TargetPath()}
		a.SetError(err)
		r.warn(errors.ALI002, fmt.Sprintf("cyclic alias chain detected at %q", a.Path()))
		return
	}
	inPath[a] = true
	defer delete(inPath, a)

	if !a.BeginResolving() {
		return
	}
	defer a.EndResolving()

	target, ok := r.Collection.Get(a.TargetPath())
	if !ok {
		if r.ResolveExternal != nil {
			if loaded, err := r.ResolveExternal(topLevelName(a.TargetPath())); err == nil && loaded != nil {
				r.Collection.Add(loaded)
				target, ok = r.Collection.Get(a.TargetPath())
			}
		}
	}
	if !ok {
		err := &AliasResolutionError{TargetPath: a.TargetPath()}
		a.SetError(err)
		r.warn(errors.ALI001, fmt.Sprintf("alias target %q could not be located", a.TargetPath()))
		return
	}

	if next, isAlias := target.(*objects.Alias); isAlias {
		r.resolveAlias(next, inPath)
		if next.Err() != nil {
			a.SetError(next.Err())
			return
		}
		target = next.Target()
	}
	a.SetTarget(target)
}

func topLevelName(dottedPath string) string {
	if i := strings.IndexByte(dottedPath, '.'); i >= 0 {
		return dottedPath[:i]
	}
	return dottedPath
}

// AliasResolutionError reports that an alias target could not be
// located anywhere in the Modules collection.
type AliasResolutionError struct{ TargetPath string }

func (e *AliasResolutionError) Error() string {
	return fmt.Sprintf("alias target %q could not be located", e.TargetPath)
}

// CyclicAliasError reports a cycle detected while following an alias
// chain.
type CyclicAliasError struct{ Path string }

func (e *CyclicAliasError) Error() string {
	return fmt.Sprintf("cyclic alias chain at %q", e.Path)
}
