// Package extensions implements the extension hook contract: a
// loader-configured, priority-ordered list of hooks that may
// mutate in-progress objects as they are loaded. Grounded on
// internal/link's pass-sequencing shape, which also runs a fixed
// sequence of passes over a freshly-built tree (there: dependency
// resolution passes; here: extension hooks) and logs a structured
// Report rather than aborting when one pass misbehaves.
package extensions

import (
	"fmt"

	"github.com/mkdocstrings/griffe-sub003/internal/errors"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

// Context is what a hook receives alongside the object it's inspecting.
// It exposes only the loader capabilities a hook actually needs, so
// this package never imports internal/loader (which imports this
// package to run hooks) and no import cycle exists.
type Context struct {
	Warnings *errors.Warnings
}

// Extension is satisfied by every extension; Priority breaks ties when
// multiple extensions implement the same hook.
type Extension interface {
	Name() string
	Priority() int
}

// The hook interfaces below are all optional: an Extension implements
// whichever subset of them its behavior needs.
type (
	PackageLoadedHook interface {
		OnPackageLoaded(pkg *objects.Module, ctx *Context) error
	}
	ModuleLoadedHook interface {
		OnModuleLoaded(mod *objects.Module, ctx *Context) error
	}
	ClassMembersHook interface {
		OnClassMembers(cls *objects.Class, ctx *Context) error
	}
	FunctionMembersHook interface {
		OnFunctionMembers(fn *objects.Function, ctx *Context) error
	}
	AttributeInstanceHook interface {
		OnAttributeInstance(attr *objects.Attribute, ctx *Context) error
	}
	TypeAliasInstanceHook interface {
		OnTypeAliasInstance(ta *objects.TypeAlias, ctx *Context) error
	}
	// InstanceHook is the catch-all: called for every object, concrete
	// or Alias, in addition to whichever kind-specific hook also ran.
	InstanceHook interface {
		OnInstance(obj objects.Object, ctx *Context) error
	}
)

// Registry holds a priority-ordered set of extensions and dispatches
// the hook calls the loader drives while building a tree.
type Registry struct {
	exts []Extension
}

// NewRegistry builds a Registry from exts, sorted by priority; ByName
// resolves one of the comma-separated -e/--extensions CLI names to a
// built-in.
func NewRegistry(exts ...Extension) *Registry {
	r := &Registry{exts: append([]Extension(nil), exts...)}
	r.sort()
	return r
}

func (r *Registry) sort() {
	for i := 1; i < len(r.exts); i++ {
		for j := i; j > 0 && r.exts[j].Priority() < r.exts[j-1].Priority(); j-- {
			r.exts[j], r.exts[j-1] = r.exts[j-1], r.exts[j]
		}
	}
}

// Add appends ext and re-sorts by priority.
func (r *Registry) Add(ext Extension) {
	r.exts = append(r.exts, ext)
	r.sort()
}

func (r *Registry) runInstance(obj objects.Object, ctx *Context) {
	for _, e := range r.exts {
		if h, ok := e.(InstanceHook); ok {
			if err := h.OnInstance(obj, ctx); err != nil {
				ctx.reportHookError(e, "on_instance", err)
			}
		}
	}
}

func (c *Context) reportHookError(e Extension, hook string, err error) {
	if c == nil || c.Warnings == nil {
		return
	}
	c.Warnings.Add(errors.New(errors.EXT001, fmt.Sprintf("extension %q %s hook: %v", e.Name(), hook, err), nil))
}

// RunPackageLoaded runs every PackageLoadedHook, then the catch-all.
func (r *Registry) RunPackageLoaded(pkg *objects.Module, ctx *Context) {
	for _, e := range r.exts {
		if h, ok := e.(PackageLoadedHook); ok {
			if err := h.OnPackageLoaded(pkg, ctx); err != nil {
				ctx.reportHookError(e, "on_package_loaded", err)
			}
		}
	}
	r.runInstance(pkg, ctx)
}

// RunModuleLoaded runs every ModuleLoadedHook, then the catch-all.
func (r *Registry) RunModuleLoaded(mod *objects.Module, ctx *Context) {
	for _, e := range r.exts {
		if h, ok := e.(ModuleLoadedHook); ok {
			if err := h.OnModuleLoaded(mod, ctx); err != nil {
				ctx.reportHookError(e, "on_module_loaded", err)
			}
		}
	}
	r.runInstance(mod, ctx)
}

// RunClassMembers runs every ClassMembersHook (e.g. dataclasses
// synthesizing __init__), then the catch-all.
func (r *Registry) RunClassMembers(cls *objects.Class, ctx *Context) {
	for _, e := range r.exts {
		if h, ok := e.(ClassMembersHook); ok {
			if err := h.OnClassMembers(cls, ctx); err != nil {
				ctx.reportHookError(e, "on_class_members", err)
			}
		}
	}
	r.runInstance(cls, ctx)
}

// RunFunctionMembers runs every FunctionMembersHook (e.g.
// unpack-typeddict expanding **kwargs), then the catch-all.
func (r *Registry) RunFunctionMembers(fn *objects.Function, ctx *Context) {
	for _, e := range r.exts {
		if h, ok := e.(FunctionMembersHook); ok {
			if err := h.OnFunctionMembers(fn, ctx); err != nil {
				ctx.reportHookError(e, "on_function_members", err)
			}
		}
	}
	r.runInstance(fn, ctx)
}

// RunAttributeInstance runs every AttributeInstanceHook, then the
// catch-all.
func (r *Registry) RunAttributeInstance(attr *objects.Attribute, ctx *Context) {
	for _, e := range r.exts {
		if h, ok := e.(AttributeInstanceHook); ok {
			if err := h.OnAttributeInstance(attr, ctx); err != nil {
				ctx.reportHookError(e, "on_attribute_instance", err)
			}
		}
	}
	r.runInstance(attr, ctx)
}

// RunTypeAliasInstance runs every TypeAliasInstanceHook, then the
// catch-all.
func (r *Registry) RunTypeAliasInstance(ta *objects.TypeAlias, ctx *Context) {
	for _, e := range r.exts {
		if h, ok := e.(TypeAliasInstanceHook); ok {
			if err := h.OnTypeAliasInstance(ta, ctx); err != nil {
				ctx.reportHookError(e, "on_type_alias_instance", err)
			}
		}
	}
	r.runInstance(ta, ctx)
}

// Names returns the registered extension names in priority order, for
// -S/--stats reporting.
func (r *Registry) Names() []string {
	out := make([]string, len(r.exts))
	for i, e := range r.exts {
		out[i] = e.Name()
	}
	return out
}

// ByName resolves the two built-in extensions the loader ships; an
// unknown name is reported by the caller (the CLI), not here.
func ByName(name string) (Extension, bool) {
	switch name {
	case "dataclasses":
		return &Dataclasses{}, true
	case "unpack-typeddict":
		return &UnpackTypedDict{}, true
	default:
		return nil, false
	}
}
