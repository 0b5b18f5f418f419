// Package loader implements the top-level orchestration: Finder ->
// Visitor -> Stub Merger -> Alias Resolver. Grounded on
// internal/module.Loader (cache-by-identity, configurable search
// paths read from an env var plus explicit paths, a load-stack for
// cycle detection) generalized from a single AILANG module file to a
// whole Python package tree assembled from the Finder's namespace/
// regular-package distinction and submodule iteration.
package loader

import (
	"os"
	"strings"

	"github.com/mkdocstrings/griffe-sub003/internal/alias"
	"github.com/mkdocstrings/griffe-sub003/internal/errors"
	"github.com/mkdocstrings/griffe-sub003/internal/extensions"
	"github.com/mkdocstrings/griffe-sub003/internal/finder"
	"github.com/mkdocstrings/griffe-sub003/internal/lines"
	"github.com/mkdocstrings/griffe-sub003/internal/objects"
	"github.com/mkdocstrings/griffe-sub003/internal/pyparse"
	"github.com/mkdocstrings/griffe-sub003/internal/stubs"
	"github.com/mkdocstrings/griffe-sub003/internal/visitor"
)

// searchPathEnv is read the same way AILANG_PATH is read in
// internal/module/loader.go:getDefaultSearchPaths, one griffe-specific
// variable instead of two.
const searchPathEnv = "GRIFFE_SEARCH_PATH"

// Config configures one Loader session.
type Config struct {
	SearchPaths       []string
	AppendSysPath     bool // -y/--sys-path: also search os.Getenv("PYTHONPATH")
	FindStubsPackages bool // -B/--find-stubs-packages
	TargetVersion     visitor.TargetVersion

	ResolveAliases   bool // -r/--resolve-aliases
	ResolveImplicit  bool // -I/--resolve-implicit
	ResolveExternal  bool // -U/--resolve-external
	Extensions       *extensions.Registry
}

// defaultTargetVersion matches this module's own conservative default
// posture (resolve what's statically unambiguous, don't guess at a
// toolchain version nobody configured).
var defaultTargetVersion = visitor.TargetVersion{Major: 3, Minor: 12}

// Loader wires together one session's Finder, Visitor, Stub Merger and
// Alias Resolver over a single Modules Collection.
type Loader struct {
	cfg Config

	Finder     *finder.Finder
	Lines      *lines.Collection
	Collection *alias.Collection
	Resolver   *alias.Resolver
	Merger     *stubs.Merger
	Warnings   *errors.Warnings
	Extensions *extensions.Registry

	visitorFor TargetVersionFunc
}

// TargetVersionFunc lets a caller override the Python version used for
// sys.version_info guard evaluation, otherwise every module uses
// cfg.TargetVersion.
type TargetVersionFunc func(dottedPath string) visitor.TargetVersion

// New builds a Loader. Search paths are, in order: cfg.SearchPaths,
// GRIFFE_SEARCH_PATH (os.PathListSeparator-joined, mirroring the
// AILANG_PATH handling above), and the process's own PYTHONPATH
// when AppendSysPath is set.
func New(cfg Config) *Loader {
	paths := append([]string(nil), cfg.SearchPaths...)
	if env := os.Getenv(searchPathEnv); env != "" {
		paths = append(paths, strings.Split(env, string(os.PathListSeparator))...)
	}
	if cfg.AppendSysPath {
		if env := os.Getenv("PYTHONPATH"); env != "" {
			paths = append(paths, strings.Split(env, string(os.PathListSeparator))...)
		}
	}
	if cfg.TargetVersion == (visitor.TargetVersion{}) {
		cfg.TargetVersion = defaultTargetVersion
	}
	warnings := errors.NewWarnings()
	collection := alias.New()
	exts := cfg.Extensions
	if exts == nil {
		exts = extensions.NewRegistry()
	}
	l := &Loader{
		cfg:        cfg,
		Finder:     finder.New(paths, cfg.FindStubsPackages),
		Lines:      lines.New(),
		Collection: collection,
		Merger:     stubs.New(),
		Warnings:   warnings,
		Extensions: exts,
	}
	l.Resolver = alias.NewResolver(collection, warnings)
	l.Resolver.ResolveImplicit = cfg.ResolveImplicit
	if cfg.ResolveExternal {
		l.Resolver.ResolveExternal = l.loadExternal
	}
	return l
}

// LoadPackage is the main entry point: find name, build its full
// object tree (including submodules), register it in the Modules
// Collection, run extensions and, if configured, the Alias Resolver.
func (l *Loader) LoadPackage(name string) (*objects.Module, error) {
	result, err := l.Finder.Find(name)
	if err != nil {
		rep, _ := errors.AsReport(err)
		if rep != nil {
			rep = errors.New(errors.LOD001, "top-level package not found: "+name, rep.Span).WithData("name", name)
		} else {
			rep = errors.New(errors.LOD001, "top-level package not found: "+name, nil)
		}
		return nil, errors.WrapReport(rep)
	}

	var root *objects.Module
	switch {
	case result.Package != nil:
		root, err = l.loadPackageFile(name, nil, result.Package)
	case result.Namespace != nil:
		root = objects.NewModule(name, nil)
		root.Directories = append(root.Directories, result.Namespace.Paths...)
		err = l.loadSubmodules(root, result.Namespace.Paths)
	}
	if err != nil {
		return nil, err
	}

	l.Collection.Add(root)
	l.Extensions.RunPackageLoaded(root, &extensions.Context{Warnings: l.Warnings})

	if l.cfg.ResolveAliases {
		l.Resolver.Run(root)
	}
	return root, nil
}

// loadPackageFile parses one file module (a regular module or an
// __init__), visits it into an object tree, merges its stub if any,
// runs per-member extension hooks, then recurses into submodules when
// the file was an __init__.
func (l *Loader) loadPackageFile(name string, parent objects.Object, pkg *finder.Package) (*objects.Module, error) {
	mod := objects.NewModule(lastPart(name), parent)
	mod.FilePath = pkg.Path
	mod.IsInitModule = pkg.IsInit

	if err := l.visitFile(pkg.Path, mod); err != nil {
		return nil, err
	}

	if pkg.StubsPath != "" {
		mod.StubsPath = pkg.StubsPath
		stubMod := objects.NewModule(lastPart(name), parent)
		if err := l.visitFile(pkg.StubsPath, stubMod); err != nil {
			l.Warnings.Add(errors.New(errors.VIS001, "stub file failed to parse: "+err.Error(), nil).WithData("path", pkg.StubsPath))
		} else {
			mod, _ = l.mergeStub(mod, stubMod)
		}
	}

	l.runMemberHooks(mod)
	l.Extensions.RunModuleLoaded(mod, &extensions.Context{Warnings: l.Warnings})

	if pkg.IsInit {
		dir := parentDir(pkg.Path)
		if err := l.loadSubmodules(mod, []string{dir}); err != nil {
			return nil, err
		}
	}
	return mod, nil
}

func (l *Loader) mergeStub(concrete, stub *objects.Module) (*objects.Module, []*errors.Report) {
	merged, reports := l.Merger.Merge(concrete, stub)
	for _, r := range reports {
		l.Warnings.Add(r)
	}
	return merged, reports
}

// visitFile parses path and walks its syntax tree into mod, recording
// both syntax and semantic diagnostics on l.Warnings. A file with
// syntax errors is not walked; an error is returned and the caller
// skips it.
func (l *Loader) visitFile(path string, mod *objects.Module) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapReport(errors.New(errors.FND001, "module file unreadable: "+err.Error(), nil).WithData("path", path))
	}
	l.Lines.Put(path, string(data))

	file, syntaxErrs := pyparse.ParseFile(string(data), path)
	for _, se := range syntaxErrs {
		l.Warnings.Add(errors.New(errors.VIS001, se.Error(), nil).WithData("path", path))
	}
	if len(syntaxErrs) > 0 {
		return errors.WrapReport(errors.New(errors.VIS001, "file skipped after syntax errors", nil).WithData("path", path))
	}

	v := visitor.New(l.Lines, l.cfg.TargetVersion)
	v.VisitModule(file, mod)
	for _, r := range v.Reports {
		l.Warnings.Add(r)
	}
	return nil
}

// loadSubmodules iterates every submodule under roots and attaches it
// to parent by walking/creating intermediate packages for dotted name
// parts, per submodule iteration. A .py/.pyi pair sharing
// a dotted path is merged into one Package the way the Finder itself
// pairs a module with its stub, since SubmoduleIterator (unlike Find)
// yields them as two separate entries.
func (l *Loader) loadSubmodules(parent *objects.Module, roots []string) error {
	byPath := map[string]*finder.Package{}
	var order []string
	for _, sub := range finder.NewSubmoduleIterator(roots).Iterate() {
		if len(sub.NameParts) == 0 {
			continue
		}
		key := strings.Join(sub.NameParts, ".")
		if strings.HasSuffix(sub.FilePath, ".pyi") {
			if existing, ok := byPath[key]; ok {
				existing.StubsPath = sub.FilePath
				continue
			}
			byPath[key] = &finder.Package{Name: sub.NameParts[len(sub.NameParts)-1], Path: sub.FilePath}
			order = append(order, key)
			continue
		}
		pkg, ok := byPath[key]
		if !ok {
			pkg = &finder.Package{Name: sub.NameParts[len(sub.NameParts)-1]}
			byPath[key] = pkg
			order = append(order, key)
		}
		if pkg.StubsPath == "" && pkg.Path != "" {
			pkg.StubsPath = pkg.Path
		}
		pkg.Path = sub.FilePath
	}

	for _, key := range order {
		pkg := byPath[key]
		if pkg.Path == "" {
			continue // not reached for entries built above; a lone .pyi is loaded as the module itself
		}
		parts := strings.Split(key, ".")
		container := l.ensureContainers(parent, parts[:len(parts)-1])
		leaf := parts[len(parts)-1]
		if _, exists := container.Members().Get(leaf); exists {
			continue
		}
		mod, err := l.loadPackageFile(container.CanonicalPath()+"."+leaf, container, pkg)
		if err != nil {
			l.Warnings.Add(errors.New(errors.VIS001, "submodule failed to load: "+err.Error(), nil).WithData("path", pkg.Path))
			continue
		}
		objects.AddMember(container, mod)
	}
	return nil
}

// ensureContainers walks parts under parent, creating an intermediate
// namespace Module member for each part not already present.
func (l *Loader) ensureContainers(parent *objects.Module, parts []string) *objects.Module {
	cur := parent
	for _, part := range parts {
		existing, ok := cur.Members().Get(part)
		if ok {
			if m, ok := existing.(*objects.Module); ok {
				cur = m
				continue
			}
		}
		next := objects.NewModule(part, cur)
		objects.AddMember(cur, next)
		cur = next
	}
	return cur
}

// runMemberHooks drives RunClassMembers/RunFunctionMembers/
// RunAttributeInstance/RunTypeAliasInstance over every member freshly
// visited into mod, recursing into nested classes.
func (l *Loader) runMemberHooks(mod objects.Object) {
	ctx := &extensions.Context{Warnings: l.Warnings}
	mod.Members().Each(func(_ string, child objects.Object) {
		switch c := child.(type) {
		case *objects.Class:
			l.Extensions.RunClassMembers(c, ctx)
			l.runMemberHooks(c)
		case *objects.Function:
			l.Extensions.RunFunctionMembers(c, ctx)
		case *objects.Attribute:
			l.Extensions.RunAttributeInstance(c, ctx)
		case *objects.TypeAlias:
			l.Extensions.RunTypeAliasInstance(c, ctx)
		}
	})
}

// loadExternal is plugged into Resolver.ResolveExternal when
// -U/--resolve-external is set: it loads and registers dottedPath as
// its own top-level package, so aliases into packages outside the
// requested set can still resolve.
func (l *Loader) loadExternal(dottedPath string) (*objects.Module, error) {
	top := topLevel(dottedPath)
	if existing, ok := l.Collection.Root(top); ok {
		return existing, nil
	}
	mod, err := l.LoadPackage(top)
	if err != nil {
		return nil, err
	}
	return mod, nil
}

func topLevel(dottedPath string) string {
	if i := strings.IndexByte(dottedPath, '.'); i >= 0 {
		return dottedPath[:i]
	}
	return dottedPath
}

func lastPart(dottedName string) string {
	if i := strings.LastIndexByte(dottedName, '.'); i >= 0 {
		return dottedName[i+1:]
	}
	return dottedName
}

func parentDir(filePath string) string {
	if i := strings.LastIndexByte(filePath, '/'); i >= 0 {
		return filePath[:i]
	}
	return "."
}
