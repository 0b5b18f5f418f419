// Package finder implements the Module Finder:
// translating a dotted module name into a physical path (or a set of
// namespace-package directories), respecting accepted source
// extensions, .pth search-path extension files, and an optional
// "-stubs" companion package. Grounded on
// internal/module/resolver.go, which walks an ordered list of search
// roots testing candidate suffixes per root exactly the same way,
// generalized here from AILANG's single `.ail` extension to Python's
// extension-priority list.
package finder

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/mkdocstrings/griffe-sub003/internal/errors"
	"github.com/mkdocstrings/griffe-sub003/internal/pos"
)

// extensions lists accepted source extensions in priority order:
// .py always wins over compiled variants.
var extensions = []string{".py", ".pyc", ".pyo", ".pyd", ".pyi", ".so"}

// Package is a regular package or single-file module located on disk.
type Package struct {
	Name      string
	Path      string // source file, or __init__.py for a package
	StubsPath string // companion .pyi, if any
	IsInit    bool
}

// NamespacePackage is a directory with no __init__ found on any search
// path, aggregated across every search path that contributed one.
type NamespacePackage struct {
	Name  string
	Paths []string
}

// Result is exactly one of Package or Namespace.
type Result struct {
	Package   *Package
	Namespace *NamespacePackage
}

// Finder locates modules across an ordered list of search paths.
type Finder struct {
	SearchPaths       []string
	FindStubsPackages bool
}

// New builds a Finder over the given search paths, expanding any .pth
// files found at each path's top level.
func New(searchPaths []string, findStubsPackages bool) *Finder {
	return &Finder{SearchPaths: expandPthFiles(searchPaths), FindStubsPackages: findStubsPackages}
}

// expandPthFiles appends, after each search path, any additional paths
// named by *.pth files directly inside it.
func expandPthFiles(searchPaths []string) []string {
	var out []string
	for _, sp := range searchPaths {
		out = append(out, sp)
		entries, err := os.ReadDir(sp)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".pth") {
				continue
			}
			out = append(out, readPthFile(filepath.Join(sp, e.Name()), sp)...)
		}
	}
	return out
}

func readPthFile(path, base string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var extra []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "import ") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		extra = append(extra, line)
	}
	return extra
}

// Find locates dotted module name name across f's search paths.
// The first search path to produce
// a Package wins outright; namespace-package candidates accumulate
// across every search path until a regular package is found.
func (f *Finder) Find(name string) (*Result, error) {
	parts := strings.Split(name, ".")
	var namespaceDirs []string
	var stubsOnlyPath string

	for _, root := range f.SearchPaths {
		dir := filepath.Join(append([]string{root}, parts...)...)

		if pkg := f.tryInitPackage(name, dir); pkg != nil {
			return &Result{Package: pkg}, nil
		}
		if pkg := f.tryFileModule(name, root, parts); pkg != nil {
			return &Result{Package: pkg}, nil
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			namespaceDirs = append(namespaceDirs, dir)
		}
		if stubsOnlyPath == "" && f.FindStubsPackages {
			stubsInit := filepath.Join(dir+"-stubs", "__init__.pyi")
			if fileExists(stubsInit) {
				stubsOnlyPath = stubsInit
			}
		}
	}

	if len(namespaceDirs) > 0 {
		return &Result{Namespace: &NamespacePackage{Name: name, Paths: namespaceDirs}}, nil
	}

	// Stubs-only package: name itself was never found anywhere, but a
	// name-stubs companion was; it loads as if it were name.
	if stubsOnlyPath != "" {
		return &Result{Package: &Package{Name: name, Path: stubsOnlyPath, IsInit: true}}, nil
	}

	span := &pos.Span{}
	return nil, errors.WrapReport(errors.New(errors.FND001, "module not found: "+name, span).WithData("name", name))
}

// tryInitPackage tests dir/__init__.py then dir/__init__.pyi.
func (f *Finder) tryInitPackage(name, dir string) *Package {
	for _, ext := range []string{".py", ".pyi"} {
		initPath := filepath.Join(dir, "__init__"+ext)
		if fileExists(initPath) {
			pkg := &Package{Name: name, Path: initPath, IsInit: true}
			f.attachStubsOrSibling(pkg, dir, name)
			return pkg
		}
	}
	return nil
}

// tryFileModule tests root/a/b/c.<ext> for each accepted extension,
// .py always winning when both a .py and a compiled variant exist.
func (f *Finder) tryFileModule(name, root string, parts []string) *Package {
	leaf := filepath.Join(append([]string{root}, parts[:len(parts)-1]...)...)
	base := filepath.Join(leaf, parts[len(parts)-1])
	for _, ext := range extensions {
		candidate := base + ext
		if fileExists(candidate) {
			pkg := &Package{Name: name, Path: candidate}
			if ext != ".pyi" {
				stub := base + ".pyi"
				if fileExists(stub) {
					pkg.StubsPath = stub
				}
			}
			return pkg
		}
	}
	return nil
}

// attachStubsOrSibling attaches dir/__init__.pyi as this package's
// stubs companion when it exists and is not the package file itself;
// when find-stubs-packages is enabled, a sibling `name-stubs`
// package's __init__.pyi is attached instead.
func (f *Finder) attachStubsOrSibling(pkg *Package, dir, name string) {
	stubInit := filepath.Join(dir, "__init__.pyi")
	if pkg.Path != stubInit && fileExists(stubInit) {
		pkg.StubsPath = stubInit
	}
	if !f.FindStubsPackages {
		return
	}
	stubsDir := dir + "-stubs"
	stubsInit := filepath.Join(stubsDir, "__init__.pyi")
	if fileExists(stubsInit) {
		pkg.StubsPath = stubsInit
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SubmoduleIterator yields (name_parts, filepath) for every submodule
// reachable under a found package or namespace package, honoring a
// .griffeignore file (same syntax as .gitignore) at the package root.
type SubmoduleIterator struct {
	roots  []string
	ignore *ignore.GitIgnore
}

// NewSubmoduleIterator builds an iterator over roots (a single-element
// slice for a regular package, or NamespacePackage.Paths for a
// namespace package), loading .griffeignore from the first root if
// present.
func NewSubmoduleIterator(roots []string) *SubmoduleIterator {
	it := &SubmoduleIterator{roots: roots}
	if len(roots) > 0 {
		ignorePath := filepath.Join(roots[0], ".griffeignore")
		if fileExists(ignorePath) {
			if gi, err := ignore.CompileIgnoreFile(ignorePath); err == nil {
				it.ignore = gi
			}
		}
	}
	return it
}

// Submodule is one (name_parts, filepath) entry.
type Submodule struct {
	NameParts []string
	FilePath  string
}

// Iterate walks every root directory, yielding a Submodule for each
// .py/.pyi file found, skipping entries shadowed by an earlier root
// (by relative path) and anything matched by .griffeignore.
func (it *SubmoduleIterator) Iterate() []Submodule {
	seen := map[string]bool{}
	var out []Submodule
	for _, root := range it.roots {
		filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			if it.ignore != nil && it.ignore.MatchesPath(rel) {
				return nil
			}
			if !strings.HasSuffix(path, ".py") && !strings.HasSuffix(path, ".pyi") {
				return nil
			}
			if seen[rel] {
				return nil
			}
			seen[rel] = true
			out = append(out, Submodule{NameParts: partsFromRelPath(rel), FilePath: path})
			return nil
		})
	}
	return out
}

func partsFromRelPath(rel string) []string {
	rel = strings.TrimSuffix(rel, ".pyi")
	rel = strings.TrimSuffix(rel, ".py")
	rel = strings.TrimSuffix(rel, string(filepath.Separator)+"__init__")
	if rel == "__init__" {
		return nil
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
