package objects

import "github.com/mkdocstrings/griffe-sub003/internal/expr"

// ExportKind distinguishes a literal string in __all__ from a name that
// refers to another module's own expanded __all__.
type ExportKind int

const (
	ExportLiteral ExportKind = iota
	ExportModuleAll
)

// Export is one pre-expansion entry of a module's __all__ list.
type Export struct {
	ExprKind ExportKind
	Name     string    // literal name, when ExprKind == ExportLiteral
	ModuleRef expr.Expr // expression naming the other module, when ExportModuleAll
}

// Module is the root-or-package object kind.
type Module struct {
	common

	// FilePath is the single source file for a regular module. Empty
	// for namespace packages (use Directories) and built-ins (use
	// neither and set IsBuiltin).
	FilePath string

	// Directories holds the search directories for a namespace package.
	Directories []string

	// IsBuiltin marks a module with no filesystem path at all.
	IsBuiltin bool

	// StubsPath is the companion .pyi path, if any.
	StubsPath string

	// IsInitModule records whether this Module was parsed from an
	// __init__.py/__init__.pyi rather than a bare file module of the
	// same name; package-ness follows from this plus Directories.
	IsInitModule bool

	// Exports is the module's __all__ list before expansion. After the
	// Alias Resolver's export-expansion phase, ExpandedExports holds
	// the flattened, deduplicated, in-order result.
	Exports         []Export
	ExpandedExports []string
	exportsExpanded bool

	// Overloads maps a module-level function name to its @overload
	// siblings, mirroring Class.Overloads.
	Overloads map[string][]*Function
}

// NewModule creates a Module object. parent is nil for a root module.
func NewModule(name string, parent Object) *Module {
	return &Module{common: newCommon(name, parent), Overloads: make(map[string][]*Function)}
}

func (m *Module) Kind() Kind { return KindModule }

func (m *Module) Resolve(name string) (expr.Scope, error) {
	return m.common.resolve(m, name)
}

// IsPackage reports whether this module is a package rather than a
// leaf file module: an __init__ module, or one with directories
// recorded.
func (m *Module) IsPackage() bool {
	return len(m.Directories) > 0 || m.IsInitModule
}

// ExportsExpanded reports whether export expansion
// has run for this module yet; resolving is idempotent.
func (m *Module) ExportsExpanded() bool { return m.exportsExpanded }

func (m *Module) SetExpandedExports(names []string) {
	m.ExpandedExports = names
	m.exportsExpanded = true
}
