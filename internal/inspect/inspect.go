// Package inspect defines the dynamic-inspection fallback contract:
// when static parsing cannot recover a module's API (a C extension, a
// module built at import time), the loader may fall back to importing
// the real module and inspecting it at runtime. Actually running
// Python is out of scope here; this package keeps
// the seam the loader calls through, so a real inspector could be
// plugged in without reshaping internal/loader.
package inspect

import "github.com/mkdocstrings/griffe-sub003/internal/objects"

// Fallback inspects dottedPath by whatever dynamic means it
// implements, returning the Module it would have produced statically.
type Fallback interface {
	Inspect(dottedPath string) (*objects.Module, error)
}

// UnsupportedError is returned by Disabled and by any Fallback that
// chooses not to handle a given path.
type UnsupportedError struct {
	DottedPath string
}

func (e *UnsupportedError) Error() string {
	return "dynamic inspection not available for " + e.DottedPath
}

// Disabled is the zero-configuration Fallback: it always declines,
// matching `-X/--no-inspection` and the default when no fallback was
// configured.
type Disabled struct{}

func (Disabled) Inspect(dottedPath string) (*objects.Module, error) {
	return nil, &UnsupportedError{DottedPath: dottedPath}
}
