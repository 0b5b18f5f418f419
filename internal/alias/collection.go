// Package alias implements the Alias Resolver: export
// expansion, wildcard-import expansion, lazy alias resolution through
// a Modules Collection, and class MRO via C3 linearization. Grounded
// on internal/link/topo.go's DFS-with-inPath cycle detector (retargeted
// from module-dependency cycles to alias chains). A resolved target is
// memoized on its own Alias; the Resolver keeps no lookup table.
package alias

import (
	"strings"
	"sync"

	"github.com/mkdocstrings/griffe-sub003/internal/objects"
)

// Collection is the process-wide root map
// from a top-level package name to its root Module.
type Collection struct {
	mu    sync.RWMutex
	roots map[string]*objects.Module
}

// New returns an empty Collection.
func New() *Collection {
	return &Collection{roots: make(map[string]*objects.Module)}
}

// Add registers root under its own Name() as a top-level package.
func (c *Collection) Add(root *objects.Module) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roots[root.Name()] = root
}

// Root returns the top-level Module registered under name, if any.
func (c *Collection) Root(name string) (*objects.Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	root, ok := c.roots[name]
	return root, ok
}

// Roots returns every registered top-level package name.
func (c *Collection) Roots() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.roots))
	for name := range c.roots {
		out = append(out, name)
	}
	return out
}

// Get walks a dotted path from its top-level root, following
// Alias.Target() at each step when a path segment lands on an Alias.
// It does not itself detect cycles; callers resolving an alias chain
// use Resolver.Resolve instead, which wraps this with cycle tracking.
func (c *Collection) Get(dottedPath string) (objects.Object, bool) {
	parts := strings.Split(dottedPath, ".")
	if len(parts) == 0 {
		return nil, false
	}
	root, ok := c.Root(parts[0])
	if !ok {
		return nil, false
	}
	var cur objects.Object = root
	for _, part := range parts[1:] {
		cur, ok = stepInto(cur, part)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// stepInto looks up part in cur's members, transparently following an
// already-resolved Alias so callers always land on the next concrete
// step. An unresolved Alias is returned as-is (the caller's Resolver
// drives resolution, not Get).
func stepInto(cur objects.Object, part string) (objects.Object, bool) {
	next, ok := cur.Members().Get(part)
	if !ok {
		return nil, false
	}
	if a, isAlias := next.(*objects.Alias); isAlias && a.Resolved() && a.Target() != nil {
		return a.Target(), true
	}
	return next, true
}

// LookupClass is a single-step helper used by MRO base-class resolution: it
// resolves a dotted path to a concrete *objects.Class if the final
// step is a Class or a resolved Alias targeting one.
func (c *Collection) LookupClass(dottedPath string) (*objects.Class, bool) {
	obj, ok := c.Get(dottedPath)
	if !ok {
		return nil, false
	}
	if a, isAlias := obj.(*objects.Alias); isAlias {
		obj = a.Target()
	}
	cls, ok := obj.(*objects.Class)
	return cls, ok
}
