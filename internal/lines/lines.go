// Package lines implements the Lines Collection: a cache
// mapping filesystem path to the split source lines of that file, so
// docstring/signature rendering and diagnostics can slice out a
// snippet without re-reading and re-splitting the file on every call.
// Grounded on internal/module.Loader's file cache
// (internal/module/loader.go), which memoizes parsed files by path the
// same way.
package lines

import (
	"os"
	"strings"
	"sync"
)

// Collection is a concurrency-safe cache of path -> source lines.
type Collection struct {
	mu    sync.RWMutex
	cache map[string][]string
}

// New returns an empty Collection.
func New() *Collection {
	return &Collection{cache: make(map[string][]string)}
}

// Lines returns the split lines of path, reading and caching the file
// on first access. The returned slice must not be mutated by callers.
func (c *Collection) Lines(path string) ([]string, error) {
	c.mu.RLock()
	if ls, ok := c.cache[path]; ok {
		c.mu.RUnlock()
		return ls, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ls := splitLines(string(data))

	c.mu.Lock()
	c.cache[path] = ls
	c.mu.Unlock()
	return ls, nil
}

// Put seeds the cache directly, used when source text is already in
// memory (e.g. a file parsed from a string in tests).
func (c *Collection) Put(path, source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[path] = splitLines(source)
}

// Snippet returns lines [start, end] (1-based, inclusive) of path.
func (c *Collection) Snippet(path string, start, end int) ([]string, error) {
	ls, err := c.Lines(path)
	if err != nil {
		return nil, err
	}
	if start < 1 {
		start = 1
	}
	if end > len(ls) {
		end = len(ls)
	}
	if start > end {
		return nil, nil
	}
	return ls[start-1 : end], nil
}

func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.Split(source, "\n")
}
