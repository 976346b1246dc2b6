// Package vpath maps virtual include namespaces to real directories.
//
// An angle-bracket include like #include <Engine/common.glsl> is
// resolved by matching the first path segment ("Engine") against the
// registered namespaces and substituting that namespace's real
// directory. Quoted includes never consult the registry.
//
// A Registry is safe for concurrent use. Callers are encouraged to
// construct their own Registry and pass it through the parse
// configuration; the process-wide Default registry backs the
// package-level convenience functions in pkg/api.
package vpath

import (
	"strings"
	"sync"
)

// DefaultMaxEntries is the registry ceiling used when no limit is
// configured.
const DefaultMaxEntries = 32

// Entry maps one virtual namespace to a real directory.
type Entry struct {
	// Name is the namespace matched against the first path segment
	// of an angle-bracket include. Compared case-sensitively.
	Name string

	// RealPath is the directory substituted for the namespace.
	RealPath string
}

// ErrTooManyEntries is returned by Add when the registry is full.
var ErrTooManyEntries = registryError("too many virtual include paths")

type registryError string

func (e registryError) Error() string { return string(e) }

// Registry is a bounded table of virtual include paths.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
}

// NewRegistry creates an empty registry holding at most
// DefaultMaxEntries entries.
func NewRegistry() *Registry {
	return NewRegistrySize(DefaultMaxEntries)
}

// NewRegistrySize creates an empty registry holding at most limit
// entries. A limit <= 0 uses DefaultMaxEntries.
func NewRegistrySize(limit int) *Registry {
	if limit <= 0 {
		limit = DefaultMaxEntries
	}
	return &Registry{limit: limit}
}

// Add registers a namespace or updates the real path of an existing
// one. It returns ErrTooManyEntries when a new entry would exceed
// the registry limit.
func (r *Registry) Add(name, realPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].Name == name {
			r.entries[i].RealPath = realPath
			return nil
		}
	}
	if len(r.entries) >= r.limit {
		return ErrTooManyEntries
	}
	r.entries = append(r.entries, Entry{Name: name, RealPath: realPath})
	return nil
}

// Remove deletes the namespace if registered, preserving the order
// of the remaining entries. Removing an unknown name is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].Name == name {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Clear removes all entries.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// Len returns the number of registered namespaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Resolve matches the first path segment of includePath against the
// registered namespaces. On a match it returns the real directory
// joined with the remaining path. A path without a '/' has no
// namespace segment and never matches.
func (r *Registry) Resolve(includePath string) (string, bool) {
	slash := strings.IndexByte(includePath, '/')
	if slash < 0 {
		return "", false
	}
	name := includePath[:slash]

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].Name == name {
			return r.entries[i].RealPath + includePath[slash:], true
		}
	}
	return "", false
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by parses whose
// configuration does not carry an explicit registry.
func Default() *Registry {
	return defaultRegistry
}
