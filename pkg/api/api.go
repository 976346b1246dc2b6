// Package api provides the public API for the vglsl preprocessor.
//
// This package is intended for programmatic use of the preprocessor.
// For CLI usage, see cmd/vglsl.
package api

import (
	"codeberg.org/saruga/vglsl/internal/preprocessor"
	"codeberg.org/saruga/vglsl/internal/vpath"
)

// Config controls preprocessing behavior.
type Config struct {
	// BasePath resolves relative #include names. Quoted includes and
	// angle includes without a virtual namespace match are read from
	// BasePath + "/" + name. Default: "./".
	BasePath string

	// RemoveComments strips // and /* */ comments before any other
	// processing. Default: true.
	RemoveComments bool

	// PreserveLines emits #line markers around included files so
	// downstream compilers report positions in the original sources.
	// Default: false.
	PreserveLines bool

	// MaxIncludeDepth bounds #include recursion. Default: 32.
	MaxIncludeDepth int

	// MaxOutputSize caps the expanded output in bytes. Default: 1 MiB.
	MaxOutputSize int

	// Defines predefines object-like macros before the first source
	// line, as if each were written "#define NAME VALUE".
	Defines map[string]string

	// VirtualPaths scopes virtual include resolution to a
	// caller-owned registry. When nil, the process-wide registry
	// managed by AddVirtualIncludePath is used.
	VirtualPaths *Registry
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return fromInternalConfig(preprocessor.DefaultConfig())
}

// Result contains the preprocessing outcome. Exactly one of the
// output and the error fields is populated, selected by Success.
type Result struct {
	// Success reports whether preprocessing completed without error.
	Success bool

	// Output is the fully expanded source text. Empty on failure;
	// no partial output is returned alongside an error.
	Output string

	// ErrorMessage describes the first failure encountered.
	ErrorMessage string

	// ErrorLine is the 1-based line of the failure, or 0 when the
	// failure is not tied to a line.
	ErrorLine int

	// ErrorFile is the logical file name the failure occurred in.
	ErrorFile string
}

// ParseFile reads path and preprocesses it with default settings,
// resolving includes against basePath.
func ParseFile(path, basePath string) Result {
	cfg := DefaultConfig()
	cfg.BasePath = basePath
	return ParseFileWithConfig(path, cfg)
}

// ParseFileWithConfig reads path and preprocesses it with cfg.
func ParseFileWithConfig(path string, cfg Config) Result {
	return fromInternal(preprocessor.ParseFile(path, toInternal(cfg)))
}

// ParseMemory preprocesses in-memory source with default settings.
// The filename only labels diagnostics; nothing is read from disk
// except #include targets.
func ParseMemory(source, filename string) Result {
	return ParseMemoryWithConfig(source, filename, DefaultConfig())
}

// ParseMemoryWithConfig preprocesses in-memory source with cfg.
func ParseMemoryWithConfig(source, filename string, cfg Config) Result {
	return fromInternal(preprocessor.Parse(source, filename, toInternal(cfg)))
}

func toInternal(cfg Config) preprocessor.Config {
	internal := preprocessor.Config{
		BasePath:        cfg.BasePath,
		RemoveComments:  cfg.RemoveComments,
		PreserveLines:   cfg.PreserveLines,
		MaxIncludeDepth: cfg.MaxIncludeDepth,
		MaxOutputSize:   cfg.MaxOutputSize,
		Defines:         cfg.Defines,
	}
	if cfg.VirtualPaths != nil {
		internal.VirtualPaths = cfg.VirtualPaths.reg
	}
	return internal
}

func fromInternal(r preprocessor.Result) Result {
	if r.Err != nil {
		return Result{
			ErrorMessage: r.Err.Message,
			ErrorLine:    r.Err.Line,
			ErrorFile:    r.Err.File,
		}
	}
	return Result{Success: true, Output: r.Output}
}

func fromInternalConfig(cfg preprocessor.Config) Config {
	return Config{
		BasePath:        cfg.BasePath,
		RemoveComments:  cfg.RemoveComments,
		PreserveLines:   cfg.PreserveLines,
		MaxIncludeDepth: cfg.MaxIncludeDepth,
		MaxOutputSize:   cfg.MaxOutputSize,
	}
}

// ----------------------------------------------------------------------------
// Virtual include paths
// ----------------------------------------------------------------------------

// Registry maps virtual include namespaces to real directories.
// Angle-bracket includes whose first path segment matches a
// registered namespace are read from that namespace's directory. A
// Registry is safe for concurrent use.
type Registry struct {
	reg *vpath.Registry
}

// NewRegistry creates an empty, caller-owned registry. Passing it
// through Config.VirtualPaths isolates parses from the process-wide
// registry, which keeps concurrent parses and tests independent.
func NewRegistry() *Registry {
	return &Registry{reg: vpath.NewRegistry()}
}

// Add registers a namespace or updates an existing one. It returns
// an error when the registry's entry limit is reached.
func (r *Registry) Add(name, realPath string) error {
	return r.reg.Add(name, realPath)
}

// Remove deletes a namespace; unknown names are ignored.
func (r *Registry) Remove(name string) {
	r.reg.Remove(name)
}

// Clear removes all namespaces.
func (r *Registry) Clear() {
	r.reg.Clear()
}

// Len returns the number of registered namespaces.
func (r *Registry) Len() int {
	return r.reg.Len()
}

// AddVirtualIncludePath registers a namespace in the process-wide
// registry shared by every parse without an explicit registry. It
// returns an error when the registry's entry limit is reached.
func AddVirtualIncludePath(name, realPath string) error {
	return vpath.Default().Add(name, realPath)
}

// RemoveVirtualIncludePath deletes a namespace from the process-wide
// registry; unknown names are ignored.
func RemoveVirtualIncludePath(name string) {
	vpath.Default().Remove(name)
}

// ClearVirtualIncludePaths empties the process-wide registry.
func ClearVirtualIncludePaths() {
	vpath.Default().Clear()
}
