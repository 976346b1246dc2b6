// Package preprocessor implements the vglsl preprocessing engine.
//
// The engine makes a single pass over extended GLSL source: it
// resolves #include directives (relative and namespaced virtual
// paths), expands user-defined macros, evaluates nested conditional
// blocks, strips comments, and reports the first failure with file
// and line precision.
//
// Processing is line-oriented. Each physical line is comment-stripped
// and trimmed; lines starting with '#' are dispatched to directive
// handlers, everything else is macro-expanded and appended to the
// output when the conditional stack is fully active. Directive
// recognition happens before the conditional-activity check, so every
// directive executes even inside a false branch; only plain text is
// suppressed. Processing halts at the first error and no partial
// output is returned.
package preprocessor

import (
	"os"
	"sort"
	"strings"

	"codeberg.org/saruga/vglsl/internal/macro"
	"codeberg.org/saruga/vglsl/internal/vpath"
)

const (
	// MaxLineLength is the longest physical line the engine accepts.
	// Longer lines fail with "Line too long" before any other
	// processing.
	MaxLineLength = 4096

	// DefaultMaxIncludeDepth bounds #include recursion.
	DefaultMaxIncludeDepth = 32

	// DefaultMaxOutputSize caps the expanded output, in bytes.
	DefaultMaxOutputSize = 1 << 20

	// DefaultBasePath resolves relative includes when no base path
	// is configured.
	DefaultBasePath = "./"
)

// Config controls a single parse. The zero value is not useful;
// start from DefaultConfig and override fields as needed. Zero or
// negative limits fall back to their defaults.
type Config struct {
	// BasePath is prepended to quoted include names and to angle
	// includes that match no virtual namespace. An empty base path
	// leaves include names untouched.
	BasePath string

	// RemoveComments strips // and /* */ comments before any other
	// per-line processing.
	RemoveComments bool

	// PreserveLines emits #line markers around included files so
	// downstream compilers report positions in the original sources.
	PreserveLines bool

	// MaxIncludeDepth bounds #include recursion.
	MaxIncludeDepth int

	// MaxOutputSize caps the expanded output, in bytes.
	MaxOutputSize int

	// MaxDefines caps the macro table.
	MaxDefines int

	// Defines seeds the macro table with object-like macros before
	// the first line is processed.
	Defines map[string]string

	// VirtualPaths resolves the namespace segment of angle-bracket
	// includes. When nil, the process-wide default registry is used.
	VirtualPaths *vpath.Registry
}

// DefaultConfig returns the documented defaults: base path "./",
// comments removed, no #line markers, include depth 32, output cap
// 1 MiB.
func DefaultConfig() Config {
	return Config{
		BasePath:        DefaultBasePath,
		RemoveComments:  true,
		PreserveLines:   false,
		MaxIncludeDepth: DefaultMaxIncludeDepth,
		MaxOutputSize:   DefaultMaxOutputSize,
		MaxDefines:      macro.DefaultMaxDefines,
	}
}

// Parse preprocesses source, using filename as the logical file name
// in diagnostics.
func Parse(source, filename string, cfg Config) Result {
	applyDefaults(&cfg)
	ctx := newContext(&cfg)

	ctx.seedDefines(filename)

	lastLine := 1
	if ctx.err == nil {
		lastLine, _ = ctx.processLines(source, filename)
	}

	if ctx.err == nil && ctx.cond.Depth() > 0 {
		ctx.setError("Unclosed conditional directive", lastLine, filename)
	}

	if ctx.err != nil {
		return Result{Err: ctx.err}
	}
	return Result{Output: ctx.out.String()}
}

// ParseFile reads path and preprocesses its contents, using path as
// the logical file name.
func ParseFile(path string, cfg Config) Result {
	source, err := os.ReadFile(path)
	if err != nil {
		return Result{Err: &Error{
			Message: "Failed to read file: " + path,
			File:    path,
		}}
	}
	return Parse(string(source), path, cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.MaxIncludeDepth <= 0 {
		cfg.MaxIncludeDepth = DefaultMaxIncludeDepth
	}
	if cfg.MaxOutputSize <= 0 {
		cfg.MaxOutputSize = DefaultMaxOutputSize
	}
	if cfg.MaxDefines <= 0 {
		cfg.MaxDefines = macro.DefaultMaxDefines
	}
	if cfg.VirtualPaths == nil {
		cfg.VirtualPaths = vpath.Default()
	}
}

// seedDefines installs the configured predefined macros, in name
// order so failures are deterministic.
func (ctx *Context) seedDefines(filename string) {
	if len(ctx.cfg.Defines) == 0 {
		return
	}
	names := make([]string, 0, len(ctx.cfg.Defines))
	for name := range ctx.cfg.Defines {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		err := ctx.macros.Define(macro.Macro{Name: name, Body: ctx.cfg.Defines[name]})
		if err != nil {
			ctx.setError("Too many defines", 0, filename)
			return
		}
	}
}

// processLines feeds each physical line of source through the line
// processor. It returns the line counter as it stood when processing
// stopped, for the unclosed-conditional diagnostic.
func (ctx *Context) processLines(source, filename string) (int, bool) {
	rest := source
	lineNum := 1
	for rest != "" {
		if ctx.err != nil {
			return lineNum, false
		}

		line := rest
		idx := strings.IndexByte(rest, '\n')
		if idx >= 0 {
			line = rest[:idx]
		}

		if len(line) > MaxLineLength {
			ctx.setError("Line too long", lineNum, filename)
			return lineNum, false
		}
		if !ctx.processLine(line, lineNum, filename) {
			return lineNum, false
		}

		if idx < 0 {
			break
		}
		rest = rest[idx+1:]
		lineNum++
	}
	return lineNum, true
}

// processLine strips comments, trims, and dispatches one line.
func (ctx *Context) processLine(line string, lineNum int, filename string) bool {
	if ctx.err != nil {
		return false
	}

	processed := line
	if ctx.cfg.RemoveComments {
		processed = ctx.stripper.Strip(processed)
	}
	processed = trimLine(processed)

	if strings.HasPrefix(processed, "#") {
		return ctx.processDirective(processed, lineNum, filename)
	}

	if !ctx.cond.Active() {
		return true
	}

	expanded := ctx.macros.Expand(processed)
	return ctx.appendOutput(expanded) && ctx.appendOutput("\n")
}

// trimLine removes leading blanks and trailing blanks plus line
// terminators, matching the engine's per-line normalization.
func trimLine(s string) string {
	s = strings.TrimLeft(s, " \t")
	return strings.TrimRight(s, " \t\r\n")
}
