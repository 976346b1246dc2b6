package preprocessor

import (
	"fmt"

	"codeberg.org/saruga/vglsl/internal/comment"
	"codeberg.org/saruga/vglsl/internal/conditional"
	"codeberg.org/saruga/vglsl/internal/macro"
)

// Error is a preprocessing failure with its source position. Line is
// 1-based; a zero line means the failure is not tied to a line.
type Error struct {
	Message string
	Line    int
	File    string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return e.Message
}

// Result is the outcome of one parse. Exactly one of Output and Err
// is populated: Err == nil means success and Output holds the fully
// expanded text.
type Result struct {
	Output string
	Err    *Error
}

// Success reports whether the parse completed without error.
func (r Result) Success() bool {
	return r.Err == nil
}

// Context carries all state for one parse: the macro table, the
// conditional stack, the output accumulator, the first-error slot,
// the include depth counter, carried comment-stripper state, and a
// read-only reference to the configuration. A Context lives for
// exactly one top-level parse; included files share it.
type Context struct {
	macros       *macro.Table
	cond         conditional.Stack
	out          outputBuffer
	stripper     comment.Stripper
	cfg          *Config
	includeDepth int
	err          *Error
}

func newContext(cfg *Config) *Context {
	return &Context{
		macros: macro.NewTable(cfg.MaxDefines),
		out:    newOutputBuffer(cfg.MaxOutputSize),
		cfg:    cfg,
	}
}

// setError records the first failure; later calls are no-ops, so
// diagnostics point at the earliest root cause.
func (ctx *Context) setError(message string, line int, file string) {
	if ctx.err != nil {
		return
	}
	ctx.err = &Error{Message: message, Line: line, File: file}
}

// appendOutput appends text to the accumulator, failing the parse
// when the configured output cap cannot hold it.
func (ctx *Context) appendOutput(text string) bool {
	if !ctx.out.append(text) {
		ctx.setError("Output size exceeded maximum limit", 0, "")
		return false
	}
	return true
}
