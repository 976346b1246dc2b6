package preprocessor

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/saruga/vglsl/internal/macro"
)

// processDirective handles a trimmed line starting with '#'. All
// directives run regardless of conditional state; only plain text is
// suppressed inside false branches. Unrecognized directives (such as
// #version or #extension) pass through to the output unchanged.
func (ctx *Context) processDirective(line string, lineNum int, filename string) bool {
	directive := trimLine(line[1:])

	switch {
	case strings.HasPrefix(directive, "include"):
		return ctx.processInclude(directive, lineNum, filename)

	case strings.HasPrefix(directive, "define"):
		return ctx.processDefine(directive[len("define"):], lineNum, filename)

	case strings.HasPrefix(directive, "undef"):
		name := trimLine(directive[len("undef"):])
		ctx.macros.Undef(name)
		return true

	case strings.HasPrefix(directive, "ifdef"):
		name := trimLine(directive[len("ifdef"):])
		return ctx.pushConditional(ctx.macros.Lookup(name) != nil, lineNum, filename)

	case strings.HasPrefix(directive, "ifndef"):
		name := trimLine(directive[len("ifndef"):])
		return ctx.pushConditional(ctx.macros.Lookup(name) == nil, lineNum, filename)

	case directive == "else":
		if !ctx.cond.Else() {
			ctx.setError("#else without #ifdef/#ifndef", lineNum, filename)
			return false
		}
		return true

	case directive == "endif":
		if !ctx.cond.Pop() {
			ctx.setError("#endif without #ifdef/#ifndef", lineNum, filename)
			return false
		}
		return true
	}

	return ctx.appendOutput(line) && ctx.appendOutput("\n")
}

func (ctx *Context) pushConditional(cond bool, lineNum int, filename string) bool {
	if !ctx.cond.Push(cond) {
		ctx.setError("Too many nested conditionals", lineNum, filename)
		return false
	}
	return true
}

// processDefine parses "#define NAME [VALUE]" or
// "#define NAME(p1,p2,...) VALUE". Parameter names are recorded on
// the macro but arguments are not substituted at call sites; the
// body is fixed at definition time.
func (ctx *Context) processDefine(arg string, lineNum int, filename string) bool {
	arg = strings.TrimLeft(arg, " \t")

	nameEnd := 0
	for nameEnd < len(arg) {
		c := arg[nameEnd]
		if c == ' ' || c == '\t' || c == '(' {
			break
		}
		nameEnd++
	}
	if nameEnd == 0 {
		ctx.setError("Invalid define directive", lineNum, filename)
		return false
	}

	m := macro.Macro{Name: arg[:nameEnd]}
	rest := arg[nameEnd:]

	if strings.HasPrefix(rest, "(") {
		closeParen := strings.IndexByte(rest, ')')
		if closeParen < 0 {
			ctx.setError("Invalid define directive", lineNum, filename)
			return false
		}
		m.FunctionLike = true
		if params := strings.TrimSpace(rest[1:closeParen]); params != "" {
			for _, p := range strings.Split(params, ",") {
				m.Params = append(m.Params, strings.TrimSpace(p))
			}
		}
		m.Body = strings.TrimLeft(rest[closeParen+1:], " \t")
	} else {
		m.Body = strings.TrimLeft(rest, " \t")
	}

	if err := ctx.macros.Define(m); err != nil {
		ctx.setError("Too many defines", lineNum, filename)
		return false
	}
	return true
}

// processInclude resolves and recursively preprocesses an include
// target into the same Context, so the included file sees (and can
// change) the including file's macros and conditional state.
func (ctx *Context) processInclude(directive string, lineNum int, filename string) bool {
	if ctx.includeDepth >= ctx.cfg.MaxIncludeDepth {
		ctx.setError("Maximum include depth exceeded", lineNum, filename)
		return false
	}

	name, angled, ok := parseIncludeTarget(directive)
	if !ok {
		if strings.ContainsAny(directive, "\"<") {
			ctx.setError("Unterminated include filename", lineNum, filename)
		} else {
			ctx.setError("Invalid include directive", lineNum, filename)
		}
		return false
	}

	fullPath := ctx.resolveInclude(name, angled)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		ctx.setError("Failed to read include file: "+fullPath, lineNum, filename)
		return false
	}

	ctx.includeDepth++
	if ctx.cfg.PreserveLines {
		ctx.appendOutput(fmt.Sprintf("#line 1 %q\n", fullPath))
	}

	_, ok = ctx.processLines(string(content), fullPath)

	ctx.includeDepth--

	if ctx.cfg.PreserveLines && ok {
		ctx.appendOutput(fmt.Sprintf("#line %d %q\n", lineNum+1, filename))
	}
	return ok
}

// parseIncludeTarget extracts the filename from an include directive,
// accepting "name" or <name>. Whichever delimiter appears first wins.
func parseIncludeTarget(directive string) (name string, angled bool, ok bool) {
	quote := strings.IndexByte(directive, '"')
	angle := strings.IndexByte(directive, '<')

	var start int
	var closer byte
	switch {
	case quote >= 0 && (angle < 0 || quote < angle):
		start, closer = quote+1, '"'
	case angle >= 0:
		start, closer, angled = angle+1, '>', true
	default:
		return "", false, false
	}

	end := strings.IndexByte(directive[start:], closer)
	if end < 0 {
		return "", false, false
	}
	return directive[start : start+end], angled, true
}

// resolveInclude maps an include name to a filesystem path. Angle
// includes consult the virtual path registry first; everything else
// resolves against the configured base path.
func (ctx *Context) resolveInclude(name string, angled bool) string {
	if angled {
		if resolved, ok := ctx.cfg.VirtualPaths.Resolve(name); ok {
			return resolved
		}
	}
	if ctx.cfg.BasePath == "" {
		return name
	}
	return ctx.cfg.BasePath + "/" + name
}
