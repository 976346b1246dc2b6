// Package macro implements the preprocessor macro table and the
// substitution pass used to expand macro names in source lines.
//
// Expansion is a single left-to-right scan: a substituted body is
// emitted verbatim and is not rescanned for further macro names, so
// macros never expand recursively. Function-like macros record their
// declared parameter names, but call-site arguments are not
// substituted into the body; the parenthesized argument text passes
// through to the output untouched.
package macro

// DefaultMaxDefines is the macro table ceiling used when no limit is
// configured.
const DefaultMaxDefines = 256

// Macro is a single preprocessor definition created by #define.
type Macro struct {
	// Name is the identifier the macro is looked up by. Names are
	// compared case-sensitively.
	Name string

	// Body is the replacement text, fixed at definition time.
	Body string

	// Params holds the declared parameter names for function-like
	// macros, in declaration order. Empty for object-like macros.
	Params []string

	// FunctionLike reports whether the macro was declared with a
	// parenthesized parameter list.
	FunctionLike bool
}

// Table maps macro names to their definitions. Definition order is
// preserved; lookups are linear scans, which is fine for the small
// counts shader sources use. A Table is scoped to one parse and
// discarded afterwards.
type Table struct {
	macros []Macro
	limit  int
}

// NewTable creates a macro table that holds at most limit macros.
// A limit <= 0 uses DefaultMaxDefines.
func NewTable(limit int) *Table {
	if limit <= 0 {
		limit = DefaultMaxDefines
	}
	return &Table{limit: limit}
}

// Len returns the number of defined macros.
func (t *Table) Len() int {
	return len(t.macros)
}

// Lookup returns the macro with the given name, or nil.
func (t *Table) Lookup(name string) *Macro {
	for i := range t.macros {
		if t.macros[i].Name == name {
			return &t.macros[i]
		}
	}
	return nil
}

// Define adds a macro or replaces an existing definition with the
// same name. It reports ErrTooManyDefines when a new entry would
// exceed the table limit.
func (t *Table) Define(m Macro) error {
	if existing := t.Lookup(m.Name); existing != nil {
		*existing = m
		return nil
	}
	if len(t.macros) >= t.limit {
		return ErrTooManyDefines
	}
	t.macros = append(t.macros, m)
	return nil
}

// Undef removes the macro with the given name, preserving the order
// of the remaining entries. Removing an unknown name is a no-op.
func (t *Table) Undef(name string) {
	for i := range t.macros {
		if t.macros[i].Name == name {
			t.macros = append(t.macros[:i], t.macros[i+1:]...)
			return
		}
	}
}

// ErrTooManyDefines is returned by Define when the table is full.
var ErrTooManyDefines = tableError("too many defines")

type tableError string

func (e tableError) Error() string { return string(e) }

// Expand substitutes macro bodies for macro names in line.
//
// The scan is byte-oriented: a run of identifier characters starting
// with a letter or underscore is looked up in the table, and on a hit
// the stored body replaces the identifier. Scanning resumes after the
// replacement, never inside it. Everything else is copied through
// unchanged.
func (t *Table) Expand(line string) string {
	if len(t.macros) == 0 {
		return line
	}

	var out []byte
	for i := 0; i < len(line); {
		c := line[i]
		if !isIdentStart(c) {
			out = append(out, c)
			i++
			continue
		}

		j := i + 1
		for j < len(line) && isIdentPart(line[j]) {
			j++
		}
		name := line[i:j]
		if m := t.Lookup(name); m != nil {
			out = append(out, m.Body...)
		} else {
			out = append(out, name...)
		}
		i = j
	}
	return string(out)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
