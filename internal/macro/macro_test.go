package macro

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefineAndLookup(t *testing.T) {
	table := NewTable(0)

	if err := table.Define(Macro{Name: "PI", Body: "3.14159"}); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	m := table.Lookup("PI")
	if m == nil {
		t.Fatal("expected PI to be defined")
	}
	if m.Body != "3.14159" {
		t.Errorf("body: got %q, want %q", m.Body, "3.14159")
	}

	if table.Lookup("pi") != nil {
		t.Error("lookup should be case-sensitive")
	}
}

func TestDefineOverwrites(t *testing.T) {
	table := NewTable(0)

	if err := table.Define(Macro{Name: "N", Body: "1"}); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if err := table.Define(Macro{Name: "N", Body: "2"}); err != nil {
		t.Fatalf("redefine failed: %v", err)
	}

	if got := table.Lookup("N").Body; got != "2" {
		t.Errorf("body after redefine: got %q, want %q", got, "2")
	}
	if table.Len() != 1 {
		t.Errorf("Len: got %d, want 1", table.Len())
	}
}

func TestDefineLimit(t *testing.T) {
	table := NewTable(2)

	if err := table.Define(Macro{Name: "A"}); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if err := table.Define(Macro{Name: "B"}); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if err := table.Define(Macro{Name: "C"}); err != ErrTooManyDefines {
		t.Errorf("got %v, want ErrTooManyDefines", err)
	}

	// Redefining an existing macro must still work at the limit.
	if err := table.Define(Macro{Name: "A", Body: "x"}); err != nil {
		t.Errorf("redefine at limit failed: %v", err)
	}
}

func TestUndef(t *testing.T) {
	table := NewTable(0)
	table.Define(Macro{Name: "A"})
	table.Define(Macro{Name: "B"})
	table.Define(Macro{Name: "C"})

	table.Undef("B")
	if table.Lookup("B") != nil {
		t.Error("B should be removed")
	}
	if table.Lookup("A") == nil || table.Lookup("C") == nil {
		t.Error("A and C should survive")
	}

	// Removing an unknown name is a no-op.
	table.Undef("missing")
	if table.Len() != 2 {
		t.Errorf("Len: got %d, want 2", table.Len())
	}
}

func TestExpand(t *testing.T) {
	table := NewTable(0)
	table.Define(Macro{Name: "PI", Body: "3.14"})
	table.Define(Macro{Name: "TWO_PI", Body: "6.28"})
	table.Define(Macro{Name: "EMPTY", Body: ""})
	table.Define(Macro{Name: "A", Body: "B"})
	table.Define(Macro{Name: "B", Body: "C"})
	table.Define(Macro{Name: "MAX", Body: "((a) > (b) ? (a) : (b))", Params: []string{"a", "b"}, FunctionLike: true})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "float r = PI * 2.0;", "float r = 3.14 * 2.0;"},
		{"no macros", "float r = 2.0;", "float r = 2.0;"},
		{"whole word only", "SPIN PIX PI", "SPIN PIX 3.14"},
		{"longest identifier wins", "TWO_PI", "6.28"},
		{"no rescan of body", "A", "B"},
		{"empty body", "x EMPTY y", "x  y"},
		{"adjacent punctuation", "(PI)", "(3.14)"},
		{"inert function macro args", "MAX(x, y)", "((a) > (b) ? (a) : (b))(x, y)"},
		{"underscore start", "_PI PI_", "_PI PI_"},
		{"empty line", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Expand(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandEmptyTable(t *testing.T) {
	table := NewTable(0)
	if got := table.Expand("PI"); got != "PI" {
		t.Errorf("got %q, want %q", got, "PI")
	}
}
