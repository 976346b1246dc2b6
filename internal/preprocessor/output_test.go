package preprocessor

import (
	"strings"
	"testing"

	"codeberg.org/saruga/vglsl/internal/test"
)

func TestOutputBufferAppend(t *testing.T) {
	buf := newOutputBuffer(64)

	if !buf.append("hello ") {
		t.Fatal("append should succeed")
	}
	if !buf.append("world") {
		t.Fatal("append should succeed")
	}
	test.AssertEqual(t, buf.String(), "hello world")
	test.AssertEqual(t, buf.len(), 11)
}

func TestOutputBufferGrowth(t *testing.T) {
	buf := newOutputBuffer(1 << 16)

	chunk := strings.Repeat("x", 1000)
	for i := 0; i < 8; i++ {
		if !buf.append(chunk) {
			t.Fatalf("append %d should succeed", i)
		}
	}
	test.AssertEqual(t, buf.len(), 8000)
}

func TestOutputBufferLimit(t *testing.T) {
	buf := newOutputBuffer(8192)

	half := strings.Repeat("a", 5000)
	if !buf.append(half) {
		t.Fatal("first append fits under the limit")
	}
	if buf.append(half) {
		t.Error("append past the limit should fail")
	}
	// A failed append leaves the buffer unchanged.
	test.AssertEqual(t, buf.len(), 5000)

	// A smaller append that still fits must succeed afterwards.
	if !buf.append(strings.Repeat("b", 3000)) {
		t.Error("append within the remaining budget should succeed")
	}
	test.AssertEqual(t, buf.len(), 8000)
}

func TestOutputBufferExactFit(t *testing.T) {
	buf := newOutputBuffer(8192)
	if !buf.append(strings.Repeat("a", 8192)) {
		t.Error("append filling the limit exactly should succeed")
	}
	test.AssertEqual(t, buf.len(), 8192)
}
