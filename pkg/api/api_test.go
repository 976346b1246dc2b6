package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeShader(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestParseMemory(t *testing.T) {
	result := ParseMemory("#define PI 3.14\nfloat r = PI;\n", "test.glsl")

	if !result.Success {
		t.Fatalf("parse failed: %s", result.ErrorMessage)
	}
	if result.Output != "float r = 3.14;\n" {
		t.Errorf("output: got %q", result.Output)
	}
}

func TestParseMemoryConditionals(t *testing.T) {
	source := strings.Join([]string{
		"#define DEBUG",
		"#ifdef DEBUG",
		"float dbg = 1.0;",
		"#else",
		"float dbg = 0.0;",
		"#endif",
	}, "\n")

	result := ParseMemory(source, "test.glsl")
	if !result.Success {
		t.Fatalf("parse failed: %s", result.ErrorMessage)
	}
	if result.Output != "float dbg = 1.0;\n" {
		t.Errorf("output: got %q", result.Output)
	}
}

func TestParseMemoryError(t *testing.T) {
	result := ParseMemory("float a;\n#endif\n", "shader.glsl")

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Output != "" {
		t.Errorf("no partial output should accompany an error, got %q", result.Output)
	}
	if result.ErrorMessage != "#endif without #ifdef/#ifndef" {
		t.Errorf("message: got %q", result.ErrorMessage)
	}
	if result.ErrorLine != 2 {
		t.Errorf("line: got %d, want 2", result.ErrorLine)
	}
	if result.ErrorFile != "shader.glsl" {
		t.Errorf("file: got %q, want %q", result.ErrorFile, "shader.glsl")
	}
}

func TestParseMemoryWithConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defines = map[string]string{"MAX_LIGHTS": "8"}

	result := ParseMemoryWithConfig("int lights[MAX_LIGHTS];", "test.glsl", cfg)
	if !result.Success {
		t.Fatalf("parse failed: %s", result.ErrorMessage)
	}
	if result.Output != "int lights[8];\n" {
		t.Errorf("output: got %q", result.Output)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, dir, "common.glsl", "uniform mat4 u_model;\n")
	path := writeShader(t, dir, "main.vglsl", "#include \"common.glsl\"\nvoid main() {}\n")

	result := ParseFile(path, dir)
	if !result.Success {
		t.Fatalf("parse failed: %s", result.ErrorMessage)
	}
	want := "uniform mat4 u_model;\nvoid main() {}\n"
	if diff := cmp.Diff(want, result.Output); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.vglsl")
	result := ParseFile(path, "")

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorMessage != "Failed to read file: "+path {
		t.Errorf("message: got %q", result.ErrorMessage)
	}
}

func TestProcessWideVirtualPaths(t *testing.T) {
	t.Cleanup(ClearVirtualIncludePaths)

	dir := t.TempDir()
	writeShader(t, dir, "lighting.glsl", "vec3 ambient();\n")

	if err := AddVirtualIncludePath("Engine", dir); err != nil {
		t.Fatalf("AddVirtualIncludePath failed: %v", err)
	}

	result := ParseMemory("#include <Engine/lighting.glsl>\n", "main.vglsl")
	if !result.Success {
		t.Fatalf("parse failed: %s", result.ErrorMessage)
	}
	if !strings.Contains(result.Output, "vec3 ambient();") {
		t.Errorf("virtual include content missing:\n%s", result.Output)
	}

	RemoveVirtualIncludePath("Engine")
	result = ParseMemory("#include <Engine/lighting.glsl>\n", "main.vglsl")
	if result.Success {
		t.Error("removed namespace should no longer resolve")
	}
}

func TestCallerOwnedRegistry(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, dir, "common.glsl", "from registry\n")

	reg := NewRegistry()
	if err := reg.Add("App", dir); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len: got %d, want 1", reg.Len())
	}

	cfg := DefaultConfig()
	cfg.VirtualPaths = reg
	result := ParseMemoryWithConfig("#include <App/common.glsl>\n", "main.vglsl", cfg)
	if !result.Success {
		t.Fatalf("parse failed: %s", result.ErrorMessage)
	}
	if !strings.Contains(result.Output, "from registry") {
		t.Errorf("registry include content missing:\n%s", result.Output)
	}

	// The caller-owned registry is invisible to parses that do not
	// carry it.
	result = ParseMemory("#include <App/common.glsl>\n", "main.vglsl")
	if result.Success {
		t.Error("caller-owned namespace should not leak into the default registry")
	}

	reg.Clear()
	if reg.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", reg.Len())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BasePath != "./" {
		t.Errorf("BasePath: got %q, want %q", cfg.BasePath, "./")
	}
	if !cfg.RemoveComments {
		t.Error("RemoveComments should default to true")
	}
	if cfg.PreserveLines {
		t.Error("PreserveLines should default to false")
	}
	if cfg.MaxIncludeDepth != 32 {
		t.Errorf("MaxIncludeDepth: got %d, want 32", cfg.MaxIncludeDepth)
	}
	if cfg.MaxOutputSize != 1<<20 {
		t.Errorf("MaxOutputSize: got %d, want %d", cfg.MaxOutputSize, 1<<20)
	}
}
