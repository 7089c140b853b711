package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"baik/interpreter-go/pkg/parser"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestFileName)
	writeFile(t, path, `
name: Time Machine
version: 1.2.0-beta
authors: Doc Brown
sources:
  - src
  - scripts/main.ina
targets:
  app:
    type: script
    main: scripts/main.ina
  Core Lib:
    type: library
parser:
  mode: input
  max_nesting: 64
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if m.Name != "time_machine" {
		t.Fatalf("expected sanitized name, got %q", m.Name)
	}
	if !reflect.DeepEqual(m.Authors, []string{"Doc Brown"}) {
		t.Fatalf("expected single author, got %v", m.Authors)
	}
	if !reflect.DeepEqual(m.TargetOrder, []string{"app", "core_lib"}) {
		t.Fatalf("unexpected target order %v", m.TargetOrder)
	}
	target, err := m.DefaultScriptTarget()
	if err != nil || target.Main != "scripts/main.ina" {
		t.Fatalf("unexpected default target %v, %v", target, err)
	}
	if got := m.MainPath(target); got != filepath.Join(root, "scripts", "main.ina") {
		t.Fatalf("unexpected main path %q", got)
	}
	lib, ok := m.FindTarget("Core Lib")
	if !ok || lib.Type != TargetTypeLibrary {
		t.Fatalf("expected library target, got %v", lib)
	}
	if got := m.MainPath(lib); got != "" {
		t.Fatalf("expected no main path for library, got %q", got)
	}
	want := []string{filepath.Join(root, "src"), filepath.Join(root, "scripts", "main.ina")}
	if got := m.SourcePaths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sources %v, got %v", want, got)
	}

	mode, opts, err := m.ParserOptions(nil)
	if err != nil {
		t.Fatalf("ParserOptions returned error: %v", err)
	}
	if mode != parser.ModeInput || opts.MaxNesting != 64 {
		t.Fatalf("unexpected parser settings %s %+v", mode, opts)
	}
}

func TestManifestDefaults(t *testing.T) {
	m, err := ParseManifest([]byte("name: demo\n"), "/work/baik.yml")
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}
	if got := m.SourcePaths(); !reflect.DeepEqual(got, []string{"/work"}) {
		t.Fatalf("expected manifest directory as source, got %v", got)
	}
	mode, _, err := m.ParserOptions(nil)
	if err != nil || mode != parser.ModeFile {
		t.Fatalf("expected file mode by default, got %s %v", mode, err)
	}
	if _, err := m.DefaultScriptTarget(); !errors.Is(err, ErrNoScriptTarget) {
		t.Fatalf("expected ErrNoScriptTarget, got %v", err)
	}
}

func TestManifestValidation(t *testing.T) {
	_, err := ParseManifest([]byte(`
version: one
authors: ["", ok]
sources: [/abs]
targets:
  app:
    type: script
  App:
    type: library
  other:
    type: binary
parser:
  mode: repl
  max_nesting: -1
`), "baik.yml")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, fragment := range []string{
		"name must be provided",
		`invalid version "one"`,
		"authors[0]",
		"sources[0] must be relative",
		`target "app" requires a main entrypoint`,
		`targets "app" and "App" collide`,
		`unsupported type "binary"`,
		"parser.mode",
		"parser.max_nesting",
	} {
		if !strings.Contains(verr.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, verr.Error())
		}
	}
}

func TestManifestRejectsOversizedNesting(t *testing.T) {
	content := fmt.Sprintf("name: demo\nparser:\n  max_nesting: %d\n", parser.MaxNestingLimit+1)
	_, err := ParseManifest([]byte(content), "baik.yml")
	var verr *ValidationError
	if !errors.As(err, &verr) || !strings.Contains(verr.Error(), "parser.max_nesting must not exceed 4096") {
		t.Fatalf("expected max_nesting ceiling error, got %v", err)
	}

	content = fmt.Sprintf("name: demo\nparser:\n  max_nesting: %d\n", parser.MaxNestingLimit)
	if _, err := ParseManifest([]byte(content), "baik.yml"); err != nil {
		t.Fatalf("expected the ceiling itself to be accepted, got %v", err)
	}
}

func TestManifestRejectsUnknownFields(t *testing.T) {
	_, err := ParseManifest([]byte("name: demo\ndependencies: {}\n"), "baik.yml")
	if err == nil || !strings.Contains(err.Error(), "dependencies") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if _, err := ParseManifest(nil, "baik.yml"); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestFileName), "name: test")
	child := filepath.Join(root, "src", "app")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindManifest(child)
	if err != nil {
		t.Fatalf("FindManifest returned error: %v", err)
	}
	if want := filepath.Join(root, ManifestFileName); found != want {
		t.Fatalf("FindManifest = %q, want %q", found, want)
	}
}
