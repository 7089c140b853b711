package driver

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/parser"
)

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.ina"), "x = 1")
	writeFile(t, filepath.Join(root, "lib", "a.ina"), "y = 2")
	writeFile(t, filepath.Join(root, "lib", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, ".cache", "c.ina"), "hidden")
	writeFile(t, filepath.Join(root, "script.baik"), "z = 3")

	files, err := CollectFiles([]string{root, filepath.Join(root, "script.baik"), filepath.Join(root, "b.ina")})
	if err != nil {
		t.Fatalf("CollectFiles returned error: %v", err)
	}
	want := []string{
		filepath.Join(root, "b.ina"),
		filepath.Join(root, "lib", "a.ina"),
		filepath.Join(root, "script.baik"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("expected %v, got %v", want, files)
	}

	if _, err := CollectFiles([]string{filepath.Join(root, "missing")}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestParseAllKeepsOrderAndClassifies(t *testing.T) {
	sources := []Source{
		{Path: "ok.ina", Content: []byte("x = 1\ny = x + 2")},
		{Path: "bad.ina", Content: []byte("x = )")},
		{Path: "big.ina", Content: []byte("99999999999999999999")},
		{Path: "types.ina", Content: []byte("type T(a: A) do end")},
	}
	loader := NewLoader(LoaderOptions{Mode: parser.ModeFile, Workers: 2})
	results := loader.ParseAll(context.Background(), sources)
	if len(results) != len(sources) {
		t.Fatalf("expected %d results, got %d", len(sources), len(results))
	}
	for i, r := range results {
		if r.Source.Path != sources[i].Path {
			t.Fatalf("result %d is for %s, want %s", i, r.Source.Path, sources[i].Path)
		}
	}
	if results[0].Err != nil || len(results[0].Terms) != 2 {
		t.Fatalf("expected two terms, got %v %v", results[0].Terms, results[0].Err)
	}
	if !errors.Is(results[1].Err, parser.ErrGrammarMismatch) {
		t.Fatalf("expected grammar mismatch, got %v", results[1].Err)
	}
	if !errors.Is(results[2].Err, parser.ErrInvalidLiteral) {
		t.Fatalf("expected invalid literal, got %v", results[2].Err)
	}

	summary := Summarize(results)
	want := Summary{
		Files:        4,
		Terms:        3,
		SyntaxErrors: 2,
		Nodes: map[ast.NodeType]int{
			ast.NodeDeclaration: 2,
			ast.NodeInteger:     2,
			ast.NodeBinary:      1,
			ast.NodeLocal:       1,
			ast.NodeTypeDef:     1,
		},
	}
	if !reflect.DeepEqual(summary, want) {
		t.Fatalf("expected %+v, got %+v", want, summary)
	}
	if !summary.Failed() {
		t.Fatalf("expected failed summary")
	}
}

func TestParseAllInputModeRejectsDefinitions(t *testing.T) {
	loader := NewLoader(LoaderOptions{Mode: parser.ModeInput})
	r := loader.Parse(Source{Path: "t.ina", Content: []byte("impl T do end")})
	if !errors.Is(r.Err, parser.ErrGrammarMismatch) {
		t.Fatalf("expected grammar mismatch in input mode, got %v", r.Err)
	}
}

func TestParseAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sources := []Source{{Path: "a.ina"}, {Path: "b.ina"}, {Path: "c.ina"}}
	results := NewLoader(LoaderOptions{Workers: 1}).ParseAll(ctx, sources)
	summary := Summarize(results)
	if summary.Files != 3 {
		t.Fatalf("expected a result per source, got %+v", summary)
	}
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Fatalf("expected cancelled result for %s, got %v", r.Source.Path, r.Err)
		}
	}
	if got := NewLoader(LoaderOptions{}).ParseAll(context.Background(), nil); len(got) != 0 {
		t.Fatalf("expected no results for no sources, got %v", got)
	}
}

func TestReadSourcesFromManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestFileName), "name: demo\nsources: src\nparser:\n  max_nesting: 8")
	writeFile(t, filepath.Join(root, "src", "main.ina"), "[[[[[[[[[[1]]]]]]]]]]")
	writeFile(t, filepath.Join(root, "other", "skip.ina"), "x = 1")

	m, err := LoadManifest(filepath.Join(root, ManifestFileName))
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	sources, err := ReadSources(m.SourcePaths())
	if err != nil {
		t.Fatalf("ReadSources returned error: %v", err)
	}
	if len(sources) != 1 || filepath.Base(sources[0].Path) != "main.ina" {
		t.Fatalf("expected only src/main.ina, got %v", sources)
	}
	loader, err := NewLoaderForManifest(m, nil)
	if err != nil {
		t.Fatalf("NewLoaderForManifest returned error: %v", err)
	}
	r := loader.Parse(sources[0])
	if !errors.Is(r.Err, parser.ErrNestingTooDeep) {
		t.Fatalf("expected nesting limit from manifest, got %v", r.Err)
	}
}
