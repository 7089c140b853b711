package driver

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type gitFixture struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	tree *git.Worktree
}

func newGitFixture(t *testing.T) *gitFixture {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &gitFixture{t: t, dir: dir, repo: repo, tree: worktree}
}

// commit writes files (slash-separated path to contents) and commits them.
func (f *gitFixture) commit(message string, files map[string]string) string {
	f.t.Helper()
	for name, contents := range files {
		writeFile(f.t, filepath.Join(f.dir, filepath.FromSlash(name)), contents)
		if _, err := f.tree.Add(name); err != nil {
			f.t.Fatalf("Add %s: %v", name, err)
		}
	}
	hash, err := f.tree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Baik CLI",
			Email: "baik@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		f.t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func sourcePaths(sources []Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.Path
	}
	return out
}

func TestGitSourceReadsRevision(t *testing.T) {
	fx := newGitFixture(t)
	first := fx.commit("init", map[string]string{
		"main.ina":     "x = 1",
		"lib/util.ina": "y = 2",
		"README.md":    "docs",
	})
	fx.commit("second", map[string]string{
		"main.ina":  "x = )",
		"extra.ina": "z = 3",
	})

	head, err := GitSource{Repo: fx.dir}.Sources(context.Background())
	if err != nil {
		t.Fatalf("Sources at HEAD: %v", err)
	}
	if got, want := sourcePaths(head), []string{"extra.ina", "lib/util.ina", "main.ina"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	old, err := GitSource{Repo: filepath.Join(fx.dir, "lib"), Revision: first}.Sources(context.Background())
	if err != nil {
		t.Fatalf("Sources at %s: %v", first, err)
	}
	if got, want := sourcePaths(old), []string{"lib/util.ina", "main.ina"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if string(old[1].Content) != "x = 1\n" {
		t.Fatalf("expected content from first commit, got %q", old[1].Content)
	}

	parent, err := GitSource{Repo: fx.dir, Revision: "HEAD~1"}.Commit()
	if err != nil || parent.Hash.String() != first {
		t.Fatalf("expected HEAD~1 to resolve to %s, got %v %v", first, parent, err)
	}
}

func TestGitSourcePaths(t *testing.T) {
	fx := newGitFixture(t)
	fx.commit("init", map[string]string{
		"src/a.ina":      "a = 1",
		"src/deep/b.ina": "b = 2",
		"srcx/c.ina":     "c = 3",
		"tools/run.baik": "d = 4",
	})

	sources, err := GitSource{Repo: fx.dir, Paths: []string{"./src", "tools/run.baik"}}.Sources(context.Background())
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if got, want := sourcePaths(sources), []string{"src/a.ina", "src/deep/b.ina", "tools/run.baik"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGitSourceUsesManifestAtRevision(t *testing.T) {
	fx := newGitFixture(t)
	fx.commit("init", map[string]string{
		ManifestFileName: "name: demo\nsources: [lib]",
		"lib/a.ina":      "a = 1",
		"scratch.ina":    "oops = )",
	})

	g := GitSource{Repo: fx.dir}
	m, err := g.Manifest()
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	if m.Name != "demo" {
		t.Fatalf("expected manifest demo, got %q", m.Name)
	}
	sources, err := g.Sources(context.Background())
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if got, want := sourcePaths(sources), []string{"lib/a.ina"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	results := NewLoader(LoaderOptions{}).ParseAll(context.Background(), sources)
	if s := Summarize(results); s.Failed() || s.Terms != 1 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestGitSourceErrors(t *testing.T) {
	if _, err := (GitSource{Repo: t.TempDir()}).Sources(context.Background()); err == nil {
		t.Fatalf("expected error outside a repository")
	}
	fx := newGitFixture(t)
	fx.commit("init", map[string]string{"a.ina": "a = 1"})
	if _, err := (GitSource{Repo: fx.dir, Revision: "no-such-branch"}).Commit(); err == nil {
		t.Fatalf("expected unknown revision error")
	}
	if _, err := (GitSource{Repo: fx.dir}).Manifest(); !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (GitSource{Repo: fx.dir}).Sources(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
