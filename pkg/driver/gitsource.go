package driver

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitSource reads Baik sources as they were at a revision of a local
// repository, without touching the working tree.
type GitSource struct {
	// Repo is a path inside the repository; parent directories are searched
	// for .git.
	Repo string
	// Revision is anything git rev-parse understands that go-git supports
	// (branch, tag, hash, HEAD~2). Empty means HEAD.
	Revision string
	// Paths restricts the read to these slash-separated directories or
	// files. Empty reads the manifest's sources when the revision holds a
	// baik.yml at its root, and the whole tree otherwise.
	Paths []string
}

// Commit resolves the revision to its commit.
func (g GitSource) Commit() (*object.Commit, error) {
	repo, err := git.PlainOpenWithOptions(g.Repo, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("loader: open repository %s: %w", g.Repo, err)
	}
	rev := g.Revision
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loader: commit %s: %w", hash, err)
	}
	return commit, nil
}

// Sources returns the Baik files of the revision in path order.
func (g GitSource) Sources(ctx context.Context) ([]Source, error) {
	commit, err := g.Commit()
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("loader: tree of %s: %w", commit.Hash, err)
	}

	prefixes, err := g.prefixes(tree)
	if err != nil {
		return nil, err
	}
	var sources []Source
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !f.Mode.IsFile() || !selected(f.Name, prefixes) {
			return nil
		}
		if path.Ext(f.Name) != SourceExt && !explicit(f.Name, prefixes) {
			return nil
		}
		contents, err := f.Contents()
		if err != nil {
			return fmt.Errorf("loader: read %s at %s: %w", f.Name, commit.Hash, err)
		}
		sources = append(sources, Source{Path: f.Name, Content: []byte(contents)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// Manifest reads baik.yml from the root of the revision. It returns
// ErrManifestNotFound when the revision has none.
func (g GitSource) Manifest() (*Manifest, error) {
	commit, err := g.Commit()
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("loader: tree of %s: %w", commit.Hash, err)
	}
	return manifestAt(tree)
}

func manifestAt(tree *object.Tree) (*Manifest, error) {
	f, err := tree.File(ManifestFileName)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, ErrManifestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", ManifestFileName, err)
	}
	contents, err := f.Contents()
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", ManifestFileName, err)
	}
	return ParseManifest([]byte(contents), ManifestFileName)
}

func (g GitSource) prefixes(tree *object.Tree) ([]string, error) {
	paths := g.Paths
	if len(paths) == 0 {
		m, err := manifestAt(tree)
		switch {
		case errors.Is(err, ErrManifestNotFound):
			return nil, nil
		case err != nil:
			return nil, err
		}
		paths = m.Sources
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		clean := path.Clean(strings.TrimPrefix(p, "./"))
		if clean == "." {
			return nil, nil
		}
		out = append(out, clean)
	}
	return out, nil
}

func selected(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if name == p || strings.HasPrefix(name, p+"/") {
			return true
		}
	}
	return false
}

func explicit(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if name == p {
			return true
		}
	}
	return false
}
