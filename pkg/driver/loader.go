package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/logging"
	"baik/interpreter-go/pkg/parser"
)

// SourceExt is the file extension of Baik sources.
const SourceExt = ".ina"

// Source is one unit of Baik code. Path is a filesystem path or, for
// sources read from git, a slash-separated path inside the tree.
type Source struct {
	Path    string
	Content []byte
}

// Result is the outcome of parsing one Source. Exactly one of Terms and Err
// is meaningful.
type Result struct {
	Source Source
	Terms  []*ast.Term
	Err    error
}

// Loader parses batches of sources with a shared parser.
type Loader struct {
	parser  *parser.Parser
	mode    parser.Mode
	workers int
	logger  *slog.Logger
}

// LoaderOptions configures NewLoader. The zero value parses whole files with
// default parser settings.
type LoaderOptions struct {
	Mode    parser.Mode
	Parser  parser.Options
	Workers int
	Logger  *slog.Logger
}

func NewLoader(opts LoaderOptions) *Loader {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	parserOpts := opts.Parser
	if parserOpts.Logger == nil {
		parserOpts.Logger = logger
	}
	return &Loader{
		parser:  parser.New(parserOpts),
		mode:    opts.Mode,
		workers: workers,
		logger:  logger,
	}
}

// NewLoaderForManifest builds a loader from the manifest's parser settings.
func NewLoaderForManifest(m *Manifest, logger *slog.Logger) (*Loader, error) {
	mode, opts, err := m.ParserOptions(logger)
	if err != nil {
		return nil, err
	}
	return NewLoader(LoaderOptions{Mode: mode, Parser: opts, Logger: logger}), nil
}

// CollectFiles expands paths into the Baik sources they name. Directories
// are walked recursively for files ending in SourceExt; hidden directories
// are skipped. Files named explicitly are kept whatever their extension.
// The result is sorted and free of duplicates.
func CollectFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == SourceExt {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("loader: walk %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// ReadSources reads every file CollectFiles finds under paths.
func ReadSources(paths []string) ([]Source, error) {
	files, err := CollectFiles(paths)
	if err != nil {
		return nil, err
	}
	sources := make([]Source, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loader: read %s: %w", path, err)
		}
		sources = append(sources, Source{Path: path, Content: data})
	}
	return sources, nil
}

// Parse parses one source.
func (l *Loader) Parse(src Source) Result {
	terms, err := l.parser.Parse(l.mode, src.Content)
	if err != nil {
		l.logger.Debug("source rejected", "path", src.Path, "error", err)
		return Result{Source: src, Err: err}
	}
	l.logger.Debug("source parsed", "path", src.Path, "terms", len(terms))
	return Result{Source: src, Terms: terms}
}

// ParseAll parses sources concurrently, at most l.workers at a time.
// Results keep the order of sources. Sources not yet started when ctx is
// cancelled report ctx.Err().
func (l *Loader) ParseAll(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))
	var g errgroup.Group
	g.SetLimit(l.workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Source: src, Err: err}
				return nil
			}
			results[i] = l.Parse(src)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Files          int
	Terms          int
	SyntaxErrors   int
	InternalErrors int
	OtherErrors    int
	// Nodes counts every Term, nested ones included, by type.
	Nodes map[ast.NodeType]int
}

// Summarize classifies results by parse error kind.
func Summarize(results []Result) Summary {
	s := Summary{Files: len(results), Nodes: make(map[ast.NodeType]int)}
	for _, r := range results {
		if r.Err == nil {
			s.Terms += len(r.Terms)
			for kind, n := range ast.Count(r.Terms) {
				s.Nodes[kind] += n
			}
			continue
		}
		var perr *parser.ParseError
		switch {
		case errors.As(r.Err, &perr) && perr.Kind == parser.AstGeneration:
			s.InternalErrors++
		case perr != nil:
			s.SyntaxErrors++
		default:
			s.OtherErrors++
		}
	}
	return s
}

// Failed reports whether any result carries an error.
func (s Summary) Failed() bool {
	return s.SyntaxErrors+s.InternalErrors+s.OtherErrors > 0
}
