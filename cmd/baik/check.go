package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/driver"
	"baik/interpreter-go/pkg/parser"
)

func runCheck(args []string) int {
	fs := newFlagSet("check")
	var common commonFlags
	common.register(fs)
	gitRepo := fs.String("git", "", "read sources from this git repository instead of the working tree")
	revision := fs.String("rev", "", "git revision to read (default HEAD)")
	modeName := fs.String("mode", "", "grammar entry point: file or input (default from baik.yml, else file)")
	quiet := fs.Bool("quiet", false, "print diagnostics only")
	stats := fs.Bool("stats", false, "print how many terms of each type were parsed")

	logger, status, ok := parseFlags(fs, &common, args)
	if !ok {
		return status
	}
	if *revision != "" && *gitRepo == "" {
		fmt.Fprintln(os.Stderr, "baik check: --rev requires --git")
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		manifest *driver.Manifest
		sources  []driver.Source
		err      error
	)
	if *gitRepo != "" {
		src := driver.GitSource{Repo: *gitRepo, Revision: *revision, Paths: fs.Args()}
		manifest, err = src.Manifest()
		if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
			fmt.Fprintf(os.Stderr, "baik check: %v\n", err)
			return exitFailure
		}
		sources, err = src.Sources(ctx)
	} else {
		paths := fs.Args()
		manifest, err = nearbyManifest()
		if err != nil {
			fmt.Fprintf(os.Stderr, "baik check: %v\n", err)
			return exitFailure
		}
		if len(paths) == 0 {
			paths = []string{"."}
			if manifest != nil {
				paths = manifest.SourcePaths()
			}
		}
		sources, err = driver.ReadSources(paths)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "baik check: %v\n", err)
		return exitFailure
	}

	loader, err := checkLoader(manifest, *modeName, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "baik check: %v\n", err)
		return exitUsage
	}
	logger.Debug("checking sources", "files", len(sources))
	results := loader.ParseAll(ctx, sources)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprint(os.Stderr, parser.FormatError(r.Err, r.Source.Path, r.Source.Content))
		}
	}

	summary := driver.Summarize(results)
	if !*quiet {
		fmt.Fprintf(os.Stdout, "checked %d files: %d terms, %d syntax errors, %d internal errors\n",
			summary.Files, summary.Terms, summary.SyntaxErrors, summary.InternalErrors)
	}
	if *stats {
		printNodeCounts(os.Stdout, summary.Nodes)
	}
	switch {
	case summary.InternalErrors > 0:
		return exitInternal
	case summary.Failed():
		return exitFailure
	default:
		return exitOK
	}
}

// nearbyManifest loads baik.yml from the working directory or a parent. A
// missing manifest is not an error.
func nearbyManifest() (*driver.Manifest, error) {
	path, err := driver.FindManifest(".")
	if errors.Is(err, driver.ErrManifestNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func checkLoader(manifest *driver.Manifest, modeName string, logger *slog.Logger) (*driver.Loader, error) {
	opts := driver.LoaderOptions{Mode: parser.ModeFile, Logger: logger}
	if manifest != nil {
		mode, parserOpts, err := manifest.ParserOptions(logger)
		if err != nil {
			return nil, err
		}
		opts.Mode = mode
		opts.Parser = parserOpts
	}
	if modeName != "" {
		mode, err := parser.ParseMode(modeName)
		if err != nil {
			return nil, err
		}
		opts.Mode = mode
	}
	return driver.NewLoader(opts), nil
}

// printNodeCounts writes one "Type count" line per node type, in the order
// of ast.NodeTypes, skipping types that did not occur.
func printNodeCounts(w io.Writer, counts map[ast.NodeType]int) {
	for _, kind := range ast.NodeTypes() {
		if n := counts[kind]; n > 0 {
			fmt.Fprintf(w, "%-18s %d\n", kind, n)
		}
	}
}
