package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"baik/interpreter-go/pkg/driver"
	"baik/interpreter-go/pkg/parser"
	"baik/interpreter-go/pkg/printer"
)

func runParse(args []string) int {
	fs := newFlagSet("parse")
	var common commonFlags
	common.register(fs)
	modeName := fs.String("mode", "file", "grammar entry point: file or input")
	formatName := fs.String("format", "sexp", "output format: sexp, yaml or json")
	maxNesting := fs.Int("max-nesting", 0, "maximum term nesting (0 selects the default)")
	targetName := fs.String("target", "", "parse the main file of this baik.yml target")

	logger, status, ok := parseFlags(fs, &common, args)
	if !ok {
		return status
	}
	if !validNesting("parse", *maxNesting) {
		return exitUsage
	}
	mode, err := parser.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "baik parse: %v\n", err)
		return exitUsage
	}
	format, err := printer.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "baik parse: %v\n", err)
		return exitUsage
	}
	opts := parser.Options{MaxNesting: *maxNesting, Logger: logger}

	var path string
	switch {
	case fs.NArg() == 1 && *targetName == "":
		path = fs.Arg(0)
	case fs.NArg() == 0:
		path, err = targetMain(*targetName, fs, &mode, &opts, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "baik parse: %v\n", err)
			return exitUsage
		}
	default:
		fmt.Fprintln(os.Stderr, "baik parse requires exactly one source file (use - for stdin) or --target")
		return exitUsage
	}

	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "baik parse: %v\n", err)
		return exitFailure
	}

	p := parser.New(opts)
	terms, err := p.Parse(mode, source)
	if err != nil {
		fmt.Fprint(os.Stderr, parser.FormatError(err, displayName(path), source))
		return exitStatusFor(err)
	}
	if err := printer.Write(os.Stdout, format, terms, source); err != nil {
		fmt.Fprintf(os.Stderr, "baik parse: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// targetMain finds the main file of the named target, or of the first script
// target when name is empty, in the nearest baik.yml. The manifest's parser
// settings replace mode and opts unless set on the command line.
func targetMain(name string, fs *flag.FlagSet, mode *parser.Mode, opts *parser.Options, logger *slog.Logger) (string, error) {
	manifest, err := nearbyManifest()
	if err != nil {
		return "", err
	}
	if manifest == nil {
		return "", fmt.Errorf("no source file given and no %s found", driver.ManifestFileName)
	}

	var target *driver.TargetSpec
	if name == "" {
		if target, err = manifest.DefaultScriptTarget(); err != nil {
			return "", err
		}
	} else {
		var found bool
		if target, found = manifest.FindTarget(name); !found {
			return "", fmt.Errorf("%s has no target %q", manifest.Path, name)
		}
	}
	path := manifest.MainPath(target)
	if path == "" {
		return "", fmt.Errorf("target %q has no main file", target.OriginalName)
	}

	manifestMode, manifestOpts, err := manifest.ParserOptions(logger)
	if err != nil {
		return "", err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["mode"] {
		*mode = manifestMode
	}
	if !set["max-nesting"] {
		opts.MaxNesting = manifestOpts.MaxNesting
	}
	logger.Debug("parsing target", "target", target.Name, "path", path)
	return path, nil
}

func readSource(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}
	return data, nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
