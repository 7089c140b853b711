package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/parser"
)

const (
	replPrompt       = "baik> "
	replContinuation = "  ... "
	replHistoryFile  = ".baik_history"
)

// lineReader is the part of liner.State the loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runRepl(args []string) int {
	fs := newFlagSet("repl")
	var common commonFlags
	common.register(fs)
	maxNesting := fs.Int("max-nesting", 0, "maximum term nesting (0 selects the default)")
	logger, status, ok := parseFlags(fs, &common, args)
	if !ok {
		return status
	}
	if !validNesting("repl", *maxNesting) {
		return exitUsage
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return exitUsage
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(true)

	history := historyPath()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				logger.Warn("could not read history", "path", history, "error", err)
			}
			f.Close()
		}
	}

	p := parser.New(parser.Options{MaxNesting: *maxNesting, Logger: logger})
	fmt.Fprintf(os.Stdout, "%s (:quit to exit)\n", cliToolVersion)
	code := replLoop(line, p, os.Stdout, os.Stderr, logger)

	if history != "" {
		if f, err := os.Create(history); err == nil {
			if _, err := line.WriteHistory(f); err != nil {
				logger.Warn("could not write history", "path", history, "error", err)
			}
			f.Close()
		}
	}
	return code
}

// replLoop reads statements until :quit or end of input. Input that stops
// mid-statement is continued on the next line.
func replLoop(in lineReader, p *parser.Parser, stdout, stderr io.Writer, logger *slog.Logger) int {
	var pending strings.Builder
	for {
		prompt := replPrompt
		if pending.Len() > 0 {
			prompt = replContinuation
		}
		text, err := in.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			pending.Reset()
			continue
		case errors.Is(err, io.EOF):
			return exitOK
		case err != nil:
			fmt.Fprintf(stderr, "baik repl: %v\n", err)
			return exitFailure
		}

		if pending.Len() == 0 {
			switch strings.TrimSpace(text) {
			case "":
				continue
			case ":quit", ":q":
				return exitOK
			}
		} else {
			pending.WriteByte('\n')
		}
		pending.WriteString(text)

		source := []byte(pending.String())
		terms, err := p.ParseInput(source)
		if err != nil && parser.IsIncomplete(err) && strings.TrimSpace(text) != "" {
			continue
		}
		in.AppendHistory(pending.String())
		pending.Reset()
		if err != nil {
			logger.Debug("statement rejected", "error", err)
			fmt.Fprint(stderr, parser.FormatError(err, "<repl>", source))
			continue
		}
		if len(terms) > 0 {
			fmt.Fprintln(stdout, ast.FormatAll(terms))
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, replHistoryFile)
}
