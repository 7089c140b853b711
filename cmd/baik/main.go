package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"baik/interpreter-go/pkg/logging"
	"baik/interpreter-go/pkg/parser"
)

const cliToolVersion = "baik-cli 0.0.0-dev"

// Exit statuses.
const (
	exitOK       = 0
	exitFailure  = 1 // syntax errors and unreadable input
	exitUsage    = 2
	exitInternal = 3 // the parser produced a tree it could not convert
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return exitUsage
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(os.Stdout)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitOK
	case "parse":
		return runParse(args[1:])
	case "check":
		return runCheck(args[1:])
	case "repl":
		return runRepl(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage(os.Stderr)
		return exitUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: baik <command> [options]

Commands:
  parse [--mode file|input] [--format sexp|yaml|json] [--target name] [file|-]
                      print the syntax tree of a source file; without a file,
                      the main file of a baik.yml script target
  check [--git repo] [--rev revision] [--stats] [paths...]
                      report syntax errors in .ina sources
  repl                read statements interactively and print their trees
  version             print the tool version

Every command accepts --log-level (debug|info|warn|error, default from
BAIK_LOG_LEVEL) and --log-format (text|json).
`)
}

// commonFlags are registered on every subcommand.
type commonFlags struct {
	level  string
	format string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.level, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&c.format, "log-format", "text", "log format: text or json")
}

func (c *commonFlags) logger() (*slog.Logger, error) {
	cfg := logging.DefaultConfig()
	cfg.Format = c.format
	level, err := logging.LevelFromEnv(cfg.Level)
	if err != nil {
		return nil, err
	}
	if c.level != "" {
		if level, err = logging.ParseLevel(c.level); err != nil {
			return nil, err
		}
	}
	cfg.Level = level
	cfg.Output = os.Stderr
	return logging.New(cfg)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// parseFlags runs fs over args and builds the logger. ok is false when the
// command should stop with status.
func parseFlags(fs *flag.FlagSet, common *commonFlags, args []string) (logger *slog.Logger, status int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exitOK, false
		}
		return nil, exitUsage, false
	}
	logger, err := common.logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "baik %s: %v\n", fs.Name(), err)
		return nil, exitUsage, false
	}
	return logger, exitOK, true
}

// validNesting reports whether a --max-nesting value is usable, printing a
// diagnostic when it is not.
func validNesting(command string, n int) bool {
	if n < 0 || n > parser.MaxNestingLimit {
		fmt.Fprintf(os.Stderr, "baik %s: --max-nesting must be between 0 and %d\n", command, parser.MaxNestingLimit)
		return false
	}
	return true
}

// exitStatusFor maps a parse failure to the process exit status.
func exitStatusFor(err error) int {
	var perr *parser.ParseError
	if errors.As(err, &perr) && perr.Kind == parser.AstGeneration {
		return exitInternal
	}
	return exitFailure
}
