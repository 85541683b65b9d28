// Command golox is the Lox interpreter CLI. With a file argument it runs
// the file; without one it starts an interactive REPL with line editing and
// persistent history.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/froth/golox/internal/config"
	"github.com/froth/golox/internal/history"
	"github.com/froth/golox/internal/prettyprinter"
	"github.com/froth/golox/pkg/golox"
)

type CLI struct {
	Verbose     bool   `help:"Dump tokens and the count of resolved depths while running."`
	HistoryFile string `help:"REPL history database path." name:"history-file" type:"path"`
	DumpAst     bool   `help:"Print the parsed program as Graphviz DOT and exit." name:"dump-ast"`

	File string `arg:"" optional:"" help:"Lox source file to run." type:"existingfile"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("golox"),
		kong.Description("A tree-walking interpreter for the Lox language."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring config file: %v\n", err)
	}
	if cfg.Verbose {
		cli.Verbose = true
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := []golox.Option{
		golox.WithStdout(os.Stdout),
		golox.WithStderr(os.Stderr),
	}
	if cli.Verbose {
		opts = append(opts, golox.WithVerbose(func(stage, detail string) {
			logger.Debug("pipeline", slog.String("stage", stage), slog.String("detail", detail))
		}))
	}
	runtime := golox.New(opts...)

	switch {
	case cli.DumpAst:
		os.Exit(dumpAST(runtime, cli.File))
	case cli.File != "":
		if err := runtime.RunFile(cli.File); err != nil {
			runtime.ReportError(err)
			os.Exit(config.ExitCodeError)
		}
	case !isatty.IsTerminal(os.Stdin.Fd()):
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
			os.Exit(1)
		}
		if err := runtime.RunSource("stdin", string(source)); err != nil {
			runtime.ReportError(err)
			os.Exit(config.ExitCodeError)
		}
	default:
		runREPL(runtime, cfg, openHistory(cli.HistoryFile, cfg, logger))
	}
}

func dumpAST(runtime *golox.Runtime, file string) int {
	if file == "" {
		fmt.Fprintln(os.Stderr, "--dump-ast requires a source file")
		return 1
	}
	content, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", file, err)
		return 1
	}
	dot, err := runtime.DumpAST(file, string(content), prettyprinter.NewGraphvizPrinter())
	if err != nil {
		runtime.ReportError(err)
		return config.ExitCodeError
	}
	fmt.Print(dot)
	return 0
}

// openHistory opens the SQLite history store, falling back to an in-memory
// one when the database cannot be opened.
func openHistory(flagValue string, cfg config.Config, logger *slog.Logger) history.Store {
	path := config.HistoryPath(flagValue, cfg)
	store, err := history.NewSQLite(path)
	if err != nil {
		logger.Warn("history disabled", slog.String("path", path), slog.Any("error", err))
		return history.NewMemory()
	}
	return store
}
