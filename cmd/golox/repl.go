package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/froth/golox/internal/config"
	"github.com/froth/golox/internal/history"
	"github.com/froth/golox/pkg/golox"
)

func runREPL(runtime *golox.Runtime, cfg config.Config, store history.Store) {
	defer store.Close()

	fmt.Println("golox REPL (Ctrl+D to exit)")

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		runBasicREPL(runtime, cfg)
		return
	}
	runRawREPL(runtime, cfg, store)
}

// runBasicREPL handles non-TTY input (piped input).
func runBasicREPL(runtime *golox.Runtime, cfg config.Config) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(cfg.Prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := runtime.EvalLine(line); err != nil {
			runtime.ReportError(err)
		}
	}
}

// runRawREPL handles TTY input with editing keys, history recall, and
// bracket matching.
func runRawREPL(runtime *golox.Runtime, cfg config.Config, store history.Store) {
	fd := int(os.Stdin.Fd())

	lines, err := store.List(0)
	if err != nil {
		lines = nil
	}
	ed := newEditor(fd, cfg.Prompt, lines)

	for {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to set raw mode: %v\n", err)
			runBasicREPL(runtime, cfg)
			return
		}
		line, eof := ed.ReadLine()
		term.Restore(fd, oldState)

		if eof {
			fmt.Println()
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		ed.Remember(line)
		if err := store.Append(line); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save history: %v\r\n", err)
		}

		if err := runtime.EvalLine(line); err != nil {
			runtime.ReportError(err)
		}
	}
}
