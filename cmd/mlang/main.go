// Command mlang runs Mlang source, either one file at a time or
// interactively through a REPL.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/daios-ai/mlang"
)

const (
	appName     = "mlang"
	historyFile = ".mlang_history"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Usage:
  %s run <file>     Run a script, discarding its final value.
  %s repl           Start the interactive REPL.
`, appName, appName)
}

// cmdRun reads the whole file, parses it once, and evaluates the
// resulting program against a fresh top-level environment. The final
// value is discarded; parse diagnostics, or a runtime Error reaching the
// top level, are printed to stderr.
func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file>\n", appName)
		return 2
	}

	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
		return 1
	}

	mlang.EnableColor = false

	l := mlang.NewLexer(string(src))
	p := mlang.NewParser(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, mlang.FormatErrorBlock(errs))
		return 1
	}

	env := mlang.NewEnvironment()
	result := mlang.Eval(program, env)
	if errObj, ok := result.(*mlang.Error); ok {
		fmt.Fprintln(os.Stderr, errObj.Inspect())
		return 1
	}
	return 0
}

// cmdRepl starts an interactive loop against a single, persistent
// top-level environment: one line in, one value echoed out.
func cmdRepl(_ []string) int {
	mlang.EnableColor = true

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
		ln.Close()
		os.Exit(130)
	}()

	env := mlang.NewEnvironment()

	for {
		line, err := ln.Prompt(mlang.FormatPrompt())
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			return 0
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		l := mlang.NewLexer(line)
		p := mlang.NewParser(l)
		program := p.ParseProgram()

		if errs := p.Errors(); len(errs) > 0 {
			fmt.Print(mlang.FormatErrorBlock(errs))
			continue
		}

		result := mlang.Eval(program, env)
		if text := mlang.FormatResult(result); text != "" {
			fmt.Println(text)
		}
	}
}
