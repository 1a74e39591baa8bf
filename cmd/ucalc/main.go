// ucalc - the calc expression compiler
//
// Compiles a calc expression to LLVM IR on standard output, or executes it
// in-process with -run. Uses manual argument parsing so flags compose the
// same way as the classic driver (no flag package surprises with a leading
// expression argument).
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/kolkov/ucalc"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: ucalc [-d] [-e] [-run] [-o file] [-m name] ['expr']"
	longUsage  = `Arguments:
  'expr'            calc expression to compile (e.g. 'with x: x+1')
                    without an expression, ucalc starts an interactive REPL

Output options:
  -o file           write IR to file instead of standard output
  -m name           module name recorded in the IR (default "calc.expr")

Execution:
  -run              execute the expression on the reference evaluator
                    instead of printing IR; variable values are read from
                    standard input, one integer per line

Debugging:
  -d                print the parsed AST to stderr and exit
  -e                print detailed diagnostics with source positions
                    instead of the one-line error summaries

Other:
  -h, --help        show this help message
  -version          show ucalc version and exit
`
	historyFile = ".ucalc_history"
)

func main() {
	var outFile string
	moduleName := ""
	run := false
	debugAST := false
	explain := false

	var i int
	for i = 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-o":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -o")
			}
			i++
			outFile = os.Args[i]
		case "-m":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -m")
			}
			i++
			moduleName = os.Args[i]
		case "-run":
			run = true
		case "-d":
			debugAST = true
		case "-e":
			explain = true
		case "-h", "--help":
			fmt.Printf("ucalc %s - the calc expression compiler\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("ucalc version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			os.Exit(0)
		default:
			// Handle flags with no space: -ofile, -mname.
			switch {
			case strings.HasPrefix(arg, "-o"):
				outFile = arg[2:]
			case strings.HasPrefix(arg, "-m"):
				moduleName = arg[2:]
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}

	args := os.Args[i:]
	if len(args) == 0 {
		repl(moduleName)
		return
	}
	if len(args) > 1 {
		errorExitf(shortUsage)
	}

	config := &ucalc.Config{ModuleName: moduleName}
	prog, err := ucalc.CompileWithConfig(args[0], config)
	if err != nil {
		compileErrorExit(err, explain)
	}

	if debugAST {
		fmt.Fprint(os.Stderr, prog.AST())
		os.Exit(0)
	}

	if run {
		config.Output = os.Stdout
		config.Prompts = true
		if _, err := prog.Run(os.Stdin, config); err != nil {
			errorExit(err)
		}
		return
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			errorExitf("cannot create output file %s: %v", outFile, err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	if err := prog.WriteIR(w); err != nil {
		errorExit(err)
	}
	if err := w.Flush(); err != nil {
		errorExit(err)
	}
}

// compileErrorExit reports a compilation failure and exits with status 1.
// By default it prints the classic one-line summaries; -e prints the
// detailed diagnostics with positions.
func compileErrorExit(err error, explain bool) {
	if explain {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var parseErr *ucalc.ParseError
	var semErr *ucalc.SemanticError
	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintln(os.Stderr, "Syntax errors occured")
	case errors.As(err, &semErr):
		fmt.Fprintln(os.Stderr, "Semantic errors occured")
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

func errorExit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// -----------------------------------------------------------------------------
// REPL
// -----------------------------------------------------------------------------

const (
	replBanner = "ucalc REPL — Ctrl+C to cancel input, Ctrl+D to exit. Type :help for commands."
	replPrompt = "calc> "
	replHelp   = `
REPL commands:
  :help            Show this help
  :quit / :exit    Exit the REPL
  :ir              Print IR for each expression (default)
  :run             Evaluate each expression instead of printing IR
  :ast <expr>      Print the parsed AST of an expression
`
)

// repl reads expressions interactively, compiling each line and printing
// its IR, or its evaluated result after :run.
func repl(moduleName string) {
	fmt.Println(replBanner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	evaluate := false

	for {
		line, err := ln.Prompt(replPrompt)
		if err != nil {
			// Ctrl+D or read error ends the session; Ctrl+C cancels the line.
			if err == liner.ErrPromptAborted {
				continue
			}
			fmt.Println()
			break
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(code, ":") {
			if done := handleReplCommand(code, &evaluate, moduleName); done {
				break
			}
			continue
		}

		config := &ucalc.Config{ModuleName: moduleName}
		if evaluate {
			config.Output = os.Stdout
			config.Prompts = true
			if _, err := ucalc.Run(code, os.Stdin, config); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			continue
		}

		prog, err := ucalc.CompileWithConfig(code, config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Print(prog.IR())
	}

	// Save history (best-effort)
	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}

// handleReplCommand handles :help, :quit, :ir, :run, :ast.
func handleReplCommand(line string, evaluate *bool, moduleName string) (exit bool) {
	cmd, rest, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case ":help":
		fmt.Print(replHelp)
	case ":quit", ":exit":
		return true
	case ":ir":
		*evaluate = false
		fmt.Println("printing IR")
	case ":run":
		*evaluate = true
		fmt.Println("evaluating expressions")
	case ":ast":
		prog, err := ucalc.CompileWithConfig(rest, &ucalc.Config{ModuleName: moduleName})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
		fmt.Print(prog.AST())
	default:
		fmt.Fprintf(os.Stderr, "unknown command %s (try :help)\n", cmd)
	}
	return false
}
