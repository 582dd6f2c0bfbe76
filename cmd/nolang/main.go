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

	nolang "github.com/fijal/nolang"
)

const (
	appName     = "nolang"
	historyFile = ".nolang_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("nolang %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", nolang.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "parse":
		os.Exit(cmdParse(os.Args[2:]))
	case "tokens":
		os.Exit(cmdTokens(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(nolang.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`nolang %s (built %s)

Usage:
  %s parse <file.no>        Parse a source file and print its syntax tree.
  %s tokens <file.no>       Print the token stream of a source file.
  %s repl                   Start the REPL.
  %s version                Print the compiled version

`, nolang.Version, nolang.BuildDate, appName, appName, appName, appName)
}

// readSource loads a source file named on the command line.
func readSource(sub string, args []string) (src, file string, ok bool) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s %s <file.no>\n", appName, sub)
		return "", "", false
	}
	file = args[0]
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return "", "", false
	}
	return string(data), file, true
}

// -----------------------------------------------------------------------------
// parse
// -----------------------------------------------------------------------------

func cmdParse(args []string) int {
	src, file, ok := readSource("parse", args)
	if !ok {
		return 2
	}

	prog, err := nolang.Parse(src, file)
	if err != nil {
		printDiagnostic(err)
		return 1
	}
	fmt.Println(nolang.Dump(prog))
	return 0
}

// -----------------------------------------------------------------------------
// tokens
// -----------------------------------------------------------------------------

func cmdTokens(args []string) int {
	src, file, ok := readSource("tokens", args)
	if !ok {
		return 2
	}

	toks, err := nolang.NewLexer(file, src).Tokenize()
	if err != nil {
		printDiagnostic(err)
		return 1
	}
	for _, t := range toks {
		fmt.Printf("%d:%d\t%s\t%q\n", t.Range.Line, t.Range.Col, t.Kind, t.Text)
	}
	return 0
}

// printDiagnostic renders lexer and parser errors with their caret line when
// one is available.
func printDiagnostic(err error) {
	var d *nolang.Diagnostic
	if errors.As(err, &d) {
		fmt.Fprintln(os.Stderr, red(d.Error()))
		fmt.Fprintln(os.Stderr, d.Line)
		fmt.Fprintln(os.Stderr, d.Caret())
		return
	}
	fmt.Fprintln(os.Stderr, red(err.Error()))
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

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
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		prog, err := nolang.Parse(code, "<repl>")
		if err != nil {
			printDiagnostic(err)
			continue
		}
		fmt.Println(blue(nolang.Dump(prog)))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe keeps prompting for continuation lines while the input so
// far fails only because it ended too early.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perr := nolang.Parse(src, "<repl>")
		if perr == nil {
			return src, true
		}
		if nolang.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
