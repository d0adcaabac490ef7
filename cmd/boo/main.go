package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/repr"
	"github.com/peterh/liner"

	"github.com/SamirTalwar/boo"
)

const (
	appName     = "boo"
	historyFile = ".boo_history"
	prompt      = "==> "
)

var banner = fmt.Sprintf("Boo %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", boo.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "ast":
		os.Exit(cmdAST(os.Args[2:]))
	case "steps":
		os.Exit(cmdSteps(os.Args[2:]))
	case "random":
		os.Exit(cmdRandom(os.Args[2:]))
	case "version":
		fmt.Println(boo.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Boo %s

Usage:
  %s run [file]                 Evaluate a program (stdin when no file or "-").
  %s repl                       Start the REPL.
  %s ast [file]                 Print the parsed syntax tree.
  %s steps [file]               Print every intermediate reduction.
  %s random [-seed n] [-depth n]  Generate a random program and its value.
  %s version                    Print the version.

`, boo.Version, appName, appName, appName, appName, appName, appName)
}

// readSource reads from the named file, or stdin when args is empty or the
// file is "-".
func readSource(args []string) (string, int) {
	if len(args) == 0 || args[0] == "-" {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read stdin: %v\n", appName, err)
			return "", 1
		}
		return string(src), 0
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return "", 1
	}
	return string(src), 0
}

func cmdRun(args []string) int {
	src, code := readSource(args)
	if code != 0 {
		return code
	}
	result, err := boo.Interpret(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(boo.WrapErrorWithSource(err, src).Error()))
		return 1
	}
	fmt.Println(boo.Render(result))
	return 0
}

func cmdAST(args []string) int {
	src, code := readSource(args)
	if code != 0 {
		return code
	}
	expr, err := boo.ParseSource(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(boo.WrapErrorWithSource(err, src).Error()))
		return 1
	}
	repr.Println(expr)
	return 0
}

func cmdSteps(args []string) int {
	src, code := readSource(args)
	if code != 0 {
		return code
	}
	expr, err := boo.ParseSource(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(boo.WrapErrorWithSource(err, src).Error()))
		return 1
	}
	reduction := boo.Steps(boo.WithBuiltins(expr))
	for step, ok := reduction.Next(); ok; step, ok = reduction.Next() {
		fmt.Println(boo.Render(step))
	}
	if err := reduction.Err(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	return 0
}

func cmdRandom(args []string) int {
	fs := flag.NewFlagSet("random", flag.ExitOnError)
	seed := fs.Int64("seed", 0, "generator seed")
	depth := fs.Int("depth", 4, "maximum expression depth")
	_ = fs.Parse(args)

	expr := boo.NewGenerator(*seed).Expr(*depth)
	fmt.Println(boo.Render(expr))
	result, err := boo.Evaluate(boo.WithBuiltins(expr))
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	fmt.Printf("= %s\n", boo.Render(result))
	return 0
}

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
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		result, ierr := boo.Interpret(code)
		if ierr != nil {
			fmt.Fprintln(os.Stderr, red(boo.WrapErrorWithSource(ierr, code).Error()))
		} else {
			fmt.Println(blue(boo.Render(result)))
		}
		ln.AppendHistory(code)
	}
}
