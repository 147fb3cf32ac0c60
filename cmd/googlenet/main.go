// Package main provides the GoogLeNet command line tool.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

const version = "v0.1.0-dev"

const usage = `GoogLeNet (Inception v1) on the born tensor engine

Usage:
  googlenet <command> [flags]

Commands:
  version    Show version
  summary    Print the architecture and parameter counts
  forward    Run a forward pass on random images and report scores and loss
  export     Write network weights to a SafeTensors file

Run "googlenet <command> -h" for command flags.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return 0
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "googlenet %s\n", version)
		return 0
	case "summary":
		err = runSummary(args[1:], stdout, stderr)
	case "forward":
		err = runForward(args[1:], stdout, stderr)
	case "export":
		err = runExport(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "googlenet %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
