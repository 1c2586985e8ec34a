// Completion: 100% - CLI complete

// Command ylex lists the tokens of a source file, one per line:
//
//	path:line:col: (kind) text
//
// Lexical errors are listed in place as "(err)" lines and lexing continues.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/xyproto/ylex/internal/lexer"
	"github.com/xyproto/ylex/internal/scratch"
	"github.com/xyproto/ylex/internal/stream"
	"github.com/xyproto/ylex/internal/watch"
)

const versionString = "ylex 1.0.0"

// VerboseMode enables progress messages on stderr
var VerboseMode bool

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, lexes the given file and returns the exit code
func run(args []string, stdout, stderr io.Writer) int {
	cfg := ConfigFromEnv()

	// NOTE: flags must come before the filename: ylex -stats file.y
	fs := flag.NewFlagSet("ylex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ylex [flags] <file>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	var versionShort = fs.Bool("V", false, "print version information and exit")
	var version = fs.Bool("version", false, "print version information and exit")
	var verbose = fs.Bool("v", cfg.Verbose, "verbose mode (show progress and every token on stderr)")
	var verboseLong = fs.Bool("verbose", cfg.Verbose, "verbose mode (show progress and every token on stderr)")
	var commentsFlag = fs.Bool("comments", cfg.Comments, "skip // line comments")
	var bufferFlag = fs.Int("buffer", cfg.BufferSize, "stream buffer size in bytes")
	var blockFlag = fs.Int("block", cfg.BlockSize, "arena block size in bytes")
	var maxErrorsFlag = fs.Int("max-errors", cfg.MaxErrors, "stop after this many errors (0 for no limit)")
	var statsFlag = fs.Bool("stats", false, "print token and memory statistics on stderr")
	var watchFlag = fs.Bool("watch", false, "watch mode: lex again on file changes")
	var colorFlag = fs.Bool("color", false, "always use colors in the listing")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *version || *versionShort {
		fmt.Fprintln(stdout, versionString)
		return 0
	}

	// Set global verbosity flag (use whichever was specified)
	VerboseMode = *verbose || *verboseLong
	lexer.VerboseMode = VerboseMode
	stream.VerboseMode = VerboseMode
	scratch.VerboseMode = VerboseMode
	watch.VerboseMode = VerboseMode

	cfg.Verbose = VerboseMode
	cfg.Comments = *commentsFlag
	cfg.BufferSize = *bufferFlag
	cfg.BlockSize = *blockFlag
	cfg.MaxErrors = *maxErrorsFlag
	cfg.Stats = *statsFlag
	cfg.Watch = *watchFlag
	cfg.Color = *colorFlag || (!cfg.NoColor && isTerminal(stdout))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	path := fs.Arg(0)

	if VerboseMode {
		fmt.Fprintf(stderr, "Lexing %s (buffer %d, block %d)\n", path, cfg.BufferSize, cfg.BlockSize)
	}

	code := report(path, cfg, stdout, stderr)
	if !cfg.Watch {
		return code
	}

	stop := make(chan struct{})
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		close(stop)
	}()

	if err := watchFile(path, cfg, stdout, stderr, stop); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return code
}
