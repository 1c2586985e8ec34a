// Completion: 100% - Token listing complete

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xyproto/ylex/internal/arena"
	"github.com/xyproto/ylex/internal/diag"
	"github.com/xyproto/ylex/internal/lexer"
	"github.com/xyproto/ylex/internal/stream"
	"github.com/xyproto/ylex/internal/watch"
)

// errTooManyErrors ends a session once the error limit is reached
var errTooManyErrors = errors.New("too many errors")

// kindColors maps token kinds to ANSI colours for the listing
var kindColors = map[lexer.Kind]string{
	lexer.Special:    "\033[36m", // Cyan
	lexer.Identifier: "\033[0m",
	lexer.String:     "\033[32m", // Green
	lexer.Char:       "\033[32m",
	lexer.Int:        "\033[35m", // Magenta
	lexer.Float:      "\033[35m",
}

// lexFile lists every token of path on stdout, one per line.
// Lexical errors are listed in place and counted in the returned collector.
// The error is non-nil only when the file can not be read or a fatal error
// ends the session.
func lexFile(path string, cfg Config, stdout, stderr io.Writer) (*diag.Collector, error) {
	collector := diag.NewCollector(cfg.MaxErrors)

	r, err := stream.Open(path, cfg.BufferSize)
	if err != nil {
		return collector, fmt.Errorf("can not open %s: %w", path, err)
	}
	defer r.Close()

	a := arena.New(cfg.BlockSize)
	defer a.Destroy()

	lx, err := lexer.New(r, path, lexer.Options{Comments: cfg.Comments})
	if err != nil {
		d := diag.FromError(path, err)
		collector.Add(d)
		fmt.Fprintln(stdout, d.Line(cfg.Color))
		return collector, err
	}

	for {
		tok, err := lx.Next(a)
		if err == io.EOF {
			break
		}
		if err != nil {
			d := diag.FromError(path, err)
			collector.Add(d)
			fmt.Fprintln(stdout, d.Line(cfg.Color))
			if lexer.IsFatal(err) {
				return collector, err
			}
			if collector.ShouldStop() {
				fmt.Fprintf(stderr, "%s: stopping after %d errors\n", path, collector.ErrorCount())
				return collector, errTooManyErrors
			}
			continue
		}
		printToken(stdout, path, tok, cfg.Color)
	}

	if cfg.Stats {
		file := lx.File()
		st := lx.Stats()
		fmt.Fprintf(stderr, "%s: %d tokens, %d errors, %d names\n", file, st.Tokens, st.Errors, st.Names)
		fmt.Fprintf(stderr, "%s: names: %s\n", file, strings.Join(lx.Names(), " "))
		fmt.Fprintf(stderr, "%s: arena %s\n", file, a.Stats())
		fmt.Fprintf(stderr, "%s: %d bytes read in %d buffer fills\n", file, r.Offset(), r.Fills())
	}
	return collector, nil
}

func printToken(w io.Writer, path string, tok lexer.Token, useColor bool) {
	if !useColor {
		fmt.Fprintf(w, "%s:%s: (%s) %s\n", path, tok.Start, tok.Kind, tok.Lexeme)
		return
	}
	fmt.Fprintf(w, "%s:%s: %s(%s)\033[0m %s\n", path, tok.Start, kindColors[tok.Kind], tok.Kind, tok.Lexeme)
}

// report lexes path once and prints the error summary.
// It returns the process exit code.
func report(path string, cfg Config, stdout, stderr io.Writer) int {
	collector, err := lexFile(path, cfg, stdout, stderr)
	if collector.HasErrors() {
		fmt.Fprintf(stderr, "%s: %s\n", path, collector.Summary(cfg.Color))
	}
	if err != nil && !errors.Is(err, errTooManyErrors) {
		if !collector.HasFatalError() {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

// watchFile lexes path again every time it changes, until stop is closed
func watchFile(path string, cfg Config, stdout, stderr io.Writer, stop <-chan struct{}) error {
	var mu sync.Mutex
	watcher, err := watch.New(watch.DefaultDelay, func(changed string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(stderr, "%s changed, lexing again\n", path)
		report(path, cfg, stdout, stderr)
	})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}
	if cfg.Verbose {
		fmt.Fprintf(stderr, "Watching %s for changes (Ctrl+C to stop)...\n", path)
	}

	go watcher.Watch()
	<-stop

	// A callback that already started finishes before returning
	watcher.Close()
	mu.Lock()
	defer mu.Unlock()
	return nil
}
