// Completion: 100% - Error reporting complete, clear and helpful messages

// Package diag collects and renders positioned diagnostics
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xyproto/ylex/internal/lexer"
)

// Level indicates the severity of a diagnostic
type Level int

const (
	LevelError Level = iota // the token is discarded and lexing continues
	LevelFatal              // the session ends
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal error"
	default:
		return "unknown"
	}
}

// Location is a position in a source file. Columns start at 0.
type Location struct {
	File   string
	Line   int
	Column int
}

func (loc Location) String() string {
	if loc.File == "" {
		return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
	}
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}

// Diagnostic is a single reported problem
type Diagnostic struct {
	Level    Level
	Kind     string // short classification, e.g. "unterminated string"
	Message  string
	Location Location
}

// Error implements the error interface
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Location, d.Message)
}

// Line renders the diagnostic in token listing form:
// path:line:col: (err) message
func (d Diagnostic) Line(useColor bool) string {
	var sb strings.Builder
	sb.WriteString(d.Location.String())
	sb.WriteString(": ")
	if useColor {
		sb.WriteString("\033[1;31m") // Bold red
	}
	sb.WriteString("(err)")
	if useColor {
		sb.WriteString("\033[0m")
	}
	sb.WriteString(" ")
	sb.WriteString(d.Message)
	return sb.String()
}

// FromError converts an error returned by the lexer into a Diagnostic.
// Errors without a position are reported at line 0 of file.
func FromError(file string, err error) Diagnostic {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		level := LevelError
		if lerr.Fatal() {
			level = LevelFatal
		}
		return Diagnostic{
			Level:    level,
			Kind:     lerr.Kind.String(),
			Message:  lerr.Msg,
			Location: Location{File: lerr.File, Line: lerr.Pos.Line, Column: lerr.Pos.Col},
		}
	}
	return Diagnostic{
		Level:    LevelFatal,
		Kind:     "internal",
		Message:  err.Error(),
		Location: Location{File: file},
	}
}

// Collector accumulates diagnostics during a session
type Collector struct {
	errors    []Diagnostic
	maxErrors int
}

// NewCollector creates a collector that asks to stop after maxErrors errors.
// A limit of 0 or less means no limit.
func NewCollector(maxErrors int) *Collector {
	return &Collector{maxErrors: maxErrors}
}

// Add records a diagnostic
func (c *Collector) Add(d Diagnostic) {
	c.errors = append(c.errors, d)
}

// HasErrors returns true if any errors were collected
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// HasFatalError returns true if any fatal errors were collected
func (c *Collector) HasFatalError() bool {
	for _, d := range c.errors {
		if d.Level == LevelFatal {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of errors
func (c *Collector) ErrorCount() int {
	return len(c.errors)
}

// ShouldStop returns true if the error limit has been reached
func (c *Collector) ShouldStop() bool {
	return c.maxErrors > 0 && len(c.errors) >= c.maxErrors
}

// Summary returns "N error(s) found"
func (c *Collector) Summary(useColor bool) string {
	if useColor {
		return fmt.Sprintf("\033[1;31m%d error(s)\033[0m found", len(c.errors))
	}
	return fmt.Sprintf("%d error(s) found", len(c.errors))
}
