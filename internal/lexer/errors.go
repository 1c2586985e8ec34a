// Completion: 100% - Error taxonomy complete
package lexer

import (
	"errors"
	"fmt"
	"io"
)

// ErrorKind classifies lexical and session errors
type ErrorKind int

const (
	IOError ErrorKind = iota + 1
	UnterminatedString
	InvalidCharLiteral
	UnknownEscapeSequence
	UnexpectedCharacter
	AllocationError
	NumberOutOfRange
)

var (
	ErrIO                 = errors.New("i/o error")
	ErrUnterminatedString = errors.New("unterminated string")
	ErrInvalidCharLiteral = errors.New("invalid character literal")
	ErrUnknownEscape      = errors.New("unknown escape sequence")
	ErrUnexpectedChar     = errors.New("unexpected character")
	ErrAllocation         = errors.New("allocation failure")
	ErrNumberRange        = errors.New("number out of range")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case IOError:
		return ErrIO
	case UnterminatedString:
		return ErrUnterminatedString
	case InvalidCharLiteral:
		return ErrInvalidCharLiteral
	case UnknownEscapeSequence:
		return ErrUnknownEscape
	case UnexpectedCharacter:
		return ErrUnexpectedChar
	case AllocationError:
		return ErrAllocation
	case NumberOutOfRange:
		return ErrNumberRange
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return "unknown error"
}

// Error is a positioned lexer error
type Error struct {
	Kind ErrorKind
	File string
	Pos  Pos
	Msg  string
	Err  error // underlying cause, if any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Pos.Line, e.Pos.Col, e.Msg)
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Fatal reports whether the error ends the lexing session.
// All other errors only discard the current token.
func (e *Error) Fatal() bool {
	return e.Kind == IOError || e.Kind == AllocationError
}

// IsFatal reports whether err is a lexer error that ends the session.
// io.EOF is not fatal; any other error that is not an *Error is.
func IsFatal(err error) bool {
	if err == nil || errors.Is(err, io.EOF) {
		return false
	}
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Fatal()
	}
	return true
}
