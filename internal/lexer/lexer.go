// Completion: 100% - Core lexer complete, supports all token kinds

// Package lexer turns a byte stream into classified tokens with exact
// source positions.
//
// The lexer pulls one byte at a time from an io.ByteScanner, keeps a single
// lookahead byte, and writes every lexeme and decoded literal into the
// arena passed to Next. Lexical errors are reported per token and lexing
// resumes at the next byte; only I/O and allocation failures end a session.
package lexer

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/xyproto/ylex/internal/arena"
	"github.com/xyproto/ylex/internal/scratch"
	"github.com/xyproto/ylex/internal/symtab"
)

// VerboseMode prints every produced token and error to stderr
var VerboseMode bool

// specials is the fixed set of single-byte punctuation and operator tokens
const specials = ";@=:|<->()?.#,[{]}+%&^~!*/"

var isSpecialTable [256]bool

func init() {
	for i := 0; i < len(specials); i++ {
		isSpecialTable[specials[i]] = true
	}
}

func isSpecial(c byte) bool { return isSpecialTable[c] }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isSpace reports the bytes skipped between tokens
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\b' || c == '\n'
}

// endsIdentifier reports the bytes that can not be part of an identifier
func endsIdentifier(c byte) bool {
	return c == '"' || c == '`' || isSpecial(c) || isSpace(c) || c < 0x20 || c == 0x7f
}

// Options tune the grammar
type Options struct {
	// Comments skips "//" line comments between tokens.
	// When false, '/' is always a special character.
	Comments bool
}

// Stats counts what a lexer has produced so far
type Stats struct {
	Tokens int
	Errors int
	Names  int // distinct interned identifiers and specials
}

// Lexer is the tokenizer state machine
type Lexer struct {
	src  io.ByteScanner
	file string
	opts Options

	cc  byte // lookahead byte, valid while !eof
	eof bool
	err error // sticky fatal error

	line, col int
	start     Pos

	raw   *scratch.Buffer // lexeme being scanned
	val   *scratch.Buffer // decoded literal being scanned
	names *symtab.Table   // interned names, valid for owner only
	owner *arena.Arena

	tokens int
	errors int
}

// New creates a lexer reading from src. The file name is only used in
// error messages. The first byte is read immediately.
func New(src io.ByteScanner, file string, opts Options) (*Lexer, error) {
	l := &Lexer{
		src:  src,
		file: file,
		opts: opts,
		line: 1,
		raw:  scratch.New("lexeme"),
		val:  scratch.New("value"),
	}
	c, err := src.ReadByte()
	switch {
	case err == io.EOF:
		l.eof = true
	case err != nil:
		return nil, l.fail(IOError, err, "read failed: %v", err)
	default:
		l.cc = c
	}
	return l, nil
}

// File returns the file name used in error messages
func (l *Lexer) File() string {
	return l.file
}

// Stats returns counters for the session so far.
// Names counts the names interned in the arena passed to the last Next.
func (l *Lexer) Stats() Stats {
	st := Stats{Tokens: l.tokens, Errors: l.errors}
	if l.names != nil {
		st.Names = l.names.Count()
	}
	return st
}

// Names returns the interned identifiers and specials, sorted
func (l *Lexer) Names() []string {
	if l.names == nil {
		return nil
	}
	keys := l.names.Keys()
	sort.Strings(keys)
	return keys
}

// namesFor returns the name table bound to a. Interned strings live in the
// arena they were first copied into, so a new arena starts a new table.
func (l *Lexer) namesFor(a *arena.Arena) *symtab.Table {
	if l.names == nil || l.owner != a {
		l.names = symtab.New(256)
		l.owner = a
	}
	return l.names
}

func (l *Lexer) pos() Pos {
	return Pos{Line: l.line, Col: l.col}
}

// advance consumes the lookahead byte and reads the next one
func (l *Lexer) advance() {
	if l.eof {
		return
	}
	if l.cc == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	c, err := l.src.ReadByte()
	switch {
	case err == io.EOF:
		l.eof = true
	case err != nil:
		l.eof = true
		l.fail(IOError, err, "read failed: %v", err)
	default:
		l.cc = c
	}
}

// peekIs reports whether the byte after the lookahead byte is c.
// The peeked byte is pushed back into the source.
func (l *Lexer) peekIs(c byte) bool {
	next, err := l.src.ReadByte()
	if err != nil {
		if err != io.EOF {
			l.fail(IOError, err, "read failed: %v", err)
		}
		return false
	}
	if err := l.src.UnreadByte(); err != nil {
		l.fail(IOError, err, "pushback failed: %v", err)
		return false
	}
	return next == c
}

// fail records a fatal error. Every later call to Next returns it.
func (l *Lexer) fail(kind ErrorKind, cause error, format string, args ...any) error {
	if l.err == nil {
		l.err = &Error{Kind: kind, File: l.file, Pos: l.pos(), Msg: fmt.Sprintf(format, args...), Err: cause}
	}
	return l.err
}

// errorAt builds a recoverable error for the current token attempt
func (l *Lexer) errorAt(p Pos, kind ErrorKind, format string, args ...any) error {
	l.errors++
	err := &Error{Kind: kind, File: l.file, Pos: p, Msg: fmt.Sprintf(format, args...)}
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "lexer: %v\n", err)
	}
	return err
}

// skipSpace consumes whitespace and, when enabled, line comments
func (l *Lexer) skipSpace() {
	for !l.eof {
		if isSpace(l.cc) {
			l.advance()
			continue
		}
		if l.opts.Comments && l.cc == '/' && l.peekIs('/') {
			for !l.eof && l.cc != '\n' {
				l.advance()
			}
			continue
		}
		return
	}
}

// Next returns the next token. Lexical errors are returned as *Error and
// the following call continues after the offending input. At the end of
// input Next returns io.EOF, on every call.
func (l *Lexer) Next(a *arena.Arena) (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	l.skipSpace()
	if l.err != nil {
		return Token{}, l.err
	}
	if l.eof {
		return Token{}, io.EOF
	}

	l.start = l.pos()
	l.raw.Reset()
	l.val.Reset()

	var (
		tok Token
		err error
	)
	switch c := l.cc; {
	case c == '"':
		tok, err = l.lexString(a)
	case c == '`':
		tok, err = l.lexChar(a)
	case isDigit(c):
		tok, err = l.lexNumber(a)
	case isSpecial(c):
		tok, err = l.lexSpecial(a)
	default:
		tok, err = l.lexIdentifier(a)
	}
	if l.err != nil {
		return Token{}, l.err
	}
	if err != nil {
		return Token{}, err
	}
	l.tokens++
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "lexer: %s %s\n", l.file, tok)
	}
	return tok, nil
}

// finish copies the scanned lexeme into the arena and builds the token
func (l *Lexer) finish(a *arena.Arena, kind Kind, v Value) (Token, error) {
	l.raw.Compact()
	var (
		lexeme string
		err    error
	)
	if kind == Identifier || kind == Special {
		lexeme, err = l.namesFor(a).Intern(l.raw.Bytes(), a)
	} else {
		lexeme, err = a.String(l.raw.Bytes())
	}
	if err != nil {
		return Token{}, l.fail(AllocationError, err, "can not store token: %v", err)
	}
	if kind == Identifier {
		v = strValue(lexeme)
	}
	return Token{Kind: kind, Lexeme: lexeme, Start: l.start, End: l.pos(), Value: v}, nil
}

// decoded copies the decoded literal bytes into the arena
func (l *Lexer) decoded(a *arena.Arena) (string, error) {
	l.val.Compact()
	s, err := a.String(l.val.Bytes())
	if err != nil {
		return "", l.fail(AllocationError, err, "can not store literal: %v", err)
	}
	return s, nil
}

func (l *Lexer) lexSpecial(a *arena.Arena) (Token, error) {
	c := l.cc
	l.raw.Append(c)
	l.advance()
	return l.finish(a, Special, byteValue(c))
}

func (l *Lexer) lexIdentifier(a *arena.Arena) (Token, error) {
	for !l.eof && !endsIdentifier(l.cc) {
		l.raw.Append(l.cc)
		l.advance()
	}
	if l.raw.Len() == 0 {
		c := l.cc
		l.advance()
		return Token{}, l.errorAt(l.start, UnexpectedCharacter, "unexpected character %q", c)
	}
	return l.finish(a, Identifier, Value{})
}

// lexNumber scans digits with at most one decimal point. A second point is
// consumed and ends the literal. Integers must fit in 64 bits; floats are
// rounded to the nearest float64.
func (l *Lexer) lexNumber(a *arena.Arena) (Token, error) {
	var (
		v        uint64
		overflow bool
		points   int
	)
	for !l.eof && (isDigit(l.cc) || l.cc == '.') {
		c := l.cc
		l.raw.Append(c)
		l.advance()
		if c == '.' {
			points++
			if points > 1 {
				break
			}
			continue
		}
		d := uint64(c - '0')
		if v > (math.MaxUint64-d)/10 {
			overflow = true
		}
		v = v*10 + d
	}
	digits := l.raw.Len()
	if points > 1 {
		digits-- // second point
	}
	if points < 2 {
		if !l.eof && (l.cc == 'u' || l.cc == 'U') {
			l.raw.Append(l.cc)
			l.advance()
		}
		if !l.eof && (l.cc == 'f' || l.cc == 'F' || l.cc == 'l' || l.cc == 'L') {
			l.raw.Append(l.cc)
			l.advance()
		}
	}
	if points == 0 {
		if overflow {
			return Token{}, l.errorAt(l.start, NumberOutOfRange, "integer literal %s does not fit in 64 bits", l.raw.Bytes())
		}
		return l.finish(a, Int, uintValue(v))
	}
	f, err := strconv.ParseFloat(string(l.raw.Bytes()[:digits]), 64)
	if err != nil {
		return Token{}, l.errorAt(l.start, NumberOutOfRange, "float literal %s is out of range", l.raw.Bytes())
	}
	return l.finish(a, Float, floatValue(f))
}

// appendDisplay adds c to the lexeme, showing control bytes in escaped form
func (l *Lexer) appendDisplay(c byte) {
	switch c {
	case 0:
		l.raw.Write([]byte(`\0`))
	case '\b':
		l.raw.Write([]byte(`\b`))
	case '\t':
		l.raw.Write([]byte(`\t`))
	case '\r':
		l.raw.Write([]byte(`\r`))
	default:
		l.raw.Append(c)
	}
}

// lexString scans a string literal. A newline right after the opening
// quote makes the literal multiline; otherwise a raw newline ends it with
// an error.
func (l *Lexer) lexString(a *arena.Arena) (Token, error) {
	l.raw.Append('"')
	l.advance()
	multiline := !l.eof && l.cc == '\n'
	for {
		if l.eof {
			return Token{}, l.errorAt(l.pos(), UnterminatedString, "unterminated string literal")
		}
		switch c := l.cc; c {
		case '"':
			l.raw.Append(c)
			l.advance()
			s, err := l.decoded(a)
			if err != nil {
				return Token{}, err
			}
			return l.finish(a, String, strValue(s))
		case '\n':
			if !multiline {
				p := l.pos()
				l.advance()
				return Token{}, l.errorAt(p, UnterminatedString, "newline in single-line string literal")
			}
			l.raw.Append(c)
			l.val.Append(c)
			l.advance()
		case '\\':
			if !multiline && l.peekIs('\n') {
				l.raw.Append(c)
				l.advance()
				p := l.pos()
				l.advance()
				return Token{}, l.errorAt(p, UnterminatedString, "newline in single-line string literal")
			}
			b, err := l.escape(UnterminatedString)
			if err != nil {
				l.skipString(multiline)
				return Token{}, err
			}
			l.val.Append(b)
		default:
			l.appendDisplay(c)
			l.val.Append(c)
			l.advance()
		}
	}
}

// skipString discards the rest of a string literal after a decoding error.
// A raw newline that ends a single-line string is left for the next token.
func (l *Lexer) skipString(multiline bool) {
	for !l.eof {
		switch l.cc {
		case '"':
			l.advance()
			return
		case '\n':
			if !multiline {
				return
			}
		case '\\':
			l.advance()
			if l.eof || (l.cc == '\n' && !multiline) {
				return
			}
		}
		l.advance()
	}
}

// lexChar scans a character literal holding exactly one decoded byte.
// A closing backtick directly after the unit belongs to the literal.
func (l *Lexer) lexChar(a *arena.Arena) (Token, error) {
	l.raw.Append('`')
	l.advance()
	if l.eof {
		return Token{}, l.errorAt(l.pos(), InvalidCharLiteral, "unterminated character literal")
	}
	if l.cc == '\n' {
		p := l.pos()
		l.advance()
		return Token{}, l.errorAt(p, InvalidCharLiteral, "newline in character literal")
	}
	var b byte
	if l.cc == '\\' {
		var err error
		b, err = l.escape(InvalidCharLiteral)
		if err != nil {
			for !l.eof && l.cc != '`' && !isSpace(l.cc) {
				l.advance()
			}
			if !l.eof && l.cc == '`' {
				l.advance()
			}
			return Token{}, err
		}
	} else {
		b = l.cc
		l.appendDisplay(b)
		l.advance()
	}
	if !l.eof && l.cc == '`' {
		l.raw.Append('`')
		l.advance()
	}
	return l.finish(a, Char, byteValue(b))
}
