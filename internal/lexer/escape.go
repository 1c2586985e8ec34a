// Completion: 100% - Escape decoding complete
package lexer

// escape decodes one backslash sequence starting at the lookahead byte.
// The raw sequence is appended to the lexeme. On an unknown or malformed
// sequence the offending byte is left unconsumed. eofKind selects the error
// reported when the input ends inside the sequence.
func (l *Lexer) escape(eofKind ErrorKind) (byte, error) {
	l.raw.Append('\\')
	l.advance()
	if l.eof {
		return 0, l.errorAt(l.pos(), eofKind, "unexpected end of input in escape sequence")
	}
	p := l.pos()
	c := l.cc
	var b byte
	switch c {
	case 'n':
		b = '\n'
	case 't':
		b = '\t'
	case 'b':
		b = '\b'
	case 'r':
		b = '\r'
	case '0':
		b = 0
	case '\\', '"', '`':
		b = c
	case 'x':
		return l.numericEscape(p, 2, 16)
	case 'o':
		return l.numericEscape(p, 3, 8)
	default:
		if c < 0x20 || c >= 0x7f {
			return 0, l.errorAt(p, UnknownEscapeSequence, "unknown escape sequence: backslash followed by %q", c)
		}
		return 0, l.errorAt(p, UnknownEscapeSequence, "unknown escape sequence \\%c", c)
	}
	l.raw.Append(c)
	l.advance()
	return b, nil
}

// numericEscape decodes \x and \o: exactly width digits in the given base,
// with a result that must fit in one byte.
func (l *Lexer) numericEscape(p Pos, width, base int) (byte, error) {
	letter := l.cc
	l.raw.Append(letter)
	l.advance()
	v := 0
	for i := 0; i < width; i++ {
		if l.eof {
			return 0, l.errorAt(l.pos(), UnknownEscapeSequence, "unexpected end of input in \\%c escape", letter)
		}
		d := digitValue(l.cc)
		if d < 0 || d >= base {
			return 0, l.errorAt(l.pos(), UnknownEscapeSequence, "invalid digit %q in \\%c escape", l.cc, letter)
		}
		v = v*base + d
		l.raw.Append(l.cc)
		l.advance()
	}
	if v > 0xff {
		return 0, l.errorAt(p, UnknownEscapeSequence, "\\%c escape value %d does not fit in a byte", letter, v)
	}
	return byte(v), nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
