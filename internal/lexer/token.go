// Completion: 100% - Module complete
package lexer

import (
	"fmt"
	"strconv"
)

// Kind classifies a token
type Kind int

const (
	Special Kind = iota
	Identifier
	String
	Char
	Int
	Float
)

// String returns the short tag used in token listings
func (k Kind) String() string {
	switch k {
	case Special:
		return "spc"
	case Identifier:
		return "idn"
	case String:
		return "str"
	case Char:
		return "chr"
	case Int:
		return "int"
	case Float:
		return "flt"
	default:
		return "unknown"
	}
}

// Pos is a line/column position. Lines start at 1, columns at 0.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ValueKind tags the variant held by a Value
type ValueKind uint8

const (
	NoValue ValueKind = iota
	StrValue
	ByteValue
	UintValue
	FloatValue
)

// Value is the decoded payload of a token
type Value struct {
	kind ValueKind
	str  string
	num  uint64 // byte and uint payloads
	flt  float64
}

func strValue(s string) Value    { return Value{kind: StrValue, str: s} }
func byteValue(b byte) Value     { return Value{kind: ByteValue, num: uint64(b)} }
func uintValue(u uint64) Value   { return Value{kind: UintValue, num: u} }
func floatValue(f float64) Value { return Value{kind: FloatValue, flt: f} }

// Kind returns which variant v holds
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string payload of String and Identifier tokens
func (v Value) Str() string { return v.str }

// Byte returns the byte payload of Char and Special tokens
func (v Value) Byte() byte {
	if v.kind != ByteValue {
		return 0
	}
	return byte(v.num)
}

// Uint returns the payload of Int tokens
func (v Value) Uint() uint64 {
	if v.kind != UintValue {
		return 0
	}
	return v.num
}

// Float returns the payload of Float tokens
func (v Value) Float() float64 { return v.flt }

func (v Value) String() string {
	switch v.kind {
	case StrValue:
		return strconv.Quote(v.str)
	case ByteValue:
		return strconv.QuoteRune(rune(v.num))
	case UintValue:
		return strconv.FormatUint(v.num, 10)
	case FloatValue:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	default:
		return "<none>"
	}
}

// Token is one classified span of source bytes.
// Lexeme and string values point into the arena passed to Lexer.Next; a
// Token must not be used after that arena is destroyed.
type Token struct {
	Kind   Kind
	Lexeme string
	Start  Pos // first byte of the token
	End    Pos // just past the last byte of the token
	Value  Value
}

func (t Token) String() string {
	return fmt.Sprintf("%s: (%s) %s", t.Start, t.Kind, t.Lexeme)
}
