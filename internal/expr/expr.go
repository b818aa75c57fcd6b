// Package expr implements the small expression sub-language used inside
// IfStatement nodes: a single comparison between two sides, each a number
// literal, a quoted string literal, or a bare identifier naming a top-level
// field of the current value.
//
//	expression := side operator side
//	side       := number | quoted_string | ident
//	operator   := "==" | "!=" | "<" | "<=" | ">" | ">="
//
// Numeric comparisons (<, <=, >, >=) coerce both sides to float64; equality
// comparisons (==, !=) use structural equality on the decoded value.
package expr

import (
	"strconv"
	"strings"

	"github.com/coreyclarkphd/flowscript/internal/flowerr"
	"github.com/coreyclarkphd/flowscript/internal/value"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokIdent
	tokOp
	tokEOF
)

type token struct {
	kind   tokenKind
	text   string
	column int
}

type lexer struct {
	src    string
	pos    int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, column: 1}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	l.column++
	return b
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.advance()
	}
}

var opSymbols = []string{"==", "!=", "<=", ">=", "<", ">"}

func (l *lexer) next() (token, *flowerr.Error) {
	l.skipSpace()
	startCol := l.column
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, column: startCol}, nil
	}

	for _, op := range opSymbols {
		if strings.HasPrefix(l.src[l.pos:], op) {
			for range op {
				l.advance()
			}
			return token{kind: tokOp, text: op, column: startCol}, nil
		}
	}

	c := l.peekByte()
	switch {
	case c == '"':
		return l.lexQuotedString(startCol)
	case c == '-' || (c >= '0' && c <= '9'):
		return l.lexNumber(startCol)
	case isIdentStart(c):
		return l.lexIdent(startCol)
	default:
		return token{}, flowerr.Parse(1, startCol, "unexpected character %q in expression", c)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (l *lexer) lexQuotedString(startCol int) (token, *flowerr.Error) {
	start := l.pos
	l.advance() // opening quote
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
			l.advance()
		}
		l.advance()
	}
	if l.pos >= len(l.src) {
		return token{}, flowerr.Parse(1, startCol, "unterminated string literal")
	}
	l.advance() // closing quote
	return token{kind: tokString, text: l.src[start:l.pos], column: startCol}, nil
}

func (l *lexer) lexNumber(startCol int) (token, *flowerr.Error) {
	start := l.pos
	if l.peekByte() == '-' {
		l.advance()
	}
	for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.advance()
	}
	if l.peekByte() == '.' {
		l.advance()
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.advance()
		}
	}
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		l.advance()
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.advance()
		}
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.advance()
		}
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], column: startCol}, nil
}

func (l *lexer) lexIdent(startCol int) (token, *flowerr.Error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.advance()
	}
	return token{kind: tokIdent, text: l.src[start:l.pos], column: startCol}, nil
}

// Eval evaluates condition against current, the current node value, and
// returns the boolean result of the single comparison it describes.
func Eval(condition string, current value.V) (bool, *flowerr.Error) {
	l := newLexer(condition)

	left, err := l.next()
	if err != nil {
		return false, err
	}
	if left.kind == tokEOF {
		return false, flowerr.Parse(1, left.column, "expected a comparison, got end of expression")
	}

	opTok, err := l.next()
	if err != nil {
		return false, err
	}
	if opTok.kind != tokOp {
		return false, flowerr.Parse(1, opTok.column, "expected a comparison operator, got %q", opTok.text)
	}

	right, err := l.next()
	if err != nil {
		return false, err
	}
	if right.kind == tokEOF {
		return false, flowerr.Parse(1, right.column, "expected a right-hand side operand")
	}

	trailing, err := l.next()
	if err != nil {
		return false, err
	}
	if trailing.kind != tokEOF {
		return false, flowerr.Parse(1, trailing.column, "unexpected trailing token %q", trailing.text)
	}

	leftVal, ferr := resolveSide(left, current)
	if ferr != nil {
		return false, ferr
	}
	rightVal, ferr := resolveSide(right, current)
	if ferr != nil {
		return false, ferr
	}

	switch opTok.text {
	case "==":
		return value.Equal(leftVal, rightVal), nil
	case "!=":
		return !value.Equal(leftVal, rightVal), nil
	case "<", "<=", ">", ">=":
		lf, ok := asFloat(leftVal)
		if !ok {
			return false, flowerr.Parse(1, left.column, "left-hand side is not a number")
		}
		rf, ok := asFloat(rightVal)
		if !ok {
			return false, flowerr.Parse(1, right.column, "right-hand side is not a number")
		}
		switch opTok.text {
		case "<":
			return lf < rf, nil
		case "<=":
			return lf <= rf, nil
		case ">":
			return lf > rf, nil
		default:
			return lf >= rf, nil
		}
	default:
		return false, flowerr.Parse(1, opTok.column, "unknown operator %q", opTok.text)
	}
}

func resolveSide(t token, current value.V) (value.V, *flowerr.Error) {
	switch t.kind {
	case tokNumber:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return value.Null(), flowerr.Parse(1, t.column, "invalid number literal %q", t.text)
		}
		return value.Number(f), nil
	case tokString:
		v, err := value.Parse(t.text)
		if err != nil {
			return value.Null(), flowerr.Parse(1, t.column, "invalid string literal %q", t.text)
		}
		return v, nil
	case tokIdent:
		v, ok := current.Get(t.text)
		if !ok {
			return value.Null(), flowerr.Parse(1, t.column, "no field %q on current value", t.text)
		}
		return v, nil
	default:
		return value.Null(), flowerr.Parse(1, t.column, "invalid operand")
	}
}

func asFloat(v value.V) (float64, bool) {
	if v.Kind() != value.KindNumber {
		return 0, false
	}
	return v.Float64(), true
}
