// Package lexer provides calc source code tokenization.
package lexer

import (
	"github.com/kolkov/ucalc/internal/token"
)

// Lexer tokenizes calc source code.
type Lexer struct {
	src     []byte         // Source code
	ch      byte           // Current character (0 at EOF)
	offset  int            // Offset of the character after ch
	pos     token.Position // Position of ch
	nextPos token.Position // Position of the character after ch
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   1,
			Column: 1,
		},
	}
	l.next() // Initialize first character
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Token represents a scanned token with its position and value.
// Value slices the original source buffer; no text is copied.
type Token struct {
	Type  token.Kind
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
// Once the input is exhausted, every further call returns an EOF token.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	pos := l.pos

	if l.ch == 0 {
		return Token{Type: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '+':
		l.next()
		return Token{Type: token.ADD, Pos: pos, Value: "+"}
	case '-':
		l.next()
		return Token{Type: token.SUB, Pos: pos, Value: "-"}
	case '*':
		l.next()
		return Token{Type: token.MUL, Pos: pos, Value: "*"}
	case '/':
		l.next()
		return Token{Type: token.DIV, Pos: pos, Value: "/"}
	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
	case ':':
		l.next()
		return Token{Type: token.COLON, Pos: pos, Value: ":"}
	case ',':
		l.next()
		return Token{Type: token.COMMA, Pos: pos, Value: ","}
	}

	if isDigit(l.ch) {
		return l.scanNumber(pos)
	}
	if isLetter(l.ch) {
		return l.scanIdent(pos)
	}

	// Unknown character: consume exactly one byte.
	start := pos.Offset
	l.next()
	return Token{Type: token.ILLEGAL, Pos: pos, Value: string(l.src[start : start+1])}
}

// scanNumber scans a maximal run of ASCII digits.
func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset
	for isDigit(l.ch) {
		l.next()
	}
	return Token{Type: token.NUMBER, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

// scanIdent scans an identifier: a leading ASCII letter followed by the
// maximal run of letters and digits, so "with12" is one identifier and
// never the with-keyword followed by a number. Only the exact text "with"
// is the keyword.
func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isLetter(l.ch) || isDigit(l.ch) {
		l.next()
	}
	value := string(l.src[start:l.endOffset()])
	return Token{Type: token.LookupIdent(value), Pos: pos, Value: value}
}

// endOffset returns the offset one past the last consumed character.
func (l *Lexer) endOffset() int {
	if l.ch == 0 {
		return len(l.src)
	}
	return l.pos.Offset
}

// skipWhitespace skips spaces, tabs, form feeds, vertical tabs,
// carriage returns and newlines.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\f' || l.ch == '\v' ||
		l.ch == '\r' || l.ch == '\n' {
		l.next()
	}
}

// next advances to the next character.
func (l *Lexer) next() {
	l.pos = l.nextPos
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}
	l.ch = l.src[l.offset]
	l.offset++
	if l.ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	} else {
		l.nextPos.Column++
	}
	l.nextPos.Offset = l.offset
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
