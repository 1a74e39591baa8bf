// Package token defines lexical tokens for the calc expression language.
package token

// Kind represents a lexical token type.
type Kind uint8

const (
	// Special tokens
	ILLEGAL Kind = iota // <illegal>
	EOF                 // EOF

	// Operators and delimiters
	operatorStart
	ADD    // +
	SUB    // -
	MUL    // *
	DIV    // /
	LPAREN // (
	RPAREN // )
	COLON  // :
	COMMA  // ,
	operatorEnd

	// Keywords
	WITH // with

	// Literals
	IDENT  // identifier
	NUMBER // number
)

// IsOperator returns true if the token is an operator or delimiter.
func (k Kind) IsOperator() bool {
	return k > operatorStart && k < operatorEnd
}

// IsLiteral returns true if the token is an identifier or number.
func (k Kind) IsLiteral() bool {
	return k == IDENT || k == NUMBER
}

var kindNames = map[Kind]string{
	ILLEGAL: "<illegal>",
	EOF:     "end of input",
	ADD:     "+",
	SUB:     "-",
	MUL:     "*",
	DIV:     "/",
	LPAREN:  "(",
	RPAREN:  ")",
	COLON:   ":",
	COMMA:   ",",
	WITH:    "with",
	IDENT:   "identifier",
	NUMBER:  "number",
}

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "token(?)"
}

// LookupIdent returns WITH for the exact text "with", otherwise IDENT.
// The whole run must match: "with12" and "withfoo" are plain identifiers.
func LookupIdent(ident string) Kind {
	if ident == "with" {
		return WITH
	}
	return IDENT
}
