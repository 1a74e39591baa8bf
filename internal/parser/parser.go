package parser

import (
	"github.com/kolkov/ucalc/internal/ast"
	"github.com/kolkov/ucalc/internal/lexer"
	"github.com/kolkov/ucalc/internal/token"
)

// Parser is a recursive descent parser for calc programs.
//
// The grammar is LL(1) with one token of lookahead:
//
//	Program := ( 'with' Ident (',' Ident)* ':' )? Expr
//	Expr    := Term (('+' | '-') Term)*
//	Term    := Factor (('*' | '/') Factor)*
//	Factor  := Number | Ident | '(' Expr ')'
//
// Binary operators are left-associative; '*' and '/' bind tighter than
// '+' and '-'. The top-level production must be followed by end of input.
//
// Syntax errors trigger panic-mode recovery: tokens are skipped up to a
// synchronization point and parsing continues, accumulating every error.
// A recovered parse may yield a tree with absent (nil) operands; callers
// must check both the returned root and the error.
type Parser struct {
	lexer  *lexer.Lexer // Lexer instance
	tok    lexer.Token  // Current token
	errors ErrorList    // Accumulated errors
}

// Parse parses a calc program from source code.
// The returned root is either an ast.Expr or an *ast.WithDecl; it is nil
// when program-level recovery discarded the whole input.
func Parse(src string) (ast.Node, error) {
	return ParseBytes([]byte(src))
}

// ParseBytes parses a calc program from a byte slice.
func ParseBytes(src []byte) (ast.Node, error) {
	p := &Parser{
		lexer: lexer.New(src),
	}
	p.next() // Initialize first token

	root := p.parseProgram()

	if err := p.errors.Err(); err != nil {
		return root, err
	}
	return root, nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (ast.Expr, error) {
	p := &Parser{
		lexer: lexer.New([]byte(src)),
	}
	p.next()

	expr := p.parseExpr()

	if err := p.errors.Err(); err != nil {
		return expr, err
	}
	return expr, nil
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	p.tok = p.lexer.Scan()
}

// expect checks that the current token is kind and advances.
// If not, it records an error and returns false without advancing.
func (p *Parser) expect(kind token.Kind) bool {
	if p.tok.Type != kind {
		p.errorf("expected %s, got %s", kind, p.tokenDesc())
		return false
	}
	p.next()
	return true
}

// match returns true if the current token matches any of the given kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.tok.Type == k {
			return true
		}
	}
	return false
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.IDENT, token.NUMBER, token.ILLEGAL:
		return "'" + p.tok.Value + "'"
	default:
		return p.tok.Type.String()
	}
}

// errorf records a formatted parse error at the current position.
func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, errorf(p.tok.Pos, format, args...))
}

// sync implements panic-mode recovery: it skips tokens until one of the
// stop kinds is reached. EOF always terminates the skip, so recovery
// strictly advances and never loops.
func (p *Parser) sync(stop ...token.Kind) {
	for p.tok.Type != token.EOF && !p.match(stop...) {
		p.next()
	}
}

// -----------------------------------------------------------------------------
// Grammar productions
// -----------------------------------------------------------------------------

// parseProgram parses the top-level production: an optional with header
// followed by an expression and end of input. A malformed header or
// trailing tokens discard the whole program (recovery to EOF, nil root).
func (p *Parser) parseProgram() ast.Node {
	startPos := p.tok.Pos
	var vars []ast.Var

	if p.tok.Type == token.WITH {
		p.next()

		if p.tok.Type != token.IDENT {
			p.errorf("expected identifier after 'with', got %s", p.tokenDesc())
			p.sync()
			return nil
		}
		vars = append(vars, ast.Var{Name: p.tok.Value, Pos: p.tok.Pos})
		p.next()

		for p.tok.Type == token.COMMA {
			p.next()
			if p.tok.Type != token.IDENT {
				p.errorf("expected identifier after ',', got %s", p.tokenDesc())
				p.sync()
				return nil
			}
			vars = append(vars, ast.Var{Name: p.tok.Value, Pos: p.tok.Pos})
			p.next()
		}

		if !p.expect(token.COLON) {
			p.sync()
			return nil
		}
	}

	expr := p.parseExpr()

	if p.tok.Type != token.EOF {
		p.errorf("expected end of input, got %s", p.tokenDesc())
		p.sync()
		return nil
	}

	if len(vars) == 0 {
		return expr
	}
	return &ast.WithDecl{
		StartPos: startPos,
		EndPos:   p.tok.Pos,
		Vars:     vars,
		Body:     expr,
	}
}

// parseExpr parses additive expressions: Term (('+' | '-') Term)*.
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseTerm()

	for p.match(token.ADD, token.SUB) {
		op := ast.Plus
		if p.tok.Type == token.SUB {
			op = ast.Minus
		}
		p.next()

		right := p.parseTerm()
		left = p.newBinary(op, left, right)
	}

	return left
}

// parseTerm parses multiplicative expressions: Factor (('*' | '/') Factor)*.
func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()

	for p.match(token.MUL, token.DIV) {
		op := ast.Mul
		if p.tok.Type == token.DIV {
			op = ast.Div
		}
		p.next()

		right := p.parseFactor()
		left = p.newBinary(op, left, right)
	}

	return left
}

// parseFactor parses a number, an identifier, or a parenthesized
// expression. On an unexpected token it records an error and recovers by
// skipping to the nearest operator, ')' or end of input, returning nil.
func (p *Parser) parseFactor() ast.Expr {
	switch p.tok.Type {
	case token.NUMBER:
		f := &ast.Factor{
			BaseExpr: ast.BaseExpr{StartPos: p.tok.Pos, EndPos: p.tok.Pos},
			Kind:     ast.Number,
			Value:    p.tok.Value,
		}
		p.next()
		return f

	case token.IDENT:
		f := &ast.Factor{
			BaseExpr: ast.BaseExpr{StartPos: p.tok.Pos, EndPos: p.tok.Pos},
			Kind:     ast.Ident,
			Value:    p.tok.Value,
		}
		p.next()
		return f

	case token.LPAREN:
		p.next()
		expr := p.parseExpr()
		if p.tok.Type != token.RPAREN {
			p.errorf("expected ), got %s", p.tokenDesc())
			p.sync(token.RPAREN, token.MUL, token.ADD, token.SUB, token.DIV)
			if p.tok.Type == token.RPAREN {
				p.next()
			}
			return expr
		}
		p.next()
		return expr

	default:
		p.errorf("expected number, identifier or (, got %s", p.tokenDesc())
		p.sync(token.RPAREN, token.MUL, token.ADD, token.SUB, token.DIV)
		return nil
	}
}

// newBinary builds a BinaryExpr; either operand may be nil after recovery.
func (p *Parser) newBinary(op ast.Operator, left, right ast.Expr) *ast.BinaryExpr {
	start := p.tok.Pos
	end := p.tok.Pos
	if left != nil {
		start = left.Pos()
	}
	if right != nil {
		end = right.End()
	}
	return &ast.BinaryExpr{
		BaseExpr: ast.BaseExpr{StartPos: start, EndPos: end},
		Op:       op,
		Left:     left,
		Right:    right,
	}
}
