// Package ast defines the abstract syntax tree for calc programs.
//
// The node set is fixed and closed; consuming phases dispatch with
// exhaustive type switches rather than an open visitor:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── Factor     - number or identifier leaf
//	│   └── BinaryExpr - arithmetic operation
//	└── WithDecl - variable declarations plus body expression
//
// After panic-mode recovery the parser may leave a BinaryExpr operand or a
// WithDecl body nil; every consumer must check for absent subtrees.
package ast

import "github.com/kolkov/ucalc/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// BaseExpr provides common fields for all expression nodes.
type BaseExpr struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) End() token.Position { return b.EndPos }
func (b *BaseExpr) exprNode()           {}

// FactorKind distinguishes the two factor leaves.
type FactorKind uint8

const (
	Number FactorKind = iota // numeric literal
	Ident                    // variable reference
)

// Factor represents a leaf expression: a numeric literal or an identifier.
type Factor struct {
	BaseExpr
	Kind  FactorKind
	Value string // literal digits or identifier name
}

// Operator is a binary arithmetic operator.
type Operator uint8

const (
	Plus Operator = iota
	Minus
	Mul
	Div
)

// String returns the operator's source spelling.
func (op Operator) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "op(?)"
	}
}

// BinaryExpr represents a binary arithmetic operation.
// Left or Right may be nil when the parser recovered from a syntax error
// at that operand position.
type BinaryExpr struct {
	BaseExpr
	Op    Operator
	Left  Expr
	Right Expr
}

// Var is one declared variable name in a with header.
type Var struct {
	Name string
	Pos  token.Position
}

// WithDecl represents a variable declaration header with its body:
// "with x, y: x + y". Vars is non-empty whenever a WithDecl exists.
// Body may be nil after parser recovery.
type WithDecl struct {
	StartPos token.Position
	EndPos   token.Position
	Vars     []Var
	Body     Expr
}

func (w *WithDecl) Pos() token.Position { return w.StartPos }
func (w *WithDecl) End() token.Position { return w.EndPos }
