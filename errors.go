package ucalc

import (
	"fmt"
)

// ParseError represents a syntax error in calc source code.
type ParseError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

// SemanticError represents a declaration/use error found during analysis.
// All violations found in one pass are folded into Message.
type SemanticError struct {
	Message string // Error description
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error: %s", e.Message)
}

// RuntimeError represents an error during in-process execution of a
// compiled program, such as a non-numeric input line or division by zero.
type RuntimeError struct {
	Message string // Error description
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s", e.Message)
}
