// Package semantic provides declaration/use analysis for calc programs.
//
// The language has exactly one flat scope per program: every variable is
// declared in the optional with header and visible in the whole body.
// The checker validates that
//   - no name is declared twice, and
//   - every identifier used in the body was declared.
//
// Analysis is not fail-fast: every violation found in one pass is
// reported. The tree is never mutated.
package semantic

import (
	"fmt"
	"strings"

	"github.com/kolkov/ucalc/internal/token"
)

// ErrorKind categorizes semantic errors.
type ErrorKind uint8

const (
	// DuplicateDeclaration reports a name declared more than once in the
	// with header.
	DuplicateDeclaration ErrorKind = iota
	// UndeclaredUse reports an identifier used without a declaration.
	UndeclaredUse
	// IncompleteExpr reports an absent subtree left behind by parser
	// error recovery.
	IncompleteExpr
)

// Error represents a semantic analysis error with source location.
type Error struct {
	Pos  token.Position
	Kind ErrorKind
	Name string // Variable name, empty for IncompleteExpr
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case DuplicateDeclaration:
		msg = fmt.Sprintf("variable %q already declared", e.Name)
	case UndeclaredUse:
		msg = fmt.Sprintf("variable %q not declared", e.Name)
	case IncompleteExpr:
		msg = "incomplete expression"
	default:
		msg = "semantic error"
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return msg
}

// ErrorList is a collection of semantic errors.
type ErrorList []*Error

// Add appends an error to the list.
func (el *ErrorList) Add(pos token.Position, kind ErrorKind, name string) {
	*el = append(*el, &Error{Pos: pos, Kind: kind, Name: name})
}

// Err returns an error if the list is non-empty, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Error implements the error interface for ErrorList.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		var sb strings.Builder
		sb.WriteString(el[0].Error())
		for _, e := range el[1:] {
			sb.WriteByte('\n')
			sb.WriteString(e.Error())
		}
		return sb.String()
	}
}
