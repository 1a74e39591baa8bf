// Package eval executes a validated calc AST directly.
//
// It mirrors the contract of the external runtime the generated IR links
// against: each declared variable is read as one base-10 integer line from
// the input source, in declaration order, and the final value is written
// with the fixed "The result is: " label. This makes compiled programs
// executable in-process, without an LLVM backend, for tests and the CLI.
//
// Arithmetic is 32-bit signed with truncating division. The emitted IR
// leaves division by zero unchecked; the evaluator reports it as a runtime
// error instead, since there is no machine trap to defer to.
package eval

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kolkov/ucalc/internal/ast"
)

// ErrPrecondition reports an attempt to evaluate a program that was never
// validated or whose validation failed.
var ErrPrecondition = errors.New("eval: program was not validated")

// ErrDivideByZero reports integer division by zero during evaluation.
var ErrDivideByZero = errors.New("eval: division by zero")

// InputError reports a variable input line that does not parse as a
// base-10 integer. Raw carries the offending text.
type InputError struct {
	Name string // Variable being read
	Raw  string // Raw input text
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input for %s: %q", e.Name, e.Raw)
}

// Runner evaluates one program against one input source.
type Runner struct {
	scanner *bufio.Scanner
	output  io.Writer
	prompts bool

	// vars binds each declared variable to the value read for it.
	// Bindings are written once at declaration time.
	vars map[string]int32
}

// New creates a Runner reading variable values from input and writing the
// result (and prompts, when enabled) to output.
func New(input io.Reader, output io.Writer, prompts bool) *Runner {
	if input == nil {
		input = strings.NewReader("")
	}
	return &Runner{
		scanner: bufio.NewScanner(input),
		output:  output,
		prompts: prompts,
		vars:    make(map[string]int32),
	}
}

// Run evaluates root and writes the result. The tree must have been
// accepted by the semantic analyzer.
func (r *Runner) Run(root ast.Node) error {
	if root == nil {
		return ErrPrecondition
	}

	var body ast.Expr
	switch n := root.(type) {
	case *ast.WithDecl:
		for _, v := range n.Vars {
			val, err := r.read(v.Name)
			if err != nil {
				return err
			}
			r.vars[v.Name] = val
		}
		body = n.Body
	case ast.Expr:
		body = n
	default:
		return fmt.Errorf("%w: unexpected root %T", ErrPrecondition, root)
	}

	if body == nil {
		return fmt.Errorf("%w: program has no body", ErrPrecondition)
	}

	result, err := r.eval(body)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(r.output, "The result is: %d\n", result)
	return err
}

// read reads one input line and parses it as a base-10 32-bit integer.
func (r *Runner) read(name string) (int32, error) {
	if r.prompts {
		fmt.Fprintf(r.output, "Enter a value for %s: ", name)
	}

	if !r.scanner.Scan() {
		return 0, &InputError{Name: name, Raw: ""}
	}
	line := r.scanner.Text()

	val, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if err != nil {
		return 0, &InputError{Name: name, Raw: line}
	}
	return int32(val), nil
}

func (r *Runner) eval(expr ast.Expr) (int32, error) {
	switch e := expr.(type) {
	case *ast.Factor:
		if e.Kind == ast.Ident {
			val, ok := r.vars[e.Value]
			if !ok {
				return 0, fmt.Errorf("%w: variable %q has no binding", ErrPrecondition, e.Value)
			}
			return val, nil
		}
		// Out-of-range literals wrap per fixed-width conversion, unchecked.
		n, _ := strconv.ParseUint(e.Value, 10, 64)
		return int32(uint32(n)), nil

	case *ast.BinaryExpr:
		if e.Left == nil || e.Right == nil {
			return 0, fmt.Errorf("%w: binary expression has absent operand", ErrPrecondition)
		}
		left, err := r.eval(e.Left)
		if err != nil {
			return 0, err
		}
		right, err := r.eval(e.Right)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case ast.Plus:
			return left + right, nil
		case ast.Minus:
			return left - right, nil
		case ast.Mul:
			return left * right, nil
		case ast.Div:
			if right == 0 {
				return 0, ErrDivideByZero
			}
			return left / right, nil
		default:
			return 0, fmt.Errorf("%w: unknown operator %v", ErrPrecondition, e.Op)
		}

	default:
		return 0, fmt.Errorf("%w: unexpected expression %T", ErrPrecondition, expr)
	}
}
