package ucalc

import (
	"bytes"
	"errors"
	"io"

	"github.com/llir/llvm/ir"

	"github.com/kolkov/ucalc/internal/ast"
	"github.com/kolkov/ucalc/internal/eval"
)

// Program represents a compiled calc program.
// It is immutable and safe for concurrent use; each call to Run creates
// an independent execution context.
type Program struct {
	module *ir.Module
	root   ast.Node
	source string // Original source for debugging
}

// IR returns the textual LLVM IR of the compiled program.
func (p *Program) IR() string {
	return p.module.String()
}

// WriteIR writes the textual LLVM IR to w.
func (p *Program) WriteIR(w io.Writer) error {
	_, err := io.WriteString(w, p.module.String())
	return err
}

// Module returns the underlying LLVM IR module.
// The module must not be mutated; it is shared by all users of the Program.
func (p *Program) Module() *ir.Module {
	return p.module
}

// Source returns the original calc source code.
func (p *Program) Source() string {
	return p.source
}

// AST returns a pretty-printed representation of the program's syntax
// tree, suitable for debugging.
func (p *Program) AST() string {
	return ast.Dump(p.root)
}

// Run executes the compiled program on the reference evaluator with the
// given variable input and configuration. Variable values are read from
// input, one base-10 integer per line, in declaration order.
//
// If config is nil, default configuration is used.
// If config.Output is set, output is written there and the returned
// string will be empty.
func (p *Program) Run(input io.Reader, config *Config) (string, error) {
	if config == nil {
		config = &Config{}
	}

	var outputBuf *bytes.Buffer
	output := config.Output
	if output == nil {
		outputBuf = &bytes.Buffer{}
		output = outputBuf
	}

	runner := eval.New(input, output, config.Prompts)
	if err := runner.Run(p.root); err != nil {
		var inputErr *eval.InputError
		if errors.As(err, &inputErr) {
			return "", &RuntimeError{Message: inputErr.Error()}
		}
		if errors.Is(err, eval.ErrDivideByZero) {
			return "", &RuntimeError{Message: "division by zero"}
		}
		return "", &RuntimeError{Message: err.Error()}
	}

	if outputBuf != nil {
		return outputBuf.String(), nil
	}
	return "", nil
}
