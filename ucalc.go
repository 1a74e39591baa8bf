package ucalc

import (
	"io"

	"github.com/kolkov/ucalc/internal/codegen"
	"github.com/kolkov/ucalc/internal/parser"
	"github.com/kolkov/ucalc/internal/semantic"
)

// Version is the ucalc version string.
const Version = "0.1.0"

// Compile parses, validates and lowers a calc program to LLVM IR.
// The returned Program is immutable and can be executed multiple times
// with different inputs.
//
// Example:
//
//	prog, err := ucalc.Compile("with x: x + 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.IR())
func Compile(src string) (*Program, error) {
	return CompileWithConfig(src, nil)
}

// CompileWithConfig is Compile with explicit configuration.
func CompileWithConfig(src string, config *Config) (*Program, error) {
	if config == nil {
		config = &Config{}
	}
	config.applyDefaults()

	// Parse. A recovered parse may return a partial tree together with
	// errors; any error means the program is rejected.
	root, err := parser.Parse(src)
	if err != nil {
		if el, ok := err.(parser.ErrorList); ok && len(el) > 0 {
			return nil, &ParseError{
				Line:    el[0].Pos.Line,
				Column:  el[0].Pos.Column,
				Message: el[0].Message,
			}
		}
		return nil, &ParseError{Message: err.Error()}
	}
	if root == nil {
		return nil, &ParseError{Message: "empty program"}
	}

	// Validate declarations and uses.
	if errs := semantic.Check(root); len(errs) > 0 {
		return nil, &SemanticError{Message: semantic.ErrorList(errs).Error()}
	}

	// Lower to LLVM IR. Both earlier phases succeeded, so a failure here
	// is a contract violation inside the compiler, not a user error.
	module, err := codegen.Generate(root, codegen.Options{
		ModuleName: config.ModuleName,
		ReadFunc:   config.ReadFunc,
		WriteFunc:  config.WriteFunc,
	})
	if err != nil {
		return nil, err
	}

	return &Program{
		module: module,
		root:   root,
		source: src,
	}, nil
}

// Run compiles a calc program and executes it on the reference evaluator.
// This is a convenience function for one-off execution.
//
// Parameters:
//   - src: calc source code
//   - input: variable input source, one base-10 integer per line in
//     declaration order (can be nil for programs without variables)
//   - config: configuration (can be nil for defaults)
//
// Returns the program output as a string, or an error if compilation or
// execution fails.
//
// Example:
//
//	output, err := ucalc.Run("with x: x + 1", strings.NewReader("4\n"), nil)
//	// output: "The result is: 5\n"
func Run(src string, input io.Reader, config *Config) (string, error) {
	prog, err := CompileWithConfig(src, config)
	if err != nil {
		return "", err
	}
	return prog.Run(input, config)
}

// MustCompile is like Compile but panics if the program cannot be
// compiled. It simplifies initialization of global program variables.
func MustCompile(src string) *Program {
	prog, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return prog
}
