// Package ucalc compiles a minimal arithmetic expression language with
// optional variable declarations into LLVM IR.
//
// ucalc is a four-stage compiler written in Go, featuring:
//   - A tokenizing lexer with no lookahead beyond one character
//   - An LL(1) recursive-descent parser with panic-mode error recovery
//   - A single-pass declaration/use semantic analyzer
//   - An AST-to-IR code generator built on llir/llvm
//
// The language accepts an expression over 32-bit signed integers, with
// optional variables declared in a "with" header:
//
//	1 + 2 * 3
//	(1 + 2) * 3
//	with x, y: x * y + 1
//
// Declared variables are read at run time by an external read primitive;
// the final value is handed to an external write primitive. The generated
// module only declares these primitives, it does not define them.
//
// # Quick Start
//
// For one-off compilation to IR text:
//
//	prog, err := ucalc.Compile("with x: x + 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.IR())
//
// # Execution
//
// Compiled programs can also be executed in-process on a reference
// evaluator that mirrors the runtime contract of the external primitives:
//
//	output, err := ucalc.Run("with x: x + 1", strings.NewReader("4\n"), nil)
//	// output: "The result is: 5\n"
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: syntax errors in calc source
//   - [SemanticError]: declaration/use errors
//   - [RuntimeError]: errors during in-process execution
//
// # Thread Safety
//
// Compiled [Program] objects are immutable and safe for concurrent use.
// Each call to [Program.Run] creates an independent execution context.
package ucalc
