// Package codegen lowers a validated calc AST into an LLVM IR module.
//
// The emitted module contains a main(i32, ptr) entry function that always
// returns 0, plus external declarations of the runtime read and write
// primitives. For every declared variable the entry block calls the read
// primitive with the variable's name as a string constant, in declaration
// order, before the body is evaluated; the final value is passed to the
// write primitive as the last operation before the return.
//
// Arithmetic is 32-bit signed. add/sub/mul carry the nsw flag, so signed
// overflow is an undefined condition rather than two's-complement wrap;
// sdiv truncates toward zero and division by zero is unchecked. This
// matches the external execution backend's semantics.
//
// Precondition: the tree passed to Generate was accepted by the semantic
// analyzer. Lowering an unvalidated tree is a contract violation and is
// reported as an error, never as silently incorrect IR.
package codegen

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/kolkov/ucalc/internal/ast"
)

// ErrPrecondition reports an attempt to lower a program that was never
// validated or whose validation failed.
var ErrPrecondition = errors.New("codegen: program was not validated")

// Options configures module emission.
type Options struct {
	// ModuleName is the source filename recorded in the module
	// (default "calc.expr").
	ModuleName string

	// ReadFunc is the name of the external read primitive with
	// signature (ptr) -> i32 (default "calc_read").
	ReadFunc string

	// WriteFunc is the name of the external write primitive with
	// signature (i32) -> void (default "calc_write").
	WriteFunc string
}

func (o *Options) applyDefaults() {
	if o.ModuleName == "" {
		o.ModuleName = "calc.expr"
	}
	if o.ReadFunc == "" {
		o.ReadFunc = "calc_read"
	}
	if o.WriteFunc == "" {
		o.WriteFunc = "calc_write"
	}
}

// generator holds per-run lowering state.
type generator struct {
	module *ir.Module
	entry  *ir.Block
	readFn *ir.Func

	// nameMap binds each declared variable to the value returned by its
	// read call. Bindings are written once at declaration time; the
	// language has no reassignment, so no storage cells are needed.
	nameMap map[string]value.Value
}

// Generate lowers root into a fresh LLVM IR module.
func Generate(root ast.Node, opts Options) (*ir.Module, error) {
	if root == nil {
		return nil, ErrPrecondition
	}
	opts.applyDefaults()

	g := &generator{
		module:  ir.NewModule(),
		nameMap: make(map[string]value.Value),
	}
	g.module.SourceFilename = opts.ModuleName

	g.readFn = g.module.NewFunc(opts.ReadFunc, types.I32,
		ir.NewParam("", types.I8Ptr))
	writeFn := g.module.NewFunc(opts.WriteFunc, types.Void,
		ir.NewParam("", types.I32))

	mainFn := g.module.NewFunc("main", types.I32,
		ir.NewParam("", types.I32),
		ir.NewParam("", types.NewPointer(types.I8Ptr)))
	g.entry = mainFn.NewBlock("entry")

	result, err := g.lowerNode(root)
	if err != nil {
		return nil, err
	}

	g.entry.NewCall(writeFn, result)
	g.entry.NewRet(constant.NewInt(types.I32, 0))

	return g.module, nil
}

func (g *generator) lowerNode(node ast.Node) (value.Value, error) {
	switch n := node.(type) {
	case *ast.WithDecl:
		return g.lowerWithDecl(n)
	case ast.Expr:
		return g.lowerExpr(n)
	default:
		return nil, fmt.Errorf("%w: unexpected root %T", ErrPrecondition, node)
	}
}

// lowerWithDecl emits one read call per declared variable, in declaration
// order, binding each result before the body is lowered.
func (g *generator) lowerWithDecl(decl *ast.WithDecl) (value.Value, error) {
	for _, v := range decl.Vars {
		str := constant.NewCharArrayFromString(v.Name + "\x00")
		global := g.module.NewGlobalDef(v.Name+".str", str)
		global.Immutable = true
		global.Linkage = enum.LinkagePrivate

		zero := constant.NewInt(types.I64, 0)
		namePtr := constant.NewGetElementPtr(str.Typ, global, zero, zero)

		g.nameMap[v.Name] = g.entry.NewCall(g.readFn, namePtr)
	}

	if decl.Body == nil {
		return nil, fmt.Errorf("%w: with declaration has no body", ErrPrecondition)
	}
	return g.lowerExpr(decl.Body)
}

func (g *generator) lowerExpr(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Factor:
		return g.lowerFactor(e)
	case *ast.BinaryExpr:
		return g.lowerBinary(e)
	default:
		return nil, fmt.Errorf("%w: unexpected expression %T", ErrPrecondition, expr)
	}
}

func (g *generator) lowerFactor(f *ast.Factor) (value.Value, error) {
	if f.Kind == ast.Ident {
		v, ok := g.nameMap[f.Value]
		if !ok {
			return nil, fmt.Errorf("%w: variable %q has no binding", ErrPrecondition, f.Value)
		}
		return v, nil
	}

	// Decimal literal. Out-of-range text wraps per ordinary fixed-width
	// integer conversion, unchecked.
	n, _ := strconv.ParseUint(f.Value, 10, 64)
	return constant.NewInt(types.I32, int64(int32(uint32(n)))), nil
}

func (g *generator) lowerBinary(b *ast.BinaryExpr) (value.Value, error) {
	if b.Left == nil || b.Right == nil {
		return nil, fmt.Errorf("%w: binary expression has absent operand", ErrPrecondition)
	}

	left, err := g.lowerExpr(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := g.lowerExpr(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ast.Plus:
		add := g.entry.NewAdd(left, right)
		add.OverflowFlags = []enum.OverflowFlag{enum.OverflowFlagNSW}
		return add, nil
	case ast.Minus:
		sub := g.entry.NewSub(left, right)
		sub.OverflowFlags = []enum.OverflowFlag{enum.OverflowFlagNSW}
		return sub, nil
	case ast.Mul:
		mul := g.entry.NewMul(left, right)
		mul.OverflowFlags = []enum.OverflowFlag{enum.OverflowFlagNSW}
		return mul, nil
	case ast.Div:
		return g.entry.NewSDiv(left, right), nil
	default:
		return nil, fmt.Errorf("%w: unknown operator %v", ErrPrecondition, b.Op)
	}
}
