package semantic

import (
	"github.com/kolkov/ucalc/internal/ast"
)

// Checker walks the tree once, threading the flat scope set explicitly so
// the analyzer is reentrant and testable in isolation.
type Checker struct {
	scope  map[string]bool // Declared variable names
	errors ErrorList
}

// Check performs declaration/use validation on a parsed program.
// A nil root yields no errors: there is nothing to check, and the caller
// already knows the parse failed.
//
// The tree may contain absent subtrees left behind by parser recovery;
// these are reported as IncompleteExpr errors rather than crashed on.
func Check(root ast.Node) []*Error {
	if root == nil {
		return nil
	}

	c := &Checker{
		scope: make(map[string]bool),
	}
	c.checkNode(root)
	return c.errors
}

func (c *Checker) checkNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.WithDecl:
		c.checkWithDecl(n)
	case ast.Expr:
		c.checkExpr(n)
	}
}

func (c *Checker) checkWithDecl(decl *ast.WithDecl) {
	for _, v := range decl.Vars {
		if c.scope[v.Name] {
			c.errors.Add(v.Pos, DuplicateDeclaration, v.Name)
			continue
		}
		c.scope[v.Name] = true
	}

	if decl.Body == nil {
		c.errors.Add(decl.Pos(), IncompleteExpr, "")
		return
	}
	c.checkExpr(decl.Body)
}

func (c *Checker) checkExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Factor:
		if e.Kind == ast.Ident && !c.scope[e.Value] {
			c.errors.Add(e.Pos(), UndeclaredUse, e.Value)
		}

	case *ast.BinaryExpr:
		if e.Left == nil {
			c.errors.Add(e.Pos(), IncompleteExpr, "")
		} else {
			c.checkExpr(e.Left)
		}
		if e.Right == nil {
			c.errors.Add(e.Pos(), IncompleteExpr, "")
		} else {
			c.checkExpr(e.Right)
		}
	}
}
