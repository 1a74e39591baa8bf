package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer provides pretty-printing for AST nodes.
// It outputs a human-readable representation suitable for debugging.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a pretty-printed representation of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	p.printf("\n")
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, strings.Repeat("    ", p.indent))
}

func (p *Printer) printNode(node Node) {
	if node == nil {
		p.writeIndent()
		p.printf("<nil>")
		return
	}

	switch n := node.(type) {
	case *WithDecl:
		p.printWithDecl(n)
	case Expr:
		p.printExpr(n)
	default:
		p.writeIndent()
		p.printf("<%T>", node)
	}
}

func (p *Printer) printWithDecl(w *WithDecl) {
	p.writeIndent()
	names := make([]string, len(w.Vars))
	for i, v := range w.Vars {
		names[i] = v.Name
	}
	p.printf("WithDecl [%s]\n", strings.Join(names, ", "))
	p.indent++
	p.printNode(w.Body)
	p.indent--
}

func (p *Printer) printExpr(e Expr) {
	if e == nil {
		p.writeIndent()
		p.printf("<nil>")
		return
	}

	switch n := e.(type) {
	case *Factor:
		p.writeIndent()
		if n.Kind == Number {
			p.printf("Number %s", n.Value)
		} else {
			p.printf("Ident %s", n.Value)
		}
	case *BinaryExpr:
		p.writeIndent()
		p.printf("BinaryExpr %s\n", n.Op)
		p.indent++
		p.printNode(n.Left)
		p.printf("\n")
		p.printNode(n.Right)
		p.indent--
	default:
		p.writeIndent()
		p.printf("<%T>", e)
	}
}

// Dump returns the pretty-printed representation of node as a string.
func Dump(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(node)
	return sb.String()
}
